// Package store keeps loan aggregates and cached quotes for the HTTP API.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/domain"
)

// Registry owns the loans created through the API, keyed by ID. Each loan
// serializes its own mutations; the registry only guards the index.
type Registry struct {
	mu     sync.RWMutex
	loans  map[uuid.UUID]*calculation.Loan
	logger calculation.Logger
	newID  func() uuid.UUID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		loans:  make(map[uuid.UUID]*calculation.Loan),
		logger: calculation.NopLogger{},
		newID:  uuid.New,
	}
}

// SetLogger sets the logger handed to every new loan. If nil is provided, a no-op logger is used.
func (r *Registry) SetLogger(l calculation.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l == nil {
		r.logger = calculation.NopLogger{}
		return
	}
	r.logger = l
}

// Create builds a loan for terms and registers it.
func (r *Registry) Create(terms domain.LoanTerms) (uuid.UUID, *calculation.Loan, error) {
	loan, err := calculation.NewLoan(terms)
	if err != nil {
		return uuid.Nil, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.newID()
	loan.SetLogger(calculation.WithPrefix(r.logger, id.String()))
	r.loans[id] = loan
	r.logger.Infof("registered loan %s (%s over %d months)", id, terms.Principal, terms.Months)
	return id, loan, nil
}

// Get returns the loan registered under id.
func (r *Registry) Get(id uuid.UUID) (*calculation.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loan, ok := r.loans[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLoanNotFound, id)
	}
	return loan, nil
}

// Lookup parses a textual ID and returns its loan. Malformed IDs are
// reported as not found.
func (r *Registry) Lookup(id string) (uuid.UUID, *calculation.Loan, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %q", domain.ErrLoanNotFound, id)
	}
	loan, err := r.Get(parsed)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return parsed, loan, nil
}

// Len returns the number of registered loans.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loans)
}
