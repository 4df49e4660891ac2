package calculation

import (
	"fmt"
	"sync"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Loan owns the terms of one mortgage, its untouched schedules for both
// conventions, the committed prepayment records and the current schedules
// derived from them.
//
// Current schedules are always rebuilt from the originals by replaying the
// sorted record list; they are never patched in place. All methods are safe
// for concurrent use.
type Loan struct {
	mu       sync.RWMutex
	terms    domain.LoanTerms
	original map[domain.Convention]domain.Schedule
	current  map[domain.Convention]domain.Schedule
	records  []domain.PrepaymentRecord
	logger   Logger
}

// CreateLoan builds a loan from a principal in base units, an annual rate in
// percent and a term in years.
func CreateLoan(principal, annualRatePercent decimal.Decimal, termYears int) (*Loan, error) {
	terms, err := domain.NewLoanTerms(principal, annualRatePercent, termYears)
	if err != nil {
		return nil, err
	}
	return NewLoan(terms)
}

// NewLoan builds both original schedules for terms.
func NewLoan(terms domain.LoanTerms) (*Loan, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	l := &Loan{
		terms:    terms,
		original: make(map[domain.Convention]domain.Schedule, len(domain.Conventions)),
		current:  make(map[domain.Convention]domain.Schedule, len(domain.Conventions)),
		logger:   NopLogger{},
	}
	for _, c := range domain.Conventions {
		s, err := GenerateSchedule(terms, c)
		if err != nil {
			return nil, err
		}
		l.original[c] = s
		l.current[c] = s
	}
	return l, nil
}

// SetLogger sets the logger for the loan. If nil is provided, a no-op logger is used.
func (l *Loan) SetLogger(logger Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if logger == nil {
		l.logger = NopLogger{}
		return
	}
	l.logger = logger
}

// Terms returns the immutable loan terms.
func (l *Loan) Terms() domain.LoanTerms { return l.terms }

// Schedule returns a copy of the current schedule for c.
func (l *Loan) Schedule(c domain.Convention) (domain.Schedule, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.current[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownConvention, c)
	}
	return s.Clone(), nil
}

// OriginalSchedule returns a copy of the untouched schedule for c.
func (l *Loan) OriginalSchedule(c domain.Convention) (domain.Schedule, error) {
	s, ok := l.original[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownConvention, c)
	}
	return s.Clone(), nil
}

// Summary summarizes the current schedule for c.
func (l *Loan) Summary(c domain.Convention) (domain.Summary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.current[c]
	if !ok {
		return domain.Summary{}, fmt.Errorf("%w: %q", domain.ErrUnknownConvention, c)
	}
	if !l.hasRecords(c) {
		return Summarize(s, c, l.terms.Principal), nil
	}
	return SummarizeAdjusted(s, c, l.terms.Principal), nil
}

// OriginalSummary summarizes the untouched schedule for c.
func (l *Loan) OriginalSummary(c domain.Convention) (domain.Summary, error) {
	s, ok := l.original[c]
	if !ok {
		return domain.Summary{}, fmt.Errorf("%w: %q", domain.ErrUnknownConvention, c)
	}
	return Summarize(s, c, l.terms.Principal), nil
}

// InterestSaved is the interest avoided so far by committed prepayments
// under convention c.
func (l *Loan) InterestSaved(c domain.Convention) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.current[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownConvention, c)
	}
	return l.original[c].TotalInterest().Sub(s.TotalInterest()), nil
}

// Preview computes a prepayment outcome against the current schedule
// without changing any state.
func (l *Loan) Preview(strategy domain.Strategy, month int, amount decimal.Decimal, c domain.Convention) (domain.PrepaymentOutcome, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	current, ok := l.current[c]
	if !ok {
		return domain.PrepaymentOutcome{}, fmt.Errorf("%w: %q", domain.ErrUnknownConvention, c)
	}
	return ApplyPrepayment(current, l.original[c], l.terms.MonthlyRate, PrepaymentRequest{
		Month:      month,
		Amount:     amount,
		Strategy:   strategy,
		Convention: c,
	})
}

// PreviewReducedTerm previews a prepayment that shortens the term.
func (l *Loan) PreviewReducedTerm(month int, amount decimal.Decimal, c domain.Convention) (domain.PrepaymentOutcome, error) {
	return l.Preview(domain.ReduceTerm, month, amount, c)
}

// PreviewReducedPayment previews a prepayment that lowers the payment.
func (l *Loan) PreviewReducedPayment(month int, amount decimal.Decimal, c domain.Convention) (domain.PrepaymentOutcome, error) {
	return l.Preview(domain.ReducePayment, month, amount, c)
}

// AddPrepayment validates and commits a prepayment, then rebuilds the
// current schedules from the originals. On any error no record is kept and
// the schedules are unchanged.
func (l *Loan) AddPrepayment(month int, amount decimal.Decimal, strategy domain.Strategy, c domain.Convention) error {
	if _, err := domain.ParseStrategy(string(strategy)); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.current[c]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownConvention, c)
	}
	if err := ValidateCommit(current, month, amount); err != nil {
		l.logger.Debugf("rejected %s prepayment of %s at month %d: %v", strategy, amount, month, err)
		return err
	}

	records := append(append([]domain.PrepaymentRecord(nil), l.records...), domain.PrepaymentRecord{
		Month:      month,
		Amount:     amount,
		Strategy:   strategy,
		Convention: c,
		CreatedAt:  nowFunc(),
	})
	rebuilt, err := l.rebuild(records)
	if err != nil {
		l.logger.Debugf("rejected %s prepayment of %s at month %d: %v", strategy, amount, month, err)
		return err
	}

	l.records = domain.SortRecords(records)
	l.current = rebuilt
	l.logger.Infof("committed %s prepayment of %s at month %d (%s); %d record(s)", strategy, amount, month, c, len(l.records))
	return nil
}

// ClearPrepayments drops every record and restores the original schedules.
func (l *Loan) ClearPrepayments() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	for c, s := range l.original {
		l.current[c] = s
	}
	l.logger.Infof("cleared prepayments")
}

// PrepaymentHistory returns the committed records in ascending month order.
func (l *Loan) PrepaymentHistory() []domain.PrepaymentRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.PrepaymentRecord(nil), l.records...)
}

// rebuild replays records from scratch for every convention.
func (l *Loan) rebuild(records []domain.PrepaymentRecord) (map[domain.Convention]domain.Schedule, error) {
	out := make(map[domain.Convention]domain.Schedule, len(l.original))
	for c, original := range l.original {
		s, err := ReplayPrepayments(original, l.terms.MonthlyRate, c, records)
		if err != nil {
			return nil, err
		}
		out[c] = s
	}
	return out, nil
}

func (l *Loan) hasRecords(c domain.Convention) bool {
	for _, r := range l.records {
		if r.Convention == c {
			return true
		}
	}
	return false
}
