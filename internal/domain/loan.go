package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Convention is the repayment convention of a schedule.
type Convention string

const (
	// EqualInstallment keeps the total monthly payment fixed.
	EqualInstallment Convention = "equal-installment"
	// EqualPrincipal keeps the monthly principal portion fixed.
	EqualPrincipal Convention = "equal-principal"
)

// Conventions lists every supported convention in display order.
var Conventions = []Convention{EqualInstallment, EqualPrincipal}

// ParseConvention accepts both dash and underscore spellings.
func ParseConvention(s string) (Convention, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch Convention(n) {
	case EqualInstallment, EqualPrincipal:
		return Convention(n), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConvention, s)
}

func (c Convention) String() string { return string(c) }

// Strategy is how a prepayment is absorbed by the remaining schedule.
type Strategy string

const (
	// ReduceTerm keeps the payment formula and shortens the schedule.
	ReduceTerm Strategy = "reduce-term"
	// ReducePayment keeps the schedule length and lowers the payment.
	ReducePayment Strategy = "reduce-payment"
)

// ParseStrategy accepts both dash and underscore spellings.
func ParseStrategy(s string) (Strategy, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch Strategy(n) {
	case ReduceTerm, ReducePayment:
		return Strategy(n), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

func (s Strategy) String() string { return string(s) }

var monthsPerYear = decimal.NewFromInt(12)
var percentPerMonth = decimal.NewFromInt(1200)

// LoanTerms are the immutable parameters of a loan or tranche.
// Principal is in base currency units; MonthlyRate is a fraction.
type LoanTerms struct {
	Principal   decimal.Decimal `json:"principal" yaml:"principal"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" yaml:"monthly_rate"`
	Months      int             `json:"months" yaml:"months"`
}

// NewLoanTerms converts an annual percentage rate and a term in years.
func NewLoanTerms(principal, annualRatePercent decimal.Decimal, termYears int) (LoanTerms, error) {
	return NewLoanTermsMonths(principal, annualRatePercent, termYears*12)
}

// NewLoanTermsMonths converts an annual percentage rate and a term in months.
func NewLoanTermsMonths(principal, annualRatePercent decimal.Decimal, months int) (LoanTerms, error) {
	t := LoanTerms{
		Principal:   principal,
		MonthlyRate: annualRatePercent.Div(percentPerMonth),
		Months:      months,
	}
	if err := t.Validate(); err != nil {
		return LoanTerms{}, err
	}
	return t, nil
}

// Validate checks the invariants of LoanTerms.
func (t LoanTerms) Validate() error {
	if !t.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidTerms, t.Principal)
	}
	if t.MonthlyRate.IsNegative() {
		return fmt.Errorf("%w: rate cannot be negative, got %s", ErrInvalidTerms, t.MonthlyRate)
	}
	if t.Months <= 0 {
		return fmt.Errorf("%w: term must be at least one month, got %d", ErrInvalidTerms, t.Months)
	}
	return nil
}

// AnnualRatePercent returns the nominal annual rate in percent.
func (t LoanTerms) AnnualRatePercent() decimal.Decimal {
	return t.MonthlyRate.Mul(percentPerMonth)
}

// Years returns the term in (possibly fractional) years.
func (t LoanTerms) Years() decimal.Decimal {
	return decimal.NewFromInt(int64(t.Months)).Div(monthsPerYear)
}
