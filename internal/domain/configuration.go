package domain

import (
	"fmt"
	"time"

	"github.com/rpgo/mortgage-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Configuration is the top-level scenario file.
type Configuration struct {
	Loans    []LoanScenario     `json:"loans" yaml:"loans"`
	Combined []CombinedScenario `json:"combined,omitempty" yaml:"combined,omitempty"`
}

// LoanInput is the user-facing form of loan terms.
type LoanInput struct {
	Principal         decimal.Decimal `json:"principal" yaml:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	TermYears         int             `json:"term_years,omitempty" yaml:"term_years,omitempty"`
	TermMonths        int             `json:"term_months,omitempty" yaml:"term_months,omitempty"`
}

// Months resolves the term, preferring an explicit month count.
func (in LoanInput) Months() int {
	if in.TermMonths > 0 {
		return in.TermMonths
	}
	return in.TermYears * 12
}

// Terms converts the input into validated LoanTerms.
func (in LoanInput) Terms() (LoanTerms, error) {
	return NewLoanTermsMonths(in.Principal, in.AnnualRatePercent, in.Months())
}

// PrepaymentInput is a prepayment listed in a scenario file. It is placed
// either by payment number or by a calendar date on or after the payment.
type PrepaymentInput struct {
	Month      int             `json:"month,omitempty" yaml:"month,omitempty"`
	Date       *time.Time      `json:"date,omitempty" yaml:"date,omitempty"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Strategy   string          `json:"strategy" yaml:"strategy"`
	Convention string          `json:"convention" yaml:"convention"`
}

// ResolveMonth returns the payment number the prepayment follows. A date is
// converted through the loan's first payment date.
func (p PrepaymentInput) ResolveMonth(firstPayment *time.Time) (int, error) {
	if p.Month != 0 || p.Date == nil {
		return p.Month, nil
	}
	if firstPayment == nil {
		return 0, fmt.Errorf("%w: date %s needs a first payment date", ErrInvalidMonth, p.Date.Format(time.DateOnly))
	}
	return dateutil.PaymentNumber(*firstPayment, *p.Date), nil
}

// LoanScenario is a single mortgage with optional prepayments.
type LoanScenario struct {
	Name             string            `json:"name" yaml:"name"`
	Loan             LoanInput         `json:"loan" yaml:"loan"`
	FirstPaymentDate *time.Time        `json:"first_payment_date,omitempty" yaml:"first_payment_date,omitempty"`
	Prepayments      []PrepaymentInput `json:"prepayments,omitempty" yaml:"prepayments,omitempty"`
}

// CombinedScenario is a dual-tranche loan sharing one convention.
type CombinedScenario struct {
	Name          string    `json:"name" yaml:"name"`
	Convention    string    `json:"convention" yaml:"convention"`
	ProvidentFund LoanInput `json:"provident_fund" yaml:"provident_fund"`
	Commercial    LoanInput `json:"commercial" yaml:"commercial"`
}
