package domain

import (
	"time"

	"github.com/rpgo/mortgage-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ConventionResult is the state of one convention of a loan.
type ConventionResult struct {
	Convention       Convention      `json:"convention"`
	Original         Summary         `json:"original"`
	Current          Summary         `json:"current"`
	InterestSaved    decimal.Decimal `json:"interest_saved"`
	PayoffDate       *time.Time      `json:"payoff_date,omitempty"`
	OriginalSchedule Schedule        `json:"original_schedule"`
	Schedule         Schedule        `json:"schedule"`
}

// ConventionComparison contrasts the two conventions for the same terms.
type ConventionComparison struct {
	EqualInstallment   Summary         `json:"equal_installment"`
	EqualPrincipal     Summary         `json:"equal_principal"`
	InterestDifference decimal.Decimal `json:"interest_difference"`
	Cheaper            Convention      `json:"cheaper"`
}

// LoanReport is the computed result of one LoanScenario.
type LoanReport struct {
	Name             string               `json:"name"`
	Terms            LoanTerms            `json:"terms"`
	FirstPaymentDate *time.Time           `json:"first_payment_date,omitempty"`
	Conventions      []ConventionResult   `json:"conventions"`
	Comparison       ConventionComparison `json:"comparison"`
	Prepayments      []PrepaymentRecord   `json:"prepayments"`
}

// PaymentDate returns the due date of month, if the loan has a calendar.
func (r LoanReport) PaymentDate(month int) (time.Time, bool) {
	if r.FirstPaymentDate == nil {
		return time.Time{}, false
	}
	return dateutil.PaymentDate(*r.FirstPaymentDate, month), true
}

// Result returns the convention result for c.
func (r LoanReport) Result(c Convention) (ConventionResult, bool) {
	for _, cr := range r.Conventions {
		if cr.Convention == c {
			return cr, true
		}
	}
	return ConventionResult{}, false
}

// CombinedReport is the computed result of one CombinedScenario.
type CombinedReport struct {
	Name          string           `json:"name"`
	ProvidentFund LoanTerms        `json:"provident_fund"`
	Commercial    LoanTerms        `json:"commercial"`
	Summary       CombinedSummary  `json:"summary"`
	Schedule      CombinedSchedule `json:"schedule"`
}

// ScenarioReport is everything computed from a Configuration.
type ScenarioReport struct {
	Loans    []LoanReport     `json:"loans"`
	Combined []CombinedReport `json:"combined,omitempty"`
}
