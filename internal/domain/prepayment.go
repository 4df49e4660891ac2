package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PrepaymentRecord is a committed one-time extra principal payment made
// after the regular payment of Month.
type PrepaymentRecord struct {
	Month      int             `json:"month" yaml:"month"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Strategy   Strategy        `json:"strategy" yaml:"strategy"`
	Convention Convention      `json:"convention" yaml:"convention"`
	CreatedAt  time.Time       `json:"created_at" yaml:"created_at,omitempty"`
}

// SortRecords orders records by month, keeping entry order within a month.
func SortRecords(records []PrepaymentRecord) []PrepaymentRecord {
	out := append([]PrepaymentRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// PrepaymentOutcome describes the effect of one prepayment on a schedule.
//
// Term fields are meaningful for reduce-term, payment fields for
// reduce-payment; both are filled where they can be derived.
type PrepaymentOutcome struct {
	Strategy   Strategy        `json:"strategy"`
	Convention Convention      `json:"convention"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	FullPayoff bool            `json:"full_payoff"`

	OriginalTotalMonths int `json:"original_total_months"`
	NewTotalMonths      int `json:"new_total_months"`
	MonthsReduced       int `json:"months_reduced"`

	TotalInterestOriginal decimal.Decimal `json:"total_interest_original"`
	TotalInterestNew      decimal.Decimal `json:"total_interest_new"`
	InterestSaved         decimal.Decimal `json:"interest_saved"`

	// For equal-principal these are the payments of the month after the
	// prepayment, which then decline month by month.
	OriginalPayment  decimal.Decimal `json:"original_payment"`
	NewPayment       decimal.Decimal `json:"new_payment"`
	PaymentReduction decimal.Decimal `json:"payment_reduction"`

	Schedule Schedule `json:"schedule,omitempty"`
}

// StrategyComparison places both strategies for the same prepayment side by side.
type StrategyComparison struct {
	Month         int                `json:"month"`
	Amount        decimal.Decimal    `json:"amount"`
	Convention    Convention         `json:"convention"`
	BaseInterest  decimal.Decimal    `json:"base_interest"`
	ReduceTerm    *PrepaymentOutcome `json:"reduce_term"`
	ReducePayment *PrepaymentOutcome `json:"reduce_payment"`
}
