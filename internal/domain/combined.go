package domain

import "github.com/shopspring/decimal"

// Tranche names used in reports and API payloads.
const (
	TrancheProvidentFund = "provident_fund"
	TrancheCommercial    = "commercial"
)

// CombinedEntry is one month of a dual-tranche loan. Fields of a tranche
// that has already finished are zero.
type CombinedEntry struct {
	Month int `json:"month"`

	PFPayment            decimal.Decimal `json:"pf_payment"`
	PFPrincipal          decimal.Decimal `json:"pf_principal"`
	PFInterest           decimal.Decimal `json:"pf_interest"`
	PFRemainingPrincipal decimal.Decimal `json:"pf_remaining_principal"`

	CommPayment            decimal.Decimal `json:"comm_payment"`
	CommPrincipal          decimal.Decimal `json:"comm_principal"`
	CommInterest           decimal.Decimal `json:"comm_interest"`
	CommRemainingPrincipal decimal.Decimal `json:"comm_remaining_principal"`

	TotalPayment decimal.Decimal `json:"total_payment"`
}

// CombinedSchedule is aligned by month up to the longer tranche.
type CombinedSchedule []CombinedEntry

// Len returns the number of merged months.
func (s CombinedSchedule) Len() int { return len(s) }

// CombinedSummary aggregates both tranches.
type CombinedSummary struct {
	Convention             Convention      `json:"convention"`
	ProvidentFund          Summary         `json:"provident_fund"`
	Commercial             Summary         `json:"commercial"`
	FirstMonthTotalPayment decimal.Decimal `json:"first_month_total_payment"`
	TotalInterest          decimal.Decimal `json:"total_interest"`
	TotalPayment           decimal.Decimal `json:"total_payment"`
	TotalLoanAmount        decimal.Decimal `json:"total_loan_amount"`
	MaxMonths              int             `json:"max_months"`
}
