package server

import (
	"github.com/rpgo/mortgage-calculator/internal/config"
	"github.com/rpgo/mortgage-calculator/internal/domain"
	money "github.com/rpgo/mortgage-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// LoanTermsRequest is the body of POST /api/v1/loans and each tranche of a
// combined loan. Amounts are strings; principal accepts "100万" style input.
type LoanTermsRequest struct {
	Principal         string `json:"principal"`
	AnnualRatePercent string `json:"annualRatePercent"`
	TermYears         int    `json:"termYears,omitempty"`
	TermMonths        int    `json:"termMonths,omitempty"`
}

// PrepaymentRequest is the body of POST /api/v1/loans/:id/prepayments
type PrepaymentRequest struct {
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
	Strategy   string `json:"strategy"`
	Convention string `json:"convention"`
}

// PreviewRequest is the body of POST /api/v1/loans/:id/preview. An empty
// strategy previews both.
type PreviewRequest struct {
	Month           int    `json:"month"`
	Amount          string `json:"amount"`
	Strategy        string `json:"strategy,omitempty"`
	Convention      string `json:"convention"`
	IncludeSchedule bool   `json:"includeSchedule,omitempty"`
}

// CombinedRequest is the body of POST /api/v1/combined
type CombinedRequest struct {
	Convention      string           `json:"convention"`
	ProvidentFund   LoanTermsRequest `json:"providentFund"`
	Commercial      LoanTermsRequest `json:"commercial"`
	IncludeSchedule bool             `json:"includeSchedule,omitempty"`
}

// QuoteRequest is the body of POST /api/v1/quotes
type QuoteRequest struct {
	LoanTermsRequest
	Convention      string `json:"convention,omitempty"`
	IncludeSchedule bool   `json:"includeSchedule,omitempty"`
}

// TermsResponse represents loan terms in API responses
type TermsResponse struct {
	Principal         string `json:"principal"`
	AnnualRatePercent string `json:"annualRatePercent"`
	Months            int    `json:"months"`
}

// SummaryResponse represents the headline numbers of one schedule
type SummaryResponse struct {
	Convention        string `json:"convention"`
	Months            int    `json:"months"`
	MonthlyPayment    string `json:"monthlyPayment"`
	FirstMonthPayment string `json:"firstMonthPayment"`
	LastMonthPayment  string `json:"lastMonthPayment"`
	TotalPayment      string `json:"totalPayment"`
	TotalInterest     string `json:"totalInterest"`
	Prepaid           string `json:"prepaid"`
	InterestSaved     string `json:"interestSaved,omitempty"`
}

// EntryResponse represents one schedule month
type EntryResponse struct {
	Month              int    `json:"month"`
	Payment            string `json:"payment"`
	Principal          string `json:"principal"`
	Interest           string `json:"interest"`
	Prepayment         string `json:"prepayment"`
	RemainingPrincipal string `json:"remainingPrincipal"`
}

// PrepaymentResponse represents a committed prepayment record
type PrepaymentResponse struct {
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
	Strategy   string `json:"strategy"`
	Convention string `json:"convention"`
	CreatedAt  string `json:"createdAt"`
}

// LoanResponse represents a registered loan
type LoanResponse struct {
	ID          string               `json:"id"`
	Terms       TermsResponse        `json:"terms"`
	Summaries   []SummaryResponse    `json:"summaries"`
	Prepayments []PrepaymentResponse `json:"prepayments"`
}

// ScheduleResponse represents the current schedule of one convention
type ScheduleResponse struct {
	LoanID     string          `json:"loanId"`
	Convention string          `json:"convention"`
	Entries    []EntryResponse `json:"entries"`
}

// OutcomeResponse represents one previewed prepayment
type OutcomeResponse struct {
	Strategy              string          `json:"strategy"`
	Convention            string          `json:"convention"`
	Month                 int             `json:"month"`
	Amount                string          `json:"amount"`
	FullPayoff            bool            `json:"fullPayoff"`
	OriginalTotalMonths   int             `json:"originalTotalMonths"`
	NewTotalMonths        int             `json:"newTotalMonths"`
	MonthsReduced         int             `json:"monthsReduced"`
	TotalInterestOriginal string          `json:"totalInterestOriginal"`
	TotalInterestNew      string          `json:"totalInterestNew"`
	InterestSaved         string          `json:"interestSaved"`
	OriginalPayment       string          `json:"originalPayment"`
	NewPayment            string          `json:"newPayment"`
	PaymentReduction      string          `json:"paymentReduction"`
	Schedule              []EntryResponse `json:"schedule,omitempty"`
}

// PreviewResponse holds the previewed outcome of each requested strategy
type PreviewResponse struct {
	ReduceTerm    *OutcomeResponse `json:"reduceTerm,omitempty"`
	ReducePayment *OutcomeResponse `json:"reducePayment,omitempty"`
}

// ComparisonResponse contrasts both conventions for the original terms
type ComparisonResponse struct {
	EqualInstallment   SummaryResponse `json:"equalInstallment"`
	EqualPrincipal     SummaryResponse `json:"equalPrincipal"`
	InterestDifference string          `json:"interestDifference"`
	Cheaper            string          `json:"cheaper"`
}

// CombinedEntryResponse represents one month of a combined loan
type CombinedEntryResponse struct {
	Month                  int    `json:"month"`
	PFPayment              string `json:"pfPayment"`
	PFPrincipal            string `json:"pfPrincipal"`
	PFInterest             string `json:"pfInterest"`
	PFRemainingPrincipal   string `json:"pfRemainingPrincipal"`
	CommPayment            string `json:"commPayment"`
	CommPrincipal          string `json:"commPrincipal"`
	CommInterest           string `json:"commInterest"`
	CommRemainingPrincipal string `json:"commRemainingPrincipal"`
	TotalPayment           string `json:"totalPayment"`
}

// CombinedResponse represents a composed dual-tranche loan
type CombinedResponse struct {
	Convention             string                  `json:"convention"`
	ProvidentFund          SummaryResponse         `json:"providentFund"`
	Commercial             SummaryResponse         `json:"commercial"`
	FirstMonthTotalPayment string                  `json:"firstMonthTotalPayment"`
	TotalInterest          string                  `json:"totalInterest"`
	TotalPayment           string                  `json:"totalPayment"`
	TotalLoanAmount        string                  `json:"totalLoanAmount"`
	MaxMonths              int                     `json:"maxMonths"`
	Schedule               []CombinedEntryResponse `json:"schedule,omitempty"`
}

// QuoteResponse is a stateless schedule quote
type QuoteResponse struct {
	Terms    TermsResponse   `json:"terms"`
	Summary  SummaryResponse `json:"summary"`
	Schedule []EntryResponse `json:"schedule,omitempty"`
}

var inputValidator = config.NewInputParser()

// parse converts the request into validated terms. prefix qualifies field
// names in validation errors, e.g. "providentFund.".
func (r LoanTermsRequest) parse(prefix string) (domain.LoanTerms, []ValidationError) {
	var errs []ValidationError
	principal, err := money.ParseAmount(r.Principal)
	if err != nil {
		errs = append(errs, ValidationError{Field: prefix + "principal", Message: "Must be a valid amount"})
	}
	rate, err := decimal.NewFromString(r.AnnualRatePercent)
	if err != nil {
		errs = append(errs, ValidationError{Field: prefix + "annualRatePercent", Message: "Must be a valid decimal number"})
	}
	if len(errs) > 0 {
		return domain.LoanTerms{}, errs
	}

	in := domain.LoanInput{
		Principal:         principal.Decimal,
		AnnualRatePercent: rate,
		TermYears:         r.TermYears,
		TermMonths:        r.TermMonths,
	}
	if err := inputValidator.ValidateLoanInput(&in); err != nil {
		return domain.LoanTerms{}, []ValidationError{{Field: prefix + "terms", Message: err.Error()}}
	}
	terms, err := in.Terms()
	if err != nil {
		return domain.LoanTerms{}, []ValidationError{{Field: prefix + "terms", Message: err.Error()}}
	}
	return terms, nil
}

func parseAmount(field, s string) (decimal.Decimal, []ValidationError) {
	m, err := money.ParseAmount(s)
	if err != nil {
		return decimal.Zero, []ValidationError{{Field: field, Message: "Must be a valid amount"}}
	}
	return m.Decimal, nil
}

func toTermsResponse(t domain.LoanTerms) TermsResponse {
	return TermsResponse{
		Principal:         t.Principal.StringFixed(2),
		AnnualRatePercent: t.AnnualRatePercent().StringFixed(4),
		Months:            t.Months,
	}
}

func toSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		Convention:        string(s.Convention),
		Months:            s.Months,
		MonthlyPayment:    s.MonthlyPayment.StringFixed(2),
		FirstMonthPayment: s.FirstMonthPayment.StringFixed(2),
		LastMonthPayment:  s.LastMonthPayment.StringFixed(2),
		TotalPayment:      s.TotalPayment.StringFixed(2),
		TotalInterest:     s.TotalInterest.StringFixed(2),
		Prepaid:           s.Prepaid.StringFixed(2),
	}
}

func toEntryResponses(s domain.Schedule) []EntryResponse {
	out := make([]EntryResponse, 0, len(s))
	for _, e := range s {
		out = append(out, EntryResponse{
			Month:              e.Month,
			Payment:            e.Payment.StringFixed(2),
			Principal:          e.Principal.StringFixed(2),
			Interest:           e.Interest.StringFixed(2),
			Prepayment:         e.Prepayment.StringFixed(2),
			RemainingPrincipal: e.RemainingPrincipal.StringFixed(2),
		})
	}
	return out
}

func toPrepaymentResponses(records []domain.PrepaymentRecord) []PrepaymentResponse {
	out := make([]PrepaymentResponse, 0, len(records))
	for _, r := range records {
		out = append(out, PrepaymentResponse{
			Month:      r.Month,
			Amount:     r.Amount.StringFixed(2),
			Strategy:   string(r.Strategy),
			Convention: string(r.Convention),
			CreatedAt:  r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return out
}

func toOutcomeResponse(o domain.PrepaymentOutcome, includeSchedule bool) *OutcomeResponse {
	resp := &OutcomeResponse{
		Strategy:              string(o.Strategy),
		Convention:            string(o.Convention),
		Month:                 o.Month,
		Amount:                o.Amount.StringFixed(2),
		FullPayoff:            o.FullPayoff,
		OriginalTotalMonths:   o.OriginalTotalMonths,
		NewTotalMonths:        o.NewTotalMonths,
		MonthsReduced:         o.MonthsReduced,
		TotalInterestOriginal: o.TotalInterestOriginal.StringFixed(2),
		TotalInterestNew:      o.TotalInterestNew.StringFixed(2),
		InterestSaved:         o.InterestSaved.StringFixed(2),
		OriginalPayment:       o.OriginalPayment.StringFixed(2),
		NewPayment:            o.NewPayment.StringFixed(2),
		PaymentReduction:      o.PaymentReduction.StringFixed(2),
	}
	if includeSchedule {
		resp.Schedule = toEntryResponses(o.Schedule)
	}
	return resp
}

func toCombinedResponse(s domain.CombinedSummary, schedule domain.CombinedSchedule, includeSchedule bool) CombinedResponse {
	resp := CombinedResponse{
		Convention:             string(s.Convention),
		ProvidentFund:          toSummaryResponse(s.ProvidentFund),
		Commercial:             toSummaryResponse(s.Commercial),
		FirstMonthTotalPayment: s.FirstMonthTotalPayment.StringFixed(2),
		TotalInterest:          s.TotalInterest.StringFixed(2),
		TotalPayment:           s.TotalPayment.StringFixed(2),
		TotalLoanAmount:        s.TotalLoanAmount.StringFixed(2),
		MaxMonths:              s.MaxMonths,
	}
	if includeSchedule {
		resp.Schedule = make([]CombinedEntryResponse, 0, len(schedule))
		for _, e := range schedule {
			resp.Schedule = append(resp.Schedule, CombinedEntryResponse{
				Month:                  e.Month,
				PFPayment:              e.PFPayment.StringFixed(2),
				PFPrincipal:            e.PFPrincipal.StringFixed(2),
				PFInterest:             e.PFInterest.StringFixed(2),
				PFRemainingPrincipal:   e.PFRemainingPrincipal.StringFixed(2),
				CommPayment:            e.CommPayment.StringFixed(2),
				CommPrincipal:          e.CommPrincipal.StringFixed(2),
				CommInterest:           e.CommInterest.StringFixed(2),
				CommRemainingPrincipal: e.CommRemainingPrincipal.StringFixed(2),
				TotalPayment:           e.TotalPayment.StringFixed(2),
			})
		}
	}
	return resp
}
