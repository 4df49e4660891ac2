package calculation

import (
	"fmt"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CombinedLoan is a provident-fund tranche and a commercial tranche that
// amortize independently under one shared convention. It is immutable.
type CombinedLoan struct {
	providentFund domain.LoanTerms
	commercial    domain.LoanTerms
	convention    domain.Convention
	pfSchedule    domain.Schedule
	commSchedule  domain.Schedule
	merged        domain.CombinedSchedule
}

// CreateCombinedLoan generates both tranche schedules and merges them.
func CreateCombinedLoan(providentFund, commercial domain.LoanTerms, convention domain.Convention) (*CombinedLoan, error) {
	pf, err := GenerateSchedule(providentFund, convention)
	if err != nil {
		return nil, fmt.Errorf("provident fund tranche: %w", err)
	}
	comm, err := GenerateSchedule(commercial, convention)
	if err != nil {
		return nil, fmt.Errorf("commercial tranche: %w", err)
	}
	return &CombinedLoan{
		providentFund: providentFund,
		commercial:    commercial,
		convention:    convention,
		pfSchedule:    pf,
		commSchedule:  comm,
		merged:        MergeSchedules(pf, comm),
	}, nil
}

// ComposeCombined returns the merged schedule of two tranches.
func ComposeCombined(providentFund, commercial domain.LoanTerms, convention domain.Convention) (domain.CombinedSchedule, error) {
	cl, err := CreateCombinedLoan(providentFund, commercial, convention)
	if err != nil {
		return nil, err
	}
	return cl.Schedule(), nil
}

// MergeSchedules aligns two schedules by month up to the longer one. A
// finished tranche contributes zeros.
func MergeSchedules(pf, comm domain.Schedule) domain.CombinedSchedule {
	months := pf.Len()
	if comm.Len() > months {
		months = comm.Len()
	}
	merged := make(domain.CombinedSchedule, 0, months)
	for m := 1; m <= months; m++ {
		p, _ := pf.Entry(m)
		c, _ := comm.Entry(m)
		merged = append(merged, domain.CombinedEntry{
			Month:                  m,
			PFPayment:              p.Payment,
			PFPrincipal:            p.Principal,
			PFInterest:             p.Interest,
			PFRemainingPrincipal:   p.RemainingPrincipal,
			CommPayment:            c.Payment,
			CommPrincipal:          c.Principal,
			CommInterest:           c.Interest,
			CommRemainingPrincipal: c.RemainingPrincipal,
			TotalPayment:           p.Payment.Add(c.Payment),
		})
	}
	return merged
}

// Convention returns the shared repayment convention.
func (cl *CombinedLoan) Convention() domain.Convention { return cl.convention }

// ProvidentFundTerms returns the provident-fund tranche terms.
func (cl *CombinedLoan) ProvidentFundTerms() domain.LoanTerms { return cl.providentFund }

// CommercialTerms returns the commercial tranche terms.
func (cl *CombinedLoan) CommercialTerms() domain.LoanTerms { return cl.commercial }

// Schedule returns a copy of the merged schedule.
func (cl *CombinedLoan) Schedule() domain.CombinedSchedule {
	return append(domain.CombinedSchedule(nil), cl.merged...)
}

// ProvidentFundSchedule returns a copy of the provident-fund schedule.
func (cl *CombinedLoan) ProvidentFundSchedule() domain.Schedule { return cl.pfSchedule.Clone() }

// CommercialSchedule returns a copy of the commercial schedule.
func (cl *CombinedLoan) CommercialSchedule() domain.Schedule { return cl.commSchedule.Clone() }

// ProvidentFundSummary summarizes the provident-fund tranche.
func (cl *CombinedLoan) ProvidentFundSummary() domain.Summary {
	return Summarize(cl.pfSchedule, cl.convention, cl.providentFund.Principal)
}

// CommercialSummary summarizes the commercial tranche.
func (cl *CombinedLoan) CommercialSummary() domain.Summary {
	return Summarize(cl.commSchedule, cl.convention, cl.commercial.Principal)
}

// Summary aggregates both tranche summaries.
func (cl *CombinedLoan) Summary() domain.CombinedSummary {
	pf := cl.ProvidentFundSummary()
	comm := cl.CommercialSummary()
	first := decimal.Zero
	if cl.merged.Len() > 0 {
		first = cl.merged[0].TotalPayment
	}
	return domain.CombinedSummary{
		Convention:             cl.convention,
		ProvidentFund:          pf,
		Commercial:             comm,
		FirstMonthTotalPayment: first,
		TotalInterest:          pf.TotalInterest.Add(comm.TotalInterest),
		TotalPayment:           pf.TotalPayment.Add(comm.TotalPayment),
		TotalLoanAmount:        cl.providentFund.Principal.Add(cl.commercial.Principal),
		MaxMonths:              cl.merged.Len(),
	}
}
