package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/mortgage-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per loan and convention).
// Combined loans contribute one row per tranche plus a total row.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ScenarioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Convention", "Principal", "AnnualRatePercent", "OriginalMonths", "Months", "MonthlyPayment", "FirstMonthPayment", "LastMonthPayment", "TotalInterest", "TotalPayment", "Prepaid", "InterestSaved"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	loans := append([]domain.LoanReport(nil), report.Loans...)
	sort.Slice(loans, func(i, j int) bool { return loans[i].Name < loans[j].Name })
	for _, lr := range loans {
		for _, cr := range lr.Conventions {
			row := []string{
				lr.Name,
				"loan",
				string(cr.Convention),
				lr.Terms.Principal.StringFixed(2),
				lr.Terms.AnnualRatePercent().StringFixed(4),
				intToString(cr.Original.Months),
				intToString(cr.Current.Months),
				cr.Current.MonthlyPayment.StringFixed(2),
				cr.Current.FirstMonthPayment.StringFixed(2),
				cr.Current.LastMonthPayment.StringFixed(2),
				cr.Current.TotalInterest.StringFixed(2),
				cr.Current.TotalPayment.StringFixed(2),
				cr.Current.Prepaid.StringFixed(2),
				cr.InterestSaved.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	combined := append([]domain.CombinedReport(nil), report.Combined...)
	sort.Slice(combined, func(i, j int) bool { return combined[i].Name < combined[j].Name })
	for _, cb := range combined {
		rows := []struct {
			kind  string
			terms domain.LoanTerms
			sum   domain.Summary
		}{
			{domain.TrancheProvidentFund, cb.ProvidentFund, cb.Summary.ProvidentFund},
			{domain.TrancheCommercial, cb.Commercial, cb.Summary.Commercial},
		}
		for _, r := range rows {
			if err := w.Write([]string{
				cb.Name,
				r.kind,
				string(cb.Summary.Convention),
				r.terms.Principal.StringFixed(2),
				r.terms.AnnualRatePercent().StringFixed(4),
				intToString(r.terms.Months),
				intToString(r.sum.Months),
				r.sum.MonthlyPayment.StringFixed(2),
				r.sum.FirstMonthPayment.StringFixed(2),
				r.sum.LastMonthPayment.StringFixed(2),
				r.sum.TotalInterest.StringFixed(2),
				r.sum.TotalPayment.StringFixed(2),
				"0.00",
				"0.00",
			}); err != nil {
				return nil, err
			}
		}
		s := cb.Summary
		if err := w.Write([]string{
			cb.Name,
			"combined",
			string(s.Convention),
			s.TotalLoanAmount.StringFixed(2),
			"",
			intToString(s.MaxMonths),
			intToString(s.MaxMonths),
			"",
			s.FirstMonthTotalPayment.StringFixed(2),
			"",
			s.TotalInterest.StringFixed(2),
			s.TotalPayment.StringFixed(2),
			"0.00",
			"0.00",
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
