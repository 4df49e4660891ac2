package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"

	"github.com/rpgo/mortgage-calculator/internal/domain"
)

// CSVDetailedExporter writes every month of every current schedule.
// Combined loans are written per tranche so all rows share one layout.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ScenarioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Tranche", "Convention", "Month", "PaymentDate", "Payment", "Principal", "Interest", "Prepayment", "RemainingPrincipal", "Prepaid"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	loans := append([]domain.LoanReport(nil), report.Loans...)
	sort.Slice(loans, func(i, j int) bool { return loans[i].Name < loans[j].Name })
	for _, lr := range loans {
		for _, cr := range lr.Conventions {
			for _, e := range cr.Schedule {
				date := ""
				if d, ok := lr.PaymentDate(e.Month); ok {
					date = d.Format(time.DateOnly)
				}
				if err := w.Write(detailRow(lr.Name, "", cr.Convention, date, e)); err != nil {
					return nil, err
				}
			}
		}
	}
	combined := append([]domain.CombinedReport(nil), report.Combined...)
	sort.Slice(combined, func(i, j int) bool { return combined[i].Name < combined[j].Name })
	for _, cb := range combined {
		conv := cb.Summary.Convention
		for _, ce := range cb.Schedule {
			if ce.Month <= cb.Summary.ProvidentFund.Months {
				e := domain.ScheduleEntry{Month: ce.Month, Payment: ce.PFPayment, Principal: ce.PFPrincipal, Interest: ce.PFInterest, RemainingPrincipal: ce.PFRemainingPrincipal}
				if err := w.Write(detailRow(cb.Name, domain.TrancheProvidentFund, conv, "", e)); err != nil {
					return nil, err
				}
			}
			if ce.Month <= cb.Summary.Commercial.Months {
				e := domain.ScheduleEntry{Month: ce.Month, Payment: ce.CommPayment, Principal: ce.CommPrincipal, Interest: ce.CommInterest, RemainingPrincipal: ce.CommRemainingPrincipal}
				if err := w.Write(detailRow(cb.Name, domain.TrancheCommercial, conv, "", e)); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func detailRow(name, tranche string, c domain.Convention, date string, e domain.ScheduleEntry) []string {
	return []string{
		name,
		tranche,
		string(c),
		intToString(e.Month),
		date,
		e.Payment.StringFixed(2),
		e.Principal.StringFixed(2),
		e.Interest.StringFixed(2),
		e.Prepayment.StringFixed(2),
		e.RemainingPrincipal.StringFixed(2),
		boolToString(e.Prepayment.IsPositive()),
	}
}
