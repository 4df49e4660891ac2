package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rpgo/mortgage-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ScenarioReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MORTGAGE SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	loans := append([]domain.LoanReport(nil), report.Loans...)
	sort.Slice(loans, func(i, j int) bool { return loans[i].Name < loans[j].Name })
	for _, lr := range loans {
		fmt.Fprintf(&buf, "%s: Principal=%s Rate=%s Term=%s\n",
			lr.Name,
			FormatCurrency(lr.Terms.Principal),
			FormatPercentage(lr.Terms.AnnualRatePercent()),
			FormatTerm(lr.Terms.Months),
		)
		for _, cr := range lr.Conventions {
			fmt.Fprintf(&buf, "  %s: FirstPayment=%s Interest=%s Months=%d",
				cr.Convention,
				FormatCurrency(cr.Current.FirstMonthPayment),
				FormatCurrency(cr.Current.TotalInterest),
				cr.Current.Months,
			)
			if cr.InterestSaved.IsPositive() {
				fmt.Fprintf(&buf, " Saved=%s", FormatCurrency(cr.InterestSaved))
			}
			fmt.Fprintln(&buf)
		}
	}
	combined := append([]domain.CombinedReport(nil), report.Combined...)
	sort.Slice(combined, func(i, j int) bool { return combined[i].Name < combined[j].Name })
	for _, cb := range combined {
		fmt.Fprintf(&buf, "%s (combined, %s): FirstPayment=%s Interest=%s Months=%d\n",
			cb.Name,
			cb.Summary.Convention,
			FormatCurrency(cb.Summary.FirstMonthTotalPayment),
			FormatCurrency(cb.Summary.TotalInterest),
			cb.Summary.MaxMonths,
		)
	}
	rec := AnalyzeReport(report)
	if rec.LoanName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Largest saving: %s %s (%s / %s)\n", rec.LoanName, rec.Convention, FormatCurrency(rec.InterestSaved), FormatPercentage(rec.PercentageSaved))
	}
	return buf.Bytes(), nil
}
