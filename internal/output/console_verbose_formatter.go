package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ScenarioReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED MORTGAGE REPAYMENT ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, lr := range report.Loans {
		title := fmt.Sprintf("LOAN %d: %s", i+1, lr.Name)
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
		fmt.Fprintf(&buf, "Principal:   %s (%s)\n", FormatCurrency(lr.Terms.Principal), moneyWan(lr.Terms.Principal))
		fmt.Fprintf(&buf, "Annual Rate: %s\n", FormatPercentage(lr.Terms.AnnualRatePercent()))
		fmt.Fprintf(&buf, "Term:        %d months (%s)\n", lr.Terms.Months, FormatTerm(lr.Terms.Months))
		if lr.FirstPaymentDate != nil {
			fmt.Fprintf(&buf, "First Due:   %s\n", lr.FirstPaymentDate.Format(time.DateOnly))
		}
		fmt.Fprintln(&buf)

		writeConventionComparison(&buf, lr.Comparison)
		if len(lr.Prepayments) > 0 {
			writePrepayments(&buf, lr.Prepayments)
		}
		for _, cr := range lr.Conventions {
			writeConventionResult(&buf, cr)
		}
	}

	for i, cb := range report.Combined {
		title := fmt.Sprintf("COMBINED LOAN %d: %s", i+1, cb.Name)
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
		writeCombined(&buf, cb)
	}

	rec := AnalyzeReport(report)
	if rec.LoanName != "" {
		fmt.Fprintln(&buf, "=================================================================================")
		fmt.Fprintln(&buf, "LARGEST PREPAYMENT SAVING")
		fmt.Fprintln(&buf, "=================================================================================")
		fmt.Fprintf(&buf, "Loan:            %s (%s)\n", rec.LoanName, conventionLabel(rec.Convention))
		fmt.Fprintf(&buf, "Interest Saved:  %s of %s (%s)\n", FormatCurrency(rec.InterestSaved), FormatCurrency(rec.OriginalInterest), FormatPercentage(rec.PercentageSaved))
		if rec.MonthsReduced > 0 {
			fmt.Fprintf(&buf, "Term Shortened:  %d months (%s)\n", rec.MonthsReduced, FormatTerm(rec.MonthsReduced))
		}
	}

	return buf.Bytes(), nil
}

func writeConventionComparison(buf *bytes.Buffer, cmp domain.ConventionComparison) {
	fmt.Fprintf(buf, "%-30s %18s %18s %18s\n", "ORIGINAL TERMS", "EQUAL INSTALLMENT", "EQUAL PRINCIPAL", "DIFFERENCE")
	fmt.Fprintln(buf, strings.Repeat("-", 87))
	cmpLine(buf, "First Month Payment", cmp.EqualInstallment.FirstMonthPayment, cmp.EqualPrincipal.FirstMonthPayment)
	cmpLine(buf, "Last Month Payment", cmp.EqualInstallment.LastMonthPayment, cmp.EqualPrincipal.LastMonthPayment)
	cmpLine(buf, "Total Interest", cmp.EqualInstallment.TotalInterest, cmp.EqualPrincipal.TotalInterest)
	cmpLine(buf, "Total Payment", cmp.EqualInstallment.TotalPayment, cmp.EqualPrincipal.TotalPayment)
	fmt.Fprintf(buf, "Cheaper convention: %s (saves %s)\n\n", conventionLabel(cmp.Cheaper), FormatCurrency(cmp.InterestDifference))
}

func writePrepayments(buf *bytes.Buffer, records []domain.PrepaymentRecord) {
	fmt.Fprintln(buf, "PREPAYMENTS:")
	for _, r := range domain.SortRecords(records) {
		fmt.Fprintf(buf, "  Month %3d: %s %s (%s)\n", r.Month, FormatCurrency(r.Amount), r.Strategy, r.Convention)
	}
	fmt.Fprintln(buf)
}

func writeConventionResult(buf *bytes.Buffer, cr domain.ConventionResult) {
	fmt.Fprintf(buf, "%s\n", strings.ToUpper(conventionLabel(cr.Convention)))
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  Monthly Payment:   %s\n", FormatCurrency(cr.Current.MonthlyPayment))
	fmt.Fprintf(buf, "  First / Last:      %s / %s\n", FormatCurrency(cr.Current.FirstMonthPayment), FormatCurrency(cr.Current.LastMonthPayment))
	fmt.Fprintf(buf, "  Months:            %d (%s)\n", cr.Current.Months, FormatTerm(cr.Current.Months))
	if cr.PayoffDate != nil {
		fmt.Fprintf(buf, "  Payoff Date:       %s\n", cr.PayoffDate.Format("Jan 2006"))
	}
	fmt.Fprintf(buf, "  Total Interest:    %s\n", FormatCurrency(cr.Current.TotalInterest))
	fmt.Fprintf(buf, "  Total Payment:     %s\n", FormatCurrency(cr.Current.TotalPayment))
	if cr.Current.Prepaid.IsPositive() {
		fmt.Fprintf(buf, "  Prepaid:           %s\n", FormatCurrency(cr.Current.Prepaid))
		fmt.Fprintf(buf, "  Interest Saved:    %s\n", FormatCurrency(cr.InterestSaved))
		fmt.Fprintf(buf, "  Months Saved:      %d\n", cr.Original.Months-cr.Current.Months)
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "  %-6s %16s %16s %16s %16s\n", "YEAR", "PAYMENTS", "PRINCIPAL", "INTEREST", "BALANCE")
	for _, y := range yearlyTotals(cr.Schedule) {
		fmt.Fprintf(buf, "  %-6d %16s %16s %16s %16s\n", y.Year, FormatCurrency(y.Payment), FormatCurrency(y.Principal), FormatCurrency(y.Interest), FormatCurrency(y.Balance))
	}
	fmt.Fprintln(buf)
}

func writeCombined(buf *bytes.Buffer, cb domain.CombinedReport) {
	s := cb.Summary
	fmt.Fprintf(buf, "Convention:          %s\n", conventionLabel(s.Convention))
	fmt.Fprintf(buf, "%-22s %18s %18s %18s\n", "", "PROVIDENT FUND", "COMMERCIAL", "TOTAL")
	fmt.Fprintln(buf, strings.Repeat("-", 79))
	trancheLine(buf, "Principal", cb.ProvidentFund.Principal, cb.Commercial.Principal, s.TotalLoanAmount)
	fmt.Fprintf(buf, "%-22s %18s %18s %18s\n", "Annual Rate", FormatPercentage(cb.ProvidentFund.AnnualRatePercent()), FormatPercentage(cb.Commercial.AnnualRatePercent()), "")
	fmt.Fprintf(buf, "%-22s %18d %18d %18d\n", "Months", s.ProvidentFund.Months, s.Commercial.Months, s.MaxMonths)
	trancheLine(buf, "First Month Payment", s.ProvidentFund.FirstMonthPayment, s.Commercial.FirstMonthPayment, s.FirstMonthTotalPayment)
	trancheLine(buf, "Total Interest", s.ProvidentFund.TotalInterest, s.Commercial.TotalInterest, s.TotalInterest)
	trancheLine(buf, "Total Payment", s.ProvidentFund.TotalPayment, s.Commercial.TotalPayment, s.TotalPayment)
	fmt.Fprintln(buf)
}

func trancheLine(buf *bytes.Buffer, label string, pf, comm, total decimal.Decimal) {
	fmt.Fprintf(buf, "%-22s %18s %18s %18s\n", label, FormatCurrency(pf), FormatCurrency(comm), FormatCurrency(total))
}

func cmpLine(buf *bytes.Buffer, label string, installment, principal decimal.Decimal) {
	diff := principal.Sub(installment)
	fmt.Fprintf(buf, "%-30s %18s %18s %18s\n", label, FormatCurrency(installment), FormatCurrency(principal), FormatCurrency(diff))
}
