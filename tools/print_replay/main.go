package main

import (
	"fmt"

	"github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func main() {
	loan, err := calculation.CreateLoan(decimal.NewFromInt(1_000_000), decimal.NewFromFloat(4.9), 30)
	if err != nil {
		panic(err)
	}

	// Preview then commit the same prepayment; the tails should match.
	preview, err := loan.PreviewReducedTerm(60, decimal.NewFromInt(200_000), domain.EqualInstallment)
	if err != nil {
		panic(err)
	}
	fmt.Println("Reduce-term preview at month 60:")
	fmt.Printf("  months %d -> %d, interest saved %s\n", preview.OriginalTotalMonths, preview.NewTotalMonths, preview.InterestSaved.StringFixed(2))

	if err := loan.AddPrepayment(60, decimal.NewFromInt(200_000), domain.ReduceTerm, domain.EqualInstallment); err != nil {
		panic(err)
	}
	committed, _ := loan.Schedule(domain.EqualInstallment)
	fmt.Printf("  committed length %d, equal to preview: %v\n", committed.Len(), committed.Equal(preview.Schedule))

	// A record added for an earlier month forces a replay of the later one.
	if err := loan.AddPrepayment(24, decimal.NewFromInt(50_000), domain.ReducePayment, domain.EqualInstallment); err != nil {
		panic(err)
	}
	replayed, _ := loan.Schedule(domain.EqualInstallment)
	fmt.Println("After adding a month 24 reduce-payment record:")
	for _, m := range []int{24, 25, 60, 61} {
		e, _ := replayed.Entry(m)
		fmt.Printf("  month %3d payment %s prepaid %s balance %s\n", m, e.Payment.StringFixed(2), e.Prepayment.StringFixed(2), e.RemainingPrincipal.StringFixed(2))
	}
	fmt.Printf("  length %d\n", replayed.Len())
	for _, r := range loan.PrepaymentHistory() {
		fmt.Printf("  record month %d %s %s\n", r.Month, r.Strategy, r.Amount.StringFixed(2))
	}
}
