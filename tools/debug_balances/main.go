package main

import (
	"fmt"
	"os"

	calc "github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/config"
	"github.com/rpgo/mortgage-calculator/internal/domain"
)

// Prints original and current balances of every loan side by side as CSV,
// for checking where prepayments move a schedule.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_balances <scenario-file> [convention]")
		return
	}
	convention := domain.EqualInstallment
	if len(os.Args) > 2 {
		c, err := domain.ParseConvention(os.Args[2])
		if err != nil {
			panic(err)
		}
		convention = c
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngine()
	res, err := engine.RunScenarios(cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Loans) < 1 {
		fmt.Println("no loans")
		return
	}

	results := make([]domain.ConventionResult, 0, len(res.Loans))
	maxLen := 0
	for _, lr := range res.Loans {
		cr, _ := lr.Result(convention)
		results = append(results, cr)
		if n := cr.OriginalSchedule.Len(); n > maxLen {
			maxLen = n
		}
	}

	header := "Month"
	for i := range results {
		header += fmt.Sprintf(",L%d_Original,L%d_Current,L%d_Prepaid,L%d_Gap", i+1, i+1, i+1, i+1)
	}
	fmt.Println(header)

	for m := 1; m <= maxLen; m++ {
		row := fmt.Sprintf("%d", m)
		for _, cr := range results {
			o, _ := cr.OriginalSchedule.Entry(m)
			c, _ := cr.Schedule.Entry(m)
			row += fmt.Sprintf(",%s,%s,%s,%s", o.RemainingPrincipal.StringFixed(2), c.RemainingPrincipal.StringFixed(2), c.Prepayment.StringFixed(2), o.RemainingPrincipal.Sub(c.RemainingPrincipal).StringFixed(2))
		}
		fmt.Println(row)
	}
}
