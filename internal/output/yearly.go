package output

import (
	"github.com/rpgo/mortgage-calculator/internal/domain"
	money "github.com/rpgo/mortgage-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// YearTotals aggregates twelve schedule months. Payment includes prepayments.
type YearTotals struct {
	Year       int
	Payment    decimal.Decimal
	Principal  decimal.Decimal
	Interest   decimal.Decimal
	Prepayment decimal.Decimal
	Balance    decimal.Decimal
}

func yearlyTotals(s domain.Schedule) []YearTotals {
	var out []YearTotals
	for _, e := range s {
		year := (e.Month-1)/12 + 1
		if len(out) < year {
			out = append(out, YearTotals{Year: year})
		}
		y := &out[year-1]
		y.Payment = y.Payment.Add(e.Payment).Add(e.Prepayment)
		y.Principal = y.Principal.Add(e.Principal).Add(e.Prepayment)
		y.Interest = y.Interest.Add(e.Interest)
		y.Prepayment = y.Prepayment.Add(e.Prepayment)
		y.Balance = e.RemainingPrincipal
	}
	return out
}

func moneyWan(d decimal.Decimal) string {
	return money.NewMoneyFromDecimal(d).FormatWan()
}
