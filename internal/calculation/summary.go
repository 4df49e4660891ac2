package calculation

import (
	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize reduces an unadjusted schedule to its headline numbers.
//
// Equal-installment totals are the level payment times the term;
// equal-principal totals are the sum of the declining payments. In both
// cases total interest is total payment minus principal.
func Summarize(schedule domain.Schedule, convention domain.Convention, principal decimal.Decimal) domain.Summary {
	summary := domain.Summary{
		Convention: convention,
		Principal:  principal,
		Months:     schedule.Len(),
		Prepaid:    decimal.Zero,
	}
	if schedule.Len() == 0 {
		return summary
	}

	first := schedule.First().Payment
	last := schedule.Last().Payment
	summary.FirstMonthPayment = first
	summary.LastMonthPayment = last

	switch convention {
	case domain.EqualInstallment:
		summary.MonthlyPayment = first
		summary.TotalPayment = first.Mul(decimal.NewFromInt(int64(schedule.Len())))
	default:
		summary.MonthlyPayment = first
		summary.TotalPayment = schedule.TotalPayment()
	}
	summary.TotalInterest = summary.TotalPayment.Sub(principal)
	return summary
}

// SummarizeAdjusted reduces a schedule that carries prepayments. Interest is
// what actually accrues month by month; total payment is principal plus that
// interest, prepaid principal included.
func SummarizeAdjusted(schedule domain.Schedule, convention domain.Convention, principal decimal.Decimal) domain.Summary {
	summary := domain.Summary{
		Convention:        convention,
		Principal:         principal,
		Months:            schedule.Len(),
		MonthlyPayment:    schedule.First().Payment,
		FirstMonthPayment: schedule.First().Payment,
		LastMonthPayment:  schedule.Last().Payment,
		TotalInterest:     schedule.TotalInterest(),
		Prepaid:           schedule.TotalPrepaid(),
	}
	summary.TotalPayment = principal.Add(summary.TotalInterest)
	return summary
}
