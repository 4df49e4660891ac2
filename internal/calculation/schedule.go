package calculation

import (
	"fmt"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateSchedule builds the full amortization table for terms under the
// given convention.
func GenerateSchedule(terms domain.LoanTerms, convention domain.Convention) (domain.Schedule, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	switch convention {
	case domain.EqualInstallment:
		return EqualInstallmentSchedule(terms.Principal, terms.MonthlyRate, terms.Months), nil
	case domain.EqualPrincipal:
		return EqualPrincipalSchedule(terms.Principal, terms.MonthlyRate, terms.Months), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownConvention, convention)
}

// EqualInstallmentSchedule pays the same total every month. The running
// balance is carried forward unclamped; each entry stores it clamped.
func EqualInstallmentSchedule(principal, monthlyRate decimal.Decimal, months int) domain.Schedule {
	payment := AnnuityPayment(principal, monthlyRate, months)
	return installmentTail(principal, monthlyRate, payment, 1, months, false)
}

// EqualPrincipalSchedule repays the same principal portion every month.
func EqualPrincipalSchedule(principal, monthlyRate decimal.Decimal, months int) domain.Schedule {
	if months <= 0 {
		return domain.Schedule{}
	}
	portion := fix(principal.Div(decimal.NewFromInt(int64(months))))
	return principalTail(principal, monthlyRate, portion, 1, months, false)
}

// installmentTail amortizes balance with a level payment starting at
// firstMonth for at most months entries. With truncate set, the final entry
// repays whatever is left so the tail ends at exactly zero.
func installmentTail(balance, monthlyRate, payment decimal.Decimal, firstMonth, months int, truncate bool) domain.Schedule {
	schedule := make(domain.Schedule, 0, months)
	for i := 0; i < months; i++ {
		interest := fix(balance.Mul(monthlyRate))
		principal := payment.Sub(interest)
		pay := payment
		if truncate && (i == months-1 || principal.GreaterThan(balance)) {
			principal = balance
			pay = principal.Add(interest)
		}
		balance = balance.Sub(principal)
		schedule = append(schedule, domain.ScheduleEntry{
			Month:              firstMonth + i,
			Payment:            pay,
			Principal:          principal,
			Interest:           interest,
			RemainingPrincipal: settle(balance),
		})
		if truncate && settle(balance).IsZero() {
			break
		}
	}
	return schedule
}

// principalTail repays a fixed portion each month starting at firstMonth.
// With truncate set, the last portion is capped at the remaining balance and
// the tail stops once the balance is settled.
func principalTail(balance, monthlyRate, portion decimal.Decimal, firstMonth, months int, truncate bool) domain.Schedule {
	schedule := make(domain.Schedule, 0, months)
	for i := 0; i < months; i++ {
		interest := fix(balance.Mul(monthlyRate))
		principal := portion
		if truncate && (i == months-1 || principal.GreaterThan(balance)) {
			principal = balance
		}
		balance = balance.Sub(principal)
		schedule = append(schedule, domain.ScheduleEntry{
			Month:              firstMonth + i,
			Payment:            principal.Add(interest),
			Principal:          principal,
			Interest:           interest,
			RemainingPrincipal: settle(balance),
		})
		if truncate && settle(balance).IsZero() {
			break
		}
	}
	return schedule
}
