package calculation

import (
	"fmt"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// PrepaymentRequest is a one-time extra principal payment made after the
// regular payment of Month.
type PrepaymentRequest struct {
	Month      int
	Amount     decimal.Decimal
	Strategy   domain.Strategy
	Convention domain.Convention
}

// ApplyPrepayment computes the effect of req on the current schedule.
//
// current may already carry earlier prepayments; original is the untouched
// schedule every interest saving is measured against. The returned outcome
// holds the current schedule truncated at req.Month with a rebuilt tail.
// An amount at or above the remaining balance is a full payoff.
func ApplyPrepayment(current, original domain.Schedule, monthlyRate decimal.Decimal, req PrepaymentRequest) (domain.PrepaymentOutcome, error) {
	if req.Month < 1 || req.Month > current.Len() {
		return domain.PrepaymentOutcome{}, fmt.Errorf("%w: month %d outside 1..%d", domain.ErrInvalidMonth, req.Month, current.Len())
	}
	if !req.Amount.IsPositive() {
		return domain.PrepaymentOutcome{}, fmt.Errorf("%w: amount must be positive, got %s", domain.ErrInvalidAmount, req.Amount)
	}
	if _, err := domain.ParseStrategy(string(req.Strategy)); err != nil {
		return domain.PrepaymentOutcome{}, err
	}
	if _, err := domain.ParseConvention(string(req.Convention)); err != nil {
		return domain.PrepaymentOutcome{}, err
	}

	before := current[req.Month-1].RemainingPrincipal
	level := levelEntry(current, req.Month)
	paidInterest := current.InterestThrough(req.Month)

	out := domain.PrepaymentOutcome{
		Strategy:              req.Strategy,
		Convention:            req.Convention,
		Month:                 req.Month,
		Amount:                req.Amount,
		OriginalTotalMonths:   original.Len(),
		TotalInterestOriginal: original.TotalInterest(),
		OriginalPayment:       level.Payment,
	}

	remainingMonths := current.Len() - req.Month
	if req.Amount.GreaterThanOrEqual(before) || remainingMonths <= 0 {
		return fullPayoff(out, current, before, paidInterest), nil
	}

	after := before.Sub(req.Amount)
	var tail domain.Schedule
	switch {
	case req.Strategy == domain.ReduceTerm && req.Convention == domain.EqualInstallment:
		months, ok := AnnuityMonths(after, level.Payment, monthlyRate)
		if !ok {
			return domain.PrepaymentOutcome{}, fmt.Errorf("%w: payment %s does not cover interest on %s", domain.ErrInvalidAmount, level.Payment, after)
		}
		if months > remainingMonths {
			months = remainingMonths
		}
		tail = installmentTail(after, monthlyRate, level.Payment, req.Month+1, months, true)
	case req.Strategy == domain.ReduceTerm:
		// The fixed portion shortens the term by floor(amount / portion) months.
		tail = principalTail(after, monthlyRate, level.Principal, req.Month+1, remainingMonths, true)
	case req.Convention == domain.EqualInstallment:
		payment := AnnuityPayment(after, monthlyRate, remainingMonths)
		tail = installmentTail(after, monthlyRate, payment, req.Month+1, remainingMonths, true)
	default:
		portion := fix(after.Div(decimal.NewFromInt(int64(remainingMonths))))
		tail = principalTail(after, monthlyRate, portion, req.Month+1, remainingMonths, true)
	}

	schedule := current.Truncate(req.Month, tail.Len())
	recordPrepayment(&schedule[req.Month-1], req.Amount, after)
	schedule = append(schedule, tail...)

	out.Schedule = schedule
	out.NewTotalMonths = schedule.Len()
	out.MonthsReduced = out.OriginalTotalMonths - out.NewTotalMonths
	out.TotalInterestNew = paidInterest.Add(tail.TotalInterest())
	out.InterestSaved = out.TotalInterestOriginal.Sub(out.TotalInterestNew)
	out.NewPayment = tail.First().Payment
	out.PaymentReduction = out.OriginalPayment.Sub(out.NewPayment)
	return out, nil
}

func fullPayoff(out domain.PrepaymentOutcome, current domain.Schedule, before, paidInterest decimal.Decimal) domain.PrepaymentOutcome {
	schedule := current.Truncate(out.Month, 0)
	recordPrepayment(&schedule[out.Month-1], decimal.Min(out.Amount, before), decimal.Zero)

	out.FullPayoff = true
	out.Schedule = schedule
	out.NewTotalMonths = out.Month
	out.MonthsReduced = out.OriginalTotalMonths - out.Month
	out.TotalInterestNew = paidInterest
	out.InterestSaved = out.TotalInterestOriginal.Sub(paidInterest)
	out.NewPayment = decimal.Zero
	out.PaymentReduction = out.OriginalPayment
	return out
}

func recordPrepayment(e *domain.ScheduleEntry, amount, after decimal.Decimal) {
	e.Prepayment = e.Prepayment.Add(amount)
	e.RemainingPrincipal = settle(after)
}

// levelEntry returns the regular entry in effect right after month: the
// next month unless that one is the final, possibly short, entry.
func levelEntry(s domain.Schedule, month int) domain.ScheduleEntry {
	if month < s.Len()-1 {
		return s[month]
	}
	return s[month-1]
}

// ValidateCommit checks that a prepayment can be committed against the
// current schedule: the month must exist and the amount must not exceed the
// balance remaining after that month.
func ValidateCommit(current domain.Schedule, month int, amount decimal.Decimal) error {
	if month < 1 || month > current.Len() {
		return fmt.Errorf("%w: month %d outside 1..%d", domain.ErrInvalidMonth, month, current.Len())
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", domain.ErrInvalidAmount, amount)
	}
	remaining := current[month-1].RemainingPrincipal
	if amount.GreaterThan(remaining) {
		return fmt.Errorf("%w: amount %s exceeds remaining principal %s at month %d", domain.ErrInvalidAmount, amount, remaining, month)
	}
	return nil
}

// ReplayPrepayments rebuilds the schedule of one convention from the
// original by applying every matching record in ascending month order.
func ReplayPrepayments(original domain.Schedule, monthlyRate decimal.Decimal, convention domain.Convention, records []domain.PrepaymentRecord) (domain.Schedule, error) {
	current := original.Clone()
	for _, rec := range domain.SortRecords(records) {
		if rec.Convention != convention {
			continue
		}
		if err := ValidateCommit(current, rec.Month, rec.Amount); err != nil {
			return nil, fmt.Errorf("replay %s prepayment at month %d: %w", rec.Strategy, rec.Month, err)
		}
		out, err := ApplyPrepayment(current, original, monthlyRate, PrepaymentRequest{
			Month:      rec.Month,
			Amount:     rec.Amount,
			Strategy:   rec.Strategy,
			Convention: rec.Convention,
		})
		if err != nil {
			return nil, fmt.Errorf("replay %s prepayment at month %d: %w", rec.Strategy, rec.Month, err)
		}
		current = out.Schedule
	}
	return current, nil
}
