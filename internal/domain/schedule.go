package domain

import (
	"github.com/shopspring/decimal"
)

// ScheduleEntry is a single month of an amortization schedule.
// Payment = Principal + Interest; RemainingPrincipal is never negative and
// is the balance after both the regular payment and any Prepayment made
// that month.
type ScheduleEntry struct {
	Month              int             `json:"month"`
	Payment            decimal.Decimal `json:"payment"`
	Principal          decimal.Decimal `json:"principal"`
	Interest           decimal.Decimal `json:"interest"`
	Prepayment         decimal.Decimal `json:"prepayment"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
}

// Schedule is an ordered, gap-free list of entries starting at month 1.
type Schedule []ScheduleEntry

// Len returns the number of months in the schedule.
func (s Schedule) Len() int { return len(s) }

// Entry returns the entry for a 1-based month.
func (s Schedule) Entry(month int) (ScheduleEntry, bool) {
	if month < 1 || month > len(s) {
		return ScheduleEntry{}, false
	}
	return s[month-1], true
}

// First returns the first entry, or a zero entry for an empty schedule.
func (s Schedule) First() ScheduleEntry {
	if len(s) == 0 {
		return ScheduleEntry{}
	}
	return s[0]
}

// Last returns the final entry, or a zero entry for an empty schedule.
func (s Schedule) Last() ScheduleEntry {
	if len(s) == 0 {
		return ScheduleEntry{}
	}
	return s[len(s)-1]
}

// Clone returns a copy that shares no storage with s.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	copy(out, s)
	return out
}

// Truncate returns a copy holding months 1..month. The capacity is sized
// for a rebuilt tail of extra months.
func (s Schedule) Truncate(month, extra int) Schedule {
	if month < 0 {
		month = 0
	}
	if month > len(s) {
		month = len(s)
	}
	if extra < 0 {
		extra = 0
	}
	out := make(Schedule, month, month+extra)
	copy(out, s[:month])
	return out
}

// TotalInterest sums the interest of every entry.
func (s Schedule) TotalInterest() decimal.Decimal {
	return s.InterestThrough(len(s))
}

// InterestThrough sums the interest of months 1..month inclusive.
func (s Schedule) InterestThrough(month int) decimal.Decimal {
	if month > len(s) {
		month = len(s)
	}
	total := decimal.Zero
	for i := 0; i < month; i++ {
		total = total.Add(s[i].Interest)
	}
	return total
}

// TotalPayment sums the payment of every entry.
func (s Schedule) TotalPayment() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		total = total.Add(e.Payment)
	}
	return total
}

// TotalPrincipal sums the principal portion of every entry.
func (s Schedule) TotalPrincipal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		total = total.Add(e.Principal)
	}
	return total
}

// TotalPrepaid sums the extra principal paid across the schedule.
func (s Schedule) TotalPrepaid() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		total = total.Add(e.Prepayment)
	}
	return total
}

// Equal reports whether both schedules hold identical values.
func (s Schedule) Equal(o Schedule) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		a, b := s[i], o[i]
		if a.Month != b.Month ||
			!a.Payment.Equal(b.Payment) ||
			!a.Principal.Equal(b.Principal) ||
			!a.Interest.Equal(b.Interest) ||
			!a.Prepayment.Equal(b.Prepayment) ||
			!a.RemainingPrincipal.Equal(b.RemainingPrincipal) {
			return false
		}
	}
	return true
}

// Summary holds the headline numbers of one schedule.
type Summary struct {
	Convention        Convention      `json:"convention"`
	Principal         decimal.Decimal `json:"principal"`
	Months            int             `json:"months"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	FirstMonthPayment decimal.Decimal `json:"first_month_payment"`
	LastMonthPayment  decimal.Decimal `json:"last_month_payment"`
	TotalPayment      decimal.Decimal `json:"total_payment"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
	Prepaid           decimal.Decimal `json:"prepaid"`
}
