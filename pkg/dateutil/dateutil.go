// Package dateutil maps payment numbers of a monthly schedule to calendar dates.
package dateutil

import (
	"time"
)

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// AddMonths adds a number of months to a date, clamping the day to the end
// of the target month (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(date time.Time, months int) time.Time {
	total := int(date.Month()) - 1 + months
	year := date.Year() + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	day := date.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// MonthsBetween counts the whole months from one date to another. A month
// only completes on the same day of month, or on the last day of a shorter
// month.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	day := from.Day()
	if last := DaysInMonth(to.Year(), to.Month()); day > last {
		day = last
	}
	switch {
	case months > 0 && to.Day() < day:
		months--
	case months < 0 && to.Day() > day:
		months++
	}
	return months
}

// PaymentDate returns the due date of payment n (1-based) given the first
// payment date.
func PaymentDate(firstPayment time.Time, n int) time.Time {
	return AddMonths(firstPayment, n-1)
}

// PaymentNumber returns the 1-based number of the last payment due on or
// before at. Dates before the first payment yield 0 or less.
func PaymentNumber(firstPayment, at time.Time) int {
	if at.Before(firstPayment) {
		return MonthsBetween(firstPayment, at)
	}
	return MonthsBetween(firstPayment, at) + 1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
