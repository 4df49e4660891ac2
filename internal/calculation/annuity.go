package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of decimal places kept for every computed
// amount. It is finer than any currency minor unit so rounding drift stays
// far below a cent over multi-decade schedules.
const AmountPrecision int32 = 10

// SettlementThreshold is the balance below which a loan counts as repaid.
// Anything smaller is accumulated rounding residue, not principal.
var SettlementThreshold = decimal.New(1, -4)

var one = decimal.NewFromInt(1)

// fix rounds an amount to AmountPrecision.
func fix(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPrecision)
}

// settle clamps a running balance: negatives and residue become zero.
func settle(balance decimal.Decimal) decimal.Decimal {
	if balance.LessThan(SettlementThreshold) {
		return decimal.Zero
	}
	return balance
}

// AnnuityPayment returns the level monthly payment that amortizes principal
// over months at the given monthly rate. A zero rate degrades to an even
// split of principal.
func AnnuityPayment(principal, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	if monthlyRate.IsZero() {
		return fix(principal.Div(n))
	}
	growth := one.Add(monthlyRate).Pow(n).Round(2 * AmountPrecision)
	return fix(principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one)))
}

// AnnuityMonths solves the annuity equation for the number of months needed
// to repay balance with a fixed payment, rounded up to whole months. It
// returns false when the payment does not cover the first month's interest.
func AnnuityMonths(balance, payment, monthlyRate decimal.Decimal) (int, bool) {
	if !balance.IsPositive() {
		return 0, true
	}
	if !payment.IsPositive() {
		return 0, false
	}
	if monthlyRate.IsZero() {
		return int(balance.Div(payment).Ceil().IntPart()), true
	}
	interest := balance.Mul(monthlyRate)
	if payment.LessThanOrEqual(interest) {
		return 0, false
	}
	p := payment.InexactFloat64()
	ratio := p / (p - interest.InexactFloat64())
	n := math.Log(ratio) / math.Log1p(monthlyRate.InexactFloat64())
	// Exact integer solutions come back as k+ε from the float logarithms.
	months := int(math.Ceil(n - 1e-9))
	if months < 1 {
		months = 1
	}
	return months, true
}
