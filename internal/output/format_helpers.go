package output

import (
	"strconv"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	money "github.com/rpgo/mortgage-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every amount rendered for people.
const CurrencySymbol = "¥"

// FormatCurrency formats a decimal as currency with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format(CurrencySymbol)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatTerm renders a month count as years and months, e.g. "21y 5m".
func FormatTerm(months int) string {
	y, m := months/12, months%12
	switch {
	case y == 0:
		return intToString(m) + "m"
	case m == 0:
		return intToString(y) + "y"
	}
	return intToString(y) + "y " + intToString(m) + "m"
}

func conventionLabel(c domain.Convention) string {
	switch c {
	case domain.EqualInstallment:
		return "Equal installment"
	case domain.EqualPrincipal:
		return "Equal principal"
	}
	return string(c)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
