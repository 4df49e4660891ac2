package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConvention(t *testing.T) {
	tests := []struct {
		in   string
		want Convention
	}{
		{"equal-installment", EqualInstallment},
		{"EQUAL_INSTALLMENT", EqualInstallment},
		{" equal-principal ", EqualPrincipal},
		{"equal_principal", EqualPrincipal},
	}
	for _, tt := range tests {
		got, err := ParseConvention(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseConvention("interest-only")
	assert.ErrorIs(t, err, ErrUnknownConvention)
	_, err = ParseConvention("")
	assert.ErrorIs(t, err, ErrUnknownConvention)
}

func TestParseStrategy(t *testing.T) {
	got, err := ParseStrategy("Reduce_Term")
	require.NoError(t, err)
	assert.Equal(t, ReduceTerm, got)

	got, err = ParseStrategy("reduce-payment")
	require.NoError(t, err)
	assert.Equal(t, ReducePayment, got)

	_, err = ParseStrategy("skip")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestNewLoanTerms(t *testing.T) {
	terms, err := NewLoanTerms(decimal.NewFromInt(1_000_000), decimal.NewFromFloat(4.9), 30)
	require.NoError(t, err)
	assert.Equal(t, 360, terms.Months)
	assert.InDelta(t, 0.0040833333, terms.MonthlyRate.InexactFloat64(), 1e-10)
	assert.True(t, terms.Years().Equal(decimal.NewFromInt(30)))

	terms, err = NewLoanTermsMonths(decimal.NewFromInt(1000), decimal.NewFromInt(12), 18)
	require.NoError(t, err)
	assert.True(t, terms.MonthlyRate.Equal(decimal.NewFromFloat(0.01)))
	assert.True(t, terms.AnnualRatePercent().Equal(decimal.NewFromInt(12)))
	assert.True(t, terms.Years().Equal(decimal.NewFromFloat(1.5)))

	_, err = NewLoanTerms(decimal.NewFromInt(1000), decimal.Zero, 1)
	assert.NoError(t, err, "zero rate is valid")

	for name, bad := range map[string]LoanTerms{
		"zero principal": {Principal: decimal.Zero, Months: 12},
		"negative rate":  {Principal: decimal.NewFromInt(1), MonthlyRate: decimal.NewFromFloat(-0.01), Months: 12},
		"no months":      {Principal: decimal.NewFromInt(1)},
	} {
		assert.ErrorIs(t, bad.Validate(), ErrInvalidTerms, name)
	}
}

func TestLoanInput_Terms(t *testing.T) {
	in := LoanInput{Principal: decimal.NewFromInt(500_000), AnnualRatePercent: decimal.NewFromFloat(4.9), TermYears: 30}
	assert.Equal(t, 360, in.Months())

	in.TermMonths = 300
	assert.Equal(t, 300, in.Months(), "explicit months win")

	terms, err := in.Terms()
	require.NoError(t, err)
	assert.Equal(t, 300, terms.Months)

	_, err = LoanInput{Principal: decimal.NewFromInt(1)}.Terms()
	assert.ErrorIs(t, err, ErrInvalidTerms)
}

func TestSortRecords(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []PrepaymentRecord{
		{Month: 60, Amount: decimal.NewFromInt(1), CreatedAt: ts},
		{Month: 12, Amount: decimal.NewFromInt(2), CreatedAt: ts},
		{Month: 60, Amount: decimal.NewFromInt(3), CreatedAt: ts},
		{Month: 1, Amount: decimal.NewFromInt(4), CreatedAt: ts},
	}
	sorted := SortRecords(records)

	months := []int{sorted[0].Month, sorted[1].Month, sorted[2].Month, sorted[3].Month}
	assert.Equal(t, []int{1, 12, 60, 60}, months)
	assert.True(t, sorted[2].Amount.Equal(decimal.NewFromInt(1)), "stable within a month")
	assert.True(t, sorted[3].Amount.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 60, records[0].Month, "input untouched")
}
