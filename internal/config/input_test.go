package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenarioYAML = `loans:
  - name: "First Home"
    loan:
      principal: 1000000
      annual_rate_percent: 4.9
      term_years: 30
    prepayments:
      - month: 60
        amount: 200000
        strategy: reduce_term
        convention: equal-installment
      - month: 12
        amount: 50000.50
        strategy: reduce-payment
        convention: equal_principal
  - name: "Car Loan"
    loan:
      principal: 30000
      annual_rate_percent: 0
      term_months: 18

combined:
  - name: "Dual Tranche"
    convention: equal-installment
    provident_fund:
      principal: 300000
      annual_rate_percent: 3.25
      term_years: 20
    commercial:
      principal: 500000
      annual_rate_percent: 4.9
      term_years: 30
`

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validScenarioYAML), 0o644))

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	require.Len(t, config.Loans, 2)
	home := config.Loans[0]
	assert.Equal(t, "First Home", home.Name)
	assert.True(t, home.Loan.Principal.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, home.Loan.AnnualRatePercent.Equal(decimal.NewFromFloat(4.9)))
	assert.Equal(t, 360, home.Loan.Months())
	require.Len(t, home.Prepayments, 2)
	assert.True(t, home.Prepayments[1].Amount.Equal(decimal.RequireFromString("50000.50")))
	assert.Equal(t, "reduce_term", home.Prepayments[0].Strategy)

	assert.Equal(t, 18, config.Loans[1].Loan.Months())
	assert.True(t, config.Loans[1].Loan.AnnualRatePercent.IsZero())

	require.Len(t, config.Combined, 1)
	assert.Equal(t, 240, config.Combined[0].ProvidentFund.Months())
	assert.Equal(t, 360, config.Combined[0].Commercial.Months())
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loans: [\n  - name: x\n"), 0o644))
	_, err = parser.LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func validConfig() *domain.Configuration {
	return NewInputParser().CreateExampleConfiguration()
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()
	require.NoError(t, parser.ValidateConfiguration(validConfig()))

	tests := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		wantErr string
		wantIs  error
	}{
		{"empty", func(c *domain.Configuration) { c.Loans = nil; c.Combined = nil }, "no loans or combined loans", nil},
		{"missing name", func(c *domain.Configuration) { c.Loans[0].Name = "" }, "scenario name is required", nil},
		{"duplicate name", func(c *domain.Configuration) { c.Loans[1].Name = c.Loans[0].Name }, "duplicate scenario name", nil},
		{"duplicate across kinds", func(c *domain.Configuration) { c.Combined[0].Name = c.Loans[0].Name }, "duplicate scenario name", nil},
		{"zero principal", func(c *domain.Configuration) { c.Loans[0].Loan.Principal = decimal.Zero }, "principal must be positive", nil},
		{"negative rate", func(c *domain.Configuration) { c.Loans[0].Loan.AnnualRatePercent = decimal.NewFromInt(-1) }, "annual rate cannot be negative", nil},
		{"rate as fraction above 100", func(c *domain.Configuration) { c.Loans[0].Loan.AnnualRatePercent = decimal.NewFromInt(490) }, "no greater than 100", nil},
		{"no term", func(c *domain.Configuration) { c.Loans[0].Loan.TermYears = 0 }, "term must be between", nil},
		{"term too long", func(c *domain.Configuration) { c.Loans[0].Loan.TermYears = 51 }, "term must be between", nil},
		{"negative term", func(c *domain.Configuration) { c.Loans[1].Loan.TermMonths = -3 }, "term cannot be negative", nil},
		{"prepayment month", func(c *domain.Configuration) { c.Loans[0].Prepayments[0].Month = 361 }, "prepayment 0", domain.ErrInvalidMonth},
		{"prepayment amount", func(c *domain.Configuration) { c.Loans[0].Prepayments[1].Amount = decimal.Zero }, "prepayment 1", domain.ErrInvalidAmount},
		{"prepayment above principal", func(c *domain.Configuration) {
			c.Loans[0].Prepayments[1].Amount = decimal.NewFromInt(2_000_000)
		}, "cannot exceed the principal", domain.ErrInvalidAmount},
		{"prepayment strategy", func(c *domain.Configuration) { c.Loans[0].Prepayments[2].Strategy = "skip" }, "prepayment 2", domain.ErrUnknownStrategy},
		{"prepayment convention", func(c *domain.Configuration) { c.Loans[0].Prepayments[2].Convention = "" }, "prepayment 2", domain.ErrUnknownConvention},
		{"month and date", func(c *domain.Configuration) { c.Loans[1].Prepayments[0].Month = 29 }, "either month or date", nil},
		{"date without calendar", func(c *domain.Configuration) { c.Loans[1].FirstPaymentDate = nil }, "needs a first payment date", domain.ErrInvalidMonth},
		{"date before first payment", func(c *domain.Configuration) {
			early := c.Loans[1].FirstPaymentDate.AddDate(0, 0, -1)
			c.Loans[1].Prepayments[0].Date = &early
		}, "prepayment 0", domain.ErrInvalidMonth},
		{"combined convention", func(c *domain.Configuration) { c.Combined[0].Convention = "bullet" }, "combined loan 0", domain.ErrUnknownConvention},
		{"combined tranche", func(c *domain.Configuration) { c.Combined[0].Commercial.Principal = decimal.Zero }, "commercial tranche", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := parser.ValidateConfiguration(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestValidateConfiguration_CombinedOnly(t *testing.T) {
	cfg := validConfig()
	cfg.Loans = nil
	assert.NoError(t, NewInputParser().ValidateConfiguration(cfg))
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.SaveConfiguration(parser.CreateExampleConfiguration(), path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	example := parser.CreateExampleConfiguration()
	require.Len(t, loaded.Loans, len(example.Loans))
	assert.Equal(t, example.Loans[0].Name, loaded.Loans[0].Name)
	assert.True(t, loaded.Loans[0].Loan.AnnualRatePercent.Equal(example.Loans[0].Loan.AnnualRatePercent))
	assert.Len(t, loaded.Loans[0].Prepayments, 3)
	assert.Equal(t, example.Combined[0].Convention, loaded.Combined[0].Convention)
}

func TestParse(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(`{"loans":[{"name":"json","loan":{"principal":100000,"annual_rate_percent":5,"term_years":10}}]}`))
	assert.NoError(t, err, "JSON is accepted as YAML")

	_, err = NewInputParser().Parse([]byte("loans: []\n"))
	assert.ErrorContains(t, err, "configuration validation failed")
}

const datedScenarioYAML = `loans:
  - name: "Dated"
    first_payment_date: 2025-01-31
    loan:
      principal: 500000
      annual_rate_percent: 4.1
      term_years: 25
    prepayments:
      - date: 2025-02-28
        amount: 10000
        strategy: reduce-term
        convention: equal-installment
`

func TestParse_PrepaymentByDate(t *testing.T) {
	config, err := NewInputParser().Parse([]byte(datedScenarioYAML))
	require.NoError(t, err)

	loan := config.Loans[0]
	require.NotNil(t, loan.FirstPaymentDate)
	assert.Equal(t, "2025-01-31", loan.FirstPaymentDate.Format(time.DateOnly))

	month, err := loan.Prepayments[0].ResolveMonth(loan.FirstPaymentDate)
	require.NoError(t, err)
	assert.Equal(t, 2, month, "payment due on the clamped month end")
}

func TestExampleConfiguration_DatedPrepayment(t *testing.T) {
	refi := validConfig().Loans[1]
	month, err := refi.Prepayments[0].ResolveMonth(refi.FirstPaymentDate)
	require.NoError(t, err)
	assert.Equal(t, 29, month)
}
