package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxTermMonths bounds loan terms to fifty years.
const MaxTermMonths = 600

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario file from YAML (JSON is valid YAML)
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario file contents
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Loans) == 0 && len(config.Combined) == 0 {
		return fmt.Errorf("no loans or combined loans provided")
	}

	names := make(map[string]bool)
	for i, scenario := range config.Loans {
		if err := ip.validateLoanScenario(&scenario); err != nil {
			return fmt.Errorf("loan %d validation failed: %w", i, err)
		}
		if names[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		names[scenario.Name] = true
	}

	for i, scenario := range config.Combined {
		if err := ip.validateCombinedScenario(&scenario); err != nil {
			return fmt.Errorf("combined loan %d validation failed: %w", i, err)
		}
		if names[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		names[scenario.Name] = true
	}

	return nil
}

// validateLoanScenario validates a single loan and its prepayments
func (ip *InputParser) validateLoanScenario(scenario *domain.LoanScenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if err := ip.ValidateLoanInput(&scenario.Loan); err != nil {
		return err
	}

	months := scenario.Loan.Months()
	for i, p := range scenario.Prepayments {
		if p.Month != 0 && p.Date != nil {
			return fmt.Errorf("prepayment %d: set either month or date, not both", i)
		}
		month, err := p.ResolveMonth(scenario.FirstPaymentDate)
		if err != nil {
			return fmt.Errorf("prepayment %d: %w", i, err)
		}
		if month < 1 || month > months {
			return fmt.Errorf("prepayment %d: month must be between 1 and %d: %w", i, months, domain.ErrInvalidMonth)
		}
		if p.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("prepayment %d: amount must be positive: %w", i, domain.ErrInvalidAmount)
		}
		if p.Amount.GreaterThan(scenario.Loan.Principal) {
			return fmt.Errorf("prepayment %d: amount cannot exceed the principal: %w", i, domain.ErrInvalidAmount)
		}
		if _, err := domain.ParseStrategy(p.Strategy); err != nil {
			return fmt.Errorf("prepayment %d: %w", i, err)
		}
		if _, err := domain.ParseConvention(p.Convention); err != nil {
			return fmt.Errorf("prepayment %d: %w", i, err)
		}
	}

	return nil
}

// validateCombinedScenario validates both tranches and the shared convention
func (ip *InputParser) validateCombinedScenario(scenario *domain.CombinedScenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if _, err := domain.ParseConvention(scenario.Convention); err != nil {
		return err
	}
	if err := ip.ValidateLoanInput(&scenario.ProvidentFund); err != nil {
		return fmt.Errorf("provident fund tranche: %w", err)
	}
	if err := ip.ValidateLoanInput(&scenario.Commercial); err != nil {
		return fmt.Errorf("commercial tranche: %w", err)
	}
	return nil
}

// ValidateLoanInput validates principal, rate and term of one loan or tranche
func (ip *InputParser) ValidateLoanInput(in *domain.LoanInput) error {
	if in.Principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("principal must be positive")
	}
	if in.AnnualRatePercent.LessThan(decimal.Zero) {
		return fmt.Errorf("annual rate cannot be negative")
	}
	if in.AnnualRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("annual rate must be a percentage no greater than 100")
	}
	if in.TermYears < 0 || in.TermMonths < 0 {
		return fmt.Errorf("term cannot be negative")
	}
	if months := in.Months(); months <= 0 || months > MaxTermMonths {
		return fmt.Errorf("term must be between 1 and %d months", MaxTermMonths)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	refinanceStart := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	refinanceBonus := time.Date(2027, time.June, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Configuration{
		Loans: []domain.LoanScenario{
			{
				Name: "First Home",
				Loan: domain.LoanInput{
					Principal:         decimal.NewFromInt(1_000_000),
					AnnualRatePercent: decimal.NewFromFloat(4.9),
					TermYears:         30,
				},
				Prepayments: []domain.PrepaymentInput{
					{Month: 36, Amount: decimal.NewFromInt(100_000), Strategy: string(domain.ReduceTerm), Convention: string(domain.EqualInstallment)},
					{Month: 60, Amount: decimal.NewFromInt(200_000), Strategy: string(domain.ReducePayment), Convention: string(domain.EqualInstallment)},
					{Month: 60, Amount: decimal.NewFromInt(200_000), Strategy: string(domain.ReduceTerm), Convention: string(domain.EqualPrincipal)},
				},
			},
			{
				Name: "Short Term Refinance",
				Loan: domain.LoanInput{
					Principal:         decimal.NewFromInt(400_000),
					AnnualRatePercent: decimal.NewFromFloat(3.85),
					TermYears:         15,
				},
				FirstPaymentDate: &refinanceStart,
				Prepayments: []domain.PrepaymentInput{
					{Date: &refinanceBonus, Amount: decimal.NewFromInt(50_000), Strategy: string(domain.ReduceTerm), Convention: string(domain.EqualInstallment)},
				},
			},
		},
		Combined: []domain.CombinedScenario{
			{
				Name:       "Provident Fund Plus Commercial",
				Convention: string(domain.EqualInstallment),
				ProvidentFund: domain.LoanInput{
					Principal:         decimal.NewFromInt(300_000),
					AnnualRatePercent: decimal.NewFromFloat(3.25),
					TermYears:         20,
				},
				Commercial: domain.LoanInput{
					Principal:         decimal.NewFromInt(500_000),
					AnnualRatePercent: decimal.NewFromFloat(4.9),
					TermYears:         30,
				},
			},
		},
	}
}

// SaveConfiguration writes a configuration as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
