package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/mortgage-calculator/internal/domain"
)

// CalculationEngine runs the loans and combined loans of a scenario file.
type CalculationEngine struct {
	Debug  bool // Log every schedule entry at debug level
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// BuildLoan creates a loan from scenario input and commits its prepayments
// in file order.
func (ce *CalculationEngine) BuildLoan(scenario *domain.LoanScenario) (*Loan, error) {
	terms, err := scenario.Loan.Terms()
	if err != nil {
		return nil, err
	}
	loan, err := NewLoan(terms)
	if err != nil {
		return nil, err
	}
	loan.SetLogger(WithPrefix(ce.Logger, scenario.Name))

	for i, p := range scenario.Prepayments {
		strategy, err := domain.ParseStrategy(p.Strategy)
		if err != nil {
			return nil, fmt.Errorf("prepayment %d: %w", i, err)
		}
		convention, err := domain.ParseConvention(p.Convention)
		if err != nil {
			return nil, fmt.Errorf("prepayment %d: %w", i, err)
		}
		month, err := p.ResolveMonth(scenario.FirstPaymentDate)
		if err != nil {
			return nil, fmt.Errorf("prepayment %d: %w", i, err)
		}
		if err := loan.AddPrepayment(month, p.Amount, strategy, convention); err != nil {
			return nil, fmt.Errorf("prepayment %d: %w", i, err)
		}
	}
	return loan, nil
}

// RunLoanScenario computes the report of a single loan.
func (ce *CalculationEngine) RunLoanScenario(ctx context.Context, scenario *domain.LoanScenario) (*domain.LoanReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loan, err := ce.BuildLoan(scenario)
	if err != nil {
		return nil, err
	}

	report := &domain.LoanReport{
		Name:             scenario.Name,
		Terms:            loan.Terms(),
		FirstPaymentDate: scenario.FirstPaymentDate,
		Prepayments:      loan.PrepaymentHistory(),
	}
	for _, c := range domain.Conventions {
		original, err := loan.OriginalSummary(c)
		if err != nil {
			return nil, err
		}
		current, err := loan.Summary(c)
		if err != nil {
			return nil, err
		}
		saved, err := loan.InterestSaved(c)
		if err != nil {
			return nil, err
		}
		originalSchedule, _ := loan.OriginalSchedule(c)
		schedule, _ := loan.Schedule(c)
		result := domain.ConventionResult{
			Convention:       c,
			Original:         original,
			Current:          current,
			InterestSaved:    saved,
			OriginalSchedule: originalSchedule,
			Schedule:         schedule,
		}
		if payoff, ok := report.PaymentDate(current.Months); ok {
			result.PayoffDate = &payoff
		}
		report.Conventions = append(report.Conventions, result)
		ce.logSchedule(scenario.Name, c, schedule)
	}

	report.Comparison, err = CompareConventions(loan)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// RunCombinedScenario computes the report of a dual-tranche loan.
func (ce *CalculationEngine) RunCombinedScenario(ctx context.Context, scenario *domain.CombinedScenario) (*domain.CombinedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	convention, err := domain.ParseConvention(scenario.Convention)
	if err != nil {
		return nil, err
	}
	pf, err := scenario.ProvidentFund.Terms()
	if err != nil {
		return nil, fmt.Errorf("provident fund tranche: %w", err)
	}
	comm, err := scenario.Commercial.Terms()
	if err != nil {
		return nil, fmt.Errorf("commercial tranche: %w", err)
	}
	cl, err := CreateCombinedLoan(pf, comm, convention)
	if err != nil {
		return nil, err
	}
	return &domain.CombinedReport{
		Name:          scenario.Name,
		ProvidentFund: pf,
		Commercial:    comm,
		Summary:       cl.Summary(),
		Schedule:      cl.Schedule(),
	}, nil
}

// RunScenarios runs every scenario in the configuration.
func (ce *CalculationEngine) RunScenarios(config *domain.Configuration) (*domain.ScenarioReport, error) {
	ctx := context.Background()
	report := &domain.ScenarioReport{}

	for i := range config.Loans {
		lr, err := ce.RunLoanScenario(ctx, &config.Loans[i])
		if err != nil {
			return nil, fmt.Errorf("loan %q: %w", config.Loans[i].Name, err)
		}
		report.Loans = append(report.Loans, *lr)
	}
	for i := range config.Combined {
		cr, err := ce.RunCombinedScenario(ctx, &config.Combined[i])
		if err != nil {
			return nil, fmt.Errorf("combined loan %q: %w", config.Combined[i].Name, err)
		}
		report.Combined = append(report.Combined, *cr)
	}

	ce.Logger.Infof("computed %d loan(s) and %d combined loan(s)", len(report.Loans), len(report.Combined))
	return report, nil
}

func (ce *CalculationEngine) logSchedule(name string, c domain.Convention, s domain.Schedule) {
	if !ce.Debug {
		return
	}
	ce.Logger.Debugf("%s %s schedule (%d months)", name, c, s.Len())
	for _, e := range s {
		ce.Logger.Debugf("  %4d payment=%s principal=%s interest=%s prepaid=%s remaining=%s",
			e.Month, e.Payment.StringFixed(2), e.Principal.StringFixed(2), e.Interest.StringFixed(2),
			e.Prepayment.StringFixed(2), e.RemainingPrincipal.StringFixed(2))
	}
}
