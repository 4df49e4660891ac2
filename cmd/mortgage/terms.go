package main

import (
	"fmt"

	"github.com/rpgo/mortgage-calculator/internal/config"
	"github.com/rpgo/mortgage-calculator/internal/domain"
	money "github.com/rpgo/mortgage-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// termsFlags binds the principal, rate and term flags of one loan. prefix
// qualifies the flag names for combined tranches, e.g. "pf-".
type termsFlags struct {
	principal string
	rate      string
	years     int
	months    int
}

func (f *termsFlags) register(cmd *cobra.Command, prefix, label string) {
	cmd.Flags().StringVar(&f.principal, prefix+"principal", "", label+"principal, e.g. 1000000 or 100万")
	cmd.Flags().StringVar(&f.rate, prefix+"rate", "", label+"annual interest rate in percent, e.g. 4.9")
	cmd.Flags().IntVar(&f.years, prefix+"years", 0, label+"term in years")
	cmd.Flags().IntVar(&f.months, prefix+"months", 0, label+"term in months (overrides years)")
	_ = cmd.MarkFlagRequired(prefix + "principal")
	_ = cmd.MarkFlagRequired(prefix + "rate")
}

func (f *termsFlags) terms() (domain.LoanTerms, error) {
	principal, err := money.ParseAmount(f.principal)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	rate, err := decimal.NewFromString(f.rate)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("invalid rate %q: %w", f.rate, err)
	}
	in := domain.LoanInput{
		Principal:         principal.Decimal,
		AnnualRatePercent: rate,
		TermYears:         f.years,
		TermMonths:        f.months,
	}
	if err := config.NewInputParser().ValidateLoanInput(&in); err != nil {
		return domain.LoanTerms{}, err
	}
	return in.Terms()
}

// parseConvention accepts the full names and the ei/ep shorthands.
func parseConvention(s string) (domain.Convention, error) {
	switch s {
	case "ei", "EI":
		return domain.EqualInstallment, nil
	case "ep", "EP":
		return domain.EqualPrincipal, nil
	}
	return domain.ParseConvention(s)
}
