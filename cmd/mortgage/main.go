package main

import (
	"fmt"
	"os"

	"github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mortgage",
		Short: "Loan amortization and prepayment calculator",
		Long: `mortgage builds equal-installment and equal-principal repayment schedules,
previews and commits prepayments, and composes provident-fund plus commercial
loans. Scenario files are YAML; see "mortgage example".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupFromEnv(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newScheduleCmd(),
		newPrepayCmd(),
		newCombinedCmd(),
		newRunCmd(),
		newValidateCmd(),
		newExampleCmd(),
		newServeCmd(),
	)
	return root
}

// engineLogger adapts the global zerolog logger for the engine.
func engineLogger(component string) calculation.Logger {
	return logging.NewAdapter(log.Logger).With("component", component)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
