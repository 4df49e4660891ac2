package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/config"
	"github.com/rpgo/mortgage-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		format string
		outDir string
		debug  bool
	)
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run every loan and combined loan of a scenario file",
		Long: fmt.Sprintf(`run loads a scenario file, commits each loan's prepayments and renders a
report. Without --out the report goes to stdout.

Formats: %s
Aliases: %s`, strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(engineLogger("engine"))
			engine.Debug = debug
			report, err := engine.RunScenarios(cfg)
			if err != nil {
				return err
			}

			if outDir != "" {
				files, err := output.GenerateReport(report, format, outDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", f)
				}
				return nil
			}

			if output.NormalizeFormatName(format) == "all" {
				return fmt.Errorf("format \"all\" needs --out")
			}
			b, err := output.Render(report, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write the report into this directory")
	cmd.Flags().BoolVar(&debug, "debug-schedules", false, "log every schedule entry (with --verbose)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d loan(s), %d combined loan(s) OK\n", args[0], len(cfg.Loans), len(cfg.Combined))
			return nil
		},
	}
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_scenarios.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			parser := config.NewInputParser()
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filename)
			return nil
		},
	}
}
