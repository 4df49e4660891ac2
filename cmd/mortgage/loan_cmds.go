package main

import (
	"fmt"
	"io"

	"github.com/rpgo/mortgage-calculator/internal/calculation"
	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/rpgo/mortgage-calculator/internal/output"
	money "github.com/rpgo/mortgage-calculator/pkg/decimal"
	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	var (
		tf         termsFlags
		convention string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the repayment schedule of a loan",
		Example: `  mortgage schedule --principal 100万 --rate 4.9 --years 30
  mortgage schedule --principal 500000 --rate 4.1 --months 240 --convention ep --limit 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := tf.terms()
			if err != nil {
				return err
			}
			c, err := parseConvention(convention)
			if err != nil {
				return err
			}
			schedule, err := calculation.GenerateSchedule(terms, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTerms(out, terms)
			printSummary(out, calculation.Summarize(schedule, c, terms.Principal))
			fmt.Fprintln(out)
			printSchedule(out, schedule, limit)
			return nil
		},
	}
	tf.register(cmd, "", "")
	cmd.Flags().StringVarP(&convention, "convention", "c", "ei", "repayment convention: ei (equal installment) or ep (equal principal)")
	cmd.Flags().IntVar(&limit, "limit", 0, "print only the first N months (0 prints all)")
	return cmd
}

func newPrepayCmd() *cobra.Command {
	var (
		tf         termsFlags
		convention string
		strategy   string
		month      int
		amount     string
		commit     bool
	)
	cmd := &cobra.Command{
		Use:   "prepay",
		Short: "Preview or commit a one-off prepayment",
		Long: `prepay previews a prepayment at the given month under one strategy, or both
when --strategy is omitted. With --commit the prepayment is recorded and the
resulting schedule summary is printed instead.`,
		Example: `  mortgage prepay --principal 100万 --rate 4.9 --years 30 --month 60 --amount 20万
  mortgage prepay --principal 100万 --rate 4.9 --years 30 --month 60 --amount 20万 --strategy reduce-term --commit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := tf.terms()
			if err != nil {
				return err
			}
			c, err := parseConvention(convention)
			if err != nil {
				return err
			}
			amt, err := money.ParseAmount(amount)
			if err != nil {
				return err
			}
			loan, err := calculation.NewLoan(terms)
			if err != nil {
				return err
			}
			loan.SetLogger(engineLogger("prepay"))

			out := cmd.OutOrStdout()
			printTerms(out, terms)

			if commit {
				s, err := domain.ParseStrategy(strategy)
				if err != nil {
					return fmt.Errorf("--commit needs --strategy: %w", err)
				}
				if err := loan.AddPrepayment(month, amt.Decimal, s, c); err != nil {
					return err
				}
				summary, err := loan.Summary(c)
				if err != nil {
					return err
				}
				saved, err := loan.InterestSaved(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Committed %s prepayment of %s at month %d\n", s, output.FormatCurrency(amt.Decimal), month)
				printSummary(out, summary)
				fmt.Fprintf(out, "Interest saved:   %s\n", output.FormatCurrency(saved))
				return nil
			}

			if strategy == "" {
				cmp, err := calculation.ComparePrepaymentStrategies(loan, month, amt.Decimal, c)
				if err != nil {
					return err
				}
				printOutcome(out, *cmp.ReduceTerm)
				if !cmp.ReduceTerm.FullPayoff {
					printOutcome(out, *cmp.ReducePayment)
				}
				return nil
			}

			s, err := domain.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			outcome, err := loan.Preview(s, month, amt.Decimal, c)
			if err != nil {
				return err
			}
			printOutcome(out, outcome)
			return nil
		},
	}
	tf.register(cmd, "", "")
	cmd.Flags().StringVarP(&convention, "convention", "c", "ei", "repayment convention: ei or ep")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "reduce-term or reduce-payment (default: preview both)")
	cmd.Flags().IntVar(&month, "month", 0, "payment number the prepayment follows")
	cmd.Flags().StringVar(&amount, "amount", "", "prepaid principal, e.g. 200000 or 20万")
	cmd.Flags().BoolVar(&commit, "commit", false, "record the prepayment instead of previewing it")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newCombinedCmd() *cobra.Command {
	var (
		pf, comm   termsFlags
		convention string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "combined",
		Short: "Compose a provident-fund loan with a commercial loan",
		Example: `  mortgage combined --pf-principal 30万 --pf-rate 3.25 --pf-years 20 \
    --comm-principal 50万 --comm-rate 4.9 --comm-years 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pfTerms, err := pf.terms()
			if err != nil {
				return fmt.Errorf("provident fund: %w", err)
			}
			commTerms, err := comm.terms()
			if err != nil {
				return fmt.Errorf("commercial: %w", err)
			}
			c, err := parseConvention(convention)
			if err != nil {
				return err
			}
			loan, err := calculation.CreateCombinedLoan(pfTerms, commTerms, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := loan.Summary()
			fmt.Fprintln(out, "Provident fund")
			printTerms(out, pfTerms)
			printSummary(out, s.ProvidentFund)
			fmt.Fprintln(out, "Commercial")
			printTerms(out, commTerms)
			printSummary(out, s.Commercial)
			fmt.Fprintln(out, "Combined")
			fmt.Fprintf(out, "Loan amount:      %s\n", output.FormatCurrency(s.TotalLoanAmount))
			fmt.Fprintf(out, "First month:      %s\n", output.FormatCurrency(s.FirstMonthTotalPayment))
			fmt.Fprintf(out, "Total interest:   %s\n", output.FormatCurrency(s.TotalInterest))
			fmt.Fprintf(out, "Total payment:    %s\n", output.FormatCurrency(s.TotalPayment))
			fmt.Fprintf(out, "Term:             %s\n", output.FormatTerm(s.MaxMonths))

			if limit > 0 {
				fmt.Fprintln(out)
				fmt.Fprintf(out, "%5s %14s %14s %14s\n", "Month", "Provident", "Commercial", "Total")
				for _, e := range loan.Schedule() {
					if e.Month > limit {
						break
					}
					fmt.Fprintf(out, "%5d %14s %14s %14s\n", e.Month, e.PFPayment.StringFixed(2), e.CommPayment.StringFixed(2), e.TotalPayment.StringFixed(2))
				}
			}
			return nil
		},
	}
	pf.register(cmd, "pf-", "provident fund ")
	comm.register(cmd, "comm-", "commercial ")
	cmd.Flags().StringVarP(&convention, "convention", "c", "ei", "repayment convention shared by both tranches: ei or ep")
	cmd.Flags().IntVar(&limit, "limit", 0, "also print the first N combined months")
	return cmd
}

func printTerms(w io.Writer, t domain.LoanTerms) {
	fmt.Fprintf(w, "Principal:        %s (%s)\n", output.FormatCurrency(t.Principal), money.NewMoneyFromDecimal(t.Principal).FormatWan())
	fmt.Fprintf(w, "Annual rate:      %s\n", output.FormatPercentage(t.AnnualRatePercent()))
	fmt.Fprintf(w, "Term:             %s (%d months)\n", output.FormatTerm(t.Months), t.Months)
}

func printSummary(w io.Writer, s domain.Summary) {
	fmt.Fprintf(w, "Convention:       %s\n", s.Convention)
	if s.Convention == domain.EqualInstallment {
		fmt.Fprintf(w, "Monthly payment:  %s\n", output.FormatCurrency(s.MonthlyPayment))
	} else {
		fmt.Fprintf(w, "First payment:    %s\n", output.FormatCurrency(s.FirstMonthPayment))
		fmt.Fprintf(w, "Last payment:     %s\n", output.FormatCurrency(s.LastMonthPayment))
	}
	fmt.Fprintf(w, "Months:           %d\n", s.Months)
	fmt.Fprintf(w, "Total interest:   %s\n", output.FormatCurrency(s.TotalInterest))
	fmt.Fprintf(w, "Total payment:    %s\n", output.FormatCurrency(s.TotalPayment))
}

func printSchedule(w io.Writer, s domain.Schedule, limit int) {
	fmt.Fprintf(w, "%5s %14s %14s %14s %14s %16s\n", "Month", "Payment", "Principal", "Interest", "Prepayment", "Remaining")
	for _, e := range s {
		if limit > 0 && e.Month > limit {
			break
		}
		fmt.Fprintf(w, "%5d %14s %14s %14s %14s %16s\n",
			e.Month,
			e.Payment.StringFixed(2),
			e.Principal.StringFixed(2),
			e.Interest.StringFixed(2),
			e.Prepayment.StringFixed(2),
			e.RemainingPrincipal.StringFixed(2))
	}
}

func printOutcome(w io.Writer, o domain.PrepaymentOutcome) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Strategy:         %s\n", o.Strategy)
	if o.FullPayoff {
		fmt.Fprintf(w, "Full payoff at month %d\n", o.Month)
	}
	fmt.Fprintf(w, "Months:           %d -> %d (%d fewer)\n", o.OriginalTotalMonths, o.NewTotalMonths, o.MonthsReduced)
	fmt.Fprintf(w, "Payment:          %s -> %s\n", output.FormatCurrency(o.OriginalPayment), output.FormatCurrency(o.NewPayment))
	fmt.Fprintf(w, "Total interest:   %s -> %s\n", output.FormatCurrency(o.TotalInterestOriginal), output.FormatCurrency(o.TotalInterestNew))
	fmt.Fprintf(w, "Interest saved:   %s\n", output.FormatCurrency(o.InterestSaved))
}
