package calculation

import (
	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareConventions contrasts equal-installment with equal-principal for
// the loan's original terms.
func CompareConventions(l *Loan) (domain.ConventionComparison, error) {
	installment, err := l.OriginalSummary(domain.EqualInstallment)
	if err != nil {
		return domain.ConventionComparison{}, err
	}
	principal, err := l.OriginalSummary(domain.EqualPrincipal)
	if err != nil {
		return domain.ConventionComparison{}, err
	}

	cheaper := domain.EqualPrincipal
	if installment.TotalInterest.LessThan(principal.TotalInterest) {
		cheaper = domain.EqualInstallment
	}
	return domain.ConventionComparison{
		EqualInstallment:   installment,
		EqualPrincipal:     principal,
		InterestDifference: installment.TotalInterest.Sub(principal.TotalInterest).Abs(),
		Cheaper:            cheaper,
	}, nil
}

// ComparePrepaymentStrategies previews both strategies for the same
// prepayment. A full payoff is identical under both, so the reduce-payment
// slot then repeats the reduce-term outcome.
func ComparePrepaymentStrategies(l *Loan, month int, amount decimal.Decimal, c domain.Convention) (domain.StrategyComparison, error) {
	term, err := l.PreviewReducedTerm(month, amount, c)
	if err != nil {
		return domain.StrategyComparison{}, err
	}
	payment := term
	if !term.FullPayoff {
		payment, err = l.PreviewReducedPayment(month, amount, c)
		if err != nil {
			return domain.StrategyComparison{}, err
		}
	}
	current, err := l.Schedule(c)
	if err != nil {
		return domain.StrategyComparison{}, err
	}
	return domain.StrategyComparison{
		Month:         month,
		Amount:        amount,
		Convention:    c,
		BaseInterest:  current.TotalInterest(),
		ReduceTerm:    &term,
		ReducePayment: &payment,
	}, nil
}
