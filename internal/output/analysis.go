package output

import (
	"sort"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the loan and convention whose prepayments save
// the most interest.
type Recommendation struct {
	LoanName         string
	Convention       domain.Convention
	InterestSaved    decimal.Decimal
	PercentageSaved  decimal.Decimal
	MonthsReduced    int
	OriginalInterest decimal.Decimal
}

// AnalyzeReport ranks every convention of every loan by interest saved and
// returns the best one. Loans without savings are not recommended.
func AnalyzeReport(report *domain.ScenarioReport) Recommendation {
	var ranks []Recommendation
	for _, lr := range report.Loans {
		for _, cr := range lr.Conventions {
			if !cr.InterestSaved.IsPositive() {
				continue
			}
			pct := decimal.Zero
			if cr.Original.TotalInterest.IsPositive() {
				pct = cr.InterestSaved.Div(cr.Original.TotalInterest).Mul(decimal.NewFromInt(100))
			}
			ranks = append(ranks, Recommendation{
				LoanName:         lr.Name,
				Convention:       cr.Convention,
				InterestSaved:    cr.InterestSaved,
				PercentageSaved:  pct,
				MonthsReduced:    cr.Original.Months - cr.Current.Months,
				OriginalInterest: cr.Original.TotalInterest,
			})
		}
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].InterestSaved.GreaterThan(ranks[j].InterestSaved) })
	return ranks[0]
}
