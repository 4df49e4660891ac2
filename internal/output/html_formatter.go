package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with a yearly balance chart per loan.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":       FormatCurrency,
	"pct":        FormatPercentage,
	"term":       FormatTerm,
	"wan":        moneyWan,
	"convention": conventionLabel,
	"yearly":     yearlyTotals,
	"positive":   func(d decimal.Decimal) bool { return d.IsPositive() },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type balancePoint struct {
	Year    int     `json:"year"`
	Balance float64 `json:"balance"`
}

func balanceSeries(s domain.Schedule) []balancePoint {
	years := yearlyTotals(s)
	out := make([]balancePoint, 0, len(years))
	for _, y := range years {
		out = append(out, balancePoint{Year: y.Year, Balance: y.Balance.Round(2).InexactFloat64()})
	}
	return out
}

func (h HTMLFormatter) Format(report *domain.ScenarioReport) ([]byte, error) {
	var buf bytes.Buffer
	series := make(map[string]map[domain.Convention][]balancePoint, len(report.Loans))
	for _, lr := range report.Loans {
		m := make(map[domain.Convention][]balancePoint, len(lr.Conventions))
		for _, cr := range lr.Conventions {
			m[cr.Convention] = balanceSeries(cr.Schedule)
		}
		series[lr.Name] = m
	}
	data := struct {
		*domain.ScenarioReport
		Recommendation Recommendation
		Assumptions    []string
		Balances       map[string]map[domain.Convention][]balancePoint
	}{report, AnalyzeReport(report), DefaultAssumptions, series}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
