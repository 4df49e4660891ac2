package output

import (
	"encoding/json"

	"github.com/rpgo/mortgage-calculator/internal/domain"
)

// JSONFormatter serializes the scenario report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ScenarioReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
