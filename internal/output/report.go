package output

import (
	"os"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// Render formats report with the named formatter.
func Render(report *domain.ScenarioReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport writes report to dir in the given format and returns the
// files written. "all" writes the verbose console report plus the detailed
// schedule CSV.
func GenerateReport(report *domain.ScenarioReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, report, dir, Extension(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	name, err := WriteFormatted(f, report, dir, Extension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// SaveConfiguration writes the scenario configuration that produced a report
// next to it, so the numbers can be regenerated.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
