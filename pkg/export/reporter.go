package export

import (
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// maxDisplayedAnomalies caps the console anomaly list; the report
// itself is uncapped.
const maxDisplayedAnomalies = 5

// Reporter renders cost reports to the console in a formatted text form.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.CostReport) error {
	if report.Summary == nil {
		_, err := fmt.Fprintln(c.writer, "No cost data available. Check your cloud provider configurations.")
		return err
	}

	funcMap := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"day":   func(t time.Time) string { return t.Format("2006-01-02") },
		"inc":   func(i int) int { return i + 1 },
	}

	tmpl := `=== COST SUMMARY ===
Total Cost: {{money .Summary.TotalCost}}
Average Daily Cost: {{money .Summary.AverageDailyCost}}
Date Range: {{day .Summary.DateRange.Start}} to {{day .Summary.DateRange.End}}

=== COST BY PROVIDER ===
{{range $provider, $cost := .Summary.CostByProvider -}}
{{$provider}}: {{money $cost}}
{{end}}
{{- if .Anomalies}}
=== COST ANOMALIES DETECTED ===
{{range .TopAnomalies -}}
Date: {{day .Date}}, Provider: {{.Provider}}, Cost: {{money .Cost}}, Severity: {{.Severity}}
{{end}}
{{- end}}
=== RECOMMENDATIONS ===
{{range $i, $rec := .Recommendations -}}
{{inc $i}}. {{$rec}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	data := struct {
		*domain.CostReport
		TopAnomalies []domain.Anomaly
	}{
		CostReport:   report,
		TopAnomalies: report.Anomalies,
	}
	if len(data.TopAnomalies) > maxDisplayedAnomalies {
		data.TopAnomalies = data.TopAnomalies[:maxDisplayedAnomalies]
	}

	return t.Execute(c.writer, data)
}
