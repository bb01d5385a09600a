package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/assessment-atlas/pkg/services/report"
)

type TableConfig struct {
	OrderWidth  int
	AgentWidth  int
	StatusWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		OrderWidth:  5,
		AgentWidth:  24,
		StatusWidth: 7,
	}
}

// ValidationReporter prints per-agent validation results as a table
type ValidationReporter struct {
	writer io.Writer
	config TableConfig
}

func NewValidationReporter(writer io.Writer) *ValidationReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ValidationReporter{writer: writer, config: DefaultTableConfig()}
}

func (c *ValidationReporter) Handle(results []report.AgentValidation) error {
	funcMap := template.FuncMap{
		"formatRow": func(order any, agent, status string) string {
			return fmt.Sprintf("| %-*v | %-*s | %-*s |",
				c.config.OrderWidth, order,
				c.config.AgentWidth, agent,
				c.config.StatusWidth, status)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.OrderWidth+2),
				strings.Repeat("-", c.config.AgentWidth+2),
				strings.Repeat("-", c.config.StatusWidth+2))
		},
		"order": func(o float64) string {
			return fmt.Sprintf("%.1f", o)
		},
		"status": func(r report.AgentValidation) string {
			if r.Result.IsValid {
				return "ok"
			}
			return "invalid"
		},
	}

	tmpl := `{{separator}}
{{formatRow "Order" "Agent" "Status"}}
{{separator}}
{{range .}}{{formatRow (order .Order) .Name (status .)}}
{{range .Result.Errors}}    error: {{.}}
{{end}}{{range .Result.Warnings}}    warning: {{.}}
{{end}}{{end}}{{separator}}
`

	t, err := template.New("validation").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, results)
}
