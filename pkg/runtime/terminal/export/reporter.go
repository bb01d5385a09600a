package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/de-tools/assessment-atlas/pkg/adapters"
	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q, expected text or json", s)
	}
}

func (f Format) Extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "txt"
}

func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

const reportTemplate = `Clinical Assessment Report
Assessment: {{.AssessmentID}}
Report ID: {{.ID}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}
Detail Level: {{.DetailLevel}}
{{range .Sections}}
{{heading .Title}}
{{.Content}}
{{- if .Errors}}

Errors:{{range .Errors}}
  - {{.}}{{end}}{{end}}
{{- if .Warnings}}

Warnings:{{range .Warnings}}
  - {{.}}{{end}}{{end}}
{{end}}`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"heading": func(title string) string {
		return fmt.Sprintf("=== %s ===", title)
	},
}).Parse(reportTemplate))

// Render serialises a report in the given format
func Render(report *domain.Report, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(adapters.MapReportDomainToApi(*report)); err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
	case FormatText:
		if err := reportTmpl.Execute(&buf, report); err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return buf.Bytes(), nil
}

// Reporter renders reports and publishes them to a sink
type Reporter struct {
	sink   Sink
	format Format
}

func NewReporter(sink Sink, format Format) *Reporter {
	return &Reporter{sink: sink, format: format}
}

func (c *Reporter) Handle(ctx context.Context, report *domain.Report) error {
	body, err := Render(report, c.format)
	if err != nil {
		return err
	}
	return c.sink.Publish(ctx, Object{
		Key:         ObjectKey(report, c.format),
		Body:        body,
		ContentType: c.format.ContentType(),
	})
}

// ObjectKey names a report as <assessment>/<report id>.<ext>
func ObjectKey(report *domain.Report, format Format) string {
	assessment := report.AssessmentID
	if assessment == "" {
		assessment = "unidentified"
	}
	return fmt.Sprintf("%s/%s.%s", assessment, report.ID, format.Extension())
}
