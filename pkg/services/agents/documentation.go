package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

// staleDocumentMonths is the age after which medical records should be refreshed
const staleDocumentMonths = 6

type documentEntry struct {
	Title           string
	Date            string
	Type            string
	Provider        string
	Summary         string
	Findings        []string
	Recommendations []string
	parsed          time.Time
}

type documentationData struct {
	Medical         []documentEntry
	Legal           []documentEntry
	Other           []documentEntry
	Recommendations []string
}

func (d documentationData) total() int {
	return len(d.Medical) + len(d.Legal) + len(d.Other)
}

func NewDocumentationAgent(cfg Config) SectionAgent {
	return New(Definition[documentationData]{
		Name:  "documentation",
		Title: "Documentation Review",
		Order: 1.1,
		Required: []FieldRequirement{
			Require("documentation", func(d *domain.AssessmentData) bool {
				return d.GetDocumentation() != nil
			}),
		},
		Rules:   []Rule{validateDocumentDates},
		Process: processDocumentation,
		Format:  formatDocumentation,
	}, cfg)
}

func validateDocumentDates(data *domain.AssessmentData) ([]string, []string) {
	docs := data.GetDocumentation()
	if docs == nil {
		return nil, nil
	}
	var errs, warnings []string
	for _, group := range [][]domain.Document{docs.Medical, docs.Legal, docs.Other} {
		for _, doc := range group {
			if !hasText(doc.Date) {
				continue
			}
			if _, err := domain.ParseDate(doc.Date); err != nil {
				errs = append(errs, fmt.Sprintf("Invalid date for document %q: %s", valueOr(doc.Title, "Untitled Document"), doc.Date))
			}
		}
	}
	if len(docs.Medical) == 0 {
		warnings = append(warnings, "No medical documentation provided")
	}
	return errs, warnings
}

func processDocumentation(_ context.Context, in Input) (documentationData, []string, error) {
	docs := in.Assessment.GetDocumentation()
	if docs == nil {
		return documentationData{}, nil, errNoData("documentation")
	}

	result := documentationData{
		Medical: normalizeDocuments(docs.Medical),
		Legal:   normalizeDocuments(docs.Legal),
		Other:   normalizeDocuments(docs.Other),
	}

	var recommendations []string
	for _, group := range [][]documentEntry{result.Medical, result.Legal, result.Other} {
		for _, doc := range group {
			recommendations = append(recommendations, doc.Recommendations...)
		}
	}

	if len(result.Medical) == 0 {
		recommendations = append(recommendations, "Obtain recent medical records")
	} else if oldest, ok := oldestDocument(result.Medical); ok && !in.Shared.ReferenceDate.IsZero() &&
		domain.MonthsBetween(oldest, in.Shared.ReferenceDate) > staleDocumentMonths {
		recommendations = append(recommendations, "Update medical documentation")
	}
	result.Recommendations = dedupeStrings(recommendations)
	return result, nil, nil
}

func normalizeDocuments(docs []domain.Document) []documentEntry {
	entries := make([]documentEntry, 0, len(docs))
	for _, doc := range docs {
		entry := documentEntry{
			Title:           valueOr(doc.Title, "Untitled Document"),
			Date:            valueOr(doc.Date, "Unknown date"),
			Type:            doc.Type,
			Provider:        doc.Provider,
			Summary:         doc.Summary,
			Findings:        doc.RelevantFindings,
			Recommendations: doc.Recommendations,
		}
		if t, err := domain.ParseDate(doc.Date); err == nil {
			entry.parsed = t
		}
		entries = append(entries, entry)
	}
	return entries
}

func oldestDocument(docs []documentEntry) (time.Time, bool) {
	var oldest time.Time
	for _, d := range docs {
		if d.parsed.IsZero() {
			continue
		}
		if oldest.IsZero() || d.parsed.Before(oldest) {
			oldest = d.parsed
		}
	}
	return oldest, !oldest.IsZero()
}

func formatDocumentation(p ProcessedData[documentationData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		return fmt.Sprintf("%d documents reviewed (%d medical, %d legal, %d other).",
			d.total(), len(d.Medical), len(d.Legal), len(d.Other))
	}

	var w writer
	groups := []struct {
		title string
		docs  []documentEntry
	}{
		{"Medical Documentation", d.Medical},
		{"Legal Documentation", d.Legal},
		{"Other Documentation", d.Other},
	}
	for _, g := range groups {
		w.heading(g.title)
		if len(g.docs) == 0 {
			w.line("- %s", NoneReported)
			continue
		}
		for _, doc := range g.docs {
			entry := fmt.Sprintf("%s (%s)", doc.Title, doc.Date)
			if hasText(doc.Provider) {
				entry += " - " + doc.Provider
			}
			w.line("- %s", entry)
			if level != domain.DetailDetailed {
				continue
			}
			if hasText(doc.Summary) {
				w.line("  Summary: %s", doc.Summary)
			}
			for _, f := range doc.Findings {
				if hasText(f) {
					w.line("  Finding: %s", f)
				}
			}
		}
	}

	if level == domain.DetailDetailed || len(d.Recommendations) > 0 {
		w.heading("Recommendations")
		w.bullets(d.Recommendations, NoneReported)
	}
	return w.String()
}
