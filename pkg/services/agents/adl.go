package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/narrative"
)

// adlCategory is one recorded ADL category with its most dependent level
type adlCategory struct {
	Name        string
	Activities  []narrative.ActivityEntry
	Level       domain.IndependenceLevel
	SupportNeed string
	Assistance  string
	Frequency   string
}

type adlData struct {
	Categories      []adlCategory
	OverallLevel    domain.IndependenceLevel
	Equipment       []string
	Recommendations []string
	Analysis        narrative.ADLAnalysis
}

var adlFrequencies = map[string]string{
	"bathing":   "Daily",
	"dressing":  "Twice daily",
	"feeding":   "Each meal",
	"toileting": "Multiple times daily",
	"transfers": "Multiple times daily",
	"grooming":  "Daily",
}

var adlRecommendations = map[string]string{
	"bathing":   "Bathroom equipment assessment (shower chair, grab bars)",
	"dressing":  "Adaptive dressing aids (long-handled reacher, sock aid)",
	"feeding":   "Adaptive utensils and meal set-up assistance",
	"toileting": "Raised toilet seat and toileting support",
	"transfers": "Transfer training and equipment review",
	"grooming":  "Seated grooming station with adaptive tools",
}

func NewBasicADLAgent(cfg Config) SectionAgent {
	return New(Definition[adlData]{
		Name:  "basic_adl",
		Title: "Activities of Daily Living",
		Order: 4.1,
		Required: []FieldRequirement{
			requireFunctionalAssessment,
			Require("functionalAssessment.adl", func(d *domain.AssessmentData) bool {
				return len(d.GetFunctionalAssessment().GetADL()) > 0
			}),
		},
		Rules: []Rule{func(d *domain.AssessmentData) ([]string, []string) {
			return validateIndependenceLevels(d.GetFunctionalAssessment().GetADL())
		}},
		Process: processADL,
		Format:  formatADL,
	}, cfg)
}

// validateIndependenceLevels rejects levels that do not map to the scale
func validateIndependenceLevels(groups map[string]map[string]domain.ActivityRecord) ([]string, []string) {
	var errs, warnings []string
	for _, category := range sortedKeys(groups) {
		for _, activity := range sortedKeys(groups[category]) {
			raw := groups[category][activity].Independence
			if !hasText(raw) {
				warnings = append(warnings, fmt.Sprintf("No independence level recorded for %s.%s", category, activity))
				continue
			}
			if _, ok := domain.ParseIndependenceLevel(raw); !ok {
				errs = append(errs, fmt.Sprintf("Invalid independence level for %s.%s: %s", category, activity, raw))
			}
		}
	}
	return errs, warnings
}

func assistanceType(level domain.IndependenceLevel) string {
	switch level {
	case domain.LevelSupervision:
		return "Standby supervision"
	case domain.LevelMinimalAssistance:
		return "Hands-on assistance (minimal)"
	case domain.LevelModerateAssistance:
		return "Hands-on assistance (moderate)"
	case domain.LevelMaximalAssistance, domain.LevelTotalAssistance:
		return "Full physical assistance"
	default:
		return ""
	}
}

func processADL(_ context.Context, in Input) (adlData, []string, error) {
	groups := in.Assessment.GetFunctionalAssessment().GetADL()
	if len(groups) == 0 {
		return adlData{}, nil, errNoData("functionalAssessment.adl")
	}

	entries := narrative.Activities(groups)
	result := adlData{
		OverallLevel: domain.LevelNotAssessed,
		Analysis:     narrative.AnalyzeADL(entries),
	}

	byCategory := make(map[string][]narrative.ActivityEntry)
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
		result.Equipment = append(result.Equipment, e.Record.Equipment...)
	}
	result.Equipment = dedupeStrings(result.Equipment)

	for _, name := range sortedKeys(byCategory) {
		category := adlCategory{Name: name, Activities: byCategory[name], Level: domain.LevelNotAssessed}
		for _, e := range category.Activities {
			if e.Level.MoreDependent(category.Level) {
				category.Level = e.Level
			}
		}
		if category.Level.MoreDependent(result.OverallLevel) {
			result.OverallLevel = category.Level
		}

		if category.Level.RequiresAssistance() {
			key := domain.SnakeCase(name)
			category.SupportNeed = fmt.Sprintf("%s: %s", domain.Humanize(name), category.Level.Label())
			category.Assistance = assistanceType(category.Level)
			category.Frequency = valueOr(adlFrequencies[key], "As needed")
			recommendation, ok := adlRecommendations[key]
			if !ok {
				recommendation = fmt.Sprintf("Caregiver support for %s", strings.ToLower(domain.Humanize(name)))
			}
			result.Recommendations = append(result.Recommendations, recommendation)
		}
		result.Categories = append(result.Categories, category)
	}
	result.Recommendations = dedupeStrings(result.Recommendations)
	return result, nil, nil
}

func (d adlData) supportNeeds() []string {
	var needs []string
	for _, c := range d.Categories {
		if c.SupportNeed != "" {
			needs = append(needs, c.SupportNeed)
		}
	}
	return needs
}

func activityLine(e narrative.ActivityEntry, level domain.DetailLevel) string {
	line := fmt.Sprintf("%s: %s", domain.Humanize(e.Activity), e.Level.Label())
	if level != domain.DetailDetailed {
		return line
	}
	if len(e.Record.Equipment) > 0 {
		line += " (equipment: " + listOr(e.Record.Equipment, NoneReported) + ")"
	}
	if hasText(e.Record.Notes) {
		line += "; " + strings.TrimSpace(e.Record.Notes)
	}
	return line
}

func formatADL(p ProcessedData[adlData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		needs := d.supportNeeds()
		if len(needs) == 0 {
			return fmt.Sprintf("Overall level: %s. No support needs identified.", d.OverallLevel.Label())
		}
		return fmt.Sprintf("Overall level: %s. Support needed for %s.", d.OverallLevel.Label(), strings.ToLower(listOr(needs, NoneReported)))
	}

	var w writer
	w.field("Overall Level", d.OverallLevel.Label())
	for _, c := range d.Categories {
		w.heading(domain.Humanize(c.Name))
		for _, e := range c.Activities {
			w.line("- %s", activityLine(e, level))
		}
	}

	w.heading("Support Needs")
	w.bullets(d.supportNeeds(), NoneReported)

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Assistance Plan")
	planned := 0
	for _, c := range d.Categories {
		if c.Assistance == "" {
			continue
		}
		planned++
		w.line("- %s: %s, %s", domain.Humanize(c.Name), c.Assistance, strings.ToLower(c.Frequency))
	}
	if planned == 0 {
		w.line("- %s", NoneReported)
	}

	w.heading("Equipment in Use")
	w.bullets(d.Equipment, NoneReported)

	writeDomainAnalysis(&w, d.Analysis)

	w.heading("Recommendations")
	w.bullets(d.Recommendations, NoneReported)
	return w.String()
}

// writeDomainAnalysis renders the functional domain narrative shared by the ADL agents
func writeDomainAnalysis(w *writer, analysis narrative.ADLAnalysis) {
	w.heading("Functional Domains")
	if analysis.Empty() {
		w.line("- %s", NotAssessed)
		return
	}
	for _, da := range analysis.Domains {
		w.line("%s: %s (average %s/5)", da.Domain.Label(), da.Status.Label(), number(da.AverageScore))
		w.line("  %s", da.ClinicalContext)
		for _, l := range da.Limitations {
			w.line("  - %s", l)
		}
		for _, c := range da.Compensations {
			w.line("  - %s", c)
		}
	}
}
