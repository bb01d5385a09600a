package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/narrative"
)

type iadlData struct {
	Activities      []narrative.ActivityEntry
	Independent     []string
	Assisted        []string
	Recommendations []string
	Analysis        narrative.ADLAnalysis
}

func NewIADLAgent(cfg Config) SectionAgent {
	return New(Definition[iadlData]{
		Name:  "iadl",
		Title: "Instrumental Activities of Daily Living",
		Order: 4.2,
		Required: []FieldRequirement{
			requireFunctionalAssessment,
			Require("functionalAssessment.iadl", func(d *domain.AssessmentData) bool {
				return len(d.GetFunctionalAssessment().GetIADL()) > 0
			}),
		},
		Rules: []Rule{func(d *domain.AssessmentData) ([]string, []string) {
			return validateIndependenceLevels(d.GetFunctionalAssessment().GetIADL())
		}},
		Process: processIADL,
		Format:  formatIADL,
	}, cfg)
}

func processIADL(_ context.Context, in Input) (iadlData, []string, error) {
	groups := in.Assessment.GetFunctionalAssessment().GetIADL()
	if len(groups) == 0 {
		return iadlData{}, nil, errNoData("functionalAssessment.iadl")
	}

	entries := narrative.Activities(groups)
	result := iadlData{
		Activities: entries,
		Analysis:   narrative.AnalyzeADL(entries),
	}
	for _, e := range entries {
		name := domain.Humanize(e.Activity)
		switch {
		case e.Level.IsIndependent():
			result.Independent = append(result.Independent, name)
		case e.Level.RequiresAssistance():
			result.Assisted = append(result.Assisted, fmt.Sprintf("%s (%s)", name, e.Level.Label()))
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("Consider support for %s - currently at %s level", strings.ToLower(name), strings.ToLower(e.Level.Label())))
		}
	}
	return result, nil, nil
}

func formatIADL(p ProcessedData[iadlData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		return fmt.Sprintf("Independent in %d of %d activities; assistance needed with %s.",
			len(d.Independent), len(d.Activities), listOr(d.Assisted, "none"))
	}

	var w writer
	w.heading("Activities")
	current := ""
	for _, e := range d.Activities {
		if e.Category != current {
			current = e.Category
			w.line("%s:", domain.Humanize(current))
		}
		w.line("- %s", activityLine(e, level))
	}

	w.heading("Requires Assistance")
	w.bullets(d.Assisted, NoneReported)

	w.heading("Recommendations")
	w.bullets(d.Recommendations, NoneReported)

	if level == domain.DetailDetailed {
		writeDomainAnalysis(&w, d.Analysis)
	}
	return w.String()
}
