package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/detectors"
)

const bergMaxScore = 56

type mobilityData struct {
	BergScore        int
	HasBerg          bool
	FallRisk         domain.Severity
	BergItems        map[string]int
	WalkingDistance  *float64
	OutdoorDistance  *float64
	Capacity         string
	AssistiveDevices []string
	Restrictions     []string
	Notes            string
	Recommendations  []string
}

func NewMobilityAgent(cfg Config) SectionAgent {
	return New(Definition[mobilityData]{
		Name:  "mobility",
		Title: "Mobility",
		Order: 2.0,
		Required: []FieldRequirement{
			requireFunctionalAssessment,
			Require("functionalAssessment.mobility", func(d *domain.AssessmentData) bool {
				fa := d.GetFunctionalAssessment()
				return fa.GetMobility() != nil || fa.GetBergBalance() != nil
			}),
		},
		Rules:   []Rule{validateMobilityMeasures},
		Process: processMobility,
		Format:  formatMobility,
	}, cfg)
}

func validateMobilityMeasures(data *domain.AssessmentData) ([]string, []string) {
	fa := data.GetFunctionalAssessment()
	var errs, warnings []string
	if score, ok := fa.GetBergBalance().GetTotalScore(); ok && (score < 0 || score > bergMaxScore) {
		errs = append(errs, fmt.Sprintf("Berg Balance Score must be between 0 and %d, got %d", bergMaxScore, score))
	}
	if m := fa.GetMobility(); m != nil {
		if m.WalkingDistance != nil && *m.WalkingDistance < 0 {
			errs = append(errs, "Walking distance cannot be negative")
		}
		if m.OutdoorDistance != nil && *m.OutdoorDistance < 0 {
			errs = append(errs, "Outdoor distance cannot be negative")
		}
	}
	if fa.GetBergBalance() == nil {
		warnings = append(warnings, "No Berg Balance assessment recorded")
	}
	return errs, warnings
}

// ambulationCapacity bands a walking distance in metres
func ambulationCapacity(metres float64) string {
	switch {
	case metres < 50:
		return "Limited to short household distances"
	case metres < 200:
		return "Household ambulator"
	case metres < 500:
		return "Limited community ambulator"
	default:
		return "Community ambulator"
	}
}

func processMobility(_ context.Context, in Input) (mobilityData, []string, error) {
	fa := in.Assessment.GetFunctionalAssessment()
	if fa == nil {
		return mobilityData{}, nil, errNoData("functionalAssessment")
	}

	result := mobilityData{
		BergScore: in.Shared.BergScore,
		HasBerg:   in.Shared.HasBerg,
		FallRisk:  in.Shared.FallRisk,
		Capacity:  NotAssessed,
	}
	if berg := fa.GetBergBalance(); berg != nil {
		result.BergItems = berg.Items
	}

	var warnings []string
	if m := fa.GetMobility(); m != nil {
		result.WalkingDistance = m.WalkingDistance
		result.OutdoorDistance = m.OutdoorDistance
		result.AssistiveDevices = dedupeStrings(m.AssistiveDevices)
		result.Restrictions = dedupeStrings(m.Restrictions)
		result.Notes = m.Notes
		if m.WalkingDistance != nil {
			result.Capacity = ambulationCapacity(*m.WalkingDistance)
		} else {
			warnings = append(warnings, "Walking distance not recorded")
		}
	}

	if result.HasBerg && result.FallRisk != domain.SeverityLow {
		result.Recommendations = append(result.Recommendations, "Falls prevention program with balance training")
	}
	if result.HasBerg && result.FallRisk == domain.SeverityHigh && len(result.AssistiveDevices) == 0 {
		result.Recommendations = append(result.Recommendations, "Assessment for a walking aid")
	}
	if result.WalkingDistance != nil && *result.WalkingDistance < 200 {
		result.Recommendations = append(result.Recommendations, "Graded walking program to improve endurance")
	}
	return result, warnings, nil
}

func (d mobilityData) bergSummary() string {
	if !d.HasBerg {
		return NotAssessed
	}
	return fmt.Sprintf("%d/%d (%s fall risk)", d.BergScore, bergMaxScore, d.FallRisk)
}

func metres(v *float64) string {
	if v == nil {
		return NotAssessed
	}
	return number(*v) + " m"
}

func formatMobility(p ProcessedData[mobilityData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		parts := []string{"Berg Balance: " + d.bergSummary(), d.Capacity}
		if len(d.AssistiveDevices) > 0 {
			parts = append(parts, "uses "+strings.Join(d.AssistiveDevices, ", "))
		}
		return strings.Join(parts, "; ") + "."
	}

	var w writer
	w.heading("Balance")
	w.field("Berg Balance Score", d.bergSummary())
	if level == domain.DetailDetailed && d.HasBerg {
		w.line("Fall risk interpretation: scores below %d indicate increased fall risk; below %d indicate high fall risk.",
			detectors.BergLowRiskScore, detectors.BergModerateRiskScore)
		for _, item := range sortedKeys(d.BergItems) {
			w.line("- %s: %d/4", domain.Humanize(item), d.BergItems[item])
		}
	}

	w.heading("Ambulation")
	w.field("Indoor Walking Distance", metres(d.WalkingDistance))
	w.field("Outdoor Walking Distance", metres(d.OutdoorDistance))
	w.field("Capacity", d.Capacity)
	w.field("Assistive Devices", listOr(d.AssistiveDevices, NoneReported))
	w.field("Restrictions", listOr(d.Restrictions, NoneReported))

	if level != domain.DetailDetailed {
		return w.String()
	}
	if hasText(d.Notes) {
		w.field("Notes", d.Notes)
	}
	w.heading("Recommendations")
	w.bullets(d.Recommendations, NoneReported)
	return w.String()
}
