package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/detectors"
)

type romData struct {
	Joints           []string
	Measurements     map[string][]domain.ROMMeasurement
	Patterns         detectors.ROMPatternSet
	RestrictionScore float64
	HasScore         bool
	Impacts          map[detectors.Region][]string
	OverallImpact    []string
	Recommendations  []string
}

func NewROMAgent(cfg Config) SectionAgent {
	settings := cfg.ROM
	if settings == (detectors.ROMSettings{}) {
		settings = detectors.DefaultROMSettings()
	}
	return New(Definition[romData]{
		Name:  "range_of_motion",
		Title: "Range of Motion",
		Order: 2.3,
		Required: []FieldRequirement{
			requireFunctionalAssessment,
			Require("functionalAssessment.rangeOfMotion", func(d *domain.AssessmentData) bool {
				return len(d.GetFunctionalAssessment().GetRangeOfMotion()) > 0
			}),
		},
		Rules: []Rule{romMeasurementRule(settings)},
		Process: func(_ context.Context, in Input) (romData, []string, error) {
			return processROM(in, settings)
		},
		Format: formatROM,
	}, cfg)
}

// romMeasurementRule rejects implausible measurements: negative ranges,
// pain outside 0-10 and values beyond the settings ceiling of normal
func romMeasurementRule(settings detectors.ROMSettings) Rule {
	return func(data *domain.AssessmentData) ([]string, []string) {
		rom := data.GetFunctionalAssessment().GetRangeOfMotion()
		var errs, warnings []string
		for _, joint := range detectors.JointOrder(rom) {
			for _, m := range rom[joint] {
				name := strings.TrimSpace(joint + " " + m.Movement)
				if m.Active == nil {
					warnings = append(warnings, fmt.Sprintf("No active range recorded for %s", name))
					continue
				}
				for _, v := range []*float64{m.Active.Right, m.Active.Left} {
					if v != nil && *v < 0 {
						errs = append(errs, fmt.Sprintf("Range of motion for %s cannot be negative: %s", name, number(*v)))
					}
				}
				for _, side := range detectors.ExceedsNormal(m, settings) {
					value := m.Active.Right
					if side == domain.SideLeft {
						value = m.Active.Left
					}
					errs = append(errs, fmt.Sprintf("Range of motion for %s (%s %s) exceeds %.0f%% of normal (%s)",
						name, side, degrees(value), settings.MaxNormalRatio*100, degrees(m.Active.Normal)))
				}
				if p := m.PainScale; p != nil {
					for _, v := range []*float64{p.Right, p.Left} {
						if v != nil && (*v < 0 || *v > 10) {
							errs = append(errs, fmt.Sprintf("Pain scale for %s must be between 0 and 10, got %s", name, number(*v)))
						}
					}
				}
			}
		}
		return errs, warnings
	}
}

func processROM(in Input, settings detectors.ROMSettings) (romData, []string, error) {
	rom := in.Assessment.GetFunctionalAssessment().GetRangeOfMotion()
	if len(rom) == 0 {
		return romData{}, nil, errNoData("functionalAssessment.rangeOfMotion")
	}

	patterns := detectors.DetectROMPatternsWithSettings(rom, settings)
	result := romData{
		Joints:        detectors.JointOrder(rom),
		Measurements:  rom,
		Patterns:      patterns,
		Impacts:       detectors.ImpactsByRegion(detectors.FunctionalImpacts(rom)),
		OverallImpact: detectors.OverallImpact(patterns),
	}
	result.RestrictionScore, result.HasScore = detectors.RestrictionScore(rom)

	for _, p := range patterns.Severe {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Therapy program to address restriction in %s %s", p.Joint, p.Movement))
	}
	if len(patterns.Painful) > 0 {
		result.Recommendations = append(result.Recommendations, "Pain management review before progressing range exercises")
	}
	if len(patterns.Asymmetry) > 0 {
		result.Recommendations = append(result.Recommendations, "Monitor compensatory movement patterns on the less affected side")
	}
	result.Recommendations = dedupeStrings(result.Recommendations)

	var warnings []string
	if !result.HasScore {
		warnings = append(warnings, "Restriction score not calculated: no measurements with a normal range")
	}
	return result, warnings, nil
}

func (d romData) scoreSummary() string {
	if !d.HasScore {
		return NotAssessed
	}
	return number(d.RestrictionScore) + "% average restriction"
}

func formatROM(p ProcessedData[romData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		lines := []string{fmt.Sprintf("Overall: %s.", d.scoreSummary())}
		for _, pattern := range append(append([]domain.ROMPattern(nil), d.Patterns.Severe...), d.Patterns.Painful...) {
			if len(lines) > 3 {
				break
			}
			lines = append(lines, pattern.Description+".")
		}
		return strings.Join(lines, "\n")
	}

	var w writer
	w.heading("Measurements")
	for _, joint := range d.Joints {
		w.line("%s:", domain.Humanize(joint))
		for _, m := range d.Measurements[joint] {
			w.line("- %s", measurementLine(m, level))
		}
	}

	w.heading("Findings")
	var findings []string
	for _, pattern := range d.Patterns.All() {
		findings = append(findings, pattern.Description)
	}
	w.bullets(findings, "No significant restrictions identified")
	w.field("Restriction Score", d.scoreSummary())

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Functional Impact")
	reported := false
	for _, region := range detectors.Regions() {
		statements := d.Impacts[region]
		if len(statements) == 0 {
			continue
		}
		reported = true
		w.line("%s:", region.Label())
		w.bullets(statements, "")
	}
	if !reported {
		w.line("- %s", NoneReported)
	}

	w.heading("Overall Impact")
	w.bullets(d.OverallImpact, NoneReported)

	w.heading("Recommendations")
	w.bullets(d.Recommendations, NoneReported)
	return w.String()
}

func measurementLine(m domain.ROMMeasurement, level domain.DetailLevel) string {
	line := domain.Humanize(valueOr(m.Movement, "Unspecified movement")) + ": "
	if a := m.Active; a != nil {
		line += fmt.Sprintf("R %s / L %s (normal %s)", degrees(a.Right), degrees(a.Left), degrees(a.Normal))
	} else {
		line += NotAssessed
	}
	if level != domain.DetailDetailed {
		return line
	}
	if pv := m.Passive; pv != nil {
		line += fmt.Sprintf("; passive R %s / L %s", degrees(pv.Right), degrees(pv.Left))
	}
	if ps := m.PainScale; ps != nil {
		line += fmt.Sprintf("; pain R %s / L %s", score(ps.Right), score(ps.Left))
	}
	if ef := m.EndFeel; ef != nil && (hasText(ef.Right) || hasText(ef.Left)) {
		line += fmt.Sprintf("; end feel R %s / L %s", valueOr(ef.Right, NotAssessed), valueOr(ef.Left, NotAssessed))
	}
	if hasText(m.Notes) {
		line += "; " + strings.TrimSpace(m.Notes)
	}
	return line
}
