package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/detectors"
	"github.com/de-tools/assessment-atlas/pkg/services/narrative"
)

// symptomPattern flags a clinically notable symptom at or above a severity
type symptomPattern struct {
	keywords    []string
	minSeverity float64
	statement   string
}

// symptomDomain parameterises the physical, cognitive and emotional agents
type symptomDomain struct {
	name     string
	title    string
	order    float64
	field    string
	symptoms func(*domain.Symptoms) []domain.Symptom
	patterns []symptomPattern
	regional bool
}

var (
	physicalSymptoms = symptomDomain{
		name:     "physical_symptoms",
		title:    "Physical Symptoms",
		order:    3.1,
		field:    "symptoms.physical",
		symptoms: (*domain.Symptoms).GetPhysical,
		regional: true,
		patterns: []symptomPattern{
			{[]string{"pain"}, 8, "Severe pain limiting activity tolerance"},
			{[]string{"numbness", "tingling"}, 5, "Sensory changes affecting fine motor tasks"},
			{[]string{"fatigue"}, 5, "Fatigue reducing endurance for sustained activity"},
		},
	}
	cognitiveSymptoms = symptomDomain{
		name:     "cognitive_symptoms",
		title:    "Cognitive Symptoms",
		order:    3.2,
		field:    "symptoms.cognitive",
		symptoms: (*domain.Symptoms).GetCognitive,
		patterns: []symptomPattern{
			{[]string{"memory", "forget"}, 5, "Memory difficulties affecting task completion and safety"},
			{[]string{"attention", "concentration", "focus"}, 5, "Reduced concentration affecting sustained tasks"},
			{[]string{"word", "speech"}, 5, "Word-finding difficulty affecting communication"},
		},
	}
	emotionalSymptoms = symptomDomain{
		name:     "emotional_symptoms",
		title:    "Emotional Symptoms",
		order:    3.3,
		field:    "symptoms.emotional",
		symptoms: (*domain.Symptoms).GetEmotional,
		patterns: []symptomPattern{
			{[]string{"irritab"}, 8, "Significant irritability affecting interpersonal relationships"},
			{[]string{"anxiety", "anxious"}, 5, "Notable anxiety impacting daily activities"},
			{[]string{"depress", "low mood"}, 5, "Low mood affecting motivation and engagement"},
		},
	}
)

type symptomDomainData struct {
	Symptoms []domain.Symptom
	Ranked   []domain.SymptomFinding
	Regions  narrative.SymptomAnalysis
	Patterns []string
	Severe   *domain.Symptom
	Frequent *domain.Symptom
}

func NewPhysicalSymptomsAgent(cfg Config) SectionAgent {
	return newSymptomDomainAgent(physicalSymptoms, cfg)
}

func NewCognitiveSymptomsAgent(cfg Config) SectionAgent {
	return newSymptomDomainAgent(cognitiveSymptoms, cfg)
}

func NewEmotionalSymptomsAgent(cfg Config) SectionAgent {
	return newSymptomDomainAgent(emotionalSymptoms, cfg)
}

func newSymptomDomainAgent(sd symptomDomain, cfg Config) SectionAgent {
	return New(Definition[symptomDomainData]{
		Name:  sd.name,
		Title: sd.title,
		Order: sd.order,
		Required: []FieldRequirement{
			requireSymptoms,
			Require(sd.field, func(d *domain.AssessmentData) bool {
				return len(sd.symptoms(d.GetSymptoms())) > 0
			}),
		},
		Rules: []Rule{func(d *domain.AssessmentData) ([]string, []string) {
			return validateSymptomScales(sd.symptoms(d.GetSymptoms()))
		}},
		Process: func(_ context.Context, in Input) (symptomDomainData, []string, error) {
			return processSymptomDomain(sd, in)
		},
		Format: formatSymptomDomain,
	}, cfg)
}

// validateSymptomScales rejects unknown severities and warns about unknown
// frequencies, which are scored at the neutral midpoint
func validateSymptomScales(symptoms []domain.Symptom) ([]string, []string) {
	var errs, warnings []string
	for i, s := range symptoms {
		name := valueOr(s.Symptom, fmt.Sprintf("symptom %d", i+1))
		if !hasText(s.Symptom) {
			warnings = append(warnings, fmt.Sprintf("Symptom %d has no name", i+1))
		}
		if hasText(s.Severity) {
			if _, ok := detectors.SeverityScore(s.Severity); !ok {
				errs = append(errs, fmt.Sprintf("Invalid severity for %s: %s", name, s.Severity))
			}
		} else {
			warnings = append(warnings, fmt.Sprintf("No severity recorded for %s", name))
		}
		if hasText(s.Frequency) {
			if _, ok := detectors.FrequencyScore(s.Frequency); !ok {
				warnings = append(warnings, fmt.Sprintf("Unrecognised frequency for %s: %s", name, s.Frequency))
			}
		}
	}
	return errs, warnings
}

func processSymptomDomain(sd symptomDomain, in Input) (symptomDomainData, []string, error) {
	symptoms := sd.symptoms(in.Assessment.GetSymptoms())
	if len(symptoms) == 0 {
		return symptomDomainData{}, nil, errNoData(sd.field)
	}

	result := symptomDomainData{
		Symptoms: symptoms,
		Ranked:   detectors.RankSymptoms(strings.TrimSuffix(sd.name, "_symptoms"), symptoms),
		Patterns: matchSymptomPatterns(symptoms, sd.patterns),
	}
	if sd.regional {
		result.Regions = narrative.AnalyzeSymptoms(symptoms)
	}
	if s, ok := detectors.MostSevere(symptoms); ok {
		result.Severe = &s
	}
	if s, ok := detectors.MostFrequent(symptoms); ok {
		result.Frequent = &s
	}
	return result, nil, nil
}

func matchSymptomPatterns(symptoms []domain.Symptom, patterns []symptomPattern) []string {
	var matched []string
	for _, p := range patterns {
		for _, s := range symptoms {
			sev, ok := detectors.SeverityScore(s.Severity)
			if !ok || sev < p.minSeverity {
				continue
			}
			text := strings.ToLower(s.Symptom + " " + s.Description)
			if containsKeyword(text, p.keywords) {
				matched = append(matched, p.statement)
				break
			}
		}
	}
	return matched
}

func containsKeyword(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func symptomLabel(s domain.Symptom) string {
	label := valueOr(s.Symptom, "Unnamed symptom")
	var detail []string
	if hasText(s.Severity) {
		detail = append(detail, strings.TrimSpace(s.Severity))
	}
	if hasText(s.Frequency) {
		detail = append(detail, strings.TrimSpace(s.Frequency))
	}
	if len(detail) > 0 {
		label += " (" + strings.Join(detail, ", ") + ")"
	}
	return label
}

func formatSymptomDomain(p ProcessedData[symptomDomainData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		parts := []string{fmt.Sprintf("%d %s reported", len(d.Symptoms), pluralize(len(d.Symptoms), "symptom"))}
		if d.Severe != nil {
			parts = append(parts, "most severe: "+symptomLabel(*d.Severe))
		}
		if d.Frequent != nil {
			parts = append(parts, "most frequent: "+valueOr(d.Frequent.Symptom, "Unnamed symptom"))
		}
		return strings.Join(parts, "; ") + "."
	}

	var w writer
	w.heading("Reported Symptoms")
	for _, s := range d.Symptoms {
		line := symptomLabel(s)
		if hasText(s.Location) {
			line += " - " + strings.TrimSpace(s.Location)
		}
		if hasText(s.Impact) {
			line += "; impact: " + strings.TrimSpace(s.Impact)
		}
		w.line("- %s", line)
		if level != domain.DetailDetailed {
			continue
		}
		if hasText(s.PainType) {
			w.line("  Quality: %s", s.PainType)
		}
		if hasText(s.Aggravating) {
			w.line("  Aggravated by: %s", s.Aggravating)
		}
		if hasText(s.Relieving) {
			w.line("  Relieved by: %s", s.Relieving)
		}
		if hasText(s.Management) {
			w.line("  Management: %s", s.Management)
		}
		if len(s.Triggers) > 0 {
			w.line("  Triggers: %s", listOr(s.Triggers, NoneReported))
		}
	}

	w.heading("Clinical Patterns")
	w.bullets(d.Patterns, "No significant patterns identified")

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Ranking")
	for _, f := range d.Ranked {
		w.line("%d. %s (score %s)", f.Rank, f.Name, number(f.Score))
	}
	for _, r := range d.Regions.Regions {
		w.heading(domain.Humanize(string(r.Region)))
		w.line("%s.", r.Significance)
		w.field("Pattern", r.TemporalPattern)
		if len(r.Characteristics) > 0 {
			w.field("Characteristics", strings.Join(r.Characteristics, "; "))
		}
		w.line("Functional implications:")
		w.bullets(r.FunctionalImpact, NoneReported)
	}
	return w.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
