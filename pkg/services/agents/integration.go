package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/detectors"
	"github.com/de-tools/assessment-atlas/pkg/services/narrative"
)

type integrationData struct {
	Counts             map[string]int
	TimeOfDay          []string
	Weather            []string
	Activity           []string
	MostSevere         string
	MostFrequent       string
	PrimaryLimitations []string
	Ranked             []domain.SymptomFinding
	Overview           []string
}

func NewSymptomIntegrationAgent(cfg Config) SectionAgent {
	return New(Definition[integrationData]{
		Name:     "symptom_integration",
		Title:    "Symptom Integration",
		Order:    3.0,
		Required: []FieldRequirement{requireSymptoms},
		Rules:    []Rule{validateSymptomCoverage},
		Process:  processIntegration,
		Format:   formatIntegration,
	}, cfg)
}

func validateSymptomCoverage(data *domain.AssessmentData) ([]string, []string) {
	s := data.GetSymptoms()
	if s == nil {
		return nil, nil
	}
	var errs, warnings []string
	if len(s.Physical)+len(s.Cognitive)+len(s.Emotional) == 0 {
		errs = append(errs, "No symptoms recorded in any domain")
	}
	for _, group := range []struct {
		name     string
		symptoms []domain.Symptom
	}{{"physical", s.Physical}, {"cognitive", s.Cognitive}, {"emotional", s.Emotional}} {
		if len(group.symptoms) == 0 {
			warnings = append(warnings, fmt.Sprintf("No %s symptoms recorded", group.name))
		}
	}
	return errs, warnings
}

func processIntegration(_ context.Context, in Input) (integrationData, []string, error) {
	s := in.Assessment.GetSymptoms()
	if s == nil {
		return integrationData{}, nil, errNoData("symptoms")
	}
	all := make([]domain.Symptom, 0, len(s.Physical)+len(s.Cognitive)+len(s.Emotional))
	all = append(all, s.Physical...)
	all = append(all, s.Cognitive...)
	all = append(all, s.Emotional...)

	result := integrationData{
		Counts: map[string]int{
			"physical":  len(s.Physical),
			"cognitive": len(s.Cognitive),
			"emotional": len(s.Emotional),
		},
		TimeOfDay:          timeOfDayPatterns(all),
		Weather:            weatherPatterns(s.Physical),
		Activity:           activityPatterns(all),
		MostSevere:         NotAssessed,
		MostFrequent:       NotAssessed,
		PrimaryLimitations: primaryLimitations(s),
	}
	if top, ok := detectors.MostSevere(all); ok {
		result.MostSevere = fmt.Sprintf("%s (%s)", symptomSite(top), strings.TrimSpace(top.Severity))
	}
	if top, ok := detectors.MostFrequent(all); ok {
		result.MostFrequent = fmt.Sprintf("%s (%s)", symptomSite(top), strings.TrimSpace(top.Frequency))
	}
	for _, group := range []struct {
		name     string
		symptoms []domain.Symptom
	}{{"physical", s.Physical}, {"cognitive", s.Cognitive}, {"emotional", s.Emotional}} {
		result.Ranked = append(result.Ranked, detectors.RankSymptoms(group.name, group.symptoms)...)
	}
	sort.SliceStable(result.Ranked, func(i, j int) bool {
		return result.Ranked[i].Score > result.Ranked[j].Score
	})

	history := in.Assessment.GetMedicalHistory()
	result.Overview = narrative.Overview(narrative.Inputs{
		Medications: narrative.AnalyzeMedications(history.GetMedications()),
		Symptoms:    narrative.AnalyzeSymptoms(s.Physical),
		Timeline:    narrative.AnalyzeTimeline(history, in.Shared.ReferenceDate),
		ADL:         narrative.AnalyzeADL(narrative.Activities(in.Assessment.GetFunctionalAssessment().GetADL())),
	})
	return result, nil, nil
}

// symptomSite names a symptom by where it is felt, falling back to its name
func symptomSite(s domain.Symptom) string {
	for _, v := range []string{s.Location, s.Symptom, s.PainType} {
		if hasText(v) {
			return strings.TrimSpace(v)
		}
	}
	return "Unnamed symptom"
}

func anySymptom(symptoms []domain.Symptom, field func(domain.Symptom) string, keywords ...string) bool {
	for _, s := range symptoms {
		if containsKeyword(strings.ToLower(field(s)), keywords) {
			return true
		}
	}
	return false
}

func impactOf(s domain.Symptom) string { return s.Impact }

// aggravatorsOf joins the free-text aggravating factors with the trigger list
func aggravatorsOf(s domain.Symptom) string {
	return s.Aggravating + " " + strings.Join(s.Triggers, " ")
}

func timeOfDayPatterns(symptoms []domain.Symptom) []string {
	var patterns []string
	if anySymptom(symptoms, impactOf, "morning") {
		patterns = append(patterns, "Symptoms typically worse in morning")
	}
	if anySymptom(symptoms, impactOf, "evening", "night") {
		patterns = append(patterns, "Symptoms intensify in evening")
	}
	return patterns
}

func weatherPatterns(physical []domain.Symptom) []string {
	if !anySymptom(physical, aggravatorsOf, "weather", "cold", "damp") {
		return nil
	}
	patterns := []string{"Weather sensitivity noted"}
	if anySymptom(physical, aggravatorsOf, "cold") {
		patterns = append(patterns, "Cold weather particularly aggravating")
	}
	return patterns
}

func activityPatterns(symptoms []domain.Symptom) []string {
	var patterns []string
	if anySymptom(symptoms, aggravatorsOf, "lift", "load", "step", "stand", "mov") {
		patterns = append(patterns, "Activity-dependent symptom exacerbation")
	}
	for _, s := range symptoms {
		sev, _ := detectors.SeverityScore(s.Severity)
		if sev >= 8 && containsKeyword(strings.ToLower(aggravatorsOf(s)), []string{"activity", "movement", "exertion", "lift", "step"}) {
			patterns = append(patterns, "Severe symptoms with physical exertion")
			break
		}
	}
	return patterns
}

func atLeast(symptoms []domain.Symptom, minSeverity float64) []domain.Symptom {
	var out []domain.Symptom
	for _, s := range symptoms {
		if sev, ok := detectors.SeverityScore(s.Severity); ok && sev >= minSeverity {
			out = append(out, s)
		}
	}
	return out
}

func primaryLimitations(s *domain.Symptoms) []string {
	var limitations []string

	if severe := atLeast(s.GetPhysical(), 8); len(severe) > 0 {
		limitations = append(limitations, "Significant physical functional restrictions")
		location := func(x domain.Symptom) string { return x.Location }
		if anySymptom(severe, location, "back", "spine", "lumbar", "neck") {
			limitations = append(limitations, "Limited mobility due to spinal symptoms")
		}
	}

	if significant := atLeast(s.GetCognitive(), 5); len(significant) > 0 {
		limitations = append(limitations, "Cognitive processing difficulties")
		site := func(x domain.Symptom) string { return x.Location + " " + x.Symptom }
		if anySymptom(significant, site, "memory", "attention") {
			limitations = append(limitations, "Memory and attention deficits affecting daily function")
		}
	}

	if significant := atLeast(s.GetEmotional(), 5); len(significant) > 0 {
		limitations = append(limitations, "Emotional regulation challenges")
		if anySymptom(significant, impactOf, "social") {
			limitations = append(limitations, "Social interaction difficulties")
		}
	}
	return limitations
}

func formatIntegration(p ProcessedData[integrationData], level domain.DetailLevel) string {
	d := p.Data
	var w writer

	w.heading("Overall Impact")
	w.field("Most Severe", d.MostSevere)
	w.field("Most Frequent", d.MostFrequent)
	w.line("Primary Limitations:")
	w.bullets(d.PrimaryLimitations, NoneReported)

	if level == domain.DetailBrief {
		return w.String()
	}

	w.heading("Symptom Profile")
	w.line("- Physical: %d reported", d.Counts["physical"])
	w.line("- Cognitive: %d reported", d.Counts["cognitive"])
	w.line("- Emotional: %d reported", d.Counts["emotional"])

	w.heading("Patterns")
	w.line("Time of day:")
	w.bullets(d.TimeOfDay, "None identified")
	w.line("Weather:")
	w.bullets(d.Weather, "None identified")
	w.line("Activity:")
	w.bullets(d.Activity, "None identified")

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Symptom Ranking")
	if len(d.Ranked) == 0 {
		w.line("- %s", NoneReported)
	}
	for i, f := range d.Ranked {
		w.line("%d. %s (%s): %s, %s; score %s", i+1, f.Name, f.Domain,
			valueOr(f.Severity, NotAssessed), valueOr(f.Frequency, NotAssessed), number(f.Score))
	}

	w.heading("Clinical Overview")
	w.bullets(d.Overview, "Insufficient data for an integrated overview")
	return w.String()
}
