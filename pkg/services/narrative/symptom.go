package narrative

import (
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/detectors"
)

type BodyRegion string

const (
	BodySpine          BodyRegion = "spine"
	BodyUpperExtremity BodyRegion = "upper_extremity"
	BodyLowerExtremity BodyRegion = "lower_extremity"
	BodyHead           BodyRegion = "head"
	BodyOther          BodyRegion = "other"
)

type regionKeywords struct {
	region   BodyRegion
	keywords []string
}

var bodyRegions = []regionKeywords{
	{BodySpine, []string{"neck", "cervical", "thoracic", "lumbar", "back", "spine", "spinal"}},
	{BodyUpperExtremity, []string{"shoulder", "arm", "elbow", "wrist", "hand", "finger", "thumb"}},
	{BodyLowerExtremity, []string{"hip", "leg", "knee", "ankle", "foot", "feet", "toe"}},
	{BodyHead, []string{"head", "facial", "jaw", "cranial", "migraine"}},
}

var regionImpacts = map[BodyRegion][]string{
	BodySpine:          {"Reduced sitting and standing tolerance", "Difficulty with bending and lifting"},
	BodyUpperExtremity: {"Difficulty with reaching and overhead tasks", "Reduced grip and fine motor tolerance"},
	BodyLowerExtremity: {"Reduced walking and standing tolerance", "Difficulty with stairs and transfers"},
	BodyHead:           {"Reduced concentration and screen tolerance"},
}

func (r BodyRegion) Adjective() string {
	switch r {
	case BodySpine:
		return "spinal"
	case BodyUpperExtremity:
		return "upper extremity"
	case BodyLowerExtremity:
		return "lower extremity"
	case BodyHead:
		return "head"
	default:
		return "other"
	}
}

// RegionOf classifies a symptom by its location, falling back to its name
func RegionOf(s domain.Symptom) BodyRegion {
	for _, text := range []string{s.Location, s.Symptom} {
		lower := strings.ToLower(text)
		if lower == "" {
			continue
		}
		for _, r := range bodyRegions {
			if containsAny(lower, r.keywords) {
				return r.region
			}
		}
	}
	return BodyOther
}

// RegionAnalysis is the narrative for the symptoms of one body region
type RegionAnalysis struct {
	Region           BodyRegion
	Symptoms         []domain.Symptom
	Score            float64
	Level            domain.Severity
	Significance     string
	Characteristics  []string
	TemporalPattern  string
	FunctionalImpact []string
	Aggravating      []string
	Relieving        []string
}

type SymptomAnalysis struct {
	Regions []RegionAnalysis
}

func (s SymptomAnalysis) Empty() bool {
	return len(s.Regions) == 0
}

// AnalyzeSymptoms groups symptoms by body region and scores each region as
// max severity x max frequency. When more than one region is affected every
// significance statement notes the possible relationship to the others.
func AnalyzeSymptoms(symptoms []domain.Symptom) SymptomAnalysis {
	grouped := make(map[BodyRegion][]domain.Symptom)
	for _, s := range symptoms {
		if strings.TrimSpace(s.Symptom) == "" && strings.TrimSpace(s.Location) == "" {
			continue
		}
		region := RegionOf(s)
		grouped[region] = append(grouped[region], s)
	}

	var analysis SymptomAnalysis
	for _, region := range []BodyRegion{BodySpine, BodyUpperExtremity, BodyLowerExtremity, BodyHead, BodyOther} {
		if group, ok := grouped[region]; ok {
			analysis.Regions = append(analysis.Regions, analyzeRegion(region, group))
		}
	}

	if len(analysis.Regions) > 1 {
		for i := range analysis.Regions {
			var others []string
			for j, other := range analysis.Regions {
				if i != j {
					others = append(others, other.Region.Adjective())
				}
			}
			analysis.Regions[i].Significance += fmt.Sprintf(", with possible relationship to %s symptoms", JoinAnd(others))
		}
	}
	return analysis
}

func analyzeRegion(region BodyRegion, symptoms []domain.Symptom) RegionAnalysis {
	var maxSeverity, maxFrequency float64
	knownFrequency := false
	var characteristics, aggravating, relieving []string

	for _, s := range symptoms {
		if sev, ok := detectors.SeverityScore(s.Severity); ok && sev > maxSeverity {
			maxSeverity = sev
		}
		freq, ok := detectors.FrequencyScore(s.Frequency)
		if ok {
			knownFrequency = true
		}
		if freq > maxFrequency {
			maxFrequency = freq
		}

		quality := strings.ToLower(s.PainType + " " + s.Description)
		if containsAny(quality, []string{"sharp", "stabbing", "shooting"}) {
			characteristics = append(characteristics, "Sharp, stabbing pain quality")
		}
		if containsAny(quality, []string{"aching", "dull", "ache"}) {
			characteristics = append(characteristics, "Aching, dull pain quality")
		}
		if containsAny(quality, []string{"burning", "tingling", "numb"}) {
			characteristics = append(characteristics, "Neuropathic features (burning, tingling or numbness)")
		}
		if sev, _ := detectors.SeverityScore(s.Severity); sev >= 8 {
			characteristics = append(characteristics, "High intensity symptoms")
		}

		aggravating = append(aggravating, splitList(s.Aggravating)...)
		aggravating = append(aggravating, s.Triggers...)
		relieving = append(relieving, splitList(s.Relieving)...)
	}

	score := maxSeverity * maxFrequency
	result := RegionAnalysis{
		Region:           region,
		Symptoms:         symptoms,
		Score:            score,
		Characteristics:  dedupe(characteristics),
		TemporalPattern:  temporalPattern(maxFrequency, knownFrequency),
		FunctionalImpact: regionImpacts[region],
		Aggravating:      dedupe(aggravating),
		Relieving:        dedupe(relieving),
	}

	adjective := region.Adjective()
	switch {
	case score > 7:
		result.Level = domain.SeverityHigh
		result.Significance = fmt.Sprintf("Significant %s involvement with major functional implications", adjective)
	case score > 4:
		result.Level = domain.SeverityMedium
		result.Significance = fmt.Sprintf("Moderate %s involvement affecting daily activities", adjective)
	default:
		result.Level = domain.SeverityLow
		result.Significance = fmt.Sprintf("Mild %s involvement with minimal functional impact", adjective)
	}
	return result
}

func temporalPattern(maxFrequency float64, known bool) string {
	switch {
	case !known:
		return "Variable symptom pattern"
	case maxFrequency >= 1:
		return "Persistent symptoms"
	case maxFrequency >= 0.8:
		return "Frequent recurrence"
	default:
		return "Occasional symptoms"
	}
}
