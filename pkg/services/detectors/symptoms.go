package detectors

import (
	"sort"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

// UnknownFrequencyScore is used when a frequency is missing or unrecognised
const UnknownFrequencyScore = 0.5

var severityScores = map[string]float64{
	"none":        0,
	"mild":        2,
	"moderate":    5,
	"severe":      8,
	"very severe": 10,
}

// SeverityOrder lists the recognised severities from least to most severe
var SeverityOrder = []string{"None", "Mild", "Moderate", "Severe", "Very Severe"}

var frequencyScores = map[string]float64{
	"rarely":           0.4,
	"sometimes":        0.6,
	"occasionally":     0.6,
	"often":            0.8,
	"most of the time": 1.0,
	"constant":         1.0,
	"constantly":       1.0,
}

// FrequencyOrder lists the recognised frequencies from least to most frequent
var FrequencyOrder = []string{"Rarely", "Sometimes", "Often", "Most of the time", "Constantly"}

func normalizeScale(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return strings.Join(strings.Fields(key), " ")
}

// SeverityScore maps a severity label to 0-10; false when unrecognised
func SeverityScore(severity string) (float64, bool) {
	score, ok := severityScores[normalizeScale(severity)]
	return score, ok
}

// FrequencyScore maps a frequency label to 0-1; unrecognised values score
// UnknownFrequencyScore and report false
func FrequencyScore(frequency string) (float64, bool) {
	score, ok := frequencyScores[normalizeScale(frequency)]
	if !ok {
		return UnknownFrequencyScore, false
	}
	return score, true
}

// SignificanceScore is severity x frequency, 0-10
func SignificanceScore(s domain.Symptom) float64 {
	sev, _ := SeverityScore(s.Severity)
	freq, _ := FrequencyScore(s.Frequency)
	return sev * freq
}

// RankSymptoms orders symptoms by significance (highest first, ties by name)
func RankSymptoms(domainName string, symptoms []domain.Symptom) []domain.SymptomFinding {
	findings := make([]domain.SymptomFinding, 0, len(symptoms))
	for _, s := range symptoms {
		if strings.TrimSpace(s.Symptom) == "" {
			continue
		}
		findings = append(findings, domain.SymptomFinding{
			Name:      s.Symptom,
			Domain:    domainName,
			Location:  s.Location,
			Severity:  s.Severity,
			Frequency: s.Frequency,
			Score:     SignificanceScore(s),
		})
	}
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Score != findings[j].Score {
			return findings[i].Score > findings[j].Score
		}
		return findings[i].Name < findings[j].Name
	})
	for i := range findings {
		findings[i].Rank = i + 1
	}
	return findings
}

// MostSevere returns the first symptom with the highest severity score
func MostSevere(symptoms []domain.Symptom) (domain.Symptom, bool) {
	return maxBy(symptoms, func(s domain.Symptom) (float64, bool) { return SeverityScore(s.Severity) })
}

// MostFrequent returns the first symptom with the highest frequency score
func MostFrequent(symptoms []domain.Symptom) (domain.Symptom, bool) {
	return maxBy(symptoms, func(s domain.Symptom) (float64, bool) { return FrequencyScore(s.Frequency) })
}

func maxBy(symptoms []domain.Symptom, score func(domain.Symptom) (float64, bool)) (domain.Symptom, bool) {
	var best domain.Symptom
	bestScore := -1.0
	found := false
	for _, s := range symptoms {
		v, ok := score(s)
		if !ok {
			continue
		}
		if v > bestScore {
			best, bestScore, found = s, v, true
		}
	}
	return best, found
}
