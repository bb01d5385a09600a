package detectors

import (
	"testing"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityAndFrequencyScores(t *testing.T) {
	sev, ok := SeverityScore("Very Severe")
	assert.True(t, ok)
	assert.Equal(t, 10.0, sev)

	sev, ok = SeverityScore("very_severe")
	assert.True(t, ok)
	assert.Equal(t, 10.0, sev)

	_, ok = SeverityScore("unbearable")
	assert.False(t, ok)

	freq, ok := FrequencyScore("Most of the time")
	assert.True(t, ok)
	assert.Equal(t, 1.0, freq)

	freq, ok = FrequencyScore("")
	assert.False(t, ok)
	assert.Equal(t, UnknownFrequencyScore, freq)
}

func TestRankSymptoms(t *testing.T) {
	symptoms := []domain.Symptom{
		{Symptom: "Headache", Severity: "Mild", Frequency: "Often"},
		{Symptom: "Back pain", Severity: "Severe", Frequency: "Constantly"},
		{Symptom: "Neck pain", Severity: "Moderate", Frequency: "Sometimes"},
		{Symptom: ""},
	}

	findings := RankSymptoms("physical", symptoms)

	require.Len(t, findings, 3)
	assert.Equal(t, "Back pain", findings[0].Name)
	assert.Equal(t, 8.0, findings[0].Score)
	assert.Equal(t, 1, findings[0].Rank)
	assert.Equal(t, "Neck pain", findings[1].Name)
	assert.Equal(t, "Headache", findings[2].Name)
	assert.Equal(t, 3, findings[2].Rank)
}

func TestMostSevereAndFrequent(t *testing.T) {
	symptoms := []domain.Symptom{
		{Symptom: "Fatigue", Severity: "Moderate", Frequency: "Constantly"},
		{Symptom: "Knee pain", Severity: "Severe", Frequency: "Sometimes"},
	}

	s, ok := MostSevere(symptoms)
	require.True(t, ok)
	assert.Equal(t, "Knee pain", s.Symptom)

	f, ok := MostFrequent(symptoms)
	require.True(t, ok)
	assert.Equal(t, "Fatigue", f.Symptom)

	_, ok = MostSevere(nil)
	assert.False(t, ok)
}
