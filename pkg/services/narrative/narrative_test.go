package narrative

import (
	"testing"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMedications(t *testing.T) {
	tests := []struct {
		name                 string
		meds                 []domain.Medication
		expectedCategory     MedicationCategory
		expectedSignificance string
		expectedImplications []string
	}{
		{
			name:                 "nsaid with neuropathic agent",
			meds:                 []domain.Medication{{Name: "Meloxicam"}, {Name: "Nabilone"}},
			expectedCategory:     CategoryPainManagement,
			expectedSignificance: "Complex pain management regime indicating chronic pain requiring both inflammatory and neuropathic pain control",
			expectedImplications: []string{
				"Multi-modal pain management suggests significant chronic pain impact",
				"Pain levels should be monitored during functional activities",
			},
		},
		{
			name:                 "nsaid only",
			meds:                 []domain.Medication{{Name: "Ibuprofen"}},
			expectedCategory:     CategoryPainManagement,
			expectedSignificance: "Inflammatory pain management suggesting activity-related discomfort",
			expectedImplications: []string{"Pain levels should be monitored during functional activities"},
		},
		{
			name:                 "high dose gastric",
			meds:                 []domain.Medication{{Name: "Esomeprazole", Dosage: "40mg"}},
			expectedCategory:     CategoryGastric,
			expectedSignificance: "Significant gastric symptom management required",
			expectedImplications: []string{
				"Consider timing of meals and position during ADLs",
				"Dietary modifications may be required to manage gastric symptoms",
			},
		},
		{
			name:                 "multiple cardiovascular",
			meds:                 []domain.Medication{{Name: "Perindopril"}, {Name: "Rosuvastatin"}},
			expectedCategory:     CategoryCardiovascular,
			expectedSignificance: "Complex cardiovascular management indicating multiple risk factors",
			expectedImplications: []string{
				"Monitor exertion levels during activities",
				"Multiple cardiovascular medications suggest need for activity pacing",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeMedications(tt.meds)

			require.Len(t, analysis.Categories, 1)
			c := analysis.Categories[0]
			assert.Equal(t, tt.expectedCategory, c.Category)
			assert.Equal(t, tt.expectedSignificance, c.ClinicalSignificance)
			assert.Equal(t, tt.expectedImplications, c.Implications)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		assert.True(t, AnalyzeMedications(nil).Empty())
	})

	t.Run("category order with other last", func(t *testing.T) {
		analysis := AnalyzeMedications([]domain.Medication{
			{Name: "Vitamin D"},
			{Name: "Trazodone"},
			{Name: "Metformin"},
		})
		var categories []MedicationCategory
		for _, c := range analysis.Categories {
			categories = append(categories, c.Category)
		}
		assert.Equal(t, []MedicationCategory{CategoryMetabolic, CategorySleepMood, CategoryOther}, categories)
	})
}

func TestAnalyzeSymptoms(t *testing.T) {
	t.Run("single region", func(t *testing.T) {
		analysis := AnalyzeSymptoms([]domain.Symptom{
			{Symptom: "Pain", Location: "Lower back", Severity: "Severe", Frequency: "Constantly", PainType: "aching"},
		})

		require.Len(t, analysis.Regions, 1)
		r := analysis.Regions[0]
		assert.Equal(t, BodySpine, r.Region)
		assert.Equal(t, 8.0, r.Score)
		assert.Equal(t, "Significant spinal involvement with major functional implications", r.Significance)
		assert.Equal(t, "Persistent symptoms", r.TemporalPattern)
		assert.Contains(t, r.Characteristics, "Aching, dull pain quality")
		assert.Contains(t, r.Characteristics, "High intensity symptoms")
	})

	t.Run("multiple regions are correlated", func(t *testing.T) {
		analysis := AnalyzeSymptoms([]domain.Symptom{
			{Symptom: "Neck pain", Severity: "Moderate", Frequency: "Most of the time"},
			{Symptom: "Knee pain", Severity: "Mild", Frequency: "Rarely"},
		})

		require.Len(t, analysis.Regions, 2)
		assert.Equal(t, "Moderate spinal involvement affecting daily activities, with possible relationship to lower extremity symptoms", analysis.Regions[0].Significance)
		assert.Equal(t, "Mild lower extremity involvement with minimal functional impact, with possible relationship to spinal symptoms", analysis.Regions[1].Significance)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.True(t, AnalyzeSymptoms(nil).Empty())
	})
}

func TestAnalyzeTimeline(t *testing.T) {
	reference := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		history     *domain.MedicalHistory
		phase       Phase
		progression Progression
	}{
		{
			name:        "nil history",
			history:     nil,
			phase:       PhaseUnknown,
			progression: ProgressionInsufficient,
		},
		{
			name:        "acute single event",
			history:     &domain.MedicalHistory{Injury: &domain.Injury{Date: "2024-05-20"}},
			phase:       PhaseAcute,
			progression: ProgressionInsufficient,
		},
		{
			name: "sub-acute improving",
			history: &domain.MedicalHistory{
				Injury:           &domain.Injury{Date: "2024-04-01"},
				CurrentTreatment: []domain.Treatment{{Name: "Physiotherapy", StartDate: "2024-04-15", Progress: "Improving steadily"}},
			},
			phase:       PhaseSubAcute,
			progression: ProgressionImproving,
		},
		{
			name: "early chronic plateau",
			history: &domain.MedicalHistory{
				Injury:           &domain.Injury{Date: "2024-01-10"},
				CurrentTreatment: []domain.Treatment{{Name: "OT", StartDate: "2024-02-01", Progress: "Plateaued"}},
			},
			phase:       PhaseEarlyChronic,
			progression: ProgressionPlateau,
		},
		{
			name: "chronic decline",
			history: &domain.MedicalHistory{
				Injury:           &domain.Injury{Date: "2023-01-10"},
				CurrentTreatment: []domain.Treatment{{Name: "Psychology", StartDate: "2023-03-01", Progress: "Function has declined"}},
			},
			phase:       PhaseChronic,
			progression: ProgressionDecline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeTimeline(tt.history, reference)
			assert.Equal(t, tt.phase, analysis.Phase)
			assert.Equal(t, tt.progression, analysis.Progression)
		})
	}

	t.Run("events are ordered", func(t *testing.T) {
		analysis := AnalyzeTimeline(&domain.MedicalHistory{
			Injury: &domain.Injury{Date: "2023-01-10"},
			CurrentTreatment: []domain.Treatment{
				{Name: "B", StartDate: "2023-06-01"},
				{Name: "A", StartDate: "2023-02-01"},
			},
		}, reference)
		require.Len(t, analysis.Events, 3)
		assert.Equal(t, EventInjury, analysis.Events[0].Kind)
		assert.Equal(t, "Started A", analysis.Events[1].Label)
		assert.Equal(t, "Chronic presentation (16 months)", analysis.DurationDescription)
	})
}

func TestAnalyzeADL(t *testing.T) {
	entries := Activities(map[string]map[string]domain.ActivityRecord{
		"transfers": {
			"bed_transfer":    {Independence: "Independent"},
			"toilet_transfer": {Independence: "Minimal Assistance", Notes: "Uses grab rail"},
		},
		"selfCare": {
			"shower":   {Independence: "Moderate Assistance", Equipment: []string{"shower chair"}},
			"grooming": {Independence: "Independent"},
		},
		"household": {
			"laundry":  {Independence: "Total Assistance"},
			"cleaning": {Independence: "not applicable"},
		},
	})

	analysis := AnalyzeADL(entries)

	require.Len(t, analysis.Domains, 3)

	mobility, ok := analysis.Domain(DomainMobility)
	require.True(t, ok)
	assert.Equal(t, 3.5, mobility.AverageScore)
	assert.Equal(t, StatusModified, mobility.Status)
	assert.Equal(t, []string{"Toilet transfer requires hands-on assistance (minimal assistance)"}, mobility.Limitations)
	assert.Equal(t, []string{"Uses grab rail"}, mobility.Compensations)

	selfCare, ok := analysis.Domain(DomainSelfCare)
	require.True(t, ok)
	assert.Equal(t, StatusModified, selfCare.Status)
	assert.Contains(t, selfCare.Compensations, "Uses shower chair for shower")
	assert.Contains(t, selfCare.ClinicalContext, "Mobility limitations impact performance of these activities.")

	home, ok := analysis.Domain(DomainHomeManagement)
	require.True(t, ok)
	assert.Len(t, home.Activities, 1)
	assert.Equal(t, StatusDependent, home.Status)

	assert.True(t, AnalyzeADL(nil).Empty())
}

func TestOverview(t *testing.T) {
	lines := Overview(Inputs{
		Timeline: AnalyzeTimeline(&domain.MedicalHistory{Injury: &domain.Injury{Date: "2023-01-01"}}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Symptoms: AnalyzeSymptoms([]domain.Symptom{{Symptom: "Back pain", Severity: "Severe", Frequency: "Often"}}),
	})

	require.Len(t, lines, 2)
	assert.Equal(t, "Chronic presentation (12 months).", lines[0])
	assert.Empty(t, Overview(Inputs{}))
}
