package agents

import (
	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

func ptr[T any](v T) *T {
	return &v
}

// sampleAssessment returns a fresh, fully populated assessment
func sampleAssessment() *domain.AssessmentData {
	return &domain.AssessmentData{
		ID:   "assessment-001",
		Date: "2024-06-01",
		Demographics: &domain.Demographics{
			FirstName:        "Jordan",
			LastName:         "Rivera",
			DateOfBirth:      "1980-03-15",
			Gender:           "Non-binary",
			Email:            "jordan.rivera@example.com",
			Phone:            "+1 (416) 555-0199",
			Address:          "12 Elm Street",
			MaritalStatus:    "Married",
			NumberOfChildren: ptr(2),
			EmergencyContact: &domain.EmergencyContact{Name: "Sam Rivera", Phone: "416-555-0100", Relationship: "Spouse"},
			HouseholdMembers: []domain.HouseholdMember{{Name: "Sam Rivera", Relationship: "Spouse"}},
		},
		FunctionalAssessment: &domain.FunctionalAssessment{
			RangeOfMotion: map[string][]domain.ROMMeasurement{
				"shoulder": {{
					Movement:  "flexion",
					Active:    &domain.ROMValues{Right: ptr(160.0), Left: ptr(80.0), Normal: ptr(180.0)},
					PainScale: &domain.SidePair{Right: ptr(2.0), Left: ptr(6.0)},
				}},
				"knee": {{
					Movement: "flexion",
					Active:   &domain.ROMValues{Right: ptr(130.0), Left: ptr(125.0), Normal: ptr(135.0)},
				}},
			},
			Transfers: &domain.Transfers{
				BedMobility: "Independent",
				SitToStand:  "Supervision",
				Toilet: &domain.TransferLocation{
					AssistanceLevel: "Minimal Assistance",
					Equipment:       []string{"raised toilet seat"},
					SafetyConcerns:  []string{"Unsteady when turning"},
				},
				Shower: &domain.TransferLocation{
					AssistanceLevel: "Modified Independent",
					Equipment:       []string{"shower chair"},
					Modifications:   []string{"grab bar by shower"},
				},
			},
			BergBalance: &domain.BergBalance{TotalScore: ptr(38)},
			Mobility: &domain.Mobility{
				WalkingDistance:  ptr(150.0),
				OutdoorDistance:  ptr(100.0),
				AssistiveDevices: []string{"single point cane"},
			},
			ADL: map[string]map[string]domain.ActivityRecord{
				"bathing":  {"shower": {Independence: "Minimal Assistance", Equipment: []string{"shower chair"}}},
				"dressing": {"upperBody": {Independence: "Independent"}, "lowerBody": {Independence: "Supervision"}},
				"feeding":  {"eating": {Independence: "Independent"}},
			},
			IADL: map[string]map[string]domain.ActivityRecord{
				"household": {"cleaning": {Independence: "Moderate Assistance"}, "mealPrep": {Independence: "Modified Independent"}},
				"community": {"shopping": {Independence: "Supervision"}},
			},
		},
		Symptoms: &domain.Symptoms{
			Physical: []domain.Symptom{
				{Symptom: "Low back pain", Location: "Lower back", Severity: "Severe", Frequency: "Often", PainType: "aching", Aggravating: "lifting, cold weather", Impact: "Worse in the morning"},
				{Symptom: "Shoulder pain", Location: "Left shoulder", Severity: "Moderate", Frequency: "Sometimes"},
			},
			Cognitive: []domain.Symptom{
				{Symptom: "Memory difficulty", Severity: "Moderate", Frequency: "Often"},
			},
			Emotional: []domain.Symptom{
				{Symptom: "Anxiety", Severity: "Moderate", Frequency: "Most of the time", Impact: "Avoids social events"},
				{Symptom: "Irritability", Severity: "Severe", Frequency: "Often"},
			},
		},
		Documentation: &domain.Documentation{
			Medical: []domain.Document{
				{Title: "MRI Lumbar Spine", Date: "2023-07-10", Provider: "City Imaging", Summary: "Mild disc bulge at L4-5", Recommendations: []string{"Physiotherapy"}},
				{Title: "GP Report", Date: "2024-05-01", Recommendations: []string{"physiotherapy"}},
			},
			Legal: []domain.Document{{Title: "Statement of Claim"}},
		},
		MedicalHistory: &domain.MedicalHistory{
			Injury: &domain.Injury{Date: "2023-06-01", Circumstance: "Motor vehicle collision", Diagnosis: []string{"Lumbar strain"}},
			Medications: []domain.Medication{
				{Name: "Meloxicam", Dosage: "15mg", Frequency: "daily"},
				{Name: "Gabapentin", Dosage: "300mg", Frequency: "TID"},
			},
			CurrentTreatment: []domain.Treatment{
				{Name: "Physiotherapy", ProviderType: "Physiotherapist", StartDate: "2023-08-01", Progress: "Slow improvement"},
			},
		},
		Equipment: &domain.Equipment{Current: []string{"Shower chair", "single point cane"}},
		Environment: &domain.Environment{
			PropertyType: "Two-storey house",
			Rooms: []domain.Room{
				{Name: "Main bathroom", Hazards: []string{"Slippery tub floor"}},
				{Name: "Hallway", HasStairs: true},
			},
			Safety: &domain.SafetyAssessment{Recommendations: []string{"Install night lights"}},
		},
	}
}

// allAgents builds every agent with the given config
func allAgents(cfg Config) []SectionAgent {
	return []SectionAgent{
		NewDemographicsAgent(cfg),
		NewDocumentationAgent(cfg),
		NewMedicalHistoryAgent(cfg),
		NewMobilityAgent(cfg),
		NewTransfersAgent(cfg),
		NewROMAgent(cfg),
		NewSymptomIntegrationAgent(cfg),
		NewPhysicalSymptomsAgent(cfg),
		NewCognitiveSymptomsAgent(cfg),
		NewEmotionalSymptomsAgent(cfg),
		NewBasicADLAgent(cfg),
		NewIADLAgent(cfg),
		NewEnvironmentAgent(cfg),
	}
}
