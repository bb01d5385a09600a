package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/narrative"
)

type medicalHistoryData struct {
	Injury      *domain.Injury
	PreExisting []string
	Medications narrative.MedicationAnalysis
	Treatments  []domain.Treatment
	Timeline    narrative.TemporalAnalysis
}

func NewMedicalHistoryAgent(cfg Config) SectionAgent {
	return New(Definition[medicalHistoryData]{
		Name:  "medical_history",
		Title: "Medical History",
		Order: 1.2,
		Required: []FieldRequirement{
			Require("medicalHistory", func(d *domain.AssessmentData) bool {
				return d.GetMedicalHistory() != nil
			}),
		},
		Rules:   []Rule{validateMedicalDates, validateMedications},
		Process: processMedicalHistory,
		Format:  formatMedicalHistory,
	}, cfg)
}

func validateMedicalDates(data *domain.AssessmentData) ([]string, []string) {
	history := data.GetMedicalHistory()
	if history == nil {
		return nil, nil
	}
	var errs, warnings []string
	if injury := history.GetInjury(); injury != nil && hasText(injury.Date) {
		if _, err := domain.ParseDate(injury.Date); err != nil {
			errs = append(errs, fmt.Sprintf("Invalid injury date: %s", injury.Date))
		}
	}
	for _, t := range history.GetCurrentTreatment() {
		if !hasText(t.StartDate) {
			continue
		}
		if _, err := domain.ParseDate(t.StartDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("Unrecognised start date for treatment %q: %s", valueOr(t.Name, "Unnamed treatment"), t.StartDate))
		}
	}
	return errs, warnings
}

func validateMedications(data *domain.AssessmentData) ([]string, []string) {
	var errs []string
	for i, m := range data.GetMedicalHistory().GetMedications() {
		if !hasText(m.Name) {
			errs = append(errs, fmt.Sprintf("Medication %d is missing a name", i+1))
		}
	}
	return errs, nil
}

func processMedicalHistory(_ context.Context, in Input) (medicalHistoryData, []string, error) {
	history := in.Assessment.GetMedicalHistory()
	if history == nil {
		return medicalHistoryData{}, nil, errNoData("medicalHistory")
	}
	result := medicalHistoryData{
		Injury:      history.GetInjury(),
		PreExisting: dedupeStrings(history.PreExisting),
		Medications: narrative.AnalyzeMedications(history.GetMedications()),
		Treatments:  history.GetCurrentTreatment(),
		Timeline:    narrative.AnalyzeTimeline(history, in.Shared.ReferenceDate),
	}

	var warnings []string
	if result.Injury == nil {
		warnings = append(warnings, "No injury details recorded")
	}
	return result, warnings, nil
}

func formatMedicalHistory(p ProcessedData[medicalHistoryData], level domain.DetailLevel) string {
	d := p.Data

	if level == domain.DetailBrief {
		parts := []string{d.Timeline.DurationDescription}
		if d.Injury != nil && len(d.Injury.Diagnosis) > 0 {
			parts = append(parts, "diagnoses: "+listOr(d.Injury.Diagnosis, NotAssessed))
		}
		meds := 0
		for _, c := range d.Medications.Categories {
			meds += len(c.Medications)
		}
		parts = append(parts, fmt.Sprintf("%d medications across %d categories", meds, len(d.Medications.Categories)))
		return strings.Join(parts, "; ") + "."
	}

	var w writer
	w.heading("Injury")
	if d.Injury != nil {
		w.field("Date", d.Injury.Date)
		w.field("Circumstance", d.Injury.Circumstance)
		w.field("Mechanism", d.Injury.Mechanism)
		w.line("Diagnoses:")
		w.bullets(d.Injury.Diagnosis, NoneReported)
	} else {
		w.line(NoneReported)
	}
	w.field("Time Since Injury", d.Timeline.DurationDescription)

	w.heading("Pre-existing Conditions")
	w.bullets(d.PreExisting, NoneReported)

	w.heading("Medications")
	if d.Medications.Empty() {
		w.line("- %s", NoneReported)
	}
	for _, c := range d.Medications.Categories {
		w.line("%s:", c.Category.Label())
		for _, m := range c.Medications {
			w.line("- %s", medicationLine(m))
		}
		if level == domain.DetailDetailed && hasText(c.ClinicalSignificance) {
			w.line("  Significance: %s", c.ClinicalSignificance)
		}
	}

	w.heading("Current Treatment")
	var treatments []string
	for _, t := range d.Treatments {
		treatments = append(treatments, treatmentLine(t, level))
	}
	w.bullets(treatments, NoneReported)

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Medication Implications")
	w.bullets(d.Medications.Implications(), NoneReported)

	w.heading("Timeline")
	var events []string
	for _, e := range d.Timeline.Events {
		events = append(events, fmt.Sprintf("%s: %s", e.Date.Format("2006-01-02"), e.Label))
	}
	w.bullets(events, NoneReported)
	w.field("Recovery Phase", domain.Humanize(string(d.Timeline.Phase)))
	w.field("Progression", d.Timeline.ProgressionDescription)
	return w.String()
}

func medicationLine(m domain.Medication) string {
	line := valueOr(m.Name, "Unnamed medication")
	var detail []string
	for _, v := range []string{m.Dosage, m.Frequency} {
		if hasText(v) {
			detail = append(detail, strings.TrimSpace(v))
		}
	}
	if len(detail) > 0 {
		line += " " + strings.Join(detail, " ")
	}
	if hasText(m.Purpose) {
		line += " (" + strings.TrimSpace(m.Purpose) + ")"
	}
	return line
}

func treatmentLine(t domain.Treatment, level domain.DetailLevel) string {
	line := valueOr(t.Name, "Unnamed treatment")
	if hasText(t.ProviderType) {
		line += " - " + t.ProviderType
	}
	if hasText(t.Frequency) {
		line += ", " + t.Frequency
	}
	if level == domain.DetailDetailed {
		if hasText(t.Focus) {
			line += "; focus: " + t.Focus
		}
		if hasText(t.Progress) {
			line += "; progress: " + t.Progress
		}
	}
	return line
}
