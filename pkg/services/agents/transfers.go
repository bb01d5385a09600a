package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/detectors"
)

type transfersData struct {
	Activities      []detectors.TransferActivity
	Patterns        []domain.TransferPattern
	BergScore       int
	HasBerg         bool
	RiskFactors     []string
	Recommendations []string
	Notes           string
}

func (d transfersData) assisted() int {
	n := 0
	for _, a := range d.Activities {
		if a.Level.RequiresAssistance() {
			n++
		}
	}
	return n
}

func NewTransfersAgent(cfg Config) SectionAgent {
	return New(Definition[transfersData]{
		Name:  "transfers",
		Title: "Transfers",
		Order: 2.1,
		Required: []FieldRequirement{
			requireFunctionalAssessment,
			Require("functionalAssessment.transfers", func(d *domain.AssessmentData) bool {
				return d.GetFunctionalAssessment().GetTransfers() != nil
			}),
		},
		Rules:   []Rule{validateTransferLevels},
		Process: processTransfers,
		Format:  formatTransfers,
	}, cfg)
}

func validateTransferLevels(data *domain.AssessmentData) ([]string, []string) {
	var warnings []string
	for _, a := range detectors.TransferActivities(data.GetFunctionalAssessment().GetTransfers()) {
		if !a.KnownLevel {
			warnings = append(warnings, fmt.Sprintf("Unrecognised assistance level for %s transfer: %s", a.Name, a.RawLevel))
		}
	}
	return nil, warnings
}

func processTransfers(_ context.Context, in Input) (transfersData, []string, error) {
	transfers := in.Assessment.GetFunctionalAssessment().GetTransfers()
	if transfers == nil {
		return transfersData{}, nil, errNoData("functionalAssessment.transfers")
	}

	activities := detectors.TransferActivities(transfers)
	result := transfersData{
		Activities: activities,
		Patterns:   detectors.DetectTransferPatterns(activities, in.Shared.BergScore, in.Shared.HasBerg),
		BergScore:  in.Shared.BergScore,
		HasBerg:    in.Shared.HasBerg,
		Notes:      transfers.Notes,
	}

	var equipment, modifications, concerns []string
	for _, a := range activities {
		equipment = append(equipment, a.Equipment...)
		modifications = append(modifications, a.Modifications...)
		concerns = append(concerns, a.SafetyConcerns...)
	}
	equipment = dedupeStrings(equipment)
	concerns = dedupeStrings(concerns)
	lowBalance := result.HasBerg && result.BergScore < detectors.BergLowRiskScore

	if result.assisted() > 0 {
		result.RiskFactors = append(result.RiskFactors, "Requires assistance with transfers")
	}
	if len(equipment) > 0 {
		result.RiskFactors = append(result.RiskFactors, "Equipment dependent for safe transfers")
	}
	result.RiskFactors = append(result.RiskFactors, concerns...)
	if lowBalance {
		result.RiskFactors = append(result.RiskFactors, "Decreased balance per Berg Balance Score")
	}

	var needed []string
	for _, item := range equipment {
		if !containsFold(in.Shared.CurrentEquipment, item) {
			needed = append(needed, item)
		}
	}
	if len(needed) > 0 {
		result.Recommendations = append(result.Recommendations,
			"Obtain needed transfer equipment: "+strings.Join(needed, ", "))
	}
	if mods := dedupeStrings(modifications); len(mods) > 0 {
		result.Recommendations = append(result.Recommendations,
			"Implement safety modifications: "+strings.Join(mods, ", "))
	}
	if lowBalance {
		result.Recommendations = append(result.Recommendations, "Physical therapy evaluation for balance training")
	}
	if result.assisted() > 0 {
		result.Recommendations = append(result.Recommendations, "Occupational therapy for transfer training")
	}

	var warnings []string
	if len(activities) == 0 {
		warnings = append(warnings, "No transfer activities recorded")
	}
	return result, warnings, nil
}

func transferLevel(a detectors.TransferActivity) string {
	if a.KnownLevel {
		return a.Level.Label()
	}
	return valueOr(a.RawLevel, NotAssessed)
}

func formatTransfers(p ProcessedData[transfersData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		summary := fmt.Sprintf("Requires assistance for %d of %d transfers", d.assisted(), len(d.Activities))
		if d.HasBerg {
			summary += fmt.Sprintf("; %s fall risk (Berg %d/%d)", detectors.FallRiskFromBerg(d.BergScore), d.BergScore, bergMaxScore)
		}
		return summary + "."
	}

	var w writer
	w.heading("Transfer Status")
	if len(d.Activities) == 0 {
		w.line("- %s", NotAssessed)
	}
	for _, a := range d.Activities {
		line := fmt.Sprintf("%s: %s", domain.Humanize(a.Name), transferLevel(a))
		if len(a.Equipment) > 0 {
			line += " (equipment: " + strings.Join(a.Equipment, ", ") + ")"
		}
		w.line("- %s", line)
	}

	w.heading("Risk Factors")
	w.bullets(d.RiskFactors, NoneReported)

	w.heading("Recommendations")
	w.bullets(d.Recommendations, NoneReported)

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Findings")
	var findings []string
	for _, pattern := range d.Patterns {
		findings = append(findings, fmt.Sprintf("%s [%s]", pattern.Description, pattern.Severity))
	}
	w.bullets(findings, NoneReported)
	if hasText(d.Notes) {
		w.heading("Notes")
		w.line("%s", d.Notes)
	}
	return w.String()
}
