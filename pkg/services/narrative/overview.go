package narrative

import (
	"fmt"
	"strings"
)

// Inputs bundles the analyses an overview can draw on; any may be empty
type Inputs struct {
	Medications MedicationAnalysis
	Symptoms    SymptomAnalysis
	Timeline    TemporalAnalysis
	ADL         ADLAnalysis
}

// Overview correlates the individual analyses into a short list of sentences
func Overview(in Inputs) []string {
	var lines []string

	if !in.Timeline.Empty() {
		line := in.Timeline.DurationDescription
		if in.Timeline.Progression != ProgressionInsufficient {
			line += "; " + strings.ToLower(in.Timeline.ProgressionDescription)
		}
		lines = append(lines, line+".")
	}

	for _, r := range in.Symptoms.Regions {
		if r.Level.String() == "low" {
			continue
		}
		lines = append(lines, r.Significance+".")
	}

	var limited []string
	for _, d := range in.ADL.Domains {
		if d.Status == StatusRequiresAssistance || d.Status == StatusDependent {
			limited = append(limited, strings.ToLower(d.Domain.Label()))
		}
	}
	if len(limited) > 0 {
		lines = append(lines, fmt.Sprintf("Assistance is required in %s.", JoinAnd(limited)))
	}

	for _, c := range in.Medications.Categories {
		if c.Category == CategoryPainManagement && len(in.Symptoms.Regions) > 0 {
			lines = append(lines, fmt.Sprintf("%s is consistent with the reported symptom burden.", c.ClinicalSignificance))
		}
	}
	return lines
}
