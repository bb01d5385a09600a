package agents

import (
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

// FieldRequirement pairs the dotted path reported to users with a typed
// presence check over the assessment
type FieldRequirement struct {
	Path    string
	Present func(data *domain.AssessmentData) bool
}

func Require(path string, present func(data *domain.AssessmentData) bool) FieldRequirement {
	return FieldRequirement{Path: path, Present: present}
}

func MissingField(path string) string {
	return fmt.Sprintf("Missing required field: %s", path)
}

// CheckRequired reports every requirement whose check fails. A nil
// assessment fails them all.
func CheckRequired(data *domain.AssessmentData, requirements []FieldRequirement) []string {
	var errs []string
	for _, req := range requirements {
		if data == nil || req.Present == nil || !req.Present(data) {
			errs = append(errs, MissingField(req.Path))
		}
	}
	return errs
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

var (
	requireFunctionalAssessment = Require("functionalAssessment", func(d *domain.AssessmentData) bool {
		return d.GetFunctionalAssessment() != nil
	})
	requireSymptoms = Require("symptoms", func(d *domain.AssessmentData) bool {
		return d.GetSymptoms() != nil
	})
)

func errNoData(path string) error {
	return fmt.Errorf("no %s recorded", path)
}
