package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/api"
	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/stretchr/testify/assert"
)

func TestMapReportDomainToApi(t *testing.T) {
	generated := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	in := domain.Report{
		ID:           "r-1",
		AssessmentID: "a-1",
		DetailLevel:  domain.DetailDetailed,
		GeneratedAt:  generated,
		Sections: []domain.ReportSection{
			{OrderNumber: 1.0, SectionName: "demographics", Title: "Demographics", Content: "Jane Doe", Valid: true},
			{OrderNumber: 2.0, SectionName: "mobility", Title: "Mobility", Content: "No data available for this section",
				Errors: []string{"Missing required field: functionalAssessment"}},
		},
	}

	expected := api.Report{
		ID:              "r-1",
		AssessmentID:    "a-1",
		DetailLevel:     "detailed",
		GeneratedAt:     generated,
		InvalidSections: 1,
		Sections: []api.ReportSection{
			{OrderNumber: 1.0, SectionName: "demographics", Title: "Demographics", Content: "Jane Doe", IsValid: true},
			{OrderNumber: 2.0, SectionName: "mobility", Title: "Mobility", Content: "No data available for this section",
				Errors: []string{"Missing required field: functionalAssessment"}},
		},
	}

	assert.Equal(t, expected, MapReportDomainToApi(in))
}

func TestMapReportDomainToApi_NoSections(t *testing.T) {
	res := MapReportDomainToApi(domain.Report{ID: "r-2"})

	assert.NotNil(t, res.Sections)
	assert.Empty(t, res.Sections)
}

func TestMapValidationsToApi(t *testing.T) {
	in := []report.AgentValidation{
		{Name: "transfers", Title: "Transfers", Order: 2.1, Result: domain.ValidationResult{
			IsValid:  true,
			Warnings: []string{"Unrecognised assistance level for bed transfer: sometimes"},
		}},
	}

	res := MapValidationsToApi(in)

	assert.Equal(t, []api.ValidationResult{{
		Agent:    "transfers",
		Title:    "Transfers",
		Order:    2.1,
		IsValid:  true,
		Warnings: []string{"Unrecognised assistance level for bed transfer: sometimes"},
	}}, res)
}

func TestMapAgentInfoToApi(t *testing.T) {
	res := MapAgentInfoToApi([]report.AgentInfo{{Name: "iadl", Title: "Instrumental Activities of Daily Living", Order: 4.2}})

	assert.Equal(t, []api.Agent{{Name: "iadl", Title: "Instrumental Activities of Daily Living", Order: 4.2}}, res)
}
