package adapters

import (
	"github.com/de-tools/assessment-atlas/pkg/models/api"
	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
)

func MapReportSectionDomainToApi(s domain.ReportSection) api.ReportSection {
	return api.ReportSection{
		OrderNumber: s.OrderNumber,
		SectionName: s.SectionName,
		Title:       s.Title,
		Content:     s.Content,
		IsValid:     s.Valid,
		Errors:      s.Errors,
		Warnings:    s.Warnings,
	}
}

func MapReportDomainToApi(r domain.Report) api.Report {
	res := api.Report{
		ID:              r.ID,
		AssessmentID:    r.AssessmentID,
		DetailLevel:     string(r.DetailLevel),
		GeneratedAt:     r.GeneratedAt,
		InvalidSections: r.InvalidSections(),
		Sections:        make([]api.ReportSection, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		res.Sections = append(res.Sections, MapReportSectionDomainToApi(s))
	}
	return res
}

func MapValidationToApi(v report.AgentValidation) api.ValidationResult {
	return api.ValidationResult{
		Agent:    v.Name,
		Title:    v.Title,
		Order:    v.Order,
		IsValid:  v.Result.IsValid,
		Errors:   v.Result.Errors,
		Warnings: v.Result.Warnings,
	}
}

func MapValidationsToApi(results []report.AgentValidation) []api.ValidationResult {
	res := make([]api.ValidationResult, 0, len(results))
	for _, v := range results {
		res = append(res, MapValidationToApi(v))
	}
	return res
}

func MapAgentInfoToApi(infos []report.AgentInfo) []api.Agent {
	res := make([]api.Agent, 0, len(infos))
	for _, info := range infos {
		res = append(res, api.Agent{Name: info.Name, Title: info.Title, Order: info.Order})
	}
	return res
}
