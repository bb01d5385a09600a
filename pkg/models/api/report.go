package api

import "time"

type ReportSection struct {
	OrderNumber float64  `json:"orderNumber"`
	SectionName string   `json:"sectionName"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	IsValid     bool     `json:"isValid"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

type Report struct {
	ID              string          `json:"id"`
	AssessmentID    string          `json:"assessmentId"`
	DetailLevel     string          `json:"detailLevel"`
	GeneratedAt     time.Time       `json:"generatedAt"`
	InvalidSections int             `json:"invalidSections"`
	Sections        []ReportSection `json:"sections"`
}

type ValidationResult struct {
	Agent    string   `json:"agent"`
	Title    string   `json:"title"`
	Order    float64  `json:"order"`
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type Agent struct {
	Name  string  `json:"name"`
	Title string  `json:"title"`
	Order float64 `json:"order"`
}

type Error struct {
	Message string `json:"error"`
}
