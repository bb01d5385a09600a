package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DetailLevel controls how verbose the formatted section content is
type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailStandard DetailLevel = "standard"
	DetailDetailed DetailLevel = "detailed"
)

func DetailLevels() []DetailLevel {
	return []DetailLevel{DetailBrief, DetailStandard, DetailDetailed}
}

// ParseDetailLevel accepts brief, standard or detailed in any case.
// An empty value defaults to standard.
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch DetailLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "", DetailStandard:
		return DetailStandard, nil
	case DetailBrief:
		return DetailBrief, nil
	case DetailDetailed:
		return DetailDetailed, nil
	default:
		return DetailStandard, fmt.Errorf("unknown detail level %q, expected one of brief, standard, detailed", s)
	}
}

// OrDefault returns the level itself when recognised and standard otherwise
func (d DetailLevel) OrDefault() DetailLevel {
	level, err := ParseDetailLevel(string(d))
	if err != nil {
		return DetailStandard
	}
	return level
}

// ReportSection is the ordered, renderable unit of report output
type ReportSection struct {
	OrderNumber float64
	SectionName string
	Title       string
	Content     string
	Valid       bool
	Errors      []string
	Warnings    []string
}

// SortSections orders sections ascending by OrderNumber, keeping input order for ties
func SortSections(sections []ReportSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].OrderNumber < sections[j].OrderNumber
	})
}

// ValidationResult is the outcome of checking an assessment against one agent's requirements
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Report wraps the ordered sections produced for one assessment
type Report struct {
	ID           string
	AssessmentID string
	DetailLevel  DetailLevel
	GeneratedAt  time.Time
	Sections     []ReportSection
}

// InvalidSections returns the number of sections marked invalid
func (r Report) InvalidSections() int {
	count := 0
	for _, s := range r.Sections {
		if !s.Valid {
			count++
		}
	}
	return count
}
