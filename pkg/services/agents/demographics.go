package agents

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s().-]{7,20}$`)
)

type demographicsData struct {
	FullName         string
	DateOfBirth      string
	Age              int
	HasAge           bool
	Gender           string
	Email            string
	Phone            string
	Address          string
	MaritalStatus    string
	NumberOfChildren *int
	ChildrenDetails  string
	EmergencyContact *domain.EmergencyContact
	Household        []domain.HouseholdMember
}

func NewDemographicsAgent(cfg Config) SectionAgent {
	return New(Definition[demographicsData]{
		Name:  "demographics",
		Title: "Demographics",
		Order: 1.0,
		Required: []FieldRequirement{
			Require("demographics.firstName", func(d *domain.AssessmentData) bool {
				return hasText(d.GetDemographics().GetFirstName())
			}),
			Require("demographics.lastName", func(d *domain.AssessmentData) bool {
				return hasText(d.GetDemographics().GetLastName())
			}),
		},
		Rules:   []Rule{validateContactDetails, validateDateOfBirth},
		Process: processDemographics,
		Format:  formatDemographics,
	}, cfg)
}

func validateContactDetails(data *domain.AssessmentData) ([]string, []string) {
	demo := data.GetDemographics()
	if demo == nil {
		return nil, nil
	}
	var errs, warnings []string
	if hasText(demo.Email) && !emailPattern.MatchString(strings.TrimSpace(demo.Email)) {
		errs = append(errs, fmt.Sprintf("Invalid email format: %s", demo.Email))
	}
	if hasText(demo.Phone) && !phonePattern.MatchString(strings.TrimSpace(demo.Phone)) {
		errs = append(errs, fmt.Sprintf("Invalid phone number format: %s", demo.Phone))
	}
	if contact := demo.EmergencyContact; contact != nil && hasText(contact.Phone) &&
		!phonePattern.MatchString(strings.TrimSpace(contact.Phone)) {
		errs = append(errs, fmt.Sprintf("Invalid emergency contact phone number format: %s", contact.Phone))
	}
	if demo.EmergencyContact == nil || !hasText(demo.EmergencyContact.Name) {
		warnings = append(warnings, "No emergency contact recorded")
	}
	return errs, warnings
}

func validateDateOfBirth(data *domain.AssessmentData) ([]string, []string) {
	demo := data.GetDemographics()
	if demo == nil || !hasText(demo.DateOfBirth) {
		return nil, nil
	}
	dob, err := domain.ParseDate(demo.DateOfBirth)
	if err != nil {
		return []string{fmt.Sprintf("Invalid date of birth: %s", demo.DateOfBirth)}, nil
	}
	if assessed, err := domain.ParseDate(data.Date); err == nil && dob.After(assessed) {
		return []string{"Date of birth is after the assessment date"}, nil
	}
	return nil, nil
}

func processDemographics(_ context.Context, in Input) (demographicsData, []string, error) {
	demo := in.Assessment.GetDemographics()
	if demo == nil {
		return demographicsData{}, nil, errNoData("demographics")
	}
	result := demographicsData{
		FullName:         strings.TrimSpace(demo.FirstName + " " + demo.LastName),
		DateOfBirth:      demo.DateOfBirth,
		Gender:           demo.Gender,
		Email:            strings.TrimSpace(demo.Email),
		Phone:            strings.TrimSpace(demo.Phone),
		Address:          demo.Address,
		MaritalStatus:    demo.MaritalStatus,
		NumberOfChildren: demo.NumberOfChildren,
		ChildrenDetails:  demo.ChildrenDetails,
		EmergencyContact: demo.EmergencyContact,
		Household:        demo.HouseholdMembers,
	}

	var warnings []string
	if dob, err := domain.ParseDate(demo.DateOfBirth); err == nil {
		if in.Shared.ReferenceDate.IsZero() {
			warnings = append(warnings, "Age not calculated: assessment date unavailable")
		} else {
			result.Age = domain.YearsBetween(dob, in.Shared.ReferenceDate)
			result.HasAge = true
		}
	}
	return result, warnings, nil
}

func formatDemographics(p ProcessedData[demographicsData], level domain.DetailLevel) string {
	d := p.Data
	age := NotAssessed
	if d.HasAge {
		age = fmt.Sprintf("%d years", d.Age)
	}

	if level == domain.DetailBrief {
		parts := []string{d.FullName, age}
		if hasText(d.Gender) {
			parts = append(parts, d.Gender)
		}
		return strings.Join(parts, ", ")
	}

	var w writer
	w.heading("Personal Information")
	w.field("Name", d.FullName)
	w.field("Date of Birth", d.DateOfBirth)
	w.field("Age", age)
	w.field("Gender", d.Gender)
	w.field("Marital Status", d.MaritalStatus)

	w.heading("Contact Information")
	w.field("Phone", d.Phone)
	w.field("Email", d.Email)
	w.field("Address", d.Address)

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Emergency Contact")
	if c := d.EmergencyContact; c != nil && hasText(c.Name) {
		w.field("Name", c.Name)
		w.field("Relationship", c.Relationship)
		w.field("Phone", c.Phone)
	} else {
		w.line(NoneReported)
	}

	w.heading("Family and Household")
	children := NotAssessed
	if d.NumberOfChildren != nil {
		children = fmt.Sprintf("%d", *d.NumberOfChildren)
	}
	w.field("Number of Children", children)
	if hasText(d.ChildrenDetails) {
		w.field("Children Details", d.ChildrenDetails)
	}
	var members []string
	for _, m := range d.Household {
		if !hasText(m.Name) {
			continue
		}
		entry := m.Name
		if hasText(m.Relationship) {
			entry += " (" + m.Relationship + ")"
		}
		if hasText(m.Notes) {
			entry += ": " + m.Notes
		}
		members = append(members, entry)
	}
	w.line("Household Members:")
	w.bullets(members, NoneReported)
	return w.String()
}
