package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

type environmentData struct {
	PropertyType    string
	Rooms           []domain.Room
	Hazards         []string
	Accessibility   []string
	Modifications   []string
	Recommendations []string
}

func NewEnvironmentAgent(cfg Config) SectionAgent {
	return New(Definition[environmentData]{
		Name:  "environment",
		Title: "Home Environment",
		Order: 5.0,
		Required: []FieldRequirement{
			Require("environment", func(d *domain.AssessmentData) bool {
				return d.GetEnvironment() != nil
			}),
		},
		Rules:   []Rule{validateRooms},
		Process: processEnvironment,
		Format:  formatEnvironment,
	}, cfg)
}

func validateRooms(data *domain.AssessmentData) ([]string, []string) {
	env := data.GetEnvironment()
	if env == nil {
		return nil, nil
	}
	var errs, warnings []string
	for i, r := range env.Rooms {
		if !hasText(r.Name) {
			errs = append(errs, fmt.Sprintf("Room %d is missing a name", i+1))
		}
	}
	if len(env.Rooms) == 0 {
		warnings = append(warnings, "No rooms recorded")
	}
	return errs, warnings
}

func isWetRoom(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bath") || strings.Contains(lower, "toilet") ||
		strings.Contains(lower, "shower") || strings.Contains(lower, "ensuite")
}

func processEnvironment(_ context.Context, in Input) (environmentData, []string, error) {
	env := in.Assessment.GetEnvironment()
	if env == nil {
		return environmentData{}, nil, errNoData("environment")
	}

	result := environmentData{PropertyType: env.PropertyType, Rooms: env.Rooms}
	var hazards, recommendations []string
	for _, r := range env.Rooms {
		name := strings.TrimSpace(r.Name)
		for _, h := range r.Hazards {
			if hasText(h) {
				hazards = append(hazards, fmt.Sprintf("%s: %s", name, strings.TrimSpace(h)))
			}
		}
		result.Modifications = append(result.Modifications, r.Modifications...)
		if r.HasStairs {
			result.Accessibility = append(result.Accessibility, fmt.Sprintf("Stairs present in %s", strings.ToLower(name)))
		}
		if isWetRoom(name) && !r.HasGrabBars {
			result.Accessibility = append(result.Accessibility, fmt.Sprintf("No grab bars in %s", strings.ToLower(name)))
			recommendations = append(recommendations, fmt.Sprintf("Install grab bars in %s", strings.ToLower(name)))
		}
	}
	if safety := env.GetSafety(); safety != nil {
		hazards = append(hazards, safety.Hazards...)
		recommendations = append(recommendations, safety.Recommendations...)
	}

	stairs := false
	for _, r := range env.Rooms {
		stairs = stairs || r.HasStairs
	}
	if stairs && in.Shared.HasBerg && in.Shared.FallRisk != domain.SeverityLow {
		recommendations = append(recommendations, "Stair rail assessment given reduced balance")
	}

	result.Hazards = dedupeStrings(hazards)
	result.Modifications = dedupeStrings(result.Modifications)
	result.Recommendations = dedupeStrings(recommendations)
	return result, nil, nil
}

func formatEnvironment(p ProcessedData[environmentData], level domain.DetailLevel) string {
	d := p.Data
	if level == domain.DetailBrief {
		return fmt.Sprintf("%s with %d rooms assessed; %d hazards and %d accessibility issues identified.",
			valueOr(d.PropertyType, "Property"), len(d.Rooms), len(d.Hazards), len(d.Accessibility))
	}

	var w writer
	w.heading("Property")
	w.field("Type", d.PropertyType)
	var rooms []string
	for _, r := range d.Rooms {
		rooms = append(rooms, r.Name)
	}
	w.field("Rooms", listOr(rooms, NoneReported))

	w.heading("Hazards")
	w.bullets(d.Hazards, NoneReported)

	w.heading("Accessibility")
	w.bullets(d.Accessibility, NoneReported)

	w.heading("Recommendations")
	w.bullets(d.Recommendations, NoneReported)

	if level != domain.DetailDetailed {
		return w.String()
	}

	w.heading("Existing Modifications")
	w.bullets(d.Modifications, NoneReported)
	for _, r := range d.Rooms {
		if !hasText(r.Notes) {
			continue
		}
		w.line("%s: %s", valueOr(r.Name, "Room"), strings.TrimSpace(r.Notes))
	}
	return w.String()
}
