package detectors

import (
	"fmt"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

// BergLowRiskScore and BergModerateRiskScore are the Berg Balance Scale cut-offs
const (
	BergLowRiskScore      = 45
	BergModerateRiskScore = 35
)

// FallRiskFromBerg bands a Berg total into low, medium or high fall risk
func FallRiskFromBerg(score int) domain.Severity {
	switch {
	case score >= BergLowRiskScore:
		return domain.SeverityLow
	case score >= BergModerateRiskScore:
		return domain.SeverityMedium
	default:
		return domain.SeverityHigh
	}
}

// TransferActivity is one recorded transfer with its level normalised
type TransferActivity struct {
	Name           string
	RawLevel       string
	Level          domain.IndependenceLevel
	KnownLevel     bool
	Equipment      []string
	Modifications  []string
	SafetyConcerns []string
}

// TransferActivities flattens the transfer record in a fixed order:
// bed, chair, toilet, shower, tub, car. Unrecorded activities are skipped.
func TransferActivities(t *domain.Transfers) []TransferActivity {
	if t == nil {
		return nil
	}

	var activities []TransferActivity
	addLevel := func(name, raw string) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		level, known := domain.ParseIndependenceLevel(raw)
		activities = append(activities, TransferActivity{Name: name, RawLevel: raw, Level: level, KnownLevel: known})
	}
	addLocation := func(name string, loc *domain.TransferLocation) {
		if loc == nil {
			return
		}
		level, known := domain.ParseIndependenceLevel(loc.AssistanceLevel)
		activities = append(activities, TransferActivity{
			Name:           name,
			RawLevel:       loc.AssistanceLevel,
			Level:          level,
			KnownLevel:     known,
			Equipment:      loc.Equipment,
			Modifications:  loc.Modifications,
			SafetyConcerns: loc.SafetyConcerns,
		})
	}

	addLevel("bed", t.BedMobility)
	addLevel("chair", t.SitToStand)
	addLocation("toilet", t.Toilet)
	addLocation("shower", t.Shower)
	addLocation("tub", t.Tub)
	addLocation("car", t.Car)
	return activities
}

// DetectTransferPatterns emits assistance, equipment and safety findings per
// activity, plus one fall risk finding when a low Berg score coincides with
// assisted transfers. hasBerg is false when no Berg total was recorded.
func DetectTransferPatterns(activities []TransferActivity, berg int, hasBerg bool) []domain.TransferPattern {
	var patterns []domain.TransferPattern
	assisted := 0

	for _, a := range activities {
		if a.Level.RequiresAssistance() {
			assisted++
			score, _ := a.Level.Score()
			patterns = append(patterns, domain.TransferPattern{
				Activity:    a.Name,
				Category:    domain.PatternAssistanceRequired,
				Description: fmt.Sprintf("%s transfer requires %s", titleCase(a.Name), strings.ToLower(a.Level.Label())),
				Intensity:   5 - score,
				Severity:    assistanceSeverity(score),
			})
		}
		if len(a.Equipment) > 0 {
			patterns = append(patterns, domain.TransferPattern{
				Activity:    a.Name,
				Category:    domain.PatternEquipmentDependent,
				Description: fmt.Sprintf("%s transfer relies on %s", titleCase(a.Name), strings.Join(a.Equipment, ", ")),
				Severity:    domain.SeverityLow,
			})
		}
		for _, concern := range a.SafetyConcerns {
			if strings.TrimSpace(concern) == "" {
				continue
			}
			patterns = append(patterns, domain.TransferPattern{
				Activity:    a.Name,
				Category:    domain.PatternSafetyConcern,
				Description: fmt.Sprintf("%s transfer: %s", titleCase(a.Name), concern),
				Severity:    domain.SeverityMedium,
			})
		}
	}

	if hasBerg && berg < BergLowRiskScore && assisted > 0 {
		risk := FallRiskFromBerg(berg)
		patterns = append(patterns, domain.TransferPattern{
			Activity:    "balance",
			Category:    domain.PatternFallRisk,
			Description: fmt.Sprintf("Berg Balance Score of %d/56 with %d assisted %s indicates %s fall risk", berg, assisted, plural(assisted, "transfer"), risk),
			Intensity:   BergLowRiskScore - berg,
			Severity:    risk,
		})
	}
	return patterns
}

func assistanceSeverity(score int) domain.Severity {
	switch {
	case score <= 1:
		return domain.SeverityHigh
	case score <= 2:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
