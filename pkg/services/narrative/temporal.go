package narrative

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

type EventKind string

const (
	EventInjury    EventKind = "injury"
	EventTreatment EventKind = "treatment"
)

type TimelineEvent struct {
	Date  time.Time
	Kind  EventKind
	Label string
}

type Phase string

const (
	PhaseUnknown      Phase = "unknown"
	PhaseAcute        Phase = "acute"
	PhaseSubAcute     Phase = "sub_acute"
	PhaseEarlyChronic Phase = "early_chronic"
	PhaseChronic      Phase = "chronic"
)

type Progression string

const (
	ProgressionInsufficient Progression = "insufficient"
	ProgressionImproving    Progression = "improving"
	ProgressionPlateau      Progression = "plateau"
	ProgressionDecline      Progression = "decline"
	ProgressionVariable     Progression = "variable"
)

type TemporalAnalysis struct {
	Events                 []TimelineEvent
	ElapsedMonths          int
	Phase                  Phase
	DurationDescription    string
	Progression            Progression
	ProgressionDescription string
}

func (t TemporalAnalysis) Empty() bool {
	return len(t.Events) == 0
}

// AnalyzeTimeline orders the documented events and derives the elapsed-time
// phase and a progression label. Elapsed time is measured from the first event
// to reference; a zero reference falls back to the latest event so the result
// never depends on the wall clock.
func AnalyzeTimeline(history *domain.MedicalHistory, reference time.Time) TemporalAnalysis {
	events := timelineEvents(history)
	result := TemporalAnalysis{
		Events:                 events,
		Phase:                  PhaseUnknown,
		DurationDescription:    "Duration not documented",
		Progression:            ProgressionInsufficient,
		ProgressionDescription: "Insufficient data for progression analysis",
	}
	if len(events) == 0 {
		return result
	}

	if reference.IsZero() {
		reference = events[len(events)-1].Date
	}
	months := domain.MonthsBetween(events[0].Date, reference)
	if months < 0 {
		months = 0
	}
	result.ElapsedMonths = months
	result.Phase, result.DurationDescription = phaseFor(months)

	if len(events) >= 2 {
		result.Progression, result.ProgressionDescription = progressionFor(history.GetCurrentTreatment())
	}
	return result
}

func timelineEvents(history *domain.MedicalHistory) []TimelineEvent {
	var events []TimelineEvent
	if injury := history.GetInjury(); injury != nil {
		if d, err := domain.ParseDate(injury.Date); err == nil {
			label := "Injury"
			if injury.Circumstance != "" {
				label = "Injury: " + injury.Circumstance
			}
			events = append(events, TimelineEvent{Date: d, Kind: EventInjury, Label: label})
		}
	}
	for _, t := range history.GetCurrentTreatment() {
		d, err := domain.ParseDate(t.StartDate)
		if err != nil {
			continue
		}
		name := t.Name
		if name == "" {
			name = t.ProviderType
		}
		if name == "" {
			name = "treatment"
		}
		events = append(events, TimelineEvent{Date: d, Kind: EventTreatment, Label: "Started " + name})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

func phaseFor(months int) (Phase, string) {
	switch {
	case months < 1:
		return PhaseAcute, "Acute presentation (less than 1 month)"
	case months < 3:
		return PhaseSubAcute, "Sub-acute presentation (1-3 months)"
	case months < 6:
		return PhaseEarlyChronic, "Early chronic presentation (3-6 months)"
	default:
		return PhaseChronic, fmt.Sprintf("Chronic presentation (%d months)", months)
	}
}

func progressionFor(treatments []domain.Treatment) (Progression, string) {
	var notes []string
	for _, t := range treatments {
		notes = append(notes, strings.ToLower(t.Progress))
	}
	text := strings.Join(notes, " ")

	switch {
	case containsAny(text, []string{"improving", "improved", "progress"}):
		return ProgressionImproving, "Shows improvement with intervention"
	case containsAny(text, []string{"plateau", "stable"}):
		return ProgressionPlateau, "Stable presentation"
	case containsAny(text, []string{"decline", "worsen"}):
		return ProgressionDecline, "Declining function noted"
	default:
		return ProgressionVariable, "Variable progression"
	}
}
