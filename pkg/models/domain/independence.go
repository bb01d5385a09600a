package domain

import "strings"

// IndependenceLevel is the ordinal assistance scale used for transfers, ADLs and IADLs
type IndependenceLevel string

const (
	LevelIndependent         IndependenceLevel = "independent"
	LevelModifiedIndependent IndependenceLevel = "modified_independent"
	LevelSupervision         IndependenceLevel = "supervision"
	LevelMinimalAssistance   IndependenceLevel = "minimal_assistance"
	LevelModerateAssistance  IndependenceLevel = "moderate_assistance"
	LevelMaximalAssistance   IndependenceLevel = "maximal_assistance"
	LevelTotalAssistance     IndependenceLevel = "total_assistance"
	LevelNotApplicable       IndependenceLevel = "not_applicable"
	LevelNotAssessed         IndependenceLevel = "not_assessed"
)

var levelAliases = map[string]IndependenceLevel{
	"independent":          LevelIndependent,
	"modified_independent": LevelModifiedIndependent,
	"modified":             LevelModifiedIndependent,
	"supervision":          LevelSupervision,
	"supervised":           LevelSupervision,
	"standby":              LevelSupervision,
	"minimal_assistance":   LevelMinimalAssistance,
	"minimal":              LevelMinimalAssistance,
	"min_assist":           LevelMinimalAssistance,
	"moderate_assistance":  LevelModerateAssistance,
	"moderate":             LevelModerateAssistance,
	"mod_assist":           LevelModerateAssistance,
	"maximal_assistance":   LevelMaximalAssistance,
	"maximal":              LevelMaximalAssistance,
	"max_assist":           LevelMaximalAssistance,
	"total_assistance":     LevelTotalAssistance,
	"total":                LevelTotalAssistance,
	"dependent":            LevelTotalAssistance,
	"not_applicable":       LevelNotApplicable,
	"na":                   LevelNotApplicable,
	"n/a":                  LevelNotApplicable,
	"not_assessed":         LevelNotAssessed,
}

var levelScores = map[IndependenceLevel]int{
	LevelIndependent:         5,
	LevelModifiedIndependent: 4,
	LevelSupervision:         3,
	LevelMinimalAssistance:   2,
	LevelModerateAssistance:  1,
	LevelMaximalAssistance:   0,
	LevelTotalAssistance:     0,
}

var levelLabels = map[IndependenceLevel]string{
	LevelIndependent:         "Independent",
	LevelModifiedIndependent: "Modified Independent",
	LevelSupervision:         "Supervision",
	LevelMinimalAssistance:   "Minimal Assistance",
	LevelModerateAssistance:  "Moderate Assistance",
	LevelMaximalAssistance:   "Maximal Assistance",
	LevelTotalAssistance:     "Total Assistance",
	LevelNotApplicable:       "Not Applicable",
	LevelNotAssessed:         "Not assessed",
}

// ParseIndependenceLevel normalises free-form level strings such as
// "Modified Independent" or "min-assist". Empty input is not_assessed.
// The boolean is false when the value is not a known level.
func ParseIndependenceLevel(s string) (IndependenceLevel, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return LevelNotAssessed, true
	}
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for _, candidate := range []string{key, strings.TrimSuffix(key, "_assistance"), strings.TrimSuffix(key, "_assist")} {
		if level, ok := levelAliases[candidate]; ok {
			return level, true
		}
	}
	return LevelNotAssessed, false
}

// Score maps the level onto 0-5. Levels without a score report false.
func (l IndependenceLevel) Score() (int, bool) {
	score, ok := levelScores[l]
	return score, ok
}

func (l IndependenceLevel) Label() string {
	if label, ok := levelLabels[l]; ok {
		return label
	}
	return "Not assessed"
}

// IsIndependent is true for independent and modified independent
func (l IndependenceLevel) IsIndependent() bool {
	return l == LevelIndependent || l == LevelModifiedIndependent
}

// RequiresAssistance is true for any scored level below modified independent
func (l IndependenceLevel) RequiresAssistance() bool {
	score, ok := l.Score()
	return ok && score < 4
}

// MoreDependent reports whether l needs more help than other.
// Unscored levels never win.
func (l IndependenceLevel) MoreDependent(other IndependenceLevel) bool {
	ls, lok := l.Score()
	if !lok {
		return false
	}
	otherScore, ook := other.Score()
	if !ook {
		return true
	}
	if ls == otherScore {
		return l == LevelTotalAssistance && other != LevelTotalAssistance
	}
	return ls < otherScore
}
