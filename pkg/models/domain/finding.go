package domain

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

type Side string

const (
	SideRight     Side = "right"
	SideLeft      Side = "left"
	SideBilateral Side = "bilateral"
)

type PatternCategory string

const (
	PatternBilateralRestriction PatternCategory = "bilateral_restriction"
	PatternUnilateralAsymmetry  PatternCategory = "unilateral_asymmetry"
	PatternPainfulMovement      PatternCategory = "painful_movement"
	PatternSevereRestriction    PatternCategory = "severe_restriction"

	PatternAssistanceRequired PatternCategory = "assistance_required"
	PatternEquipmentDependent PatternCategory = "equipment_dependent"
	PatternSafetyConcern      PatternCategory = "safety_concern"
	PatternFallRisk           PatternCategory = "fall_risk"
)

// ROMPattern is a finding for one joint movement.
// Magnitude is in degrees (asymmetry difference or worst deficit),
// Intensity is the 0-10 pain score for painful movements.
type ROMPattern struct {
	Joint       string
	Movement    string
	Category    PatternCategory
	Description string
	Side        Side
	Magnitude   float64
	Intensity   float64
}

// TransferPattern is a finding for one transfer activity
type TransferPattern struct {
	Activity    string
	Category    PatternCategory
	Description string
	Intensity   int
	Severity    Severity
}

// SymptomFinding is a symptom ranked by clinical significance
type SymptomFinding struct {
	Name      string
	Domain    string
	Location  string
	Severity  string
	Frequency string
	Score     float64
	Rank      int
}
