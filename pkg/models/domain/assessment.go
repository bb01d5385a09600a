package domain

// AssessmentData is the full input record of a functional assessment.
// Every subtree is optional; consumers go through the Get* accessors,
// which are safe to call on nil receivers and return nil/zero values.
type AssessmentData struct {
	ID                   string                `json:"id" yaml:"id"`
	Date                 string                `json:"date" yaml:"date"`
	Demographics         *Demographics         `json:"demographics,omitempty" yaml:"demographics,omitempty"`
	FunctionalAssessment *FunctionalAssessment `json:"functionalAssessment,omitempty" yaml:"functionalAssessment,omitempty"`
	Symptoms             *Symptoms             `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	Documentation        *Documentation        `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	MedicalHistory       *MedicalHistory       `json:"medicalHistory,omitempty" yaml:"medicalHistory,omitempty"`
	Equipment            *Equipment            `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Environment          *Environment          `json:"environment,omitempty" yaml:"environment,omitempty"`
}

type Demographics struct {
	FirstName        string            `json:"firstName" yaml:"firstName"`
	LastName         string            `json:"lastName" yaml:"lastName"`
	DateOfBirth      string            `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	Gender           string            `json:"gender,omitempty" yaml:"gender,omitempty"`
	Email            string            `json:"email,omitempty" yaml:"email,omitempty"`
	Phone            string            `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address          string            `json:"address,omitempty" yaml:"address,omitempty"`
	MaritalStatus    string            `json:"maritalStatus,omitempty" yaml:"maritalStatus,omitempty"`
	NumberOfChildren *int              `json:"numberOfChildren,omitempty" yaml:"numberOfChildren,omitempty"`
	ChildrenDetails  string            `json:"childrenDetails,omitempty" yaml:"childrenDetails,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty" yaml:"emergencyContact,omitempty"`
	HouseholdMembers []HouseholdMember `json:"householdMembers,omitempty" yaml:"householdMembers,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name" yaml:"name"`
	Phone        string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty" yaml:"relationship,omitempty"`
}

type HouseholdMember struct {
	Name         string `json:"name" yaml:"name"`
	Relationship string `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	Notes        string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type FunctionalAssessment struct {
	// RangeOfMotion is keyed by joint name (shoulder, knee, cervical...).
	RangeOfMotion map[string][]ROMMeasurement `json:"rangeOfMotion,omitempty" yaml:"rangeOfMotion,omitempty"`
	Transfers     *Transfers                  `json:"transfers,omitempty" yaml:"transfers,omitempty"`
	BergBalance   *BergBalance                `json:"bergBalance,omitempty" yaml:"bergBalance,omitempty"`
	Mobility      *Mobility                   `json:"mobility,omitempty" yaml:"mobility,omitempty"`
	// ADL and IADL are keyed by category, then by activity.
	ADL  map[string]map[string]ActivityRecord `json:"adl,omitempty" yaml:"adl,omitempty"`
	IADL map[string]map[string]ActivityRecord `json:"iadl,omitempty" yaml:"iadl,omitempty"`
}

// ROMMeasurement holds one movement of a joint, in degrees.
// A nil side means the side was not measured; zero is a measurement.
type ROMMeasurement struct {
	Movement  string     `json:"movement" yaml:"movement"`
	Active    *ROMValues `json:"active,omitempty" yaml:"active,omitempty"`
	Passive   *ROMValues `json:"passive,omitempty" yaml:"passive,omitempty"`
	PainScale *SidePair  `json:"painScale,omitempty" yaml:"painScale,omitempty"`
	EndFeel   *EndFeel   `json:"endFeel,omitempty" yaml:"endFeel,omitempty"`
	Notes     string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type ROMValues struct {
	Right  *float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Left   *float64 `json:"left,omitempty" yaml:"left,omitempty"`
	Normal *float64 `json:"normal,omitempty" yaml:"normal,omitempty"`
}

type SidePair struct {
	Right *float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Left  *float64 `json:"left,omitempty" yaml:"left,omitempty"`
}

type EndFeel struct {
	Right string `json:"right,omitempty" yaml:"right,omitempty"`
	Left  string `json:"left,omitempty" yaml:"left,omitempty"`
}

type Transfers struct {
	BedMobility string            `json:"bedMobility,omitempty" yaml:"bedMobility,omitempty"`
	SitToStand  string            `json:"sitToStand,omitempty" yaml:"sitToStand,omitempty"`
	Toilet      *TransferLocation `json:"toilet,omitempty" yaml:"toilet,omitempty"`
	Shower      *TransferLocation `json:"shower,omitempty" yaml:"shower,omitempty"`
	Tub         *TransferLocation `json:"tub,omitempty" yaml:"tub,omitempty"`
	Car         *TransferLocation `json:"car,omitempty" yaml:"car,omitempty"`
	Notes       string            `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type TransferLocation struct {
	AssistanceLevel string   `json:"assistanceLevel,omitempty" yaml:"assistanceLevel,omitempty"`
	Equipment       []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Modifications   []string `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	SafetyConcerns  []string `json:"safetyConcerns,omitempty" yaml:"safetyConcerns,omitempty"`
}

type BergBalance struct {
	TotalScore *int           `json:"totalScore,omitempty" yaml:"totalScore,omitempty"`
	Items      map[string]int `json:"items,omitempty" yaml:"items,omitempty"`
}

type Mobility struct {
	// Distances are in metres.
	WalkingDistance  *float64 `json:"walkingDistance,omitempty" yaml:"walkingDistance,omitempty"`
	OutdoorDistance  *float64 `json:"outdoorDistance,omitempty" yaml:"outdoorDistance,omitempty"`
	AssistiveDevices []string `json:"assistiveDevices,omitempty" yaml:"assistiveDevices,omitempty"`
	Restrictions     []string `json:"restrictions,omitempty" yaml:"restrictions,omitempty"`
	Notes            string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type ActivityRecord struct {
	Independence string   `json:"independence,omitempty" yaml:"independence,omitempty"`
	Notes        string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Equipment    []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
}

type Symptoms struct {
	Physical     []Symptom `json:"physical,omitempty" yaml:"physical,omitempty"`
	Cognitive    []Symptom `json:"cognitive,omitempty" yaml:"cognitive,omitempty"`
	Emotional    []Symptom `json:"emotional,omitempty" yaml:"emotional,omitempty"`
	GeneralNotes string    `json:"generalNotes,omitempty" yaml:"generalNotes,omitempty"`
}

type Symptom struct {
	Symptom     string   `json:"symptom" yaml:"symptom"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	PainType    string   `json:"painType,omitempty" yaml:"painType,omitempty"`
	Severity    string   `json:"severity,omitempty" yaml:"severity,omitempty"`
	Frequency   string   `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Impact      string   `json:"impact,omitempty" yaml:"impact,omitempty"`
	Management  string   `json:"management,omitempty" yaml:"management,omitempty"`
	Aggravating string   `json:"aggravating,omitempty" yaml:"aggravating,omitempty"`
	Relieving   string   `json:"relieving,omitempty" yaml:"relieving,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Triggers    []string `json:"triggers,omitempty" yaml:"triggers,omitempty"`
}

type Documentation struct {
	Medical []Document `json:"medicalDocumentation,omitempty" yaml:"medicalDocumentation,omitempty"`
	Legal   []Document `json:"legalDocumentation,omitempty" yaml:"legalDocumentation,omitempty"`
	Other   []Document `json:"otherDocumentation,omitempty" yaml:"otherDocumentation,omitempty"`
}

type Document struct {
	Title            string   `json:"title,omitempty" yaml:"title,omitempty"`
	Date             string   `json:"date,omitempty" yaml:"date,omitempty"`
	Type             string   `json:"type,omitempty" yaml:"type,omitempty"`
	Provider         string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Summary          string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	RelevantFindings []string `json:"relevantFindings,omitempty" yaml:"relevantFindings,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

type MedicalHistory struct {
	Injury           *Injury      `json:"injury,omitempty" yaml:"injury,omitempty"`
	Medications      []Medication `json:"medications,omitempty" yaml:"medications,omitempty"`
	CurrentTreatment []Treatment  `json:"currentTreatment,omitempty" yaml:"currentTreatment,omitempty"`
	PreExisting      []string     `json:"preExisting,omitempty" yaml:"preExisting,omitempty"`
}

type Injury struct {
	Date         string   `json:"date,omitempty" yaml:"date,omitempty"`
	Circumstance string   `json:"circumstance,omitempty" yaml:"circumstance,omitempty"`
	Mechanism    string   `json:"mechanism,omitempty" yaml:"mechanism,omitempty"`
	Diagnosis    []string `json:"diagnosis,omitempty" yaml:"diagnosis,omitempty"`
}

type Medication struct {
	Name      string `json:"name" yaml:"name"`
	Dosage    string `json:"dosage,omitempty" yaml:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Purpose   string `json:"purpose,omitempty" yaml:"purpose,omitempty"`
}

type Treatment struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	ProviderType string `json:"providerType,omitempty" yaml:"providerType,omitempty"`
	StartDate    string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	Frequency    string `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Focus        string `json:"focus,omitempty" yaml:"focus,omitempty"`
	Progress     string `json:"progress,omitempty" yaml:"progress,omitempty"`
}

type Equipment struct {
	Current     []string `json:"current,omitempty" yaml:"current,omitempty"`
	Recommended []string `json:"recommended,omitempty" yaml:"recommended,omitempty"`
}

type Environment struct {
	PropertyType string            `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	Rooms        []Room            `json:"rooms,omitempty" yaml:"rooms,omitempty"`
	Safety       *SafetyAssessment `json:"safety,omitempty" yaml:"safety,omitempty"`
}

type Room struct {
	Name          string   `json:"name" yaml:"name"`
	HasStairs     bool     `json:"hasStairs,omitempty" yaml:"hasStairs,omitempty"`
	HasGrabBars   bool     `json:"hasGrabBars,omitempty" yaml:"hasGrabBars,omitempty"`
	Hazards       []string `json:"hazards,omitempty" yaml:"hazards,omitempty"`
	Modifications []string `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	Notes         string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type SafetyAssessment struct {
	Hazards         []string `json:"hazards,omitempty" yaml:"hazards,omitempty"`
	Recommendations []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

func (a *AssessmentData) GetDemographics() *Demographics {
	if a == nil {
		return nil
	}
	return a.Demographics
}

func (a *AssessmentData) GetFunctionalAssessment() *FunctionalAssessment {
	if a == nil {
		return nil
	}
	return a.FunctionalAssessment
}

func (a *AssessmentData) GetSymptoms() *Symptoms {
	if a == nil {
		return nil
	}
	return a.Symptoms
}

func (a *AssessmentData) GetDocumentation() *Documentation {
	if a == nil {
		return nil
	}
	return a.Documentation
}

func (a *AssessmentData) GetMedicalHistory() *MedicalHistory {
	if a == nil {
		return nil
	}
	return a.MedicalHistory
}

func (a *AssessmentData) GetEquipment() *Equipment {
	if a == nil {
		return nil
	}
	return a.Equipment
}

func (a *AssessmentData) GetEnvironment() *Environment {
	if a == nil {
		return nil
	}
	return a.Environment
}

func (f *FunctionalAssessment) GetRangeOfMotion() map[string][]ROMMeasurement {
	if f == nil {
		return nil
	}
	return f.RangeOfMotion
}

func (f *FunctionalAssessment) GetTransfers() *Transfers {
	if f == nil {
		return nil
	}
	return f.Transfers
}

func (f *FunctionalAssessment) GetBergBalance() *BergBalance {
	if f == nil {
		return nil
	}
	return f.BergBalance
}

func (f *FunctionalAssessment) GetMobility() *Mobility {
	if f == nil {
		return nil
	}
	return f.Mobility
}

func (f *FunctionalAssessment) GetADL() map[string]map[string]ActivityRecord {
	if f == nil {
		return nil
	}
	return f.ADL
}

func (f *FunctionalAssessment) GetIADL() map[string]map[string]ActivityRecord {
	if f == nil {
		return nil
	}
	return f.IADL
}

// GetTotalScore returns the Berg total and whether it was recorded.
func (b *BergBalance) GetTotalScore() (int, bool) {
	if b == nil || b.TotalScore == nil {
		return 0, false
	}
	return *b.TotalScore, true
}

func (s *Symptoms) GetPhysical() []Symptom {
	if s == nil {
		return nil
	}
	return s.Physical
}

func (s *Symptoms) GetCognitive() []Symptom {
	if s == nil {
		return nil
	}
	return s.Cognitive
}

func (s *Symptoms) GetEmotional() []Symptom {
	if s == nil {
		return nil
	}
	return s.Emotional
}

func (m *MedicalHistory) GetInjury() *Injury {
	if m == nil {
		return nil
	}
	return m.Injury
}

func (m *MedicalHistory) GetMedications() []Medication {
	if m == nil {
		return nil
	}
	return m.Medications
}

func (m *MedicalHistory) GetCurrentTreatment() []Treatment {
	if m == nil {
		return nil
	}
	return m.CurrentTreatment
}

func (e *Equipment) GetCurrent() []string {
	if e == nil {
		return nil
	}
	return e.Current
}

func (e *Environment) GetSafety() *SafetyAssessment {
	if e == nil {
		return nil
	}
	return e.Safety
}

func (d *Demographics) GetFirstName() string {
	if d == nil {
		return ""
	}
	return d.FirstName
}

func (d *Demographics) GetLastName() string {
	if d == nil {
		return ""
	}
	return d.LastName
}
