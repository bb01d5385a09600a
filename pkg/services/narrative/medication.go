package narrative

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

type MedicationCategory string

const (
	CategoryPainManagement MedicationCategory = "pain_management"
	CategoryGastric        MedicationCategory = "gastric"
	CategoryCardiovascular MedicationCategory = "cardiovascular"
	CategoryMetabolic      MedicationCategory = "metabolic"
	CategoryUrologic       MedicationCategory = "urologic"
	CategorySleepMood      MedicationCategory = "sleep_mood"
	CategoryOther          MedicationCategory = "other"
)

type categoryKeywords struct {
	category MedicationCategory
	keywords []string
}

// medicationCategories is matched in order; the first hit wins
var medicationCategories = []categoryKeywords{
	{CategoryPainManagement, []string{"ibuprofen", "meloxicam", "naproxen", "celecoxib", "diclofenac", "nabilone", "gabapentin", "pregabalin", "acetaminophen", "tramadol"}},
	{CategoryGastric, []string{"esomeprazole", "pantoprazole", "omeprazole", "lansoprazole"}},
	{CategoryCardiovascular, []string{"perindopril", "rosuvastatin", "atorvastatin", "amlodipine", "ramipril"}},
	{CategoryMetabolic, []string{"metformin", "levothyroxine"}},
	{CategoryUrologic, []string{"silodosin", "silodocin", "tamsulosin"}},
	{CategorySleepMood, []string{"trazodone", "amitriptyline", "sertraline", "zopiclone"}},
}

var (
	nsaidKeywords       = []string{"ibuprofen", "meloxicam", "naproxen", "celecoxib", "diclofenac"}
	neuropathicKeywords = []string{"nabilone", "gabapentin", "pregabalin"}
	doseValue           = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

func (c MedicationCategory) Label() string {
	switch c {
	case CategoryPainManagement:
		return "Pain management"
	case CategorySleepMood:
		return "Sleep and mood"
	default:
		return domainLabel(string(c))
	}
}

// CategoryAnalysis is the narrative for one medication category
type CategoryAnalysis struct {
	Category             MedicationCategory
	Medications          []domain.Medication
	ClinicalSignificance string
	Implications         []string
}

type MedicationAnalysis struct {
	Categories []CategoryAnalysis
}

func (m MedicationAnalysis) Empty() bool {
	return len(m.Categories) == 0
}

// Implications returns every functional implication across categories
func (m MedicationAnalysis) Implications() []string {
	var all []string
	for _, c := range m.Categories {
		all = append(all, c.Implications...)
	}
	return dedupe(all)
}

// CategorizeMedication matches a medication name against the category table
func CategorizeMedication(name string) MedicationCategory {
	lower := strings.ToLower(name)
	for _, c := range medicationCategories {
		if containsAny(lower, c.keywords) {
			return c.category
		}
	}
	return CategoryOther
}

// AnalyzeMedications groups medications by category, in category table order
// with "other" last, and derives significance and implications per category.
func AnalyzeMedications(meds []domain.Medication) MedicationAnalysis {
	grouped := make(map[MedicationCategory][]domain.Medication)
	for _, med := range meds {
		if strings.TrimSpace(med.Name) == "" {
			continue
		}
		category := CategorizeMedication(med.Name)
		grouped[category] = append(grouped[category], med)
	}

	var analysis MedicationAnalysis
	order := make([]MedicationCategory, 0, len(medicationCategories)+1)
	for _, c := range medicationCategories {
		order = append(order, c.category)
	}
	order = append(order, CategoryOther)

	for _, category := range order {
		group, ok := grouped[category]
		if !ok {
			continue
		}
		analysis.Categories = append(analysis.Categories, analyzeCategory(category, group))
	}
	return analysis
}

func analyzeCategory(category MedicationCategory, meds []domain.Medication) CategoryAnalysis {
	result := CategoryAnalysis{Category: category, Medications: meds}

	switch category {
	case CategoryPainManagement:
		hasNSAID := anyMedication(meds, nsaidKeywords)
		hasNeuropathic := anyMedication(meds, neuropathicKeywords)
		switch {
		case hasNSAID && hasNeuropathic:
			result.ClinicalSignificance = "Complex pain management regime indicating chronic pain requiring both inflammatory and neuropathic pain control"
			result.Implications = append(result.Implications, "Multi-modal pain management suggests significant chronic pain impact")
		case hasNSAID:
			result.ClinicalSignificance = "Inflammatory pain management suggesting activity-related discomfort"
		default:
			result.ClinicalSignificance = "Basic pain management approach"
		}
		result.Implications = append(result.Implications, "Pain levels should be monitored during functional activities")

	case CategoryGastric:
		result.Implications = append(result.Implications, "Consider timing of meals and position during ADLs")
		if maxDose(meds) >= 40 {
			result.ClinicalSignificance = "Significant gastric symptom management required"
			result.Implications = append(result.Implications, "Dietary modifications may be required to manage gastric symptoms")
		} else {
			result.ClinicalSignificance = "Routine gastric symptom management"
		}

	case CategoryCardiovascular:
		result.Implications = append(result.Implications, "Monitor exertion levels during activities")
		if len(meds) > 1 {
			result.ClinicalSignificance = "Complex cardiovascular management indicating multiple risk factors"
			result.Implications = append(result.Implications, "Multiple cardiovascular medications suggest need for activity pacing")
		} else {
			result.ClinicalSignificance = "Routine cardiovascular health management"
		}

	case CategoryMetabolic:
		result.ClinicalSignificance = "Ongoing metabolic condition management"
		result.Implications = append(result.Implications, "Energy levels may fluctuate during sustained activity")

	case CategoryUrologic:
		result.ClinicalSignificance = "Urinary symptom management"
		result.Implications = append(result.Implications, "Accessible toileting and scheduled breaks may be required")

	case CategorySleepMood:
		result.ClinicalSignificance = "Sleep and mood support indicated"
		result.Implications = append(result.Implications, "Morning routines and daytime alertness may be affected")
	}

	return result
}

func anyMedication(meds []domain.Medication, keywords []string) bool {
	for _, m := range meds {
		if containsAny(strings.ToLower(m.Name), keywords) {
			return true
		}
	}
	return false
}

func maxDose(meds []domain.Medication) float64 {
	var highest float64
	for _, m := range meds {
		match := doseValue.FindString(m.Dosage)
		if match == "" {
			continue
		}
		if v, err := strconv.ParseFloat(match, 64); err == nil && v > highest {
			highest = v
		}
	}
	return highest
}
