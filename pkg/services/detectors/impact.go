package detectors

import (
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

type Region string

const (
	RegionUpperExtremity Region = "upper_extremity"
	RegionLowerExtremity Region = "lower_extremity"
	RegionSpine          Region = "spine"
)

// FunctionalImpact is a fixed statement triggered by a measurement below threshold
type FunctionalImpact struct {
	Region    Region
	Joint     string
	Movement  string
	Statement string
}

type impactRule struct {
	region    Region
	joint     string
	movement  string
	threshold float64
	statement string
}

var impactRules = []impactRule{
	{RegionUpperExtremity, "shoulder", "flexion", 120, "Difficulty with overhead reaching"},
	{RegionUpperExtremity, "shoulder", "abduction", 120, "Limited shoulder elevation impacts reaching"},
	{RegionUpperExtremity, "elbow", "flexion", 100, "Limited elbow mobility affects self-care tasks"},
	{RegionUpperExtremity, "wrist", "extension", 30, "Limited wrist extension impacts grip strength and manipulation"},
	{RegionLowerExtremity, "hip", "flexion", 90, "Difficulty with sit-to-stand transitions"},
	{RegionLowerExtremity, "knee", "flexion", 90, "Limited knee flexion affects stair navigation"},
	{RegionLowerExtremity, "ankle", "dorsiflexion", 10, "Limited ankle dorsiflexion affects gait pattern"},
	{RegionSpine, "cervical", "rotation", 45, "Limited cervical rotation impacts driving safety"},
	{RegionSpine, "cervical", "extension", 30, "Limited cervical extension affects overhead visual scanning"},
	{RegionSpine, "spine", "flexion", 40, "Limited spinal flexion affects lower body dressing"},
	{RegionSpine, "spine", "rotation", 30, "Limited trunk rotation affects bed mobility"},
}

var jointAliases = map[string]string{
	"neck":          "cervical",
	"cervical":      "cervical",
	"lumbar":        "spine",
	"thoracolumbar": "spine",
	"trunk":         "spine",
	"spine":         "spine",
}

func normalizeJoint(joint string) string {
	key := strings.ToLower(strings.TrimSpace(joint))
	if alias, ok := jointAliases[key]; ok {
		return alias
	}
	return key
}

func normalizeMovement(movement string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(movement)))
}

// FunctionalImpacts maps measurements onto functional statements.
// Either measured side below the rule threshold triggers the rule; each
// statement is reported once, in rule table order.
func FunctionalImpacts(rom map[string][]domain.ROMMeasurement) []FunctionalImpact {
	var impacts []FunctionalImpact
	for _, rule := range impactRules {
		if hit, joint, movement := matchImpactRule(rom, rule); hit {
			impacts = append(impacts, FunctionalImpact{
				Region:    rule.region,
				Joint:     joint,
				Movement:  movement,
				Statement: rule.statement,
			})
		}
	}
	return impacts
}

func matchImpactRule(rom map[string][]domain.ROMMeasurement, rule impactRule) (bool, string, string) {
	for _, joint := range JointOrder(rom) {
		if normalizeJoint(joint) != rule.joint {
			continue
		}
		for _, m := range rom[joint] {
			if normalizeMovement(m.Movement) != rule.movement {
				continue
			}
			right, left, _ := activeValues(m)
			if (right != nil && *right < rule.threshold) || (left != nil && *left < rule.threshold) {
				return true, joint, m.Movement
			}
		}
	}
	return false, "", ""
}

// ImpactsByRegion groups impacts preserving their order within each region
func ImpactsByRegion(impacts []FunctionalImpact) map[Region][]string {
	grouped := make(map[Region][]string)
	for _, impact := range impacts {
		grouped[impact.Region] = append(grouped[impact.Region], impact.Statement)
	}
	return grouped
}

// Regions returns the body regions in report order
func Regions() []Region {
	return []Region{RegionUpperExtremity, RegionLowerExtremity, RegionSpine}
}

func (r Region) Label() string {
	switch r {
	case RegionUpperExtremity:
		return "Upper extremity"
	case RegionLowerExtremity:
		return "Lower extremity"
	default:
		return "Spine"
	}
}
