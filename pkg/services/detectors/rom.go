package detectors

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

// ROMSettings contains the thresholds used by range of motion pattern detection
type ROMSettings struct {
	// BilateralRatio flags both sides below this share of normal (default: 0.75)
	BilateralRatio float64
	// AsymmetryRatio flags a side difference above this share of normal (default: 0.2)
	AsymmetryRatio float64
	// PainThreshold flags movements with pain at or above this 0-10 score (default: 5)
	PainThreshold float64
	// SevereRatio flags any side below this share of normal (default: 0.5)
	SevereRatio float64
	// MaxNormalRatio is the plausibility ceiling for a measurement (default: 1.1)
	MaxNormalRatio float64
}

func DefaultROMSettings() ROMSettings {
	return ROMSettings{
		BilateralRatio: 0.75,
		AsymmetryRatio: 0.2,
		PainThreshold:  5,
		SevereRatio:    0.5,
		MaxNormalRatio: 1.1,
	}
}

// ROMPatternSet groups findings by rule; a movement may appear in several groups
type ROMPatternSet struct {
	Bilateral []domain.ROMPattern
	Asymmetry []domain.ROMPattern
	Painful   []domain.ROMPattern
	Severe    []domain.ROMPattern
}

func (s ROMPatternSet) All() []domain.ROMPattern {
	all := make([]domain.ROMPattern, 0, s.Count())
	all = append(all, s.Bilateral...)
	all = append(all, s.Asymmetry...)
	all = append(all, s.Painful...)
	all = append(all, s.Severe...)
	return all
}

func (s ROMPatternSet) Count() int {
	return len(s.Bilateral) + len(s.Asymmetry) + len(s.Painful) + len(s.Severe)
}

var canonicalJoints = []string{"cervical", "shoulder", "elbow", "wrist", "hip", "knee", "ankle", "spine"}

// JointOrder returns the joints of rom in a deterministic order:
// known joints first in anatomical order, then the rest alphabetically.
func JointOrder(rom map[string][]domain.ROMMeasurement) []string {
	rank := func(joint string) int {
		for i, j := range canonicalJoints {
			if strings.EqualFold(joint, j) {
				return i
			}
		}
		return len(canonicalJoints)
	}

	joints := make([]string, 0, len(rom))
	for joint := range rom {
		joints = append(joints, joint)
	}
	sort.SliceStable(joints, func(i, j int) bool {
		ri, rj := rank(joints[i]), rank(joints[j])
		if ri != rj {
			return ri < rj
		}
		return joints[i] < joints[j]
	})
	return joints
}

// DetectROMPatterns runs the four independent rules on every joint movement
func DetectROMPatterns(rom map[string][]domain.ROMMeasurement) ROMPatternSet {
	return DetectROMPatternsWithSettings(rom, DefaultROMSettings())
}

func DetectROMPatternsWithSettings(rom map[string][]domain.ROMMeasurement, settings ROMSettings) ROMPatternSet {
	var set ROMPatternSet
	for _, joint := range JointOrder(rom) {
		for _, m := range rom[joint] {
			if p, ok := detectBilateral(joint, m, settings); ok {
				set.Bilateral = append(set.Bilateral, p)
			}
			if p, ok := detectAsymmetry(joint, m, settings); ok {
				set.Asymmetry = append(set.Asymmetry, p)
			}
			if p, ok := detectPain(joint, m, settings); ok {
				set.Painful = append(set.Painful, p)
			}
			if p, ok := detectSevere(joint, m, settings); ok {
				set.Severe = append(set.Severe, p)
			}
		}
	}
	return set
}

func activeValues(m domain.ROMMeasurement) (right, left, normal *float64) {
	if m.Active == nil {
		return nil, nil, nil
	}
	return m.Active.Right, m.Active.Left, m.Active.Normal
}

func knownNormal(normal *float64) bool {
	return normal != nil && *normal > 0
}

func detectBilateral(joint string, m domain.ROMMeasurement, s ROMSettings) (domain.ROMPattern, bool) {
	right, left, normal := activeValues(m)
	if right == nil || left == nil || !knownNormal(normal) {
		return domain.ROMPattern{}, false
	}
	limit := *normal * s.BilateralRatio
	if *right >= limit || *left >= limit {
		return domain.ROMPattern{}, false
	}
	return domain.ROMPattern{
		Joint:    joint,
		Movement: m.Movement,
		Category: domain.PatternBilateralRestriction,
		Description: fmt.Sprintf("Bilateral restriction in %s %s (right %s%%, left %s%% of normal)",
			joint, m.Movement, formatNumber(percentOf(*right, *normal)), formatNumber(percentOf(*left, *normal))),
		Side:      domain.SideBilateral,
		Magnitude: *normal - math.Max(*right, *left),
	}, true
}

func detectAsymmetry(joint string, m domain.ROMMeasurement, s ROMSettings) (domain.ROMPattern, bool) {
	right, left, normal := activeValues(m)
	if right == nil || left == nil || !knownNormal(normal) {
		return domain.ROMPattern{}, false
	}
	diff := math.Abs(*right - *left)
	if diff <= *normal*s.AsymmetryRatio {
		return domain.ROMPattern{}, false
	}
	side := domain.SideRight
	if *left > *right {
		side = domain.SideLeft
	}
	return domain.ROMPattern{
		Joint:    joint,
		Movement: m.Movement,
		Category: domain.PatternUnilateralAsymmetry,
		Description: fmt.Sprintf("Asymmetry in %s %s: %s side greater by %s degrees",
			joint, m.Movement, side, formatNumber(diff)),
		Side:      side,
		Magnitude: diff,
	}, true
}

func detectPain(joint string, m domain.ROMMeasurement, s ROMSettings) (domain.ROMPattern, bool) {
	if m.PainScale == nil {
		return domain.ROMPattern{}, false
	}
	right, left := m.PainScale.Right, m.PainScale.Left

	var side domain.Side
	var intensity float64
	switch {
	case right != nil && left != nil && *right == *left:
		side, intensity = domain.SideBilateral, *right
	case right != nil && (left == nil || *right > *left):
		side, intensity = domain.SideRight, *right
	case left != nil:
		side, intensity = domain.SideLeft, *left
	default:
		return domain.ROMPattern{}, false
	}
	if intensity < s.PainThreshold {
		return domain.ROMPattern{}, false
	}
	return domain.ROMPattern{
		Joint:       joint,
		Movement:    m.Movement,
		Category:    domain.PatternPainfulMovement,
		Description: fmt.Sprintf("Pain with %s %s (%s/10, %s)", joint, m.Movement, formatNumber(intensity), side),
		Side:        side,
		Intensity:   intensity,
	}, true
}

func detectSevere(joint string, m domain.ROMMeasurement, s ROMSettings) (domain.ROMPattern, bool) {
	right, left, normal := activeValues(m)
	if !knownNormal(normal) {
		return domain.ROMPattern{}, false
	}
	limit := *normal * s.SevereRatio
	rightSevere := right != nil && *right < limit
	leftSevere := left != nil && *left < limit

	var side domain.Side
	var worst float64
	switch {
	case rightSevere && leftSevere:
		side, worst = domain.SideBilateral, math.Min(*right, *left)
	case rightSevere:
		side, worst = domain.SideRight, *right
	case leftSevere:
		side, worst = domain.SideLeft, *left
	default:
		return domain.ROMPattern{}, false
	}
	return domain.ROMPattern{
		Joint:    joint,
		Movement: m.Movement,
		Category: domain.PatternSevereRestriction,
		Description: fmt.Sprintf("Severe restriction in %s %s (%s, %s%% of normal)",
			joint, m.Movement, side, formatNumber(percentOf(worst, *normal))),
		Side:      side,
		Magnitude: *normal - worst,
	}, true
}

// ExceedsNormal lists the measured sides that go beyond the plausible ceiling
func ExceedsNormal(m domain.ROMMeasurement, settings ROMSettings) []domain.Side {
	right, left, normal := activeValues(m)
	if !knownNormal(normal) {
		return nil
	}
	ceiling := *normal * settings.MaxNormalRatio
	var sides []domain.Side
	if right != nil && *right > ceiling {
		sides = append(sides, domain.SideRight)
	}
	if left != nil && *left > ceiling {
		sides = append(sides, domain.SideLeft)
	}
	return sides
}

// RestrictionScore is the mean deficit, 0-100, over every measured active
// side with a known normal. It reports false when nothing was measurable.
func RestrictionScore(rom map[string][]domain.ROMMeasurement) (float64, bool) {
	var total float64
	var count int
	for _, joint := range JointOrder(rom) {
		for _, m := range rom[joint] {
			right, left, normal := activeValues(m)
			if !knownNormal(normal) {
				continue
			}
			for _, v := range []*float64{right, left} {
				if v == nil {
					continue
				}
				deficit := (*normal - *v) / *normal * 100
				total += math.Max(0, math.Min(100, deficit))
				count++
			}
		}
	}
	if count == 0 {
		return 0, false
	}
	return math.Round(total/float64(count)*10) / 10, true
}

// OverallImpact summarises a pattern set in a few sentences
func OverallImpact(set ROMPatternSet) []string {
	var statements []string
	if n := len(set.Bilateral); n > 0 {
		statements = append(statements,
			fmt.Sprintf("Bilateral restriction in %d %s suggests a generalised limitation pattern", n, plural(n, "movement")))
	}
	if n := len(set.Asymmetry); n > 0 {
		statements = append(statements,
			fmt.Sprintf("Asymmetry in %d %s may require compensatory movement strategies", n, plural(n, "movement")))
	}
	if n := len(set.Painful); n > 0 {
		statements = append(statements,
			fmt.Sprintf("Pain-limited range in %d %s reduces activity tolerance", n, plural(n, "movement")))
	}
	if n := len(set.Severe); n > 0 {
		statements = append(statements,
			fmt.Sprintf("Severe restriction in %d %s significantly limits functional capacity", n, plural(n, "movement")))
	}
	return statements
}

func percentOf(value, normal float64) float64 {
	return math.Round(value / normal * 100)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
