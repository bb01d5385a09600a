package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
)

type FunctionalDomain string

const (
	DomainMobility             FunctionalDomain = "mobility"
	DomainSelfCare             FunctionalDomain = "self_care"
	DomainHomeManagement       FunctionalDomain = "home_management"
	DomainCommunityIntegration FunctionalDomain = "community_integration"
)

type DomainStatus string

const (
	StatusIndependent        DomainStatus = "independent"
	StatusModified           DomainStatus = "modified"
	StatusRequiresAssistance DomainStatus = "requires_assistance"
	StatusDependent          DomainStatus = "dependent"
)

func FunctionalDomains() []FunctionalDomain {
	return []FunctionalDomain{DomainMobility, DomainSelfCare, DomainHomeManagement, DomainCommunityIntegration}
}

func (d FunctionalDomain) Label() string {
	return domainLabel(string(d))
}

func (s DomainStatus) Label() string {
	switch s {
	case StatusModified:
		return "Modified independent"
	case StatusRequiresAssistance:
		return "Requires assistance"
	default:
		return domainLabel(string(s))
	}
}

var domainActivities = map[string]FunctionalDomain{
	"bed_transfer":     DomainMobility,
	"toilet_transfer":  DomainMobility,
	"shower_transfer":  DomainMobility,
	"position_changes": DomainMobility,
	"shower":           DomainSelfCare,
	"grooming":         DomainSelfCare,
	"oral_care":        DomainSelfCare,
	"toileting":        DomainSelfCare,
	"upper_body":       DomainSelfCare,
	"lower_body":       DomainSelfCare,
	"feeding":          DomainSelfCare,
	"eating":           DomainSelfCare,
	"cleaning":         DomainHomeManagement,
	"laundry":          DomainHomeManagement,
	"meal_prep":        DomainHomeManagement,
	"home_maintenance": DomainHomeManagement,
	"transportation":   DomainCommunityIntegration,
	"shopping":         DomainCommunityIntegration,
	"money_management": DomainCommunityIntegration,
	"communication":    DomainCommunityIntegration,
}

// domainCategories maps record categories onto a domain when the activity
// name itself is not in the table
var domainCategories = map[string]FunctionalDomain{
	"transfers":             DomainMobility,
	"mobility":              DomainMobility,
	"bathing":               DomainSelfCare,
	"dressing":              DomainSelfCare,
	"feeding":               DomainSelfCare,
	"toileting":             DomainSelfCare,
	"grooming":              DomainSelfCare,
	"self_care":             DomainSelfCare,
	"household":             DomainHomeManagement,
	"home_management":       DomainHomeManagement,
	"meal_preparation":      DomainHomeManagement,
	"community":             DomainCommunityIntegration,
	"community_integration": DomainCommunityIntegration,
	"finances":              DomainCommunityIntegration,
}

// ActivityEntry is one activity with the category it was recorded under
type ActivityEntry struct {
	Category string
	Activity string
	Record   domain.ActivityRecord
	Level    domain.IndependenceLevel
}

// Activities flattens category -> activity maps in a deterministic order
func Activities(groups map[string]map[string]domain.ActivityRecord) []ActivityEntry {
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var entries []ActivityEntry
	for _, c := range categories {
		names := make([]string, 0, len(groups[c]))
		for name := range groups[c] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			record := groups[c][name]
			level, _ := domain.ParseIndependenceLevel(record.Independence)
			entries = append(entries, ActivityEntry{Category: c, Activity: name, Record: record, Level: level})
		}
	}
	return entries
}

// DomainOf assigns an activity to a functional domain; false when it fits none
func DomainOf(e ActivityEntry) (FunctionalDomain, bool) {
	if d, ok := domainActivities[domain.SnakeCase(e.Activity)]; ok {
		return d, true
	}
	d, ok := domainCategories[domain.SnakeCase(e.Category)]
	return d, ok
}

type DomainAnalysis struct {
	Domain          FunctionalDomain
	Activities      []ActivityEntry
	AverageScore    float64
	Status          DomainStatus
	Limitations     []string
	Compensations   []string
	ClinicalContext string
}

type ADLAnalysis struct {
	Domains []DomainAnalysis
}

func (a ADLAnalysis) Empty() bool {
	return len(a.Domains) == 0
}

// Domain returns the analysis of one domain if any of its activities were scored
func (a ADLAnalysis) Domain(d FunctionalDomain) (DomainAnalysis, bool) {
	for _, da := range a.Domains {
		if da.Domain == d {
			return da, true
		}
	}
	return DomainAnalysis{}, false
}

// AnalyzeADL averages the 0-5 independence scores of every domain.
// Not applicable and unassessed activities are left out of the average; a
// domain with nothing scored is omitted.
func AnalyzeADL(entries []ActivityEntry) ADLAnalysis {
	grouped := make(map[FunctionalDomain][]ActivityEntry)
	for _, e := range entries {
		if _, ok := e.Level.Score(); !ok {
			continue
		}
		if d, ok := DomainOf(e); ok {
			grouped[d] = append(grouped[d], e)
		}
	}

	var analysis ADLAnalysis
	for _, d := range FunctionalDomains() {
		if group, ok := grouped[d]; ok {
			analysis.Domains = append(analysis.Domains, analyzeDomain(d, group))
		}
	}

	if mobility, ok := analysis.Domain(DomainMobility); ok && len(mobility.Limitations) > 0 {
		for i := range analysis.Domains {
			if analysis.Domains[i].Domain != DomainMobility && len(analysis.Domains[i].Limitations) > 0 {
				analysis.Domains[i].ClinicalContext += " Mobility limitations impact performance of these activities."
			}
		}
	}
	return analysis
}

func analyzeDomain(d FunctionalDomain, entries []ActivityEntry) DomainAnalysis {
	var total, independent int
	var limitations, compensations []string

	for _, e := range entries {
		score, _ := e.Level.Score()
		total += score
		if e.Level.IsIndependent() {
			independent++
		}

		name := domain.Humanize(e.Activity)
		switch {
		case score >= 4:
		case score == 3:
			limitations = append(limitations, fmt.Sprintf("%s requires supervision for safety", name))
		case score >= 1:
			limitations = append(limitations, fmt.Sprintf("%s requires hands-on assistance (%s)", name, strings.ToLower(e.Level.Label())))
		default:
			limitations = append(limitations, fmt.Sprintf("%s is fully dependent on others", name))
		}

		notes := strings.ToLower(e.Record.Notes)
		if containsAny(notes, []string{"uses", "requires", "needs"}) {
			compensations = append(compensations, strings.TrimSpace(e.Record.Notes))
		}
		for _, item := range e.Record.Equipment {
			compensations = append(compensations, fmt.Sprintf("Uses %s for %s", item, strings.ToLower(name)))
		}
	}

	avg := float64(total) / float64(len(entries))
	ratio := float64(independent) / float64(len(entries))

	var context string
	switch {
	case ratio >= 0.8:
		context = fmt.Sprintf("Maintains independence in most %s activities.", strings.ToLower(d.Label()))
	case ratio >= 0.5:
		context = fmt.Sprintf("Partial independence in %s activities with specific limitations.", strings.ToLower(d.Label()))
	default:
		context = fmt.Sprintf("Significant dependence in %s activities.", strings.ToLower(d.Label()))
	}

	return DomainAnalysis{
		Domain:          d,
		Activities:      entries,
		AverageScore:    avg,
		Status:          statusFor(avg),
		Limitations:     limitations,
		Compensations:   dedupe(compensations),
		ClinicalContext: context,
	}
}

func statusFor(avg float64) DomainStatus {
	switch {
	case avg >= 4:
		return StatusIndependent
	case avg >= 3:
		return StatusModified
	case avg >= 2:
		return StatusRequiresAssistance
	default:
		return StatusDependent
	}
}
