package esco

import (
	"fmt"
	"sort"
	"strings"

	"careerscope/internal/models"
)

// MatchPolicy carries the scoring knobs for job matching and opportunity
// prediction. The defaults reproduce long-standing product behavior; they are
// policy choices, not domain laws, so deployments may tune them.
type MatchPolicy struct {
	EssentialWeight float64 // weight of essential-skill coverage in the match score
	OptionalWeight  float64
	MaxSkillGap     int // max missing essential skills for an opportunity
	LowEffortMax    int // missing count ceiling for "low" effort
	MediumEffortMax int // missing count ceiling for "medium" effort

	// Skill-gap aggregation: recommend a category when its demand across top
	// opportunities exceeds DemandCutoff and the user holds fewer than
	// CurrentCutoff skills in it.
	DemandCutoff  int
	CurrentCutoff int
}

// DefaultMatchPolicy returns the standard scoring parameters.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{
		EssentialWeight: 0.7,
		OptionalWeight:  0.3,
		MaxSkillGap:     5,
		LowEffortMax:    2,
		MediumEffortMax: 4,
		DemandCutoff:    2,
		CurrentCutoff:   3,
	}
}

// Career answers job-match and opportunity queries over the relationship graph.
// Pure in-memory computation: no I/O, no randomness, safe for concurrent use.
type Career struct {
	store  *Store
	graph  *Graph
	policy MatchPolicy
}

// NewCareer wires the matcher to its taxonomy store and relationship graph.
func NewCareer(store *Store, graph *Graph, policy MatchPolicy) *Career {
	return &Career{store: store, graph: graph, policy: policy}
}

// FindJobMatches scores every occupation in the graph against the candidate's
// matched skill set. An occupation is emitted only when the candidate holds at
// least one of its essential skills; optional overlap alone never qualifies.
// Results are sorted by match score descending. No cap is applied here;
// callers truncate.
func (c *Career) FindJobMatches(skillURIs map[string]bool) []models.JobMatch {
	var matches []models.JobMatch

	for _, occURI := range c.graph.Occupations() {
		essential := c.graph.EssentialSkills(occURI)
		optional := c.graph.OptionalSkills(occURI)

		essentialMatched := intersect(skillURIs, essential)
		if len(essentialMatched) == 0 {
			continue
		}
		optionalMatched := intersect(skillURIs, optional)

		coverage := models.SkillCoverage{
			Essential: fraction(len(essentialMatched), len(essential)),
			Optional:  fraction(len(optionalMatched), len(optional)),
		}
		score := c.policy.EssentialWeight*coverage.Essential + c.policy.OptionalWeight*coverage.Optional

		matches = append(matches, models.JobMatch{
			URI:              occURI,
			Name:             c.occupationName(occURI),
			ISCOGroup:        c.occupationISCO(occURI),
			Description:      c.occupationDescription(occURI),
			MatchScore:       score,
			MatchedSkills:    c.skillNames(append(essentialMatched, optionalMatched...)),
			MissingEssential: c.skillNames(subtract(essential, skillURIs)),
			MissingOptional:  c.skillNames(subtract(optional, skillURIs)),
			Coverage:         coverage,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches
}

// PredictOpportunities surfaces occupations where the candidate already has a
// foothold (at least one essential skill) and the remaining gap is closeable
// (at most MaxSkillGap missing essential skills). Ranking is lexicographic:
// fewer skills to gain wins outright; coverage only breaks ties.
func (c *Career) PredictOpportunities(skillURIs map[string]bool) []models.CareerOpportunity {
	var opportunities []models.CareerOpportunity

	for _, occURI := range c.graph.Occupations() {
		essential := c.graph.EssentialSkills(occURI)

		matched := intersect(skillURIs, essential)
		missing := subtract(essential, skillURIs)

		if len(matched) < 1 || len(missing) > c.policy.MaxSkillGap {
			continue
		}

		effort, estimate := c.effortBand(len(missing))
		coverage := fraction(len(matched), len(essential))

		opportunities = append(opportunities, models.CareerOpportunity{
			Job: models.JobMatch{
				URI:              occURI,
				Name:             c.occupationName(occURI),
				ISCOGroup:        c.occupationISCO(occURI),
				Description:      c.occupationDescription(occURI),
				MatchScore:       coverage,
				MatchedSkills:    c.skillNames(matched),
				MissingEssential: c.skillNames(missing),
				MissingOptional:  []string{},
				Coverage:         models.SkillCoverage{Essential: coverage},
			},
			SkillsToGain:  c.skillNames(missing),
			EffortLevel:   effort,
			EstimatedTime: estimate,
			CategoryFocus: c.categoryFocus(missing),
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		if len(opportunities[i].SkillsToGain) != len(opportunities[j].SkillsToGain) {
			return len(opportunities[i].SkillsToGain) < len(opportunities[j].SkillsToGain)
		}
		return opportunities[i].Job.MatchScore > opportunities[j].Job.MatchScore
	})
	return opportunities
}

// AggregateSkillGaps counts which skills and categories recur across the gaps
// of the given opportunities (callers pass the top slice, typically 10), and
// flags categories with high demand but weak current footing.
func (c *Career) AggregateSkillGaps(opportunities []models.CareerOpportunity, currentSkillURIs map[string]bool) models.SkillGapSummary {
	current := make(map[string]int)
	for uri := range currentSkillURIs {
		for _, cat := range c.store.SkillCategories(uri) {
			current[cat]++
		}
	}

	skillDemand := make(map[string]int)
	categoryDemand := make(map[string]int)
	for _, opp := range opportunities {
		for _, name := range opp.SkillsToGain {
			skillDemand[name]++
		}
		for _, cat := range opp.CategoryFocus {
			categoryDemand[cat]++
		}
	}

	summary := models.SkillGapSummary{
		CurrentCategories:       current,
		MostDemandedSkills:      topDemand(skillDemand, 10),
		MostDemandedCategories:  topDemand(categoryDemand, 0),
		CategoryRecommendations: []string{},
	}

	for _, cat := range summary.MostDemandedCategories {
		if cat.Count > c.policy.DemandCutoff && current[cat.Name] < c.policy.CurrentCutoff {
			summary.CategoryRecommendations = append(summary.CategoryRecommendations,
				fmt.Sprintf("Focus on %s skills - high demand with %d opportunities", cat.Name, cat.Count))
		}
	}

	return summary
}

// Recommendations derives actionable next steps from the candidate's skill
// profile and predicted opportunities: diversify when skills cluster in few
// categories, name a quick win from the nearest low-effort move, and flag a
// longer-term target role when one needs substantial skill building.
func (c *Career) Recommendations(skillURIs map[string]bool, opportunities []models.CareerOpportunity) []string {
	recommendations := []string{}

	categories := make(map[string]bool)
	for uri := range skillURIs {
		for _, cat := range c.store.SkillCategories(uri) {
			categories[cat] = true
		}
	}
	if len(categories) < 3 {
		recommendations = append(recommendations,
			"Consider diversifying skills across more categories (digital, green, transversal)")
	}

	for i, opp := range opportunities {
		if i >= 5 {
			break
		}
		if opp.EffortLevel != "low" {
			continue
		}
		gain := opp.SkillsToGain
		if len(gain) > 2 {
			gain = gain[:2]
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Quick career boost: Learn %s (3-6 months)", strings.Join(gain, ", ")))
		break
	}

	for i, opp := range opportunities {
		if i >= 3 {
			break
		}
		if len(opp.SkillsToGain) < 3 {
			continue
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Long-term goal: Aim for %s role with strategic skill development", opp.Job.Name))
		break
	}

	return recommendations
}

// effortBand maps a missing-essential-skill count to an effort level and a
// time estimate. With MaxSkillGap at its default of 5, "high" only occurs at
// exactly 5 missing skills.
func (c *Career) effortBand(missing int) (string, string) {
	switch {
	case missing <= c.policy.LowEffortMax:
		return "low", "3-6 months"
	case missing <= c.policy.MediumEffortMax:
		return "medium", "6-12 months"
	default:
		return "high", "1-2 years"
	}
}

// categoryFocus is the deduplicated union of category tags across the missing
// skills, in graph order so output stays deterministic.
func (c *Career) categoryFocus(missingSkillURIs []string) []string {
	seen := make(map[string]bool)
	focus := []string{}
	for _, uri := range missingSkillURIs {
		for _, cat := range c.store.SkillCategories(uri) {
			if !seen[cat] {
				seen[cat] = true
				focus = append(focus, cat)
			}
		}
	}
	return focus
}

// skillNames resolves URIs to display names, silently skipping URIs the store
// does not know. Stale relationship rows must not fail a request.
func (c *Career) skillNames(uris []string) []string {
	names := make([]string, 0, len(uris))
	for _, uri := range uris {
		if name, ok := c.store.SkillName(uri); ok {
			names = append(names, name)
		}
	}
	return names
}

func (c *Career) occupationName(uri string) string {
	if occ, err := c.store.Occupation(uri); err == nil {
		return occ.Name
	}
	return "Unknown"
}

func (c *Career) occupationISCO(uri string) string {
	if occ, err := c.store.Occupation(uri); err == nil {
		return occ.ISCOGroup
	}
	return ""
}

func (c *Career) occupationDescription(uri string) string {
	if occ, err := c.store.Occupation(uri); err == nil {
		return occ.Description
	}
	return ""
}

// intersect returns the members of ordered present in set, preserving order.
func intersect(set map[string]bool, ordered []string) []string {
	var out []string
	for _, v := range ordered {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}

// subtract returns the members of ordered absent from set, preserving order.
func subtract(ordered []string, set map[string]bool) []string {
	var out []string
	for _, v := range ordered {
		if !set[v] {
			out = append(out, v)
		}
	}
	return out
}

func fraction(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// topDemand sorts demand counts descending, name ascending on ties, keeping n
// entries (n <= 0 keeps all).
func topDemand(demand map[string]int, n int) []models.DemandCount {
	out := make([]models.DemandCount, 0, len(demand))
	for name, count := range demand {
		out = append(out, models.DemandCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
