package esco

import (
	"fmt"
	"testing"

	"careerscope/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func careerFixture(t *testing.T) *Career {
	t.Helper()
	dir := t.TempDir()
	writeTaxonomy(t, dir)

	store, err := LoadStore(dir)
	require.NoError(t, err)
	graph, err := LoadGraph(dir)
	require.NoError(t, err)

	return NewCareer(store, graph, DefaultMatchPolicy())
}

func TestFindJobMatchesRequiresEssentialOverlap(t *testing.T) {
	career := careerFixture(t)

	// Only an optional skill of the analyst role: no match at all.
	matches := career.FindJobMatches(map[string]bool{skillViz: true})
	assert.Empty(t, matches)
}

func TestFindJobMatchesScoring(t *testing.T) {
	career := careerFixture(t)

	matches := career.FindJobMatches(map[string]bool{skillPython: true, skillSQL: true})
	require.Len(t, matches, 2)

	// Analyst: 2/2 essential, 0/1 optional -> 0.7.
	analyst := matches[0]
	assert.Equal(t, occAnalyst, analyst.URI)
	assert.Equal(t, "data analyst", analyst.Name)
	assert.Equal(t, "2511", analyst.ISCOGroup)
	assert.InDelta(t, 0.7, analyst.MatchScore, 1e-9)
	assert.Equal(t, []string{"Python programming", "SQL"}, analyst.MatchedSkills)
	assert.Empty(t, analyst.MissingEssential)
	assert.Equal(t, []string{"data visualization"}, analyst.MissingOptional)
	assert.InDelta(t, 1.0, analyst.Coverage.Essential, 1e-9)

	// Scientist: 2/3 essential, 0/1 optional -> 0.7 * 2/3.
	scientist := matches[1]
	assert.Equal(t, occScientist, scientist.URI)
	assert.InDelta(t, 0.7*2.0/3.0, scientist.MatchScore, 1e-9)
	assert.Equal(t, []string{"statistics"}, scientist.MissingEssential)
}

func TestFindJobMatchesUnknownSkillURIsIgnored(t *testing.T) {
	career := careerFixture(t)

	matches := career.FindJobMatches(map[string]bool{
		skillPython:               true,
		"http://example.com/nope": true,
	})
	require.NotEmpty(t, matches)
	for _, m := range matches {
		for _, name := range m.MatchedSkills {
			assert.NotEqual(t, "", name)
		}
	}
}

func TestPredictOpportunitiesBounds(t *testing.T) {
	career := careerFixture(t)

	// Python alone: analyst misses 1 essential, scientist misses 2, manager
	// has no overlap and is excluded.
	opportunities := career.PredictOpportunities(map[string]bool{skillPython: true})
	require.Len(t, opportunities, 2)

	analyst := opportunities[0]
	assert.Equal(t, occAnalyst, analyst.Job.URI)
	assert.Equal(t, []string{"SQL"}, analyst.SkillsToGain)
	assert.Equal(t, "low", analyst.EffortLevel)
	assert.Equal(t, "3-6 months", analyst.EstimatedTime)
	assert.Equal(t, []string{"digital"}, analyst.CategoryFocus)

	scientist := opportunities[1]
	assert.Equal(t, occScientist, scientist.Job.URI)
	assert.Equal(t, []string{"statistics", "SQL"}, scientist.SkillsToGain)
	assert.Equal(t, "low", scientist.EffortLevel)
}

func TestPredictOpportunitiesSkipsWideGaps(t *testing.T) {
	store := loadTestStore(t)

	// An occupation demanding 7 essential skills; the candidate has one, so 6
	// are missing, above the default gap of 5.
	edges := []models.RelationEdge{}
	for i := 0; i < 7; i++ {
		uri := skillPython
		if i > 0 {
			uri = fmt.Sprintf("http://example.com/skill/%d", i)
		}
		edges = append(edges, edge("occ/wide", uri, models.RelationEssential))
	}
	graph, err := NewGraph(edges)
	require.NoError(t, err)

	career := NewCareer(store, graph, DefaultMatchPolicy())
	assert.Empty(t, career.PredictOpportunities(map[string]bool{skillPython: true}))
}

func TestEffortBands(t *testing.T) {
	career := careerFixture(t)

	cases := []struct {
		missing  int
		effort   string
		estimate string
	}{
		{0, "low", "3-6 months"},
		{2, "low", "3-6 months"},
		{3, "medium", "6-12 months"},
		{4, "medium", "6-12 months"},
		{5, "high", "1-2 years"},
	}
	for _, tc := range cases {
		effort, estimate := career.effortBand(tc.missing)
		assert.Equal(t, tc.effort, effort, "missing=%d", tc.missing)
		assert.Equal(t, tc.estimate, estimate, "missing=%d", tc.missing)
	}
}

func TestOpportunityRankingPrefersSmallerGap(t *testing.T) {
	store := loadTestStore(t)

	// occ/narrow: 10 essential skills, candidate has 9 -> gap 1, coverage 0.9.
	// occ/shallow: 5 essential skills, candidate has 1 -> gap 4, coverage 0.2.
	// The smaller gap must win even though its coverage could be lower in
	// other configurations; gap count is compared before coverage.
	var edges []models.RelationEdge
	held := map[string]bool{}
	for i := 0; i < 10; i++ {
		uri := fmt.Sprintf("http://example.com/skill/n%d", i)
		store.skills[uri] = &models.Skill{URI: uri, Name: fmt.Sprintf("narrow skill %d", i)}
		edges = append(edges, edge("occ/narrow", uri, models.RelationEssential))
		if i < 9 {
			held[uri] = true
		}
	}
	for i := 0; i < 5; i++ {
		uri := fmt.Sprintf("http://example.com/skill/s%d", i)
		store.skills[uri] = &models.Skill{URI: uri, Name: fmt.Sprintf("shallow skill %d", i)}
		edges = append(edges, edge("occ/shallow", uri, models.RelationEssential))
		if i == 0 {
			held[uri] = true
		}
	}
	graph, err := NewGraph(edges)
	require.NoError(t, err)

	career := NewCareer(store, graph, DefaultMatchPolicy())
	opportunities := career.PredictOpportunities(held)

	require.Len(t, opportunities, 2)
	assert.Equal(t, "occ/narrow", opportunities[0].Job.URI)
	assert.Equal(t, "occ/shallow", opportunities[1].Job.URI)
}

func TestAggregateSkillGaps(t *testing.T) {
	career := careerFixture(t)

	held := map[string]bool{skillPython: true}
	opportunities := career.PredictOpportunities(held)
	summary := career.AggregateSkillGaps(opportunities, held)

	assert.Equal(t, map[string]int{"digital": 1}, summary.CurrentCategories)

	// SQL is missing for both the analyst and the scientist.
	require.NotEmpty(t, summary.MostDemandedSkills)
	assert.Equal(t, models.DemandCount{Name: "SQL", Count: 2}, summary.MostDemandedSkills[0])
}

func TestAggregateSkillGapsRecommendations(t *testing.T) {
	career := careerFixture(t)

	// Demand for "digital" across three synthetic opportunities exceeds the
	// cutoff while the candidate holds no digital skills.
	opportunities := []models.CareerOpportunity{
		{SkillsToGain: []string{"SQL"}, CategoryFocus: []string{"digital"}},
		{SkillsToGain: []string{"SQL"}, CategoryFocus: []string{"digital"}},
		{SkillsToGain: []string{"data visualization"}, CategoryFocus: []string{"digital"}},
	}
	summary := career.AggregateSkillGaps(opportunities, map[string]bool{})

	require.Len(t, summary.CategoryRecommendations, 1)
	assert.Equal(t, "Focus on digital skills - high demand with 3 opportunities", summary.CategoryRecommendations[0])
}

func TestAggregateSkillGapsEmptyOpportunities(t *testing.T) {
	career := careerFixture(t)

	summary := career.AggregateSkillGaps(nil, map[string]bool{skillComm: true})
	assert.Empty(t, summary.MostDemandedSkills)
	assert.Empty(t, summary.CategoryRecommendations)
	assert.Equal(t, 1, summary.CurrentCategories["transversal"])
}

func TestRecommendationsFromFixture(t *testing.T) {
	career := careerFixture(t)

	held := map[string]bool{skillPython: true}
	opportunities := career.PredictOpportunities(held)
	recommendations := career.Recommendations(held, opportunities)

	// One skill category and a low-effort path to the analyst role: the
	// diversity nudge plus a quick win, no long-term goal.
	assert.Equal(t, []string{
		"Consider diversifying skills across more categories (digital, green, transversal)",
		"Quick career boost: Learn SQL (3-6 months)",
	}, recommendations)
}

func TestRecommendationsQuickWinNamesTwoSkills(t *testing.T) {
	career := careerFixture(t)

	opportunities := []models.CareerOpportunity{
		{
			Job:          models.JobMatch{Name: "data engineer"},
			SkillsToGain: []string{"SQL", "statistics", "data visualization"},
			EffortLevel:  "low",
		},
	}
	recommendations := career.Recommendations(map[string]bool{}, opportunities)

	assert.Contains(t, recommendations, "Quick career boost: Learn SQL, statistics (3-6 months)")
	// Three skills to gain also makes it a long-term target.
	assert.Contains(t, recommendations, "Long-term goal: Aim for data engineer role with strategic skill development")
}

func TestRecommendationsLongTermOnlyConsidersTopThree(t *testing.T) {
	career := careerFixture(t)

	wide := models.CareerOpportunity{
		Job:          models.JobMatch{Name: "project manager"},
		SkillsToGain: []string{"communication", "SQL", "statistics"},
		EffortLevel:  "medium",
	}
	narrow := models.CareerOpportunity{
		Job:          models.JobMatch{Name: "data analyst"},
		SkillsToGain: []string{"SQL"},
		EffortLevel:  "medium",
	}

	recommendations := career.Recommendations(map[string]bool{}, []models.CareerOpportunity{narrow, narrow, narrow, wide})
	for _, rec := range recommendations {
		assert.NotContains(t, rec, "Long-term goal")
	}

	recommendations = career.Recommendations(map[string]bool{}, []models.CareerOpportunity{narrow, wide, narrow})
	assert.Contains(t, recommendations, "Long-term goal: Aim for project manager role with strategic skill development")
}

func TestRecommendationsEmptyOpportunities(t *testing.T) {
	career := careerFixture(t)

	recommendations := career.Recommendations(map[string]bool{}, nil)
	assert.Equal(t, []string{
		"Consider diversifying skills across more categories (digital, green, transversal)",
	}, recommendations)
}
