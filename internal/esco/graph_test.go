package esco

import (
	"testing"

	"careerscope/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edge(occ, skill string, kind models.RelationKind) models.RelationEdge {
	return models.RelationEdge{OccupationURI: occ, SkillURI: skill, Kind: kind}
}

func TestNewGraphSplitsByKind(t *testing.T) {
	g, err := NewGraph([]models.RelationEdge{
		edge("occ1", "s1", models.RelationEssential),
		edge("occ1", "s2", models.RelationOptional),
		edge("occ2", "s1", models.RelationEssential),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"occ1", "occ2"}, g.Occupations())
	assert.Equal(t, []string{"s1"}, g.EssentialSkills("occ1"))
	assert.Equal(t, []string{"s2"}, g.OptionalSkills("occ1"))
	assert.Equal(t, 3, g.EdgeCount())

	usage := g.SkillUsage("s1")
	require.Len(t, usage, 2)
	assert.Equal(t, "occ1", usage[0].OccupationURI)
	assert.Equal(t, "occ2", usage[1].OccupationURI)
}

func TestNewGraphDuplicateLastWriteWins(t *testing.T) {
	g, err := NewGraph([]models.RelationEdge{
		edge("occ1", "s1", models.RelationOptional),
		edge("occ1", "s2", models.RelationEssential),
		edge("occ1", "s1", models.RelationEssential),
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"s1", "s2"}, g.EssentialSkills("occ1"))
	assert.Empty(t, g.OptionalSkills("occ1"))
	// The duplicate pair counts once.
	assert.Equal(t, 2, g.EdgeCount())
}

func TestNewGraphUnknownKindFails(t *testing.T) {
	_, err := NewGraph([]models.RelationEdge{
		edge("occ1", "s1", models.RelationKind("mandatory")),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mandatory")
}

func TestGraphUnknownOccupation(t *testing.T) {
	g, err := NewGraph(nil)
	require.NoError(t, err)

	assert.Empty(t, g.Occupations())
	assert.Empty(t, g.EssentialSkills("missing"))
	assert.Empty(t, g.SkillUsage("missing"))
	assert.Zero(t, g.EdgeCount())
}
