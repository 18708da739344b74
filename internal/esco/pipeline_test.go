package esco

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the full request path: raw text through the tokenizer, similarity
// matching against a skills index, and job matching over the relation graph.
func TestPipelineTextToJobMatch(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write(skillsFile, `conceptUri,preferredLabel,altLabels,description,skillType,reuseLevel
`+skillPython+`,Python programming,,Writing software in Python,skill/competence,cross-sector
`+skillSQL+`,SQL,,Querying relational databases,skill/competence,cross-sector
`)
	write(occupationsFile, `conceptUri,preferredLabel,altLabels,description,iscoGroup
`+occAnalyst+`,data analyst,,Analyzes data,2511
`)
	write(relationsFile, `occupationUri,relationType,skillType,skillUri
`+occAnalyst+`,essential,skill/competence,`+skillPython+`
`)

	store, err := LoadStore(dir)
	require.NoError(t, err)
	graph, err := LoadGraph(dir)
	require.NoError(t, err)

	phrases := Tokenize("I have 5 years of Python programming experience")
	require.Equal(t, []string{"I have 5 years of Python programming experience"}, phrases)

	ix := testIndex(
		[]string{skillPython, skillSQL},
		[]string{"Python programming", "SQL"},
		[][]float32{{1, 0}, {0, 1}},
	)
	// Similarity 0.85 against the Python skill, 0.527 against SQL.
	provider := &stubProvider{model: "stub-model", vecs: map[string][]float32{
		phrases[0]: {0.85, 0.5267827},
	}}

	skills, err := NewMatcher(provider).Match(context.Background(), phrases, ix, 0.6, 10)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, skillPython, skills[0].URI)
	assert.Equal(t, "Python programming", skills[0].Name)
	assert.Equal(t, 0.85, skills[0].Similarity)
	assert.Equal(t, phrases[0], skills[0].MatchedToken)

	skillURIs := map[string]bool{skills[0].URI: true}
	matches := NewCareer(store, graph, DefaultMatchPolicy()).FindJobMatches(skillURIs)
	require.Len(t, matches, 1)

	analyst := matches[0]
	assert.Equal(t, occAnalyst, analyst.URI)
	assert.Equal(t, "data analyst", analyst.Name)
	assert.InDelta(t, 0.7, analyst.MatchScore, 1e-9)
	assert.Empty(t, analyst.MissingEssential)
	assert.Empty(t, analyst.MissingOptional)

	// Matched names resolve back through the store to the labels the index
	// was built from.
	for _, name := range analyst.MatchedSkills {
		skill, err := store.Skill(skillPython)
		require.NoError(t, err)
		assert.Equal(t, skill.Name, name)
	}
	assert.Equal(t, []string{"Python programming"}, analyst.MatchedSkills)
}
