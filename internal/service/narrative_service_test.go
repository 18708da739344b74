package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNarrative(t *testing.T) {
	content := `{
		"career_options": [{"role": "data analyst", "why": "strong SQL", "first_step": "build a dashboard"}],
		"role_fit_overview": [{"role": "data analyst", "fit_summary": "good fit today"}],
		"recommendations": ["learn statistics"]
	}`

	payload, err := parseNarrative(content)
	require.NoError(t, err)

	require.Len(t, payload.CareerOptions, 1)
	assert.Equal(t, "data analyst", payload.CareerOptions[0].Role)
	assert.Equal(t, "build a dashboard", payload.CareerOptions[0].FirstStep)
	require.Len(t, payload.RoleFitOverview, 1)
	assert.Equal(t, []string{"learn statistics"}, payload.Recommendations)
}

func TestParseNarrativeStripsCommentaryAndFences(t *testing.T) {
	content := "Here is the result:\n```json\n{\"recommendations\": [\"learn Go\"]}\n```\nHope this helps!"

	payload, err := parseNarrative(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"learn Go"}, payload.Recommendations)
}

func TestParseNarrativeRejectsNonJSON(t *testing.T) {
	_, err := parseNarrative("I cannot help with that request.")
	assert.Error(t, err)

	_, err = parseNarrative("{broken json")
	assert.Error(t, err)
}
