package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExtractionDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.ESCO.SkillsThreshold)
	assert.Equal(t, 0.55, cfg.ESCO.OccupationsThreshold)
	assert.Equal(t, 10, cfg.ESCO.MaxResults)

	// Full CV analysis keeps a wider skill cap than the extraction
	// endpoints so job matching sees the whole profile.
	assert.Equal(t, 50, cfg.ESCO.AnalysisMaxSkills)
}

func TestLoadAnalysisMaxSkillsOverride(t *testing.T) {
	t.Setenv("ANALYSIS_MAX_SKILLS", "80")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.ESCO.AnalysisMaxSkills)
}

func TestLoadMatchingDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.7, cfg.Matching.EssentialWeight)
	assert.Equal(t, 0.3, cfg.Matching.OptionalWeight)
	assert.Equal(t, 5, cfg.Matching.MaxSkillGap)
	assert.Equal(t, 2, cfg.Matching.LowEffortMax)
	assert.Equal(t, 4, cfg.Matching.MediumEffortMax)
}
