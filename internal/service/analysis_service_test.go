package service

import (
	"strings"
	"testing"

	"careerscope/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestShapeJobMatchRoundsScore(t *testing.T) {
	shaped := shapeJobMatch(models.JobMatch{MatchScore: 0.7 * 2.0 / 3.0})
	assert.Equal(t, 0.467, shaped.MatchScore)

	shaped = shapeJobMatch(models.JobMatch{MatchScore: 0.7})
	assert.Equal(t, 0.7, shaped.MatchScore)
}

func TestShapeJobMatchCapsMissingOptional(t *testing.T) {
	missing := []string{"a", "b", "c", "d", "e", "f", "g"}
	shaped := shapeJobMatch(models.JobMatch{MissingOptional: missing})
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, shaped.MissingOptional)

	short := []string{"a", "b"}
	shaped = shapeJobMatch(models.JobMatch{MissingOptional: short})
	assert.Equal(t, short, shaped.MissingOptional)
}

func TestShapeJobMatchTruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 250)
	shaped := shapeJobMatch(models.JobMatch{Description: long})
	assert.Equal(t, long[:200]+"...", shaped.Description)
	assert.Len(t, shaped.Description, 203)

	exact := strings.Repeat("x", 200)
	shaped = shapeJobMatch(models.JobMatch{Description: exact})
	assert.Equal(t, exact, shaped.Description)
}
