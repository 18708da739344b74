package esco

import (
	"context"
	"fmt"
	"testing"

	"careerscope/internal/embeddings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider serves fixed vectors per input string.
type stubProvider struct {
	model string
	vecs  map[string][]float32
	err   error
	calls int
}

func (p *stubProvider) Name() string  { return "stub" }
func (p *stubProvider) Model() string { return p.model }

func (p *stubProvider) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float32, 0, len(inputs))
	for _, in := range inputs {
		vec, ok := p.vecs[in]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", in)
		}
		out = append(out, vec)
	}
	return out, nil
}

func testIndex(uris []string, labels []string, vectors [][]float32) *Index {
	return &Index{
		Model:   "stub-model",
		Version: "v-test",
		Dims:    len(vectors[0]),
		URIs:    uris,
		Labels:  labels,
		Vectors: vectors,
	}
}

func TestMatchThresholdIsStrict(t *testing.T) {
	ix := testIndex(
		[]string{"uri/a"},
		[]string{"skill a"},
		[][]float32{{1, 0}},
	)
	provider := &stubProvider{model: "stub-model", vecs: map[string][]float32{
		"phrase": {0.5, 0.8660254},
	}}
	m := NewMatcher(provider)

	// Similarity is exactly 0.5; a threshold of 0.5 must exclude it.
	results, err := m.Match(context.Background(), []string{"phrase"}, ix, 0.5, 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = m.Match(context.Background(), []string{"phrase"}, ix, 0.49, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.5, results[0].Similarity)
}

func TestMatchBestPhrasePerEntry(t *testing.T) {
	ix := testIndex(
		[]string{"uri/a"},
		[]string{"skill a"},
		[][]float32{{1, 0}},
	)
	provider := &stubProvider{model: "stub-model", vecs: map[string][]float32{
		"weak":   {0.7, 0.7141428},
		"strong": {0.95, 0.3122499},
	}}
	m := NewMatcher(provider)

	results, err := m.Match(context.Background(), []string{"weak", "strong"}, ix, 0.6, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "uri/a", results[0].URI)
	assert.Equal(t, "strong", results[0].MatchedToken)
	assert.Equal(t, 0.95, results[0].Similarity)
}

func TestMatchSortsDescTiesInLoadOrder(t *testing.T) {
	shared := []float32{1, 0}
	ix := testIndex(
		[]string{"uri/low", "uri/tie1", "uri/tie2"},
		[]string{"low", "tie one", "tie two"},
		[][]float32{{0.7, 0.7141428}, shared, shared},
	)
	provider := &stubProvider{model: "stub-model", vecs: map[string][]float32{
		"phrase": {1, 0},
	}}
	m := NewMatcher(provider)

	results, err := m.Match(context.Background(), []string{"phrase"}, ix, 0.5, 10)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "uri/tie1", results[0].URI)
	assert.Equal(t, "uri/tie2", results[1].URI)
	assert.Equal(t, "uri/low", results[2].URI)
}

func TestMatchTruncatesToMaxResults(t *testing.T) {
	ix := testIndex(
		[]string{"uri/1", "uri/2", "uri/3"},
		[]string{"one", "two", "three"},
		[][]float32{{1, 0}, {0.9, 0.4358899}, {0.8, 0.6}},
	)
	provider := &stubProvider{model: "stub-model", vecs: map[string][]float32{
		"phrase": {1, 0},
	}}
	m := NewMatcher(provider)

	results, err := m.Match(context.Background(), []string{"phrase"}, ix, 0.5, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "uri/1", results[0].URI)
	assert.Equal(t, "uri/2", results[1].URI)
}

func TestMatchRoundsSimilarity(t *testing.T) {
	ix := testIndex(
		[]string{"uri/a"},
		[]string{"skill a"},
		[][]float32{{1, 0}},
	)
	provider := &stubProvider{model: "stub-model", vecs: map[string][]float32{
		"phrase": {0.8756, 0.4829},
	}}
	m := NewMatcher(provider)

	results, err := m.Match(context.Background(), []string{"phrase"}, ix, 0.5, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 0.876, results[0].Similarity)
}

func TestMatchEmptyPhrasesSkipsProvider(t *testing.T) {
	ix := testIndex([]string{"uri/a"}, []string{"skill a"}, [][]float32{{1, 0}})
	provider := &stubProvider{model: "stub-model"}
	m := NewMatcher(provider)

	results, err := m.Match(context.Background(), nil, ix, 0.5, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, provider.calls)
}

func TestMatchProviderFailurePropagates(t *testing.T) {
	ix := testIndex([]string{"uri/a"}, []string{"skill a"}, [][]float32{{1, 0}})
	provider := &stubProvider{
		model: "stub-model",
		err:   fmt.Errorf("%w: connection refused", embeddings.ErrProviderUnavailable),
	}
	m := NewMatcher(provider)

	_, err := m.Match(context.Background(), []string{"phrase"}, ix, 0.5, 10)
	assert.ErrorIs(t, err, embeddings.ErrProviderUnavailable)
}
