package esco

import (
	"context"
	"fmt"
	"math"
	"sort"

	"careerscope/internal/embeddings"
	"careerscope/internal/models"
)

// Matcher scores candidate phrases against an embedding index.
type Matcher struct {
	provider embeddings.Provider
}

// NewMatcher creates a Matcher backed by the given embedding provider.
func NewMatcher(provider embeddings.Provider) *Matcher {
	return &Matcher{provider: provider}
}

// Match embeds the phrases in one provider call and scores every phrase
// against every index entry by dot product (cosine similarity, vectors are
// unit-norm). An entry appears at most once in the output, carrying its single
// best-scoring phrase; only scores strictly above threshold survive. Results
// are sorted by similarity descending, ties kept in index load order, and
// truncated to maxResults.
//
// Empty phrases yield an empty result without touching the provider. Provider
// failures propagate wrapped in embeddings.ErrProviderUnavailable so callers
// can tell a broken matcher from an empty match set.
func (m *Matcher) Match(ctx context.Context, phrases []string, ix *Index, threshold float64, maxResults int) ([]models.MatchResult, error) {
	if len(phrases) == 0 || ix.Len() == 0 {
		return nil, nil
	}

	vectors, err := m.provider.Embed(ctx, phrases)
	if err != nil {
		return nil, fmt.Errorf("embed %d phrases: %w", len(phrases), err)
	}

	// Best phrase per index entry. Raw (unrounded) scores decide the
	// threshold and the winner; rounding happens only in the output.
	type best struct {
		score  float64
		phrase int
	}
	bestByEntry := make(map[int]best)

	for pi, vec := range vectors {
		for ei, entryVec := range ix.Vectors {
			score := dot(vec, entryVec)
			if score <= threshold {
				continue
			}
			if b, ok := bestByEntry[ei]; !ok || score > b.score {
				bestByEntry[ei] = best{score: score, phrase: pi}
			}
		}
	}

	// Collect in index order so the stable sort below breaks score ties by
	// taxonomy load order.
	results := make([]models.MatchResult, 0, len(bestByEntry))
	for ei := 0; ei < ix.Len(); ei++ {
		b, ok := bestByEntry[ei]
		if !ok {
			continue
		}
		results = append(results, models.MatchResult{
			URI:          ix.URIs[ei],
			Name:         ix.Labels[ei],
			Similarity:   round3(b.score),
			MatchedToken: phrases[b.phrase],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
