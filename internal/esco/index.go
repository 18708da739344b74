package esco

import (
	"context"
	"fmt"

	"careerscope/internal/embeddings"
)

// embedBatchSize bounds a single provider round trip while building an index.
const embedBatchSize = 64

// Index holds precomputed unit-norm embeddings for one taxonomy kind.
// URIs, Labels and Vectors are position-aligned. Read-only after build.
type Index struct {
	Model   string // embedding model identifier
	Version string // taxonomy data version, e.g. "v1.2.0"
	Dims    int

	URIs    []string
	Labels  []string
	Vectors [][]float32
}

// BuildIndex embeds every label through the provider. URIs and labels must be
// position-aligned; order is preserved so ranking ties stay deterministic.
func BuildIndex(ctx context.Context, provider embeddings.Provider, version string, uris, labels []string) (*Index, error) {
	if len(uris) != len(labels) {
		return nil, fmt.Errorf("build index: %d uris vs %d labels", len(uris), len(labels))
	}

	ix := &Index{
		Model:   provider.Model(),
		Version: version,
		URIs:    uris,
		Labels:  labels,
		Vectors: make([][]float32, 0, len(labels)),
	}

	for start := 0; start < len(labels); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(labels) {
			end = len(labels)
		}
		vecs, err := provider.Embed(ctx, labels[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed labels %d-%d: %w", start, end, err)
		}
		ix.Vectors = append(ix.Vectors, vecs...)
	}

	if len(ix.Vectors) > 0 {
		ix.Dims = len(ix.Vectors[0])
		for i, vec := range ix.Vectors {
			if len(vec) != ix.Dims {
				return nil, fmt.Errorf("vector %d has %d dims, want %d", i, len(vec), ix.Dims)
			}
		}
	}

	return ix, nil
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return len(ix.URIs) }
