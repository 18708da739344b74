// Package embeddings reaches external embedding model servers over HTTP.
// All providers return one unit-normalized vector per input and are safe for
// concurrent use.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"math"

	"careerscope/pkg/config"
)

// ErrProviderUnavailable marks embedding failures caused by the provider being
// unreachable or misbehaving. Callers must be able to tell "matcher broken"
// apart from "no matches"; wrap, never swallow.
var ErrProviderUnavailable = errors.New("embeddings: provider unavailable")

// Provider is an external embedding model endpoint.
type Provider interface {
	// Name returns the provider name, e.g. "ollama".
	Name() string
	// Model returns the embedding model identifier. Vectors from different
	// models are never comparable; the cache layer keys on this.
	Model() string
	// Embed returns one unit-normalized vector per input, batched in a single
	// round trip where the backend allows it.
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// NewProvider constructs the configured provider.
func NewProvider(cfg *config.EmbeddingsConfig) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return newOllamaProvider(cfg), nil
	case "openai":
		return newOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown embeddings provider %q", cfg.Provider)
	}
}

// normalize scales a vector to unit length in place. Model servers generally
// return normalized vectors already; this guards the dot-product-as-cosine
// invariant against ones that do not.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
