package embeddings

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careerscope/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaConfig(host string) *config.EmbeddingsConfig {
	return &config.EmbeddingsConfig{
		Provider:   "ollama",
		Model:      "bge-m3",
		OllamaHost: host,
		Timeout:    5 * time.Second,
	}
}

func TestOllamaEmbed(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{3, 4}, {0, 1}},
		})
	}))
	defer server.Close()

	p := newOllamaProvider(ollamaConfig(server.URL))
	vecs, err := p.Embed(context.Background(), []string{"python", "sql"})
	require.NoError(t, err)

	assert.Equal(t, "bge-m3", gotBody["model"])
	require.Len(t, vecs, 2)
	// {3,4} comes back unit-normalized.
	assert.InDelta(t, 0.6, vecs[0][0], 1e-6)
	assert.InDelta(t, 0.8, vecs[0][1], 1e-6)
	assert.InDelta(t, 1.0, norm(vecs[1]), 1e-6)
}

func TestOllamaEmbedEmptyInput(t *testing.T) {
	p := newOllamaProvider(ollamaConfig("http://127.0.0.1:1"))
	vecs, err := p.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestOllamaEmbedAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not found"})
	}))
	defer server.Close()

	p := newOllamaProvider(ollamaConfig(server.URL))
	_, err := p.Embed(context.Background(), []string{"python"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "model not found")
}

func TestOllamaEmbedUnreachable(t *testing.T) {
	p := newOllamaProvider(ollamaConfig("http://127.0.0.1:1"))
	_, err := p.Embed(context.Background(), []string{"python"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOllamaEmbedCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{1, 0}},
		})
	}))
	defer server.Close()

	p := newOllamaProvider(ollamaConfig(server.URL))
	_, err := p.Embed(context.Background(), []string{"python", "sql"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}
