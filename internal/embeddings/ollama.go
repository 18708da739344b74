package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"careerscope/pkg/config"
)

type ollamaProvider struct {
	host   string
	model  string
	client *http.Client
}

func newOllamaProvider(cfg *config.EmbeddingsConfig) *ollamaProvider {
	return &ollamaProvider{
		host:   cfg.OllamaHost,
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *ollamaProvider) Name() string  { return "ollama" }
func (p *ollamaProvider) Model() string { return p.model }

// Embed calls Ollama's batched /api/embed endpoint.
func (p *ollamaProvider) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	base, err := url.Parse(p.host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}
	endpoint := *base
	endpoint.Path = path.Join(endpoint.Path, "/api/embed")

	body, err := json.Marshal(map[string]any{"model": p.model, "input": inputs})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return nil, fmt.Errorf("%w: ollama: %s", ErrProviderUnavailable, apiErr.Error)
		}
		return nil, fmt.Errorf("%w: ollama status %s", ErrProviderUnavailable, resp.Status)
	}

	var out struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode ollama response: %v", ErrProviderUnavailable, err)
	}
	if len(out.Embeddings) != len(inputs) {
		return nil, fmt.Errorf("%w: ollama returned %d embeddings for %d inputs",
			ErrProviderUnavailable, len(out.Embeddings), len(inputs))
	}

	for _, vec := range out.Embeddings {
		normalize(vec)
	}
	return out.Embeddings, nil
}
