package dto

import "careerscope/internal/models"

// ExtractRequest asks for skill or occupation extraction from free text.
// Threshold and MaxResults fall back to configured defaults when zero.
type ExtractRequest struct {
	Text       string  `json:"text"`
	Threshold  float64 `json:"threshold,omitempty"`
	MaxResults int     `json:"max_results,omitempty"`
}

type ExtractResponse struct {
	Matches []models.MatchResult `json:"matches"`
	Tokens  int                  `json:"tokens"`
}

type SearchResponse struct {
	Query   string               `json:"query"`
	Matches []models.MatchResult `json:"matches"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	Skills            int    `json:"skills"`
	Occupations       int    `json:"occupations"`
	Relations         int    `json:"relations"`
	EmbeddingProvider string `json:"embedding_provider"`
	EmbeddingModel    string `json:"embedding_model"`
	TaxonomyVersion   string `json:"taxonomy_version"`
}
