package service

import (
	"context"

	"careerscope/internal/dto"
	"careerscope/internal/embeddings"
	"careerscope/internal/esco"
	"careerscope/internal/models"
	"careerscope/pkg/config"

	"go.uber.org/zap"
)

// ExtractionService maps free text onto the ESCO taxonomy: tokenize the text,
// embed the phrases and match them against the skill or occupation index.
type ExtractionService struct {
	catalog  *CatalogService
	matcher  *esco.Matcher
	provider embeddings.Provider
	cfg      *config.ESCOConfig
	logger   *zap.Logger
}

func NewExtractionService(catalog *CatalogService, provider embeddings.Provider, cfg *config.ESCOConfig, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{
		catalog:  catalog,
		matcher:  esco.NewMatcher(provider),
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// ExtractSkills extracts ESCO skills from free text. Zero threshold or
// maxResults fall back to the configured defaults.
func (s *ExtractionService) ExtractSkills(ctx context.Context, text string, threshold float64, maxResults int) (*dto.ExtractResponse, error) {
	if threshold == 0 {
		threshold = s.cfg.SkillsThreshold
	}
	if maxResults == 0 {
		maxResults = s.cfg.MaxResults
	}

	catalog := s.catalog.Catalog()
	phrases := esco.Tokenize(text)

	matches, err := s.matcher.Match(ctx, phrases, catalog.Skills, threshold, maxResults)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Skills extracted",
		zap.Int("text_length", len(text)),
		zap.Int("phrases", len(phrases)),
		zap.Int("matches", len(matches)),
	)

	return &dto.ExtractResponse{Matches: matches, Tokens: len(phrases)}, nil
}

// ExtractOccupations extracts ESCO occupations from free text.
func (s *ExtractionService) ExtractOccupations(ctx context.Context, text string, threshold float64, maxResults int) (*dto.ExtractResponse, error) {
	if threshold == 0 {
		threshold = s.cfg.OccupationsThreshold
	}
	if maxResults == 0 {
		maxResults = s.cfg.MaxResults
	}

	catalog := s.catalog.Catalog()
	phrases := esco.Tokenize(text)

	matches, err := s.matcher.Match(ctx, phrases, catalog.Occupations, threshold, maxResults)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Occupations extracted",
		zap.Int("text_length", len(text)),
		zap.Int("phrases", len(phrases)),
		zap.Int("matches", len(matches)),
	)

	return &dto.ExtractResponse{Matches: matches, Tokens: len(phrases)}, nil
}

// SearchSkills ranks skills by similarity to a single query string. The query
// is matched as one phrase, so any entry with positive similarity can appear.
func (s *ExtractionService) SearchSkills(ctx context.Context, query string, maxResults int) ([]models.MatchResult, error) {
	if maxResults == 0 {
		maxResults = s.cfg.MaxResults
	}
	catalog := s.catalog.Catalog()
	return s.matcher.Match(ctx, []string{query}, catalog.Skills, 0, maxResults)
}

// SearchOccupations ranks occupations by similarity to a single query string.
func (s *ExtractionService) SearchOccupations(ctx context.Context, query string, maxResults int) ([]models.MatchResult, error) {
	if maxResults == 0 {
		maxResults = s.cfg.MaxResults
	}
	catalog := s.catalog.Catalog()
	return s.matcher.Match(ctx, []string{query}, catalog.Occupations, 0, maxResults)
}

func (s *ExtractionService) SkillDetail(uri string) (models.SkillDetail, error) {
	return s.catalog.Catalog().SkillDetail(uri)
}

func (s *ExtractionService) OccupationDetail(uri string) (models.OccupationDetail, error) {
	return s.catalog.Catalog().OccupationDetail(uri)
}

func (s *ExtractionService) Categories() models.CategorySummary {
	return s.catalog.Catalog().Store.CategorySummary()
}

func (s *ExtractionService) Health() dto.HealthResponse {
	catalog := s.catalog.Catalog()
	return dto.HealthResponse{
		Status:            "ok",
		Skills:            catalog.Store.SkillCount(),
		Occupations:       catalog.Store.OccupationCount(),
		Relations:         catalog.Graph.EdgeCount(),
		EmbeddingProvider: s.provider.Name(),
		EmbeddingModel:    s.provider.Model(),
		TaxonomyVersion:   s.catalog.Version(),
	}
}
