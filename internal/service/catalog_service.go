package service

import (
	"context"
	"sync/atomic"

	"careerscope/internal/embeddings"
	"careerscope/internal/esco"
	"careerscope/pkg/config"

	"go.uber.org/zap"
)

// CatalogService owns the current taxonomy generation and swaps it atomically
// on reload. Readers always see one consistent generation: store, graph and
// both embedding indexes from the same load.
type CatalogService struct {
	cfg      esco.CatalogConfig
	provider embeddings.Provider
	logger   *zap.Logger
	current  atomic.Pointer[esco.Catalog]
}

func NewCatalogService(ctx context.Context, cfg *config.ESCOConfig, provider embeddings.Provider, logger *zap.Logger) (*CatalogService, error) {
	s := &CatalogService{
		cfg: esco.CatalogConfig{
			DataDir:  cfg.DataDir,
			CacheDir: cfg.CacheDir,
			Version:  cfg.TaxonomyVersion,
		},
		provider: provider,
		logger:   logger,
	}

	catalog, err := esco.LoadCatalog(ctx, s.cfg, provider)
	if err != nil {
		return nil, err
	}
	s.current.Store(catalog)

	logger.Info("Taxonomy catalog loaded",
		zap.Int("skills", catalog.Store.SkillCount()),
		zap.Int("occupations", catalog.Store.OccupationCount()),
		zap.Int("relations", catalog.Graph.EdgeCount()),
		zap.String("version", s.cfg.Version),
	)

	return s, nil
}

// Catalog returns the current generation. Callers must not hold the pointer
// across requests; fetch it once per request instead.
func (s *CatalogService) Catalog() *esco.Catalog {
	return s.current.Load()
}

// Reload builds a fresh catalog from disk and swaps it in. In-flight requests
// keep using the generation they started with.
func (s *CatalogService) Reload(ctx context.Context) error {
	catalog, err := esco.LoadCatalog(ctx, s.cfg, s.provider)
	if err != nil {
		return err
	}
	s.current.Store(catalog)

	s.logger.Info("Taxonomy catalog reloaded",
		zap.Int("skills", catalog.Store.SkillCount()),
		zap.Int("occupations", catalog.Store.OccupationCount()),
		zap.Int("relations", catalog.Graph.EdgeCount()),
	)
	return nil
}

func (s *CatalogService) Version() string {
	return s.cfg.Version
}
