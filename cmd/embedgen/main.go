package main

import (
	"context"
	"flag"
	"log"
	"os"

	"careerscope/internal/embeddings"
	"careerscope/internal/esco"
	"careerscope/pkg/config"
	"careerscope/pkg/logger"

	"go.uber.org/zap"
)

// embedgen precomputes the taxonomy embedding caches so the server can start
// without talking to the embedding provider. Run it after changing the
// taxonomy data, the embedding model or the taxonomy version.
func main() {
	force := flag.Bool("force", false, "rebuild caches even if valid ones exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	provider, err := embeddings.NewProvider(&cfg.Embeddings)
	if err != nil {
		appLogger.Fatal("Failed to initialize embedding provider", zap.Error(err))
	}

	catalogCfg := esco.CatalogConfig{
		DataDir:  cfg.ESCO.DataDir,
		CacheDir: cfg.ESCO.CacheDir,
		Version:  cfg.ESCO.TaxonomyVersion,
	}

	if *force {
		for _, kind := range []string{"skills", "occupations"} {
			path := esco.CachePath(catalogCfg.CacheDir, kind, provider.Model(), catalogCfg.Version)
			if err := removeIfExists(path); err != nil {
				appLogger.Fatal("Failed to remove stale cache", zap.String("path", path), zap.Error(err))
			}
		}
	}

	ctx := context.Background()
	catalog, err := esco.LoadCatalog(ctx, catalogCfg, provider)
	if err != nil {
		appLogger.Fatal("Failed to build embedding caches", zap.Error(err))
	}

	appLogger.Info("Embedding caches ready",
		zap.Int("skills", catalog.Skills.Len()),
		zap.Int("occupations", catalog.Occupations.Len()),
		zap.Int("dims", catalog.Skills.Dims),
		zap.String("model", provider.Model()),
		zap.String("version", catalogCfg.Version),
	)
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
