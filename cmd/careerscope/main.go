package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"careerscope/internal/api"
	"careerscope/internal/api/handlers"
	"careerscope/internal/embeddings"
	"careerscope/internal/repository"
	"careerscope/internal/service"
	"careerscope/pkg/auth"
	"careerscope/pkg/config"
	"careerscope/pkg/logger"
	"careerscope/pkg/postgres"

	"go.uber.org/zap"
)

// @title CareerScope API
// @version 1.0
// @description ESCO skill extraction and career matching service

// @contact.name API Support
// @contact.email support@careerscope.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting CareerScope service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	analysisRepo := repository.NewAnalysisRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize embedding provider and taxonomy catalog
	provider, err := embeddings.NewProvider(&cfg.Embeddings)
	if err != nil {
		appLogger.Fatal("Failed to initialize embedding provider", zap.Error(err))
	}

	catalogService, err := service.NewCatalogService(ctx, &cfg.ESCO, provider, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load taxonomy catalog", zap.Error(err))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	extractionService := service.NewExtractionService(catalogService, provider, &cfg.ESCO, appLogger)
	pdfService := service.NewPDFService(appLogger)

	// The narrative layer is optional; the analysis pipeline works without it.
	var narrativeService *service.NarrativeService
	if cfg.GigaChat.APIKey != "" {
		narrativeService, err = service.NewNarrativeService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Warn("Narrative service unavailable, analyses will omit narratives", zap.Error(err))
			narrativeService = nil
		} else {
			defer narrativeService.Close()
		}
	} else {
		appLogger.Info("GigaChat API key not set, analyses will omit narratives")
	}

	analysisService := service.NewAnalysisService(
		catalogService, provider, pdfService, narrativeService,
		analysisRepo, &cfg.ESCO, &cfg.Matching, appLogger,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	extractionHandler := handlers.NewExtractionHandler(extractionService, appLogger)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, extractionHandler, analysisHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
