package api

import (
	"careerscope/docs"
	"careerscope/internal/api/handlers"
	"careerscope/pkg/auth"
	"careerscope/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	extractionHandler *handlers.ExtractionHandler,
	analysisHandler *handlers.AnalysisHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // uploaded CVs
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", extractionHandler.Health)

	// Auth routes (public)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	extract := protected.Group("/extract")
	extract.Post("/skills", extractionHandler.ExtractSkills)
	extract.Post("/occupations", extractionHandler.ExtractOccupations)

	search := protected.Group("/search")
	search.Get("/skills", extractionHandler.SearchSkills)
	search.Get("/occupations", extractionHandler.SearchOccupations)

	protected.Get("/skills/detail", extractionHandler.SkillDetail)
	protected.Get("/occupations/detail", extractionHandler.OccupationDetail)
	protected.Get("/categories", extractionHandler.Categories)

	analyze := protected.Group("/analyze")
	analyze.Post("/text", analysisHandler.AnalyzeText)
	analyze.Post("/pdf", analysisHandler.AnalyzePDF)

	protected.Get("/analyses", analysisHandler.ListAnalyses)
	protected.Get("/analyses/:id", analysisHandler.GetAnalysis)

	protected.Post("/admin/reload", analysisHandler.Reload)

	return app
}
