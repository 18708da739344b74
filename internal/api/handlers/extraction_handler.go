package handlers

import (
	"errors"

	"careerscope/internal/dto"
	"careerscope/internal/embeddings"
	"careerscope/internal/esco"
	"careerscope/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExtractionHandler struct {
	extractionService *service.ExtractionService
	logger            *zap.Logger
}

func NewExtractionHandler(extractionService *service.ExtractionService, logger *zap.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		logger:            logger,
	}
}

// ExtractSkills godoc
// @Summary Extract ESCO skills from text
// @Description Tokenize free text and match phrases against the ESCO skill taxonomy
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.ExtractRequest true "Extraction request"
// @Security Bearer
// @Success 200 {object} dto.ExtractResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/extract/skills [post]
func (h *ExtractionHandler) ExtractSkills(c *fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	resp, err := h.extractionService.ExtractSkills(c.Context(), req.Text, req.Threshold, req.MaxResults)
	if err != nil {
		return h.extractionError(c, err)
	}

	return c.JSON(resp)
}

// ExtractOccupations godoc
// @Summary Extract ESCO occupations from text
// @Description Tokenize free text and match phrases against the ESCO occupation taxonomy
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.ExtractRequest true "Extraction request"
// @Security Bearer
// @Success 200 {object} dto.ExtractResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/extract/occupations [post]
func (h *ExtractionHandler) ExtractOccupations(c *fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	resp, err := h.extractionService.ExtractOccupations(c.Context(), req.Text, req.Threshold, req.MaxResults)
	if err != nil {
		return h.extractionError(c, err)
	}

	return c.JSON(resp)
}

// SearchSkills godoc
// @Summary Search skills by similarity
// @Description Rank ESCO skills by embedding similarity to a query string
// @Tags search
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results" default(10)
// @Security Bearer
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/search/skills [get]
func (h *ExtractionHandler) SearchSkills(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}

	matches, err := h.extractionService.SearchSkills(c.Context(), query, c.QueryInt("limit", 0))
	if err != nil {
		return h.extractionError(c, err)
	}

	return c.JSON(dto.SearchResponse{Query: query, Matches: matches})
}

// SearchOccupations godoc
// @Summary Search occupations by similarity
// @Description Rank ESCO occupations by embedding similarity to a query string
// @Tags search
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results" default(10)
// @Security Bearer
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/search/occupations [get]
func (h *ExtractionHandler) SearchOccupations(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}

	matches, err := h.extractionService.SearchOccupations(c.Context(), query, c.QueryInt("limit", 0))
	if err != nil {
		return h.extractionError(c, err)
	}

	return c.JSON(dto.SearchResponse{Query: query, Matches: matches})
}

// SkillDetail godoc
// @Summary Get skill details
// @Description Get a skill with its categories and occupation usage
// @Tags taxonomy
// @Produce json
// @Param uri query string true "ESCO skill URI"
// @Security Bearer
// @Success 200 {object} models.SkillDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/skills/detail [get]
func (h *ExtractionHandler) SkillDetail(c *fiber.Ctx) error {
	uri := c.Query("uri")
	if uri == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter uri is required",
		})
	}

	detail, err := h.extractionService.SkillDetail(uri)
	if err != nil {
		if errors.Is(err, esco.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Skill not found",
			})
		}
		h.logger.Error("Failed to get skill detail", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get skill detail",
		})
	}

	return c.JSON(detail)
}

// OccupationDetail godoc
// @Summary Get occupation details
// @Description Get an occupation with its skill requirements and category breakdown
// @Tags taxonomy
// @Produce json
// @Param uri query string true "ESCO occupation URI"
// @Security Bearer
// @Success 200 {object} models.OccupationDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/occupations/detail [get]
func (h *ExtractionHandler) OccupationDetail(c *fiber.Ctx) error {
	uri := c.Query("uri")
	if uri == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter uri is required",
		})
	}

	detail, err := h.extractionService.OccupationDetail(uri)
	if err != nil {
		if errors.Is(err, esco.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Occupation not found",
			})
		}
		h.logger.Error("Failed to get occupation detail", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get occupation detail",
		})
	}

	return c.JSON(detail)
}

// Categories godoc
// @Summary List skill categories
// @Description Get skill counts per category collection
// @Tags taxonomy
// @Produce json
// @Security Bearer
// @Success 200 {object} models.CategorySummary
// @Router /api/v1/categories [get]
func (h *ExtractionHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.extractionService.Categories())
}

// Health godoc
// @Summary Service health
// @Description Report taxonomy sizes and the active embedding provider
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *ExtractionHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.extractionService.Health())
}

func (h *ExtractionHandler) extractionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, embeddings.ErrProviderUnavailable) {
		h.logger.Error("Embedding provider unavailable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Embedding provider unavailable",
		})
	}
	h.logger.Error("Extraction failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Extraction failed",
	})
}
