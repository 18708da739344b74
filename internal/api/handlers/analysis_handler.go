package handlers

import (
	"path/filepath"
	"strings"

	"careerscope/internal/dto"
	"careerscope/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
	logger          *zap.Logger
}

func NewAnalysisHandler(analysisService *service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// AnalyzeText godoc
// @Summary Analyze CV text
// @Description Run the full pipeline on raw text: skills, job matches, career opportunities and skill gaps
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeTextRequest true "Analysis request"
// @Security Bearer
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/analyze/text [post]
func (h *AnalysisHandler) AnalyzeText(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	resp, err := h.analysisService.AnalyzeText(c.Context(), userID, req.Text)
	if err != nil {
		h.logger.Error("Text analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Analysis failed",
		})
	}

	return c.JSON(resp)
}

// AnalyzePDF godoc
// @Summary Analyze a CV PDF
// @Description Extract text from an uploaded PDF and run the full analysis pipeline
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CV file (PDF)"
// @Security Bearer
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/analyze/pdf [post]
func (h *AnalysisHandler) AnalyzePDF(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	resp, err := h.analysisService.AnalyzePDF(c.Context(), userID, src, file.Filename)
	if err != nil {
		h.logger.Error("PDF analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Analysis failed",
		})
	}

	return c.JSON(resp)
}

// ListAnalyses godoc
// @Summary List analysis history
// @Description Get the user's past analyses, newest first
// @Tags analysis
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/v1/analyses [get]
func (h *AnalysisHandler) ListAnalyses(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	analyses, total, err := h.analysisService.ListAnalyses(c.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list analyses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list analyses",
		})
	}

	return c.JSON(fiber.Map{
		"analyses": analyses,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetAnalysis godoc
// @Summary Get a stored analysis
// @Description Get the full document of one past analysis
// @Tags analysis
// @Produce json
// @Param id path string true "Analysis ID"
// @Security Bearer
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysis(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID",
		})
	}

	resp, err := h.analysisService.GetAnalysis(c.Context(), userID, analysisID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return c.JSON(resp)
}

// Reload godoc
// @Summary Reload the taxonomy catalog
// @Description Rebuild the taxonomy catalog from disk and swap it in atomically
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/reload [post]
func (h *AnalysisHandler) Reload(c *fiber.Ctx) error {
	if err := h.analysisService.Reload(c.Context()); err != nil {
		h.logger.Error("Catalog reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Catalog reload failed",
		})
	}

	return c.JSON(fiber.Map{
		"status": "reloaded",
	})
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
