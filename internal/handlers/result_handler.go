package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobfit/resume-analyzer/internal/models"
	"jobfit/resume-analyzer/internal/repositories"
	"jobfit/resume-analyzer/internal/services"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
	analyzer     services.AnalyzerService
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository, analyzer services.AnalyzerService) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
	}
}

// HandleGetResult handles GET /analyses/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	if analysis.Status == models.StatusFailed {
		return c.JSON(fiber.Map{
			"id":     analysis.ID.String(),
			"status": string(analysis.Status),
			"error":  analysis.ErrorMessage,
		})
	}

	return c.JSON(buildAnalyzeResponse(analysis))
}

// HandleListAnalyses handles GET /analyses
func (h *ResultHandler) HandleListAnalyses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	analyses, err := h.analysisRepo.ListRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list analyses",
		})
	}

	summaries := make([]models.AnalysisSummary, 0, len(analyses))
	for i := range analyses {
		a := &analyses[i]
		summaries = append(summaries, models.AnalysisSummary{
			ID:                  a.ID.String(),
			Verdict:             a.Report().Verdict(),
			RelevanceScore:      a.RelevanceScore,
			RecommendationScore: a.RecommendationScore,
			CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"analyses": summaries,
	})
}

// HandleFindSimilar handles GET /analyses/:id/similar
func (h *ResultHandler) HandleFindSimilar(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 20 {
		limit = 5
	}

	similar, err := h.analyzer.FindSimilar(c.Context(), analysisID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"analysis_id": analysisID.String(),
		"similar":     similar,
	})
}
