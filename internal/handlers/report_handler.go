package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobfit/resume-analyzer/internal/models"
	"jobfit/resume-analyzer/internal/repositories"
	"jobfit/resume-analyzer/internal/services"
)

type ReportHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewReportHandler(analysisRepo repositories.AnalysisRepository) *ReportHandler {
	return &ReportHandler{
		analysisRepo: analysisRepo,
	}
}

// HandleDownloadReport handles GET /analyses/:id/report. The body is the
// plain-text rendering of the stored record, so repeated downloads of the
// same analysis are byte-identical.
func (h *ReportHandler) HandleDownloadReport(c *fiber.Ctx) error {
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

	if analysis.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Analysis did not complete; no report available",
		})
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume_analysis_report.txt"`)

	return c.SendString(services.BuildReport(analysis))
}
