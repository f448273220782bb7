package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"jobfit/resume-analyzer/internal/models"
	"jobfit/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
	validate *validator.Validate
}

func NewAnalyzeHandler(analyzer services.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		validate: validator.New(),
	}
}

// HandleAnalyze handles POST /analyze. The provider call runs inline; the
// request blocks until the analysis completes or fails.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
			"code":  "invalid_payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both job_description and resume_text are required",
			"code":  "input_validation",
		})
	}

	analysis, err := h.analyzer.Analyze(c.Context(), req)
	if err != nil {
		return analysisErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(buildAnalyzeResponse(analysis))
}

// analysisErrorResponse maps each failure class to a distinct status and
// error code so the page can tell the user what actually went wrong.
func analysisErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrEmptyJobDescription) || errors.Is(err, models.ErrEmptyResume) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "input_validation",
		})
	}

	var provErr *models.ProviderError
	if errors.As(err, &provErr) {
		status := fiber.StatusBadGateway
		switch provErr.Kind {
		case models.ProviderErrTimeout:
			status = fiber.StatusGatewayTimeout
		case models.ProviderErrRateLimit:
			status = fiber.StatusServiceUnavailable
		}

		return c.Status(status).JSON(fiber.Map{
			"error": provErr.Error(),
			"code":  string(provErr.Kind),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
		"code":  "internal",
	})
}

func buildAnalyzeResponse(a *models.Analysis) models.AnalyzeResponse {
	report := a.Report()

	return models.AnalyzeResponse{
		ID:               a.ID.String(),
		Status:           string(a.Status),
		Report:           report,
		Verdict:          report.Verdict(),
		WordCountStatus:  a.WordCountStatus,
		RepetitionStatus: a.RepetitionStatus,
		RawResponse:      a.RawResponse,
	}
}
