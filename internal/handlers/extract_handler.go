package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"jobfit/resume-analyzer/internal/models"
	"jobfit/resume-analyzer/internal/services"
)

type ExtractHandler struct {
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewExtractHandler(
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *ExtractHandler {
	return &ExtractHandler{
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleExtract handles POST /extract. The uploaded PDF is held only for the
// duration of the extraction; the text comes back for pasting into the form.
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded. Please upload a 'resume' PDF file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}
	defer h.storageService.DeleteFile(filename)

	content, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text from PDF: %v", err),
		})
	}

	return c.JSON(models.ExtractResponse{
		Text:      content.Text,
		PageCount: content.PageCount,
	})
}
