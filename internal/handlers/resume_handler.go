package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"abhinav/interview-coach/internal/models"
	"abhinav/interview-coach/internal/repositories"
	"abhinav/interview-coach/internal/services"
)

const resumeExcerptLength = 300

type ResumeHandler struct {
	reportRepo     repositories.ReportRepository
	storageService services.StorageService
	resumeParser   services.ResumeParserService
}

func NewResumeHandler(
	reportRepo repositories.ReportRepository,
	storageService services.StorageService,
	resumeParser services.ResumeParserService,
) *ResumeHandler {
	return &ResumeHandler{
		reportRepo:     reportRepo,
		storageService: storageService,
		resumeParser:   resumeParser,
	}
}

// HandleUpload handles POST /api/v1/resume. The extracted text becomes the
// candidate profile for the behavioral interview; a new report row anchors
// everything that follows.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume PDF file is required (field 'resume')",
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	resumeText, err := h.resumeParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract resume text: %v", err),
		})
	}

	report := &models.Report{
		CandidateName: c.FormValue("candidate_name"),
		ResumeText:    resumeText,
		Status:        models.StatusInProgress,
	}

	if err := h.reportRepo.Create(report); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create report record",
		})
	}

	excerpt := resumeText
	if len(excerpt) > resumeExcerptLength {
		excerpt = excerpt[:resumeExcerptLength] + "..."
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResumeResponse{
		ReportID:      report.ID.String(),
		CandidateName: report.CandidateName,
		ResumeExcerpt: excerpt,
	})
}
