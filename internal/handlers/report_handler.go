package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"abhinav/interview-coach/internal/models"
	"abhinav/interview-coach/internal/repositories"
	"abhinav/interview-coach/internal/services"
)

type ReportHandler struct {
	reportRepo repositories.ReportRepository
	worker     services.Worker
}

func NewReportHandler(reportRepo repositories.ReportRepository, worker services.Worker) *ReportHandler {
	return &ReportHandler{
		reportRepo: reportRepo,
		worker:     worker,
	}
}

// HandleFinalize handles POST /api/v1/report/:id/finalize: queue the report
// for combined-report synthesis and return immediately.
func (h *ReportHandler) HandleFinalize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report id format",
		})
	}

	report, err := h.reportRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}

	if report.Status == models.StatusProcessing || report.Status == models.StatusQueued {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "report finalization already in progress",
		})
	}

	if err := h.reportRepo.UpdateStatus(id, models.StatusQueued); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to queue report",
		})
	}

	h.worker.EnqueueJob(id)

	return c.Status(fiber.StatusAccepted).JSON(models.FinalizeResponse{
		ReportID: id.String(),
		Status:   string(models.StatusQueued),
	})
}

// HandleGet handles GET /api/v1/report/:id.
func (h *ReportHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report id format",
		})
	}

	report, err := h.reportRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

// HandleList handles GET /api/v1/reports.
func (h *ReportHandler) HandleList(c *fiber.Ctx) error {
	reports, err := h.reportRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list reports",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reports": reports,
		"count":   len(reports),
	})
}
