package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"abhinav/interview-coach/internal/dsa"
	"abhinav/interview-coach/internal/models"
	"abhinav/interview-coach/internal/repositories"
)

type DSAHandler struct {
	engine     *dsa.Engine
	reportRepo repositories.ReportRepository
}

func NewDSAHandler(engine *dsa.Engine, reportRepo repositories.ReportRepository) *DSAHandler {
	return &DSAHandler{
		engine:     engine,
		reportRepo: reportRepo,
	}
}

// HandleQuestion handles POST /api/v1/dsa/question. The generated question
// is stored on the report so the later pseudocode submission can reference
// it without the client echoing it back.
func (h *DSAHandler) HandleQuestion(c *fiber.Ctx) error {
	var req models.DSAQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	role := req.Role
	if role == "" {
		role = "general"
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	report, errResp := h.loadReport(c, req.ReportID)
	if report == nil {
		return errResp
	}

	question, err := h.engine.GenerateQuestion(c.Context(), role, difficulty)
	if err != nil {
		return domainError(c, err)
	}

	questionJSON, err := json.Marshal(question)
	if err != nil {
		return domainError(c, err)
	}
	report.DSAQuestion = string(questionJSON)
	if err := h.reportRepo.Save(report); err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(question)
}

// HandleSubmit handles POST /api/v1/dsa/submit: the candidate's pseudocode
// for the previously generated question opens the review dialogue.
func (h *DSAHandler) HandleSubmit(c *fiber.Ctx) error {
	var req models.DSASubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Pseudocode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pseudocode is required",
		})
	}

	report, errResp := h.loadReport(c, req.ReportID)
	if report == nil {
		return errResp
	}

	if report.DSAQuestion == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "no DSA question generated for this report yet",
		})
	}

	var question dsa.Question
	if err := json.Unmarshal([]byte(report.DSAQuestion), &question); err != nil {
		return domainError(c, err)
	}

	result, err := h.engine.OpenSession(c.Context(), req.Pseudocode, &question, report.Role, question.Difficulty)
	if err != nil {
		return domainError(c, err)
	}

	report.DSASessionID = &result.SessionID
	if err := h.reportRepo.Save(report); err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// HandleReply handles POST /api/v1/dsa/reply: one candidate turn in the
// review dialogue.
func (h *DSAHandler) HandleReply(c *fiber.Ctx) error {
	var req models.DSAReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session_id format",
		})
	}

	outcome, err := h.engine.ContinueSession(c.Context(), sessionID, req.Message)
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}

// HandleReport handles GET /api/v1/dsa/report/:session_id. The report is
// synthesized from the stored session on every call.
func (h *DSAHandler) HandleReport(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session_id format",
		})
	}

	report, err := h.engine.Report(c.Context(), sessionID)
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

func (h *DSAHandler) loadReport(c *fiber.Ctx, reportID string) (*models.Report, error) {
	id, err := uuid.Parse(reportID)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report_id format",
		})
	}

	report, err := h.reportRepo.FindByID(id)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}
	return report, nil
}
