package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"abhinav/interview-coach/internal/interview"
	"abhinav/interview-coach/internal/llm"
	"abhinav/interview-coach/internal/models"
	"abhinav/interview-coach/internal/repositories"
	"abhinav/interview-coach/internal/scoring"
	"abhinav/interview-coach/internal/services"
)

type InterviewHandler struct {
	reportRepo repositories.ReportRepository
	gateway    llm.Gateway
	knowledge  services.KnowledgeService
}

func NewInterviewHandler(
	reportRepo repositories.ReportRepository,
	gateway llm.Gateway,
	knowledge services.KnowledgeService,
) *InterviewHandler {
	return &InterviewHandler{
		reportRepo: reportRepo,
		gateway:    gateway,
		knowledge:  knowledge,
	}
}

// HandleStart handles POST /api/v1/interview/start. It initializes the
// behavioral engine with the resume text (enriched with rubric context when
// the knowledge base has any), generates the opening question and stores the
// engine state on the report.
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	report, err := h.loadReport(c, req.ReportID)
	if report == nil {
		return err
	}

	profile := report.ResumeText
	if h.knowledge != nil {
		rubricCtx, err := h.knowledge.RetrieveRoleContext(c.Context(), req.Role, 3)
		if err != nil {
			log.Printf("⚠️  Rubric retrieval failed, starting without it: %v\n", err)
		} else if rubricCtx != "" {
			profile = profile + "\n\n" + rubricCtx
		}
	}

	engine := interview.NewEngine(h.gateway)
	if err := engine.Initialize(profile, req.Role); err != nil {
		return domainError(c, err)
	}

	question, err := engine.GenerateFirstQuestion(c.Context())
	if err != nil {
		return domainError(c, err)
	}

	report.Role = req.Role
	if err := h.saveState(report, engine); err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"report_id":       report.ID.String(),
		"question":        question,
		"question_number": 1,
		"total_questions": engine.TotalQuestions(),
	})
}

// HandleMessage handles POST /api/v1/interview/message. Clarification and
// hint requests are side channels that leave the turn sequence untouched;
// anything else is treated as an answer to the current question.
func (h *InterviewHandler) HandleMessage(c *fiber.Ctx) error {
	var req models.InterviewMessageRequest
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

	report, err := h.loadReport(c, req.ReportID)
	if report == nil {
		return err
	}

	engine, err := h.restoreEngine(report)
	if err != nil {
		return domainError(c, err)
	}

	switch interview.DetectIntent(req.Message) {
	case interview.IntentClarify:
		rephrased, err := engine.RephraseCurrentQuestion(c.Context())
		if err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"type":    "clarification",
			"message": rephrased,
		})

	case interview.IntentHint:
		hint, err := engine.HintForCurrentQuestion(c.Context())
		if err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"type":    "hint",
			"message": hint,
		})
	}

	generateNext := !req.IsLastQuestion && len(engine.Turns()) < engine.TotalQuestions()

	result, err := engine.EvaluateAndAdvance(c.Context(), req.Message, generateNext)
	if err != nil {
		return domainError(c, err)
	}

	if err := h.saveState(report, engine); err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"type":            "answer",
		"evaluation":      result.Evaluation,
		"coach_tip":       result.CoachTip,
		"next_question":   result.NextQuestion,
		"question_number": len(engine.Turns()),
		"total_questions": engine.TotalQuestions(),
	})
}

// HandleFeedback handles POST /api/v1/interview/feedback. Generation is
// synchronous; the result is also persisted so finalization can reuse it.
func (h *InterviewHandler) HandleFeedback(c *fiber.Ctx) error {
	var req models.InterviewFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	report, err := h.loadReport(c, req.ReportID)
	if report == nil {
		return err
	}

	engine, err := h.restoreEngine(report)
	if err != nil {
		return domainError(c, err)
	}

	// Final feedback can take a while; don't tie it to the request socket.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	feedback, err := engine.GenerateFinalFeedback(ctx)
	if err != nil {
		return domainError(c, err)
	}
	scoring.NormalizeScores(feedback)

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return domainError(c, err)
	}
	report.BehavioralReport = string(feedbackJSON)
	if err := h.reportRepo.Save(report); err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(feedback)
}

func (h *InterviewHandler) loadReport(c *fiber.Ctx, reportID string) (*models.Report, error) {
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

func (h *InterviewHandler) restoreEngine(report *models.Report) (*interview.Engine, error) {
	if report.BehavioralState == "" {
		return nil, interview.ErrNotInitialized
	}

	var state interview.State
	if err := json.Unmarshal([]byte(report.BehavioralState), &state); err != nil {
		return nil, err
	}
	return interview.Restore(h.gateway, state), nil
}

func (h *InterviewHandler) saveState(report *models.Report, engine *interview.Engine) error {
	stateJSON, err := json.Marshal(engine.State())
	if err != nil {
		return err
	}
	report.BehavioralState = string(stateJSON)
	return h.reportRepo.Save(report)
}
