package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"abhinav/interview-coach/internal/dsa"
	"abhinav/interview-coach/internal/interview"
	"abhinav/interview-coach/internal/llm"
)

// domainError maps engine sentinel errors onto HTTP responses so every
// handler reports preconditions the same way.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, interview.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, dsa.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "DSA session not found",
		})
	case errors.Is(err, interview.ErrNotInitialized),
		errors.Is(err, interview.ErrNoActiveQuestion),
		errors.Is(err, interview.ErrQuestionAnswered),
		errors.Is(err, interview.ErrNoAnswers),
		errors.Is(err, dsa.ErrSessionClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, llm.ErrMalformedOutput):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "model returned unusable output, please retry",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
