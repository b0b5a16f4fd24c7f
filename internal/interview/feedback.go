package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"abhinav/interview-coach/internal/llm"
)

var requiredFeedbackFields = []string{
	"overall_score", "overall_assessment", "strengths",
	"areas_for_improvement", "technical_proficiency",
	"communication_skills", "problem_solving", "key_focus_areas", "recommendation",
}

// GenerateFinalFeedback builds a transcript from all turns and asks the
// model for the fixed-shape summary. A malformed or incomplete response
// never reaches the caller: it degrades to a deterministic summary computed
// from the recorded per-turn scores.
func (e *Engine) GenerateFinalFeedback(ctx context.Context) (*Feedback, error) {
	if !e.hasAnsweredTurn() {
		return nil, ErrNoAnswers
	}

	prompt := fmt.Sprintf(`Based on the complete interview below, provide a detailed performance summary.

Role: %s
Resume: %s

Full Interview Transcript:
%s

Provide a comprehensive analysis in JSON format:
{
  "overall_score": (0-10),
  "overall_assessment": "2-3 sentence summary",
  "strengths": ["...", "...", "..."],
  "areas_for_improvement": ["...", "...", "..."],
  "technical_proficiency": {"score": (0-10), "comment": "..."},
  "communication_skills": {"score": (0-10), "comment": "..."},
  "problem_solving": {"score": (0-10), "comment": "..."},
  "key_focus_areas": ["...", "...", "..."],
  "recommendation": "Strong Hire|Hire|Maybe|No Hire"
}`, e.role, e.profile, e.transcriptString())

	text, err := e.gateway.Generate(ctx, llm.Request{
		System:      "You are a senior hiring manager providing comprehensive interview feedback.",
		Prompt:      prompt,
		Temperature: generationTemperature,
		JSON:        true,
	})
	if err != nil {
		log.Printf("⚠️ Final feedback generation failed, using fallback: %v\n", err)
		return e.fallbackFeedback(), nil
	}

	feedback, err := decodeFeedback(text)
	if err != nil {
		log.Printf("⚠️ Final feedback response unusable, using fallback: %v\n", err)
		return e.fallbackFeedback(), nil
	}

	return feedback, nil
}

func decodeFeedback(text string) (*Feedback, error) {
	raw, err := llm.ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
	}
	for _, field := range requiredFeedbackFields {
		if _, ok := fields[field]; !ok {
			return nil, fmt.Errorf("%w: missing required field %s", llm.ErrMalformedOutput, field)
		}
	}

	var feedback Feedback
	if err := json.Unmarshal(raw, &feedback); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
	}
	return &feedback, nil
}

// fallbackFeedback is the deterministic summary used when the model output
// is unusable: every sub-score is the average of the recorded turn scores.
func (e *Engine) fallbackFeedback() *Feedback {
	var scores []float64
	answered := 0
	for _, turn := range e.turns {
		if turn.Answered() {
			answered++
			scores = append(scores, turn.Evaluation.Score)
		}
	}

	avg := 5.0
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		avg = math.Round(sum/float64(len(scores))*10) / 10
	}

	recommendation := "No Hire"
	if avg >= 6 {
		recommendation = "Maybe"
	}

	return &Feedback{
		OverallScore:        avg,
		OverallAssessment:   fmt.Sprintf("Based on %d questions, the candidate shows potential but needs further evaluation.", len(e.turns)),
		Strengths:           []string{"Participated in the interview process"},
		AreasForImprovement: []string{"Provide more detailed answers", "Give specific examples"},
		TechnicalProficiency: CategoryScore{
			Score:   avg,
			Comment: "Basic technical understanding demonstrated",
		},
		CommunicationSkills: CategoryScore{
			Score:   avg,
			Comment: "Clear communication with room for improvement",
		},
		ProblemSolving: CategoryScore{
			Score:   avg,
			Comment: "Shows problem-solving approach",
		},
		KeyFocusAreas:  []string{"Technical depth", "Specific examples", "Leadership experience"},
		Recommendation: recommendation,
	}
}

func (e *Engine) hasAnsweredTurn() bool {
	for _, turn := range e.turns {
		if turn.Answered() {
			return true
		}
	}
	return false
}

func (e *Engine) transcriptString() string {
	var parts []string
	for i, turn := range e.turns {
		answer := turn.Answer
		if answer == "" {
			answer = "N/A"
		}
		score := "N/A"
		if turn.Answered() {
			score = fmt.Sprintf("%.1f", turn.Evaluation.Score)
		}
		parts = append(parts, fmt.Sprintf("Question %d (%s, %s):\n%s\n\nAnswer:\n%s\n\nScore: %s",
			i+1, turn.Type, turn.Difficulty, turn.Question, answer, score))
	}
	return strings.Join(parts, "\n\n")
}
