package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"abhinav/interview-coach/internal/llm"
)

const (
	// DefaultTotalQuestions is the per-interview question budget.
	DefaultTotalQuestions = 5

	defaultHintFallback = "Think aloud and outline your approach; consider key trade-offs relevant to the role."

	generationTemperature = 0.4
)

var (
	// ErrInvalidInput marks a missing or malformed caller-supplied field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotInitialized means Initialize was never called on this engine.
	ErrNotInitialized = errors.New("interview not initialized")
	// ErrNoActiveQuestion means the turn sequence is empty.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrQuestionAnswered means the current question already carries an
	// evaluation; a second evaluation would overwrite the recorded score.
	ErrQuestionAnswered = errors.New("current question already answered")
	// ErrNoAnswers means no turn has been answered yet, so there is
	// nothing to summarize.
	ErrNoAnswers = errors.New("no answered turns to summarize")
)

// Engine drives one behavioral interview: question generation, answer
// evaluation with difficulty adaptation, clarification/hint side channels
// and final feedback. Engines are ephemeral; they are rebuilt from a stored
// State on every request and hold no cross-request state of their own.
type Engine struct {
	gateway        llm.Gateway
	role           string
	profile        string
	turns          []Turn
	totalQuestions int
}

func NewEngine(gateway llm.Gateway) *Engine {
	return &Engine{
		gateway:        gateway,
		totalQuestions: DefaultTotalQuestions,
	}
}

// Restore rebuilds an engine from a stored state snapshot.
func Restore(gateway llm.Gateway, state State) *Engine {
	e := NewEngine(gateway)
	e.role = state.Role
	e.profile = state.Profile
	e.turns = state.Turns
	if state.TotalQuestions > 0 {
		e.totalQuestions = state.TotalQuestions
	}
	return e
}

// State returns a snapshot that round-trips through Restore losslessly.
func (e *Engine) State() State {
	return State{
		Role:           e.role,
		Profile:        e.profile,
		Turns:          e.turns,
		TotalQuestions: e.totalQuestions,
	}
}

// Initialize sets the interview context and clears any previous turns.
func (e *Engine) Initialize(profile, role string) error {
	if strings.TrimSpace(role) == "" {
		return fmt.Errorf("%w: role is required", ErrInvalidInput)
	}

	e.profile = profile
	e.role = role
	e.turns = nil
	return nil
}

func (e *Engine) Initialized() bool {
	return e.role != ""
}

func (e *Engine) Role() string { return e.role }

func (e *Engine) Turns() []Turn { return e.turns }

func (e *Engine) TotalQuestions() int { return e.totalQuestions }

// CurrentQuestion returns the latest question for UI rendering.
func (e *Engine) CurrentQuestion() (*Question, error) {
	if len(e.turns) == 0 {
		return nil, ErrNoActiveQuestion
	}
	last := e.turns[len(e.turns)-1]
	return &Question{Question: last.Question, Type: last.Type, Difficulty: last.Difficulty}, nil
}

// GenerateFirstQuestion asks the model for one opener tailored to the
// resume and role and appends it as a new unanswered turn.
func (e *Engine) GenerateFirstQuestion(ctx context.Context) (*Question, error) {
	if !e.Initialized() {
		return nil, ErrNotInitialized
	}

	prompt := fmt.Sprintf(`Using the candidate profile and target role, generate ONE interview question optimized to start the interview.

Constraints:
- Make it relevant to the resume and role.
- Prefer a behavioral warm-up unless the resume shows very strong hands-on indicators, then a light technical warm-up is fine.
- Set difficulty as 'easy'|'medium'|'hard'.
Return ONLY valid JSON:
{
  "question": "one clear question",
  "type": "behavioral|technical",
  "difficulty": "easy|medium|hard",
  "rationale": "why this question as opener"
}

Role: %s
Candidate Profile:
%s`, e.role, e.profile)

	text, err := e.gateway.Generate(ctx, llm.Request{
		System:      "You are a senior interviewer crafting precise, tailored questions.",
		Prompt:      prompt,
		Temperature: generationTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate first question: %w", err)
	}

	var question Question
	if err := llm.DecodeJSON(text, &question); err != nil {
		return nil, err
	}
	if question.Question == "" {
		return nil, fmt.Errorf("%w: missing question field", llm.ErrMalformedOutput)
	}

	e.appendQuestion(question)
	return &question, nil
}

// RephraseCurrentQuestion restates the last question in simpler language
// without mutating the turn sequence. Falls back to the original wording
// when the model omits the rephrased field.
func (e *Engine) RephraseCurrentQuestion(ctx context.Context) (string, error) {
	if len(e.turns) == 0 {
		return "", ErrNoActiveQuestion
	}
	lastQuestion := e.turns[len(e.turns)-1].Question

	prompt := fmt.Sprintf(`Rewrite the following interview question in simpler, clearer terms for the same role.
Keep the same intent and difficulty, but use plain language and be concise (1 sentence).
Return ONLY JSON: { "rephrased_question": "..." }

Question: %s
Role: %s`, lastQuestion, e.role)

	text, err := e.gateway.Generate(ctx, llm.Request{
		System:      "You are a helpful interviewer. You can rephrase questions more simply without giving away answers.",
		Prompt:      prompt,
		Temperature: generationTemperature,
		JSON:        true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to rephrase question: %w", err)
	}

	var result struct {
		RephrasedQuestion string `json:"rephrased_question"`
	}
	if err := llm.DecodeJSON(text, &result); err != nil {
		return "", err
	}
	if result.RephrasedQuestion == "" {
		return lastQuestion, nil
	}
	return result.RephrasedQuestion, nil
}

// HintForCurrentQuestion returns one non-spoiler guidance sentence for the
// current question. Side-effect free.
func (e *Engine) HintForCurrentQuestion(ctx context.Context) (string, error) {
	if len(e.turns) == 0 {
		return "", ErrNoActiveQuestion
	}
	lastQuestion := e.turns[len(e.turns)-1].Question

	prompt := fmt.Sprintf(`Given the role, resume, and the current question, provide 1 brief hint to guide the candidate.
Rules:
- Do NOT reveal the full answer
- Keep it short (max 1 sentence)
- Focus on guiding their thinking (e.g., what concepts to consider)
Return ONLY JSON: { "hint": "..." }

Role: %s
Resume: %s
Question: %s`, e.role, e.profile, lastQuestion)

	text, err := e.gateway.Generate(ctx, llm.Request{
		System:      "You are a coaching interviewer: offer subtle, guiding hints without revealing full answers.",
		Prompt:      prompt,
		Temperature: generationTemperature,
		JSON:        true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate hint: %w", err)
	}

	var result struct {
		Hint string `json:"hint"`
	}
	if err := llm.DecodeJSON(text, &result); err != nil {
		return "", err
	}
	if result.Hint == "" {
		return defaultHintFallback, nil
	}
	return result.Hint, nil
}

// EvaluateAndAdvance scores the answer to the current question and, when
// generateNext is true, appends the next adaptive question. The answer and
// evaluation are attached to the last turn exactly once; calling this again
// on an answered turn fails with ErrQuestionAnswered.
func (e *Engine) EvaluateAndAdvance(ctx context.Context, answer string, generateNext bool) (*TurnResult, error) {
	if len(e.turns) == 0 {
		return nil, ErrNoActiveQuestion
	}
	last := &e.turns[len(e.turns)-1]
	if last.Answered() {
		return nil, ErrQuestionAnswered
	}

	text, err := e.gateway.Generate(ctx, llm.Request{
		System:      evaluationSystem(generateNext),
		Prompt:      e.evaluationPrompt(last, answer, generateNext),
		Temperature: generationTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate answer: %w", err)
	}

	var result TurnResult
	if err := llm.DecodeJSON(text, &result); err != nil {
		return nil, err
	}

	last.Answer = answer
	evaluation := result.Evaluation
	last.Evaluation = &evaluation

	if generateNext {
		if result.NextQuestion == nil || result.NextQuestion.Question == "" {
			return nil, fmt.Errorf("%w: missing next_question field", llm.ErrMalformedOutput)
		}
		// The adaptation table is deterministic; the model's label is
		// clamped to it rather than trusted.
		result.NextQuestion.Difficulty = nextDifficulty(last.Difficulty, result.Evaluation.Score)
		e.appendQuestion(*result.NextQuestion)
	} else {
		result.NextQuestion = nil
	}

	return &result, nil
}

func evaluationSystem(generateNext bool) string {
	if generateNext {
		return "You are a senior interviewer. Evaluate answers, adapt the next question, and be conversational and supportive without revealing full solutions."
	}
	return "You are a senior interviewer. Evaluate answers precisely and provide a brief coaching tip, without revealing full solutions."
}

func (e *Engine) evaluationPrompt(last *Turn, answer string, generateNext bool) string {
	header := fmt.Sprintf(`Context:
Role: %s
Resume: %s

Previous Interview History:
%s

Latest Question: %s
Latest Answer: %s

`, e.role, e.profile, e.historyString(), last.Question, answer)

	if !generateNext {
		return header + `Task:
Evaluate the latest answer with a brief JSON:
{
  "evaluation": {
    "score": 7,
    "strengths": ["..."],
    "improvements": ["..."],
    "reason": "..."
  },
  "coach_tip": "one sentence helpful but non-spoiler guidance"
}`
	}

	return header + `Task:
1) Briefly evaluate the latest answer (score 0-10, strengths, improvements, reason).
2) Generate ONE next question tailored to the role and resume.
3) Adapt difficulty:
   - score >= 8 -> increase difficulty
   - score 5-7 -> keep difficulty
   - score <= 4 -> decrease difficulty

Also produce a brief coaching tip (one sentence) that helps the candidate improve next time, WITHOUT giving away full answers.

Return ONLY valid JSON:
{
  "evaluation": {
    "score": 7,
    "strengths": ["..."],
    "improvements": ["..."],
    "reason": "..."
  },
  "coach_tip": "one sentence helpful but non-spoiler guidance",
  "next_question": {
    "question": "one clear question",
    "type": "behavioral|technical",
    "difficulty": "easy|medium|hard",
    "rationale": "why this next"
  }
}`
}

func (e *Engine) appendQuestion(q Question) {
	e.turns = append(e.turns, Turn{
		Question:   q.Question,
		Type:       q.Type,
		Difficulty: q.Difficulty,
	})
}

func (e *Engine) historyString() string {
	var b strings.Builder
	for i, turn := range e.turns {
		answer := turn.Answer
		if answer == "" {
			answer = "N/A"
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, turn.Question, i+1, answer)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
