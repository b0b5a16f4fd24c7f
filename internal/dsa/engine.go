package dsa

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"abhinav/interview-coach/internal/llm"
)

const (
	dialogueTemperature = 0.7

	interviewerSystem = "You are a senior technical interviewer focusing on algorithms and data structures."

	giveUpClosing    = "Understood. We'll wrap up here. Thank you for your time and effort today."
	confidentClosing = "Great! I'm glad things are clearer now. Thank you for working through this with me."
	completedClosing = "Excellent! Thank you for completing the pseudocode analysis. We'll wrap up here."
)

// Engine drives the pseudocode-review dialogue: a hidden analysis computed
// once at session start, then a Socratic follow-up loop with deterministic
// exit detection layered under the interviewer persona.
type Engine struct {
	gateway    llm.Gateway
	store      SessionStore
	classifier ReplyClassifier
}

func NewEngine(gateway llm.Gateway, store SessionStore) *Engine {
	return &Engine{
		gateway:    gateway,
		store:      store,
		classifier: NewPhraseClassifier(),
	}
}

// OpenResult is what opening a session returns to the handler.
type OpenResult struct {
	SessionID           uuid.UUID `json:"session_id"`
	InterviewerQuestion string    `json:"interviewer_question"`
	IsClosing           bool      `json:"is_closing"`
}

// TurnOutcome is one continuation step: the next interviewer utterance (or
// closing line), whether the session closed, and why.
type TurnOutcome struct {
	InterviewerQuestion string `json:"interviewer_question"`
	IsClosing           bool   `json:"is_closing"`
	EndedBy             string `json:"ended_by,omitempty"`
}

// OpenSession computes the hidden analysis (best-effort: a failed model
// call degrades to an unclear analysis, the interview proceeds regardless),
// issues the opening interviewer follow-up and persists the new session.
func (e *Engine) OpenSession(ctx context.Context, pseudocode string, question *Question, role, difficulty string) (*OpenResult, error) {
	analysis := e.analyzePseudocode(ctx, pseudocode, question)

	session := &Session{
		ID:         uuid.New(),
		Role:       role,
		Difficulty: difficulty,
		Question:   *question,
		Pseudocode: pseudocode,
		Analysis:   analysis,
	}

	opening := e.interviewerPrompt(pseudocode, question)
	response, err := e.gateway.Generate(ctx, llm.Request{
		System:      interviewerSystem,
		Prompt:      opening,
		Temperature: dialogueTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open dsa session: %w", err)
	}

	session.Messages = []llm.Message{
		{Role: llm.RoleUser, Content: opening},
		{Role: llm.RoleModel, Content: response},
	}
	session.Exchanges = []Exchange{{Interviewer: response}}

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save dsa session: %w", err)
	}

	return &OpenResult{
		SessionID:           session.ID,
		InterviewerQuestion: response,
		IsClosing:           IsInterviewerClosing(response),
	}, nil
}

// ContinueSession processes one candidate reply. Give-up, confidence and
// completion phrases short-circuit to a fixed closing line, in that
// priority, without a model call; otherwise the full dialogue is replayed
// to the model and the new interviewer utterance is checked for closure.
func (e *Engine) ContinueSession(ctx context.Context, sessionID uuid.UUID, candidateReply string) (*TurnOutcome, error) {
	session, err := e.store.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Closed() {
		return nil, ErrSessionClosed
	}

	switch e.classifier.Classify(candidateReply) {
	case ReplyGiveUp:
		return e.closeSession(ctx, session, candidateReply, giveUpClosing, EndedByCandidateGiveUp)
	case ReplyConfident:
		return e.closeSession(ctx, session, candidateReply, confidentClosing, EndedByCandidateConfident)
	case ReplyCompleted:
		return e.closeSession(ctx, session, candidateReply, completedClosing, EndedByCandidateCompleted)
	}

	session.Messages = append(session.Messages, llm.Message{Role: llm.RoleUser, Content: candidateReply})
	session.Exchanges[len(session.Exchanges)-1].Candidate = candidateReply

	response, err := e.gateway.Generate(ctx, llm.Request{
		System:      interviewerSystem,
		Messages:    session.Messages,
		Temperature: dialogueTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to continue dsa session: %w", err)
	}

	session.Messages = append(session.Messages, llm.Message{Role: llm.RoleModel, Content: response})
	session.Exchanges = append(session.Exchanges, Exchange{Interviewer: response})

	isClosing := IsInterviewerClosing(response)
	if isClosing {
		session.EndedBy = EndedByInterviewer
	}

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save dsa session: %w", err)
	}

	return &TurnOutcome{
		InterviewerQuestion: response,
		IsClosing:           isClosing,
		EndedBy:             session.EndedBy,
	}, nil
}

// Report loads a session and synthesizes its deterministic report.
func (e *Engine) Report(ctx context.Context, sessionID uuid.UUID) (*Report, error) {
	session, err := e.store.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return SynthesizeReport(session), nil
}

func (e *Engine) closeSession(ctx context.Context, session *Session, candidateReply, closing, endedBy string) (*TurnOutcome, error) {
	session.Exchanges[len(session.Exchanges)-1].Candidate = candidateReply
	session.Exchanges = append(session.Exchanges, Exchange{Interviewer: closing})
	session.EndedBy = endedBy

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save dsa session: %w", err)
	}

	return &TurnOutcome{
		InterviewerQuestion: closing,
		IsClosing:           true,
		EndedBy:             endedBy,
	}, nil
}

// analyzePseudocode computes the hidden analysis. Failures substitute an
// unclear analysis rather than failing the whole operation.
func (e *Engine) analyzePseudocode(ctx context.Context, pseudocode string, question *Question) Analysis {
	questionJSON, _ := json.Marshal(question)

	prompt := fmt.Sprintf(`You are analyzing a candidate's pseudocode for the following problem. Produce STRICT JSON only.

Question JSON:
%s

Problem Statement:
%s

Candidate Pseudocode:
%s

Return ONLY valid JSON with keys:
{
  "approach_summary": "string",
  "time_complexity": "string",
  "space_complexity": "string",
  "classification": "brute-force|optimized|unclear",
  "potential_improvements": ["string", "string"],
  "edge_cases": ["string", "string"]
}`, questionJSON, question.ProblemStatement, pseudocode)

	text, err := e.gateway.Generate(ctx, llm.Request{
		System:      "You are a precise algorithm evaluator. Output only valid JSON.",
		Prompt:      prompt,
		Temperature: dialogueTemperature,
		JSON:        true,
	})
	if err == nil {
		var analysis Analysis
		if decodeErr := llm.DecodeJSON(text, &analysis); decodeErr == nil {
			return analysis
		}
		err = fmt.Errorf("unparsable analysis response")
	}

	log.Printf("⚠️ Hidden analysis failed, continuing with unclear analysis: %v\n", err)
	return Analysis{
		Classification:        ClassificationUnclear,
		PotentialImprovements: []string{},
		EdgeCases:             []string{},
	}
}

func (e *Engine) interviewerPrompt(pseudocode string, question *Question) string {
	questionJSON, _ := json.Marshal(question)

	return fmt.Sprintf(`You are a DSA interviewer evaluating a candidate's pseudocode for the following problem.

Full Question (from generator, JSON):
%s

Problem Statement (reference):
%s

Candidate's Pseudocode:
%s

Your tasks:
1) First turn (no candidate reply yet): Ask ONE concise follow-up question. Do NOT reveal any analysis.
2) Subsequent turns (after the candidate replies): Start with a brief, specific acknowledgment reflecting their last answer (1-2 short sentences), THEN ask exactly ONE follow-up question that ties directly to their response. Do NOT reveal any hidden analysis.
3) Continue until you feel the candidate has fully addressed concerns, then end with a supportive closing statement.
Output constraints: On each turn, output ONLY one compact message that is either (a) acknowledgment + one follow-up question, or (b) a closing statement. No extra commentary, no analysis.`,
		questionJSON, question.ProblemStatement, pseudocode)
}
