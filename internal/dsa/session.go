package dsa

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"abhinav/interview-coach/internal/llm"
)

var (
	// ErrSessionNotFound marks an unknown session identifier.
	ErrSessionNotFound = errors.New("dsa session not found")
	// ErrSessionClosed means a reply was submitted after the session
	// already terminated.
	ErrSessionClosed = errors.New("dsa session already closed")
)

// Termination reasons. Empty while the session is open; immutable once set.
const (
	EndedByCandidateGiveUp    = "candidate_giveup"
	EndedByCandidateConfident = "candidate_confident"
	EndedByCandidateCompleted = "candidate_completed"
	EndedByInterviewer        = "interviewer"
)

// Approach classifications from the hidden analysis.
const (
	ClassificationBruteForce = "brute-force"
	ClassificationOptimized  = "optimized"
	ClassificationUnclear    = "unclear"
)

// Analysis is the hidden algorithm-quality assessment computed once when
// the session opens. It is never shown to the candidate; only the report
// synthesizer reads it.
type Analysis struct {
	ApproachSummary       string   `json:"approach_summary"`
	TimeComplexity        string   `json:"time_complexity"`
	SpaceComplexity       string   `json:"space_complexity"`
	Classification        string   `json:"classification"`
	PotentialImprovements []string `json:"potential_improvements"`
	EdgeCases             []string `json:"edge_cases"`
}

// Exchange is one interviewer utterance with the candidate's eventual reply.
type Exchange struct {
	Interviewer string `json:"interviewer"`
	Candidate   string `json:"candidate,omitempty"`
}

// Session is one pseudocode-review dialogue. It is serialized as a whole by
// the session store; the engine never keeps sessions in process memory.
type Session struct {
	ID         uuid.UUID     `json:"id"`
	Role       string        `json:"role"`
	Difficulty string        `json:"difficulty"`
	Question   Question      `json:"question"`
	Pseudocode string        `json:"pseudocode"`
	Analysis   Analysis      `json:"analysis"`
	Exchanges  []Exchange    `json:"exchanges"`
	Messages   []llm.Message `json:"messages"`
	EndedBy    string        `json:"ended_by,omitempty"`
}

// Closed reports whether the session accepts no further replies.
func (s *Session) Closed() bool {
	return s.EndedBy != ""
}

// SessionStore persists sessions between requests, keyed by session id.
// Find returns ErrSessionNotFound for unknown identifiers.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Find(ctx context.Context, id uuid.UUID) (*Session, error)
}
