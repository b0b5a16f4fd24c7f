package dsa

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abhinav/interview-coach/internal/llm"
)

type fakeGateway struct {
	responses []string
	errs      []error
	requests  []llm.Request
	calls     int
}

func (f *fakeGateway) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("fakeGateway: no response configured")
}

func (f *fakeGateway) GenerateWithRetry(ctx context.Context, req llm.Request, maxRetries int) (string, error) {
	return f.Generate(ctx, req)
}

func (f *fakeGateway) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 768), nil
}

// memoryStore keeps sessions in a map, mirroring the database store's
// contract.
type memoryStore struct {
	sessions map[uuid.UUID]*Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[uuid.UUID]*Session)}
}

func (m *memoryStore) Save(ctx context.Context, session *Session) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *memoryStore) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

const analysisJSON = `{
  "approach_summary": "Hash map single pass",
  "time_complexity": "O(n)",
  "space_complexity": "O(n)",
  "classification": "optimized",
  "potential_improvements": ["early exit"],
  "edge_cases": ["empty array"]
}`

func testQuestion() *Question {
	return &Question{
		QuestionTitle:    "Two Sum",
		ProblemStatement: "Given an array and a target, find indices of two numbers summing to target.",
		Difficulty:       "medium",
	}
}

func TestOpenSession_PersistsAnalysisAndDialogue(t *testing.T) {
	gw := &fakeGateway{responses: []string{
		analysisJSON,
		"Why did you choose a hash map over sorting?",
	}}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	result, err := e.OpenSession(context.Background(), "use a hash map, one pass", testQuestion(), "backend", "medium")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.SessionID)
	assert.Equal(t, "Why did you choose a hash map over sorting?", result.InterviewerQuestion)
	assert.False(t, result.IsClosing)

	session, err := store.Find(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, ClassificationOptimized, session.Analysis.Classification)
	assert.Len(t, session.Messages, 2)
	require.Len(t, session.Exchanges, 1)
	assert.Empty(t, session.Exchanges[0].Candidate)
	assert.False(t, session.Closed())
}

func TestOpenSession_AnalysisFailureDegradesToUnclear(t *testing.T) {
	gw := &fakeGateway{
		responses: []string{"", "What is the time complexity of your approach?"},
		errs:      []error{errors.New("model unavailable"), nil},
	}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	result, err := e.OpenSession(context.Background(), "some pseudocode here", testQuestion(), "backend", "medium")
	require.NoError(t, err)

	session, err := store.Find(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, ClassificationUnclear, session.Analysis.Classification)
}

func TestContinueSession_UnknownSession(t *testing.T) {
	e := NewEngine(&fakeGateway{}, newMemoryStore())
	_, err := e.ContinueSession(context.Background(), uuid.New(), "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestContinueSession_NormalTurn(t *testing.T) {
	gw := &fakeGateway{responses: []string{
		analysisJSON,
		"Why a hash map?",
		"Good. How does it behave with duplicate values?",
	}}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	opened, err := e.OpenSession(context.Background(), "use a hash map, one pass", testQuestion(), "backend", "medium")
	require.NoError(t, err)

	outcome, err := e.ContinueSession(context.Background(), opened.SessionID, "Constant-time lookups beat sorting.")
	require.NoError(t, err)
	assert.False(t, outcome.IsClosing)
	assert.Empty(t, outcome.EndedBy)

	session, err := store.Find(context.Background(), opened.SessionID)
	require.NoError(t, err)
	require.Len(t, session.Exchanges, 2)
	assert.Equal(t, "Constant-time lookups beat sorting.", session.Exchanges[0].Candidate)
	assert.Len(t, session.Messages, 4) // full dialogue replayed to the model
}

func TestContinueSession_GiveUpShortCircuits(t *testing.T) {
	gw := &fakeGateway{responses: []string{analysisJSON, "Why a hash map?"}}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	opened, err := e.OpenSession(context.Background(), "use a hash map, one pass", testQuestion(), "backend", "medium")
	require.NoError(t, err)
	modelCalls := gw.calls

	outcome, err := e.ContinueSession(context.Background(), opened.SessionID, "I give up")
	require.NoError(t, err)
	assert.True(t, outcome.IsClosing)
	assert.Equal(t, EndedByCandidateGiveUp, outcome.EndedBy)
	assert.Equal(t, giveUpClosing, outcome.InterviewerQuestion)
	assert.Equal(t, modelCalls, gw.calls, "closing must not call the model")

	session, err := store.Find(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.True(t, session.Closed())
}

func TestContinueSession_ConfidencePriorityBelowGiveUp(t *testing.T) {
	gw := &fakeGateway{responses: []string{analysisJSON, "Why a hash map?"}}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	opened, err := e.OpenSession(context.Background(), "use a hash map, one pass", testQuestion(), "backend", "medium")
	require.NoError(t, err)

	outcome, err := e.ContinueSession(context.Background(), opened.SessionID, "I got it now")
	require.NoError(t, err)
	assert.Equal(t, EndedByCandidateConfident, outcome.EndedBy)
	assert.Equal(t, confidentClosing, outcome.InterviewerQuestion)
}

func TestContinueSession_ClosedSessionRejected(t *testing.T) {
	gw := &fakeGateway{responses: []string{analysisJSON, "Why a hash map?"}}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	opened, err := e.OpenSession(context.Background(), "use a hash map, one pass", testQuestion(), "backend", "medium")
	require.NoError(t, err)
	_, err = e.ContinueSession(context.Background(), opened.SessionID, "i am done")
	require.NoError(t, err)

	_, err = e.ContinueSession(context.Background(), opened.SessionID, "one more thing")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestContinueSession_InterviewerClosingEndsSession(t *testing.T) {
	gw := &fakeGateway{responses: []string{
		analysisJSON,
		"Why a hash map?",
		"Great work today, thank you. We're done here.",
	}}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	opened, err := e.OpenSession(context.Background(), "use a hash map, one pass", testQuestion(), "backend", "medium")
	require.NoError(t, err)

	outcome, err := e.ContinueSession(context.Background(), opened.SessionID, "That covers all edge cases I believe.")
	require.NoError(t, err)
	assert.True(t, outcome.IsClosing)
	assert.Equal(t, EndedByInterviewer, outcome.EndedBy)
}

func TestReport_FromStoredSession(t *testing.T) {
	gw := &fakeGateway{responses: []string{analysisJSON, "Why a hash map?"}}
	store := newMemoryStore()
	e := NewEngine(gw, store)

	opened, err := e.OpenSession(context.Background(), "use a hash map, one pass", testQuestion(), "backend", "medium")
	require.NoError(t, err)

	report, err := e.Report(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", report.QuestionTitle)
	assert.Equal(t, "backend", report.Role)
	assert.Equal(t, HireYes, report.HireRecommendation)
}
