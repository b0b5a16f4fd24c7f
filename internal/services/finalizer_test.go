package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abhinav/interview-coach/internal/dsa"
	"abhinav/interview-coach/internal/interview"
	"abhinav/interview-coach/internal/llm"
	"abhinav/interview-coach/internal/models"
	"abhinav/interview-coach/internal/scoring"
)

type fakeReportRepo struct {
	reports map[uuid.UUID]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*models.Report)}
}

func (f *fakeReportRepo) Create(report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

func (f *fakeReportRepo) FindByID(id uuid.UUID) (*models.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, errors.New("report not found")
	}
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) FindAll() ([]models.Report, error) {
	var all []models.Report
	for _, r := range f.reports {
		all = append(all, *r)
	}
	return all, nil
}

func (f *fakeReportRepo) Save(report *models.Report) error {
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

func (f *fakeReportRepo) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	report, ok := f.reports[id]
	if !ok {
		return errors.New("report not found")
	}
	report.Status = status
	return nil
}

func (f *fakeReportRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	report, ok := f.reports[id]
	if !ok {
		return errors.New("report not found")
	}
	report.Status = models.StatusFailed
	report.ErrorMessage = &errorMsg
	return nil
}

func (f *fakeReportRepo) FindPendingJobs(limit int) ([]models.Report, error) {
	var jobs []models.Report
	for _, r := range f.reports {
		if r.Status == models.StatusQueued && len(jobs) < limit {
			jobs = append(jobs, *r)
		}
	}
	return jobs, nil
}

type fakeSessionStore struct {
	sessions map[uuid.UUID]*dsa.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*dsa.Session)}
}

func (f *fakeSessionStore) Save(ctx context.Context, session *dsa.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) Find(ctx context.Context, id uuid.UUID) (*dsa.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, dsa.ErrSessionNotFound
	}
	return session, nil
}

type stubGateway struct {
	response string
	err      error
}

func (s *stubGateway) Generate(ctx context.Context, req llm.Request) (string, error) {
	return s.response, s.err
}

func (s *stubGateway) GenerateWithRetry(ctx context.Context, req llm.Request, maxRetries int) (string, error) {
	return s.response, s.err
}

func (s *stubGateway) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 768), nil
}

func storedFeedback(t *testing.T, score float64, recommendation string) string {
	t.Helper()
	data, err := json.Marshal(&interview.Feedback{
		OverallScore:   score,
		Recommendation: recommendation,
	})
	require.NoError(t, err)
	return string(data)
}

func TestFinalizeReport_WithStoredFeedbackAndDSA(t *testing.T) {
	repo := newFakeReportRepo()
	store := newFakeSessionStore()

	session := &dsa.Session{
		ID:         uuid.New(),
		Role:       "backend",
		Question:   dsa.Question{QuestionTitle: "Two Sum"},
		Pseudocode: "use a hash map for lookups",
		Analysis: dsa.Analysis{
			ApproachSummary: "Hash map single pass",
			TimeComplexity:  "O(n)",
			SpaceComplexity: "O(n)",
			Classification:  dsa.ClassificationOptimized,
			EdgeCases:       []string{"empty array"},
		},
		Exchanges: []dsa.Exchange{{Interviewer: "Why?", Candidate: "Fast lookups."}},
	}
	require.NoError(t, store.Save(context.Background(), session))

	report := &models.Report{
		Status:           models.StatusQueued,
		BehavioralReport: storedFeedback(t, 8, scoring.Hire),
		DSASessionID:     &session.ID,
	}
	require.NoError(t, repo.Create(report))

	finalizer := NewFinalizerService(repo, store, &stubGateway{})
	require.NoError(t, finalizer.FinalizeReport(context.Background(), report.ID))

	final, err := repo.FindByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, final.Status)
	require.NotNil(t, final.OverallScore)
	assert.Equal(t, 80, *final.OverallScore)
	require.NotNil(t, final.OverallRating)
	assert.Equal(t, "Good", *final.OverallRating)
	require.NotNil(t, final.Recommendation)
	assert.Equal(t, scoring.StrongHire, *final.Recommendation)
	assert.NotEmpty(t, final.CombinedReport)
	assert.NotEmpty(t, final.DSAReport)
}

func TestFinalizeReport_GeneratesFeedbackFromState(t *testing.T) {
	repo := newFakeReportRepo()

	state := interview.State{
		Role:    "backend",
		Profile: "resume",
		Turns: []interview.Turn{{
			Question:   "Q?",
			Difficulty: "medium",
			Answer:     "A",
			Evaluation: &interview.Evaluation{Score: 7},
		}},
		TotalQuestions: 5,
	}
	stateJSON, err := json.Marshal(state)
	require.NoError(t, err)

	report := &models.Report{
		Status:          models.StatusQueued,
		BehavioralState: string(stateJSON),
	}
	require.NoError(t, repo.Create(report))

	// Gateway errors force the engine's deterministic fallback feedback.
	finalizer := NewFinalizerService(repo, newFakeSessionStore(), &stubGateway{err: errors.New("model down")})
	require.NoError(t, finalizer.FinalizeReport(context.Background(), report.ID))

	final, err := repo.FindByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, final.Status)
	require.NotNil(t, final.OverallScore)
	assert.Equal(t, 70, *final.OverallScore)
	assert.NotEmpty(t, final.BehavioralReport)
}

func TestFinalizeReport_NeverStartedFails(t *testing.T) {
	repo := newFakeReportRepo()

	report := &models.Report{Status: models.StatusQueued}
	require.NoError(t, repo.Create(report))

	finalizer := NewFinalizerService(repo, newFakeSessionStore(), &stubGateway{})
	err := finalizer.FinalizeReport(context.Background(), report.ID)
	require.Error(t, err)

	final, findErr := repo.FindByID(report.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.StatusFailed, final.Status)
	require.NotNil(t, final.ErrorMessage)
	assert.Contains(t, *final.ErrorMessage, "behavioral interview was never started")
}

func TestFinalizeReport_MissingSessionFails(t *testing.T) {
	repo := newFakeReportRepo()
	missing := uuid.New()

	report := &models.Report{
		Status:           models.StatusQueued,
		BehavioralReport: storedFeedback(t, 8, scoring.Hire),
		DSASessionID:     &missing,
	}
	require.NoError(t, repo.Create(report))

	finalizer := NewFinalizerService(repo, newFakeSessionStore(), &stubGateway{})
	err := finalizer.FinalizeReport(context.Background(), report.ID)
	assert.ErrorIs(t, err, dsa.ErrSessionNotFound)

	final, findErr := repo.FindByID(report.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.StatusFailed, final.Status)
}
