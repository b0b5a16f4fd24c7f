package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"abhinav/interview-coach/internal/dsa"
	"abhinav/interview-coach/internal/interview"
	"abhinav/interview-coach/internal/llm"
	"abhinav/interview-coach/internal/models"
	"abhinav/interview-coach/internal/repositories"
	"abhinav/interview-coach/internal/scoring"
)

// FinalizerService assembles the combined report for a candidate: behavioral
// feedback, DSA report when a session exists, and the overall score and
// recommendation derived from both. It runs inside the background worker.
type FinalizerService interface {
	FinalizeReport(ctx context.Context, reportID uuid.UUID) error
}

type finalizerService struct {
	reportRepo   repositories.ReportRepository
	sessionStore dsa.SessionStore
	gateway      llm.Gateway
}

func NewFinalizerService(
	reportRepo repositories.ReportRepository,
	sessionStore dsa.SessionStore,
	gateway llm.Gateway,
) FinalizerService {
	return &finalizerService{
		reportRepo:   reportRepo,
		sessionStore: sessionStore,
		gateway:      gateway,
	}
}

func (f *finalizerService) FinalizeReport(ctx context.Context, reportID uuid.UUID) error {
	log.Printf("🚀 Finalizing report %s\n", reportID)

	report, err := f.reportRepo.FindByID(reportID)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	if err := f.reportRepo.UpdateStatus(reportID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to mark report processing: %w", err)
	}

	behavioral, err := f.behavioralFeedback(ctx, report)
	if err != nil {
		f.markFailed(reportID, err)
		return err
	}

	dsaReport, err := f.dsaReport(ctx, report)
	if err != nil {
		f.markFailed(reportID, err)
		return err
	}

	combined := scoring.Combine(behavioral, dsaReport)

	combinedJSON, err := json.Marshal(combined)
	if err != nil {
		f.markFailed(reportID, err)
		return fmt.Errorf("failed to serialize combined report: %w", err)
	}
	behavioralJSON, err := json.Marshal(behavioral)
	if err != nil {
		f.markFailed(reportID, err)
		return fmt.Errorf("failed to serialize behavioral report: %w", err)
	}

	report.BehavioralReport = string(behavioralJSON)
	if dsaReport != nil {
		dsaJSON, err := json.Marshal(dsaReport)
		if err != nil {
			f.markFailed(reportID, err)
			return fmt.Errorf("failed to serialize dsa report: %w", err)
		}
		report.DSAReport = string(dsaJSON)
	}

	overallScore := combined.OverallScore
	overallRating := scoring.ScoreToRating(overallScore)

	report.CombinedReport = string(combinedJSON)
	report.OverallScore = &overallScore
	report.OverallRating = &overallRating
	report.Recommendation = &combined.OverallRecommendation
	report.Status = models.StatusCompleted
	report.ErrorMessage = nil

	if err := f.reportRepo.Save(report); err != nil {
		return fmt.Errorf("failed to persist combined report: %w", err)
	}

	log.Printf("✅ Report %s finalized (%s, score %d)\n", reportID, combined.OverallRecommendation, overallScore)
	return nil
}

// behavioralFeedback returns the already-generated feedback when the client
// requested it synchronously, otherwise generates it from the stored engine
// state.
func (f *finalizerService) behavioralFeedback(ctx context.Context, report *models.Report) (*interview.Feedback, error) {
	if report.BehavioralReport != "" {
		var feedback interview.Feedback
		if err := json.Unmarshal([]byte(report.BehavioralReport), &feedback); err != nil {
			return nil, fmt.Errorf("failed to parse stored behavioral report: %w", err)
		}
		return &feedback, nil
	}

	if report.BehavioralState == "" {
		return nil, fmt.Errorf("behavioral interview was never started")
	}

	var state interview.State
	if err := json.Unmarshal([]byte(report.BehavioralState), &state); err != nil {
		return nil, fmt.Errorf("failed to parse behavioral state: %w", err)
	}

	engine := interview.Restore(f.gateway, state)
	feedback, err := engine.GenerateFinalFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate behavioral feedback: %w", err)
	}
	return feedback, nil
}

func (f *finalizerService) dsaReport(ctx context.Context, report *models.Report) (*dsa.Report, error) {
	if report.DSASessionID == nil {
		return nil, nil
	}

	session, err := f.sessionStore.Find(ctx, *report.DSASessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dsa session: %w", err)
	}
	return dsa.SynthesizeReport(session), nil
}

func (f *finalizerService) markFailed(reportID uuid.UUID, cause error) {
	if err := f.reportRepo.UpdateError(reportID, cause.Error()); err != nil {
		log.Printf("❌ Failed to record error for report %s: %v\n", reportID, err)
	}
}
