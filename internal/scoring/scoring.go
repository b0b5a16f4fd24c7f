package scoring

import (
	"math"

	"abhinav/interview-coach/internal/dsa"
	"abhinav/interview-coach/internal/interview"
)

// Recommendation labels shared by behavioral and combined reports.
const (
	StrongHire = "Strong Hire"
	Hire       = "Hire"
	Maybe      = "Maybe"
	NoHire     = "No Hire"
)

// CombinedReport merges the two interview reports into one overall hiring
// recommendation. It is derived on demand, never stored independently of
// its sources.
type CombinedReport struct {
	BehavioralInterview   *interview.Feedback `json:"behavioral_interview"`
	DSAInterview          *dsa.Report         `json:"dsa_interview,omitempty"`
	OverallRecommendation string              `json:"overall_recommendation"`
	OverallScore          int                 `json:"overall_score"` // 0-100
}

// Combine builds the combined report. Behavioral sub-scores are on a 0-10
// scale and get stretched to 0-100 here. The feedback carries the only
// numeric overall score, so the weighted blend applies only when a DSA score
// is present (the rule-based DSA report carries none today).
func Combine(behavioral *interview.Feedback, dsaReport *dsa.Report) *CombinedReport {
	NormalizeScores(behavioral)

	return &CombinedReport{
		BehavioralInterview:   behavioral,
		DSAInterview:          dsaReport,
		OverallRecommendation: DetermineOverallRecommendation(behavioral, dsaReport),
		OverallScore:          CalculateOverallScore(behavioral.OverallScore*10, 0),
	}
}

// CalculateOverallScore blends behavioral and DSA scores 70/30. Without a
// DSA score the behavioral score passes through unchanged.
func CalculateOverallScore(behavioralScore, dsaScore float64) int {
	if dsaScore > 0 {
		return int(math.Round(behavioralScore*0.7 + dsaScore*0.3))
	}
	return int(math.Round(behavioralScore))
}

// ScoreToRating converts a 0-100 score to a dashboard rating label.
func ScoreToRating(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Average"
	default:
		return "Below Average"
	}
}

// NormalizeScores clamps every numeric sub-score of the feedback into
// [0, 10] in place. Applied to each behavioral feedback object before it is
// persisted or returned, guarding against out-of-range model output.
// Idempotent.
func NormalizeScores(feedback *interview.Feedback) {
	if feedback == nil {
		return
	}
	feedback.OverallScore = clamp(feedback.OverallScore)
	feedback.TechnicalProficiency.Score = clamp(feedback.TechnicalProficiency.Score)
	feedback.CommunicationSkills.Score = clamp(feedback.CommunicationSkills.Score)
	feedback.ProblemSolving.Score = clamp(feedback.ProblemSolving.Score)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

// DetermineOverallRecommendation combines the behavioral recommendation
// with the DSA hire recommendation via the fixed label table.
func DetermineOverallRecommendation(behavioral *interview.Feedback, dsaReport *dsa.Report) string {
	behavioralRec := NoHire
	if behavioral != nil && behavioral.Recommendation != "" {
		behavioralRec = behavioral.Recommendation
	}

	dsaRec := NoHire
	if dsaReport != nil {
		switch dsaReport.HireRecommendation {
		case dsa.HireYes:
			dsaRec = Hire
		case dsa.HireMaybe:
			dsaRec = Maybe
		}
	}

	switch {
	case behavioralRec == Hire && dsaRec == Hire:
		return StrongHire
	case behavioralRec == Hire || dsaRec == Hire:
		if behavioralRec == NoHire || dsaRec == NoHire {
			return Maybe
		}
		return Hire
	case behavioralRec == Maybe || dsaRec == Maybe:
		return Maybe
	default:
		return NoHire
	}
}
