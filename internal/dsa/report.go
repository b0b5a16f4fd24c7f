package dsa

import "strings"

// Report is the deterministic session summary. It is derived entirely from
// the stored hidden analysis and conversation metadata; no model call.
type Report struct {
	Role                  string   `json:"role"`
	Difficulty            string   `json:"difficulty"`
	QuestionTitle         string   `json:"question_title"`
	TimeComplexity        string   `json:"time_complexity"`
	SpaceComplexity       string   `json:"space_complexity"`
	Classification        string   `json:"classification"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	SuggestedImprovements []string `json:"suggested_improvements"`
	NotedEdgeCases        []string `json:"noted_edge_cases"`
	HireRecommendation    string   `json:"hire_recommendation"`
	ExchangesCount        int      `json:"exchanges_count"`
}

// Hire recommendation labels.
const (
	HireYes   = "yes"
	HireMaybe = "maybe"
	HireNo    = "no"
)

const complexityStrength = "Reasonable time complexity discussion"

// SynthesizeReport builds the report from session state via fixed rules.
// Pure and total over any well-formed session: it never fails.
func SynthesizeReport(session *Session) *Report {
	classification := strings.TrimSpace(session.Analysis.Classification)
	if classification == "" {
		classification = ClassificationUnclear
	}
	approach := strings.TrimSpace(session.Analysis.ApproachSummary)
	timeC := strings.TrimSpace(session.Analysis.TimeComplexity)
	spaceC := strings.TrimSpace(session.Analysis.SpaceComplexity)
	pseudocode := strings.TrimSpace(session.Pseudocode)

	var strengths, weaknesses []string

	if approach != "" {
		strengths = append(strengths, "Clear high-level approach described")
	} else {
		weaknesses = append(weaknesses, "No clear approach provided")
	}

	switch classification {
	case ClassificationOptimized:
		strengths = append(strengths, "Chose an optimized approach for the problem class")
	case ClassificationBruteForce:
		weaknesses = append(weaknesses, "Relied on brute-force; missed optimization opportunities")
	case ClassificationUnclear:
		weaknesses = append(weaknesses, "Overall approach is unclear")
	}

	if strings.Contains(timeC, "O(") {
		strengths = append(strengths, complexityStrength)
	} else {
		weaknesses = append(weaknesses, "Missing or unclear time complexity")
	}
	if !strings.Contains(spaceC, "O(") {
		weaknesses = append(weaknesses, "Missing or unclear space complexity")
	}
	if len(session.Analysis.EdgeCases) == 0 {
		weaknesses = append(weaknesses, "Edge cases not fully considered")
	}

	gaveUp := session.EndedBy == EndedByCandidateGiveUp
	for _, exchange := range session.Exchanges {
		if exchange.Candidate != "" && containsAny(strings.ToLower(exchange.Candidate), giveUpPhrases) {
			gaveUp = true
			break
		}
	}

	trivialPseudocode := len(pseudocode) < 10

	discussedComplexity := false
	for _, s := range strengths {
		if s == complexityStrength {
			discussedComplexity = true
			break
		}
	}

	var hire string
	switch {
	case gaveUp || trivialPseudocode || (classification == ClassificationUnclear && approach == ""):
		hire = HireNo
	case classification == ClassificationOptimized && discussedComplexity && len(weaknesses) <= 1:
		hire = HireYes
	case (classification == ClassificationOptimized || classification == ClassificationUnclear) && len(strengths) > 0:
		hire = HireMaybe
	default:
		hire = HireNo
	}

	return &Report{
		Role:                  session.Role,
		Difficulty:            session.Difficulty,
		QuestionTitle:         session.Question.QuestionTitle,
		TimeComplexity:        timeC,
		SpaceComplexity:       spaceC,
		Classification:        classification,
		Strengths:             strengths,
		Weaknesses:            weaknesses,
		SuggestedImprovements: session.Analysis.PotentialImprovements,
		NotedEdgeCases:        session.Analysis.EdgeCases,
		HireRecommendation:    hire,
		ExchangesCount:        len(session.Exchanges),
	}
}
