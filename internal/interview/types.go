package interview

// Question is one generated interview question. Type is "behavioral" or
// "technical"; Difficulty is "easy", "medium" or "hard".
type Question struct {
	Question   string `json:"question"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
	Rationale  string `json:"rationale,omitempty"`
}

// Evaluation is the scored assessment of a single answer.
type Evaluation struct {
	Score        float64  `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Reason       string   `json:"reason"`
}

// Turn is one question/answer unit. The answer and evaluation are attached
// exactly once when the candidate responds; only the last turn of an
// interview may lack them.
type Turn struct {
	Question   string      `json:"question"`
	Type       string      `json:"type"`
	Difficulty string      `json:"difficulty"`
	Answer     string      `json:"answer,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Answered reports whether the turn already carries an evaluation.
func (t *Turn) Answered() bool {
	return t.Evaluation != nil
}

// TurnResult is what evaluating an answer produces: the evaluation itself,
// a short coaching tip, and the next question when one was requested.
type TurnResult struct {
	Evaluation   Evaluation `json:"evaluation"`
	CoachTip     string     `json:"coach_tip,omitempty"`
	NextQuestion *Question  `json:"next_question,omitempty"`
}

// CategoryScore is one named sub-score of the final feedback.
type CategoryScore struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// Feedback is the final interview summary. All nine fields are required;
// when the model fails to produce them a deterministic fallback is built
// from the recorded per-turn scores instead.
type Feedback struct {
	OverallScore         float64       `json:"overall_score"`
	OverallAssessment    string        `json:"overall_assessment"`
	Strengths            []string      `json:"strengths"`
	AreasForImprovement  []string      `json:"areas_for_improvement"`
	TechnicalProficiency CategoryScore `json:"technical_proficiency"`
	CommunicationSkills  CategoryScore `json:"communication_skills"`
	ProblemSolving       CategoryScore `json:"problem_solving"`
	KeyFocusAreas        []string      `json:"key_focus_areas"`
	Recommendation       string        `json:"recommendation"`
}

// State is the serializable snapshot of an engine. It round-trips role,
// profile and the full turn sequence losslessly so the session store can
// reconstruct the engine on the next request.
type State struct {
	Role           string `json:"role"`
	Profile        string `json:"profile"`
	Turns          []Turn `json:"turns"`
	TotalQuestions int    `json:"total_questions"`
}
