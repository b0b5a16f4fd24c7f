package models

// Request/response shapes for the HTTP surface. Wire-level JSON shaping
// lives here so engine types stay transport-free.

type UploadResumeResponse struct {
	ReportID      string `json:"report_id"`
	CandidateName string `json:"candidate_name,omitempty"`
	ResumeExcerpt string `json:"resume_excerpt"`
}

type StartInterviewRequest struct {
	ReportID string `json:"report_id"`
	Role     string `json:"role"`
}

type InterviewMessageRequest struct {
	ReportID       string `json:"report_id"`
	Message        string `json:"message"`
	IsLastQuestion bool   `json:"is_last_question"`
}

type InterviewFeedbackRequest struct {
	ReportID string `json:"report_id"`
}

type DSAQuestionRequest struct {
	ReportID   string `json:"report_id"`
	Role       string `json:"role"`
	Difficulty string `json:"difficulty"`
}

type DSASubmitRequest struct {
	ReportID   string `json:"report_id"`
	Pseudocode string `json:"pseudocode"`
}

type DSAReplyRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type FinalizeResponse struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
}
