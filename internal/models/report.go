package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	StatusInProgress ReportStatus = "in_progress"
	StatusQueued     ReportStatus = "queued"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

// Report is one candidate's interview record: the uploaded resume text, the
// serialized behavioral engine state, the DSA session linkage and the
// generated report blobs. It is the durable owner of all engine state
// between requests.
type Report struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	CandidateName string       `gorm:"type:text" json:"candidate_name"`
	Role          string       `gorm:"type:text" json:"role"`
	ResumeText    string       `gorm:"type:text" json:"-"`
	Status        ReportStatus `gorm:"not null;default:'in_progress'" json:"status"`

	BehavioralState  string `gorm:"type:jsonb" json:"-"`
	BehavioralReport string `gorm:"type:jsonb" json:"behavioral_report,omitempty"`

	DSASessionID *uuid.UUID `gorm:"type:uuid" json:"dsa_session_id,omitempty"`
	DSAQuestion  string     `gorm:"type:jsonb" json:"dsa_question,omitempty"`
	DSAReport    string     `gorm:"type:jsonb" json:"dsa_report,omitempty"`

	CombinedReport string  `gorm:"type:jsonb" json:"combined_report,omitempty"`
	OverallScore   *int    `json:"overall_score,omitempty"`
	OverallRating  *string `gorm:"type:text" json:"overall_rating,omitempty"`
	Recommendation *string `gorm:"type:text" json:"recommendation,omitempty"`
	ErrorMessage   *string `gorm:"type:text" json:"error_message,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
