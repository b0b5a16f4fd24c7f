package models

import (
	"time"

	"github.com/google/uuid"
)

// DSASessionRecord stores one serialized pseudocode-review session. The
// engine only ever sees the deserialized session; this row is the durable
// form the session store reads and writes.
type DSASessionRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Data      string    `gorm:"type:jsonb;not null" json:"-"`
	EndedBy   string    `gorm:"type:text" json:"ended_by,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (DSASessionRecord) TableName() string {
	return "dsa_sessions"
}
