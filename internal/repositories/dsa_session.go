package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abhinav/interview-coach/internal/dsa"
	"abhinav/interview-coach/internal/models"
)

// dsaSessionRepository implements dsa.SessionStore on top of gorm,
// serializing the whole session as one JSON row. Concurrent writers to the
// same session race last-write-wins; single-writer-per-session is the
// caller's responsibility.
type dsaSessionRepository struct {
	db *gorm.DB
}

func NewDSASessionRepository(db *gorm.DB) dsa.SessionStore {
	return &dsaSessionRepository{db: db}
}

func (r *dsaSessionRepository) Save(ctx context.Context, session *dsa.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize dsa session: %w", err)
	}

	record := models.DSASessionRecord{
		ID:        session.ID,
		Data:      string(data),
		EndedBy:   session.EndedBy,
		UpdatedAt: time.Now(),
	}

	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save dsa session: %w", err)
	}
	return nil
}

func (r *dsaSessionRepository) Find(ctx context.Context, id uuid.UUID) (*dsa.Session, error) {
	var record models.DSASessionRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, dsa.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find dsa session: %w", err)
	}

	var session dsa.Session
	if err := json.Unmarshal([]byte(record.Data), &session); err != nil {
		return nil, fmt.Errorf("failed to deserialize dsa session: %w", err)
	}
	return &session, nil
}
