package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"abhinav/interview-coach/internal/models"
)

type ReportRepository interface {
	Create(report *models.Report) error
	FindByID(id uuid.UUID) (*models.Report, error)
	FindAll() ([]models.Report, error)
	Save(report *models.Report) error
	UpdateStatus(id uuid.UUID, status models.ReportStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("report not found")
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) FindAll() ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Save persists the full row. Engine state mutations always flow through
// here within the same request that loaded the report.
func (r *reportRepository) Save(report *models.Report) error {
	report.UpdatedAt = time.Now()
	if err := r.db.Save(report).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (r *reportRepository) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}

func (r *reportRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}

func (r *reportRepository) FindPendingJobs(limit int) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return reports, nil
}
