package repositories

import (
	"context"
	"time"

	"langson-benefits/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ApplicationRepository handles application data access
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ApplicationRepository) WithTx(tx *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: tx}
}

// Create creates a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID with relations
func (r *ApplicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Program").
		Preload("User").
		Preload("AssignedOfficer").
		First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ApplicationFilter narrows List queries
type ApplicationFilter struct {
	UserID    *uint
	Status    string
	ProgramID *uint
	Search    string
}

// List lists applications with filters and pagination
func (r *ApplicationRepository) List(ctx context.Context, filter *ApplicationFilter, offset, limit int) ([]*models.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})

	if filter != nil {
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		if filter.Status != "" && filter.Status != "all" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.ProgramID != nil {
			query = query.Where("program_id = ?", *filter.ProgramID)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.Where(
				"LOWER(code) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?) OR LOWER(citizen_id) LIKE LOWER(?)",
				like, like, like,
			)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []*models.Application
	err := query.
		Preload("Program").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error
	return apps, total, err
}

// UpdateStatus applies a conditional status update: the row is only touched
// when its status still equals oldStatus. Returns the number of rows updated
// so the caller can detect a lost race.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uint, oldStatus string, updates map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, oldStatus).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ListPayoutCandidates selects approved applications that have never been
// placed into any payout batch, with optional program and fuzzy location
// filters. The location matches district OR commune OR village OR address,
// case-insensitive substring; any hit is enough.
func (r *ApplicationRepository) ListPayoutCandidates(ctx context.Context, programID *uint, location string) ([]*models.Application, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("status = ?", "approved").
		Where("id NOT IN (?)",
			r.db.Model(&models.PayoutItem{}).Select("application_id"),
		)

	if programID != nil {
		query = query.Where("program_id = ?", *programID)
	}
	if location != "" {
		like := "%" + location + "%"
		query = query.Where(
			"LOWER(district) LIKE LOWER(?) OR LOWER(commune) LIKE LOWER(?) OR LOWER(village) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)",
			like, like, like, like,
		)
	}

	var apps []*models.Application
	err := query.Order("id ASC").Find(&apps).Error
	return apps, err
}

// CountByStatus counts applications in the given statuses (all when empty)
func (r *ApplicationRepository) CountByStatus(ctx context.Context, statuses ...string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// SumSupportAmount sums support_amount over applications in the given status
func (r *ApplicationRepository) SumSupportAmount(ctx context.Context, status string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(support_amount), 0)").
		Scan(&total).Error
	return total, err
}

// ListCreatedBetween returns applications created in [from, to) for reporting
func (r *ApplicationRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Program").
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&apps).Error
	return apps, err
}

// ListStaleUnderReview returns applications sitting in under_review since
// before the cutoff, for reminder notifications. Staff intakes enter
// under_review without a reviewed_at, so the age falls back to submitted_at
// and then created_at.
func (r *ApplicationRepository) ListStaleUnderReview(ctx context.Context, cutoff time.Time) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("status = ? AND COALESCE(reviewed_at, submitted_at, created_at) < ?", "under_review", cutoff).
		Find(&apps).Error
	return apps, err
}

// ApplicationHistoryRepository handles the append-only audit trail
type ApplicationHistoryRepository struct {
	db *gorm.DB
}

// NewApplicationHistoryRepository creates a new history repository
func NewApplicationHistoryRepository(db *gorm.DB) *ApplicationHistoryRepository {
	return &ApplicationHistoryRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ApplicationHistoryRepository) WithTx(tx *gorm.DB) *ApplicationHistoryRepository {
	return &ApplicationHistoryRepository{db: tx}
}

// Create appends a history row
func (r *ApplicationHistoryRepository) Create(ctx context.Context, h *models.ApplicationHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// ListByApplication returns the audit trail, oldest first
func (r *ApplicationHistoryRepository) ListByApplication(ctx context.Context, applicationID uint) ([]*models.ApplicationHistory, error) {
	var history []*models.ApplicationHistory
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&history).Error
	return history, err
}
