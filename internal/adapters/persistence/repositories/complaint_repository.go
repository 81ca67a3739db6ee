package repositories

import (
	"context"

	"langson-benefits/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ComplaintRepository handles complaint data access
type ComplaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ComplaintRepository) WithTx(tx *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: tx}
}

// Create creates a new complaint
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// GetByID gets a complaint by ID
func (r *ComplaintRepository) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.db.WithContext(ctx).First(&complaint, id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// List lists complaints with user/assignee relations, newest first.
// userID > 0 restricts the result to one citizen's complaints.
func (r *ComplaintRepository) List(ctx context.Context, status string, userID uint) ([]*models.Complaint, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Assignee")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	var complaints []*models.Complaint
	err := query.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

// Update updates a complaint
func (r *ComplaintRepository) Update(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// CountByStatus counts complaints in the given status (all when empty)
func (r *ComplaintRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Complaint{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
