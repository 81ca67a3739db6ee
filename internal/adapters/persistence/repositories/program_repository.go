package repositories

import (
	"context"
	"time"

	"langson-benefits/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ProgramRepository handles support program data access
type ProgramRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create creates a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.SupportProgram) error {
	return r.db.WithContext(ctx).Create(program).Error
}

// GetByID gets a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id uint) (*models.SupportProgram, error) {
	var program models.SupportProgram
	if err := r.db.WithContext(ctx).First(&program, id).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

// CodeExists reports whether a program already uses the code
func (r *ProgramRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SupportProgram{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// ListActive lists active programs, newest first
func (r *ProgramRepository) ListActive(ctx context.Context) ([]*models.SupportProgram, error) {
	var programs []*models.SupportProgram
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("created_at DESC").
		Find(&programs).Error
	return programs, err
}

// List lists all programs regardless of status
func (r *ProgramRepository) List(ctx context.Context) ([]*models.SupportProgram, error) {
	var programs []*models.SupportProgram
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&programs).Error
	return programs, err
}

// Update updates a program
func (r *ProgramRepository) Update(ctx context.Context, program *models.SupportProgram) error {
	return r.db.WithContext(ctx).Save(program).Error
}

// Deactivate soft-deletes a program by setting status=inactive. Rows are
// never removed so existing applications keep a valid reference.
func (r *ProgramRepository) Deactivate(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SupportProgram{}).
		Where("id = ?", id).
		Update("status", "inactive")
	return res.RowsAffected, res.Error
}

// DeactivateExpired flips active programs whose end_date has passed
func (r *ProgramRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SupportProgram{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", "active", now).
		Update("status", "inactive")
	return res.RowsAffected, res.Error
}
