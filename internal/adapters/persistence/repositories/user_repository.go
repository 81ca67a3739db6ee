package repositories

import (
	"context"

	"langson-benefits/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserRepository handles user data access
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether the email is taken by a user other than excludeID
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// List lists users with search/role filters and pagination
func (r *UserRepository) List(ctx context.Context, search, role string, offset, limit int) ([]*models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

// ListOfficers lists users who can process applications, sorted by name
func (r *UserRepository) ListOfficers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("role IN ?", []string{"OFFICER", "ADMIN"}).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete hard-deletes a user (explicit admin action only)
func (r *UserRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	return res.RowsAffected, res.Error
}

// CountByRole counts users per role (all users when role is empty)
func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
