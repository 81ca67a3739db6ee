package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/adapters/persistence/repositories"
	"langson-benefits/internal/core/domain"
	"langson-benefits/internal/pkg/pagination"
	"langson-benefits/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFound       = fmt.Errorf("%w: user not found", domain.ErrNotFound)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", domain.ErrConflict)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, password.MinLength)
	ErrInvalidRole        = fmt.Errorf("%w: unknown role", domain.ErrValidation)
	ErrAccountDisabled    = errors.New("account is disabled")
)

// UserService handles account business logic
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput represents citizen self-registration input
type RegisterInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Register creates a citizen account
func (s *UserService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	if input.FullName == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: full_name and email are required", domain.ErrValidation)
	}
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	taken, err := s.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     input.FullName,
		Email:        email,
		Phone:        input.Phone,
		Address:      input.Address,
		PasswordHash: hashed,
		Role:         string(domain.RoleCitizen),
		Status:       domain.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account
func (s *UserService) Login(ctx context.Context, email, plainPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(plainPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if user.Status != domain.UserStatusActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput represents self-service profile update input
type UpdateProfileInput struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// UpdateProfile updates the caller's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, id uint, input *UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password and sets a new one
func (s *UserService) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !password.Verify(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if !password.Validate(newPassword) {
		return ErrWeakPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	return s.userRepo.Update(ctx, user)
}

// List lists users for the admin console
func (s *UserService) List(ctx context.Context, search, role string, params *pagination.Params) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, search, role, params.Offset, params.Limit)
}

// ListOfficers lists accounts that can be assigned review work
func (s *UserService) ListOfficers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListOfficers(ctx)
}

// UserStats breaks accounts down by role
type UserStats struct {
	Total    int64 `json:"total"`
	Citizens int64 `json:"citizens"`
	Officers int64 `json:"officers"`
	Admins   int64 `json:"admins"`
}

// Stats counts accounts per role for the admin console
func (s *UserService) Stats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{}
	counts := []struct {
		dst  *int64
		role domain.Role
	}{
		{&stats.Citizens, domain.RoleCitizen},
		{&stats.Officers, domain.RoleOfficer},
		{&stats.Admins, domain.RoleAdmin},
	}
	for _, count := range counts {
		n, err := s.userRepo.CountByRole(ctx, string(count.role))
		if err != nil {
			return nil, err
		}
		*count.dst = n
		stats.Total += n
	}
	return stats, nil
}

// CreateUserInput represents admin account creation input
type CreateUserInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role" validate:"required"`
}

// CreateUser creates an account with an explicit role (admin only)
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	if !domain.Role(input.Role).Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.Register(ctx, &RegisterInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
	})
	if err != nil {
		return nil, err
	}

	user.Role = input.Role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents admin account update input
type UpdateUserInput struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
	Password string `json:"password,omitempty"`
}

// UpdateUser updates an account's role, status or password (admin only)
func (s *UserService) UpdateUser(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Role != "" {
		if !domain.Role(input.Role).Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = input.Role
	}
	if input.Status != "" {
		if input.Status != domain.UserStatusActive && input.Status != domain.UserStatusInactive {
			return nil, fmt.Errorf("%w: status must be active or inactive", domain.ErrValidation)
		}
		user.Status = input.Status
	}
	if input.Password != "" {
		if !password.Validate(input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account (admin only)
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	affected, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
