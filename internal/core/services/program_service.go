package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/adapters/persistence/repositories"
	"langson-benefits/internal/core/domain"

	"gorm.io/gorm"
)

// Program service errors
var (
	ErrProgramFieldsMissing = fmt.Errorf("%w: code, name and amount are required", domain.ErrValidation)
	ErrProgramCodeTaken     = fmt.Errorf("%w: program code already exists", domain.ErrConflict)
)

// ProgramService handles support program master data
type ProgramService struct {
	programRepo *repositories.ProgramRepository
}

// NewProgramService creates a new program service
func NewProgramService(programRepo *repositories.ProgramRepository) *ProgramService {
	return &ProgramService{programRepo: programRepo}
}

// ProgramInput represents create/update program input
type ProgramInput struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
}

// Create creates a new support program
func (s *ProgramService) Create(ctx context.Context, input *ProgramInput, actorID uint) (*models.SupportProgram, error) {
	if input.Code == "" || input.Name == "" || input.Amount <= 0 {
		return nil, ErrProgramFieldsMissing
	}

	taken, err := s.programRepo.CodeExists(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrProgramCodeTaken
	}

	program := &models.SupportProgram{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Amount:      input.Amount,
		Status:      domain.ProgramStatusActive,
		CreatedBy:   actorID,
	}

	if program.StartDate, err = parseDate(input.StartDate); err != nil {
		return nil, err
	}
	if program.EndDate, err = parseDate(input.EndDate); err != nil {
		return nil, err
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// GetByID gets a program
func (s *ProgramService) GetByID(ctx context.Context, id uint) (*models.SupportProgram, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// List lists programs. Citizens only see active programs; staff see all.
func (s *ProgramService) List(ctx context.Context, actorRole domain.Role) ([]*models.SupportProgram, error) {
	if actorRole.CanReview() {
		return s.programRepo.List(ctx)
	}
	return s.programRepo.ListActive(ctx)
}

// Update updates a program's editable fields
func (s *ProgramService) Update(ctx context.Context, id uint, input *ProgramInput) (*models.SupportProgram, error) {
	program, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		program.Name = input.Name
	}
	if input.Description != "" {
		program.Description = input.Description
	}
	if input.Type != "" {
		program.Type = input.Type
	}
	if input.Amount > 0 {
		program.Amount = input.Amount
	}
	if input.StartDate != "" {
		if program.StartDate, err = parseDate(input.StartDate); err != nil {
			return nil, err
		}
	}
	if input.EndDate != "" {
		if program.EndDate, err = parseDate(input.EndDate); err != nil {
			return nil, err
		}
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// Deactivate soft-deletes a program. Existing applications keep their
// reference; the program just stops accepting new ones.
func (s *ProgramService) Deactivate(ctx context.Context, id uint) error {
	affected, err := s.programRepo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProgramNotFound
	}
	return nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", domain.ErrValidation)
	}
	return &t, nil
}
