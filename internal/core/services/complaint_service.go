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

// Complaint service errors
var (
	ErrComplaintNotFound      = fmt.Errorf("%w: complaint not found", domain.ErrNotFound)
	ErrComplaintTitleRequired = fmt.Errorf("%w: title is required", domain.ErrValidation)
	ErrResolutionRequired     = fmt.Errorf("%w: resolution is required", domain.ErrValidation)
)

// ComplaintService handles citizen complaints and feedback
type ComplaintService struct {
	db            *gorm.DB
	complaintRepo *repositories.ComplaintRepository
	sequenceRepo  *repositories.SequenceRepository
	notifyService *NotificationService
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	db *gorm.DB,
	complaintRepo *repositories.ComplaintRepository,
	sequenceRepo *repositories.SequenceRepository,
	notifyService *NotificationService,
) *ComplaintService {
	return &ComplaintService{
		db:            db,
		complaintRepo: complaintRepo,
		sequenceRepo:  sequenceRepo,
		notifyService: notifyService,
	}
}

// SubmitComplaintInput represents complaint submission input
type SubmitComplaintInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Submit files a new complaint for the calling citizen
func (s *ComplaintService) Submit(ctx context.Context, input *SubmitComplaintInput, userID uint) (*models.Complaint, error) {
	if input.Title == "" {
		return nil, ErrComplaintTitleRequired
	}

	complaint := &models.Complaint{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.ComplaintStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := s.sequenceRepo.WithTx(tx).Next(ctx, models.SeqComplaints, "CMP", 5, "complaints", "code")
		if err != nil {
			return err
		}
		complaint.Code = code
		return s.complaintRepo.WithTx(tx).Create(ctx, complaint)
	})
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

// GetByID gets a complaint. Citizens may only read their own.
func (s *ComplaintService) GetByID(ctx context.Context, id, actorID uint, actorRole domain.Role) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	if actorRole == domain.RoleCitizen && complaint.UserID != actorID {
		return nil, ErrComplaintNotFound
	}
	return complaint, nil
}

// List lists complaints. Citizens only see their own; staff see all.
func (s *ComplaintService) List(ctx context.Context, status string, actorID uint, actorRole domain.Role) ([]*models.Complaint, error) {
	var userID uint
	if actorRole == domain.RoleCitizen {
		userID = actorID
	}
	return s.complaintRepo.List(ctx, status, userID)
}

// ComplaintStats breaks complaints down by handling state
type ComplaintStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}

// Stats counts complaints per status for the staff dashboards
func (s *ComplaintService) Stats(ctx context.Context) (*ComplaintStats, error) {
	stats := &ComplaintStats{}
	counts := []struct {
		dst    *int64
		status string
	}{
		{&stats.Pending, domain.ComplaintStatusPending},
		{&stats.InProgress, domain.ComplaintStatusInProgress},
		{&stats.Resolved, domain.ComplaintStatusResolved},
	}
	for _, count := range counts {
		n, err := s.complaintRepo.CountByStatus(ctx, count.status)
		if err != nil {
			return nil, err
		}
		*count.dst = n
		stats.Total += n
	}
	return stats, nil
}

// Assign hands a complaint to an officer and moves it to in_progress
func (s *ComplaintService) Assign(ctx context.Context, id, officerID uint) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	complaint.AssignedTo = &officerID
	complaint.Status = domain.ComplaintStatusInProgress
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Resolve records the resolution, closes the complaint and notifies the
// citizen who filed it
func (s *ComplaintService) Resolve(ctx context.Context, id uint, resolution string, actorID uint) (*models.Complaint, error) {
	if resolution == "" {
		return nil, ErrResolutionRequired
	}

	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	now := time.Now()
	complaint.Resolution = resolution
	complaint.Status = domain.ComplaintStatusResolved
	complaint.ResolvedAt = &now
	if complaint.AssignedTo == nil {
		complaint.AssignedTo = &actorID
	}
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.notifyService.Notify(ctx, complaint.UserID,
		"Phản ánh "+complaint.Code+" đã được xử lý",
		resolution,
		"complaint",
	)

	return complaint, nil
}
