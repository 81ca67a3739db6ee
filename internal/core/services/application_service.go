package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/adapters/persistence/repositories"
	"langson-benefits/internal/core/domain"
	"langson-benefits/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Application service errors
var (
	ErrApplicationNotFound = fmt.Errorf("%w: application not found", domain.ErrNotFound)
	ErrProgramNotFound     = fmt.Errorf("%w: support program not found", domain.ErrNotFound)
	ErrProgramInactive     = fmt.Errorf("%w: support program is not active", domain.ErrValidation)
	ErrMissingFields       = fmt.Errorf("%w: program_id, full_name and citizen_id are required", domain.ErrValidation)
	ErrInvalidStatus       = fmt.Errorf("%w: unknown application status", domain.ErrValidation)
	ErrIllegalTransition   = fmt.Errorf("%w: status transition not allowed", domain.ErrValidation)
	ErrManualPaid          = fmt.Errorf("%w: paid status is set by batch settlement only", domain.ErrValidation)
	ErrStatusConflict      = fmt.Errorf("%w: application was updated by someone else, reload and retry", domain.ErrConflict)
)

// ApplicationService handles benefit application business logic
type ApplicationService struct {
	db            *gorm.DB
	appRepo       *repositories.ApplicationRepository
	historyRepo   *repositories.ApplicationHistoryRepository
	programRepo   *repositories.ProgramRepository
	sequenceRepo  *repositories.SequenceRepository
	notifyService *NotificationService
}

// NewApplicationService creates a new application service
func NewApplicationService(
	db *gorm.DB,
	appRepo *repositories.ApplicationRepository,
	historyRepo *repositories.ApplicationHistoryRepository,
	programRepo *repositories.ProgramRepository,
	sequenceRepo *repositories.SequenceRepository,
	notifyService *NotificationService,
) *ApplicationService {
	return &ApplicationService{
		db:            db,
		appRepo:       appRepo,
		historyRepo:   historyRepo,
		programRepo:   programRepo,
		sequenceRepo:  sequenceRepo,
		notifyService: notifyService,
	}
}

// CreateApplicationInput represents create application input
type CreateApplicationInput struct {
	ProgramID        uint            `json:"program_id" validate:"required"`
	FullName         string          `json:"full_name" validate:"required"`
	CitizenID        string          `json:"citizen_id" validate:"required"`
	DateOfBirth      string          `json:"date_of_birth,omitempty"`
	Gender           string          `json:"gender,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	District         string          `json:"district,omitempty"`
	Commune          string          `json:"commune,omitempty"`
	Village          string          `json:"village,omitempty"`
	ApplicationType  string          `json:"application_type,omitempty"`
	SupportAmount    *float64        `json:"support_amount,omitempty"`
	HouseholdMembers json.RawMessage `json:"household_members,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// Create registers a new application. Citizens start at pending; staff
// intake goes straight to under_review. The code, the application row and
// the first history row are committed atomically.
func (s *ApplicationService) Create(ctx context.Context, input *CreateApplicationInput, actorID uint, actorRole domain.Role) (*models.Application, error) {
	if input.ProgramID == 0 || input.FullName == "" || input.CitizenID == "" {
		return nil, ErrMissingFields
	}

	program, err := s.programRepo.GetByID(ctx, input.ProgramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.Status != domain.ProgramStatusActive {
		return nil, ErrProgramInactive
	}

	status := domain.StatusPending
	if actorRole.CanReview() {
		status = domain.StatusUnderReview
	}

	now := time.Now()
	app := &models.Application{
		ProgramID:       input.ProgramID,
		CitizenID:       input.CitizenID,
		FullName:        input.FullName,
		Gender:          input.Gender,
		Phone:           input.Phone,
		Email:           input.Email,
		Address:         input.Address,
		District:        input.District,
		Commune:         input.Commune,
		Village:         input.Village,
		ApplicationType: input.ApplicationType,
		Status:          string(status),
		Notes:           input.Notes,
		SubmittedAt:     &now,
	}

	if actorRole == domain.RoleCitizen {
		app.UserID = &actorID
	} else {
		// Staff intake: the creating officer owns the review
		app.AssignedOfficerID = &actorID
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", domain.ErrValidation)
		}
		app.DateOfBirth = &dob
	}
	if input.SupportAmount != nil {
		app.SupportAmount = input.SupportAmount
	} else {
		amount := program.Amount
		app.SupportAmount = &amount
	}
	if len(input.HouseholdMembers) > 0 {
		app.HouseholdMembersData = string(input.HouseholdMembers)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := s.sequenceRepo.WithTx(tx).Next(ctx, models.SeqApplications, "APP", 5, "applications", "code")
		if err != nil {
			return err
		}
		app.Code = code

		if err := s.appRepo.WithTx(tx).Create(ctx, app); err != nil {
			return err
		}

		return s.historyRepo.WithTx(tx).Create(ctx, &models.ApplicationHistory{
			ApplicationID: app.ID,
			Action:        domain.HistoryActionCreate,
			NewStatus:     app.Status,
			PerformedBy:   actorID,
			Comment:       "Nộp hồ sơ đăng ký",
		})
	})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// GetByID gets an application with its relations. Citizens may only read
// their own applications.
func (s *ApplicationService) GetByID(ctx context.Context, id, actorID uint, actorRole domain.Role) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if actorRole == domain.RoleCitizen && (app.UserID == nil || *app.UserID != actorID) {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// ListApplicationsInput represents list filters
type ListApplicationsInput struct {
	Status    string
	ProgramID *uint
	Search    string
}

// List lists applications. Citizens only see their own; staff see all.
func (s *ApplicationService) List(ctx context.Context, input *ListApplicationsInput, actorID uint, actorRole domain.Role, params *pagination.Params) ([]*models.Application, int64, error) {
	filter := &repositories.ApplicationFilter{}
	if input != nil {
		filter.Status = input.Status
		filter.ProgramID = input.ProgramID
		filter.Search = input.Search
	}
	if actorRole == domain.RoleCitizen {
		filter.UserID = &actorID
	}
	return s.appRepo.List(ctx, filter, params.Offset, params.Limit)
}

// TransitionInput represents a review decision
type TransitionInput struct {
	Status          string `json:"status" validate:"required"`
	Comment         string `json:"comment,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Transition moves an application through the review state machine. The
// status column is updated conditionally on the previously read value, so a
// concurrent decision surfaces as ErrStatusConflict instead of a silent
// overwrite. The history row commits in the same transaction.
func (s *ApplicationService) Transition(ctx context.Context, id uint, input *TransitionInput, actorID uint) (*models.Application, error) {
	newStatus := domain.ApplicationStatus(input.Status)
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}
	if newStatus == domain.StatusPaid {
		return nil, ErrManualPaid
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	oldStatus := domain.ApplicationStatus(app.Status)
	if !oldStatus.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w (%s -> %s)", ErrIllegalTransition, oldStatus, newStatus)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":              string(newStatus),
		"assigned_officer_id": actorID,
	}
	switch newStatus {
	case domain.StatusApproved:
		updates["approved_at"] = now
	case domain.StatusRejected:
		updates["rejected_at"] = now
		updates["rejection_reason"] = input.RejectionReason
	default:
		updates["reviewed_at"] = now
	}
	if input.Notes != "" {
		updates["notes"] = input.Notes
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.appRepo.WithTx(tx).UpdateStatus(ctx, app.ID, app.Status, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStatusConflict
		}

		old := app.Status
		comment := input.Comment
		if comment == "" && input.RejectionReason != "" {
			comment = input.RejectionReason
		}
		return s.historyRepo.WithTx(tx).Create(ctx, &models.ApplicationHistory{
			ApplicationID: app.ID,
			Action:        domain.HistoryActionStatus,
			OldStatus:     &old,
			NewStatus:     string(newStatus),
			PerformedBy:   actorID,
			Comment:       comment,
		})
	})
	if err != nil {
		return nil, err
	}

	if app.UserID != nil {
		s.notifyService.Notify(ctx, *app.UserID,
			"Cập nhật hồ sơ "+app.Code,
			fmt.Sprintf("Hồ sơ %s đã chuyển sang trạng thái %s", app.Code, newStatus),
			"application",
		)
	}

	return s.appRepo.GetByID(ctx, app.ID)
}

// ListHistory returns the full audit trail of an application, oldest first
func (s *ApplicationService) ListHistory(ctx context.Context, applicationID, actorID uint, actorRole domain.Role) ([]*models.ApplicationHistory, error) {
	if _, err := s.GetByID(ctx, applicationID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByApplication(ctx, applicationID)
}
