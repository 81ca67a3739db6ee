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

// Payout service errors
var (
	ErrPayoutNotFound      = fmt.Errorf("%w: payout batch not found", domain.ErrNotFound)
	ErrPeriodRequired      = fmt.Errorf("%w: period is required", domain.ErrValidation)
	ErrInvalidPayoutStatus = fmt.Errorf("%w: unknown payout status", domain.ErrValidation)
)

// PayoutService handles payout batch assembly and settlement
type PayoutService struct {
	db            *gorm.DB
	payoutRepo    *repositories.PayoutRepository
	itemRepo      *repositories.PayoutItemRepository
	appRepo       *repositories.ApplicationRepository
	historyRepo   *repositories.ApplicationHistoryRepository
	sequenceRepo  *repositories.SequenceRepository
	notifyService *NotificationService
}

// NewPayoutService creates a new payout service
func NewPayoutService(
	db *gorm.DB,
	payoutRepo *repositories.PayoutRepository,
	itemRepo *repositories.PayoutItemRepository,
	appRepo *repositories.ApplicationRepository,
	historyRepo *repositories.ApplicationHistoryRepository,
	sequenceRepo *repositories.SequenceRepository,
	notifyService *NotificationService,
) *PayoutService {
	return &PayoutService{
		db:            db,
		payoutRepo:    payoutRepo,
		itemRepo:      itemRepo,
		appRepo:       appRepo,
		historyRepo:   historyRepo,
		sequenceRepo:  sequenceRepo,
		notifyService: notifyService,
	}
}

// CreateBatchInput represents batch assembly input
type CreateBatchInput struct {
	Period        string `json:"period" validate:"required"`
	Location      string `json:"location,omitempty"`
	ProgramID     *uint  `json:"program_id,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// CreateBatch assembles a disbursement batch from every approved application
// that is not yet part of any batch, filtered by program and location. Batch
// code, batch row and line items commit atomically; the unique index on
// payout_items.application_id makes a double enrolment impossible even
// across concurrent assemblies. Totals are frozen at assembly time.
func (s *PayoutService) CreateBatch(ctx context.Context, input *CreateBatchInput, actorID uint) (*models.Payout, error) {
	if input.Period == "" {
		return nil, ErrPeriodRequired
	}

	payout := &models.Payout{
		Period:    input.Period,
		Location:  input.Location,
		ProgramID: input.ProgramID,
		Status:    domain.PayoutStatusPending,
		CreatedBy: actorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := s.sequenceRepo.WithTx(tx).Next(ctx, models.SeqPayouts, "BATCH", 3, "payouts", "batch_code")
		if err != nil {
			return err
		}
		payout.BatchCode = code

		candidates, err := s.appRepo.WithTx(tx).ListPayoutCandidates(ctx, input.ProgramID, input.Location)
		if err != nil {
			return err
		}

		var total float64
		for _, app := range candidates {
			if app.SupportAmount != nil {
				total += *app.SupportAmount
			}
		}
		payout.TotalAmount = total
		payout.TotalRecipients = len(candidates)

		if err := s.payoutRepo.WithTx(tx).Create(ctx, payout); err != nil {
			return err
		}

		itemRepo := s.itemRepo.WithTx(tx)
		for _, app := range candidates {
			var amount float64
			if app.SupportAmount != nil {
				amount = *app.SupportAmount
			}
			item := &models.PayoutItem{
				PayoutID:        payout.ID,
				ApplicationID:   app.ID,
				Amount:          amount,
				Status:          domain.PayoutStatusPending,
				BeneficiaryName: app.FullName,
				CitizenID:       app.CitizenID,
				PaymentMethod:   input.PaymentMethod,
			}
			if err := itemRepo.Create(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payout, nil
}

// SetStatus moves a batch to the given status and cascades it onto every
// line item (completed items read "paid"). Completing a batch additionally
// settles it: every underlying application still in approved moves to paid
// with a settlement history row, all in one transaction. Applications
// already settled are skipped, so re-completing a batch is harmless.
func (s *PayoutService) SetStatus(ctx context.Context, id uint, status string, actorID uint) (*models.Payout, error) {
	if !domain.ValidPayoutStatus(status) {
		return nil, ErrInvalidPayoutStatus
	}

	payout, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}

	var settled []*models.Application
	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.payoutRepo.WithTx(tx).SetStatus(ctx, payout.ID, status, now); err != nil {
			return err
		}

		itemStatus := status
		if status == domain.PayoutStatusCompleted {
			itemStatus = "paid"
		}
		if err := s.itemRepo.WithTx(tx).SetStatusByPayout(ctx, payout.ID, itemStatus, now); err != nil {
			return err
		}
		if status != domain.PayoutStatusCompleted {
			return nil
		}

		items, err := s.itemRepo.WithTx(tx).ListByPayout(ctx, payout.ID)
		if err != nil {
			return err
		}

		appRepo := s.appRepo.WithTx(tx)
		historyRepo := s.historyRepo.WithTx(tx)
		for _, item := range items {
			affected, err := appRepo.UpdateStatus(ctx, item.ApplicationID, string(domain.StatusApproved), map[string]interface{}{
				"status": string(domain.StatusPaid),
			})
			if err != nil {
				return err
			}
			if affected == 0 {
				continue // already settled by an earlier completion
			}

			old := string(domain.StatusApproved)
			if err := historyRepo.Create(ctx, &models.ApplicationHistory{
				ApplicationID: item.ApplicationID,
				Action:        domain.HistoryActionSettlement,
				OldStatus:     &old,
				NewStatus:     string(domain.StatusPaid),
				PerformedBy:   actorID,
				Comment:       "Chi trả theo đợt " + payout.BatchCode,
			}); err != nil {
				return err
			}

			app, err := appRepo.GetByID(ctx, item.ApplicationID)
			if err != nil {
				return err
			}
			settled = append(settled, app)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, app := range settled {
		if app.UserID != nil {
			s.notifyService.Notify(ctx, *app.UserID,
				"Đã chi trả hồ sơ "+app.Code,
				fmt.Sprintf("Hồ sơ %s đã được chi trả trong đợt %s", app.Code, payout.BatchCode),
				"payout",
			)
		}
	}

	return s.payoutRepo.GetByID(ctx, payout.ID)
}

// ListBatches lists all payout batches, newest first
func (s *PayoutService) ListBatches(ctx context.Context) ([]*models.Payout, error) {
	return s.payoutRepo.List(ctx)
}

// GetBatch gets a batch with its line items
func (s *PayoutService) GetBatch(ctx context.Context, id uint) (*models.Payout, []*models.PayoutItem, error) {
	payout, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPayoutNotFound
		}
		return nil, nil, err
	}
	items, err := s.itemRepo.ListByPayout(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return payout, items, nil
}

// ListItems lists payout line items for one batch, or all when id is zero
func (s *PayoutService) ListItems(ctx context.Context, payoutID uint) ([]*models.PayoutItem, error) {
	if payoutID > 0 {
		return s.itemRepo.ListByPayout(ctx, payoutID)
	}
	return s.itemRepo.List(ctx)
}

// PayoutStats aggregates batch counters for the payout dashboard
type PayoutStats struct {
	Pending         int64   `json:"pending"`
	Processing      int64   `json:"processing"`
	Completed       int64   `json:"completed"`
	Cancelled       int64   `json:"cancelled"`
	TotalDisbursed  float64 `json:"total_disbursed"`
	AwaitingPayment int64   `json:"awaiting_payment"`
}

// Stats returns aggregate payout counters
func (s *PayoutService) Stats(ctx context.Context) (*PayoutStats, error) {
	stats := &PayoutStats{}

	var err error
	if stats.Pending, err = s.payoutRepo.CountByStatus(ctx, domain.PayoutStatusPending); err != nil {
		return nil, err
	}
	if stats.Processing, err = s.payoutRepo.CountByStatus(ctx, domain.PayoutStatusProcessing); err != nil {
		return nil, err
	}
	if stats.Completed, err = s.payoutRepo.CountByStatus(ctx, domain.PayoutStatusCompleted); err != nil {
		return nil, err
	}
	if stats.Cancelled, err = s.payoutRepo.CountByStatus(ctx, domain.PayoutStatusCancelled); err != nil {
		return nil, err
	}
	if stats.TotalDisbursed, err = s.payoutRepo.SumCompletedAmount(ctx); err != nil {
		return nil, err
	}
	if stats.AwaitingPayment, err = s.appRepo.CountByStatus(ctx, string(domain.StatusApproved)); err != nil {
		return nil, err
	}
	return stats, nil
}

// PayoutResultInput is one row of a bank result file import
type PayoutResultInput struct {
	BatchCode string `json:"batch_code" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// ImportResult reports the outcome of a result file import
type ImportResult struct {
	Updated  int      `json:"updated"`
	Failures []string `json:"failures,omitempty"`
}

// ImportResults applies bank result rows batch by batch. Unknown codes and
// invalid statuses are collected, not fatal: one bad row must not block the
// rest of the file. Completed rows go through full settlement.
func (s *PayoutService) ImportResults(ctx context.Context, rows []PayoutResultInput, actorID uint) (*ImportResult, error) {
	result := &ImportResult{}
	for _, row := range rows {
		if !domain.ValidPayoutStatus(row.Status) {
			result.Failures = append(result.Failures, fmt.Sprintf("%s: unknown status %q", row.BatchCode, row.Status))
			continue
		}

		payout, err := s.payoutRepo.GetByBatchCode(ctx, row.BatchCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Failures = append(result.Failures, fmt.Sprintf("%s: batch not found", row.BatchCode))
				continue
			}
			return nil, err
		}

		if _, err := s.SetStatus(ctx, payout.ID, row.Status, actorID); err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", row.BatchCode, err))
			continue
		}
		result.Updated++
	}
	return result, nil
}
