package repositories

import (
	"context"
	"time"

	"langson-benefits/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PayoutRepository handles payout batch data access
type PayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *PayoutRepository) WithTx(tx *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: tx}
}

// Create creates a new payout batch
func (r *PayoutRepository) Create(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

// GetByID gets a payout batch by ID
func (r *PayoutRepository) GetByID(ctx context.Context, id uint) (*models.Payout, error) {
	var payout models.Payout
	if err := r.db.WithContext(ctx).First(&payout, id).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

// List lists all payout batches, newest first
func (r *PayoutRepository) List(ctx context.Context) ([]*models.Payout, error) {
	var payouts []*models.Payout
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&payouts).Error
	return payouts, err
}

// SetStatus updates the batch status and stamps disbursed_at
func (r *PayoutRepository) SetStatus(ctx context.Context, id uint, status string, disbursedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Payout{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"disbursed_at": disbursedAt,
		}).Error
}

// GetByBatchCode gets a payout batch by its external code. Used by the
// payout result import.
func (r *PayoutRepository) GetByBatchCode(ctx context.Context, batchCode string) (*models.Payout, error) {
	var payout models.Payout
	if err := r.db.WithContext(ctx).Where("batch_code = ?", batchCode).First(&payout).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

// CountByStatus counts batches in the given status
func (r *PayoutRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payout{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SumCompletedAmount sums total_amount over completed batches
func (r *PayoutRepository) SumCompletedAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Payout{}).
		Where("status = ?", "completed").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

// PayoutItemRepository handles payout line-item data access
type PayoutItemRepository struct {
	db *gorm.DB
}

// NewPayoutItemRepository creates a new payout item repository
func NewPayoutItemRepository(db *gorm.DB) *PayoutItemRepository {
	return &PayoutItemRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *PayoutItemRepository) WithTx(tx *gorm.DB) *PayoutItemRepository {
	return &PayoutItemRepository{db: tx}
}

// Create creates a new payout item
func (r *PayoutItemRepository) Create(ctx context.Context, item *models.PayoutItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// ListByPayout lists items for one batch
func (r *PayoutItemRepository) ListByPayout(ctx context.Context, payoutID uint) ([]*models.PayoutItem, error) {
	var items []*models.PayoutItem
	err := r.db.WithContext(ctx).
		Where("payout_id = ?", payoutID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// List lists all items, newest first
func (r *PayoutItemRepository) List(ctx context.Context) ([]*models.PayoutItem, error) {
	var items []*models.PayoutItem
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// SetStatusByPayout updates every item in the batch and stamps paid_at
func (r *PayoutItemRepository) SetStatusByPayout(ctx context.Context, payoutID uint, status string, paidAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.PayoutItem{}).
		Where("payout_id = ?", payoutID).
		Updates(map[string]interface{}{
			"status":  status,
			"paid_at": paidAt,
		}).Error
}
