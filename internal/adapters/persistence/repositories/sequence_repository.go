package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/core/domain"

	"gorm.io/gorm"
)

// ErrCodeFormat is returned when an existing code cannot be parsed while
// seeding a counter. Failing hard beats silently issuing a colliding code.
var ErrCodeFormat = fmt.Errorf("%w: malformed sequence code", domain.ErrIntegrity)

// SequenceRepository hands out gapless sequential codes (APP00001, BATCH001)
// from the code_sequences counter table. Next must be called inside the same
// transaction that inserts the coded row: the counter UPDATE then holds its
// row lock until commit, so two concurrent callers can never observe the same
// value.
type SequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *SequenceRepository) WithTx(tx *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: tx}
}

// Next increments the named counter and returns the formatted code. On first
// use the counter row is seeded from the highest code already present in
// table/column, so the sequence continues from legacy data.
func (r *SequenceRepository) Next(ctx context.Context, name, prefix string, width int, table, column string) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		res := r.db.WithContext(ctx).
			Model(&models.CodeSequence{}).
			Where("name = ?", name).
			Update("counter", gorm.Expr("counter + 1"))
		if res.Error != nil {
			return "", res.Error
		}

		if res.RowsAffected == 0 {
			seed, err := r.seedValue(ctx, name, prefix, table, column)
			if err != nil {
				return "", err
			}
			seq := &models.CodeSequence{
				Name:    name,
				Prefix:  prefix,
				Width:   width,
				Counter: seed + 1,
			}
			if err := r.db.WithContext(ctx).Create(seq).Error; err != nil {
				// Lost the creation race to a concurrent caller; the counter
				// row exists now, so retry the increment.
				continue
			}
			return formatCode(prefix, width, seq.Counter), nil
		}

		var seq models.CodeSequence
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&seq).Error; err != nil {
			return "", err
		}
		return formatCode(prefix, width, seq.Counter), nil
	}
	return "", fmt.Errorf("%w: could not allocate code for sequence %s", domain.ErrConflict, name)
}

// seedValue reads the most recently issued code from the target table and
// parses its numeric suffix. Empty table seeds at zero.
func (r *SequenceRepository) seedValue(ctx context.Context, name, prefix, table, column string) (int64, error) {
	var lastCode string
	err := r.db.WithContext(ctx).
		Table(table).
		Select(column).
		Order("id DESC").
		Limit(1).
		Scan(&lastCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if lastCode == "" {
		return 0, nil
	}

	if !strings.HasPrefix(lastCode, prefix) {
		return 0, fmt.Errorf("%w: code %q does not match prefix %q (sequence %s)", ErrCodeFormat, lastCode, prefix, name)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(lastCode, prefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: code %q has a non-numeric suffix (sequence %s)", ErrCodeFormat, lastCode, name)
	}
	return n, nil
}

func formatCode(prefix string, width int, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}
