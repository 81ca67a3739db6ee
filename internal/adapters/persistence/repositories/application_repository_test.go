package repositories

import (
	"context"
	"testing"
	"time"

	"langson-benefits/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusDetectsLostRace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	app := &models.Application{Code: "APP00001", ProgramID: 1, FullName: "A", Status: "pending"}
	require.NoError(t, db.Create(app).Error)

	affected, err := repo.UpdateStatus(ctx, app.ID, "pending", map[string]interface{}{"status": "approved"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// A second decision based on the stale pending read must not land
	affected, err = repo.UpdateStatus(ctx, app.ID, "pending", map[string]interface{}{"status": "rejected"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	var reloaded models.Application
	require.NoError(t, db.First(&reloaded, app.ID).Error)
	assert.Equal(t, "approved", reloaded.Status)
}

func TestListPayoutCandidatesExcludesEnrolled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	amount := 1000.0
	a := &models.Application{Code: "APP00001", ProgramID: 1, FullName: "A", Status: "approved", SupportAmount: &amount}
	b := &models.Application{Code: "APP00002", ProgramID: 1, FullName: "B", Status: "approved", SupportAmount: &amount}
	c := &models.Application{Code: "APP00003", ProgramID: 1, FullName: "C", Status: "pending", SupportAmount: &amount}
	for _, app := range []*models.Application{a, b, c} {
		require.NoError(t, db.Create(app).Error)
	}

	payout := &models.Payout{BatchCode: "BATCH001", Status: "pending"}
	require.NoError(t, db.Create(payout).Error)
	require.NoError(t, db.Create(&models.PayoutItem{PayoutID: payout.ID, ApplicationID: a.ID, Amount: amount, Status: "pending"}).Error)

	candidates, err := repo.ListPayoutCandidates(ctx, nil, "")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, b.ID, candidates[0].ID)
}

func TestListPayoutCandidatesLocationMatchesAnyField(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	apps := []*models.Application{
		{Code: "APP00001", ProgramID: 1, FullName: "A", Status: "approved", District: "Cao Lộc"},
		{Code: "APP00002", ProgramID: 1, FullName: "B", Status: "approved", Commune: "Thị trấn Cao Lộc"},
		{Code: "APP00003", ProgramID: 1, FullName: "C", Status: "approved", Village: "Bản Khoai"},
	}
	for _, app := range apps {
		require.NoError(t, db.Create(app).Error)
	}

	candidates, err := repo.ListPayoutCandidates(ctx, nil, "cao lộc")
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestListStaleUnderReviewFallsBackToSubmittedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	now := time.Now()
	old := now.Add(-10 * 24 * time.Hour)

	// Staff intake: under_review from creation, no reviewed_at
	intake := &models.Application{Code: "APP00001", ProgramID: 1, FullName: "A", Status: "under_review", SubmittedAt: &old}
	require.NoError(t, db.Create(intake).Error)

	reviewed := &models.Application{Code: "APP00002", ProgramID: 1, FullName: "B", Status: "under_review", SubmittedAt: &old, ReviewedAt: &old}
	require.NoError(t, db.Create(reviewed).Error)

	fresh := &models.Application{Code: "APP00003", ProgramID: 1, FullName: "C", Status: "under_review", SubmittedAt: &now}
	require.NoError(t, db.Create(fresh).Error)

	stale, err := repo.ListStaleUnderReview(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 2)

	codes := []string{stale[0].Code, stale[1].Code}
	assert.Contains(t, codes, "APP00001")
	assert.Contains(t, codes, "APP00002")
}

func TestUniqueIndexBlocksDoubleEnrolment(t *testing.T) {
	db := setupTestDB(t)

	app := &models.Application{Code: "APP00001", ProgramID: 1, FullName: "A", Status: "approved"}
	require.NoError(t, db.Create(app).Error)
	payout := &models.Payout{BatchCode: "BATCH001", Status: "pending"}
	require.NoError(t, db.Create(payout).Error)
	other := &models.Payout{BatchCode: "BATCH002", Status: "pending"}
	require.NoError(t, db.Create(other).Error)

	require.NoError(t, db.Create(&models.PayoutItem{PayoutID: payout.ID, ApplicationID: app.ID, Status: "pending"}).Error)
	err := db.Create(&models.PayoutItem{PayoutID: other.ID, ApplicationID: app.ID, Status: "pending"}).Error
	assert.Error(t, err)
}
