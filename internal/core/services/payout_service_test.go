package services

import (
	"testing"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBatchCollectsApprovedApplications(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)

	for i := 0; i < 7; i++ {
		env.createApprovedApplication(t, "APP0000"+string(rune('1'+i)), program.ID, 50000, "Cao Lộc", nil)
	}
	// Not approved, must stay out of the batch
	pending := &models.Application{Code: "APP00099", ProgramID: program.ID, FullName: "P", Status: string(domain.StatusPending)}
	require.NoError(t, env.db.Create(pending).Error)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{
		Period: "2026-08",
	}, officer.ID)
	require.NoError(t, err)

	assert.Equal(t, "BATCH001", payout.BatchCode)
	assert.Equal(t, domain.PayoutStatusPending, payout.Status)
	assert.Equal(t, 7, payout.TotalRecipients)
	assert.Equal(t, 350000.0, payout.TotalAmount)

	items, err := env.payoutService.ListItems(testCtx, payout.ID)
	require.NoError(t, err)
	require.Len(t, items, 7)
	for _, item := range items {
		assert.Equal(t, domain.PayoutStatusPending, item.Status)
		assert.Equal(t, 50000.0, item.Amount)
		assert.NotEmpty(t, item.BeneficiaryName)
	}

	// Assembly freezes money, not application state
	var stillApproved int64
	require.NoError(t, env.db.Model(&models.Application{}).
		Where("status = ?", domain.StatusApproved).Count(&stillApproved).Error)
	assert.EqualValues(t, 7, stillApproved)
}

func TestCreateBatchSecondBatchFindsNothing(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", nil)

	first, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalRecipients)

	// Everything approved is already enrolled; a second batch comes up empty
	second, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)
	assert.Equal(t, "BATCH002", second.BatchCode)
	assert.Equal(t, 0, second.TotalRecipients)
	assert.Equal(t, 0.0, second.TotalAmount)
}

func TestCreateBatchRequiresPeriod(t *testing.T) {
	env := newTestEnv(t)
	officer := env.createUser(t, domain.RoleOfficer)

	_, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{}, officer.ID)
	assert.ErrorIs(t, err, ErrPeriodRequired)
}

func TestCreateBatchLocationFilter(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 10000)
	officer := env.createUser(t, domain.RoleOfficer)

	env.createApprovedApplication(t, "APP00001", program.ID, 10000, "Cao Lộc", nil)
	env.createApprovedApplication(t, "APP00002", program.ID, 10000, "Văn Lãng", nil)
	env.createApprovedApplication(t, "APP00003", program.ID, 10000, "Cao Lộc", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{
		Period:   "2026-08",
		Location: "Cao Lộc",
	}, officer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, payout.TotalRecipients)
	assert.Equal(t, 20000.0, payout.TotalAmount)
}

func TestCreateBatchNilAmountCountsAsZero(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 10000)
	officer := env.createUser(t, domain.RoleOfficer)

	app := &models.Application{Code: "APP00001", ProgramID: program.ID, FullName: "NoAmount", Status: string(domain.StatusApproved)}
	require.NoError(t, env.db.Create(app).Error)
	env.createApprovedApplication(t, "APP00002", program.ID, 10000, "", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, payout.TotalRecipients)
	assert.Equal(t, 10000.0, payout.TotalAmount)
}

func TestCompleteBatchSettlesApplications(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	citizen := env.createUser(t, domain.RoleCitizen)

	appA := env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", &citizen.ID)
	appB := env.createApprovedApplication(t, "APP00002", program.ID, 50000, "", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)

	payout, err = env.payoutService.SetStatus(testCtx, payout.ID, domain.PayoutStatusCompleted, officer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusCompleted, payout.Status)
	assert.NotNil(t, payout.DisbursedAt)

	for _, app := range []*models.Application{appA, appB} {
		reloaded := env.reloadApplication(t, app.ID)
		assert.Equal(t, string(domain.StatusPaid), reloaded.Status)
		assert.EqualValues(t, 1, env.historyCount(t, app.ID, domain.HistoryActionSettlement))
	}

	items, err := env.payoutService.ListItems(testCtx, payout.ID)
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, "paid", item.Status)
		assert.NotNil(t, item.PaidAt)
	}

	// Only the user-linked application produces a notification
	var notifications int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.EqualValues(t, 1, notifications)
}

func TestCompleteBatchTwiceIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	app := env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)

	_, err = env.payoutService.SetStatus(testCtx, payout.ID, domain.PayoutStatusCompleted, officer.ID)
	require.NoError(t, err)
	_, err = env.payoutService.SetStatus(testCtx, payout.ID, domain.PayoutStatusCompleted, officer.ID)
	require.NoError(t, err)

	// The settlement history did not double up
	assert.EqualValues(t, 1, env.historyCount(t, app.ID, domain.HistoryActionSettlement))
	assert.Equal(t, string(domain.StatusPaid), env.reloadApplication(t, app.ID).Status)
}

func TestSetStatusValidation(t *testing.T) {
	env := newTestEnv(t)
	officer := env.createUser(t, domain.RoleOfficer)

	_, err := env.payoutService.SetStatus(testCtx, 1, "finished", officer.ID)
	assert.ErrorIs(t, err, ErrInvalidPayoutStatus)

	_, err = env.payoutService.SetStatus(testCtx, 999, domain.PayoutStatusProcessing, officer.ID)
	assert.ErrorIs(t, err, ErrPayoutNotFound)
}

func TestProcessingDoesNotSettle(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	app := env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)

	payout, err = env.payoutService.SetStatus(testCtx, payout.ID, domain.PayoutStatusProcessing, officer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusProcessing, payout.Status)

	assert.Equal(t, string(domain.StatusApproved), env.reloadApplication(t, app.ID).Status)
	assert.EqualValues(t, 0, env.historyCount(t, app.ID, domain.HistoryActionSettlement))

	// The batch status still cascades onto the line items
	items, err := env.payoutService.ListItems(testCtx, payout.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.PayoutStatusProcessing, items[0].Status)
}

func TestCancelledBatchCascadesToItems(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	app := env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)

	_, err = env.payoutService.SetStatus(testCtx, payout.ID, domain.PayoutStatusCancelled, officer.ID)
	require.NoError(t, err)

	items, err := env.payoutService.ListItems(testCtx, payout.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.PayoutStatusCancelled, items[0].Status)

	// Cancellation never pays anyone out
	assert.Equal(t, string(domain.StatusApproved), env.reloadApplication(t, app.ID).Status)
	assert.EqualValues(t, 0, env.historyCount(t, app.ID, domain.HistoryActionSettlement))
}

func TestImportResults(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	app := env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)

	result, err := env.payoutService.ImportResults(testCtx, []PayoutResultInput{
		{BatchCode: payout.BatchCode, Status: domain.PayoutStatusCompleted},
		{BatchCode: "BATCH999", Status: domain.PayoutStatusCompleted},
		{BatchCode: payout.BatchCode, Status: "bogus"},
	}, officer.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Failures, 2)

	// The completed row went through full settlement
	assert.Equal(t, string(domain.StatusPaid), env.reloadApplication(t, app.ID).Status)
}

func TestPayoutStats(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", nil)
	env.createApprovedApplication(t, "APP00002", program.ID, 70000, "Văn Lãng", nil)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08", Location: "Văn Lãng"}, officer.ID)
	require.NoError(t, err)
	_, err = env.payoutService.SetStatus(testCtx, payout.ID, domain.PayoutStatusCompleted, officer.ID)
	require.NoError(t, err)

	stats, err := env.payoutService.Stats(testCtx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Completed)
	assert.Equal(t, 70000.0, stats.TotalDisbursed)
	assert.EqualValues(t, 1, stats.AwaitingPayment) // APP00001 still approved
}
