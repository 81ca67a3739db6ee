package services

import (
	"testing"
	"time"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)
	officer := env.createUser(t, domain.RoleOfficer)
	citizen := env.createUser(t, domain.RoleCitizen)

	env.createApprovedApplication(t, "APP00001", program.ID, 50000, "", nil)
	env.createApprovedApplication(t, "APP00002", program.ID, 70000, "", nil)
	pending := &models.Application{Code: "APP00003", ProgramID: program.ID, FullName: "P", Status: string(domain.StatusPending)}
	require.NoError(t, env.db.Create(pending).Error)

	_, err := env.complaintService.Submit(testCtx, &SubmitComplaintInput{Title: "T"}, citizen.ID)
	require.NoError(t, err)

	payout, err := env.payoutService.CreateBatch(testCtx, &CreateBatchInput{Period: "2026-08"}, officer.ID)
	require.NoError(t, err)
	_, err = env.payoutService.SetStatus(testCtx, payout.ID, domain.PayoutStatusCompleted, officer.ID)
	require.NoError(t, err)

	stats, err := env.dashboardService.Stats(testCtx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Applications.Total)
	assert.EqualValues(t, 1, stats.Applications.Pending)
	assert.EqualValues(t, 2, stats.Applications.Paid)
	assert.EqualValues(t, 0, stats.Applications.Approved)
	assert.Equal(t, 120000.0, stats.DisbursedAmount)
	assert.Equal(t, 1, stats.ActivePrograms)
	assert.EqualValues(t, 1, stats.Citizens)
	assert.EqualValues(t, 1, stats.PendingComplaints)
	assert.EqualValues(t, 1, stats.CompletedBatches)
}

func TestYearlyReportBucketsByMonth(t *testing.T) {
	env := newTestEnv(t)
	program := env.createProgram(t, 50000)

	year := time.Now().Year()
	amount := 50000.0
	mk := func(code string, month time.Month, status domain.ApplicationStatus) {
		app := &models.Application{
			Code: code, ProgramID: program.ID, FullName: "X",
			Status: string(status), SupportAmount: &amount,
		}
		require.NoError(t, env.db.Create(app).Error)
		created := time.Date(year, month, 15, 12, 0, 0, 0, time.Local)
		require.NoError(t, env.db.Model(app).Update("created_at", created).Error)
	}

	mk("APP00001", time.March, domain.StatusApproved)
	mk("APP00002", time.March, domain.StatusRejected)
	mk("APP00003", time.July, domain.StatusPaid)

	report, err := env.dashboardService.BuildYearlyReport(testCtx, year)
	require.NoError(t, err)
	require.Len(t, report.Months, 12)

	march := report.Months[2]
	assert.EqualValues(t, 2, march.Total)
	assert.EqualValues(t, 1, march.Approved)
	assert.EqualValues(t, 1, march.Rejected)
	assert.Equal(t, 50000.0, march.ApprovedAmount)

	july := report.Months[6]
	assert.EqualValues(t, 1, july.Total)
	assert.EqualValues(t, 1, july.Paid)

	assert.EqualValues(t, 0, report.Months[0].Total)

	assert.EqualValues(t, 3, report.Total)
	assert.EqualValues(t, 1, report.ByStatus["rejected"])
	// 2 of 3 decided cases were granted
	assert.InDelta(t, 2.0/3.0, report.ApprovalRate, 0.001)
	require.Len(t, report.ByProgram, 1)
	assert.EqualValues(t, 3, report.ByProgram[0].Total)
	assert.Equal(t, 100000.0, report.ByProgram[0].Amount)
}
