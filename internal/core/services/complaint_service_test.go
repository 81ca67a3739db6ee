package services

import (
	"testing"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplaintLifecycle(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createUser(t, domain.RoleCitizen)
	officer := env.createUser(t, domain.RoleOfficer)

	complaint, err := env.complaintService.Submit(testCtx, &SubmitComplaintInput{
		Title:       "Chưa nhận được tiền hỗ trợ",
		Description: "Đã được duyệt từ tháng trước",
	}, citizen.ID)
	require.NoError(t, err)
	assert.Equal(t, "CMP00001", complaint.Code)
	assert.Equal(t, domain.ComplaintStatusPending, complaint.Status)

	complaint, err = env.complaintService.Assign(testCtx, complaint.ID, officer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
	require.NotNil(t, complaint.AssignedTo)
	assert.Equal(t, officer.ID, *complaint.AssignedTo)

	complaint, err = env.complaintService.Resolve(testCtx, complaint.ID, "Đã chi trả bổ sung", officer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusResolved, complaint.Status)
	assert.NotNil(t, complaint.ResolvedAt)

	// The citizen who filed it gets notified
	var notifications int64
	require.NoError(t, env.db.Model(&models.Notification{}).
		Where("user_id = ?", citizen.ID).Count(&notifications).Error)
	assert.EqualValues(t, 1, notifications)
}

func TestComplaintValidationAndVisibility(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createUser(t, domain.RoleCitizen)
	officer := env.createUser(t, domain.RoleOfficer)

	_, err := env.complaintService.Submit(testCtx, &SubmitComplaintInput{}, citizen.ID)
	assert.ErrorIs(t, err, ErrComplaintTitleRequired)

	complaint, err := env.complaintService.Submit(testCtx, &SubmitComplaintInput{Title: "T"}, citizen.ID)
	require.NoError(t, err)

	_, err = env.complaintService.Resolve(testCtx, complaint.ID, "", officer.ID)
	assert.ErrorIs(t, err, ErrResolutionRequired)

	// A different citizen cannot read it
	other, err := env.userService.Register(testCtx, &RegisterInput{
		FullName: "Other", Email: "other@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	_, err = env.complaintService.GetByID(testCtx, complaint.ID, other.ID, domain.RoleCitizen)
	assert.ErrorIs(t, err, ErrComplaintNotFound)

	// Citizens list only their own
	mine, err := env.complaintService.List(testCtx, "", citizen.ID, domain.RoleCitizen)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := env.complaintService.List(testCtx, "", other.ID, domain.RoleCitizen)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
