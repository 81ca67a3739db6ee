package services

import (
	"context"
	"testing"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/adapters/persistence/repositories"
	"langson-benefits/internal/core/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv bundles a fresh in-memory database with every service wired the
// same way routes.Setup wires them.
type testEnv struct {
	db               *gorm.DB
	appService       *ApplicationService
	payoutService    *PayoutService
	programService   *ProgramService
	userService      *UserService
	complaintService *ComplaintService
	dashboardService *DashboardService
	notifyService    *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	userRepo := repositories.NewUserRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	historyRepo := repositories.NewApplicationHistoryRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	itemRepo := repositories.NewPayoutItemRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	sequenceRepo := repositories.NewSequenceRepository(db)

	notifyService := NewNotificationService(notificationRepo)

	return &testEnv{
		db:               db,
		appService:       NewApplicationService(db, appRepo, historyRepo, programRepo, sequenceRepo, notifyService),
		payoutService:    NewPayoutService(db, payoutRepo, itemRepo, appRepo, historyRepo, sequenceRepo, notifyService),
		programService:   NewProgramService(programRepo),
		userService:      NewUserService(userRepo),
		complaintService: NewComplaintService(db, complaintRepo, sequenceRepo, notifyService),
		dashboardService: NewDashboardService(appRepo, payoutRepo, programRepo, userRepo, complaintRepo),
		notifyService:    notifyService,
	}
}

func (e *testEnv) createProgram(t *testing.T, amount float64) *models.SupportProgram {
	t.Helper()
	program := &models.SupportProgram{
		Code:   "HTSX",
		Name:   "Hỗ trợ sản xuất",
		Amount: amount,
		Status: domain.ProgramStatusActive,
	}
	require.NoError(t, e.db.Create(program).Error)
	return program
}

func (e *testEnv) createUser(t *testing.T, role domain.Role) *models.User {
	t.Helper()
	user := &models.User{
		FullName:     "Test " + string(role),
		Email:        string(role) + "@example.com",
		PasswordHash: "x",
		Role:         string(role),
		Status:       domain.UserStatusActive,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// createApprovedApplication inserts an application directly in approved
// state, bypassing the lifecycle, for payout fixtures.
func (e *testEnv) createApprovedApplication(t *testing.T, code string, programID uint, amount float64, district string, userID *uint) *models.Application {
	t.Helper()
	app := &models.Application{
		Code:          code,
		UserID:        userID,
		ProgramID:     programID,
		CitizenID:     "0820" + code,
		FullName:      "Beneficiary " + code,
		District:      district,
		SupportAmount: &amount,
		Status:        string(domain.StatusApproved),
	}
	require.NoError(t, e.db.Create(app).Error)
	return app
}

func (e *testEnv) historyCount(t *testing.T, applicationID uint, action string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.ApplicationHistory{}).
		Where("application_id = ? AND action = ?", applicationID, action).
		Count(&count).Error)
	return count
}

func (e *testEnv) reloadApplication(t *testing.T, id uint) *models.Application {
	t.Helper()
	var app models.Application
	require.NoError(t, e.db.First(&app, id).Error)
	return &app
}

var testCtx = context.Background()
