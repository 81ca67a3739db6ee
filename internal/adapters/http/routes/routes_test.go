package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, db, &config.Config{AppMode: "dev", Port: "5000"})
	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, userID uint, role string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set("x-user-id", fmt.Sprint(userID))
		req.Header.Set("x-user-role", role)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func seedProgramAndUsers(t *testing.T, db *gorm.DB) (program *models.SupportProgram, citizen, officer *models.User) {
	t.Helper()

	program = &models.SupportProgram{Code: "HTSX", Name: "Hỗ trợ sản xuất", Amount: 50000, Status: "active"}
	require.NoError(t, db.Create(program).Error)

	citizen = &models.User{FullName: "Citizen", Email: "citizen@example.com", PasswordHash: "x", Role: "CITIZEN", Status: "active"}
	require.NoError(t, db.Create(citizen).Error)
	officer = &models.User{FullName: "Officer", Email: "officer@example.com", PasswordHash: "x", Role: "OFFICER", Status: "active"}
	require.NoError(t, db.Create(officer).Error)
	return program, citizen, officer
}

func TestRoutesRequireIdentityHeaders(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/applications", nil, 0, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/health", nil, 0, "")
	// Health is public (gateway liveness probe)
	assert.NotEqual(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutesRejectUnknownRole(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("x-user-id", "1")
	req.Header.Set("x-user-role", "ROOT")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestApplicationLifecycleOverHTTP(t *testing.T) {
	app, db := setupTestApp(t)
	program, citizen, officer := seedProgramAndUsers(t, db)

	// Citizen submits
	resp, payload := doRequest(t, app, http.MethodPost, "/api/applications", fiber.Map{
		"program_id": program.ID,
		"full_name":  "Nguyễn Văn A",
		"citizen_id": "082012345678",
	}, citizen.ID, "CITIZEN")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := payload["data"].(map[string]interface{})
	application := data["application"].(map[string]interface{})
	assert.Equal(t, "APP00001", application["code"])
	assert.Equal(t, "pending", application["status"])
	appID := uint(application["id"].(float64))

	// Citizen cannot decide their own case
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), fiber.Map{
		"status": "approved",
	}, citizen.ID, "CITIZEN")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Officer approves
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), fiber.Map{
		"status":  "approved",
		"comment": "Đủ điều kiện",
	}, officer.ID, "OFFICER")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Illegal transition surfaces as 400
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), fiber.Map{
		"status": "rejected",
	}, officer.ID, "OFFICER")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Citizen reads their audit trail
	resp, payload = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/applications/%d/history", appID), nil, citizen.ID, "CITIZEN")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := payload["data"].(map[string]interface{})["history"].([]interface{})
	assert.Len(t, history, 2)
}

func TestPayoutEndpointsStaffOnly(t *testing.T) {
	app, db := setupTestApp(t)
	_, citizen, officer := seedProgramAndUsers(t, db)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/payouts", nil, citizen.ID, "CITIZEN")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/payouts", nil, officer.ID, "OFFICER")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Missing period is a 400
	resp, _ = doRequest(t, app, http.MethodPost, "/api/payouts", fiber.Map{}, officer.ID, "OFFICER")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProgramAdminGuard(t *testing.T) {
	app, db := setupTestApp(t)
	_, _, officer := seedProgramAndUsers(t, db)

	admin := &models.User{FullName: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: "ADMIN", Status: "active"}
	require.NoError(t, db.Create(admin).Error)

	body := fiber.Map{"code": "HTTT", "name": "Hỗ trợ thiên tai", "amount": 100000}

	resp, _ := doRequest(t, app, http.MethodPost, "/api/programs", body, officer.ID, "OFFICER")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/programs", body, admin.ID, "ADMIN")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate code conflicts
	resp, _ = doRequest(t, app, http.MethodPost, "/api/programs", body, admin.ID, "ADMIN")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestNotificationEndpoints(t *testing.T) {
	app, db := setupTestApp(t)
	_, citizen, _ := seedProgramAndUsers(t, db)

	require.NoError(t, db.Create(&models.Notification{UserID: citizen.ID, Title: "T", Message: "M"}).Error)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", nil, citizen.ID, "CITIZEN")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, payload["data"].(map[string]interface{})["unread"])

	resp, _ = doRequest(t, app, http.MethodPut, "/api/notifications/read-all", nil, citizen.ID, "CITIZEN")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, payload = doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", nil, citizen.ID, "CITIZEN")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, payload["data"].(map[string]interface{})["unread"])
}
