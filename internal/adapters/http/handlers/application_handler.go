package handlers

import (
	"strconv"

	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/pagination"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles benefit application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Create submits a new application
// @Summary Create application
// @Description Submit a new benefit application
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body services.CreateApplicationInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var input services.CreateApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.appService.Create(c.Context(), &input, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return serviceError(c, err, "Failed to create application")
	}

	return response.Created(c, "Application submitted", fiber.Map{
		"application": app.ToResponse(),
	})
}

// List lists applications
// @Summary List applications
// @Description List applications. Citizens only see their own.
// @Tags Applications
// @Produce json
// @Param status query string false "Status filter"
// @Param program_id query int false "Program filter"
// @Param search query string false "Search by code, name or citizen ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	input := &services.ListApplicationsInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if raw := c.Query("program_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid program_id")
		}
		programID := uint(id)
		input.ProgramID = &programID
	}

	params := pagination.GetParams(c)
	apps, total, err := h.appService.List(c.Context(), input, middleware.UserID(c), middleware.UserRole(c), params)
	if err != nil {
		return serviceError(c, err, "Failed to list applications")
	}

	items := make([]*models.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		items = append(items, app.ToResponse())
	}

	return response.Success(c, "", pagination.NewResponse(items, params, total))
}

// Get gets one application
// @Summary Get application
// @Description Get an application with its relations
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.appService.GetByID(c.Context(), id, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return serviceError(c, err, "Failed to load application")
	}

	return response.Success(c, "", fiber.Map{
		"application": app,
	})
}

// UpdateStatus applies a review decision
// @Summary Update application status
// @Description Move an application through its review lifecycle (Officer/Admin)
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param body body services.TransitionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.TransitionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.appService.Transition(c.Context(), id, &input, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to update status")
	}

	return response.Success(c, "Status updated", fiber.Map{
		"application": app.ToResponse(),
	})
}

// History returns an application's audit trail
// @Summary Application history
// @Description Get the full audit trail of an application, oldest first
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id}/history [get]
func (h *ApplicationHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	history, err := h.appService.ListHistory(c.Context(), id, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return serviceError(c, err, "Failed to load history")
	}

	return response.Success(c, "", fiber.Map{
		"history": history,
	})
}
