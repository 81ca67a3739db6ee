package handlers

import (
	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ComplaintHandler handles complaint endpoints
type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// Create files a complaint
// @Summary Submit complaint
// @Description File a new complaint for the calling citizen
// @Tags Complaints
// @Accept json
// @Produce json
// @Param body body services.SubmitComplaintInput true "Complaint data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	var input services.SubmitComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaint, err := h.complaintService.Submit(c.Context(), &input, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to submit complaint")
	}

	return response.Created(c, "Complaint submitted", fiber.Map{
		"complaint": complaint,
	})
}

// List lists complaints
// @Summary List complaints
// @Description List complaints. Citizens only see their own.
// @Tags Complaints
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} response.Response
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	complaints, err := h.complaintService.List(c.Context(), c.Query("status"), middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return serviceError(c, err, "Failed to list complaints")
	}

	return response.Success(c, "", fiber.Map{
		"complaints": complaints,
	})
}

// Stats returns complaint counters
// @Summary Complaint statistics
// @Description Complaint counts per handling state (Officer/Admin)
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Response
// @Router /complaints/stats [get]
func (h *ComplaintHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.complaintService.Stats(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to load complaint stats")
	}

	return response.Success(c, "", stats)
}

// Get gets one complaint
// @Summary Get complaint
// @Description Get a complaint by ID
// @Tags Complaints
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid complaint ID")
	}

	complaint, err := h.complaintService.GetByID(c.Context(), id, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return serviceError(c, err, "Failed to load complaint")
	}

	return response.Success(c, "", fiber.Map{
		"complaint": complaint,
	})
}

// AssignRequest represents complaint assignment request
type AssignComplaintRequest struct {
	OfficerID uint `json:"officer_id"`
}

// Assign hands a complaint to an officer
// @Summary Assign complaint
// @Description Assign a complaint to an officer and mark it in progress (Officer/Admin)
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Param body body AssignComplaintRequest true "Officer"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/assign [put]
func (h *ComplaintHandler) Assign(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid complaint ID")
	}

	var req AssignComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	officerID := req.OfficerID
	if officerID == 0 {
		officerID = middleware.UserID(c)
	}

	complaint, err := h.complaintService.Assign(c.Context(), id, officerID)
	if err != nil {
		return serviceError(c, err, "Failed to assign complaint")
	}

	return response.Success(c, "Complaint assigned", fiber.Map{
		"complaint": complaint,
	})
}

// ResolveRequest represents complaint resolution request
type ResolveComplaintRequest struct {
	Resolution string `json:"resolution"`
}

// Resolve closes a complaint
// @Summary Resolve complaint
// @Description Record the resolution and close the complaint (Officer/Admin)
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Param body body ResolveComplaintRequest true "Resolution"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/resolve [put]
func (h *ComplaintHandler) Resolve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid complaint ID")
	}

	var req ResolveComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaint, err := h.complaintService.Resolve(c.Context(), id, req.Resolution, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to resolve complaint")
	}

	return response.Success(c, "Complaint resolved", fiber.Map{
		"complaint": complaint,
	})
}
