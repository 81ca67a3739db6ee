package handlers

import (
	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayoutHandler handles payout batch endpoints
type PayoutHandler struct {
	payoutService *services.PayoutService
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payoutService *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// CreateBatch assembles a disbursement batch
// @Summary Create payout batch
// @Description Assemble a batch from approved applications not yet in any batch (Officer/Admin)
// @Tags Payouts
// @Accept json
// @Produce json
// @Param body body services.CreateBatchInput true "Batch filters"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payouts [post]
func (h *PayoutHandler) CreateBatch(c *fiber.Ctx) error {
	var input services.CreateBatchInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payout, err := h.payoutService.CreateBatch(c.Context(), &input, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to create payout batch")
	}

	return response.Created(c, "Payout batch created", fiber.Map{
		"payout": payout,
	})
}

// List lists payout batches
// @Summary List payout batches
// @Description List all payout batches, newest first (Officer/Admin)
// @Tags Payouts
// @Produce json
// @Success 200 {object} response.Response
// @Router /payouts [get]
func (h *PayoutHandler) List(c *fiber.Ctx) error {
	payouts, err := h.payoutService.ListBatches(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to list payouts")
	}

	return response.Success(c, "", fiber.Map{
		"payouts": payouts,
	})
}

// Get gets one batch with its items
// @Summary Get payout batch
// @Description Get a batch and its line items (Officer/Admin)
// @Tags Payouts
// @Produce json
// @Param id path int true "Payout ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payouts/{id} [get]
func (h *PayoutHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout ID")
	}

	payout, items, err := h.payoutService.GetBatch(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load payout")
	}

	return response.Success(c, "", fiber.Map{
		"payout": payout,
		"items":  items,
	})
}

// UpdateStatusRequest represents payout status update request
type UpdatePayoutStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a batch to a new status
// @Summary Update payout status
// @Description Update a batch status; completing a batch settles its applications (Officer/Admin)
// @Tags Payouts
// @Accept json
// @Produce json
// @Param id path int true "Payout ID"
// @Param body body UpdatePayoutStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payouts/{id}/status [put]
func (h *PayoutHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout ID")
	}

	var req UpdatePayoutStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payout, err := h.payoutService.SetStatus(c.Context(), id, req.Status, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to update payout status")
	}

	return response.Success(c, "Payout status updated", fiber.Map{
		"payout": payout,
	})
}

// Stats returns aggregate payout counters
// @Summary Payout statistics
// @Description Aggregate payout counters for the dashboard (Officer/Admin)
// @Tags Payouts
// @Produce json
// @Success 200 {object} response.Response
// @Router /payouts/stats [get]
func (h *PayoutHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.payoutService.Stats(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to load payout stats")
	}

	return response.Success(c, "", stats)
}

// ImportRequest represents a bank result file import
type ImportPayoutResultsRequest struct {
	Results []services.PayoutResultInput `json:"results"`
}

// ImportResults applies a bank result file
// @Summary Import payout results
// @Description Apply bank result rows batch by batch (Officer/Admin)
// @Tags Payouts
// @Accept json
// @Produce json
// @Param body body ImportPayoutResultsRequest true "Result rows"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payouts/import [post]
func (h *PayoutHandler) ImportResults(c *fiber.Ctx) error {
	var req ImportPayoutResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.Results) == 0 {
		return response.BadRequest(c, "No result rows provided")
	}

	result, err := h.payoutService.ImportResults(c.Context(), req.Results, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to import payout results")
	}

	return response.Success(c, "Import completed", result)
}
