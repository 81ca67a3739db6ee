package handlers

import (
	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProgramHandler handles support program endpoints
type ProgramHandler struct {
	programService *services.ProgramService
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(programService *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// List lists programs
// @Summary List programs
// @Description List support programs. Citizens only see active programs.
// @Tags Programs
// @Produce json
// @Success 200 {object} response.Response
// @Router /programs [get]
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	programs, err := h.programService.List(c.Context(), middleware.UserRole(c))
	if err != nil {
		return serviceError(c, err, "Failed to list programs")
	}

	return response.Success(c, "", fiber.Map{
		"programs": programs,
	})
}

// Get gets one program
// @Summary Get program
// @Description Get a support program by ID
// @Tags Programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /programs/{id} [get]
func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	program, err := h.programService.GetByID(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load program")
	}

	return response.Success(c, "", fiber.Map{
		"program": program,
	})
}

// Create creates a program
// @Summary Create program
// @Description Create a new support program (Admin only)
// @Tags Programs
// @Accept json
// @Produce json
// @Param body body services.ProgramInput true "Program data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /programs [post]
func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	var input services.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	program, err := h.programService.Create(c.Context(), &input, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to create program")
	}

	return response.Created(c, "Program created", fiber.Map{
		"program": program,
	})
}

// Update updates a program
// @Summary Update program
// @Description Update a support program (Admin only)
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param body body services.ProgramInput true "Program data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /programs/{id} [put]
func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	var input services.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	program, err := h.programService.Update(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update program")
	}

	return response.Success(c, "Program updated", fiber.Map{
		"program": program,
	})
}

// Delete deactivates a program
// @Summary Deactivate program
// @Description Soft-delete a program so it stops accepting applications (Admin only)
// @Tags Programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /programs/{id} [delete]
func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	if err := h.programService.Deactivate(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to deactivate program")
	}

	return response.Success(c, "Program deactivated", nil)
}
