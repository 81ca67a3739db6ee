package handlers

import (
	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/pagination"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the admin user console endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List lists users
// @Summary List users
// @Description List accounts with search and role filters (Admin only)
// @Tags Users
// @Produce json
// @Param search query string false "Search by name or email"
// @Param role query string false "Role filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	users, total, err := h.userService.List(c.Context(), c.Query("search"), c.Query("role"), params)
	if err != nil {
		return serviceError(c, err, "Failed to list users")
	}

	items := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, user.ToResponse())
	}

	return response.Success(c, "", pagination.NewResponse(items, params, total))
}

// Officers lists assignable staff
// @Summary List officers
// @Description List accounts that can be assigned review work (Officer/Admin)
// @Tags Users
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/officers [get]
func (h *UserHandler) Officers(c *fiber.Ctx) error {
	officers, err := h.userService.ListOfficers(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to list officers")
	}

	items := make([]*models.UserResponse, 0, len(officers))
	for _, user := range officers {
		items = append(items, user.ToResponse())
	}

	return response.Success(c, "", fiber.Map{
		"officers": items,
	})
}

// Stats returns account counters per role
// @Summary User statistics
// @Description Account counts per role (Admin only)
// @Tags Users
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/stats [get]
func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to load user stats")
	}

	return response.Success(c, "", stats)
}

// Create creates an account with an explicit role
// @Summary Create user
// @Description Create an account with an explicit role (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "Account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.CreateUser(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create user")
	}

	return response.Created(c, "User created", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Update updates an account
// @Summary Update user
// @Description Update an account's role, status or password (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Account data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUser(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update user")
	}

	return response.Success(c, "User updated", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Delete removes an account
// @Summary Delete user
// @Description Remove an account (Admin only)
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete user")
	}

	return response.Success(c, "User deleted", nil)
}
