package handlers

import (
	"errors"

	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles account endpoints
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register registers a citizen account
// @Summary Register
// @Description Register a new citizen account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Register(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to register")
	}

	return response.Created(c, "Registered successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials
// @Summary Login
// @Description Verify credentials and return the account profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	user, err := h.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, services.ErrAccountDisabled):
			return response.Forbidden(c, "Account is disabled")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Me returns the caller's profile
// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to load profile")
	}

	return response.Success(c, "", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateProfile updates the caller's profile
// @Summary Update profile
// @Description Update the authenticated user's profile fields
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.UpdateProfileInput true "Profile data"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Context(), middleware.UserID(c), &input)
	if err != nil {
		return serviceError(c, err, "Failed to update profile")
	}

	return response.Success(c, "Profile updated", fiber.Map{
		"user": user.ToResponse(),
	})
}

// ChangePasswordRequest represents change password request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword changes the caller's password
// @Summary Change password
// @Description Change the authenticated user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Passwords"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err := h.userService.ChangePassword(c.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Current password is incorrect")
		}
		return serviceError(c, err, "Failed to change password")
	}

	return response.Success(c, "Password changed", nil)
}
