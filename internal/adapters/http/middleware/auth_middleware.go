package middleware

import (
	"strconv"

	"langson-benefits/internal/core/domain"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware reads the caller's identity from the x-user-id and
// x-user-role headers set by the API gateway. The gateway terminates the
// session; this service only enforces roles.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.Get("x-user-id"), 10, 32)
		if err != nil || userID == 0 {
			return response.Unauthorized(c, "Authentication required")
		}

		role := domain.Role(c.Get("x-user-role"))
		if !role.Valid() {
			return response.Unauthorized(c, "Authentication required")
		}

		c.Locals("userID", uint(userID))
		c.Locals("role", role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// OfficerOrAdmin middleware allows OFFICER or ADMIN roles
func OfficerOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleOfficer, domain.RoleAdmin)
}

// UserID returns the authenticated user ID from locals
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// UserRole returns the authenticated role from locals
func UserRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals("role").(domain.Role)
	return role
}
