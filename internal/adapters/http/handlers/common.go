package handlers

import (
	"errors"
	"strconv"

	"langson-benefits/internal/core/domain"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps service errors onto HTTP responses. Sentinels wrap one
// of the domain error categories, so a single errors.Is chain covers every
// service; anything unclassified is a 500 with the given fallback message.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// parseID reads a numeric path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
