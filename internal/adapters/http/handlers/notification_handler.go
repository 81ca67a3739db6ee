package handlers

import (
	"strconv"

	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notifyService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifyService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifyService: notifyService}
}

// List lists the caller's notifications
// @Summary List notifications
// @Description List the authenticated user's notifications
// @Tags Notifications
// @Produce json
// @Param is_read query bool false "Read state filter"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "Invalid is_read value")
		}
		isRead = &v
	}

	notifications, err := h.notifyService.ListByUser(c.Context(), middleware.UserID(c), isRead)
	if err != nil {
		return serviceError(c, err, "Failed to list notifications")
	}

	return response.Success(c, "", fiber.Map{
		"notifications": notifications,
	})
}

// UnreadCount counts the caller's unread notifications
// @Summary Unread count
// @Description Count the authenticated user's unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notifyService.UnreadCount(c.Context(), middleware.UserID(c))
	if err != nil {
		return serviceError(c, err, "Failed to count notifications")
	}

	return response.Success(c, "", fiber.Map{
		"unread": count,
	})
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Description Mark one of the caller's notifications as read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notifyService.MarkRead(c.Context(), id, middleware.UserID(c)); err != nil {
		return serviceError(c, err, "Failed to mark notification read")
	}

	return response.Success(c, "Notification marked read", nil)
}

// MarkAllRead marks all notifications read
// @Summary Mark all notifications read
// @Description Mark all of the caller's notifications as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notifyService.MarkAllRead(c.Context(), middleware.UserID(c)); err != nil {
		return serviceError(c, err, "Failed to mark notifications read")
	}

	return response.Success(c, "All notifications marked read", nil)
}
