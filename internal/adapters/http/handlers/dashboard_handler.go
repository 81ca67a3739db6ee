package handlers

import (
	"strconv"
	"time"

	"langson-benefits/internal/core/services"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard and report endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the admin dashboard counters
// @Summary Dashboard statistics
// @Description Aggregate counters for the admin dashboard (Admin only)
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Stats(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to load dashboard stats")
	}

	return response.Success(c, "", stats)
}

// OfficerStats returns the officer work queue counters
// @Summary Officer statistics
// @Description Review queue counters for officers (Officer/Admin)
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Router /dashboard/officer-stats [get]
func (h *DashboardHandler) OfficerStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.OfficerStats(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to load officer stats")
	}

	return response.Success(c, "", stats)
}

// YearlyReport returns the application report for a year
// @Summary Yearly report
// @Description Applications submitted in the given year, broken down by month, status and program (Officer/Admin)
// @Tags Dashboard
// @Produce json
// @Param year query int false "Year (defaults to current year)"
// @Success 200 {object} response.Response
// @Router /dashboard/reports/yearly [get]
func (h *DashboardHandler) YearlyReport(c *fiber.Ctx) error {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return response.BadRequest(c, "Invalid year")
		}
		year = parsed
	}

	report, err := h.dashboardService.BuildYearlyReport(c.Context(), year)
	if err != nil {
		return serviceError(c, err, "Failed to build report")
	}

	return response.Success(c, "", report)
}
