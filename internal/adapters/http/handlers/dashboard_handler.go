package handlers

import (
	"errors"

	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles reporting endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Metrics returns the headline portfolio numbers
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	metrics, err := h.dashboardService.Metrics(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute metrics")
	}

	return response.Success(c, "Metrics retrieved successfully", metrics)
}

// Report returns a period report. The period query parameter
// selects monthly (default) or yearly; year and month pick the
// reporting window, defaulting to the current one.
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	period := c.Query("period", services.PeriodMonthly)
	year := c.QueryInt("year", 0)
	month := c.QueryInt("month", 0)

	report, err := h.dashboardService.Report(c.Context(), actor.Scope(), period, year, month)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod):
			return response.BadRequest(c, "Period must be monthly or yearly")
		case errors.Is(err, services.ErrInvalidMonth):
			return response.BadRequest(c, "Month must be between 1 and 12")
		default:
			return response.InternalServerError(c, "Failed to build report")
		}
	}

	return response.Success(c, "Report retrieved successfully", report)
}

// Aging returns the past-due report with expected collections
func (h *DashboardHandler) Aging(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	aging, err := h.dashboardService.Aging(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute aging report")
	}

	return response.Success(c, "Aging report retrieved successfully", aging)
}

// TodayTransactions returns today's merged transaction feed
func (h *DashboardHandler) TodayTransactions(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	feed, err := h.dashboardService.TodayTransactions(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to load today's transactions")
	}

	return response.Success(c, "Today's transactions retrieved successfully", feed)
}

// LoansVsRepayments returns the monthly chart series
func (h *DashboardHandler) LoansVsRepayments(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	points, err := h.dashboardService.LoansVsRepayments(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to build chart")
	}

	return response.Success(c, "Chart retrieved successfully", points)
}
