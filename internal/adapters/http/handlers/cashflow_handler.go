package handlers

import (
	"errors"

	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CashFlowHandler handles manual cash-flow endpoints
type CashFlowHandler struct {
	cashFlowService *services.CashFlowService
}

// NewCashFlowHandler creates a new cash flow handler
func NewCashFlowHandler(cashFlowService *services.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService}
}

// Create records a manual capital movement
func (h *CashFlowHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateCashFlowInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cf, err := h.cashFlowService.Create(c.Context(), actor.Scope(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCashFlowTypeInvalid):
			return response.BadRequest(c, "Type must be inflow or outflow")
		case errors.Is(err, services.ErrCashFlowAmountInvalid):
			return response.BadRequest(c, "Amount must be greater than zero")
		case errors.Is(err, services.ErrCashFlowNoDescription):
			return response.BadRequest(c, "Description is required")
		default:
			return response.InternalServerError(c, "Failed to create cash flow entry")
		}
	}

	return response.Created(c, "Cash flow entry recorded successfully", cf)
}

// List returns the manual cash-flow entries, newest first
func (h *CashFlowHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	entries, err := h.cashFlowService.List(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to list cash flow entries")
	}

	return response.Success(c, "Cash flow entries retrieved successfully", entries)
}

// Feed returns the combined transaction feed
func (h *CashFlowHandler) Feed(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	feed, err := h.cashFlowService.Feed(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to build transaction feed")
	}

	return response.Success(c, "Transactions retrieved successfully", feed)
}
