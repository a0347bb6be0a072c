package handlers

import (
	"errors"

	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create records an operational expense
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	expense, err := h.expenseService.Create(c.Context(), actor.Scope(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExpenseTitleMissing):
			return response.BadRequest(c, "Title is required")
		case errors.Is(err, services.ErrExpenseAmountInvalid):
			return response.BadRequest(c, "Amount must be greater than zero")
		default:
			return response.InternalServerError(c, "Failed to create expense")
		}
	}

	return response.Created(c, "Expense recorded successfully", expense)
}

// List returns all expenses, newest first
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	expenses, err := h.expenseService.List(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to list expenses")
	}

	return response.Success(c, "Expenses retrieved successfully", expenses)
}
