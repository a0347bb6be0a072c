package handlers

import (
	"errors"

	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/pagination"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BorrowerHandler handles borrower endpoints
type BorrowerHandler struct {
	borrowerService *services.BorrowerService
}

// NewBorrowerHandler creates a new borrower handler
func NewBorrowerHandler(borrowerService *services.BorrowerService) *BorrowerHandler {
	return &BorrowerHandler{borrowerService: borrowerService}
}

// Create registers a new borrower
func (h *BorrowerHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateBorrowerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	borrower, err := h.borrowerService.Create(c.Context(), actor.Scope(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBorrowerNameMissing):
			return response.BadRequest(c, "Full name is required")
		default:
			return response.InternalServerError(c, "Failed to create borrower")
		}
	}

	return response.Created(c, "Borrower created successfully", borrower)
}

// List returns a page of borrowers
func (h *BorrowerHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	borrowers, total, err := h.borrowerService.List(c.Context(), actor.Scope(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list borrowers")
	}

	return response.Success(c, "Borrowers retrieved successfully",
		pagination.NewResponse(borrowers, params, total))
}

// GetByID returns one borrower
func (h *BorrowerHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid borrower ID")
	}

	borrower, err := h.borrowerService.GetByID(c.Context(), actor.Scope(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBorrowerNotFound):
			return response.NotFound(c, "Borrower not found")
		default:
			return response.InternalServerError(c, "Failed to get borrower")
		}
	}

	return response.Success(c, "Borrower retrieved successfully", borrower)
}
