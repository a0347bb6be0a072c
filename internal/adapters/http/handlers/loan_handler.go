package handlers

import (
	"errors"

	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/pagination"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan and repayment endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// Create books a new loan
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Create(c.Context(), actor.Scope(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBorrowerRequired):
			return response.BadRequest(c, "borrower_id is required")
		case errors.Is(err, services.ErrAmountRequired):
			return response.BadRequest(c, "amount_loaned must be greater than zero")
		case errors.Is(err, services.ErrRateNegative):
			return response.BadRequest(c, "interest_rate cannot be negative")
		case errors.Is(err, services.ErrMonthsInvalid):
			return response.BadRequest(c, "months must be at least 1")
		case errors.Is(err, services.ErrBorrowerNotFound):
			return response.NotFound(c, "Borrower not found")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}

	return response.Created(c, "Loan created successfully", loan)
}

// List returns a page of loans
func (h *LoanHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	loans, total, err := h.loanService.List(c.Context(), actor.Scope(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully",
		pagination.NewResponse(loans, params, total))
}

// GetByID returns one loan
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), actor.Scope(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		default:
			return response.InternalServerError(c, "Failed to get loan")
		}
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// Repay applies a payment to a loan
func (h *LoanHandler) Repay(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.RepaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, repayment, err := h.loanService.Repay(c.Context(), actor.Scope(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRepaymentInvalid):
			return response.BadRequest(c, "amount_paid must be greater than zero")
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		default:
			return response.InternalServerError(c, "Failed to apply repayment")
		}
	}

	return response.Created(c, "Repayment recorded successfully", fiber.Map{
		"loan":      loan,
		"repayment": repayment,
	})
}

// createRepaymentRequest is the flat repayment body, naming the
// target loan instead of taking it from the path.
type createRepaymentRequest struct {
	LoanID uint `json:"loan_id"`
	services.RepaymentInput
}

// CreateRepayment applies a payment to the loan named in the body
func (h *LoanHandler) CreateRepayment(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req createRepaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.LoanID == 0 {
		return response.BadRequest(c, "loan_id is required")
	}

	loan, repayment, err := h.loanService.Repay(c.Context(), actor.Scope(), req.LoanID, &req.RepaymentInput)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRepaymentInvalid):
			return response.BadRequest(c, "amount_paid must be greater than zero")
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		default:
			return response.InternalServerError(c, "Failed to apply repayment")
		}
	}

	return response.Created(c, "Repayment recorded successfully", fiber.Map{
		"loan":      loan,
		"repayment": repayment,
	})
}

// ListRepayments returns every repayment of the organization
func (h *LoanHandler) ListRepayments(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	repayments, err := h.loanService.ListRepayments(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to list repayments")
	}

	return response.Success(c, "Repayments retrieved successfully", repayments)
}
