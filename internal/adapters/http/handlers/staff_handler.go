package handlers

import (
	"errors"

	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StaffHandler handles staff management endpoints
type StaffHandler struct {
	staffService *services.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Create adds a staff account to the organization
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateStaffInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	staff, err := h.staffService.Create(c.Context(), actor.Scope(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffRoleInvalid):
			return response.BadRequest(c, "Role must be admin, manager, staff or officer")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, services.ErrEmailAlreadyUsed):
			return response.Conflict(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to create staff member")
		}
	}

	return response.Created(c, "Staff member created successfully", staff)
}

// List returns the staff accounts of the organization
func (h *StaffHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	staff, err := h.staffService.List(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to list staff")
	}

	return response.Success(c, "Staff retrieved successfully", staff)
}

// Update changes a staff member's name, role or active flag
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid staff ID")
	}

	var input services.UpdateStaffInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	staff, err := h.staffService.Update(c.Context(), actor.Scope(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return response.NotFound(c, "Staff member not found")
		case errors.Is(err, services.ErrStaffRoleInvalid):
			return response.BadRequest(c, "Role must be admin, manager, staff or officer")
		case errors.Is(err, services.ErrCannotChangeOwner):
			return response.Forbidden(c, "The owner role cannot be changed")
		default:
			return response.InternalServerError(c, "Failed to update staff member")
		}
	}

	return response.Success(c, "Staff member updated successfully", staff)
}

// Delete removes a staff account
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid staff ID")
	}

	if err := h.staffService.Delete(c.Context(), actor.Scope(), actor.UserID, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return response.NotFound(c, "Staff member not found")
		case errors.Is(err, services.ErrCannotDeleteOwner):
			return response.Forbidden(c, "The organization owner cannot be removed")
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.Forbidden(c, "Cannot delete your own account")
		default:
			return response.InternalServerError(c, "Failed to delete staff member")
		}
	}

	return response.Success(c, "Staff member deleted successfully", nil)
}
