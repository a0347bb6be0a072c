package handlers

import (
	"context"
	"errors"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OrganizationHandler handles the platform-operator organization
// surface.
type OrganizationHandler struct {
	organizationService *services.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(organizationService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

// List returns every organization on the platform
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	includeArchived := c.QueryBool("include_archived", false)

	orgs, err := h.organizationService.List(c.Context(), includeArchived)
	if err != nil {
		return response.InternalServerError(c, "Failed to list organizations")
	}

	return response.Success(c, "Organizations retrieved successfully", orgs)
}

// GetByID returns one organization
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid organization ID")
	}

	org, err := h.organizationService.GetByID(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		default:
			return response.InternalServerError(c, "Failed to get organization")
		}
	}

	return response.Success(c, "Organization retrieved successfully", org)
}

// Activate puts an organization on a paid subscription
func (h *OrganizationHandler) Activate(c *fiber.Ctx) error {
	return h.transition(c, h.organizationService.Activate, "Organization activated successfully")
}

// Suspend locks an organization out immediately
func (h *OrganizationHandler) Suspend(c *fiber.Ctx) error {
	return h.transition(c, h.organizationService.Suspend, "Organization suspended successfully")
}

// Archive retires an organization
func (h *OrganizationHandler) Archive(c *fiber.Ctx) error {
	return h.transition(c, h.organizationService.Archive, "Organization archived successfully")
}

// Restore brings an archived organization back on a fresh trial
func (h *OrganizationHandler) Restore(c *fiber.Ctx) error {
	return h.transition(c, h.organizationService.Restore, "Organization restored successfully")
}

type orgTransition func(ctx context.Context, id uint) (*models.Organization, error)

func (h *OrganizationHandler) transition(c *fiber.Ctx, op orgTransition, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid organization ID")
	}

	org, err := op(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		case errors.Is(err, services.ErrOrganizationArchived):
			return response.Conflict(c, "Organization is archived")
		case errors.Is(err, services.ErrOrganizationNotArchived):
			return response.Conflict(c, "Organization is not archived")
		default:
			return response.InternalServerError(c, "Failed to update organization")
		}
	}

	return response.Success(c, message, org)
}
