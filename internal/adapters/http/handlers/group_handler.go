package handlers

import (
	"context"
	"errors"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles collection group endpoints
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// memberRequest is the add/remove member body
type memberRequest struct {
	BorrowerID uint `json:"borrower_id"`
}

// Create creates a collection group
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	group, err := h.groupService.Create(c.Context(), actor.Scope(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNameMissing):
			return response.BadRequest(c, "Group name is required")
		default:
			return response.InternalServerError(c, "Failed to create group")
		}
	}

	return response.Created(c, "Group created successfully", group)
}

// List returns all groups of the organization
func (h *GroupHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	groups, err := h.groupService.List(c.Context(), actor.Scope())
	if err != nil {
		return response.InternalServerError(c, "Failed to list groups")
	}

	return response.Success(c, "Groups retrieved successfully", groups)
}

// GetByID returns one group with its members
func (h *GroupHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid group ID")
	}

	group, err := h.groupService.GetByID(c.Context(), actor.Scope(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			return response.NotFound(c, "Group not found")
		default:
			return response.InternalServerError(c, "Failed to get group")
		}
	}

	return response.Success(c, "Group retrieved successfully", group)
}

// AddMember puts a borrower into a group. Adding an existing
// member is a no-op.
func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	return h.changeMember(c, h.groupService.AddMember, "Member added successfully")
}

// RemoveMember takes a borrower out of a group. Removing a
// non-member is a no-op.
func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	return h.changeMember(c, h.groupService.RemoveMember, "Member removed successfully")
}

type memberOp func(ctx context.Context, orgID, groupID, borrowerID uint) (*models.Group, error)

func (h *GroupHandler) changeMember(c *fiber.Ctx, op memberOp, message string) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid group ID")
	}

	var req memberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.BorrowerID == 0 {
		return response.BadRequest(c, "borrower_id is required")
	}

	group, err := op(c.Context(), actor.Scope(), uint(id), req.BorrowerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			return response.NotFound(c, "Group not found")
		case errors.Is(err, services.ErrBorrowerNotFound):
			return response.NotFound(c, "Borrower not found")
		default:
			return response.InternalServerError(c, "Failed to update group members")
		}
	}

	return response.Success(c, message, group)
}
