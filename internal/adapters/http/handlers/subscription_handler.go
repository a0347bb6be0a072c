package handlers

import (
	"errors"

	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler handles tenant subscription endpoints
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Status returns the acting organization's subscription state.
// Unlike the data surfaces this endpoint is reachable while locked,
// so a lapsed tenant can see why.
func (h *SubscriptionHandler) Status(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	status, err := h.subscriptionService.Status(c.Context(), actor.OrganizationID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		default:
			return response.InternalServerError(c, "Failed to check subscription")
		}
	}

	return response.Success(c, "Subscription status retrieved successfully", status)
}
