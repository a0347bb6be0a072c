package handlers

import (
	"tanzanex-lend/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// actorFrom rebuilds the acting identity from the request locals
// set by the auth middleware.
func actorFrom(c *fiber.Ctx) (domain.Actor, bool) {
	userID, ok1 := c.Locals("userID").(uint)
	orgID, ok2 := c.Locals("organizationID").(uint)
	role, ok3 := c.Locals("role").(string)
	if !ok1 || !ok2 || !ok3 {
		return domain.Actor{}, false
	}
	return domain.Actor{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           domain.Role(role),
	}, true
}
