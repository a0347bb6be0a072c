package middleware

import (
	"strings"

	"tanzanex-lend/internal/config"
	"tanzanex-lend/internal/core/domain"
	"tanzanex-lend/internal/core/services"
	"tanzanex-lend/internal/pkg/jwt"
	"tanzanex-lend/internal/pkg/password"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. On success it
// stores the resolved actor in the request locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set actor identity in context
		c.Locals("userID", claims.UserID)
		c.Locals("organizationID", claims.OrganizationID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// Actor rebuilds the acting identity from the request locals. It
// only works behind AuthMiddleware.
func Actor(c *fiber.Ctx) (domain.Actor, bool) {
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

// RequireOrganization rejects tokens that carry no tenant. Only
// super-admins legitimately have none, and they use the platform
// surface instead.
func RequireOrganization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := Actor(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !actor.IsSuperAdmin() && actor.OrganizationID == 0 {
			return response.Forbidden(c, "No organization resolved for this account")
		}
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := Actor(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if actor.Role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only organization admins
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleSuperAdmin)
}

// ManagerOrAdmin allows managers and admins
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleManager, domain.RoleAdmin, domain.RoleSuperAdmin)
}

// OptionalAuth sets the actor locals when a valid token is present
// but never rejects the request.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken != "" {
			if claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret); err == nil {
				c.Locals("userID", claims.UserID)
				c.Locals("organizationID", claims.OrganizationID)
				c.Locals("role", claims.Role)
			}
		}

		return c.Next()
	}
}

// ServiceKeyMiddleware guards the platform-operator surface. A
// request passes with either a super-admin bearer token or the
// X-Service-Key header matching the configured key. The comparison
// is constant time, and an unset key matches nothing.
func ServiceKeyMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if actor, ok := Actor(c); ok && actor.IsSuperAdmin() {
			return c.Next()
		}

		key := c.Get("X-Service-Key")
		if key != "" && cfg.SuperAdmin.ServiceKey != "" &&
			password.SecureCompare(key, cfg.SuperAdmin.ServiceKey) {
			return c.Next()
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// SubscriptionGate locks tenants whose trial or subscription has
// lapsed out of the data surfaces. Super-admins pass through.
func SubscriptionGate(subSvc *services.SubscriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := Actor(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if actor.IsSuperAdmin() {
			return c.Next()
		}

		status, err := subSvc.Status(c.UserContext(), actor.OrganizationID)
		if err != nil {
			if err == services.ErrOrganizationNotFound {
				return response.Forbidden(c, "No organization resolved for this account")
			}
			return response.InternalServerError(c, "Failed to check subscription")
		}
		if status.Locked {
			return response.Locked(c, status.Reason)
		}

		return c.Next()
	}
}
