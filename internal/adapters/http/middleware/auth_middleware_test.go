package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tanzanex-lend/internal/config"
	"tanzanex-lend/internal/core/domain"
	"tanzanex-lend/internal/pkg/jwt"
	"tanzanex-lend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:          testSecret,
			AccessTokenMins: 15,
		},
	}
	cfg.SuperAdmin.ServiceKey = "platform-key"
	return cfg
}

func token(t *testing.T, userID, orgID uint, role string) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken(userID, orgID, role, testSecret, 15)
	require.NoError(t, err)
	return tok
}

func newTestApp(cfg *config.Config, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{AuthMiddleware(cfg)}, guards...)
	app.Get("/protected", append(chain, func(c *fiber.Ctx) error {
		return response.Success(c, "ok", nil)
	})...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	app := newTestApp(cfg)

	t.Run("rejects missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		bad, err := jwt.GenerateAccessToken(1, 1, "admin", "other-secret", 15)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("accepts bearer token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 1, "staff"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("accepts cookie token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token(t, 1, 1, "staff")})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()
	app := newTestApp(cfg, RoleMiddleware(domain.RoleAdmin))

	t.Run("allows admin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 1, "admin"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("forbids staff", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 1, "staff"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestManagerOrAdmin(t *testing.T) {
	cfg := testConfig()
	app := newTestApp(cfg, ManagerOrAdmin())

	tests := []struct {
		role string
		want int
	}{
		{"manager", fiber.StatusOK},
		{"admin", fiber.StatusOK},
		{"super-admin", fiber.StatusOK},
		{"staff", fiber.StatusForbidden},
		{"officer", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token(t, 1, 1, tt.role))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRequireOrganization(t *testing.T) {
	cfg := testConfig()
	app := newTestApp(cfg, RequireOrganization())

	t.Run("allows tenant user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 42, "staff"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("forbids orphan account", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 0, "staff"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("allows super-admin without tenant", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 0, "super-admin"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestServiceKeyMiddleware(t *testing.T) {
	cfg := testConfig()

	newAdminApp := func(cfg *config.Config) *fiber.App {
		app := fiber.New()
		app.Get("/admin", OptionalAuth(cfg), ServiceKeyMiddleware(cfg), func(c *fiber.Ctx) error {
			return response.Success(c, "ok", nil)
		})
		return app
	}
	app := newAdminApp(cfg)

	t.Run("rejects anonymous request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("rejects wrong key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("X-Service-Key", "wrong")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("accepts matching key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("X-Service-Key", "platform-key")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("accepts super-admin token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 0, "super-admin"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("rejects tenant admin token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, 1, 1, "admin"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("unset key matches nothing", func(t *testing.T) {
		bare := testConfig()
		bare.SuperAdmin.ServiceKey = ""
		bareApp := newAdminApp(bare)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("X-Service-Key", "")
		resp, err := bareApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
