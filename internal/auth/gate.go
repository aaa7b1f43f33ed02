package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

// dashboardRoles maps dashboard path prefixes to the minimum role allowed
// to enter them. Admin outranks supervisor outranks agent.
var dashboardRoles = map[string]domain.Role{
	"/admin":      domain.RoleAdmin,
	"/supervisor": domain.RoleSupervisor,
	"/agent":      domain.RoleAgent,
}

// RouteGate protects the dashboard path prefixes consumed by the UI.
// Unauthenticated visitors are redirected to /login with a callback URL;
// authenticated visitors lacking the prefix's role are sent home. API
// routes use AuthMiddleware instead and are not touched here.
func RouteGate(tokens *TokenManager, cookies SessionCookies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/api/") || path == "/login" {
			return c.Next()
		}

		var required domain.Role
		matched := false
		for prefix, role := range dashboardRoles {
			if strings.HasPrefix(path, prefix) {
				required = role
				matched = true
				break
			}
		}
		if !matched {
			return c.Next()
		}

		tokenStr := cookies.Read(c)
		if tokenStr == "" {
			return c.Redirect("/login?callbackUrl=" + path)
		}
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			return c.Redirect("/login?callbackUrl=" + path)
		}
		if !claims.Role.AtLeast(required) {
			return c.Redirect("/")
		}
		return c.Next()
	}
}
