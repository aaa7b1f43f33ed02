package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

func gateApp() (*fiber.App, *TokenManager) {
	tokens := NewTokenManager("test-secret", time.Hour)
	cookies := SessionCookies{Name: "sales_session"}

	app := fiber.New()
	app.Use(RouteGate(tokens, cookies))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/", ok)
	app.Get("/login", ok)
	app.Get("/admin/users", ok)
	app.Get("/agent/dashboard", ok)
	app.Get("/api/ping", ok)
	return app, tokens
}

func gateRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "sales_session", Value: token})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestRouteGateRedirectsAnonymousToLogin(t *testing.T) {
	app, _ := gateApp()

	resp := gateRequest(t, app, "/admin/users", "")

	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status %d, want redirect", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?callbackUrl=/admin/users" {
		t.Fatalf("location %q", loc)
	}
}

func TestRouteGateSendsUnderprivilegedHome(t *testing.T) {
	app, tokens := gateApp()
	token, _, err := tokens.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleAgent})
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	resp := gateRequest(t, app, "/admin/users", token)

	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status %d, want redirect", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("location %q", loc)
	}
}

func TestRouteGateAdmitsSufficientRole(t *testing.T) {
	app, tokens := gateApp()

	// Admin outranks the agent prefix; both pass.
	for _, path := range []string{"/admin/users", "/agent/dashboard"} {
		token, _, err := tokens.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleAdmin})
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		resp := gateRequest(t, app, path, token)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s status %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestRouteGateIgnoresAPIAndPublicPaths(t *testing.T) {
	app, _ := gateApp()

	for _, path := range []string{"/api/ping", "/login", "/"} {
		resp := gateRequest(t, app, path, "")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s status %d, want 200", path, resp.StatusCode)
		}
	}
}
