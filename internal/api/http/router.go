package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/sales-tracker/internal/api/http/handlers"
	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Customers      *handlers.CustomersHandler
	Interactions   *handlers.InteractionsHandler
	Stats          *handlers.StatsHandler
	Seed           *handlers.SeedHandler
	AuthMiddleware *auth.AuthMiddleware
	RouteGate      fiber.Handler
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/api/health", cfg.Health.Live)
	app.Get("/api/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	if cfg.RouteGate != nil {
		app.Use(cfg.RouteGate)
	}

	app.Post("/api/auth/login", cfg.Auth.Login)
	app.Post("/api/auth/logout", cfg.Auth.Logout)
	app.Get("/api/init", cfg.Seed.Init)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Get("/auth/session", cfg.Auth.Session)

	// Per-user read keeps its role logic in the handler: ?id= fetches one
	// account (agents only themselves), the bare list is admin-only.
	// Role gates are attached per route; a group-level Use would leak
	// onto every route registered after it.
	api.Get("/users", cfg.Users.Get)
	adminOnly := auth.RequireRole(domain.RoleAdmin)
	api.Post("/users", adminOnly, cfg.Users.Create)
	api.Put("/users", adminOnly, cfg.Users.Update)
	api.Delete("/users", adminOnly, cfg.Users.Delete)

	api.Get("/customers", cfg.Customers.List)
	api.Post("/customers", cfg.Customers.Create)
	api.Get("/customers/:id", cfg.Customers.Get)
	api.Put("/customers/:id", cfg.Customers.Update)
	api.Delete("/customers/:id", cfg.Customers.Delete)

	supervisorUp := auth.RequireRole(domain.RoleSupervisor, domain.RoleAdmin)
	api.Get("/interactions", cfg.Interactions.List)
	api.Post("/interactions", cfg.Interactions.Create)
	api.Put("/interactions", supervisorUp, cfg.Interactions.Comment)

	api.Get("/agent-stats", supervisorUp, cfg.Stats.AgentStats)
	api.Get("/pending-follow-ups", supervisorUp, cfg.Stats.PendingFollowUps)
}
