package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-admin/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-admin/internal/auth"
	"github.com/spec-kit/helpdesk-admin/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tables         *handlers.TablesHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	app.Post("/auth/login", cfg.Auth.Login)

	admin := app.Group("/admin", cfg.AuthMiddleware)
	admin.Get("/me", cfg.Auth.Me)
	if cfg.Metrics != nil {
		admin.Get("/metrics", auth.RequireRole(domain.AgentRoleAdmin), cfg.Metrics.Snapshot)
	}

	tables := admin.Group("/tables")
	tables.Get("/", cfg.Tables.List)
	tables.Get("/:resource", cfg.Tables.Show)
	tables.Get("/:resource/skeleton", cfg.Tables.Skeleton)
	tables.Post("/:resource/sort", cfg.Tables.Sort)
	tables.Post("/:resource/search", cfg.Tables.Search)
	tables.Post("/:resource/columns", cfg.Tables.Columns)
	tables.Post("/:resource/selection", cfg.Tables.Selection)
	tables.Post("/:resource/page", cfg.Tables.Page)
	tables.Delete("/:resource/selection",
		auth.RequireRole(domain.AgentRoleAdmin, domain.AgentRoleSupervisor),
		cfg.Tables.DeleteSelection)
	tables.Delete("/:resource/state", cfg.Tables.ResetState)
}
