package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creapolis/helpdesk-service/internal/api/http/handlers"
	"github.com/creapolis/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Knowledge      *handlers.KnowledgeHandler
	Settings       *handlers.SettingsHandler
	Dashboard      *handlers.DashboardHandler
	Assets         *handlers.AssetsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	// Featured articles back the help widget on the login page.
	app.Get("/kb/featured", cfg.Knowledge.Featured)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/auth/me", cfg.Auth.Me)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id/status", auth.RequireStaff(), cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/assignee", auth.RequireStaff(), cfg.Tickets.Assign)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Get("/:id/history", cfg.Tickets.ListHistory)

	kb := protected.Group("/kb")
	kb.Get("", cfg.Knowledge.List)
	kb.Get("/:id", cfg.Knowledge.Get)
	kb.Post("", auth.RequireStaff(), cfg.Knowledge.Create)

	users := protected.Group("/users")
	users.Get("/assignable", auth.RequireStaff(), cfg.Users.ListAssignable)
	users.Post("", cfg.Users.Create)
	users.Get("", cfg.Users.List)
	users.Patch("/:id/status", cfg.Users.UpdateStatus)

	protected.Get("/dashboard/stats", cfg.Dashboard.Stats)
	protected.Get("/assets", cfg.Assets.ListActive)

	settings := protected.Group("/settings")
	settings.Get("", cfg.Settings.Get)
	settings.Put("", cfg.Settings.Update)
}
