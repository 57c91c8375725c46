package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Requests *handlers.RequestsHandler
	Users    *handlers.UsersHandler
	Auth     *handlers.AuthHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)

	users := api.Group("/users")
	users.Post("", cfg.Users.Register)
	users.Get("", cfg.Users.List)
	users.Get("/handlers/active", cfg.Users.ActiveHandlers)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id/activate", cfg.Users.Activate)
	users.Put("/:id/deactivate", cfg.Users.Deactivate)

	requests := api.Group("/requests")
	requests.Post("", cfg.Requests.Register)
	requests.Get("", cfg.Requests.List)
	requests.Get("/requester/:id", cfg.Requests.ListByRequester)
	requests.Get("/handler/:id", cfg.Requests.ListByHandler)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Get("/:id/history", cfg.Requests.History)
	requests.Put("/:id/classify", cfg.Requests.Classify)
	requests.Put("/:id/priority", cfg.Requests.Prioritize)
	requests.Put("/:id/state", cfg.Requests.ChangeState)
	requests.Put("/:id/assign", cfg.Requests.Assign)
	requests.Put("/:id/close", cfg.Requests.Close)
}
