package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-service/internal/observability"
	"github.com/spec-kit/request-service/internal/persistence"
)

// HealthHandler reports service and dependency status.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
	metrics  *observability.Metrics
}

// NewHealthHandler constructs handler.
func NewHealthHandler(postgres *persistence.Postgres, redisStore *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redisStore, metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	status := "ok"
	deps := fiber.Map{}

	if h.postgres == nil || h.postgres.PoolHandle() == nil {
		deps["postgres"] = "in-memory"
	} else if err := h.postgres.Ping(c.UserContext()); err != nil {
		deps["postgres"] = "down"
		status = "degraded"
	} else {
		deps["postgres"] = "ok"
	}

	if h.redis == nil {
		deps["redis"] = "disabled"
	} else if err := h.redis.Ping(c.UserContext()); err != nil {
		deps["redis"] = "down"
		status = "degraded"
	} else {
		deps["redis"] = "ok"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"status": status, "dependencies": deps})
}

// Metrics GET /health/metrics exposes in-memory counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"requests": requests, "errors": errs})
}
