package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]Check
	version string
}

func NewHealthHandler(version string, checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks, version: version}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = "unavailable"
			status = "degraded"
			continue
		}
		services[name] = "connected"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  h.version,
		"services": services,
	})
}
