package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/workers-united/verify-api/internal/config"
	"github.com/workers-united/verify-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Service      string    `json:"service"`
	Environment  string    `json:"environment"`
	AIConfigured bool      `json:"ai_configured"`
}

// HealthCheck returns a handler that reports application health information.
// AIConfigured surfaces degraded mode so operators can spot a missing
// credential without grepping logs.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:       "ok",
			Timestamp:    time.Now().UTC(),
			Service:      cfg.AppName,
			Environment:  cfg.AppEnv,
			AIConfigured: cfg.AIConfigured(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
