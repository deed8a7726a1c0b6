package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/workers-united/verify-api/internal/config"
	"github.com/workers-united/verify-api/internal/handler"
	"github.com/workers-united/verify-api/internal/middleware"
	"github.com/workers-united/verify-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	VerifyDocumentHandler *handler.VerifyDocumentHandler
	CandidateHandler      *handler.CandidateHandler
	AdminDocumentHandler  *handler.AdminDocumentHandler
	JWTMiddleware         fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	if deps.CandidateHandler != nil {
		deps.CandidateHandler.Register(api.Group("/candidates"))
	}

	if deps.VerifyDocumentHandler != nil {
		documents := api.Group("/documents", middleware.RateLimit("document-upload", 10, time.Minute))
		deps.VerifyDocumentHandler.Register(documents)
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AdminDocumentHandler != nil {
		admin := app.Group("/api/admin/documents", jwtMiddleware)
		deps.AdminDocumentHandler.Register(admin)
	}
}
