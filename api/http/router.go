package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/juanlvs21/sanble-functions/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
// verify may be nil when the identity provider handles verification itself.
func Register(app *fiber.App, register *handlers.RegisterHandler, health *handlers.HealthHandler, verify *handlers.VerifyHandler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Options("/register", register.Preflight)
	a.Post("/register", register.Register)
	a.All("/register", handlers.MethodNotAllowed)

	if verify != nil {
		a.Get("/verify", verify.Verify)
	}
}
