package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobreviews/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
// Signup, login and listing are public; logout and review creation sit behind authMW.
func Register(app fiber.Router, auth *handlers.AuthHandler, reviews *handlers.ReviewHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	a := api.Group("/auth")

	// Health and readiness endpoints for probes/monitoring
	a.Get("/health", health.Health)
	a.Get("/ready", health.Ready)

	a.Post("/signup", auth.Signup)
	a.Post("/login", auth.Login)
	a.Post("/logout", authMW, auth.Logout)

	a.Get("/reviews/:companyName", reviews.ListByCompany)
	a.Post("/review", authMW, reviews.Create)
}
