package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/auth"
)

// RegisterAuthRoutes wires the public authentication endpoints. Logout is
// registered on the protected group in Setup since it requires a valid token.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	r.Post("/register", h.Register)
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
}
