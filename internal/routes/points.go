package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/points"
)

// RegisterPointsRoutes wires the gamification endpoint.
func RegisterPointsRoutes(r fiber.Router, h *points.Handler) {
	r.Post("/add-poin", h.AddPoint)
}
