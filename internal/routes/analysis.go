package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/analysis"
)

// RegisterAnalysisRoutes wires the predict and history endpoints.
func RegisterAnalysisRoutes(r fiber.Router, h *analysis.Handler) {
	r.Post("/predict", h.Predict)
	r.Get("/history", h.History)
}
