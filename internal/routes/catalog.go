package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/catalog"
)

// RegisterCatalogRoutes wires the product listing endpoint.
func RegisterCatalogRoutes(r fiber.Router, h *catalog.Handler) {
	r.Get("/products", h.List)
}
