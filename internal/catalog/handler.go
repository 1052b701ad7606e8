package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the product listing endpoint.
type Handler struct {
	repo Repository
}

// NewHandler constructs a catalog HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns catalog products matching the request's facet query params.
func (h *Handler) List(c *fiber.Ctx) error {
	filter := Filter{
		SkinTypes:      splitFacet(c.Query("skintype")),
		ProductTypes:   splitFacet(c.Query("product_type")),
		Brands:         splitFacet(c.Query("brand")),
		NotableEffects: splitFacet(c.Query("notable_effects")),
	}

	var err error
	if filter.MinPrice, err = parsePrice(c.Query("min_price")); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid min_price")
	}
	if filter.MaxPrice, err = parsePrice(c.Query("max_price")); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid max_price")
	}

	products, err := h.repo.List(c.UserContext(), filter)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "products": products})
}

// splitFacet parses a comma-separated facet param into trimmed values.
func splitFacet(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func parsePrice(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
