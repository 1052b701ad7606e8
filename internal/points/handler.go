package points

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/middleware"
)

// Handler exposes the add-poin endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a points HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AddPoint awards the caller one point.
func (h *Handler) AddPoint(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "Unauthorized")
	}

	total, err := h.service.AddPoint(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "Point added", "poin": total})
}
