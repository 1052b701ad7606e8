package analysis

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/middleware"
)

// Handler exposes the predict and history endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an analysis HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Predict accepts a facial image as multipart field "file", runs the scoring
// workflow and returns the persisted record.
func (h *Handler) Predict(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "Unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "No file uploaded")
	}
	if fileHeader.Size == 0 {
		return fiber.NewError(http.StatusBadRequest, "Uploaded file is empty")
	}
	if err := checkImage(fileHeader); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	upload, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "Unreadable upload")
	}
	defer upload.Close()

	record, err := h.service.Predict(c.UserContext(), userID, upload, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, ErrEmptyUpload) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": record})
}

// History lists the caller's analysis records, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "Unauthorized")
	}

	records, err := h.service.History(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "history": records})
}

// checkImage sniffs the upload's leading bytes and rejects non-image content.
func checkImage(fileHeader *multipart.FileHeader) error {
	file, err := fileHeader.Open()
	if err != nil {
		return errors.New("Unreadable upload")
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && n == 0 {
		return errors.New("Unreadable upload")
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return errors.New("File must be an image")
	}
	return nil
}
