package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/service"
	"github.com/sanatech/marketing-api/internal/utils"
)

// UploadHandler relays media uploads for admins.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs an upload handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register wires upload routes behind the admin middleware.
func (h *UploadHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Post("/image", protect, h.upload)
	router.Delete("/image", protect, h.deleteImage)
}

func (h *UploadHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "No image file provided")
	}

	result, err := h.service.Upload(c.Context(), file, adminIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadMissing):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("upload failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "upload failed")
		}
	}

	return utils.SendSuccess(c, "upload successful", result)
}

func (h *UploadHandler) deleteImage(c *fiber.Ctx) error {
	var req dto.UploadDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Image URL is required")
	}

	if err := h.service.Delete(c.Context(), req.ImageURL); err != nil {
		h.logger.Error().Err(err).Msg("image delete failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete image")
	}

	return utils.SendSuccess(c, "Image deleted successfully", nil)
}
