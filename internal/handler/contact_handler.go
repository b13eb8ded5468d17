package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/service"
	"github.com/sanatech/marketing-api/internal/utils"
)

// ContactHandler handles public contact form submissions.
type ContactHandler struct {
	service     service.ContactService
	logger      zerolog.Logger
	development bool
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, development bool, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service:     service,
		logger:      logger.With().Str("component", "contact_handler").Logger(),
		development: development,
	}
}

// Register wires contact routes. The limiter guards only the public
// submission endpoint, not the operator routes sharing the prefix.
func (h *ContactHandler) Register(router fiber.Router, limit fiber.Handler) {
	router.Post("", limit, h.submit)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var payload dto.ContactSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to process contact submission")
		message := "failed to submit contact form"
		if h.development {
			message = err.Error()
		}
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}

	return utils.SendCreated(c, "Contact form submitted successfully", response)
}
