package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/service"
	"github.com/sanatech/marketing-api/internal/utils"
)

// AdminContactHandler exposes operator contact endpoints.
type AdminContactHandler struct {
	service service.AdminContactService
	logger  zerolog.Logger
}

// NewAdminContactHandler constructs the handler.
func NewAdminContactHandler(service service.AdminContactService, logger zerolog.Logger) *AdminContactHandler {
	return &AdminContactHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_contact_handler").Logger(),
	}
}

// Register attaches routes behind the admin middleware.
func (h *AdminContactHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Get("", protect, h.list)
	router.Get("/:id", protect, h.get)
	router.Put("/:id", protect, h.update)
	router.Delete("/:id", protect, h.delete)
}

func (h *AdminContactHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	req := dto.ContactListRequest{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list contact submissions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list contacts")
	}

	return utils.SendList(c, len(result.Items), result.Pagination, fiber.Map{"contacts": result.Items})
}

func (h *AdminContactHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	submission, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Contact not found")
		}
		h.logger.Error().Err(err).Uint("contact_id", id).Msg("failed to fetch contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch contact submission")
	}

	return utils.SendSuccess(c, "contact submission retrieved", fiber.Map{"contact": submission})
}

func (h *AdminContactHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	var payload dto.ContactUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	submission, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Contact not found")
		case errors.Is(err, service.ErrInvalidContactStatus):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("contact_id", id).Msg("failed to update contact submission")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update contact submission")
		}
	}

	return utils.SendSuccess(c, "contact submission updated", fiber.Map{"contact": submission})
}

func (h *AdminContactHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Contact not found")
		}
		h.logger.Error().Err(err).Uint("contact_id", id).Msg("failed to delete contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete contact submission")
	}

	return utils.SendSuccess(c, "Contact deleted successfully", nil)
}
