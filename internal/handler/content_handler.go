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

// ContentHandler exposes public and admin content block endpoints.
type ContentHandler struct {
	service   service.ContentService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewContentHandler constructs the handler.
func NewContentHandler(service service.ContentService, dashboard service.DashboardService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service:   service,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "content_handler").Logger(),
	}
}

// Register wires content routes. Reads are public, mutations sit behind
// the admin middleware. Literal routes are attached before /:id so Fiber
// does not swallow them as an id parameter.
func (h *ContentHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Get("", h.list)
	router.Get("/type/:type", h.listByType)
	router.Get("/admin/stats", protect, h.stats)
	router.Post("", protect, h.create)
	router.Put("/bulk/status", protect, h.bulkStatus)
	router.Get("/:id", h.get)
	router.Put("/:id", protect, h.update)
	router.Delete("/:id", protect, h.delete)
}

func (h *ContentHandler) list(c *fiber.Ctx) error {
	req := dto.ContentListRequest{
		Type:       strings.TrimSpace(c.Query("type")),
		ActiveOnly: c.QueryBool("active", true),
	}

	items, err := h.service.List(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to list content")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list content")
	}

	return utils.SendList(c, len(items), nil, fiber.Map{"content": items})
}

func (h *ContentHandler) listByType(c *fiber.Ctx) error {
	req := dto.ContentListRequest{
		Type:       strings.TrimSpace(c.Params("type")),
		ActiveOnly: c.QueryBool("active", true),
	}

	items, err := h.service.List(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to list content by type")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list content")
	}

	return utils.SendList(c, len(items), nil, fiber.Map{"content": items})
}

func (h *ContentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid content id")
	}

	content, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Content not found")
		}
		h.logger.Error().Err(err).Uint("content_id", id).Msg("failed to fetch content")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch content")
	}

	return utils.SendSuccess(c, "content retrieved", fiber.Map{"content": content})
}

func (h *ContentHandler) create(c *fiber.Ctx) error {
	var payload dto.ContentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	content, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrInvalidContentType):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to create content")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create content")
		}
	}

	h.dashboard.Invalidate(c.Context())
	return utils.SendCreated(c, "content created", fiber.Map{"content": content})
}

func (h *ContentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid content id")
	}

	var payload dto.ContentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	content, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrInvalidContentType):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrContentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Content not found")
		default:
			h.logger.Error().Err(err).Uint("content_id", id).Msg("failed to update content")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update content")
		}
	}

	h.dashboard.Invalidate(c.Context())
	return utils.SendSuccess(c, "content updated", fiber.Map{"content": content})
}

func (h *ContentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid content id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Content not found")
		}
		h.logger.Error().Err(err).Uint("content_id", id).Msg("failed to delete content")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete content")
	}

	h.dashboard.Invalidate(c.Context())
	return utils.SendSuccess(c, "Content deleted successfully", nil)
}

func (h *ContentHandler) bulkStatus(c *fiber.Ctx) error {
	var payload dto.BulkStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	affected, err := h.service.BulkSetActive(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to apply bulk status update")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update content status")
	}

	h.dashboard.Invalidate(c.Context())
	return utils.SendSuccess(c, "content status updated", fiber.Map{"affected": affected})
}

func (h *ContentHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute content stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load content stats")
	}

	return utils.SendSuccess(c, "content stats retrieved", stats)
}
