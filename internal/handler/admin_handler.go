package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/service"
	"github.com/sanatech/marketing-api/internal/utils"
)

// AdminHandler exposes admin account and dashboard endpoints.
type AdminHandler struct {
	auth      service.AuthService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(auth service.AuthService, dashboard service.DashboardService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		auth:      auth,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register wires the auth routes. Login and register stay public, the
// rest requires a valid admin token.
func (h *AdminHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	router.Get("/profile", protect, h.profile)
	router.Put("/profile", protect, h.updateProfile)
	router.Get("/dashboard-stats", protect, h.dashboardStats)
}

func (h *AdminHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.auth.Register(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to register admin")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register admin")
		}
	}

	return utils.SendCreated(c, "admin registered", response)
}

func (h *AdminHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.auth.Login(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrAccountDisabled):
			return utils.SendError(c, fiber.StatusUnauthorized, "Account is deactivated")
		default:
			h.logger.Error().Err(err).Msg("failed to login admin")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to login")
		}
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AdminHandler) profile(c *fiber.Ctx) error {
	adminID := adminIDFromContext(c)
	if adminID == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	profile, err := h.auth.Profile(c.Context(), *adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Admin not found")
		}
		h.logger.Error().Err(err).Msg("failed to load admin profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", fiber.Map{"admin": profile})
}

func (h *AdminHandler) updateProfile(c *fiber.Ctx) error {
	adminID := adminIDFromContext(c)
	if adminID == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Not authorized to access this route")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := h.auth.UpdateProfile(c.Context(), *adminID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrAdminNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Admin not found")
		default:
			h.logger.Error().Err(err).Msg("failed to update admin profile")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}

	return utils.SendSuccess(c, "profile updated", fiber.Map{"admin": profile})
}

func (h *AdminHandler) dashboardStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute dashboard stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard stats")
	}

	return utils.SendSuccess(c, "dashboard stats retrieved", stats)
}
