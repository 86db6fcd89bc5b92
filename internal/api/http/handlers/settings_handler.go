package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creapolis/helpdesk-service/internal/api/dto"
	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/service"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// SettingsHandler serves the portal settings form.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: settingsService}
}

// Get GET /settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	settings, err := h.service.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settingsResponse(settings)})
}

// Update PUT /settings.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	settings, err := h.service.Update(c.UserContext(), actor, service.SettingsUpdateInput{
		PortalName:           req.PortalName,
		SupportEmail:         req.SupportEmail,
		NotificationsEnabled: req.NotificationsEnabled,
		Market:               req.Market,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settingsResponse(settings)})
}

func settingsResponse(settings *domain.PortalSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		PortalName:           settings.PortalName,
		SupportEmail:         settings.SupportEmail,
		NotificationsEnabled: settings.NotificationsEnabled,
		Market:               settings.Market,
		UpdatedAt:            settings.UpdatedAt,
	}
}
