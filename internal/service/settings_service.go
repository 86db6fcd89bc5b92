package service

import (
	"context"
	"strings"

	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// SettingsService reads and updates the portal's singleton settings.
type SettingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns current portal settings.
func (s *SettingsService) Get(ctx context.Context) (*domain.PortalSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return settings, nil
}

// SettingsUpdateInput describes a settings save.
type SettingsUpdateInput struct {
	PortalName           string
	SupportEmail         string
	NotificationsEnabled bool
	Market               string
}

// Update saves the settings form. Admin only.
func (s *SettingsService) Update(ctx context.Context, actor Actor, input SettingsUpdateInput) (*domain.PortalSettings, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, apperrors.NewForbidden("only admins can change settings")
	}
	details := map[string]any{}
	if strings.TrimSpace(input.PortalName) == "" {
		details["portal_name"] = "required"
	}
	if input.SupportEmail != "" && !strings.Contains(input.SupportEmail, "@") {
		details["support_email"] = "valid email required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid settings", details)
	}

	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	current.PortalName = strings.TrimSpace(input.PortalName)
	current.SupportEmail = strings.TrimSpace(input.SupportEmail)
	current.NotificationsEnabled = input.NotificationsEnabled
	current.Market = input.Market

	if err := s.settings.Upsert(ctx, current); err != nil {
		return nil, apperrors.MapError(err)
	}
	return current, nil
}
