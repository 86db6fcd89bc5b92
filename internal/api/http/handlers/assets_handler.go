package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/creapolis/helpdesk-service/internal/api/dto"
	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// AssetsHandler serves the inventory lookups the ticket form uses.
type AssetsHandler struct {
	assets repository.AssetRepository
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets repository.AssetRepository) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// ListActive GET /assets.
func (h *AssetsHandler) ListActive(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}

	var market *string
	if v := c.Query("market"); v != "" {
		market = &v
	}
	assets, err := h.assets.ListActive(c.UserContext(), market)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": lo.Map(assets, func(a domain.Asset, _ int) dto.AssetResponse {
		return dto.AssetResponse{
			ID:           a.ID,
			Name:         a.Name,
			Type:         a.Type,
			SerialNumber: a.SerialNumber,
			Status:       a.Status,
			Market:       a.Market,
		}
	})})
}
