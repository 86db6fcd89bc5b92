package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creapolis/helpdesk-service/internal/api/dto"
	"github.com/creapolis/helpdesk-service/internal/service"
)

// DashboardHandler serves the landing dashboard snapshot.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Stats GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}

	var market *string
	if v := c.Query("market"); v != "" {
		market = &v
	}
	stats, err := h.service.Stats(c.UserContext(), market)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		TotalTickets:      stats.Tickets.Total,
		OpenTickets:       stats.Tickets.Open,
		InProgressTickets: stats.Tickets.InProgress,
		ResolvedToday:     stats.Tickets.ResolvedToday,
		ActiveAssets:      stats.ActiveAssets,
		Users:             stats.Users,
		RecentTickets:     ticketSummaries(stats.RecentTickets),
	}})
}
