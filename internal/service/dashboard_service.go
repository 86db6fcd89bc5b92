package service

import (
	"context"

	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// DashboardService aggregates the counters and recent activity shown on the
// landing dashboard.
type DashboardService struct {
	tickets repository.TicketRepository
	assets  repository.AssetRepository
	users   repository.UserRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(tickets repository.TicketRepository, assets repository.AssetRepository, users repository.UserRepository) *DashboardService {
	return &DashboardService{tickets: tickets, assets: assets, users: users}
}

// DashboardStats is the dashboard snapshot.
type DashboardStats struct {
	Tickets       repository.TicketStats
	ActiveAssets  int64
	Users         int64
	RecentTickets []domain.Ticket
}

// Stats loads the dashboard snapshot, optionally scoped to one market.
func (s *DashboardService) Stats(ctx context.Context, market *string) (*DashboardStats, error) {
	ticketStats, err := s.tickets.Stats(ctx, market)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	activeAssets, err := s.assets.CountActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	recent, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{Market: market, Limit: 5})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &DashboardStats{
		Tickets:       *ticketStats,
		ActiveAssets:  activeAssets,
		Users:         userCount,
		RecentTickets: recent,
	}, nil
}
