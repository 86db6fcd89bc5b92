package dto

import (
	"time"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// CreateArticleRequest payload.
type CreateArticleRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	IsFeatured bool     `json:"is_featured"`
	OrderIndex int      `json:"order_index"`
}

// ArticleResponse payload.
type ArticleResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category,omitempty"`
	Tags       []string  `json:"tags"`
	IsFeatured bool      `json:"is_featured"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateSettingsRequest payload.
type UpdateSettingsRequest struct {
	PortalName           string `json:"portal_name" validate:"required"`
	SupportEmail         string `json:"support_email" validate:"omitempty,email"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	Market               string `json:"market"`
}

// SettingsResponse payload.
type SettingsResponse struct {
	PortalName           string    `json:"portal_name"`
	SupportEmail         string    `json:"support_email"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	Market               string    `json:"market,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AssetResponse payload.
type AssetResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Type         string             `json:"type"`
	SerialNumber string             `json:"serial_number"`
	Status       domain.AssetStatus `json:"status"`
	Market       string             `json:"market,omitempty"`
}

// DashboardResponse payload.
type DashboardResponse struct {
	TotalTickets      int64           `json:"total_tickets"`
	OpenTickets       int64           `json:"open_tickets"`
	InProgressTickets int64           `json:"in_progress_tickets"`
	ResolvedToday     int64           `json:"resolved_today"`
	ActiveAssets      int64           `json:"active_assets"`
	Users             int64           `json:"users"`
	RecentTickets     []TicketSummary `json:"recent_tickets"`
}
