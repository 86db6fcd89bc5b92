package dto

import (
	"time"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description" validate:"required"`
	Priority    domain.TicketPriority `json:"priority" validate:"required,oneof=low medium high critical"`
	Category    string                `json:"category" validate:"required"`
	Market      string                `json:"market"`
	AssetID     *string               `json:"asset_id"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// AssignRequest payload. An empty assigned_to clears the assignment.
type AssignRequest struct {
	AssignedTo string `json:"assigned_to"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// UserRefResponse is the display projection of a referenced user.
type UserRefResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// TicketSummary response.
type TicketSummary struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	Status     domain.TicketStatus   `json:"status"`
	Priority   domain.TicketPriority `json:"priority"`
	Category   string                `json:"category"`
	Market     string                `json:"market,omitempty"`
	CreatedBy  string                `json:"created_by"`
	AssignedTo *string               `json:"assigned_to"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides the full detail-view payload.
type TicketDetailResponse struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Status      domain.TicketStatus     `json:"status"`
	Priority    domain.TicketPriority   `json:"priority"`
	Category    string                  `json:"category"`
	Market      string                  `json:"market,omitempty"`
	AssetID     *string                 `json:"asset_id,omitempty"`
	Creator     *UserRefResponse        `json:"creator,omitempty"`
	Assignee    *UserRefResponse        `json:"assignee,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	Comments    []CommentResponse       `json:"comments"`
	History     []HistoryEventResponse  `json:"history"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID        string           `json:"id"`
	TicketID  string           `json:"ticket_id"`
	Author    *UserRefResponse `json:"author,omitempty"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
}

// HistoryEventResponse represents one timeline entry. Action is an open
// string tag; clients map it to an icon and fall back for unknown kinds.
type HistoryEventResponse struct {
	ID        string           `json:"id"`
	TicketID  string           `json:"ticket_id"`
	Actor     *UserRefResponse `json:"actor,omitempty"`
	Action    string           `json:"action"`
	Details   string           `json:"details"`
	CreatedAt time.Time        `json:"created_at"`
}
