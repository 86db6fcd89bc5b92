package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/events"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// Actor is the acting identity, resolved by the identity layer and passed
// explicitly into every operation.
type Actor struct {
	ID       string
	Role     domain.UserRole
	FullName string
}

// TicketService coordinates the ticket lifecycle: creation, status changes,
// assignment and the comment thread, each mutation paired with one history
// entry. The mutation and its history append are two store calls with no
// shared transaction; when the append fails the mutation stands and the
// failure is reported as a secondary Degraded error.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	history    repository.HistoryRepository
	users      repository.UserRepository
	assets     repository.AssetRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	HistoryRepo repository.HistoryRepository
	UserRepo    repository.UserRepository
	AssetRepo   repository.AssetRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		history:    deps.HistoryRepo,
		users:      deps.UserRepo,
		assets:     deps.AssetRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// TicketCreateInput describes ticket creation payload. Status and creator
// are not part of the input: status is always open, the creator is the actor.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    string
	Market      string
	AssetID     *string
}

// TicketMutation reports a committed ticket mutation together with any
// secondary audit-log failure.
type TicketMutation struct {
	Ticket *domain.Ticket
	// Degraded is non-nil when the paired history append failed after the
	// mutation itself committed.
	Degraded error
}

// CommentMutation reports a committed comment together with any secondary
// audit-log failure.
type CommentMutation struct {
	Comment  *domain.TicketComment
	Degraded error
}

// TicketDetail bundles everything the detail view loads at open time.
type TicketDetail struct {
	Ticket   *domain.Ticket
	Comments []domain.TicketComment
	History  []domain.TicketHistory
}

// Create opens a new ticket for the actor.
func (s *TicketService) Create(ctx context.Context, actor Actor, input TicketCreateInput) (*domain.Ticket, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.Description) == "" {
		details["description"] = "required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "required"
	}
	if !input.Priority.Valid() {
		details["priority"] = "must be one of low, medium, high, critical"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket", details)
	}

	if input.AssetID != nil {
		if _, err := s.assets.GetByID(ctx, *input.AssetID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("invalid ticket", map[string]any{"asset_id": "unknown asset"})
			}
			return nil, apperrors.MapError(err)
		}
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		Market:      input.Market,
		CreatedBy:   actor.ID,
		AssetID:     input.AssetID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
			Category: ticket.Category,
			Market:   ticket.Market,
		},
	})
	return ticket, nil
}

// GetByID fetches one ticket with creator and assignee display info.
func (s *TicketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// GetDetail loads the ticket, its comment thread and its history in
// parallel, the way the detail view opens.
func (s *TicketService) GetDetail(ctx context.Context, id string) (*TicketDetail, error) {
	var (
		wg     sync.WaitGroup
		detail TicketDetail

		ticketErr, commentsErr, historyErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		detail.Ticket, ticketErr = s.tickets.GetByID(ctx, id)
	}()
	go func() {
		defer wg.Done()
		detail.Comments, commentsErr = s.comments.ListByTicket(ctx, id)
	}()
	go func() {
		defer wg.Done()
		detail.History, historyErr = s.history.ListByTicket(ctx, id)
	}()
	wg.Wait()

	if ticketErr != nil {
		if errors.Is(ticketErr, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(ticketErr)
	}
	if commentsErr != nil {
		return nil, apperrors.MapError(commentsErr)
	}
	if historyErr != nil {
		return nil, apperrors.MapError(historyErr)
	}
	return &detail, nil
}

// List returns tickets matching the filter, newest first.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateStatus applies a field-scoped status update. Setting the current
// status again is allowed and still records history.
func (s *TicketService) UpdateStatus(ctx context.Context, actor Actor, ticketID string, newStatus domain.TicketStatus) (*TicketMutation, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{
			"status": fmt.Sprintf("%q is not a ticket status", newStatus),
		})
	}

	ticket, err := s.tickets.UpdateStatus(ctx, ticketID, newStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	degraded := s.recordHistory(ctx, ticketID, actor.ID, domain.HistoryActionStatus,
		fmt.Sprintf("Changed status to %s", newStatus))

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload:  events.TicketStatusChangedPayload{NewStatus: newStatus},
	})
	return &TicketMutation{Ticket: ticket, Degraded: degraded}, nil
}

// Assign sets or clears the assignee. An empty assigneeID clears the
// assignment; otherwise the assignee must be an admin or support user.
func (s *TicketService) Assign(ctx context.Context, actor Actor, ticketID, assigneeID string) (*TicketMutation, error) {
	var (
		assignee *domain.User
		target   *string
	)
	if assigneeID != "" {
		user, err := s.users.GetByID(ctx, assigneeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("invalid assignee", map[string]any{"assigned_to": "unknown user"})
			}
			return nil, apperrors.MapError(err)
		}
		if !user.Role.CanBeAssignee() {
			return nil, apperrors.NewValidationError("invalid assignee", map[string]any{
				"assigned_to": "assignee must have the admin or support role",
			})
		}
		assignee = user
		target = &user.ID
	}

	ticket, err := s.tickets.UpdateAssignee(ctx, ticketID, target)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	detail := "Unassigned the ticket"
	if assignee != nil {
		detail = fmt.Sprintf("Assigned the ticket to %s", assignee.FullName)
	}
	degraded := s.recordHistory(ctx, ticketID, actor.ID, domain.HistoryActionAssign, detail)

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload:  events.TicketAssignedPayload{AssignedTo: target},
	})
	return &TicketMutation{Ticket: ticket, Degraded: degraded}, nil
}

// AddComment appends to the ticket's thread.
func (s *TicketService) AddComment(ctx context.Context, actor Actor, ticketID, content string) (*CommentMutation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("invalid comment", map[string]any{"content": "required"})
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	comment := &domain.TicketComment{
		TicketID: ticketID,
		UserID:   actor.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	degraded := s.recordHistory(ctx, ticketID, actor.ID, domain.HistoryActionComment, "Added a comment")

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticketID,
		ActorID:  actor.ID,
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    actor.ID,
			BodyPreview: preview(content, 120),
		},
	})
	return &CommentMutation{Comment: comment, Degraded: degraded}, nil
}

// ListComments returns the thread oldest-first.
func (s *TicketService) ListComments(ctx context.Context, ticketID string) ([]domain.TicketComment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// ListHistory returns the audit trail newest-first.
func (s *TicketService) ListHistory(ctx context.Context, ticketID string) ([]domain.TicketHistory, error) {
	history, err := s.history.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return history, nil
}

// recordHistory appends one audit entry. The returned error is the secondary
// Degraded condition; the caller's primary mutation already committed.
func (s *TicketService) recordHistory(ctx context.Context, ticketID, actorID string, action domain.HistoryAction, details string) error {
	entry := &domain.TicketHistory{
		TicketID: ticketID,
		UserID:   actorID,
		Action:   action,
		Details:  details,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Warn("history append failed after committed mutation",
			zap.String("ticket_id", ticketID),
			zap.String("action", string(action)),
			zap.Error(err))
		return apperrors.NewDegraded("mutation committed but history entry was not recorded", err)
	}
	return nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
