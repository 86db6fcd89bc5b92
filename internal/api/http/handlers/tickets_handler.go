package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/creapolis/helpdesk-service/internal/api/dto"
	"github.com/creapolis/helpdesk-service/internal/auth"
	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	"github.com/creapolis/helpdesk-service/internal/service"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// TicketsHandler serves the ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

func actorFromContext(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Actor{
		ID:       principal.User.ID,
		Role:     principal.User.Role,
		FullName: principal.User.FullName,
	}, nil
}

// mutationEnvelope wraps a committed mutation, flagging the degraded case
// where the audit entry was not recorded.
func mutationEnvelope(data any, degraded error) fiber.Map {
	envelope := fiber.Map{"data": data}
	if degraded != nil {
		envelope["warning"] = degraded.Error()
	}
	return envelope
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.UserContext(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Market:      req.Market,
		AssetID:     req.AssetID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(*ticket)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	tickets, err := h.service.List(c.UserContext(), parseTicketQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(tickets)})
}

// Get GET /tickets/:id returns the full detail view: ticket with creator
// and assignee info, the comment thread oldest-first, the history
// newest-first.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	detail, err := h.service.GetDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	ticket := detail.Ticket
	response := dto.TicketDetailResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		Category:    ticket.Category,
		Market:      ticket.Market,
		AssetID:     ticket.AssetID,
		Creator:     userRef(ticket.Creator),
		Assignee:    userRef(ticket.Assignee),
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
		Comments:    make([]dto.CommentResponse, 0, len(detail.Comments)),
		History:     make([]dto.HistoryEventResponse, 0, len(detail.History)),
	}
	for _, comment := range detail.Comments {
		response.Comments = append(response.Comments, commentResponse(comment))
	}
	for _, entry := range detail.History {
		response.History = append(response.History, historyResponse(entry))
	}
	return c.JSON(fiber.Map{"data": response})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	mutation, err := h.service.UpdateStatus(c.UserContext(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(mutationEnvelope(ticketSummary(*mutation.Ticket), mutation.Degraded))
}

// Assign PATCH /tickets/:id/assignee.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	mutation, err := h.service.Assign(c.UserContext(), actor, c.Params("id"), req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(mutationEnvelope(ticketSummary(*mutation.Ticket), mutation.Degraded))
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	mutation, err := h.service.AddComment(c.UserContext(), actor, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(mutationEnvelope(commentResponse(*mutation.Comment), mutation.Degraded))
}

// ListComments GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	comments, err := h.service.ListComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, commentResponse(comment))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListHistory GET /tickets/:id/history.
func (h *TicketsHandler) ListHistory(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	history, err := h.service.ListHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.HistoryEventResponse, 0, len(history))
	for _, entry := range history {
		items = append(items, historyResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}

	for _, raw := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.TicketStatus(raw))
	}
	for _, raw := range splitCSV(c.Query("priority")) {
		filter.Priorities = append(filter.Priorities, domain.TicketPriority(raw))
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("market"); v != "" {
		filter.Market = &v
	}
	if v := c.Query("created_by"); v != "" {
		filter.CreatedBy = &v
	}
	if v := c.Query("assigned_to"); v != "" {
		filter.AssignedTo = &v
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = v
	}
	return filter
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
