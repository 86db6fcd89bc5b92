package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// TicketFilter captures list/search parameters for dashboards and list pages.
type TicketFilter struct {
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	Category    *string
	Market      *string
	CreatedBy   *string
	AssignedTo  *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketStats aggregates dashboard counters.
type TicketStats struct {
	Total         int64
	Open          int64
	InProgress    int64
	ResolvedToday int64
}

// TicketRepository encapsulates ticket persistence. Status and assignee
// mutations are field-scoped: each UPDATE touches only its own column plus
// updated_at, so concurrent edits of unrelated fields do not clobber each
// other.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
	UpdateAssignee(ctx context.Context, id string, assignee *string) (*domain.Ticket, error)
	Stats(ctx context.Context, market *string) (*TicketStats, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, priority, category, market,
               created_by, assigned_to, asset_id, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, priority, category, market, created_by, assigned_to, asset_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.Market,
		ticket.CreatedBy,
		ticket.AssignedTo,
		ticket.AssetID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.category, t.market,
               t.created_by, t.assigned_to, t.asset_id, t.created_at, t.updated_at,
               c.full_name, c.email,
               a.id, a.full_name, a.email
        FROM tickets t
        JOIN users c ON c.id = t.created_by
        LEFT JOIN users a ON a.id = t.assigned_to
        WHERE t.id=$1`

	var (
		ticket        domain.Ticket
		creator       domain.UserRef
		assigneeID    *string
		assigneeName  *string
		assigneeEmail *string
	)
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Category,
		&ticket.Market,
		&ticket.CreatedBy,
		&ticket.AssignedTo,
		&ticket.AssetID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&creator.FullName,
		&creator.Email,
		&assigneeID,
		&assigneeName,
		&assigneeEmail,
	); err != nil {
		return nil, err
	}
	creator.ID = ticket.CreatedBy
	ticket.Creator = &creator
	if assigneeID != nil {
		ticket.Assignee = &domain.UserRef{ID: *assigneeID, FullName: deref(assigneeName), Email: deref(assigneeEmail)}
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + ticketColumns
	return r.scanOne(r.pool.QueryRow(ctx, query, status, id))
}

func (r *ticketRepository) UpdateAssignee(ctx context.Context, id string, assignee *string) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET assigned_to=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + ticketColumns
	return r.scanOne(r.pool.QueryRow(ctx, query, assignee, id))
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Market != nil {
		args = append(args, *filter.Market)
		clauses = append(clauses, fmt.Sprintf("market=$%d", len(args)))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Stats(ctx context.Context, market *string) (*TicketStats, error) {
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='open'),
               COUNT(*) FILTER (WHERE status='in_progress'),
               COUNT(*) FILTER (WHERE status='resolved' AND updated_at >= date_trunc('day', NOW()))
        FROM tickets`
	args := []any{}
	if market != nil {
		args = append(args, *market)
		query += " WHERE market=$1"
	}

	var stats TicketStats
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProgress,
		&stats.ResolvedToday,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ticketRepository) scanOne(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Category,
		&ticket.Market,
		&ticket.CreatedBy,
		&ticket.AssignedTo,
		&ticket.AssetID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.Category,
			&ticket.Market,
			&ticket.CreatedBy,
			&ticket.AssignedTo,
			&ticket.AssetID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
