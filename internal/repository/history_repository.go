package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// HistoryRepository stores the append-only audit trail.
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.TicketHistory) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistory, error)
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) Append(ctx context.Context, entry *domain.TicketHistory) error {
	const query = `
        INSERT INTO ticket_history (ticket_id, user_id, action, details)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.UserID,
		entry.Action,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListByTicket returns entries newest-first for timeline rendering.
func (r *historyRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistory, error) {
	const query = `
        SELECT h.id, h.ticket_id, h.user_id, h.action, h.details, h.created_at, u.full_name, u.email
        FROM ticket_history h
        JOIN users u ON u.id = h.user_id
        WHERE h.ticket_id=$1 ORDER BY h.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketHistory
	for rows.Next() {
		var (
			entry domain.TicketHistory
			actor domain.UserRef
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.UserID,
			&entry.Action,
			&entry.Details,
			&entry.CreatedAt,
			&actor.FullName,
			&actor.Email,
		); err != nil {
			return nil, err
		}
		actor.ID = entry.UserID
		entry.Actor = &actor
		result = append(result, entry)
	}
	return result, rows.Err()
}
