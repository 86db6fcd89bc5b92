package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// CommentRepository manages a ticket's comment thread.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.TicketComment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketComment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.TicketComment) error {
	const query = `
        INSERT INTO ticket_comments (ticket_id, user_id, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.UserID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketComment, error) {
	const query = `
        SELECT c.id, c.ticket_id, c.user_id, c.content, c.created_at, u.full_name, u.email
        FROM ticket_comments c
        JOIN users u ON u.id = c.user_id
        WHERE c.ticket_id=$1 ORDER BY c.created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketComment
	for rows.Next() {
		var (
			comment domain.TicketComment
			author  domain.UserRef
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&author.FullName,
			&author.Email,
		); err != nil {
			return nil, err
		}
		author.ID = comment.UserID
		comment.Author = &author
		result = append(result, comment)
	}
	return result, rows.Err()
}
