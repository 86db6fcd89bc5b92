package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// ArticleFilter captures knowledge-base list parameters.
type ArticleFilter struct {
	Category   *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// ArticleRepository manages knowledge-base articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.KnowledgeArticle) error
	GetByID(ctx context.Context, id string) (*domain.KnowledgeArticle, error)
	List(ctx context.Context, filter ArticleFilter) ([]domain.KnowledgeArticle, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.KnowledgeArticle, error)
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository builds repository.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `id, title, content, category, tags, author_id, is_featured, order_index, created_at, updated_at`

func (r *articleRepository) Create(ctx context.Context, article *domain.KnowledgeArticle) error {
	const query = `
        INSERT INTO knowledge_articles (title, content, category, tags, author_id, is_featured, order_index)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Content,
		article.Category,
		article.Tags,
		article.AuthorID,
		article.IsFeatured,
		article.OrderIndex,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.KnowledgeArticle, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM knowledge_articles WHERE id=$1`, id)
	return scanArticle(row)
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]domain.KnowledgeArticle, error) {
	base := `SELECT ` + articleColumns + ` FROM knowledge_articles`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(content) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY order_index ASC, created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *articleRepository) ListFeatured(ctx context.Context, limit int) ([]domain.KnowledgeArticle, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s FROM knowledge_articles WHERE is_featured ORDER BY order_index ASC LIMIT %d`,
		articleColumns, limit)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func scanArticle(row pgx.Row) (*domain.KnowledgeArticle, error) {
	var article domain.KnowledgeArticle
	if err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Category,
		&article.Tags,
		&article.AuthorID,
		&article.IsFeatured,
		&article.OrderIndex,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func scanArticles(rows pgx.Rows) ([]domain.KnowledgeArticle, error) {
	var result []domain.KnowledgeArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *article)
	}
	return result, rows.Err()
}
