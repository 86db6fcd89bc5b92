package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// KnowledgeService serves the help-center pages and the login help widget.
type KnowledgeService struct {
	articles repository.ArticleRepository
}

// NewKnowledgeService constructs the service.
func NewKnowledgeService(articles repository.ArticleRepository) *KnowledgeService {
	return &KnowledgeService{articles: articles}
}

// ArticleCreateInput describes a new article.
type ArticleCreateInput struct {
	Title      string
	Content    string
	Category   string
	Tags       []string
	IsFeatured bool
	OrderIndex int
}

// Create publishes a new article. Admin and support only.
func (s *KnowledgeService) Create(ctx context.Context, actor Actor, input ArticleCreateInput) (*domain.KnowledgeArticle, error) {
	if actor.Role != domain.UserRoleAdmin && actor.Role != domain.UserRoleSupport {
		return nil, apperrors.NewForbidden("only staff can publish articles")
	}
	details := map[string]any{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.Content) == "" {
		details["content"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid article", details)
	}

	article := &domain.KnowledgeArticle{
		Title:      strings.TrimSpace(input.Title),
		Content:    input.Content,
		Category:   input.Category,
		Tags:       input.Tags,
		AuthorID:   actor.ID,
		IsFeatured: input.IsFeatured,
		OrderIndex: input.OrderIndex,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, apperrors.MapError(err)
	}
	return article, nil
}

// GetByID fetches one article.
func (s *KnowledgeService) GetByID(ctx context.Context, id string) (*domain.KnowledgeArticle, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", map[string]any{"article_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return article, nil
}

// List returns articles for the knowledge-base page.
func (s *KnowledgeService) List(ctx context.Context, filter repository.ArticleFilter) ([]domain.KnowledgeArticle, error) {
	articles, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return articles, nil
}

// Featured returns the articles shown on the login page.
func (s *KnowledgeService) Featured(ctx context.Context, limit int) ([]domain.KnowledgeArticle, error) {
	articles, err := s.articles.ListFeatured(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return articles, nil
}
