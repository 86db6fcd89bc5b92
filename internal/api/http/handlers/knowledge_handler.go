package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/creapolis/helpdesk-service/internal/api/dto"
	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	"github.com/creapolis/helpdesk-service/internal/service"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// KnowledgeHandler serves the help-center article endpoints.
type KnowledgeHandler struct {
	service *service.KnowledgeService
}

// NewKnowledgeHandler constructs handler.
func NewKnowledgeHandler(knowledgeService *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{service: knowledgeService}
}

// Create POST /kb.
func (h *KnowledgeHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	article, err := h.service.Create(c.UserContext(), actor, service.ArticleCreateInput{
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       req.Tags,
		IsFeatured: req.IsFeatured,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": articleResponse(*article)})
}

// Get GET /kb/:id.
func (h *KnowledgeHandler) Get(c *fiber.Ctx) error {
	article, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(*article)})
}

// List GET /kb.
func (h *KnowledgeHandler) List(c *fiber.Ctx) error {
	filter := repository.ArticleFilter{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}

	articles, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponses(articles)})
}

// Featured GET /kb/featured powers the help widget on the login page, so it
// stays public.
func (h *KnowledgeHandler) Featured(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	articles, err := h.service.Featured(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponses(articles)})
}

func articleResponses(articles []domain.KnowledgeArticle) []dto.ArticleResponse {
	return lo.Map(articles, func(a domain.KnowledgeArticle, _ int) dto.ArticleResponse {
		return articleResponse(a)
	})
}
