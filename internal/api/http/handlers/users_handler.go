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

// UsersHandler serves account administration endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.service.Create(c.UserContext(), actor, service.UserCreateInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       req.Role,
		Department: req.Department,
		Market:     req.Market,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(*user)})
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	filter := repository.UserFilter{}
	for _, raw := range splitCSV(c.Query("role")) {
		filter.Roles = append(filter.Roles, domain.UserRole(raw))
	}
	if v := c.Query("status"); v != "" {
		status := domain.UserStatus(v)
		filter.Status = &status
	}
	if v := c.Query("market"); v != "" {
		filter.Market = &v
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}
	filter.Limit = c.QueryInt("limit")
	filter.Offset = c.QueryInt("offset")

	users, err := h.service.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// ListAssignable GET /users/assignable returns accounts tickets can be
// assigned to.
func (h *UsersHandler) ListAssignable(c *fiber.Ctx) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	users, err := h.service.ListAssignable(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// UpdateStatus PATCH /users/:id/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.service.SetStatus(c.UserContext(), actor, c.Params("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "status": req.Status}})
}

func userResponses(users []domain.User) []dto.UserResponse {
	return lo.Map(users, func(u domain.User, _ int) dto.UserResponse {
		return userResponse(u)
	})
}
