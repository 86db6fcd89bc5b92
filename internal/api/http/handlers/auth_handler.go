package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/creapolis/helpdesk-service/internal/api/dto"
	"github.com/creapolis/helpdesk-service/internal/auth"
	"github.com/creapolis/helpdesk-service/internal/service"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// AuthHandler serves sign-in and identity lookup.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	session, err := h.service.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      userResponse(*session.User),
	}})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized(http.StatusText(http.StatusUnauthorized))
	}
	return c.JSON(fiber.Map{"data": userResponse(*principal.User)})
}
