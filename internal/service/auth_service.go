package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/creapolis/helpdesk-service/internal/auth"
	"github.com/creapolis/helpdesk-service/internal/config"
	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// AuthService verifies portal credentials and issues bearer tokens. It only
// reads identity; account provisioning lives in UserService.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Session is an issued sign-in.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// SignIn checks email/password and returns a session for active accounts.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status != domain.UserStatusActive {
		return nil, apperrors.NewForbidden("account is not active")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// TokenManager exposes the token manager for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
