package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/creapolis/helpdesk-service/internal/auth"
	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// UserService covers user administration: provisioning, listing, and the
// support-user lookup the assignment dropdown needs.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes admin account provisioning.
type UserCreateInput struct {
	Email      string
	Password   string
	FullName   string
	Role       domain.UserRole
	Department string
	Market     string
}

// Create provisions a portal account. Admin only; new accounts start pending
// until activated.
func (s *UserService) Create(ctx context.Context, actor Actor, input UserCreateInput) (*domain.User, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, apperrors.NewForbidden("only admins can create users")
	}

	details := map[string]any{}
	if !strings.Contains(input.Email, "@") {
		details["email"] = "valid email required"
	}
	if len(input.Password) < 8 {
		details["password"] = "at least 8 characters"
	}
	if strings.TrimSpace(input.FullName) == "" {
		details["full_name"] = "required"
	}
	if !input.Role.Valid() {
		details["role"] = "must be one of admin, support, user"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid user", details)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         input.Role,
		Department:   input.Department,
		Market:       input.Market,
		Status:       domain.UserStatusPending,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns users matching the filter. Admin only.
func (s *UserService) List(ctx context.Context, actor Actor, filter repository.UserFilter) ([]domain.User, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, apperrors.NewForbidden("only admins can list users")
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListAssignable returns the admin and support users tickets can be
// assigned to.
func (s *UserService) ListAssignable(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx, repository.UserFilter{
		Roles: []domain.UserRole{domain.UserRoleAdmin, domain.UserRoleSupport},
		Limit: 200,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// SetStatus activates or deactivates an account. Admin only.
func (s *UserService) SetStatus(ctx context.Context, actor Actor, userID string, status domain.UserStatus) error {
	if actor.Role != domain.UserRoleAdmin {
		return apperrors.NewForbidden("only admins can change user status")
	}
	switch status {
	case domain.UserStatusActive, domain.UserStatusPending, domain.UserStatusInactive:
	default:
		return apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
