package dto

import (
	"time"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse payload.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest payload.
type CreateUserRequest struct {
	Email      string          `json:"email" validate:"required,email"`
	Password   string          `json:"password" validate:"required,min=8"`
	FullName   string          `json:"full_name" validate:"required"`
	Role       domain.UserRole `json:"role" validate:"required,oneof=admin support user"`
	Department string          `json:"department"`
	Market     string          `json:"market"`
}

// UpdateUserStatusRequest payload.
type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"status" validate:"required,oneof=active pending inactive"`
}

// UserResponse payload.
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	FullName   string            `json:"full_name"`
	Role       domain.UserRole   `json:"role"`
	Department string            `json:"department,omitempty"`
	Market     string            `json:"market,omitempty"`
	Status     domain.UserStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
