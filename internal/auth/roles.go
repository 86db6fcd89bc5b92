package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creapolis/helpdesk-service/internal/domain"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

// RequireRole ensures the principal has one of the allowed roles. With no
// roles listed it only requires authentication.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireStaff limits a route to admin and support users.
func RequireStaff() fiber.Handler {
	return RequireRole(domain.UserRoleAdmin, domain.UserRoleSupport)
}
