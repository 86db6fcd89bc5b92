package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation and converts failures into the
// standard validation error shape.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}
