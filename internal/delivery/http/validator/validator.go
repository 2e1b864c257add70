// Package validator adapts go-playground/validator to Echo's Validator
// interface so request DTOs are schema-checked at the binding boundary.
package validator

import (
	domainerrors "trailhub/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps a single validator instance; it is safe for
// concurrent use and caches struct metadata.
type RequestValidator struct {
	validate *validator.Validate
}

// New constructs the Echo validator used by the HTTP server.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Validation failures surface as the
// domain validation error so the error handler maps them to 400.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
