// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	domainerrors "jukebox/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates the validator used for all request bindings.
func New() echo.Validator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks struct tags and converts failures into the shared
// validation error so the error handler maps them to 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
