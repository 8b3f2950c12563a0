// Package validator plugs go-playground/validator into Echo's request
// validation hook.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "storemap/internal/domain/errors"
)

// requestValidator implements echo.Validator.
type requestValidator struct {
	validate *validatorlib.Validate
}

// New is the constructor for requestValidator.
func New() echo.Validator {
	return &requestValidator{
		validate: validatorlib.New(validatorlib.WithRequiredStructEnabled()),
	}
}

// Validate runs struct tag validation and maps failures onto the
// application error taxonomy.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
