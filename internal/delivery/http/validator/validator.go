// Package validator wires go-playground/validator into echo's request
// validation hook.
package validator

import (
	domainerrors "rideauth/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// echoValidator adapts a playground validator to echo.Validator.
type echoValidator struct {
	validate *playground.Validate
}

// New builds the request validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags and converts failures into the domain
// validation error so the error handler renders a 400 with field details.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidation.WithDetails(err.Error())
	}

	return nil
}
