// Package validator wires go-playground/validator into echo's Validator slot.
package validator

import (
	domainerrors "agrimap/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts validator.Validate to echo's Validator interface.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate checks the bound request struct against its validation tags.
// Failures surface as 400 application errors carrying the first violation.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.NewBadRequest(err.Error())
	}

	return nil
}
