// Package validator adapts the input validator to echo.
package validator

import (
	"quill/internal/validation"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validator *validation.Validator
}

// New returns an echo.Validator that reports violations as a ValidationError.
func New(v *validation.Validator) *EchoValidator {
	return &EchoValidator{validator: v}
}

// Validate checks i against its validate tags.
func (v *EchoValidator) Validate(i any) error {
	return v.validator.Struct(i)
}
