// Package validation checks user input against struct tags and turns
// violations into per-field messages.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "quill/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator wraps go-playground/validator. Field names come from the `form`
// tag so messages can be matched to inputs; `label` is the human name.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return &Validator{validate: v}
}

// Struct validates every field of s.
func (v *Validator) Struct(s any) error {
	return v.translate(s, v.validate.Struct(s))
}

// StructPartial validates only the named fields of s.
func (v *Validator) StructPartial(s any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	return v.translate(s, v.validate.StructPartial(s, fields...))
}

// Var validates a single value, reporting violations under field.
func (v *Validator) Var(field, label string, value any, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	out := make([]domainerrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domainerrors.FieldError{Field: field, Message: message(label, fe)})
	}

	return domainerrors.NewValidationError(out...)
}

func (v *Validator) translate(s any, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	labels := labelsOf(s)
	out := make([]domainerrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		label := labels[fe.StructField()]
		if label == "" {
			label = fe.StructField()
		}
		out = append(out, domainerrors.FieldError{Field: fe.Field(), Message: message(label, fe)})
	}

	return domainerrors.NewValidationError(out...)
}

func labelsOf(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	labels := make(map[string]string, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		labels[f.Name] = f.Tag.Get("label")
	}

	return labels
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "email":
		return "Please enter a valid email address"
	case "url", "http_url":
		return "Please enter a valid URL"
	case "uuid", "uuid4":
		return fmt.Sprintf("%s is not a valid id", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
