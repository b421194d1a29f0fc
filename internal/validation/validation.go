// Package validation contains the logic for validating
// domain values before they reach the database.
//
// It uses the `validator` library to enforce rules (like
// required fields or maximum lengths) defined in struct tags
// and extracts validation errors into errs.FieldError values
// a caller can act on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/coffee-demo/internal/errs"
	"github.com/go-playground/validator/v10"
)

// validate is shared: validator caches struct metadata per type.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validatable is implemented by types that know how to validate themselves.
//
// Typical pattern:
// - Define a struct with validator tags (`validate:"required,max=255"`)
// - Implement Validate() error that runs validation.Struct(v)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Struct runs the struct-tag rules of v with the shared validator.
func Struct(v any) error {
	return validate.Struct(v)
}

// Validate calls v.Validate() and converts a failure into an *errs.Error
// of kind invalid carrying field-level errors.
//
// code is optional (nil -> "INVALID").
func Validate(v Validatable, code *string) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	msg, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errs.NewInvalidError(err.Error(), code, nil, err)
	}
	return errs.NewInvalidError(msg, code, fieldErrors, err)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	// validator.ValidationErrors is returned when struct tag validation fails.
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// - for strings: minimum length
			// - for numbers: minimum value
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "gte":
			msg = fmt.Sprintf("must be greater than or equal to %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
