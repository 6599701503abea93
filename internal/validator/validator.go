package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around the validator library.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom tags used by request contracts.
func New() *Validator {
	v := validator.New()

	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// notblank rejects whitespace-only strings
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		return strings.TrimSpace(str) != ""
	})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct based on its tags and returns an error
// whose message is safe to show to API clients.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return &ValidationError{Message: formatValidationError(err), err: err}
	}
	return nil
}

// ValidationError describes a rejected request contract.
type ValidationError struct {
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// IsValidationError reports whether err came from ValidateStruct.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// formatValidationError converts the first validator error into a client message.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request"
	}

	fe := ve[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("invalid request: %s is required", field)
	case "url", "http_url":
		return fmt.Sprintf("invalid request: %s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("invalid request: %s must be one of [%s]", field, fe.Param())
	case "max":
		return fmt.Sprintf("invalid request: %s exceeds maximum of %s", field, fe.Param())
	case "min", "gte", "gt":
		return fmt.Sprintf("invalid request: %s must be at least %s", field, fe.Param())
	case "lte", "lt":
		return fmt.Sprintf("invalid request: %s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("invalid request: %s is invalid", field)
	}
}
