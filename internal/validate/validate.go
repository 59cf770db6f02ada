// Package validate holds the pre-flight form rules used before a request is
// issued. None of them is authoritative; the backend has the final say.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("endpoint_url", validateEndpointURL); err != nil {
		panic(err)
	}

	// Report yaml field names so settings errors match the file the user edits
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateEndpointURL accepts absolute http(s) URLs with a host
func validateEndpointURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsNonEmpty reports whether s has any non-whitespace content
func IsNonEmpty(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required") == nil
}

// IsWellFormedURL reports whether s is an absolute http or https URL
func IsWellFormedURL(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,endpoint_url") == nil
}

// IsWellFormedEmail reports whether s looks like an email address
func IsWellFormedEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

// PasswordsMatch reports whether the new password and its confirmation are identical
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// MeetsMinLength reports whether s has at least n characters
func MeetsMinLength(s string, n int) bool {
	if n <= 0 {
		return true
	}
	return validate.Var(s, fmt.Sprintf("min=%d", n)) == nil
}

// FieldError is one failed struct rule
type FieldError struct {
	FieldPath string
	Message   string
}

// FieldErrors is returned by Struct when any rule fails
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(fe)))
	for i, err := range fe {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

// Struct validates v against its `validate` tags and returns FieldErrors
// keyed by yaml field path
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return err
	}

	fieldErrs := make(FieldErrors, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		// Namespace is "Settings.tls.ca_file"; drop the root type name
		path := e.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}
		fieldErrs = append(fieldErrs, FieldError{
			FieldPath: path,
			Message:   messageFor(e),
		})
	}
	return fieldErrs
}

// messageFor returns a human-readable message for a validation error
func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "url", "endpoint_url":
		return "must be a valid http(s) URL"
	case "file":
		return "file does not exist"
	case "required_with":
		return fmt.Sprintf("required when %s is set", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}
