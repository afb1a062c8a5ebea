package shipping

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MalformedRequestError indicates that the request carried no usable body:
// nothing at all, invalid JSON, or a JSON value that is not an object.
type MalformedRequestError struct {
	Reason string
}

func (e *MalformedRequestError) Error() string {
	if e.Reason == "" {
		return "request body must be a JSON object"
	}
	return fmt.Sprintf("request body must be a JSON object: %s", e.Reason)
}

// MissingFieldsError lists required request fields that were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ValidationError reports a request value that was understood but not
// acceptable, such as a negative dimension or an unknown destination.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidInputError reports a value that could not be coerced to a number.
type InvalidInputError struct {
	Field string
	Value any
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s must be a number, got %s", e.Field, describe(e.Value))
}

// TypeMismatchError reports a value of the wrong JSON type where no coercion
// is allowed.
type TypeMismatchError struct {
	Field    string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s must be a %s, got %s", e.Field, e.Expected, e.Got)
}

// ConfigurationError signals that the loaded rules cannot answer a request.
// It is an operator problem, never the caller's.
type ConfigurationError struct {
	Key       string
	Available []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("delivery time not configured for %q (available: %s)",
		e.Key, strings.Join(e.Available, ", "))
}

// StatusCode maps an error returned by this package to an HTTP status.
// Anything it does not recognise is treated as a server failure.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		malformed *MalformedRequestError
		missing   *MissingFieldsError
		invalid   *ValidationError
		input     *InvalidInputError
		mismatch  *TypeMismatchError
	)
	switch {
	case errors.As(err, &malformed),
		errors.As(err, &missing),
		errors.As(err, &invalid),
		errors.As(err, &input),
		errors.As(err, &mismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Outcome names the terminal state of a quote for logs and metrics.
func Outcome(err error) string {
	var (
		malformed *MalformedRequestError
		missing   *MissingFieldsError
		cfgErr    *ConfigurationError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &malformed):
		return "malformed"
	case errors.As(err, &missing):
		return "missing_fields"
	case errors.As(err, &cfgErr):
		return "configuration_error"
	case StatusCode(err) == http.StatusBadRequest:
		return "validation_error"
	default:
		return "error"
	}
}

// describe renders a decoded JSON value for error messages.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// typeName returns the JSON type name of a decoded value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}
