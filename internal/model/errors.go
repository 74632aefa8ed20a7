package model

import (
	"context"
	"errors"
	"fmt"
)

// Registry misuse is a programming error and fatal.
var (
	ErrDuplicateCategory = errors.New("template category already registered")
	ErrUnknownTemplate   = errors.New("unknown template category")
)

// ConfigurationError reports invalid OCR or template parameters, caught
// before any service call is made.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// ServiceUnavailableError is surfaced after transient completion-service
// failures exhausted their retry budget. No partial result accompanies it.
type ServiceUnavailableError struct {
	Attempts int
	Cause    error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("completion service unavailable after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Cause }

// MalformedResponseError reports a completion response that could not be
// validated against the template schema. Never retried: the same prompt
// would reproduce the same mismatch, which needs developer attention.
type MalformedResponseError struct {
	Reason string
	Raw    string // Raw response body, for diagnostics
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed completion response: %s", e.Reason)
}

// ErrorKind classifies a per-document failure for batch reports.
func ErrorKind(err error) string {
	var confErr *ConfigurationError
	var unavailErr *ServiceUnavailableError
	var malformedErr *MalformedResponseError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownTemplate):
		return "unknown_template"
	case errors.Is(err, ErrDuplicateCategory):
		return "duplicate_category"
	case errors.As(err, &confErr):
		return "configuration"
	case errors.As(err, &unavailErr):
		return "service_unavailable"
	case errors.As(err, &malformedErr):
		return "malformed_response"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
