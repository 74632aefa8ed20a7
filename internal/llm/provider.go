package llm

import (
	"context"
	"fmt"
)

// Provider is the completion-service boundary. Implementations wrap one
// vendor API; the orchestrator never sees vendor types.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one prompt and returns the raw completion text.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is a single prompt exchange.
type CompletionRequest struct {
	// System sets the system message (behavioral framing).
	System string

	// Prompt is the user-facing prompt text.
	Prompt string

	// Model overrides the configured model when non-empty.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls sampling; extraction wants it near zero.
	Temperature float32
}

// CompletionResponse is the provider's answer.
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// FailureKind classifies completion-service failures so callers can
// decide what is worth retrying.
type FailureKind string

const (
	FailureRateLimited FailureKind = "rate_limited"
	FailureAuthInvalid FailureKind = "auth_invalid"
	FailureUnavailable FailureKind = "unavailable"
	FailureTimeout     FailureKind = "timeout"
)

// ServiceError is a typed completion-service failure.
type ServiceError struct {
	Kind     FailureKind
	Provider string
	Cause    error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

// Retryable reports whether the failure is transient. Invalid
// credentials never heal on retry.
func (e *ServiceError) Retryable() bool {
	return e.Kind != FailureAuthInvalid
}
