package zeno

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or message failed validation.
	ErrValidation = errors.New("validation error")

	// ErrConversationNotFound indicates no conversation exists for a session id.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// ProvidersError reports that both the primary and the fallback provider
// failed for the same request. Error() combines both short reasons; raw
// provider error bodies are logged server-side, never surfaced here.
type ProvidersError struct {
	PrimaryName  string
	Primary      error
	FallbackName string
	Fallback     error
}

// Error names both underlying causes.
func (e *ProvidersError) Error() string {
	return fmt.Sprintf("all providers failed: %s: %v; %s: %v",
		e.PrimaryName, e.Primary, e.FallbackName, e.Fallback)
}

// Unwrap exposes both causes to errors.Is and errors.As.
func (e *ProvidersError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}
