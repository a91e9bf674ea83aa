package zeno

import "fmt"

// MaxMessageRunes is the longest user message the API accepts.
const MaxMessageRunes = 10000

// Validate checks universal constraints on Request.
// Provider implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("request has no messages: %w", ErrValidation)
	}
	if r.Temperature != nil {
		if *r.Temperature < 0 || *r.Temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *r.Temperature, ErrValidation)
		}
	}
	if r.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", r.MaxTokens, ErrValidation)
	}
	for i, m := range r.Messages {
		if !m.Role.Valid() {
			return fmt.Errorf("message %d has unknown role %q: %w", i, m.Role, ErrValidation)
		}
	}
	return nil
}

// ValidateUserInput checks an incoming chat message body before any provider
// call is attempted.
func ValidateUserInput(content string) error {
	if content == "" {
		return fmt.Errorf("message is empty: %w", ErrValidation)
	}
	if n := len([]rune(content)); n > MaxMessageRunes {
		return fmt.Errorf("message is %d characters, limit is %d: %w", n, MaxMessageRunes, ErrValidation)
	}
	return nil
}
