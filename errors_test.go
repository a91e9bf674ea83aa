package zeno_test

import (
	"errors"
	"testing"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/stretchr/testify/assert"
)

func TestProvidersError_NamesBothCauses(t *testing.T) {
	t.Parallel()

	primary := errors.New("rate limited")
	fallback := errors.New("connection refused")
	err := &zeno.ProvidersError{
		PrimaryName:  "anthropic",
		Primary:      primary,
		FallbackName: "gemini",
		Fallback:     fallback,
	}

	msg := err.Error()
	assert.Contains(t, msg, "anthropic")
	assert.Contains(t, msg, "rate limited")
	assert.Contains(t, msg, "gemini")
	assert.Contains(t, msg, "connection refused")

	assert.ErrorIs(t, err, primary)
	assert.ErrorIs(t, err, fallback)
}
