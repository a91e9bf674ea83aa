// Package mock provides test doubles for zeno interfaces using function fields.
package mock

import (
	"context"

	zeno "github.com/Dushyant-2004/Zeno"
)

// Interface compliance checks.
var (
	_ zeno.Provider = (*Provider)(nil)
	_ zeno.Stream   = (*Stream)(nil)
)

// Provider is a test double for zeno.Provider.
// Set GenerateFn and/or StreamFn for the paths the test exercises.
type Provider struct {
	NameValue  string
	GenerateFn func(ctx context.Context, req zeno.Request) (string, error)
	StreamFn   func(ctx context.Context, req zeno.Request) (zeno.Stream, error)
}

// Name returns NameValue, or "mock" when unset.
func (p *Provider) Name() string {
	if p.NameValue == "" {
		return "mock"
	}
	return p.NameValue
}

// Generate delegates to GenerateFn.
func (p *Provider) Generate(ctx context.Context, req zeno.Request) (string, error) {
	return p.GenerateFn(ctx, req)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req zeno.Request) (zeno.Stream, error) {
	return p.StreamFn(ctx, req)
}
