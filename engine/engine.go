// Package engine wraps two interchangeable providers behind one completion
// interface and performs failover between them.
//
// The chain is strictly two-tier: primary, then fallback, then a combined
// fatal error. There is no retry loop beyond the single fallback hop, which
// keeps latency bounded for an interactive chat surface. On the streaming
// path the fallback only applies before the first delta; switching providers
// mid-stream would splice two unrelated responses together.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	zeno "github.com/Dushyant-2004/Zeno"
)

const (
	// DefaultTemperature is applied when a call does not override it.
	DefaultTemperature = 0.7

	// DefaultMaxTokens caps assistant output per call.
	DefaultMaxTokens = 4096
)

// Engine routes completion calls to a primary provider with automatic
// failover to a fallback provider. Safe for concurrent use.
type Engine struct {
	primary      zeno.Provider
	fallback     zeno.Provider
	systemPrompt string
	logger       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSystemPrompt overrides the default system prompt submitted with every
// provider call.
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) { e.systemPrompt = prompt }
}

// WithLogger sets the logger used for failover reporting.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine over the given primary and fallback providers.
func New(primary, fallback zeno.Provider, opts ...Option) *Engine {
	e := &Engine{
		primary:      primary,
		fallback:     fallback,
		systemPrompt: DefaultSystemPrompt,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// CallOption overrides generation parameters for a single call.
type CallOption func(*callConfig)

type callConfig struct {
	temperature float64
	maxTokens   int
}

// WithTemperature overrides the sampling temperature for this call.
func WithTemperature(t float64) CallOption {
	return func(c *callConfig) { c.temperature = t }
}

// WithMaxTokens overrides the output token cap for this call.
func WithMaxTokens(n int) CallOption {
	return func(c *callConfig) { c.maxTokens = n }
}

func (e *Engine) buildRequest(msgs []zeno.ChatMessage, opts []CallOption) zeno.Request {
	cfg := callConfig{
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
	}
	for _, o := range opts {
		o(&cfg)
	}
	temp := cfg.temperature
	return zeno.Request{
		SystemPrompt: e.systemPrompt,
		Messages:     msgs,
		Temperature:  &temp,
		MaxTokens:    cfg.maxTokens,
	}
}

// Complete performs a blocking completion. On any primary failure it retries
// once against the fallback with the identical message list; when both fail
// it returns a ProvidersError naming both causes.
func (e *Engine) Complete(ctx context.Context, msgs []zeno.ChatMessage, opts ...CallOption) (string, error) {
	req := e.buildRequest(msgs, opts)
	if err := req.Validate(); err != nil {
		return "", err
	}

	text, primaryErr := e.primary.Generate(ctx, req)
	if primaryErr == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", fmt.Errorf("engine: %w", ctx.Err())
	}

	e.logger.Warn("primary provider failed, falling back",
		"provider", e.primary.Name(), "error", primaryErr)

	text, fallbackErr := e.fallback.Generate(ctx, req)
	if fallbackErr == nil {
		return text, nil
	}

	e.logger.Error("fallback provider failed",
		"provider", e.fallback.Name(), "error", fallbackErr)

	return "", &zeno.ProvidersError{
		PrimaryName:  e.primary.Name(),
		Primary:      primaryErr,
		FallbackName: e.fallback.Name(),
		Fallback:     fallbackErr,
	}
}

// Stream starts a streaming completion against the primary provider. If the
// primary fails before emitting any delta, the stream transparently restarts
// on the fallback; the caller sees nothing but latency. If the primary fails
// after deltas were delivered, the error is surfaced and the partial text is
// retained — the stream never switches providers mid-flight.
func (e *Engine) Stream(ctx context.Context, msgs []zeno.ChatMessage, opts ...CallOption) (zeno.Stream, error) {
	req := e.buildRequest(msgs, opts)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cur, primaryErr := e.primary.Stream(ctx, req)
	if primaryErr != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("engine: %w", ctx.Err())
		}
		e.logger.Warn("primary provider failed to start stream, falling back",
			"provider", e.primary.Name(), "error", primaryErr)
		fb, fallbackErr := e.fallback.Stream(ctx, req)
		if fallbackErr != nil {
			e.logger.Error("fallback provider failed to start stream",
				"provider", e.fallback.Name(), "error", fallbackErr)
			return nil, &zeno.ProvidersError{
				PrimaryName:  e.primary.Name(),
				Primary:      primaryErr,
				FallbackName: e.fallback.Name(),
				Fallback:     fallbackErr,
			}
		}
		return &failoverStream{ctx: ctx, eng: e, req: req, cur: fb, onFallback: true, primaryErr: primaryErr}, nil
	}

	return &failoverStream{ctx: ctx, eng: e, req: req, cur: cur}, nil
}

// failoverStream wraps the active provider stream and applies the
// before-first-delta failover policy.
type failoverStream struct {
	ctx        context.Context
	eng        *Engine
	req        zeno.Request
	cur        zeno.Stream
	onFallback bool
	primaryErr error
	emitted    int
	buf        strings.Builder
	err        error
	done       bool
	closed     bool
}

// Interface compliance check.
var _ zeno.Stream = (*failoverStream)(nil)

// Next returns the next text delta, io.EOF on completion, or the terminal
// error.
func (s *failoverStream) Next() (string, error) {
	switch {
	case s.err != nil:
		return "", s.err
	case s.done:
		return "", io.EOF
	case s.closed:
		return "", zeno.ErrStreamClosed
	}

	for {
		delta, err := s.cur.Next()
		if err == nil {
			s.emitted++
			s.buf.WriteString(delta)
			return delta, nil
		}
		if err == io.EOF {
			s.done = true
			return "", io.EOF
		}
		if s.ctx.Err() != nil {
			// Abort is authoritative: no fallback, no further deltas.
			s.err = fmt.Errorf("engine: %w", s.ctx.Err())
			return "", s.err
		}
		if s.emitted == 0 && !s.onFallback {
			s.eng.logger.Warn("primary provider failed before first delta, falling back",
				"provider", s.eng.primary.Name(), "error", err)
			_ = s.cur.Close()
			fb, fallbackErr := s.eng.fallback.Stream(s.ctx, s.req)
			if fallbackErr != nil {
				s.eng.logger.Error("fallback provider failed to start stream",
					"provider", s.eng.fallback.Name(), "error", fallbackErr)
				s.err = &zeno.ProvidersError{
					PrimaryName:  s.eng.primary.Name(),
					Primary:      err,
					FallbackName: s.eng.fallback.Name(),
					Fallback:     fallbackErr,
				}
				return "", s.err
			}
			s.onFallback = true
			s.primaryErr = err
			s.cur = fb
			continue
		}
		if s.emitted == 0 && s.onFallback && s.primaryErr != nil {
			// Fallback also produced nothing: both causes belong in the error.
			s.err = &zeno.ProvidersError{
				PrimaryName:  s.eng.primary.Name(),
				Primary:      s.primaryErr,
				FallbackName: s.eng.fallback.Name(),
				Fallback:     err,
			}
			return "", s.err
		}
		// Partial failure: deltas were already delivered, so the error is
		// surfaced as-is and the accumulated text stays available.
		s.err = err
		return "", s.err
	}
}

// Text returns the text accumulated across the active provider stream.
func (s *failoverStream) Text() string {
	return s.buf.String()
}

// Close closes the underlying provider stream.
func (s *failoverStream) Close() error {
	if !s.done && s.err == nil {
		s.closed = true
	}
	return s.cur.Close()
}
