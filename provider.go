package zeno

import "context"

// Provider is a strategy pattern interface for LLM providers. The engine
// depends only on this interface; anthropic and gemini supply the adapters
// that translate Request into each service's native call.
type Provider interface {
	// Name identifies the provider in logs and combined failure messages.
	Name() string

	// Generate performs a blocking completion and returns the full
	// assistant text.
	Generate(ctx context.Context, req Request) (string, error)

	// Stream starts a streaming completion. Cancellation flows through ctx.
	Stream(ctx context.Context, req Request) (Stream, error)
}

// Stream is a pull-based iterator over text deltas.
//
// Next returns the next delta, io.EOF on normal completion, or a non-EOF
// error on failure. After a terminal return, further Next calls repeat it.
// Text returns the text accumulated so far; after io.EOF it is the complete
// assistant response, after an error it is the partial response received
// before the failure.
type Stream interface {
	Next() (string, error)
	Text() string
	Close() error
}
