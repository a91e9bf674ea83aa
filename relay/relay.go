// Package relay adapts engine streams into the wire-level event sequence sent
// to the browser and persists the final assistant text exactly once.
//
// Ordering invariant: zero or more content events, then exactly one terminal
// event (done or error). After the terminal event nothing else is written.
package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	zeno "github.com/Dushyant-2004/Zeno"
)

// EventWriter delivers StreamEvents to the client transport. SSEWriter is the
// production implementation; tests substitute a recording writer.
type EventWriter interface {
	WriteEvent(e zeno.StreamEvent) error
}

// Relay drains completion streams into an EventWriter. Safe for concurrent
// use; each Run call is independent.
type Relay struct {
	store  zeno.ConversationStore
	logger *slog.Logger
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the logger for persistence and transport failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Relay) { r.logger = l }
}

// New creates a Relay that persists completed turns through store.
func New(store zeno.ConversationStore, opts ...Option) *Relay {
	r := &Relay{store: store, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run forwards each delta from s to w as a content event, accumulating the
// full text. On normal completion it appends one assistant message to the
// conversation and emits a done event carrying the session id. On stream
// failure it emits one error event and persists nothing; the client keeps
// whatever partial text it already received from prior content events.
//
// An observed abort (ctx cancelled or the transport write failing) suppresses
// all further side effects: no persistence, no further events.
func (r *Relay) Run(ctx context.Context, s zeno.Stream, sessionID string, w EventWriter) error {
	var acc strings.Builder

	for {
		delta, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				r.logger.Debug("stream aborted by client", "sessionId", sessionID)
				return fmt.Errorf("relay: %w", ctx.Err())
			}
			r.logger.Error("completion stream failed",
				"sessionId", sessionID, "partialLen", acc.Len(), "error", err)
			if werr := w.WriteEvent(zeno.EventError{Message: err.Error()}); werr != nil {
				r.logger.Debug("client gone before error event", "sessionId", sessionID)
			}
			return fmt.Errorf("relay: %w", err)
		}
		if delta == "" {
			continue
		}
		acc.WriteString(delta)
		if werr := w.WriteEvent(zeno.EventContent{Delta: delta}); werr != nil {
			// Client disconnected mid-stream. Treat like an abort.
			r.logger.Debug("client disconnected mid-stream", "sessionId", sessionID)
			return fmt.Errorf("relay: %w", werr)
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("relay: %w", ctx.Err())
	}

	if err := r.store.Append(ctx, sessionID, zeno.NewAssistantMessage(acc.String())); err != nil {
		r.logger.Error("failed to persist assistant message",
			"sessionId", sessionID, "error", err)
		if werr := w.WriteEvent(zeno.EventError{Message: "failed to save response"}); werr != nil {
			r.logger.Debug("client gone before error event", "sessionId", sessionID)
		}
		return fmt.Errorf("relay: %w", err)
	}

	if err := w.WriteEvent(zeno.EventDone{SessionID: sessionID}); err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	return nil
}
