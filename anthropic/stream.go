package anthropic

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	zeno "github.com/Dushyant-2004/Zeno"
)

// stream implements [zeno.Stream] by parsing SSE events from an HTTP
// response body. Only text deltas become deltas; other event types
// (message_start, ping, content_block_stop, ...) are consumed silently.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	acc     strings.Builder
	err     error // terminal error, if any
	done    bool
	closed  bool
}

// Interface compliance check.
var _ zeno.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser) *stream {
	return &stream{
		body:    body,
		scanner: bufio.NewScanner(body),
		ctx:     ctx,
	}
}

// Next reads SSE events until the next text delta. Returns io.EOF when the
// stream completes normally via message_stop.
func (s *stream) Next() (string, error) {
	switch {
	case s.done:
		return "", io.EOF
	case s.err != nil:
		return "", s.err
	case s.closed:
		return "", fmt.Errorf("anthropic: %w", zeno.ErrStreamClosed)
	}

	for {
		eventType, data, err := s.readSSEEvent()
		if err != nil {
			return "", s.terminate(err)
		}

		delta, err := s.processEvent(eventType, data)
		if err != nil {
			return "", s.terminate(err)
		}
		if s.done {
			return "", io.EOF
		}
		if delta != "" {
			s.acc.WriteString(delta)
			return delta, nil
		}
		// Non-semantic event, keep reading.
	}
}

// Text returns the text accumulated so far.
func (s *stream) Text() string {
	return s.acc.String()
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	if !s.done && s.err == nil {
		s.closed = true
	}
	return s.body.Close()
}

// terminate records a terminal error, mapping context cancellation and
// unexpected EOF to stable messages.
func (s *stream) terminate(err error) error {
	if s.ctx.Err() != nil {
		s.err = fmt.Errorf("anthropic: %w", s.ctx.Err())
	} else if err == io.EOF {
		// Normal completion arrives as message_stop, never raw EOF.
		s.err = fmt.Errorf("anthropic: unexpected end of stream")
	} else {
		s.err = err
	}
	return s.err
}

// readSSEEvent reads lines until a complete SSE event is assembled.
// Returns the event type and the data payload.
func (s *stream) readSSEEvent() (string, string, error) {
	var eventType string
	var dataBuf strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			// Empty line signals end of event.
			if dataBuf.Len() > 0 {
				return eventType, dataBuf.String(), nil
			}
			continue
		}

		if strings.HasPrefix(line, "event: ") {
			eventType = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}

	if err := s.scanner.Err(); err != nil {
		return "", "", fmt.Errorf("anthropic: %w", err)
	}

	// Scanner exhausted without error = EOF.
	if dataBuf.Len() > 0 {
		return eventType, dataBuf.String(), nil
	}
	return "", "", io.EOF
}

// processEvent maps an SSE event to a text delta. Returns "" for events that
// carry no text.
func (s *stream) processEvent(eventType, data string) (string, error) {
	switch eventType {
	case "content_block_delta":
		var evt sseContentBlockDelta
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return "", fmt.Errorf("anthropic: failed to parse content_block_delta: %w", err)
		}
		if evt.Delta.Type == "text_delta" {
			return evt.Delta.Text, nil
		}
		return "", nil
	case "message_stop":
		s.done = true
		return "", nil
	case "error":
		var evt sseError
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return "", fmt.Errorf("anthropic: failed to parse error event: %w", err)
		}
		return "", fmt.Errorf("anthropic: %s: %s", evt.Error.Type, evt.Error.Message)
	default:
		// message_start, content_block_start, content_block_stop,
		// message_delta, ping and unknown event types carry no text.
		return "", nil
	}
}
