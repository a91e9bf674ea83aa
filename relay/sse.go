package relay

import (
	"encoding/json"
	"fmt"
	"net/http"

	zeno "github.com/Dushyant-2004/Zeno"
)

// wireEvent is the JSON shape of a StreamEvent on the wire. Exactly one
// branch of the union is populated per event.
type wireEvent struct {
	Content   string `json:"content,omitempty"`
	Done      bool   `json:"done,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// EncodeEvent renders a StreamEvent as its wire JSON.
func EncodeEvent(e zeno.StreamEvent) ([]byte, error) {
	var w wireEvent
	switch ev := e.(type) {
	case zeno.EventContent:
		w = wireEvent{Content: ev.Delta}
	case zeno.EventDone:
		w = wireEvent{Done: true, SessionID: ev.SessionID}
	case zeno.EventError:
		w = wireEvent{Error: ev.Message}
	default:
		return nil, fmt.Errorf("relay: unknown event type %T", e)
	}
	return json.Marshal(w)
}

// SSEWriter frames StreamEvents as server-sent events over an HTTP response.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares w for server-sent events and returns a writer over
// it. Returns an error when the ResponseWriter cannot flush incrementally.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("relay: response writer does not support streaming")
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent writes one `data: {json}` frame and flushes it to the client.
func (s *SSEWriter) WriteEvent(e zeno.StreamEvent) error {
	data, err := EncodeEvent(e)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	s.flusher.Flush()
	return nil
}
