package zeno

// StreamEvent is a sealed interface representing one unit of the
// server-to-browser event sequence. A stream consists of zero or more
// EventContent values followed by exactly one terminal event, either
// EventDone or EventError. The unexported marker method prevents external
// implementations.
type StreamEvent interface {
	streamEvent()
}

// EventContent carries a single text delta. Clients concatenate deltas; the
// accumulated text is never re-sent.
type EventContent struct {
	Delta string
}

func (EventContent) streamEvent() {}

// EventDone terminates a successful stream. It carries the session id so a
// caller that started without one learns the generated id.
type EventDone struct {
	SessionID string
}

func (EventDone) streamEvent() {}

// EventError terminates a failed stream with a human-readable message.
// Partial text already delivered through EventContent stays with the client.
type EventError struct {
	Message string
}

func (EventError) streamEvent() {}

// Interface compliance checks.
var (
	_ StreamEvent = EventContent{}
	_ StreamEvent = EventDone{}
	_ StreamEvent = EventError{}
)
