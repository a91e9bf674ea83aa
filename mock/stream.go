package mock

import (
	"io"
	"strings"
)

// Stream is a test double for zeno.Stream.
// Set the function fields for the methods you need. NextFn panics when nil to
// catch missing setup. TextFn and CloseFn are nil-safe (empty string and
// no-op) because test code commonly calls defer stream.Close().
type Stream struct {
	NextFn  func() (string, error)
	TextFn  func() string
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (string, error) {
	return s.NextFn()
}

// Text delegates to TextFn. Returns "" when TextFn is nil.
func (s *Stream) Text() string {
	if s.TextFn == nil {
		return ""
	}
	return s.TextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Script returns a Stream that yields the given deltas in order and then
// terminates with terminal. Pass io.EOF for normal completion. Text reports
// the deltas consumed so far, matching real adapter behavior on failure.
func Script(deltas []string, terminal error) *Stream {
	if terminal == nil {
		terminal = io.EOF
	}
	i := 0
	var buf strings.Builder
	return &Stream{
		NextFn: func() (string, error) {
			if i >= len(deltas) {
				return "", terminal
			}
			d := deltas[i]
			i++
			buf.WriteString(d)
			return d, nil
		},
		TextFn: func() string { return buf.String() },
	}
}
