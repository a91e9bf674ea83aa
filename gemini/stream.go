package gemini

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	zeno "github.com/Dushyant-2004/Zeno"
	"google.golang.org/genai"
)

// stream implements [zeno.Stream] over the genai streaming iterator. Each
// chunk's text parts are concatenated into a single delta; chunks with no
// text (thoughts, metadata) are consumed silently.
type stream struct {
	next   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	ctx    context.Context
	acc    strings.Builder
	err    error // terminal error, if any
	done   bool
	closed bool
}

// Interface compliance check.
var _ zeno.Stream = (*stream)(nil)

func newStream(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		next: next,
		stop: stop,
		ctx:  ctx,
	}
}

// Next pulls chunks until the next non-empty text delta. Returns io.EOF when
// the iterator is exhausted.
func (s *stream) Next() (string, error) {
	switch {
	case s.done:
		return "", io.EOF
	case s.err != nil:
		return "", s.err
	case s.closed:
		return "", fmt.Errorf("gemini: %w", zeno.ErrStreamClosed)
	}

	for {
		resp, err, ok := s.next()
		if !ok {
			s.done = true
			s.stop()
			return "", io.EOF
		}
		if err != nil {
			return "", s.terminate(err)
		}

		if delta := extractText(resp); delta != "" {
			s.acc.WriteString(delta)
			return delta, nil
		}
		// Chunk carried no text, keep pulling.
	}
}

// Text returns the text accumulated so far.
func (s *stream) Text() string {
	return s.acc.String()
}

// Close releases the underlying iterator.
func (s *stream) Close() error {
	if !s.done && s.err == nil {
		s.closed = true
	}
	s.stop()
	return nil
}

// terminate records a terminal error, mapping context cancellation to a
// stable message.
func (s *stream) terminate(err error) error {
	s.stop()
	if s.ctx.Err() != nil {
		s.err = fmt.Errorf("gemini: %w", s.ctx.Err())
	} else {
		s.err = fmt.Errorf("gemini: %w", err)
	}
	return s.err
}
