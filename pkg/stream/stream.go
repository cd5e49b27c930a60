// Package stream defines the uniform iteration contract every format
// adapter satisfies: a pull-based Adapter yielding one raw row per
// call, and the single-pass Stream cursor that wraps rows into
// Records.
package stream

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/bisegni/lcdio/pkg/record"
)

// Adapter decodes one source in one specific format. It owns all
// format-specific decoding; the stream only wraps what it yields.
type Adapter interface {
	// Open acquires the underlying resource and consumes any header
	// the format declares. Called exactly once, by Stream.Start.
	Open() error
	// Next decodes the next raw row: its values in order and, when
	// the format names them, its field names (nil otherwise). It
	// returns io.EOF when the source is exhausted; any other error is
	// a decode failure.
	Next() (vals []record.Value, fields []string, err error)
	// Close releases the underlying resource. Must be idempotent.
	Close() error
}

// Sized is the optional capability of adapters whose format exposes
// the total row count cheaply.
type Sized interface {
	Len() int
}

// Usage errors for streams driven past their contract.
var (
	// ErrAlreadyStarted reports a second Start on the same stream.
	// Streams are not restartable; open a new one instead.
	ErrAlreadyStarted = errors.New("stream already started")

	// ErrExhausted reports iteration past end-of-stream.
	ErrExhausted = errors.New("stream exhausted")

	// ErrClosed reports iteration on a closed stream.
	ErrClosed = errors.New("stream closed")
)

// Stream is a single-pass, forward-only cursor producing one Record
// per underlying row. It exclusively owns the adapter's resource for
// its lifetime and releases it on exhaustion, on error, or on Close.
// Not safe for concurrent use.
type Stream struct {
	adapter Adapter
	cur     *record.Record
	err     error
	started bool
	done    bool
	closed  bool
}

// New wraps an adapter in a stream. The stream takes ownership of the
// adapter; exactly one stream may consume it.
func New(a Adapter) *Stream {
	return &Stream{adapter: a}
}

// Start opens the adapter and positions the cursor before the first
// data row. Calling Start twice is a usage error (ErrAlreadyStarted),
// never a silent reset.
func (s *Stream) Start() error {
	if s.started {
		return errors.WithStack(ErrAlreadyStarted)
	}
	s.started = true
	if err := s.adapter.Open(); err != nil {
		s.err = err
		s.done = true
		_ = s.Close()
		return err
	}
	return nil
}

// Next advances to the next record. It returns false at end-of-stream
// or on error; check Err to tell the two apart. Calling Next again
// after exhaustion is a usage error surfaced through Err. A malformed
// row wider than the header is passed through, not rejected.
func (s *Stream) Next() bool {
	if s.err != nil {
		return false
	}
	if s.done {
		s.err = errors.WithStack(ErrExhausted)
		return false
	}
	if s.closed {
		s.err = errors.WithStack(ErrClosed)
		return false
	}
	if !s.started {
		if err := s.Start(); err != nil {
			return false
		}
	}
	vals, fields, err := s.adapter.Next()
	if err != nil {
		s.done = true
		closeErr := s.Close()
		if errors.Is(err, io.EOF) {
			s.err = closeErr
			return false
		}
		// Decode failure: propagate unmodified.
		s.err = err
		return false
	}
	s.cur = record.New(vals, fields)
	return true
}

// Record returns the record produced by the last successful Next.
func (s *Stream) Record() *record.Record {
	return s.cur
}

// Err returns the first error encountered, nil after a clean
// exhaustion.
func (s *Stream) Err() error {
	return s.err
}

// Len returns the total row count when the adapter supports it. Only
// meaningful once the stream has started.
func (s *Stream) Len() (int, bool) {
	if sized, ok := s.adapter.(Sized); ok {
		return sized.Len(), true
	}
	return 0, false
}

// Close releases the adapter's resource. Safe to call more than once
// and after exhaustion.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.adapter.Close()
}
