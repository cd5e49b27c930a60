// Package adapter implements the format adapters: each one decodes a
// single source of one format into the (header, raw rows) contract
// consumed by pkg/stream. Adapters separate the immutable source
// description (their constructor arguments) from the per-pass cursor
// state they build in Open.
package adapter

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Source identifies where an adapter reads from: a file path, or an
// already-open reader supplied by the caller.
type Source struct {
	path string
	r    io.Reader
}

// FileSource reads from the file at path.
func FileSource(path string) Source {
	return Source{path: path}
}

// ReaderSource reads from an already-open reader. If the reader is
// also an io.Closer the adapter closes it when done.
func ReaderSource(r io.Reader) Source {
	return Source{r: r}
}

// open acquires the source. The returned closer releases whatever the
// adapter ends up owning.
func (s Source) open() (io.Reader, io.Closer, error) {
	if s.path != "" {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open %s", s.path)
		}
		return f, f, nil
	}
	if s.r == nil {
		return nil, nil, errors.New("adapter: empty source")
	}
	if c, ok := s.r.(io.Closer); ok {
		return s.r, c, nil
	}
	return s.r, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
