package record

import "github.com/cockroachdb/errors"

// Lookup errors surfaced by Resolve. Everything else that cannot
// structurally continue collapses to the null short-circuit instead of
// an error; see Resolve.
var (
	// ErrIndexOutOfRange reports a positional index outside [0, len).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound reports a named lookup whose name is absent from
	// the header or Mapping.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNoHeader reports a named lookup against a record with no
	// header at all. This is a usage error, not a data error.
	ErrNoHeader = errors.New("no header present, use an integer index")
)
