package record

import "github.com/cockroachdb/errors"

// Index is one step of a compound path: an integer position, a field
// name, or an integer range. The three implementations are At, Name
// and Range.
type Index interface {
	isIndex()
}

// At indexes a Sequence (or the record top level) by position.
type At int

// Name indexes a Mapping (or a record with a header) by field name.
type Name string

// Range selects a contiguous sub-sequence with half-open bounds.
// Either bound may be open; negative offsets count from the end and
// out-of-range bounds clamp rather than error.
type Range struct {
	start, stop       int
	hasStart, hasStop bool
}

func (At) isIndex()    {}
func (Name) isIndex()  {}
func (Range) isIndex() {}

// Span returns the range [start, stop).
func Span(start, stop int) Range {
	return Range{start: start, stop: stop, hasStart: true, hasStop: true}
}

// From returns the range [start, end-of-sequence).
func From(start int) Range {
	return Range{start: start, hasStart: true}
}

// Until returns the range [0, stop).
func Until(stop int) Range {
	return Range{stop: stop, hasStop: true}
}

// All returns the full range.
func All() Range {
	return Range{}
}

// bounds resolves the range against a sequence of length n, applying
// negative offsets and clamping.
func (r Range) bounds(n int) (int, int) {
	lo, hi := 0, n
	if r.hasStart {
		lo = clampOffset(r.start, n)
	}
	if r.hasStop {
		hi = clampOffset(r.stop, n)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func clampOffset(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Resolve descends into the Value one Index at a time, left to right.
// Positional lookups outside a Sequence's bounds fail with
// ErrIndexOutOfRange and named lookups absent from a Mapping fail with
// ErrKeyNotFound. When the path cannot structurally continue — the
// index type does not match the container, or a scalar is reached with
// path remaining — the result is the null Value rather than an error.
// This is the single intentional leniency of the model: speculative
// deep paths over optional data need no presence checks.
func (v Value) Resolve(path ...Index) (Value, error) {
	cur := v
	for _, idx := range path {
		next, stop, err := step(cur, idx)
		if err != nil {
			return Null(), err
		}
		if stop {
			return Null(), nil
		}
		cur = next
	}
	return cur, nil
}

// step applies a single Index to a Value. stop=true means the
// null short-circuit applies.
func step(cur Value, idx Index) (next Value, stop bool, err error) {
	switch cur.kind {
	case KindSequence:
		switch i := idx.(type) {
		case At:
			if int(i) < 0 || int(i) >= len(cur.elems) {
				return Null(), false, errors.Wrapf(ErrIndexOutOfRange, "position %d of %d", int(i), len(cur.elems))
			}
			return cur.elems[i], false, nil
		case Range:
			lo, hi := i.bounds(len(cur.elems))
			return Seq(cur.elems[lo:hi]...), false, nil
		}
		return Null(), true, nil
	case KindMapping:
		if name, ok := idx.(Name); ok {
			val, found := cur.Lookup(string(name))
			if !found {
				return Null(), false, errors.Wrapf(ErrKeyNotFound, "%q", string(name))
			}
			return val, false, nil
		}
		return Null(), true, nil
	}
	// Scalar with path remaining.
	return Null(), true, nil
}
