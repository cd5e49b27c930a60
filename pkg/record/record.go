// Package record holds the generic record and value model shared by
// every format adapter: a Value tagged union, an immutable Record of
// ordered values with an optional header, and the compound-index
// resolution that descends through arbitrarily nested data.
package record

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Record is one row or document: an ordered sequence of Values,
// optionally paired with field names. The header may be shorter than
// the values (a malformed row wider than its declared header is
// tolerated; the extra values are reachable by position only). A
// Record is immutable once constructed.
type Record struct {
	values []Value
	fields []string
}

// New constructs a Record from a row of values and an optional header.
// A nil fields slice means "no header". Both slices are copied so the
// record owns its data exclusively.
func New(values []Value, fields []string) *Record {
	r := &Record{}
	if len(values) > 0 {
		r.values = make([]Value, len(values))
		copy(r.values, values)
	}
	if fields != nil {
		r.fields = make([]string, len(fields))
		copy(r.fields, fields)
	}
	return r
}

// HasHeader reports whether the record carries field names.
func (r *Record) HasHeader() bool {
	return r.fields != nil
}

// Fields returns the header, or nil when the record has none.
func (r *Record) Fields() []string {
	return r.fields
}

// Values returns the row's values in order.
func (r *Record) Values() []Value {
	return r.values
}

// Len returns the number of values in the record.
func (r *Record) Len() int {
	return len(r.values)
}

// Items pairs field names with values in order, truncated to the
// shorter of the two. Records without a header use the positions
// "0".."N-1" as names.
func (r *Record) Items() []Pair {
	if r.fields == nil {
		items := make([]Pair, len(r.values))
		for i, v := range r.values {
			items[i] = Pair{Name: strconv.Itoa(i), Value: v}
		}
		return items
	}
	n := len(r.fields)
	if len(r.values) < n {
		n = len(r.values)
	}
	items := make([]Pair, n)
	for i := 0; i < n; i++ {
		items[i] = Pair{Name: r.fields[i], Value: r.values[i]}
	}
	return items
}

// At returns the value at position i.
func (r *Record) At(i int) (Value, error) {
	return r.Resolve(At(i))
}

// Get returns the value named by field.
func (r *Record) Get(field string) (Value, error) {
	return r.Resolve(Name(field))
}

// Resolve applies a compound path to the record. The first Index
// addresses the record's own top level: positions and ranges are
// always available, names only when a header is present (ErrNoHeader
// otherwise). Remaining Index elements descend into the resolved
// Value; see Value.Resolve for the error and short-circuit rules.
func (r *Record) Resolve(path ...Index) (Value, error) {
	if len(path) == 0 {
		return Seq(r.values...), nil
	}
	cur, err := r.resolveTop(path[0])
	if err != nil {
		return Null(), err
	}
	return cur.Resolve(path[1:]...)
}

func (r *Record) resolveTop(idx Index) (Value, error) {
	switch i := idx.(type) {
	case At:
		if int(i) < 0 || int(i) >= len(r.values) {
			return Null(), errors.Wrapf(ErrIndexOutOfRange, "position %d of %d", int(i), len(r.values))
		}
		return r.values[i], nil
	case Range:
		lo, hi := i.bounds(len(r.values))
		return Seq(r.values[lo:hi]...), nil
	case Name:
		if r.fields == nil {
			return Null(), errors.Wrapf(ErrNoHeader, "field %q", string(i))
		}
		for pos, f := range r.fields {
			if f == string(i) {
				if pos >= len(r.values) {
					// Header wider than the row: the name exists
					// but has no value behind it.
					return Null(), errors.Wrapf(ErrKeyNotFound, "field %q has no value", string(i))
				}
				return r.values[pos], nil
			}
		}
		return Null(), errors.Wrapf(ErrKeyNotFound, "field %q", string(i))
	}
	return Null(), errors.AssertionFailedf("unknown index type %T", idx)
}

// MarshalJSON renders the record as an object when a header is present
// (truncated to the named values) and as an array otherwise.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r.fields != nil {
		return Map(r.Items()...).MarshalJSON()
	}
	return Seq(r.values...).MarshalJSON()
}

// String implements fmt.Stringer.
func (r *Record) String() string {
	return fmt.Sprintf("Record(%s, fields:%v)", Seq(r.values...).String(), r.fields)
}
