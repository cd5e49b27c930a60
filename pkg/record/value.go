package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies which variant of the Value union is populated.
type Kind int

const (
	// KindScalar is a primitive: string, number, boolean or null.
	KindScalar Kind = iota
	// KindSequence is an ordered list of Values.
	KindSequence
	// KindMapping is a name-keyed list of Values preserving insertion order.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pair is one name/value entry of a Mapping.
type Pair struct {
	Name  string
	Value Value
}

// Value is the tagged union every adapter decodes into: a scalar, an
// ordered sequence, or an insertion-ordered mapping. The zero Value is
// the null scalar. A Value is exactly one variant; indexing never
// coerces between them.
type Value struct {
	kind  Kind
	prim  any // scalar payload, opaque to the core
	elems []Value
	pairs []Pair
}

// Null returns the null scalar.
func Null() Value {
	return Value{}
}

// Scalar wraps a primitive. The payload is stored as-is; the core only
// ever compares it or hands it back.
func Scalar(v any) Value {
	return Value{kind: KindScalar, prim: v}
}

// Seq builds a Sequence from the given elements.
func Seq(elems ...Value) Value {
	return Value{kind: KindSequence, elems: elems}
}

// Map builds a Mapping from the given pairs, preserving their order.
func Map(pairs ...Pair) Value {
	return Value{kind: KindMapping, pairs: pairs}
}

// FromGo converts a native Go value, as produced by decoders like
// database/sql or toml, into a Value. Maps are ordered by sorted key
// since Go maps carry no order; adapters that know the document order
// build Mappings explicitly instead.
func FromGo(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromGo(e)
		}
		return Seq(elems...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			pairs[i] = Pair{Name: k, Value: FromGo(t[k])}
		}
		return Map(pairs...)
	default:
		return Scalar(v)
	}
}

// Kind reports which variant this Value is.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the Value is the null scalar.
func (v Value) IsNull() bool {
	return v.kind == KindScalar && v.prim == nil
}

// Len returns the element count for Sequences and Mappings, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.elems)
	case KindMapping:
		return len(v.pairs)
	}
	return 0
}

// Elems returns the elements of a Sequence, nil for other kinds.
func (v Value) Elems() []Value {
	return v.elems
}

// Pairs returns the entries of a Mapping, nil for other kinds.
func (v Value) Pairs() []Pair {
	return v.pairs
}

// Lookup returns the Value paired with name in a Mapping.
func (v Value) Lookup(name string) (Value, bool) {
	for _, p := range v.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Null(), false
}

// Go converts the Value back into native Go data: scalars unwrap,
// Sequences become []any, Mappings become map[string]any (losing order).
func (v Value) Go() any {
	switch v.kind {
	case KindSequence:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Go()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.pairs))
		for _, p := range v.pairs {
			out[p.Name] = p.Value.Go()
		}
		return out
	}
	return v.prim
}

// MarshalJSON implements json.Marshaler. Mapping keys are emitted in
// insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindSequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMapping:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := p.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return json.Marshal(v.prim)
}

// String implements fmt.Stringer.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", v.Go())
	}
	return string(b)
}
