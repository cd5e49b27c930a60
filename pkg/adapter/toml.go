package adapter

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/bisegni/lcdio/pkg/record"
)

// TOML reads a TOML file as exactly one record whose fields are the
// top-level keys in file order. The decoder loses key order, so it is
// rebuilt from toml.MetaData, which reports every defined key in the
// order it appears.
type TOML struct {
	src Source

	fields  []string
	vals    []record.Value
	emitted bool
}

// NewTOML returns an adapter for a TOML file.
func NewTOML(src Source) *TOML {
	return &TOML{src: src}
}

func (t *TOML) Open() error {
	r, closer, err := t.src.open()
	if err != nil {
		return err
	}
	defer closer.Close()

	var data map[string]any
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return errors.Wrap(err, "decode TOML")
	}

	order := keyOrder(md)
	top := convertTOML(data, "", order)
	t.fields = make([]string, 0, top.Len())
	t.vals = make([]record.Value, 0, top.Len())
	for _, p := range top.Pairs() {
		t.fields = append(t.fields, p.Name)
		t.vals = append(t.vals, p.Value)
	}
	return nil
}

func (t *TOML) Next() ([]record.Value, []string, error) {
	if t.emitted {
		return nil, nil, io.EOF
	}
	t.emitted = true
	return t.vals, t.fields, nil
}

// Len is always 1: a TOML file is a single document.
func (t *TOML) Len() int {
	return 1
}

func (t *TOML) Close() error {
	return nil
}

// keyOrder maps each table path (joined with NUL, which cannot appear
// in a key) to its child keys in order of first appearance.
func keyOrder(md toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		parts := []string(key)
		prefix := strings.Join(parts[:len(parts)-1], "\x00")
		leaf := parts[len(parts)-1]
		id := prefix + "\x00\x00" + leaf
		if !seen[id] {
			seen[id] = true
			order[prefix] = append(order[prefix], leaf)
		}
	}
	return order
}

// convertTOML rebuilds a decoded TOML value as a Value, ordering each
// table's keys by document order. Keys the metadata does not cover
// fall back to sorted order for determinism.
func convertTOML(v any, prefix string, order map[string][]string) record.Value {
	switch data := v.(type) {
	case map[string]any:
		pairs := make([]record.Pair, 0, len(data))
		used := make(map[string]bool, len(data))
		for _, k := range order[prefix] {
			child, ok := data[k]
			if !ok {
				continue
			}
			used[k] = true
			pairs = append(pairs, record.Pair{Name: k, Value: convertTOML(child, childPrefix(prefix, k), order)})
		}
		var rest []string
		for k := range data {
			if !used[k] {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
		for _, k := range rest {
			pairs = append(pairs, record.Pair{Name: k, Value: convertTOML(data[k], childPrefix(prefix, k), order)})
		}
		return record.Map(pairs...)
	case []map[string]any:
		// Array of tables: every element shares the key path.
		elems := make([]record.Value, len(data))
		for i, e := range data {
			elems[i] = convertTOML(e, prefix, order)
		}
		return record.Seq(elems...)
	case []any:
		elems := make([]record.Value, len(data))
		for i, e := range data {
			elems[i] = convertTOML(e, prefix, order)
		}
		return record.Seq(elems...)
	case time.Time:
		return record.Scalar(data.Format(time.RFC3339))
	default:
		return record.FromGo(v)
	}
}

func childPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "\x00" + key
}
