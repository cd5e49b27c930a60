package adapter

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/bisegni/lcdio/pkg/record"
)

// JSON reads a whole JSON document. A top-level array yields one
// record per element; a top-level object yields a single record whose
// fields are the object's keys, in document order.
type JSON struct {
	src  Source
	rows []rawRow
	pos  int
}

type rawRow struct {
	vals   []record.Value
	fields []string
}

// NewJSON returns an adapter for a single JSON document.
func NewJSON(src Source) *JSON {
	return &JSON{src: src}
}

func (j *JSON) Open() error {
	r, closer, err := j.src.open()
	if err != nil {
		return err
	}
	defer closer.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read JSON source")
	}
	if !gjson.ValidBytes(data) {
		return errors.New("invalid JSON document")
	}
	root := gjson.ParseBytes(data)
	if root.IsArray() {
		for _, elem := range root.Array() {
			j.rows = append(j.rows, shapeJSONRow(elem))
		}
		return nil
	}
	j.rows = []rawRow{shapeJSONRow(root)}
	return nil
}

func (j *JSON) Next() ([]record.Value, []string, error) {
	if j.pos >= len(j.rows) {
		return nil, nil, io.EOF
	}
	row := j.rows[j.pos]
	j.pos++
	return row.vals, row.fields, nil
}

// Len reports the total record count, known up front since the
// document is parsed whole.
func (j *JSON) Len() int {
	return len(j.rows)
}

func (j *JSON) Close() error {
	return nil
}

// shapeJSONRow turns one decoded element into a raw row: objects keep
// their keys as fields, arrays become headerless rows of their
// elements, and a bare scalar becomes a single-value headerless row.
func shapeJSONRow(res gjson.Result) rawRow {
	switch {
	case res.IsObject():
		var row rawRow
		res.ForEach(func(key, val gjson.Result) bool {
			row.fields = append(row.fields, key.String())
			row.vals = append(row.vals, fromJSON(val))
			return true
		})
		if row.fields == nil {
			row.fields = []string{}
		}
		return row
	case res.IsArray():
		elems := res.Array()
		vals := make([]record.Value, len(elems))
		for i, e := range elems {
			vals[i] = fromJSON(e)
		}
		return rawRow{vals: vals}
	default:
		return rawRow{vals: []record.Value{fromJSON(res)}}
	}
}

// fromJSON converts a gjson result into a Value, preserving object key
// order.
func fromJSON(res gjson.Result) record.Value {
	switch {
	case res.IsObject():
		var pairs []record.Pair
		res.ForEach(func(key, val gjson.Result) bool {
			pairs = append(pairs, record.Pair{Name: key.String(), Value: fromJSON(val)})
			return true
		})
		return record.Map(pairs...)
	case res.IsArray():
		elems := res.Array()
		vals := make([]record.Value, len(elems))
		for i, e := range elems {
			vals[i] = fromJSON(e)
		}
		return record.Seq(vals...)
	}
	switch res.Type {
	case gjson.Null:
		return record.Null()
	case gjson.True:
		return record.Scalar(true)
	case gjson.False:
		return record.Scalar(false)
	case gjson.Number:
		if !strings.ContainsAny(res.Raw, ".eE") {
			return record.Scalar(res.Int())
		}
		return record.Scalar(res.Num)
	default:
		return record.Scalar(res.Str)
	}
}
