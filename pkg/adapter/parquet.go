package adapter

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"

	"github.com/bisegni/lcdio/pkg/record"
)

// Parquet reads a parquet file row by row, row group after row group.
// The header comes from the top-level schema fields and each row holds
// one value per leaf column, in leaf order. For the flat schemas this
// is meant for the two coincide; a nested schema flattens, leaving the
// extra leaf values nameless but still reachable by position.
// Parquet requires random access and therefore only accepts a path.
type Parquet struct {
	path string

	file   *os.File
	pf     *parquet.File
	header []string
	leaves int
	groups []parquet.RowGroup
	gi     int
	rows   parquet.Rows
	buf    []parquet.Row
}

// NewParquet returns an adapter for the parquet file at path.
func NewParquet(path string) *Parquet {
	return &Parquet{path: path}
}

func (p *Parquet) Open() error {
	f, err := os.Open(p.path)
	if err != nil {
		return errors.Wrapf(err, "open %s", p.path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "stat %s", p.path)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "read parquet footer of %s", p.path)
	}
	p.file = f
	p.pf = pf
	for _, field := range pf.Schema().Fields() {
		p.header = append(p.header, field.Name())
	}
	p.leaves = len(pf.Schema().Columns())
	p.groups = pf.RowGroups()
	p.buf = make([]parquet.Row, 1)
	return nil
}

func (p *Parquet) Next() ([]record.Value, []string, error) {
	for {
		if p.rows == nil {
			if p.gi >= len(p.groups) {
				return nil, nil, io.EOF
			}
			p.rows = p.groups[p.gi].Rows()
			p.gi++
		}
		n, err := p.rows.ReadRows(p.buf)
		if n > 0 {
			vals := p.convertRow(p.buf[0])
			if errors.Is(err, io.EOF) {
				p.closeRows()
			} else if err != nil {
				p.closeRows()
				return nil, nil, errors.Wrap(err, "read parquet row")
			}
			return vals, p.header, nil
		}
		if err == nil || errors.Is(err, io.EOF) {
			// Row group exhausted, move to the next one.
			p.closeRows()
			continue
		}
		p.closeRows()
		return nil, nil, errors.Wrap(err, "read parquet row")
	}
}

// Len reports the row count from the file metadata.
func (p *Parquet) Len() int {
	if p.pf == nil {
		return 0
	}
	return int(p.pf.NumRows())
}

func (p *Parquet) Close() error {
	p.closeRows()
	if p.file == nil {
		return nil
	}
	f := p.file
	p.file = nil
	return f.Close()
}

func (p *Parquet) closeRows() {
	if p.rows != nil {
		p.rows.Close()
		p.rows = nil
	}
}

func (p *Parquet) convertRow(row parquet.Row) []record.Value {
	vals := make([]record.Value, p.leaves)
	for _, pv := range row {
		col := pv.Column()
		if col < 0 || col >= len(vals) {
			continue
		}
		vals[col] = fromParquetValue(pv)
	}
	return vals
}

func fromParquetValue(pv parquet.Value) record.Value {
	if pv.IsNull() {
		return record.Null()
	}
	switch pv.Kind() {
	case parquet.Boolean:
		return record.Scalar(pv.Boolean())
	case parquet.Int32:
		return record.Scalar(int64(pv.Int32()))
	case parquet.Int64:
		return record.Scalar(pv.Int64())
	case parquet.Float:
		return record.Scalar(float64(pv.Float()))
	case parquet.Double:
		return record.Scalar(pv.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return record.Scalar(string(pv.ByteArray()))
	default:
		return record.Scalar(pv.String())
	}
}
