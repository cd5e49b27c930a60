package adapter

import (
	"encoding/csv"
	"io"

	"github.com/bisegni/lcdio/pkg/record"
)

// CSV reads delimited text, one record per line. With hasHeader the
// first line names the fields of every following row. Rows are not
// width-checked: a line with more values than the header is passed
// through and the extra values stay reachable by position.
type CSV struct {
	src       Source
	delimiter rune
	hasHeader bool

	closer io.Closer
	reader *csv.Reader
	header []string
}

// NewCSV returns an adapter for comma-delimited text.
func NewCSV(src Source, hasHeader bool) *CSV {
	return &CSV{src: src, delimiter: ',', hasHeader: hasHeader}
}

// NewTSV returns an adapter for tab-delimited text.
func NewTSV(src Source, hasHeader bool) *CSV {
	return &CSV{src: src, delimiter: '\t', hasHeader: hasHeader}
}

func (c *CSV) Open() error {
	r, closer, err := c.src.open()
	if err != nil {
		return err
	}
	c.closer = closer
	c.reader = csv.NewReader(r)
	c.reader.Comma = c.delimiter
	// Width tolerance is the record model's job, not the decoder's.
	c.reader.FieldsPerRecord = -1
	if c.hasHeader {
		header, err := c.reader.Read()
		if err == io.EOF {
			// Empty file: no header, no rows.
			return nil
		}
		if err != nil {
			return err
		}
		c.header = header
	}
	return nil
}

func (c *CSV) Next() ([]record.Value, []string, error) {
	row, err := c.reader.Read()
	if err != nil {
		return nil, nil, err
	}
	vals := make([]record.Value, len(row))
	for i, cell := range row {
		vals[i] = record.Scalar(cell)
	}
	return vals, c.header, nil
}

func (c *CSV) Close() error {
	if c.closer == nil {
		return nil
	}
	closer := c.closer
	c.closer = nil
	return closer.Close()
}
