package adapter

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/bisegni/lcdio/pkg/record"
)

// maxLineBytes caps a single JSON line at 64MiB.
const maxLineBytes = 64 * 1024 * 1024

// JSONL reads JSON-lines text: every non-blank line is one JSON
// document and becomes one record. Lines are decoded lazily, one per
// Next, so the adapter never holds the whole file.
type JSONL struct {
	src Source

	closer  io.Closer
	scanner *bufio.Scanner
	line    int
}

// NewJSONL returns an adapter for JSON-lines (also NDJSON) text.
func NewJSONL(src Source) *JSONL {
	return &JSONL{src: src}
}

func (j *JSONL) Open() error {
	r, closer, err := j.src.open()
	if err != nil {
		return err
	}
	j.closer = closer
	j.scanner = bufio.NewScanner(r)
	// The default 64KiB token limit is too small for lines carrying
	// embedded documents or blobs.
	j.scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return nil
}

func (j *JSONL) Next() ([]record.Value, []string, error) {
	for j.scanner.Scan() {
		j.line++
		line := strings.TrimSpace(j.scanner.Text())
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			return nil, nil, errors.Newf("invalid JSON on line %d", j.line)
		}
		row := shapeJSONRow(gjson.Parse(line))
		return row.vals, row.fields, nil
	}
	if err := j.scanner.Err(); err != nil {
		return nil, nil, err
	}
	return nil, nil, io.EOF
}

func (j *JSONL) Close() error {
	if j.closer == nil {
		return nil
	}
	closer := j.closer
	j.closer = nil
	return closer.Close()
}
