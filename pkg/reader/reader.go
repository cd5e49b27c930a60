// Package reader is the façade over the format adapters: it picks an
// adapter from an explicit mode or the file extension and returns a
// started record stream.
package reader

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/bisegni/lcdio/pkg/adapter"
	"github.com/bisegni/lcdio/pkg/stream"
)

// Mode selects a format adapter explicitly.
type Mode string

const (
	ModeCSV     Mode = "csv"
	ModeTSV     Mode = "tsv"
	ModeJSON    Mode = "json"
	ModeJSONL   Mode = "jsonl"
	ModeYAML    Mode = "yaml"
	ModeTOML    Mode = "toml"
	ModeParquet Mode = "parquet"
	ModeSQLite  Mode = "sqlite"
)

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{ModeCSV, ModeTSV, ModeJSON, ModeJSONL, ModeYAML, ModeTOML, ModeParquet, ModeSQLite}
}

// extModes is the fixed extension-to-mode mapping used when no
// explicit mode is given.
var extModes = map[string]Mode{
	".csv":     ModeCSV,
	".tsv":     ModeTSV,
	".json":    ModeJSON,
	".jsonl":   ModeJSONL,
	".ndjson":  ModeJSONL,
	".yaml":    ModeYAML,
	".toml":    ModeTOML,
	".parquet": ModeParquet,
	".db":      ModeSQLite,
}

// Usage errors for invalid input combinations. None of these are
// retried internally.
var (
	// ErrUnknownMode reports a mode outside Modes().
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownExtension reports a path whose extension maps to no
	// supported format.
	ErrUnknownExtension = errors.New("unable to guess the file type")

	// ErrModeRequired reports a non-path source with no explicit
	// mode to disambiguate it.
	ErrModeRequired = errors.New("a reader source requires an explicit mode")

	// ErrPathRequired reports a mode that needs random access to a
	// file (parquet, sqlite) given a plain reader.
	ErrPathRequired = errors.New("mode requires a file path")
)

// Option configures Open.
type Option func(*options)

type options struct {
	mode      Mode
	hasHeader bool
	table     string
	logger    *zap.Logger
}

// WithMode selects the format explicitly instead of inferring it from
// the file extension.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithHeader declares that the first row of a delimited-text source
// names the fields.
func WithHeader(has bool) Option {
	return func(o *options) { o.hasHeader = has }
}

// WithTable selects the table of a SQLite source. Defaults to the
// first table in the database.
func WithTable(name string) Option {
	return func(o *options) { o.table = name }
}

// WithLogger attaches a logger; by default nothing is logged.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open builds a record stream over the given source, which is either a
// file path or an already-open io.Reader. The stream comes back
// started, header consumed, positioned before the first data row; it
// is single-pass, so a second pass means calling Open again.
func Open(source any, opts ...Option) (*stream.Stream, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var a stream.Adapter
	switch src := source.(type) {
	case string:
		mode := o.mode
		if mode == "" {
			var err error
			if mode, err = inferMode(src); err != nil {
				return nil, err
			}
			o.logger.Debug("inferred mode from extension", zap.String("path", src), zap.String("mode", string(mode)))
		}
		var err error
		if a, err = buildAdapter(mode, adapter.FileSource(src), src, o); err != nil {
			return nil, err
		}
	case io.Reader:
		if o.mode == "" {
			return nil, errors.WithStack(ErrModeRequired)
		}
		if o.mode == ModeParquet || o.mode == ModeSQLite {
			return nil, errors.Wrapf(ErrPathRequired, "mode %q", string(o.mode))
		}
		var err error
		if a, err = buildAdapter(o.mode, adapter.ReaderSource(src), "", o); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf("unsupported source type %T; pass a path or an io.Reader", source)
	}

	s := stream.New(a)
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

func inferMode(path string) (Mode, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mode, ok := extModes[ext]
	if !ok {
		return "", errors.Wrapf(ErrUnknownExtension, "%s", path)
	}
	return mode, nil
}

func buildAdapter(mode Mode, src adapter.Source, path string, o options) (stream.Adapter, error) {
	switch mode {
	case ModeCSV:
		return adapter.NewCSV(src, o.hasHeader), nil
	case ModeTSV:
		return adapter.NewTSV(src, o.hasHeader), nil
	case ModeJSON:
		return adapter.NewJSON(src), nil
	case ModeJSONL:
		return adapter.NewJSONL(src), nil
	case ModeYAML:
		return adapter.NewYAML(src), nil
	case ModeTOML:
		return adapter.NewTOML(src), nil
	case ModeParquet:
		return adapter.NewParquet(path), nil
	case ModeSQLite:
		return adapter.NewSQLite(path, o.table), nil
	}
	return nil, errors.Wrapf(ErrUnknownMode, "%q", string(mode))
}
