package adapter

import (
	"database/sql"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bisegni/lcdio/pkg/record"
)

// ErrNoTable reports a SQLite database that contains no table to read.
var ErrNoTable = errors.New("database contains no table")

// SQLite reads one table of a SQLite database file, one record per
// row, fields named after the columns. With no explicit table the
// first table in sqlite_master is used, matching the "just show me the
// data" spirit of the other adapters.
type SQLite struct {
	path  string
	table string

	db    *sql.DB
	rows  *sql.Rows
	cols  []string
	count int
}

// NewSQLite returns an adapter for the database at path. An empty
// table name selects the first table in the database.
func NewSQLite(path, table string) *SQLite {
	return &SQLite{path: path, table: table}
}

func (s *SQLite) Open() error {
	// The driver would happily create a missing file; reading demands
	// it already exists.
	if _, err := os.Stat(s.path); err != nil {
		return errors.Wrapf(err, "database %s", s.path)
	}
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return errors.Wrapf(err, "open database %s", s.path)
	}
	s.db = db

	table := s.table
	if table == "" {
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY rowid LIMIT 1").Scan(&table)
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(ErrNoTable, "database %s", s.path)
		}
		if err != nil {
			return errors.Wrapf(err, "list tables of %s", s.path)
		}
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(table)).Scan(&s.count); err != nil {
		return errors.Wrapf(err, "count rows of %s", table)
	}
	rows, err := db.Query("SELECT * FROM " + quoteIdent(table))
	if err != nil {
		return errors.Wrapf(err, "select from %s", table)
	}
	s.rows = rows
	s.cols, err = rows.Columns()
	if err != nil {
		return errors.Wrapf(err, "columns of %s", table)
	}
	return nil
}

func (s *SQLite) Next() ([]record.Value, []string, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, io.EOF
	}
	raw := make([]any, len(s.cols))
	ptrs := make([]any, len(s.cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, nil, errors.Wrap(err, "scan row")
	}
	vals := make([]record.Value, len(raw))
	for i, v := range raw {
		vals[i] = fromSQLValue(v)
	}
	return vals, s.cols, nil
}

// Len reports the table's row count, taken with COUNT(*) at Open.
func (s *SQLite) Len() int {
	return s.count
}

func (s *SQLite) Close() error {
	var err error
	if s.rows != nil {
		err = s.rows.Close()
		s.rows = nil
	}
	if s.db != nil {
		if cerr := s.db.Close(); err == nil {
			err = cerr
		}
		s.db = nil
	}
	return err
}

func fromSQLValue(v any) record.Value {
	switch t := v.(type) {
	case nil:
		return record.Null()
	case []byte:
		return record.Scalar(string(t))
	case time.Time:
		return record.Scalar(t.Format(time.RFC3339))
	default:
		return record.Scalar(v)
	}
}

// quoteIdent quotes a SQL identifier, since table names come from
// sqlite_master or from the caller.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
