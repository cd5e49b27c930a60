package adapter

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSQLiteFixture(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteFirstTable(t *testing.T) {
	path := writeSQLiteFixture(t,
		`CREATE TABLE people (name TEXT, age INTEGER, rate REAL, photo BLOB)`,
		`INSERT INTO people VALUES ('Bob', 30, 1.5, x'00ff'), ('Joe', 25, 2.5, NULL)`,
	)

	a := NewSQLite(path, "")
	recs := drain(t, a)
	require.Len(t, recs, 2)
	require.Equal(t, 2, a.Len())

	require.Equal(t, []string{"name", "age", "rate", "photo"}, recs[0].Fields())

	name, err := recs[0].Get("name")
	require.NoError(t, err)
	require.Equal(t, "Bob", name.Go())

	age, err := recs[0].Get("age")
	require.NoError(t, err)
	require.Equal(t, int64(30), age.Go())

	rate, err := recs[1].Get("rate")
	require.NoError(t, err)
	require.Equal(t, 2.5, rate.Go())

	photo, err := recs[1].Get("photo")
	require.NoError(t, err)
	require.True(t, photo.IsNull())
}

func TestSQLiteExplicitTable(t *testing.T) {
	path := writeSQLiteFixture(t,
		`CREATE TABLE first (x INTEGER)`,
		`CREATE TABLE second (y TEXT)`,
		`INSERT INTO second VALUES ('hello')`,
	)

	a := NewSQLite(path, "second")
	recs := drain(t, a)
	require.Len(t, recs, 1)

	v, err := recs[0].Get("y")
	require.NoError(t, err)
	require.Equal(t, "hello", v.Go())
}

func TestSQLiteNoTable(t *testing.T) {
	path := writeSQLiteFixture(t, `PRAGMA user_version = 1`)

	a := NewSQLite(path, "")
	err := a.Open()
	defer a.Close()
	require.ErrorIs(t, err, ErrNoTable)
}

func TestSQLiteMissingFile(t *testing.T) {
	a := NewSQLite(filepath.Join(t.TempDir(), "absent.db"), "")
	require.Error(t, a.Open())
}
