package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

type parquetPerson struct {
	Name string  `parquet:"name"`
	Age  int64   `parquet:"age"`
	Rate float64 `parquet:"rate"`
}

func writeParquetFixture(t *testing.T, people []parquetPerson) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[parquetPerson](f)
	_, err = w.Write(people)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestParquetRows(t *testing.T) {
	path := writeParquetFixture(t, []parquetPerson{
		{Name: "Bob", Age: 30, Rate: 1.5},
		{Name: "Joe", Age: 25, Rate: 2.5},
		{Name: "Guy", Age: 41, Rate: 3.5},
	})

	a := NewParquet(path)
	recs := drain(t, a)
	require.Len(t, recs, 3)
	require.Equal(t, 3, a.Len())

	require.ElementsMatch(t, []string{"name", "age", "rate"}, recs[0].Fields())

	name, err := recs[0].Get("name")
	require.NoError(t, err)
	require.Equal(t, "Bob", name.Go())

	age, err := recs[1].Get("age")
	require.NoError(t, err)
	require.Equal(t, int64(25), age.Go())

	rate, err := recs[2].Get("rate")
	require.NoError(t, err)
	require.Equal(t, 3.5, rate.Go())
}

type parquetOrder struct {
	ID   int64 `parquet:"id"`
	Meta struct {
		City string `parquet:"city"`
		Zip  string `parquet:"zip"`
	} `parquet:"meta"`
}

func TestParquetNestedSchemaFlattens(t *testing.T) {
	// Three leaf columns behind two top-level fields: every leaf value
	// must survive, the ones past the header reachable by position.
	order := parquetOrder{ID: 7}
	order.Meta.City = "Lyon"
	order.Meta.Zip = "69000"

	path := filepath.Join(t.TempDir(), "orders.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[parquetOrder](f)
	_, err = w.Write([]parquetOrder{order})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	a := NewParquet(path)
	recs := drain(t, a)
	require.Len(t, recs, 1)
	rec := recs[0]

	require.Len(t, rec.Fields(), 2)
	require.Equal(t, 3, rec.Len())

	id, err := rec.Get("id")
	require.NoError(t, err)
	require.Equal(t, int64(7), id.Go())

	var leaves []any
	for _, v := range rec.Values() {
		leaves = append(leaves, v.Go())
	}
	require.ElementsMatch(t, []any{int64(7), "Lyon", "69000"}, leaves)
}

func TestParquetMissingFile(t *testing.T) {
	a := NewParquet(filepath.Join(t.TempDir(), "absent.parquet"))
	require.Error(t, a.Open())
}

func TestParquetGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.parquet")
	require.NoError(t, os.WriteFile(path, []byte("not a parquet file"), 0o644))
	a := NewParquet(path)
	require.Error(t, a.Open())
}
