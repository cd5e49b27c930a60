package adapter

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bisegni/lcdio/pkg/record"
)

func drain(t *testing.T, a interface {
	Open() error
	Next() ([]record.Value, []string, error)
	Close() error
}) []*record.Record {
	t.Helper()
	require.NoError(t, a.Open())
	defer a.Close()
	var recs []*record.Record
	for {
		vals, fields, err := a.Next()
		if err == io.EOF {
			return recs
		}
		require.NoError(t, err)
		recs = append(recs, record.New(vals, fields))
	}
}

func TestCSVWithHeader(t *testing.T) {
	a := NewCSV(FileSource("testdata/names.csv"), true)
	recs := drain(t, a)
	require.Len(t, recs, 3)

	require.Equal(t, []string{"name", "age", "city"}, recs[0].Fields())
	name, err := recs[0].Get("name")
	require.NoError(t, err)
	require.Equal(t, "Bob", name.Go())

	city, err := recs[2].At(2)
	require.NoError(t, err)
	require.Equal(t, "Denver", city.Go())
}

func TestCSVWithoutHeader(t *testing.T) {
	a := NewCSV(ReaderSource(strings.NewReader("1,2,3\n4,5,6\n")), false)
	recs := drain(t, a)
	require.Len(t, recs, 2)
	require.False(t, recs[0].HasHeader())

	v, err := recs[0].At(1)
	require.NoError(t, err)
	require.Equal(t, "2", v.Go())
}

func TestCSVRaggedRowTolerated(t *testing.T) {
	a := NewCSV(ReaderSource(strings.NewReader("a,b\nx,y,z\n")), true)
	recs := drain(t, a)
	require.Len(t, recs, 1)
	require.Equal(t, 3, recs[0].Len())
	require.Len(t, recs[0].Items(), 2)

	v, err := recs[0].At(2)
	require.NoError(t, err)
	require.Equal(t, "z", v.Go())
}

func TestTSV(t *testing.T) {
	a := NewTSV(FileSource("testdata/names.tsv"), true)
	recs := drain(t, a)
	require.Len(t, recs, 2)
	age, err := recs[1].Get("age")
	require.NoError(t, err)
	require.Equal(t, "25", age.Go())
}

func TestCSVEmptyFileWithHeaderFlag(t *testing.T) {
	a := NewCSV(ReaderSource(strings.NewReader("")), true)
	recs := drain(t, a)
	require.Empty(t, recs)
}

func TestCSVMissingFile(t *testing.T) {
	a := NewCSV(FileSource("testdata/no-such-file.csv"), false)
	require.Error(t, a.Open())
}
