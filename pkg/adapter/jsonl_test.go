package adapter

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLObjectsPerLine(t *testing.T) {
	a := NewJSONL(FileSource("testdata/names.jsonl"))
	recs := drain(t, a)
	// The blank line in the fixture is skipped.
	require.Len(t, recs, 3)

	name, err := recs[1].Get("name")
	require.NoError(t, err)
	require.Equal(t, "Joe", name.Go())

	// The array line becomes a headerless record.
	require.False(t, recs[2].HasHeader())
	v, err := recs[2].At(2)
	require.NoError(t, err)
	require.Equal(t, int64(3), v.Go())
}

func TestJSONLInvalidLine(t *testing.T) {
	a := NewJSONL(ReaderSource(strings.NewReader("{\"ok\": 1}\nnot json at all{\n")))
	require.NoError(t, a.Open())
	defer a.Close()

	_, _, err := a.Next()
	require.NoError(t, err)

	_, _, err = a.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestJSONLLongLine(t *testing.T) {
	// A line past bufio.Scanner's default 64KiB token limit still
	// decodes into one record.
	blob := strings.Repeat("x", 200*1024)
	doc := `{"id": 1, "blob": "` + blob + `"}` + "\n"

	a := NewJSONL(ReaderSource(strings.NewReader(doc)))
	recs := drain(t, a)
	require.Len(t, recs, 1)

	v, err := recs[0].Get("blob")
	require.NoError(t, err)
	require.Equal(t, blob, v.Go())
}

func TestJSONLEmptyInput(t *testing.T) {
	a := NewJSONL(ReaderSource(strings.NewReader("\n\n")))
	require.NoError(t, a.Open())
	defer a.Close()

	_, _, err := a.Next()
	require.ErrorIs(t, err, io.EOF)
}
