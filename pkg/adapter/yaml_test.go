package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bisegni/lcdio/pkg/record"
)

func TestYAMLMultiDocument(t *testing.T) {
	a := NewYAML(FileSource("testdata/names.yaml"))
	recs := drain(t, a)
	require.Len(t, recs, 2)

	// Key order is document order: name is field 0.
	require.Equal(t, "name", recs[0].Fields()[0])
	name, err := recs[0].At(0)
	require.NoError(t, err)
	require.Equal(t, "Bob", name.Go())

	pw, err := recs[0].Resolve(record.Name("secrets"), record.Name("password"))
	require.NoError(t, err)
	require.Equal(t, "foo", pw.Go())

	age, err := recs[1].Get("age")
	require.NoError(t, err)
	require.Equal(t, int64(25), age.Go())
}

func TestYAMLSequenceDocument(t *testing.T) {
	a := NewYAML(ReaderSource(strings.NewReader("- one\n- two\n")))
	recs := drain(t, a)
	require.Len(t, recs, 1)
	require.False(t, recs[0].HasHeader())

	v, err := recs[0].At(1)
	require.NoError(t, err)
	require.Equal(t, "two", v.Go())
}

func TestYAMLNestedSequenceOfMappings(t *testing.T) {
	src := "people:\n  - name: Bob\n    age: 30\n  - name: Joe\n    age: 25\n"
	a := NewYAML(ReaderSource(strings.NewReader(src)))
	recs := drain(t, a)
	require.Len(t, recs, 1)

	v, err := recs[0].Resolve(record.Name("people"), record.At(1), record.Name("name"))
	require.NoError(t, err)
	require.Equal(t, "Joe", v.Go())
}

func TestYAMLScalarTypes(t *testing.T) {
	src := "s: hello\ni: 42\nf: 4.5\nb: true\nn: null\n"
	a := NewYAML(ReaderSource(strings.NewReader(src)))
	recs := drain(t, a)
	rec := recs[0]

	tests := []struct {
		field string
		want  any
	}{
		{"s", "hello"},
		{"i", int64(42)},
		{"f", 4.5},
		{"b", true},
		{"n", nil},
	}
	for _, tt := range tests {
		v, err := rec.Get(tt.field)
		require.NoError(t, err)
		require.Equal(t, tt.want, v.Go(), "field %s", tt.field)
	}
}

func TestYAMLAnchorsAndAliases(t *testing.T) {
	src := "base: &b\n  kind: default\nderived: *b\n"
	a := NewYAML(ReaderSource(strings.NewReader(src)))
	recs := drain(t, a)

	v, err := recs[0].Resolve(record.Name("derived"), record.Name("kind"))
	require.NoError(t, err)
	require.Equal(t, "default", v.Go())
}

func TestYAMLInvalidDocument(t *testing.T) {
	a := NewYAML(ReaderSource(strings.NewReader("a: [unclosed\n")))
	require.NoError(t, a.Open())
	defer a.Close()
	_, _, err := a.Next()
	require.Error(t, err)
}
