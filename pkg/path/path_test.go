package path

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bisegni/lcdio/pkg/record"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want []record.Index
	}{
		{"", nil},
		{"name", []record.Index{record.Name("name")}},
		{"data.secrets.password", []record.Index{record.Name("data"), record.Name("secrets"), record.Name("password")}},
		{"[0]", []record.Index{record.At(0)}},
		{"[0][0][1]", []record.Index{record.At(0), record.At(0), record.At(1)}},
		{"[-1]", []record.Index{record.At(-1)}},
		{"rows[2].name", []record.Index{record.Name("rows"), record.At(2), record.Name("name")}},
		{"[1:3]", []record.Index{record.Span(1, 3)}},
		{"[2:]", []record.Index{record.From(2)}},
		{"[:2]", []record.Index{record.Until(2)}},
		{"[:]", []record.Index{record.All()}},
		{"[1:-1]", []record.Index{record.Span(1, -1)}},
		{`"field with spaces".inner`, []record.Index{record.Name("field with spaces"), record.Name("inner")}},
		{"kebab-case", []record.Index{record.Name("kebab-case")}},
		// The leading-dot style also works.
		{".name", []record.Index{record.Name("name")}},
		{".data.secrets", []record.Index{record.Name("data"), record.Name("secrets")}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{
		"[]",
		"[",
		"a..b",
		"a.[",
		"[x]",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			require.Error(t, err)
		})
	}
}

func TestParsedPathResolves(t *testing.T) {
	secrets := record.Map(record.Pair{Name: "password", Value: record.Scalar("foo")})
	data := record.Map(record.Pair{Name: "secrets", Value: secrets})
	rec := record.New([]record.Value{record.Scalar("Bob"), data}, []string{"name", "data"})

	indices, err := Parse("data.secrets.password")
	require.NoError(t, err)

	got, err := rec.Resolve(indices...)
	require.NoError(t, err)
	require.Equal(t, "foo", got.Go())
}
