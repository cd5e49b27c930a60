// Package path parses textual compound-path expressions into the
// structured indices of pkg/record. The syntax follows what you would
// write in a dynamic language: names joined with dots, positions and
// ranges in brackets.
//
//	name
//	data.secrets.password
//	[0][0][1]
//	rows[2:].name
//	"field with spaces".inner
package path

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"

	"github.com/bisegni/lcdio/pkg/record"
)

type astPath struct {
	Head *astField  `parser:"@@?"`
	Tail []*astStep `parser:"@@*"`
}

type astField struct {
	Ident  *string `parser:"@Ident"`
	Quoted *string `parser:"| @String"`
}

type astStep struct {
	Field   *astField   `parser:"'.' @@"`
	Bracket *astBracket `parser:"| @@"`
}

type astBracket struct {
	Start *int `parser:"'[' @Int?"`
	Colon bool `parser:"( @':'"`
	Stop  *int `parser:"@Int? )? ']'"`
}

var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_\-]*`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Punct", Pattern: `[\[\]:.]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var pathParser = participle.MustBuild[astPath](
	participle.Lexer(pathLexer),
	participle.Unquote("String"),
)

// Parse turns a path expression into the index sequence it denotes.
// An empty expression is the empty path (the whole record).
func Parse(expr string) ([]record.Index, error) {
	if expr == "" {
		return nil, nil
	}
	ast, err := pathParser.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse path %q", expr)
	}
	var indices []record.Index
	if ast.Head != nil {
		indices = append(indices, ast.Head.index())
	}
	for _, step := range ast.Tail {
		switch {
		case step.Field != nil:
			indices = append(indices, step.Field.index())
		case step.Bracket != nil:
			idx, err := step.Bracket.index()
			if err != nil {
				return nil, errors.Wrapf(err, "parse path %q", expr)
			}
			indices = append(indices, idx)
		}
	}
	return indices, nil
}

func (f *astField) index() record.Index {
	if f.Quoted != nil {
		return record.Name(*f.Quoted)
	}
	return record.Name(*f.Ident)
}

func (b *astBracket) index() (record.Index, error) {
	if !b.Colon {
		if b.Start == nil {
			return nil, errors.New("empty index brackets")
		}
		return record.At(*b.Start), nil
	}
	switch {
	case b.Start != nil && b.Stop != nil:
		return record.Span(*b.Start, *b.Stop), nil
	case b.Start != nil:
		return record.From(*b.Start), nil
	case b.Stop != nil:
		return record.Until(*b.Stop), nil
	default:
		return record.All(), nil
	}
}
