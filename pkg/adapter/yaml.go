package adapter

import (
	"io"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/bisegni/lcdio/pkg/record"
)

// YAML reads a YAML stream, one record per document. A mapping
// document keeps its keys as fields in document order; a sequence
// document becomes a headerless row of its elements.
type YAML struct {
	src Source

	closer  io.Closer
	decoder *yaml.Decoder
}

// NewYAML returns an adapter for a (possibly multi-document) YAML
// stream.
func NewYAML(src Source) *YAML {
	return &YAML{src: src}
}

func (y *YAML) Open() error {
	r, closer, err := y.src.open()
	if err != nil {
		return err
	}
	y.closer = closer
	y.decoder = yaml.NewDecoder(r)
	return nil
}

func (y *YAML) Next() ([]record.Value, []string, error) {
	var node yaml.Node
	if err := y.decoder.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, io.EOF
		}
		return nil, nil, errors.Wrap(err, "decode YAML document")
	}
	doc := &node
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return []record.Value{}, nil, nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind == 0 {
		// Explicitly empty document.
		return []record.Value{}, nil, nil
	}
	switch doc.Kind {
	case yaml.MappingNode:
		fields := make([]string, 0, len(doc.Content)/2)
		vals := make([]record.Value, 0, len(doc.Content)/2)
		for i := 0; i+1 < len(doc.Content); i += 2 {
			v, err := fromYAMLNode(doc.Content[i+1])
			if err != nil {
				return nil, nil, err
			}
			fields = append(fields, doc.Content[i].Value)
			vals = append(vals, v)
		}
		return vals, fields, nil
	case yaml.SequenceNode:
		vals := make([]record.Value, len(doc.Content))
		for i, c := range doc.Content {
			v, err := fromYAMLNode(c)
			if err != nil {
				return nil, nil, err
			}
			vals[i] = v
		}
		return vals, nil, nil
	default:
		v, err := fromYAMLNode(doc)
		if err != nil {
			return nil, nil, err
		}
		return []record.Value{v}, nil, nil
	}
}

func (y *YAML) Close() error {
	if y.closer == nil {
		return nil
	}
	closer := y.closer
	y.closer = nil
	return closer.Close()
}

// fromYAMLNode converts a decoded node into a Value, preserving
// mapping key order.
func fromYAMLNode(n *yaml.Node) (record.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		pairs := make([]record.Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return record.Null(), err
			}
			pairs = append(pairs, record.Pair{Name: n.Content[i].Value, Value: v})
		}
		return record.Map(pairs...), nil
	case yaml.SequenceNode:
		elems := make([]record.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAMLNode(c)
			if err != nil {
				return record.Null(), err
			}
			elems[i] = v
		}
		return record.Seq(elems...), nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return record.Null(), errors.Newf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)
}

func yamlScalar(n *yaml.Node) (record.Value, error) {
	switch n.Tag {
	case "!!null":
		return record.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return record.Null(), errors.Wrapf(err, "YAML bool at line %d", n.Line)
		}
		return record.Scalar(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return record.Null(), errors.Wrapf(err, "YAML int at line %d", n.Line)
		}
		return record.Scalar(i), nil
	case "!!float":
		switch n.Value {
		case ".inf", "+.inf":
			return record.Scalar(math.Inf(1)), nil
		case "-.inf":
			return record.Scalar(math.Inf(-1)), nil
		case ".nan":
			return record.Scalar(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return record.Null(), errors.Wrapf(err, "YAML float at line %d", n.Line)
		}
		return record.Scalar(f), nil
	default:
		return record.Scalar(n.Value), nil
	}
}
