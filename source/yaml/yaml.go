package yaml

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/godec/internal/engine"
)

// engine.TokenSource implementation walking a yaml.Node tree. Aliases are
// followed, scalar tags map onto the JSON data model, and duplicate mapping
// keys stream through as repeated key tokens so enforcement can see them.

type nodeSource struct {
	read    func() ([]byte, error)
	started bool
	stack   []frame
	err     error
}

// frame walks one container node. Mapping content alternates key/value, so
// even indices are keys.
type frame struct {
	node *yaml.Node
	i    int
}

// NewReader wraps an io.Reader into an engine.TokenSource for YAML.
func NewReader(r io.Reader) eng.TokenSource {
	return &nodeSource{read: func() ([]byte, error) { return io.ReadAll(r) }}
}

// NewBytes wraps a byte slice into an engine.TokenSource for YAML.
func NewBytes(b []byte) eng.TokenSource {
	return &nodeSource{read: func() ([]byte, error) { return b, nil }}
}

func (s *nodeSource) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if !s.started {
		s.started = true
		data, err := s.read()
		if err != nil {
			return s.fail(err)
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return s.fail(err)
		}
		root := &doc
		if root.Kind == yaml.DocumentNode {
			if len(root.Content) == 0 {
				s.err = io.EOF
				return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
			}
			root = root.Content[0]
		}
		if root.Kind == 0 {
			// empty input decodes as null
			s.err = io.EOF
			return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
		}
		return s.emitValue(resolve(root))
	}

	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		switch top.node.Kind {
		case yaml.MappingNode:
			if top.i >= len(top.node.Content) {
				s.stack = s.stack[:len(s.stack)-1]
				return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
			}
			if top.i%2 == 0 {
				k := resolve(top.node.Content[top.i])
				top.i++
				if k.Kind != yaml.ScalarNode {
					return s.fail(fmt.Errorf("yaml: unsupported non-scalar mapping key at line %d", k.Line))
				}
				return eng.Token{Kind: eng.KindKey, String: k.Value, Offset: -1}, nil
			}
			v := resolve(top.node.Content[top.i])
			top.i++
			return s.emitValue(v)
		case yaml.SequenceNode:
			if top.i >= len(top.node.Content) {
				s.stack = s.stack[:len(s.stack)-1]
				return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
			}
			v := resolve(top.node.Content[top.i])
			top.i++
			return s.emitValue(v)
		default:
			s.stack = s.stack[:len(s.stack)-1]
		}
	}
	return eng.Token{}, io.EOF
}

func (s *nodeSource) Location() int64 { return -1 }

func (s *nodeSource) fail(err error) (eng.Token, error) {
	s.err = err
	return eng.Token{}, err
}

func (s *nodeSource) emitValue(n *yaml.Node) (eng.Token, error) {
	switch n.Kind {
	case yaml.MappingNode:
		s.stack = append(s.stack, frame{node: n})
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
	case yaml.SequenceNode:
		s.stack = append(s.stack, frame{node: n})
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
	case yaml.ScalarNode:
		return s.emitScalar(n)
	default:
		return s.fail(fmt.Errorf("yaml: unsupported node kind %d at line %d", n.Kind, n.Line))
	}
}

// emitScalar maps a resolved scalar onto the JSON data model. Numeric scalars
// are re-rendered through their Go value so YAML-only literal forms (hex,
// octal) arrive as JSON-safe text.
func (s *nodeSource) emitScalar(n *yaml.Node) (eng.Token, error) {
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return s.fail(err)
		}
		return eng.Token{Kind: eng.KindBool, Bool: b, Offset: -1}, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10), Offset: -1}, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatUint(u, 10), Offset: -1}, nil
		}
		return s.fail(fmt.Errorf("yaml: integer %q out of range at line %d", n.Value, n.Line))
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return s.fail(err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return s.fail(fmt.Errorf("yaml: cannot represent %q as a JSON number", n.Value))
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: -1}, nil
	default:
		// !!str and remaining scalar tags (timestamp, binary) keep their text
		return eng.Token{Kind: eng.KindString, String: n.Value, Offset: -1}, nil
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
