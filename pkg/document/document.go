// Package document renders element trees described in YAML or JSON.
//
// A document is a sequence of nodes (a single mapping is also accepted).
// Each node has one of:
//
//	tag:      element name, with optional attrs, text and children
//	text:     escaped text
//	raw:      trusted markup, inserted verbatim
//
// Attribute mappings keep their source order and key types, so
// "data: {~: true, id: 7}" renders as `data data-id="7"`.
package document

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/charset"
	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/yamlalias"
	"github.com/vango-dev/htmlkit/pkg/builder"
	"github.com/vango-dev/htmlkit/pkg/render"
)

// Node is one entry of a document.
type Node struct {
	Tag      string
	Attrs    *yaml.Node
	Text     *string
	Raw      *string
	Children []*Node

	// Line and Column locate the node in its source.
	Line, Column int
}

// Document is a parsed element tree.
type Document struct {
	Nodes []*Node

	// Source is the file the document was loaded from, if any.
	Source string
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.New("H010").Wrap(err)
	}
	if len(root.Content) == 0 {
		return &Document{}, nil
	}
	return ParseNode(root.Content[0])
}

// ParseNode builds a document from an already decoded YAML node: a
// sequence of nodes or a single node mapping. Aliases may expand to at most
// yamlalias.Limit nodes; larger expansions fail with H013.
func ParseNode(top *yaml.Node) (*Document, error) {
	doc := &Document{}
	for top != nil && top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return doc, nil
		}
		top = top.Content[0]
	}
	if top == nil {
		return doc, nil
	}
	if err := yamlalias.Check(top); err != nil {
		return nil, err
	}
	switch top.Kind {
	case yaml.SequenceNode:
		nodes, err := parseNodes(top.Content)
		if err != nil {
			return nil, err
		}
		doc.Nodes = nodes
	case yaml.MappingNode:
		n, err := parseNode(top)
		if err != nil {
			return nil, err
		}
		doc.Nodes = []*Node{n}
	default:
		return nil, invalidNode(top, "document must be a list of nodes or a single node")
	}
	return doc, nil
}

// ParseWithCharset converts data from the named charset to UTF-8 and
// parses it. An empty label uses the charset package default.
func ParseWithCharset(data []byte, label string) (*Document, error) {
	text, err := charset.ToUTF8(data, label)
	if err != nil {
		return nil, err
	}
	return Parse([]byte(text))
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	return LoadWithCharset(path, "")
}

// LoadWithCharset is Load with an explicit input charset.
func LoadWithCharset(path, label string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("H012").WithDetail(path).Wrap(err)
		}
		return nil, errors.New("H010").WithDetail(path).Wrap(err)
	}
	doc, err := ParseWithCharset(data, label)
	if err != nil {
		if he, ok := errors.As(err); ok && he.Location != nil {
			he.WithLocation(path, he.Location.Line, he.Location.Column)
		}
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

func parseNodes(items []*yaml.Node) ([]*Node, error) {
	nodes := make([]*Node, 0, len(items))
	for _, item := range items {
		n, err := parseNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseNode(y *yaml.Node) (*Node, error) {
	if y.Kind == yaml.AliasNode {
		y = y.Alias
	}
	if y.Kind != yaml.MappingNode {
		return nil, invalidNode(y, "node must be a mapping")
	}
	n := &Node{Line: y.Line, Column: y.Column}
	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i], y.Content[i+1]
		switch key.Value {
		case "tag":
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				return nil, invalidNode(val, "tag must be a non-empty string")
			}
			n.Tag = val.Value
		case "attrs":
			if val.Kind != yaml.MappingNode && val.ShortTag() != "!!null" {
				return nil, invalidNode(val, "attrs must be a mapping")
			}
			if val.Kind == yaml.MappingNode {
				n.Attrs = val
			}
		case "text", "raw":
			if val.Kind != yaml.ScalarNode {
				return nil, invalidNode(val, key.Value+" must be a scalar")
			}
			s := val.Value
			if key.Value == "text" {
				n.Text = &s
			} else {
				n.Raw = &s
			}
		case "children":
			if val.Kind != yaml.SequenceNode {
				return nil, invalidNode(val, "children must be a list")
			}
			children, err := parseNodes(val.Content)
			if err != nil {
				return nil, err
			}
			n.Children = children
		default:
			return nil, invalidNode(key, "unknown field "+key.Value)
		}
	}
	if n.Tag == "" && n.Text == nil && n.Raw == nil {
		return nil, invalidNode(y, "node needs tag, text or raw")
	}
	if n.Tag == "" && (n.Attrs != nil || len(n.Children) > 0) {
		return nil, invalidNode(y, "attrs and children need a tag")
	}
	return n, nil
}

func invalidNode(y *yaml.Node, detail string) error {
	return errors.New("H011").
		WithDetail(detail).
		WithLocation("", y.Line, y.Column)
}

// Builder returns a builder that renders the document. The builder takes
// no arguments and may be called repeatedly.
func (d *Document) Builder() *builder.Builder {
	b, _ := builder.New(func(s *builder.Scope, _ builder.Args) any {
		emit(s, d.Nodes)
		return nil
	})
	return b
}

// Render renders the document to HTML.
func (d *Document) Render() (string, error) {
	return d.Builder().Call()
}

func emit(s *builder.Scope, nodes []*Node) {
	for _, n := range nodes {
		if n.Tag == "" {
			if n.Text != nil {
				s.Text(*n.Text)
			}
			if n.Raw != nil {
				s.Raw(*n.Raw)
			}
			continue
		}
		var attrs any
		if n.Attrs != nil {
			attrs = n.Attrs
		}
		body := func(s *builder.Scope) any {
			if n.Text != nil {
				s.Text(*n.Text)
			}
			if n.Raw != nil {
				s.Raw(*n.Raw)
			}
			emit(s, n.Children)
			return nil
		}
		if _, known := render.Lookup(n.Tag); known {
			s.Tag(n.Tag, attrs, body)
		} else {
			s.Element(n.Tag, attrs, body)
		}
	}
}
