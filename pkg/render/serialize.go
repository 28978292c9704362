package render

import (
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/yamlalias"
)

// ToAttribute serializes a single attribute.
//
// key must be a string or Symbol. true renders the bare key, false renders
// nothing, nested mappings flatten to space-separated "key-sub" entries and
// any other value renders as key="escaped text". The key is never escaped.
func ToAttribute(key any, value any) (string, error) {
	k, err := KeyOf(key)
	if err != nil {
		return "", err
	}
	if k.Absent() {
		return "", invalidAttributeName(key)
	}
	buf, err := appendAttribute(nil, k.name, ValueOf(value))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ToAttributes serializes an attribute mapping into a space-separated
// string, in mapping order.
//
// Accepted mappings are Attrs, []Attr, Go maps with string-like keys and
// YAML mapping nodes. nil and any other type fail with
// ErrInvalidAttributesType. An empty mapping yields "".
func ToAttributes(attrs any) (string, error) {
	a, err := attrsOf(attrs)
	if err != nil {
		return "", err
	}
	return a.Render()
}

// attrsOf converts a dynamic top-level attribute mapping.
func attrsOf(v any) (Attrs, error) {
	switch t := v.(type) {
	case nil:
		return nil, invalidAttributesType(nil)
	case Attrs:
		return t, nil
	case []Attr:
		return Attrs(t), nil
	case *yaml.Node:
		n := resolve(t)
		if n == nil || n.Kind != yaml.MappingNode {
			return nil, invalidAttributesType(v)
		}
		if err := yamlalias.Check(n); err != nil {
			return nil, err
		}
		return attrsOfNode(n, true)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, invalidAttributesType(v)
	}
	return attrsOfMap(rv, true)
}

// AppendAttributes appends the serialized form of attrs to dst. On error dst
// is returned unchanged.
func AppendAttributes(dst []byte, attrs Attrs) ([]byte, error) {
	start := len(dst)
	for _, a := range attrs {
		if a.Key.Absent() {
			return dst[:start], invalidAttributeName(nil)
		}
		var err error
		if dst, err = appendEntry(dst, start, a.Key.name, a.Value); err != nil {
			return dst[:start], err
		}
	}
	return dst, nil
}

// appendEntry appends one attribute, preceded by a space unless it is the
// first non-empty entry since start. Empty entries leave dst untouched.
func appendEntry(dst []byte, start int, name string, v Value) ([]byte, error) {
	mark := len(dst)
	if mark > start {
		dst = append(dst, ' ')
	}
	body := len(dst)
	dst, err := appendAttribute(dst, name, v)
	if err != nil {
		return dst[:mark], err
	}
	if len(dst) == body {
		return dst[:mark], nil
	}
	return dst, nil
}

func appendAttribute(dst []byte, name string, v Value) ([]byte, error) {
	if v.err != nil {
		return dst, v.err
	}
	if v.kind == 0 {
		v = Bool(true)
	}
	switch v.kind {
	case KindBool:
		if v.on {
			dst = append(dst, name...)
		}
	case KindScalar:
		dst = append(dst, name...)
		dst = append(dst, '=', '"')
		dst = AppendEscaped(dst, v.text)
		dst = append(dst, '"')
	case KindMap:
		start := len(dst)
		for _, a := range v.attrs {
			var err error
			if dst, err = appendEntry(dst, start, joinKey(name, a.Key), a.Value); err != nil {
				return dst[:start], err
			}
		}
	}
	return dst, nil
}

// joinKey computes the flattened name of a nested entry. The dash only
// separates two non-empty segments.
func joinKey(parent string, k Key) string {
	switch {
	case k.Absent() || k.name == "":
		return parent
	case parent == "":
		return k.name
	default:
		return parent + "-" + k.name
	}
}
