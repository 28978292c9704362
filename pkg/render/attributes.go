package render

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/yamlalias"
)

// Symbol is an identifier-like attribute name or value. It renders exactly
// like a string but is kept distinct so callers can tell names from text.
type Symbol string

// Key is an attribute name inside a nested mapping. The zero value is
// NoKey, the absent marker, which is distinct from Name("").
type Key struct {
	name    string
	present bool
}

// NoKey marks an unset sub-key. Flattening a nested entry keyed by NoKey
// reuses the parent name unchanged.
var NoKey = Key{}

// Name returns a present key.
func Name(s string) Key { return Key{name: s, present: true} }

// Absent reports whether k is NoKey.
func (k Key) Absent() bool { return !k.present }

func (k Key) String() string { return k.name }

// KeyOf converts a dynamic key. Strings, Symbols and Keys are names; nil is
// NoKey. Anything else fails with ErrInvalidAttributeName.
func KeyOf(v any) (Key, error) {
	switch t := v.(type) {
	case nil:
		return NoKey, nil
	case Key:
		return t, nil
	case string:
		return Name(t), nil
	case Symbol:
		return Name(string(t)), nil
	default:
		return NoKey, invalidAttributeName(v)
	}
}

// Kind discriminates Value.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindScalar
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	}
	return "invalid"
}

// Value is an attribute value: a boolean, a scalar already converted to its
// text form, or an ordered nested mapping.
//
// The zero Value is the same as ValueOf(nil) and renders the bare name.
// A Value built by ValueOf may carry a conversion error (an unusable key
// deep inside a map). The error is reported when the value is serialized.
type Value struct {
	kind  Kind
	on    bool
	text  string
	attrs Attrs
	err   error
}

// Bool returns a boolean value. true renders the bare name, false drops the
// attribute.
func Bool(b bool) Value { return Value{kind: KindBool, on: b} }

// Text returns a scalar value with the given text.
func Text(s string) Value { return Value{kind: KindScalar, text: s} }

// Scalar returns a scalar holding the natural text form of v.
func Scalar(v any) Value { return Text(stringify(v)) }

// Nested returns a nested mapping value.
func Nested(attrs Attrs) Value { return Value{kind: KindMap, attrs: attrs} }

// Kind returns the value's kind. The zero Value reports KindBool.
func (v Value) Kind() Kind {
	if v.kind == 0 {
		return KindBool
	}
	return v.kind
}

// Err returns the conversion error carried by v, if any.
func (v Value) Err() error { return v.err }

// ValueOf converts an arbitrary Go value.
//
// nil renders as the bare attribute name. Go maps carry no order, so their
// entries are sorted by key with the absent key first; use Attrs or a
// *yaml.Node when order matters. Slices, arrays and structs render as their
// JSON text.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Bool(true)
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return Text(t)
	case Symbol:
		return Text(string(t))
	case []byte:
		return Text(ToUTF8(t))
	case Attrs:
		return Nested(t)
	case []Attr:
		return Nested(Attrs(t))
	case *yaml.Node:
		if err := yamlalias.Check(t); err != nil {
			return Value{kind: KindMap, err: err}
		}
		return valueOfNode(t)
	case fmt.Stringer:
		return Text(t.String())
	case error:
		return Text(t.Error())
	}
	if reflect.TypeOf(v).Kind() == reflect.Map {
		attrs, err := attrsOfMap(reflect.ValueOf(v), false)
		if err != nil {
			return Value{kind: KindMap, err: err}
		}
		return Nested(attrs)
	}
	return Scalar(v)
}

// stringify returns the text form of a scalar.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case Symbol:
		return string(t)
	case []byte:
		return ToUTF8(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return formatFloat(float64(t), 32)
	case float64:
		return formatFloat(t, 64)
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Struct, reflect.Map:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// formatFloat prints the shortest decimal that round-trips, switching to
// exponent form outside [1e-6, 1e21) the way encoding/json does.
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && !math.IsInf(abs, 0) {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// e-09 to e-9
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

// Attr is a single attribute entry. A zero Value renders the bare name.
type Attr struct {
	Key   Key
	Value Value
}

// A builds an Attr from a string name and any value accepted by ValueOf.
func A(name string, v any) Attr {
	return Attr{Key: Name(name), Value: ValueOf(v)}
}

// Attrs is an ordered attribute mapping. Entries render in slice order;
// duplicate keys are not merged.
type Attrs []Attr

// Add appends an entry and returns the extended mapping.
func (a Attrs) Add(name string, v any) Attrs {
	return append(a, A(name, v))
}

// Render serializes the mapping; see ToAttributes.
func (a Attrs) Render() (string, error) {
	buf, err := AppendAttributes(nil, a)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// attrsOfMap converts a Go map. At the top level every key must be a name;
// nested maps also accept nil keys as NoKey.
func attrsOfMap(m reflect.Value, top bool) (Attrs, error) {
	attrs := make(Attrs, 0, m.Len())
	iter := m.MapRange()
	for iter.Next() {
		raw := iter.Key().Interface()
		k, err := KeyOf(raw)
		if err != nil {
			return nil, err
		}
		if top && k.Absent() {
			return nil, invalidAttributeName(raw)
		}
		attrs = append(attrs, Attr{Key: k, Value: ValueOf(iter.Value().Interface())})
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		a, b := attrs[i].Key, attrs[j].Key
		if a.present != b.present {
			return !a.present
		}
		return a.name < b.name
	})
	return attrs, nil
}

// resolve follows document and alias nodes to the node they stand for.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func valueOfNode(n *yaml.Node) Value {
	n = resolve(n)
	if n == nil {
		return Bool(true)
	}
	switch n.Kind {
	case yaml.MappingNode:
		attrs, err := attrsOfNode(n, false)
		if err != nil {
			return Value{kind: KindMap, err: err}
		}
		return Nested(attrs)
	case yaml.SequenceNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return Value{kind: KindScalar, err: invalidInput(n)}
		}
		return Scalar(v)
	}
	switch n.ShortTag() {
	case "!!null":
		return Bool(true)
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return Bool(b)
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Scalar(i)
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Scalar(u)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return Scalar(f)
		}
	}
	return Text(n.Value)
}

// attrsOfNode converts a YAML mapping node, keeping key order. Null keys are
// NoKey; keys that are not strings or null fail.
func attrsOfNode(n *yaml.Node, top bool) (Attrs, error) {
	attrs := make(Attrs, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn := resolve(n.Content[i])
		var k Key
		switch {
		case kn == nil:
			k = NoKey
		case kn.Kind == yaml.ScalarNode && kn.ShortTag() == "!!str":
			k = Name(kn.Value)
		case kn.Kind == yaml.ScalarNode && kn.ShortTag() == "!!null":
			k = NoKey
		default:
			return nil, invalidAttributeName(nodeKey(kn))
		}
		if top && k.Absent() {
			return nil, invalidAttributeName(nil)
		}
		attrs = append(attrs, Attr{Key: k, Value: valueOfNode(n.Content[i+1])})
	}
	return attrs, nil
}

// nodeKey decodes a rejected key so the error names its Go type.
func nodeKey(n *yaml.Node) any {
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	return v
}
