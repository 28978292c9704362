// Package htmlkit builds escaped HTML fragments from text, attribute
// mappings and element trees.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/htmlkit"
//
// Usage:
//
//	attrs, _ := htmlkit.ToAttributes(htmlkit.Attrs{
//	    htmlkit.A("class", "card"),
//	    htmlkit.A("data", htmlkit.Attrs{htmlkit.A("id", 7)}),
//	    htmlkit.A("hidden", false),
//	})
//	// class="card" data-id="7"
//
//	greet, _ := htmlkit.NewBuilder(func(s *htmlkit.Scope, args htmlkit.Args) any {
//	    s.Tag("p", nil, func(s *htmlkit.Scope) any {
//	        return "Hello, " + args.At(0).(string)
//	    })
//	    return nil
//	}, htmlkit.Positional(1))
//	html, _ := greet.Call("Bob") // <p>Hello, Bob</p>
//
// The subpackages hold the implementation: pkg/render (escaping, attribute
// serialization, elements), pkg/builder (scoped builders) and pkg/document
// (YAML/JSON element trees).
package htmlkit

import (
	"github.com/vango-dev/htmlkit/pkg/builder"
	"github.com/vango-dev/htmlkit/pkg/render"
)

// =============================================================================
// Errors
// =============================================================================

// Sentinel errors, for use with errors.Is.
var (
	ErrInvalidInput          = render.ErrInvalidInput
	ErrInvalidAttributeName  = render.ErrInvalidAttributeName
	ErrInvalidAttributesType = render.ErrInvalidAttributesType
	ErrUnknownElement        = render.ErrUnknownElement
	ErrMissingArgument       = builder.ErrMissingArgument
)

// =============================================================================
// Escaping
// =============================================================================

// EscapeHTML replaces & < > " and ' with their entities.
func EscapeHTML(s string) string {
	return render.EscapeHTML(s)
}

// Escape escapes a string or []byte and rejects every other type with
// ErrInvalidInput.
func Escape(v any) (string, error) {
	return render.Escape(v)
}

// =============================================================================
// Attributes
// =============================================================================

type (
	// Symbol is an identifier-like attribute key.
	Symbol = render.Symbol

	// Key is an attribute key: a name or NoKey.
	Key = render.Key

	// Value is an attribute value: boolean, scalar or nested mapping.
	Value = render.Value

	// Attr is one attribute entry.
	Attr = render.Attr

	// Attrs is an ordered attribute mapping.
	Attrs = render.Attrs
)

// NoKey is the absent sub-key marker.
var NoKey = render.NoKey

// A returns the attribute name=v.
func A(name string, v any) Attr {
	return render.A(name, v)
}

// ToAttribute serializes a single attribute.
func ToAttribute(key, value any) (string, error) {
	return render.ToAttribute(key, value)
}

// ToAttributes serializes an attribute mapping in order.
func ToAttributes(attrs any) (string, error) {
	return render.ToAttributes(attrs)
}

// =============================================================================
// Elements
// =============================================================================

// Element renders <tag attrs>content</tag>. nil attrs means none.
func Element(tag string, attrs any, content any) (string, error) {
	return render.Element(tag, attrs, content)
}

// Void renders <tag attrs>. Content producers run, their output is dropped.
func Void(tag string, attrs any, content ...any) (string, error) {
	return render.Void(tag, attrs, content...)
}

// Tag renders a known element, void or not according to the tag table.
func Tag(name string, attrs any, content any) (string, error) {
	return render.Tag(name, attrs, content)
}

// Sanitize strips tags and entities from s.
func Sanitize(s string) string {
	return render.Sanitize(s)
}

// SanitizeOptional is Sanitize for optional text; nil stays nil.
func SanitizeOptional(s *string) *string {
	return render.SanitizeOptional(s)
}

// =============================================================================
// Builders
// =============================================================================

type (
	// Builder is a re-invocable scoped builder.
	Builder = builder.Builder

	// Scope is the buffer a builder func appends to.
	Scope = builder.Scope

	// Args are the arguments of one builder call.
	Args = builder.Args

	// Kw carries keyword arguments in a Call.
	Kw = builder.Kw

	// BuilderFunc is the body of a Builder.
	BuilderFunc = builder.Func

	// Block is the body of a nested element.
	Block = builder.Block
)

// NewBuilder creates a Builder.
func NewBuilder(fn BuilderFunc, opts ...builder.Option) (*Builder, error) {
	return builder.New(fn, opts...)
}

// Positional requires n positional arguments on every call.
func Positional(n int) builder.Option {
	return builder.Positional(n)
}

// Named requires the given keyword arguments on every call.
func Named(names ...string) builder.Option {
	return builder.Named(names...)
}

// Build runs fn once with args.
func Build(fn BuilderFunc, args ...any) (string, error) {
	return builder.Build(fn, args...)
}
