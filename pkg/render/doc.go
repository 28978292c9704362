// Package render produces escaped HTML fragments from element names and
// (possibly nested) attribute values.
//
// The package is pure and synchronous: every function builds a string in
// memory and returns it. It covers:
//
//   - HTML escaping of text and attribute values
//   - Attribute serialization, including nested attribute families
//   - Element and void element construction
//   - A static table of known HTML5 elements
//   - A mechanical tag-stripping sanitizer
//
// # Escaping
//
// EscapeHTML replaces & < > " and ' with named entities and leaves every
// other byte alone:
//
//	render.EscapeHTML(`<"tag"`) // &lt;&quot;tag&quot;
//
// Escaping is not idempotent; an ampersand inside an entity is escaped
// again.
//
// # Attributes
//
// Attribute values are a tagged union (see Value): booleans, scalars and
// nested mappings. Nested mappings are flattened by joining key paths with
// a dash, preserving the insertion order of every level:
//
//	render.ToAttributes(render.Attrs{
//	    render.A("href", "#top"),
//	    render.A("data", render.Attrs{
//	        render.A("foo", "bar"),
//	        render.A("bar", render.Attrs{render.A("baz", "foo")}),
//	    }),
//	})
//	// href="#top" data-foo="bar" data-bar-baz="foo"
//
// true renders the bare attribute name and false drops the attribute.
//
// # Elements
//
//	render.Element("a", render.Attrs{render.A("href", "#nerds")}, "Nerds!")
//	// <a href="#nerds">Nerds!</a>
//
//	render.Void("br", render.Attrs{render.A("class", "x")})
//	// <br class="x">
//
// Element content is inserted verbatim. Use EscapeHTML, or the builder
// package's Text, for untrusted text.
//
// # Errors
//
// Misuse is reported through ErrInvalidInput, ErrInvalidAttributeName,
// ErrInvalidAttributesType and ErrUnknownElement, matched with errors.Is.
// An error anywhere in a nested attribute value aborts the whole call; no
// partial attribute string is ever returned.
package render
