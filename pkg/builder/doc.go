// Package builder assembles HTML fragments from nested callbacks.
//
// A Builder wraps a Func. Each Call runs the Func against a fresh Scope;
// the Func appends elements to the scope, and nested blocks run in child
// scopes whose output becomes the enclosing element's content:
//
//	card, _ := builder.New(func(s *builder.Scope, args builder.Args) any {
//	    s.Element("p", render.Attrs{render.A("class", "para")}, func(s *builder.Scope) any {
//	        s.Text("bare text")
//	        s.Element("span", render.Attrs{render.A("class", "inline")}, func(*builder.Scope) any {
//	            return "More text!"
//	        })
//	        return nil
//	    })
//	    return nil
//	})
//	html, _ := card.Call()
//	// <p class="para">bare text<span class="inline">More text!</span></p>
//
// # Output resolution
//
// When a Func or Block finishes, its output is the scope buffer if anything
// was appended to it, even an empty string. Otherwise the return value is
// used: strings are escaped, other scalars are stringified and escaped, and
// nil or false produce nothing.
//
// # Errors
//
// Scope methods do not return errors. The first failure is recorded on the
// scope, later appends are ignored, and Call returns the error without any
// partial output.
//
// # Concurrency
//
// A Builder is immutable after New and may be called from many goroutines.
// A Scope belongs to a single call and must not be shared.
package builder
