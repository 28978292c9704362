//go:build property
// +build property

package render

import (
	"html"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEscapeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("escaped text has no raw specials", prop.ForAll(
		func(s string) bool {
			return !strings.ContainsAny(EscapeHTML(s), `<>"'`)
		},
		gen.AnyString(),
	))

	properties.Property("unescape inverts escape", prop.ForAll(
		func(s string) bool {
			return html.UnescapeString(EscapeHTML(s)) == s
		},
		gen.AnyString(),
	))

	properties.Property("clean input is returned unchanged", prop.ForAll(
		func(s string) bool {
			return EscapeHTML(s) == s
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestAttributeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("scalar renders key=\"escaped\"", prop.ForAll(
		func(key, value string) bool {
			got, err := ToAttribute(key, value)
			return err == nil && got == key+`="`+EscapeHTML(value)+`"`
		},
		gen.Identifier(),
		gen.AnyString(),
	))

	properties.Property("entries keep their order", prop.ForAll(
		func(names []string) bool {
			attrs := make(Attrs, 0, len(names))
			want := make([]string, 0, len(names))
			for _, n := range names {
				attrs = attrs.Add(n, true)
				want = append(want, n)
			}
			got, err := attrs.Render()
			return err == nil && got == strings.Join(want, " ")
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("false never renders", prop.ForAll(
		func(key string) bool {
			got, err := ToAttribute(key, Attrs{A("x", false), A("y", Attrs{A("z", false)})})
			return err == nil && got == ""
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestSanitizeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("output has no tag openers", prop.ForAll(
		func(s string) bool {
			return !strings.ContainsAny(Sanitize(s), "<&")
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
