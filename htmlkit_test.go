package htmlkit

import (
	"errors"
	"testing"
)

func TestFacade(t *testing.T) {
	tests := []struct {
		name string
		got  func() (string, error)
		want string
	}{
		{"escape", func() (string, error) { return Escape("&amp;") }, "&amp;amp;"},
		{"attribute true", func() (string, error) { return ToAttribute("nerf", true) }, "nerf"},
		{"attribute false", func() (string, error) { return ToAttribute("nerf", false) }, ""},
		{"absent key", func() (string, error) {
			return ToAttribute("data", Attrs{{Key: NoKey, Value: valueOf(true)}})
		}, "data"},
		{"nested", func() (string, error) {
			return ToAttributes(Attrs{
				A("href", Attrs{A("stuff", Attrs{A("another", "foobar")}), A("blerg", "Flerr")}),
			})
		}, `href-stuff-another="foobar" href-blerg="Flerr"`},
		{"void", func() (string, error) { return Void("br", Attrs{A("class", "x")}, "ignored") }, `<br class="x">`},
		{"element", func() (string, error) { return Element("p", nil, "hi") }, "<p>hi</p>"},
		{"tag", func() (string, error) { return Tag("hr", nil, nil) }, "<hr>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// valueOf builds a Value through the conversion used for Attrs entries.
func valueOf(v any) Value {
	return A("", v).Value
}

func TestFacadeErrors(t *testing.T) {
	if _, err := Escape(3); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Escape(3) error = %v", err)
	}
	if _, err := ToAttribute(1, "x"); !errors.Is(err, ErrInvalidAttributeName) {
		t.Errorf("ToAttribute(1) error = %v", err)
	}
	if _, err := ToAttributes(nil); !errors.Is(err, ErrInvalidAttributesType) {
		t.Errorf("ToAttributes(nil) error = %v", err)
	}
	if _, err := Tag("nope", nil, nil); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Tag(nope) error = %v", err)
	}
	b, err := NewBuilder(func(s *Scope, args Args) any { return nil }, Named("name"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Call(); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("Call() error = %v", err)
	}
}

func TestBuilderPrecedenceAndReuse(t *testing.T) {
	greet, err := NewBuilder(func(s *Scope, args Args) any {
		s.Tag("p", nil, func(s *Scope) any {
			return "Hello, " + args.At(0).(string)
		})
		return "discarded"
	}, Positional(1))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"Bob", "Sue"} {
		got, err := greet.Call(name)
		if err != nil {
			t.Fatal(err)
		}
		if want := "<p>Hello, " + name + "</p>"; got != want {
			t.Errorf("Call(%q) = %q, want %q", name, got, want)
		}
	}

	plain, err := Build(func(s *Scope, args Args) any { return "plain <text>" })
	if err != nil {
		t.Fatal(err)
	}
	if plain != "plain &lt;text&gt;" {
		t.Errorf("Build = %q", plain)
	}
}

func TestSanitizeOptional(t *testing.T) {
	if SanitizeOptional(nil) != nil {
		t.Error("nil in should be nil out")
	}
	s := "<i>x</i>"
	if got := SanitizeOptional(&s); got == nil || *got != "x" {
		t.Errorf("SanitizeOptional = %v", got)
	}
	if got := Sanitize("a &amp; b"); got != "a  b" {
		t.Errorf("Sanitize = %q", got)
	}
}
