package builder

import (
	"context"
	"io"
	"sort"

	"github.com/a-h/templ"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// ErrMissingArgument is matched (errors.Is) by errors reporting required
// arguments that were not supplied to Call.
var ErrMissingArgument = errors.New("H004")

// Func renders the body of a builder.
type Func func(s *Scope, args Args) any

// Block renders the content of a nested element.
type Block func(s *Scope) any

// Kw holds keyword arguments. Pass it to Call alongside positional values.
type Kw map[string]any

// Args are the arguments of one Call.
type Args struct {
	pos []any
	kw  Kw
}

// Len returns the number of positional arguments.
func (a Args) Len() int { return len(a.pos) }

// At returns positional argument i, or nil when it was not supplied.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.pos) {
		return nil
	}
	return a.pos[i]
}

// Get returns keyword argument name, or nil.
func (a Args) Get(name string) any { return a.kw[name] }

// Lookup returns keyword argument name and whether it was supplied.
func (a Args) Lookup(name string) (any, bool) {
	v, ok := a.kw[name]
	return v, ok
}

// Option configures a Builder.
type Option func(*Builder)

// Positional requires at least n positional arguments.
func Positional(n int) Option {
	return func(b *Builder) {
		b.positional = n
	}
}

// Named requires the given keyword arguments.
func Named(names ...string) Option {
	return func(b *Builder) {
		b.named = append(b.named, names...)
	}
}

// Builder is a reusable fragment template.
type Builder struct {
	fn         Func
	positional int
	named      []string
}

// New creates a Builder. fn must not be nil.
func New(fn Func, opts ...Option) (*Builder, error) {
	if fn == nil {
		return nil, errors.New("H006").WithSuggestion("Pass a builder.Func to builder.New")
	}
	b := &Builder{fn: fn}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Call renders the builder with the given arguments. Values of type Kw are
// merged into the keyword arguments; everything else is positional.
func (b *Builder) Call(args ...any) (string, error) {
	a := splitArgs(args)
	if err := b.check(a); err != nil {
		return "", err
	}
	s := newScope()
	ret := b.fn(s, a)
	return s.resolve(ret)
}

// Build creates a one-off Builder from fn and calls it.
func Build(fn Func, args ...any) (string, error) {
	b, err := New(fn)
	if err != nil {
		return "", err
	}
	return b.Call(args...)
}

// Component adapts a Builder call to a templ.Component. The builder runs on
// every render.
func Component(b *Builder, args ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, err := b.Call(args...)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	})
}

// Prerender calls b once and returns a component that writes the result.
// Unlike Component, errors surface here instead of at render time, and
// rendering the component does not run the builder again.
func Prerender(b *Builder, args ...any) (templ.Component, error) {
	html, err := b.Call(args...)
	if err != nil {
		return nil, err
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	}), nil
}

func splitArgs(args []any) Args {
	var a Args
	for _, v := range args {
		if kw, ok := v.(Kw); ok {
			if a.kw == nil {
				a.kw = make(Kw, len(kw))
			}
			for k, v := range kw {
				a.kw[k] = v
			}
			continue
		}
		a.pos = append(a.pos, v)
	}
	return a
}

func (b *Builder) check(a Args) error {
	var missing []string
	for _, name := range b.named {
		if _, ok := a.kw[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(a.pos) < b.positional {
		return errors.New("H004").
			WithDetailf("need %d positional arguments, got %d", b.positional, len(a.pos))
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.New("H004").WithDetailf("missing keyword arguments: %v", missing)
	}
	return nil
}
