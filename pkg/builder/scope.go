package builder

import (
	"github.com/vango-dev/htmlkit/pkg/render"
)

// Scope accumulates the output of one Func or Block invocation.
type Scope struct {
	buf     []byte
	touched bool
	err     error
}

func newScope() *Scope {
	return &Scope{}
}

// Err returns the first error recorded on the scope.
func (s *Scope) Err() error { return s.err }

// Element appends <tag attrs>content</tag>. The content is the resolved
// output of blocks, each run in its own child scope.
func (s *Scope) Element(tag string, attrs any, blocks ...Block) {
	if s.err != nil {
		return
	}
	content, err := runBlocks(blocks)
	if err != nil {
		s.fail(err)
		return
	}
	s.append(render.AppendElement(s.buf, tag, attrs, content))
}

// Void appends <tag attrs>.
func (s *Scope) Void(tag string, attrs any) {
	if s.err != nil {
		return
	}
	out, err := render.Void(tag, attrs)
	if err != nil {
		s.fail(err)
		return
	}
	s.append(append(s.buf, out...), nil)
}

// Tag appends a known element, choosing Void or Element from the tag
// table. Blocks passed to a void element still run; their output is
// discarded.
func (s *Scope) Tag(name string, attrs any, blocks ...Block) {
	if s.err != nil {
		return
	}
	info, err := render.Resolve(name)
	if err != nil {
		s.fail(err)
		return
	}
	if !info.Void {
		s.Element(name, attrs, blocks...)
		return
	}
	if _, err := runBlocks(blocks); err != nil {
		s.fail(err)
		return
	}
	s.Void(name, attrs)
}

// Text appends v escaped. Strings and []byte are escaped as is; other
// values are stringified first and nil appends nothing.
func (s *Scope) Text(v any) {
	if s.err != nil {
		return
	}
	s.touched = true
	s.buf = render.AppendEscaped(s.buf, textOf(v))
}

// Raw appends html without escaping.
func (s *Scope) Raw(html string) {
	if s.err != nil {
		return
	}
	s.touched = true
	s.buf = append(s.buf, html...)
}

// Include calls b and appends its output without escaping.
func (s *Scope) Include(b *Builder, args ...any) {
	if s.err != nil {
		return
	}
	out, err := b.Call(args...)
	if err != nil {
		s.fail(err)
		return
	}
	s.Raw(out)
}

func (s *Scope) append(buf []byte, err error) {
	if err != nil {
		s.fail(err)
		return
	}
	s.touched = true
	s.buf = buf
}

func (s *Scope) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// resolve picks the scope's output: the buffer if it was touched, else the
// escaped return value.
func (s *Scope) resolve(ret any) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.touched {
		return string(s.buf), nil
	}
	switch v := ret.(type) {
	case nil:
		return "", nil
	case bool:
		if !v {
			return "", nil
		}
	}
	return render.EscapeHTML(textOf(ret)), nil
}

// runBlocks runs each block in its own scope and concatenates the results.
func runBlocks(blocks []Block) (string, error) {
	var content string
	for _, blk := range blocks {
		if blk == nil {
			continue
		}
		child := newScope()
		out, err := child.resolve(blk(child))
		if err != nil {
			return "", err
		}
		content += out
	}
	return content, nil
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return render.ToUTF8(t)
	}
	return render.Content(v)
}
