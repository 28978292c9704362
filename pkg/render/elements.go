package render

import (
	"sort"
)

// TagInfo describes a known element.
type TagInfo struct {
	Name string
	// Void elements have no closing tag and never carry content.
	Void bool
	// Inline elements flow with text in typical layouts.
	Inline bool
}

const (
	void   = 1 << iota
	inline // phrasing content
)

// tags is the static element table.
var tags = func() map[string]TagInfo {
	flags := map[string]int{
		// void
		"area": void, "base": void, "br": void | inline, "col": void,
		"embed": void, "hr": void, "img": void | inline, "input": void | inline,
		"link": void, "menuitem": void, "meta": void, "param": void,
		"source": void, "track": void, "wbr": void | inline,

		// inline
		"a": inline, "abbr": inline, "b": inline, "bdi": inline, "bdo": inline,
		"cite": inline, "code": inline, "dfn": inline, "em": inline, "i": inline,
		"kbd": inline, "label": inline, "mark": inline, "q": inline, "rp": inline,
		"rt": inline, "ruby": inline, "s": inline, "samp": inline,
		"small": inline, "span": inline, "strong": inline, "sub": inline,
		"time": inline, "u": inline, "var": inline,

		// block and other standard elements
		"address": 0, "article": 0, "aside": 0, "audio": 0, "blockquote": 0,
		"body": 0, "button": 0, "canvas": 0, "caption": 0, "colgroup": 0,
		"datalist": 0, "dd": 0, "del": 0, "details": 0, "dialog": 0, "div": 0,
		"dl": 0, "dt": 0, "fieldset": 0, "figcaption": 0, "figure": 0,
		"footer": 0, "form": 0, "h1": 0, "h2": 0, "h3": 0, "h4": 0, "h5": 0,
		"h6": 0, "head": 0, "header": 0, "html": 0, "iframe": 0, "ins": 0,
		"legend": 0, "li": 0, "main": 0, "map": 0, "menu": 0, "meter": 0,
		"nav": 0, "noscript": 0, "object": 0, "ol": 0, "optgroup": 0,
		"option": 0, "output": 0, "p": 0, "picture": 0, "pre": 0,
		"progress": 0, "script": 0, "section": 0, "select": 0, "style": 0,
		"summary": 0, "table": 0, "tbody": 0, "td": 0, "template": 0,
		"textarea": 0, "tfoot": 0, "th": 0, "thead": 0, "title": 0, "tr": 0,
		"ul": 0, "video": 0,
	}
	m := make(map[string]TagInfo, len(flags))
	for name, f := range flags {
		m[name] = TagInfo{Name: name, Void: f&void != 0, Inline: f&inline != 0}
	}
	return m
}()

// Lookup returns the table entry for name.
func Lookup(name string) (TagInfo, bool) {
	t, ok := tags[name]
	return t, ok
}

// Resolve is Lookup for callers that want an error. Unknown names fail
// with ErrUnknownElement.
func Resolve(name string) (TagInfo, error) {
	t, ok := tags[name]
	if !ok {
		return TagInfo{}, unknownElement(name)
	}
	return t, nil
}

// IsVoid reports whether name is a known void element.
func IsVoid(name string) bool {
	return tags[name].Void
}

// Tags returns the known element names, sorted.
func Tags() []string {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Element renders <tag attrs>content</tag>.
//
// attrs may be nil, meaning no attributes; otherwise it must be a mapping
// accepted by ToAttributes. content is inserted verbatim, see Content. tag
// is not validated.
func Element(tag string, attrs any, content any) (string, error) {
	buf, err := AppendElement(nil, tag, attrs, content)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// AppendElement is the append form of Element. On error dst is returned
// unchanged.
func AppendElement(dst []byte, tag string, attrs any, content any) ([]byte, error) {
	start := len(dst)
	dst, err := appendOpenTag(dst, tag, attrs)
	if err != nil {
		return dst[:start], err
	}
	dst = append(dst, Content(content)...)
	dst = append(dst, '<', '/')
	dst = append(dst, tag...)
	return append(dst, '>'), nil
}

// Void renders <tag attrs> with no closing tag. Content producers are still
// invoked, but their output is discarded.
func Void(tag string, attrs any, content ...any) (string, error) {
	buf, err := appendOpenTag(nil, tag, attrs)
	if err != nil {
		return "", err
	}
	for _, c := range content {
		_ = Content(c)
	}
	return string(buf), nil
}

// Tag renders a known element, choosing Void or Element from the table.
// Names not in the table fail with ErrUnknownElement.
func Tag(name string, attrs any, content any) (string, error) {
	t, err := Resolve(name)
	if err != nil {
		return "", err
	}
	if t.Void {
		return Void(name, attrs, content)
	}
	return Element(name, attrs, content)
}

func appendOpenTag(dst []byte, tag string, attrs any) ([]byte, error) {
	dst = append(dst, '<')
	dst = append(dst, tag...)
	if attrs != nil {
		a, err := attrsOf(attrs)
		if err != nil {
			return dst, err
		}
		mark := len(dst)
		dst = append(dst, ' ')
		if dst, err = AppendAttributes(dst, a); err != nil {
			return dst, err
		}
		if len(dst) == mark+1 {
			dst = dst[:mark]
		}
	}
	return append(dst, '>'), nil
}

// Content returns the text form of element content. nil and false are
// empty, strings are used as is, producers (func() string, func() any) are
// called and their result converted in turn. Nothing is escaped.
func Content(c any) string {
	switch t := c.(type) {
	case nil:
		return ""
	case bool:
		if !t {
			return ""
		}
		return "true"
	case string:
		return t
	case func() string:
		if t == nil {
			return ""
		}
		return t()
	case func() any:
		if t == nil {
			return ""
		}
		return Content(t())
	}
	return stringify(c)
}
