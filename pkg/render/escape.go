package render

import (
	"strings"
	"unicode/utf8"
)

// escapedChars are the bytes EscapeHTML substitutes. All of them are ASCII,
// so scanning bytes never splits a multi-byte UTF-8 sequence.
const escapedChars = `&<>"'`

// EscapeHTML escapes text for safe inclusion in HTML content and attribute
// values. It converts &, <, >, " and ' to their entity equivalents and
// copies everything else verbatim. Input without any of those characters
// is returned as is, without allocating.
func EscapeHTML(s string) string {
	i := strings.IndexAny(s, escapedChars)
	if i < 0 {
		return s
	}
	buf := make([]byte, 0, len(s)+len(s)/4+8)
	return string(appendEscaped(buf, s, i))
}

// AppendEscaped appends the escaped form of s to dst.
func AppendEscaped(dst []byte, s string) []byte {
	i := strings.IndexAny(s, escapedChars)
	if i < 0 {
		return append(dst, s...)
	}
	return appendEscaped(dst, s, i)
}

// appendEscaped escapes s starting at i, the index of its first special byte.
func appendEscaped(dst []byte, s string, i int) []byte {
	for i >= 0 {
		dst = append(dst, s[:i]...)
		dst = append(dst, entity(s[i])...)
		s = s[i+1:]
		i = strings.IndexAny(s, escapedChars)
	}
	return append(dst, s...)
}

func entity(c byte) string {
	switch c {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '"':
		return "&quot;"
	case '\'':
		return "&#39;"
	}
	return string(c)
}

// Escape is the dynamically typed form of EscapeHTML. Only text is
// accepted: string, or []byte which is normalised to UTF-8 first. Anything
// else fails with ErrInvalidInput; callers that want a value's text form
// escaped must stringify it themselves.
func Escape(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return EscapeHTML(t), nil
	case []byte:
		return EscapeHTML(ToUTF8(t)), nil
	default:
		return "", invalidInput(v)
	}
}

// ToUTF8 returns b as a UTF-8 string. Valid UTF-8 is returned unchanged;
// any byte that is not part of a valid sequence is read as the Latin-1
// code point of the same value, so no input byte is lost.
func ToUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) + len(b)/2)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(rune(b[0]))
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}
