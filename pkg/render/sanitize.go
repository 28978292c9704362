package render

import "strings"

// Sanitize strips markup from s: every <...> span and every &...; entity
// span is removed in a single left-to-right pass. A span that is never
// closed swallows the rest of the input. Stray '>' and ';' are kept.
//
// This is mechanical tag stripping, not an HTML sanitizer. The result is
// not escaped.
func Sanitize(s string) string {
	if strings.IndexByte(s, '<') < 0 && strings.IndexByte(s, '&') < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		var end byte
		switch s[i] {
		case '<':
			end = '>'
		case '&':
			end = ';'
		default:
			sb.WriteByte(s[i])
			i++
			continue
		}
		j := strings.IndexByte(s[i+1:], end)
		if j < 0 {
			break
		}
		i += j + 2
	}
	return sb.String()
}

// SanitizeOptional is Sanitize for optional text: nil in, nil out.
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	out := Sanitize(*s)
	return &out
}
