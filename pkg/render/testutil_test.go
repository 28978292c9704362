package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// startTag tokenizes markup and returns the first start tag's name and
// attributes in source order.
func startTag(t *testing.T, markup string) (string, []html.Attribute) {
	t.Helper()

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			t.Fatalf("no start tag in %q: %v", markup, z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			return tok.Data, tok.Attr
		}
	}
}

// attrValue returns the decoded value of attr on the first start tag.
func attrValue(t *testing.T, markup string, attr string) string {
	t.Helper()

	_, attrs := startTag(t, markup)
	for _, a := range attrs {
		if a.Key == attr {
			return a.Val
		}
	}
	t.Fatalf("expected attribute %q in %q", attr, markup)
	return ""
}

// textContent concatenates the text tokens of markup.
func textContent(markup string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
