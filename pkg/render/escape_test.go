package render

import (
	"errors"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello, World!",
			expected: "Hello, World!",
		},
		{
			name:     "ampersand",
			input:    "Tom & Jerry",
			expected: "Tom &amp; Jerry",
		},
		{
			name:     "less than",
			input:    "a < b",
			expected: "a &lt; b",
		},
		{
			name:     "greater than",
			input:    "a > b",
			expected: "a &gt; b",
		},
		{
			name:     "double quote",
			input:    `say "hello"`,
			expected: "say &quot;hello&quot;",
		},
		{
			name:     "single quote",
			input:    "it's fine",
			expected: "it&#39;s fine",
		},
		{
			name:     "tag and quotes",
			input:    `<"tag"`,
			expected: "&lt;&quot;tag&quot;",
		},
		{
			name:     "script tag",
			input:    "<script>alert('xss')</script>",
			expected: "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
		},
		{
			name:     "multiple special chars",
			input:    `<a href="test?a=1&b=2">link</a>`,
			expected: `&lt;a href=&quot;test?a=1&amp;b=2&quot;&gt;link&lt;/a&gt;`,
		},
		{
			name:     "unicode preserved",
			input:    "Hello 世界 🌍",
			expected: "Hello 世界 🌍",
		},
		{
			name:     "unicode next to specials",
			input:    "Working… <on> it",
			expected: "Working… &lt;on&gt; it",
		},
		{
			name:     "whitespace untouched",
			input:    "a\n\r\tb",
			expected: "a\n\r\tb",
		},
		{
			name:     "not idempotent",
			input:    "&amp;",
			expected: "&amp;amp;",
		},
		{
			name:     "only specials",
			input:    `<>&"'`,
			expected: "&lt;&gt;&amp;&quot;&#39;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EscapeHTML(tt.input)
			if result != tt.expected {
				t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			if got := string(AppendEscaped([]byte("x"), tt.input)); got != "x"+tt.expected {
				t.Errorf("AppendEscaped(%q) = %q, want %q", tt.input, got, "x"+tt.expected)
			}
		})
	}
}

func TestEscapeHTMLNoAlloc(t *testing.T) {
	s := "nothing to see here"
	allocs := testing.AllocsPerRun(100, func() {
		_ = EscapeHTML(s)
	})
	if allocs != 0 {
		t.Errorf("EscapeHTML allocated %v times for clean input", allocs)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
		wantErr  bool
	}{
		{name: "string", input: "<b>", expected: "&lt;b&gt;"},
		{name: "bytes", input: []byte(`"q"`), expected: "&quot;q&quot;"},
		{name: "latin-1 bytes", input: []byte{'c', 'a', 'f', 0xe9, '&'}, expected: "café&amp;"},
		{name: "nil", input: nil, wantErr: true},
		{name: "int", input: 1, wantErr: true},
		{name: "float", input: 1.0, wantErr: true},
		{name: "symbol", input: Symbol("sym"), wantErr: true},
		{name: "slice", input: []string{}, wantErr: true},
		{name: "map", input: map[string]any{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Escape(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("Escape(%#v) error = %v, want ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Escape(%#v) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Escape(%#v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{name: "ascii", input: []byte("plain"), expected: "plain"},
		{name: "utf-8", input: []byte("naïve"), expected: "naïve"},
		{name: "lone latin-1 byte", input: []byte{0xfc, 'b', 'e', 'r'}, expected: "über"},
		{name: "mixed", input: []byte{0xe2, 0x80, 0xa6, 0xff}, expected: "…ÿ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToUTF8(tt.input); got != tt.expected {
				t.Errorf("ToUTF8(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func BenchmarkEscapeHTML(b *testing.B) {
	b.Run("plain text", func(b *testing.B) {
		s := "Hello, World! This is a plain text string without special characters."
		for i := 0; i < b.N; i++ {
			EscapeHTML(s)
		}
	})

	b.Run("with special chars", func(b *testing.B) {
		s := `<script>alert("xss")</script> & more content here`
		for i := 0; i < b.N; i++ {
			EscapeHTML(s)
		}
	})
}
