package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		label    string
		expected string
	}{
		{"utf-8 untouched", []byte("naïve…"), "", "naïve…"},
		{"utf-8 with other label", []byte("plain"), "shift_jis", "plain"},
		{"windows-1252 default", []byte{'c', 'a', 'f', 0xe9, ' ', 0x80}, "", "café €"},
		{"latin1 label", []byte{0xfc, 'b', 'e', 'r'}, "latin1", "über"},
		{"shift_jis", []byte{0x82, 0xa0}, "shift_jis", "あ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUTF8(tt.input, tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestUnknownCharset(t *testing.T) {
	_, err := ToUTF8([]byte("x"), "klingon")
	require.Error(t, err)
	assert.Equal(t, "H021", herrors.CodeOf(err))

	_, err = Lookup("utf-8")
	assert.NoError(t, err)
}

func TestNFC(t *testing.T) {
	assert.Equal(t, "\u00e9", NFC("e\u0301"))
	assert.Equal(t, "plain", NFC("plain"))
}
