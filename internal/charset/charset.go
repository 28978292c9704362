// Package charset converts document input to UTF-8.
package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// Default is the charset assumed for input that is not valid UTF-8.
const Default = "windows-1252"

// Lookup returns the encoding registered under an HTML charset label.
func Lookup(label string) (encoding.Encoding, error) {
	if label == "" {
		label = Default
	}
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, errors.New("H021").
			WithDetailf("unknown charset %q", label).
			WithSuggestion("Use a WHATWG label such as utf-8, windows-1252 or shift_jis")
	}
	return enc, nil
}

// ToUTF8 returns data as UTF-8 text. Valid UTF-8 is returned unchanged;
// anything else is decoded from the charset named by label (Default when
// empty). The label is validated even when it is not needed.
func ToUTF8(data []byte, label string) (string, error) {
	enc, err := Lookup(label)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.New("H021").WithDetail("input could not be decoded").Wrap(err)
	}
	return string(out), nil
}

// NFC returns s in Unicode normalization form C.
func NFC(s string) string {
	return norm.NFC.String(s)
}
