package render

import (
	"fmt"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// Sentinel errors. Returned errors carry a per-call detail and match these
// with errors.Is.
var (
	ErrInvalidInput          = errors.New("H001")
	ErrInvalidAttributeName  = errors.New("H002")
	ErrInvalidAttributesType = errors.New("H003")
	ErrUnknownElement        = errors.New("H005")
)

func invalidInput(v any) error {
	return errors.New("H001").
		WithDetailf("cannot escape value of type %T", v).
		WithSuggestion("Convert the value to a string first")
}

func invalidAttributeName(v any) error {
	return errors.New("H002").
		WithDetailf("attribute key %s has type %T", describe(v), v).
		WithSuggestion("Use a string or render.Symbol as the attribute name")
}

func invalidAttributesType(v any) error {
	if v == nil {
		return errors.New("H003").WithDetail("attributes are nil")
	}
	return errors.New("H003").WithDetailf("attributes have type %T", v)
}

func unknownElement(tag string) error {
	return errors.New("H005").
		WithDetailf("%q is not a known element", tag).
		WithSuggestion("Use render.Element or render.Void for custom tags")
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}
	s := fmt.Sprintf("%v", v)
	if len(s) > 32 {
		s = s[:32] + "…"
	}
	return s
}
