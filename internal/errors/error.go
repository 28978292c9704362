package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryInput    Category = "input"
	CategoryBuilder  Category = "builder"
	CategoryDocument Category = "document"
	CategoryConfig   Category = "config"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// Location represents a position in an input document.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// HTMLError is a structured error with a registry code, optional document
// location and a fix suggestion.
type HTMLError struct {
	// Code is a unique error identifier (e.g., "H001").
	Code string

	// Category is the error type (input, builder, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail describes this occurrence of the error. When empty, Format
	// falls back to the registry explanation for Code.
	Detail string

	// Location is the document position where the error occurred.
	Location *Location

	// Context contains surrounding document lines.
	Context []string

	// contextStart is the line number of Context[0].
	contextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HTMLError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HTMLError) Unwrap() error {
	return e.Wrapped
}

// Is matches another HTMLError carrying the same code. This lets the
// registry templates double as sentinels.
func (e *HTMLError) Is(target error) bool {
	t, ok := target.(*HTMLError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithLocation adds a document location to the error. When file exists on
// disk the surrounding lines are captured for Format.
func (e *HTMLError) WithLocation(file string, line, column int) *HTMLError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.contextStart = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HTMLError) WithSuggestion(s string) *HTMLError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *HTMLError) WithDetail(d string) *HTMLError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with fmt formatting.
func (e *HTMLError) WithDetailf(format string, args ...any) *HTMLError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithContext adds custom context lines to the error.
func (e *HTMLError) WithContext(lines []string) *HTMLError {
	e.Context = lines
	e.contextStart = 0
	return e
}

// Wrap wraps another error.
func (e *HTMLError) Wrap(err error) *HTMLError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file
// and returns them with the number of the first line read.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	if filename == "" || targetLine <= 0 {
		return nil, 0
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := max(1, targetLine-contextSize/2)
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines, startLine
}

// New creates an HTMLError from a registered error code.
func New(code string) *HTMLError {
	template, ok := registry[code]
	if !ok {
		return &HTMLError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &HTMLError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new HTMLError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HTMLError {
	return &HTMLError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an HTMLError.
func FromError(err error, code string) *HTMLError {
	if err == nil {
		return nil
	}
	if he, ok := err.(*HTMLError); ok {
		return he
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first HTMLError in err's chain, or "".
func CodeOf(err error) string {
	var he *HTMLError
	if stderrors.As(err, &he) {
		return he.Code
	}
	return ""
}

// As returns the first HTMLError in err's chain.
func As(err error) (*HTMLError, bool) {
	var he *HTMLError
	if stderrors.As(err, &he) {
		return he, true
	}
	return nil, false
}
