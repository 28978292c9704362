// Package errors provides coded, actionable errors for htmlkit.
//
// Every failure the library can report is a caller-input error. None of them
// are transient, so nothing in htmlkit retries; the error is surfaced to the
// call site as soon as it is detected.
//
// # Error Categories
//
//   - input: values handed to the escaper or serializer have the wrong type
//   - builder: scoped builder misuse (missing arguments, nil funcs)
//   - document: element-tree documents that cannot be decoded
//   - config: configuration files and environment overrides
//   - server: fragment server request handling
//   - cli: command line usage
//
// # Error Codes
//
// Each error has a unique code (e.g., "H002") that maps to a short message,
// a longer explanation and a documentation URL.
//
// # Usage
//
//	err := errors.New("H002").
//	    WithDetail(`attribute key 22 has type int`).
//	    WithSuggestion("Use a string or render.Symbol as the attribute name")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR H002: Invalid attribute name
//	//
//	//   attribute key 22 has type int
//	//
//	//   Hint: Use a string or render.Symbol as the attribute name
//
// Codes are comparable with the standard library: errors.Is(err, New("H002"))
// reports whether err carries code H002 anywhere in its chain.
package errors
