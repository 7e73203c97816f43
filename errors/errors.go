// Package errors defines the typed syntax errors reported while decoding
// JSON text. Every error carries the kind of violation and the 1-based
// line and column of the first offending character or token.
package errors

import "fmt"

// Kind classifies a syntax error.
type Kind string

const (
	UnterminatedString  Kind = "UnterminatedString"  // end of input inside a string literal
	InvalidEscape       Kind = "InvalidEscape"       // unrecognized or malformed escape sequence
	ControlCharInString Kind = "ControlCharInString" // raw control character inside a string
	UnexpectedCharacter Kind = "UnexpectedCharacter" // character matching no lexical production
	UnexpectedToken     Kind = "UnexpectedToken"     // token not allowed by the current grammar rule
	ObjectKeyNotString  Kind = "ObjectKeyNotString"  // object key position held a non-string token
	TrailingContent     Kind = "TrailingContent"     // input remained after the top-level value
	DepthExceeded       Kind = "DepthExceeded"       // nesting deeper than the configured maximum
	NumberOutOfRange    Kind = "NumberOutOfRange"    // number outside the representable range
)

// Error is a single syntax error at a specific input position. Decoding
// stops at the first violation, so a failed decode reports exactly one
// Error.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

// Newf returns an Error of the given kind at the given position.
func Newf(kind Kind, line, column int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("strictjson: %s at line %d, column %d", e.Message, e.Line, e.Column)
}
