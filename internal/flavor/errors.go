package flavor

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a config file path did not resolve to a regular file.
	ErrNotFound = errors.New("config file not found")

	// ErrSyntax indicates a config file failed to parse.
	ErrSyntax = errors.New("invalid syntax")

	// ErrNonLiteral indicates an assignment whose right-hand side is not a
	// pure literal expression.
	ErrNonLiteral = fmt.Errorf("%w: non-literal expression", ErrSyntax)

	// ErrMissingQuotes indicates an include argument that is not a quoted
	// string, usually a bare name missing its quotes.
	ErrMissingQuotes = fmt.Errorf("%w: missing quotes", ErrSyntax)

	// ErrCyclicInclude indicates a file includes itself, directly or through
	// a chain of other includes.
	ErrCyclicInclude = errors.New("cyclic include")

	// ErrMissingField indicates a required flavor field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch indicates a flavor field has the wrong literal type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidation indicates a flavor field failed validation.
	ErrValidation = errors.New("validation failed")
)

// SyntaxError reports a config parse failure with its source position.
// It unwraps to one of the Err* sentinels above so callers can classify
// failures with errors.Is.
type SyntaxError struct {
	File      string
	Line      int
	Col       int
	Msg       string
	Construct string // offending source fragment, may be empty

	kind error
}

func (e *SyntaxError) Error() string {
	if e.Construct != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %q", e.File, e.Line, e.Col, e.Msg, e.Construct)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.kind
}

func newSyntaxError(kind error, file string, line, col int, msg, construct string) *SyntaxError {
	return &SyntaxError{
		File:      file,
		Line:      line,
		Col:       col,
		Msg:       msg,
		Construct: construct,
		kind:      kind,
	}
}
