package passport

import (
	"errors"
	"fmt"
)

var (
	// Parse errors. Either one aborts the whole batch read.
	ErrUnknownKey        = errors.New("unknown passport key")
	ErrUnparsableInteger = errors.New("unparsable integer value")

	// ErrReadInput is returned when the input cannot be read at all.
	// It is never combined with a parse error.
	ErrReadInput = errors.New("failed to read input")

	ErrUnknownMode = errors.New("unknown validation mode")

	// Violation kinds, matched by Violation.Is.
	ErrMissingField  = errors.New("missing required field")
	ErrOutOfRange    = errors.New("value out of range")
	ErrInvalidFormat = errors.New("invalid format")
)

// ParseError reports a single token that could not be turned into a field.
// Err is ErrUnknownKey or ErrUnparsableInteger; Text is the offending key or value.
type ParseError struct {
	Err  error
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newUnknownKeyError(key string) *ParseError {
	return &ParseError{Err: ErrUnknownKey, Text: key}
}

func newUnparsableIntegerError(value string) *ParseError {
	return &ParseError{Err: ErrUnparsableInteger, Text: value}
}

// LineError attaches the 1-based input line number to a parse error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err carries a *ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// AsParseError extracts the *ParseError from err, if any.
func AsParseError(err error) (*ParseError, bool) {
	var e *ParseError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
