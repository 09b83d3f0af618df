package operands

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates a value that is not an integer literal.
	ErrSyntax = errors.New("invalid integer syntax")
	// ErrRange indicates an integer literal outside the int64 range.
	ErrRange = errors.New("integer out of range")
	// ErrType indicates a JSON value that cannot be converted to an integer.
	ErrType = errors.New("value is not convertible to an integer")
)

// ParseError reports an operand that is present but cannot be converted to
// an integer.
type ParseError struct {
	Source string // query, form or json
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s field %q: %v: %s", e.Source, e.Field, e.Err, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MalformedBodyError reports a JSON body that is empty, invalid or not an
// object.
type MalformedBodyError struct {
	Reason string
	Err    error
}

func (e *MalformedBodyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed JSON body: %s: %v", e.Reason, e.Err)
	}
	return "malformed JSON body: " + e.Reason
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}
