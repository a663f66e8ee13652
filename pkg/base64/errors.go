package base64

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLength  = errors.New("invalid length")
	ErrInvalidPadding = errors.New("invalid padding")
	ErrInvalidUTF8    = errors.New("invalid UTF-8")
)

// DecodeError is returned when the input is not valid base64 (or base64url)
// text, or does not hold what the caller asked for.
type DecodeError struct {
	Input string
	Inner error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("base64: invalid input: %v", e.Inner)
}

func (e *DecodeError) Unwrap() error {
	return e.Inner
}

func NewDecodeError(input string, inner error) *DecodeError {
	return &DecodeError{Input: input, Inner: inner}
}
