package base64json

import (
	"errors"
	"fmt"
)

var (
	ErrNoValue = errors.New("no value to serialize")
)

// SerializationError is returned when a value can not be written as JSON,
// for example because it contains a cycle or a channel.
type SerializationError struct {
	Inner error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization failed: %v", e.Inner)
}

func (e *SerializationError) Unwrap() error {
	return e.Inner
}

func NewSerializationError(inner error) *SerializationError {
	return &SerializationError{Inner: inner}
}

// ParseError is returned when decoded text is not valid JSON.
type ParseError struct {
	Inner error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing failed: %v", e.Inner)
}

func (e *ParseError) Unwrap() error {
	return e.Inner
}

func NewParseError(inner error) *ParseError {
	return &ParseError{Inner: inner}
}
