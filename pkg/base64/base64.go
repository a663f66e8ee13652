package base64

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Input is the set of values that can be encoded: raw bytes, or text
// which is taken as its UTF-8 bytes.
type Input interface {
	~string | ~[]byte
}

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// Encode returns the standard, padded base64 encoding of the given input
// as defined in RFC 4648 Section 4.
//
// Strings are encoded byte-for-byte, so a string holding invalid UTF-8 is
// encoded exactly as it is stored.
func Encode[T Input](input T) string {
	return base64.StdEncoding.EncodeToString([]byte(input))
}

// DecodeAsBuffer returns the bytes decoded from the given standard base64
// input.
//
// Padding is optional. Missing (or partially missing) trailing padding is
// restored before decoding, so "Zm9vYg==", "Zm9vYg=" and "Zm9vYg" all
// decode to "foob". Line breaks are ignored, so wrapped input decodes.
// Any other character outside of the base64 alphabet is rejected rather
// than skipped.
func DecodeAsBuffer(input string) ([]byte, error) {
	unwrapped := lineBreaks.Replace(input)
	if len(unwrapped) == 0 {
		return []byte{}, nil
	}

	data := strings.TrimRight(unwrapped, "=")
	padded := len(unwrapped) - len(data)

	var missing int
	switch len(data) % 4 {
	case 0:
		// No pad chars in this case
	case 1:
		return nil, NewDecodeError(input, ErrInvalidLength)
	case 2:
		missing = 2
	case 3:
		missing = 1
	}

	if padded > missing {
		return nil, NewDecodeError(input, ErrInvalidPadding)
	}

	// Restore whatever padding the input left out.
	if missing > 0 {
		var b strings.Builder
		b.Grow(len(data) + missing)
		b.WriteString(data)
		for i := 0; i < missing; i++ {
			b.WriteByte('=')
		}
		data = b.String()
	}

	result, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, NewDecodeError(input, err)
	}
	return result, nil
}

// DecodeAsUTF8 returns the text decoded from the given standard base64
// input. Padding is optional, see DecodeAsBuffer.
//
// The decoded bytes are interpreted as UTF-8. Decoding is lossy: invalid
// byte sequences are replaced with U+FFFD, the same way a WHATWG compliant
// UTF-8 decoder does. Use DecodeAsUTF8Strict to reject them instead.
func DecodeAsUTF8(input string) (string, error) {
	b, err := DecodeAsBuffer(input)
	if err != nil {
		return "", err
	}

	if utf8.Valid(b) {
		return string(b), nil
	}

	text, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return "", NewDecodeError(input, fmt.Errorf("%w: %v", ErrInvalidUTF8, err))
	}
	return string(text), nil
}

// DecodeAsUTF8Strict is like DecodeAsUTF8, but returns an error wrapping
// ErrInvalidUTF8 if the decoded bytes are not valid UTF-8.
func DecodeAsUTF8Strict(input string) (string, error) {
	b, err := DecodeAsBuffer(input)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", NewDecodeError(input, ErrInvalidUTF8)
	}
	return string(b), nil
}
