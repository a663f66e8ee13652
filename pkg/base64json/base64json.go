package base64json

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/novemberborn/sixtyfour/pkg/base64"
)

// MaxIndent is the longest indentation Marshal will use.
const MaxIndent = 10

// Replacer is called for every value while serializing, starting with the
// top-level value under the empty key, then for each object member under
// its name and each array element under its decimal index.
//
// It returns the value to serialize in place of the given one. Returning
// false leaves an object member out, or serializes an array element as
// null. Leaving out the top-level value is an error.
//
// Values are handed to the Replacer the way they will be written: nil,
// bool, json.Number, string, []any or Object. Any other value it returns
// is converted with encoding/json before its members are visited; objects
// and arrays already in that form are walked as they are.
type Replacer func(key string, value any) (any, bool)

// Options control how a value is serialized. The zero value produces
// compact JSON.
type Options struct {
	// Replacer, if set, can transform or leave out values.
	Replacer Replacer

	// Keys, if not nil, is the list of object member names to keep, at any
	// depth. Kept members are written in the order of Keys.
	Keys []string

	// Indent is used to pretty-print the JSON text, one Indent per level
	// of nesting. Only the first MaxIndent characters are used.
	Indent string

	// Padding keeps the base64 padding. It only affects URLEncode.
	Padding bool
}

// IndentSpaces returns an indentation of n spaces, clamped to
// [0, MaxIndent].
func IndentSpaces(n int) string {
	if n < 0 {
		n = 0
	}
	if n > MaxIndent {
		n = MaxIndent
	}
	return strings.Repeat(" ", n)
}

func (o *Options) indent() string {
	if o == nil || o.Indent == "" {
		return ""
	}
	if utf8.RuneCountInString(o.Indent) <= MaxIndent {
		return o.Indent
	}
	return string([]rune(o.Indent)[:MaxIndent])
}

// Marshal returns the JSON text for the given value.
//
// Unlike json.Marshal, "<", ">" and "&" are not escaped, and object member
// order is kept for Object and json.RawMessage values.
func Marshal(value any, opts *Options) ([]byte, error) {
	data, err := marshal(value)
	if err != nil {
		return nil, NewSerializationError(err)
	}

	if opts != nil && (opts.Replacer != nil || opts.Keys != nil) {
		tree, err := parse(data)
		if err != nil {
			return nil, NewSerializationError(err)
		}

		tree, ok, err := newSerializer(opts).visit("", tree)
		if err != nil {
			return nil, NewSerializationError(err)
		}
		if !ok {
			return nil, NewSerializationError(ErrNoValue)
		}

		data, err = marshal(tree)
		if err != nil {
			return nil, NewSerializationError(err)
		}
	}

	if indent := opts.indent(); indent != "" {
		buff := bytes.NewBuffer(nil)
		if err := json.Indent(buff, data, "", indent); err != nil {
			return nil, NewSerializationError(err)
		}
		data = buff.Bytes()
	}

	return data, nil
}

// Encode returns the standard base64 encoding of the JSON text for the
// given value.
func Encode(value any, opts *Options) (string, error) {
	data, err := Marshal(value, opts)
	if err != nil {
		return "", err
	}
	return base64.Encode(data), nil
}

// URLEncode returns the base64url encoding of the JSON text for the given
// value. The padding is removed unless opts.Padding is set.
func URLEncode(value any, opts *Options) (string, error) {
	encoded, err := Encode(value, opts)
	if err != nil {
		return "", err
	}
	return base64.Urlify(encoded, opts != nil && opts.Padding), nil
}

// Decode decodes the given standard base64 input, padded or not, and parses
// the resulting JSON text into v.
func Decode(input string, v any) error {
	text, err := base64.DecodeAsUTF8(input)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return NewParseError(err)
	}
	return nil
}

// DecodeValue is like Decode, returning the parsed value the way
// json.Unmarshal does for an interface value.
func DecodeValue(input string) (any, error) {
	var v any
	if err := Decode(input, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// URLDecode decodes the given base64url input, padded or not, and parses the
// resulting JSON text into v.
func URLDecode(input string, v any) error {
	return Decode(base64.Deurlify(input), v)
}

// URLDecodeValue is like URLDecode, returning the parsed value the way
// json.Unmarshal does for an interface value.
func URLDecodeValue(input string) (any, error) {
	return DecodeValue(base64.Deurlify(input))
}
