package base64json

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/novemberborn/sixtyfour/pkg/base64"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		Name   string
		Value  any
		Opts   *Options
		Output string
	}{
		{
			Name:   "string",
			Value:  "foo",
			Output: "ImZvbyI=",
		},
		{
			Name:  "replacer",
			Value: "not foo",
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					return "foo", true
				},
			},
			Output: "ImZvbyI=",
		},
		{
			Name:   "indent",
			Value:  map[string]any{"foo": true},
			Opts:   &Options{Indent: IndentSpaces(2)},
			Output: "ewogICJmb28iOiB0cnVlCn0=",
		},
		{
			Name:   "html is not escaped",
			Value:  map[string]string{"html": "<a&b>"},
			Output: "eyJodG1sIjoiPGEmYj4ifQ==",
		},
		{
			Name:   "member order is kept",
			Value:  Object{{Key: "b", Value: 2}, {Key: "a", Value: 1}},
			Opts:   &Options{Indent: "\t"},
			Output: "ewoJImIiOiAyLAoJImEiOiAxCn0=",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			encoded, err := Encode(test.Value, test.Opts)
			require.NoError(t, err)
			require.Equal(t, test.Output, encoded)
		})
	}
}

func TestURLEncode(t *testing.T) {
	// Lead with dots so the double quote is encoded separately from the
	// ◾◿ characters.
	encoded, err := URLEncode("..◾◿", nil)
	require.NoError(t, err)
	require.Equal(t, "Ii4u4pe-4pe_Ig", encoded)

	encoded, err = URLEncode("not ◾◿", &Options{
		Replacer: func(key string, value any) (any, bool) {
			return "..◾◿", true
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Ii4u4pe-4pe_Ig", encoded)

	encoded, err = URLEncode(map[string]any{".◾◿": true}, &Options{Indent: IndentSpaces(2)})
	require.NoError(t, err)
	require.Equal(t, "ewogICIu4pe-4pe_IjogdHJ1ZQp9", encoded)

	encoded, err = URLEncode("..◾◿", &Options{Padding: true})
	require.NoError(t, err)
	require.Equal(t, "Ii4u4pe-4pe_Ig==", encoded)
}

func TestMarshal(t *testing.T) {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	tests := []struct {
		Name   string
		Value  any
		Opts   *Options
		Output string
	}{
		{
			Name:   "nil options",
			Value:  point{X: 1, Y: 2},
			Output: `{"x":1,"y":2}`,
		},
		{
			Name:   "struct field order",
			Value:  point{X: 1, Y: 2},
			Opts:   &Options{Indent: IndentSpaces(1)},
			Output: "{\n \"x\": 1,\n \"y\": 2\n}",
		},
		{
			Name:   "raw message order",
			Value:  json.RawMessage(`{"z": 1, "a": [true, null]}`),
			Opts:   &Options{Keys: []string{"z", "a"}},
			Output: `{"z":1,"a":[true,null]}`,
		},
		{
			Name:   "indent is clamped",
			Value:  []int{1},
			Opts:   &Options{Indent: IndentSpaces(20)},
			Output: "[\n" + strings.Repeat(" ", MaxIndent) + "1\n]",
		},
		{
			Name:   "negative indent",
			Value:  []int{1},
			Opts:   &Options{Indent: IndentSpaces(-1)},
			Output: "[1]",
		},
		{
			Name:   "indent string is truncated",
			Value:  []int{1},
			Opts:   &Options{Indent: "--------------"},
			Output: "[\n----------1\n]",
		},
		{
			Name:   "empty containers",
			Value:  map[string]any{"a": []any{}, "b": map[string]any{}},
			Opts:   &Options{Indent: IndentSpaces(2)},
			Output: "{\n  \"a\": [],\n  \"b\": {}\n}",
		},
		{
			Name:   "keys filter every depth in their order",
			Value:  json.RawMessage(`{"a":1,"b":{"a":2,"c":3},"c":[{"b":4,"a":5}]}`),
			Opts:   &Options{Keys: []string{"c", "a", "b", "a"}},
			Output: `{"c":[{"a":5,"b":4}],"a":1,"b":{"c":3,"a":2}}`,
		},
		{
			Name:   "empty keys drop every member",
			Value:  map[string]any{"a": 1},
			Opts:   &Options{Keys: []string{}},
			Output: `{}`,
		},
		{
			Name:  "replacer drops members and nulls elements",
			Value: json.RawMessage(`{"keep":1,"drop":2,"list":["x","drop","y"]}`),
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					if key == "drop" || value == "drop" {
						return nil, false
					}
					return value, true
				},
			},
			Output: `{"keep":1,"list":["x",null,"y"]}`,
		},
		{
			Name:  "replacer sees numbers as json.Number",
			Value: map[string]any{"n": 41},
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					if n, ok := value.(json.Number); ok {
						i, err := n.Int64()
						if err != nil {
							return nil, false
						}
						return i + 1, true
					}
					return value, true
				},
			},
			Output: `{"n":42}`,
		},
		{
			Name:  "replacer output is visited",
			Value: "start",
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					switch key {
					case "":
						return map[string]any{"secret": "s3cr3t", "name": "ada"}, true
					case "secret":
						return "[redacted]", true
					}
					return value, true
				},
			},
			Output: `{"name":"ada","secret":"[redacted]"}`,
		},
		{
			Name:  "replacer keys",
			Value: []any{map[string]any{"a": 1}},
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					if _, ok := value.(Object); ok {
						return value, true
					}
					if _, ok := value.([]any); ok {
						return value, true
					}
					return key, true
				},
			},
			Output: `[{"a":"a"}]`,
		},
		{
			Name:   "object with repeated keys",
			Value:  Object{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "a", Value: 3}},
			Output: `{"a":3,"b":2}`,
		},
		{
			Name:  "replacer object with repeated keys",
			Value: nil,
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					if key == "" {
						return Object{{Key: "a", Value: 1}, {Key: "a", Value: []int{2}}}, true
					}
					return value, true
				},
			},
			Output: `{"a":[2]}`,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			data, err := Marshal(test.Value, test.Opts)
			require.NoError(t, err)
			require.Equal(t, test.Output, string(data))
		})
	}

	t.Run("replacer output is walked in place", func(t *testing.T) {
		inner := []any{json.Number("1"), 2}

		var seen []any
		opts := &Options{
			Replacer: func(key string, value any) (any, bool) {
				switch key {
				case "":
					return Object{{Key: "list", Value: inner}}, true
				case "list":
					list, ok := value.([]any)
					require.True(t, ok)
					require.Same(t, &inner[0], &list[0])
				default:
					seen = append(seen, value)
				}
				return value, true
			},
		}

		data, err := Marshal("start", opts)
		require.NoError(t, err)
		require.Equal(t, `{"list":[1,2]}`, string(data))
		require.Equal(t, []any{json.Number("1"), json.Number("2")}, seen)
	})
}

func TestMarshalErrors(t *testing.T) {
	type node struct {
		Next *node `json:"next"`
	}
	cycle := &node{}
	cycle.Next = cycle

	tests := []struct {
		Name  string
		Value any
		Opts  *Options
		Err   error
	}{
		{
			Name:  "cycle",
			Value: cycle,
		},
		{
			Name:  "channel",
			Value: map[string]any{"ch": make(chan int)},
		},
		{
			Name:  "function",
			Value: func() {},
		},
		{
			Name:  "NaN",
			Value: math.NaN(),
		},
		{
			Name:  "invalid raw message",
			Value: json.RawMessage(`{`),
		},
		{
			Name:  "replacer drops the top-level value",
			Value: "foo",
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					return nil, false
				},
			},
			Err: ErrNoValue,
		},
		{
			Name:  "replacer returns something unsupported",
			Value: "foo",
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					return math.Inf(1), true
				},
			},
		},
		{
			Name:  "replacer object holds something unsupported",
			Value: "foo",
			Opts: &Options{
				Replacer: func(key string, value any) (any, bool) {
					if key == "" {
						return Object{{Key: "ch", Value: make(chan int)}}, true
					}
					return value, true
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := Encode(test.Value, test.Opts)
			require.Error(t, err)

			var serializationErr *SerializationError
			require.True(t, errors.As(err, &serializationErr))

			if test.Err != nil {
				require.ErrorIs(t, err, test.Err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	value, err := DecodeValue("ewogICJmb28iOiB0cnVlCn0=")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"foo": true}, value)

	value, err = URLDecodeValue("ewogICIu4pe-4pe_IjogdHJ1ZQp9")
	require.NoError(t, err)
	require.Equal(t, map[string]any{".◾◿": true}, value)

	var target struct {
		Foo bool `json:"foo"`
	}
	err = Decode("ewogICJmb28iOiB0cnVlCn0", &target)
	require.NoError(t, err)
	require.True(t, target.Foo)

	t.Run("not json", func(t *testing.T) {
		_, err := DecodeValue(base64.Encode("{nope"))
		require.Error(t, err)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := URLDecodeValue("e30*")
		require.Error(t, err)

		var decodeErr *base64.DecodeError
		require.True(t, errors.As(err, &decodeErr))
	})
}

func TestRoundTrip(t *testing.T) {
	values := []any{
		nil,
		true,
		1.5,
		"text with ◾◿ and <html>",
		[]any{1.0, "two", nil, false},
		map[string]any{
			"nested": map[string]any{
				"ключ": "значение",
				"list": []any{map[string]any{"deep": 3.0}},
			},
			"empty": map[string]any{},
		},
	}

	for _, value := range values {
		for _, opts := range []*Options{nil, {Indent: "  ", Padding: true}} {
			encoded, err := Encode(value, opts)
			require.NoError(t, err)

			decoded, err := DecodeValue(encoded)
			require.NoError(t, err)
			if diff := cmp.Diff(value, decoded); diff != "" {
				t.Errorf("base64 round trip mismatch (-want +got):\n%s", diff)
			}

			encoded, err = URLEncode(value, opts)
			require.NoError(t, err)

			decoded, err = URLDecodeValue(encoded)
			require.NoError(t, err)
			if diff := cmp.Diff(value, decoded); diff != "" {
				t.Errorf("base64url round trip mismatch (-want +got):\n%s", diff)
			}
		}
	}
}

func TestObject(t *testing.T) {
	obj := Object{}
	obj = obj.Set("b", 1)
	obj = obj.Set("a", 2)
	obj = obj.Set("b", 3)

	require.Equal(t, []string{"b", "a"}, obj.Keys())

	value, ok := obj.Get("b")
	require.True(t, ok)
	require.Equal(t, 3, value)

	_, ok = obj.Get("c")
	require.False(t, ok)

	data, err := Marshal(obj, nil)
	require.NoError(t, err)
	require.Equal(t, `{"b":3,"a":2}`, string(data))

	repeated := Object{{Key: "x", Value: 1}, {Key: "y", Value: 2}, {Key: "x", Value: 3}}
	require.Equal(t, Object{{Key: "x", Value: 3}, {Key: "y", Value: 2}}, repeated.compact())

	value, ok = repeated.Get("x")
	require.True(t, ok)
	require.Equal(t, 1, value)

	tree, err := parse([]byte(`{"x":1,"x":2,"y":{}}`))
	require.NoError(t, err)
	require.Equal(t, Object{{Key: "x", Value: json.Number("2")}, {Key: "y", Value: Object{}}}, tree)
}
