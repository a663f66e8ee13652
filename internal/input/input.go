// Package input reads what the command line tool is asked to encode or
// decode.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/novemberborn/sixtyfour/pkg/base64json"
	"gopkg.in/yaml.v2"
)

var (
	ErrEmpty       = errors.New("empty input")
	ErrInvalidJSON = errors.New("invalid JSON")
)

// Read returns the first argument, or everything read from r if there are
// no arguments.
func Read(args []string, r io.Reader) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	if r == nil {
		return nil, ErrEmpty
	}
	return io.ReadAll(r)
}

// ReadText is like Read, with surrounding whitespace removed. It is meant
// for base64 and base64url text.
func ReadText(args []string, r io.Reader) (string, error) {
	data, err := Read(args, r)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(data)), nil
}

// JSON checks that data holds a single JSON value and returns it as a
// json.RawMessage, so that its object members keep their order when
// serialized again.
func JSON(data []byte) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(data), nil
}

// YAML parses a YAML document into a value that serializes to JSON, keeping
// the order of mapping keys.
func YAML(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	var value interface{}
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	// Decoding a mapping again into a MapSlice keeps its keys, and those of
	// every nested mapping, in document order.
	if _, ok := value.(map[interface{}]interface{}); ok {
		var mapping yaml.MapSlice
		if err := yaml.Unmarshal(data, &mapping); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return convert(mapping), nil
	}
	return convert(value), nil
}

func convert(value interface{}) any {
	switch v := value.(type) {
	case yaml.MapSlice:
		obj := make(base64json.Object, 0, len(v))
		for _, item := range v {
			obj = obj.Set(fmt.Sprint(item.Key), convert(item.Value))
		}
		return obj
	case map[interface{}]interface{}:
		keys := make([]string, 0, len(v))
		members := make(map[string]interface{}, len(v))
		for key, member := range v {
			name := fmt.Sprint(key)
			keys = append(keys, name)
			members[name] = member
		}
		sort.Strings(keys)

		obj := make(base64json.Object, 0, len(v))
		for _, key := range keys {
			obj = obj.Set(key, convert(members[key]))
		}
		return obj
	case []interface{}:
		arr := make([]any, len(v))
		for i, elem := range v {
			arr[i] = convert(elem)
		}
		return arr
	}
	return value
}
