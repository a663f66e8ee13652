package base64json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

// marshal encodes v as compact JSON without escaping HTML characters.
func marshal(v any) ([]byte, error) {
	buff := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buff)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buff.Bytes(), []byte{'\n'}), nil
}

// parse decodes JSON text into nil, bool, json.Number, string, []any and
// Object values, keeping the order of object members.
func parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := Object{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not a string", keyTok)
			}

			value, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			obj = obj.Set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			value, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}

	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

// normalize turns any Go value into the form produced by parse. Objects and
// arrays are taken as they are; their elements are normalized when visited.
func normalize(v any) (any, error) {
	switch v := v.(type) {
	case nil, bool, string, json.Number, []any:
		return v, nil
	case Object:
		return v.compact(), nil
	}

	data, err := marshal(v)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

type serializer struct {
	replacer Replacer
	keys     []string
}

func newSerializer(opts *Options) *serializer {
	s := &serializer{replacer: opts.Replacer}

	if opts.Keys != nil {
		s.keys = make([]string, 0, len(opts.Keys))
		for _, key := range opts.Keys {
			if !slices.Contains(s.keys, key) {
				s.keys = append(s.keys, key)
			}
		}
	}

	return s
}

// visit applies the replacer to the value stored under key, then walks into
// whatever the replacer returned. The boolean result is false if the value
// is to be left out.
func (s *serializer) visit(key string, value any) (any, bool, error) {
	value, err := normalize(value)
	if err != nil {
		return nil, false, err
	}

	if s.replacer != nil {
		replaced, keep := s.replacer(key, value)
		if !keep {
			return nil, false, nil
		}

		value, err = normalize(replaced)
		if err != nil {
			return nil, false, err
		}
	}

	switch v := value.(type) {
	case Object:
		members := v
		if s.keys != nil {
			members = make(Object, 0, len(s.keys))
			for _, key := range s.keys {
				if member, ok := v.Get(key); ok {
					members = append(members, Member{Key: key, Value: member})
				}
			}
		}

		out := make(Object, 0, len(members))
		for _, m := range members {
			child, ok, err := s.visit(m.Key, m.Value)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			out = append(out, Member{Key: m.Key, Value: child})
		}
		return out, true, nil
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			child, ok, err := s.visit(strconv.Itoa(i), elem)
			if err != nil {
				return nil, false, err
			}
			if ok {
				out[i] = child
			}
		}
		return out, true, nil
	}

	return value, true, nil
}
