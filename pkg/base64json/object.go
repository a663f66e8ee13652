package base64json

import (
	"bytes"

	"golang.org/x/exp/slices"
)

// Member is a single name/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its members in order.
//
// Objects are what a Replacer sees in place of JSON objects, and can be
// passed to Encode directly when the member order matters. Build them with
// Set: members sharing a key are written once, at the position of the
// first, with the value of the last.
type Object []Member

func hasKey(key string) func(Member) bool {
	return func(m Member) bool { return m.Key == key }
}

// Get returns the value of the first member with the given key.
func (o Object) Get(key string) (any, bool) {
	if i := slices.IndexFunc(o, hasKey(key)); i >= 0 {
		return o[i].Value, true
	}
	return nil, false
}

// Set replaces the value of the member with the given key, keeping its
// position, or appends a new member.
func (o Object) Set(key string, value any) Object {
	if i := slices.IndexFunc(o, hasKey(key)); i >= 0 {
		o[i].Value = value
		return o
	}
	return append(o, Member{Key: key, Value: value})
}

// compact folds members sharing a key into one, the way Set does.
func (o Object) compact() Object {
	out := make(Object, 0, len(o))
	for _, m := range o {
		out = out.Set(m.Key, m.Value)
	}
	return out
}

// Keys returns the member names in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

func (o Object) MarshalJSON() ([]byte, error) {
	buff := bytes.NewBuffer(nil)
	buff.WriteByte('{')
	for i, m := range o.compact() {
		if i > 0 {
			buff.WriteByte(',')
		}

		key, err := marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buff.Write(key)
		buff.WriteByte(':')

		value, err := marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buff.Write(value)
	}
	buff.WriteByte('}')
	return buff.Bytes(), nil
}
