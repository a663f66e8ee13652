// Package base64json encodes values as base64 or base64url JSON text, and
// decodes such text back into values.
//
// Serialization follows the JSON.stringify contract rather than
// json.Marshal's defaults: HTML characters are not escaped, a Replacer can
// transform or drop values, an allow-list of keys can filter objects, and
// the output can be indented.
//
//	encoded, err := base64json.URLEncode(map[string]any{"offset": 20}, nil)
//	// eyJvZmZzZXQiOjIwfQ
//
// Decoding accepts padded and unpadded base64 alike.
package base64json
