// Package base64 provides base64 and base64url encoding and decoding
// functions as defined in RFC 4648 Sections 4 and 5.
//
// Encoding always produces standard, padded base64. The base64url variants
// are derived from it by mapping the alphabet:
//   - "+" becomes "-" and "/" becomes "_"
//   - the trailing padding ("=") is removed unless asked to keep it
//
// Decoding accepts padded and unpadded input alike, which is what allows
// base64url text with its padding removed to round-trip.
//
// http://www.rfc-editor.org/rfc/rfc4648
package base64
