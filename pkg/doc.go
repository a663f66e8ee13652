// Package sixtyfour converts between UTF-8 text or binary data and its
// Base64 or Base64URL representation, optionally serializing values to JSON
// before encoding them.
//
// Packages:
//   - base64: encoding, padding-tolerant decoding and the base64url alphabet
//   - base64json: JSON serialization (replacer, key filter, indentation) on
//     top of base64
//
// Related RFCs:
//   - RFC4648 https://www.rfc-editor.org/rfc/rfc4648 The Base16, Base32, and Base64 Data Encodings
//   - RFC8259 https://www.rfc-editor.org/rfc/rfc8259 The JavaScript Object Notation (JSON) Data Interchange Format
package sixtyfour
