package base64

import "strings"

var (
	urlifier   = strings.NewReplacer("+", "-", "/", "_")
	deurlifier = strings.NewReplacer("-", "+", "_", "/")
)

// Urlify maps the given standard base64 text to the base64url alphabet
// defined in RFC 4648 Section 5, replacing every "+" with "-" and every
// "/" with "_".
//
// Unless preservePadding is set, the trailing run of "=" is removed. Padding
// characters anywhere else are left alone.
//
// The input is not validated: any text is mapped character by character.
func Urlify(input string, preservePadding bool) string {
	output := urlifier.Replace(input)
	if !preservePadding {
		output = strings.TrimRight(output, "=")
	}
	return output
}

// Deurlify maps the given base64url text back to the standard base64
// alphabet, replacing every "-" with "+" and every "_" with "/".
//
// Padding is not restored, the decoders accept unpadded input.
func Deurlify(input string) string {
	return deurlifier.Replace(input)
}

// URLEncode returns the base64url encoding of the given input, with the
// trailing padding only if includePadding is set.
func URLEncode[T Input](input T, includePadding bool) string {
	return Urlify(Encode(input), includePadding)
}

// URLDecodeAsBuffer returns the bytes decoded from the given base64url
// input, which may or may not be padded.
func URLDecodeAsBuffer(input string) ([]byte, error) {
	return DecodeAsBuffer(Deurlify(input))
}

// URLDecodeAsUTF8 returns the text decoded from the given base64url input,
// which may or may not be padded. See DecodeAsUTF8 for the handling of
// invalid UTF-8.
func URLDecodeAsUTF8(input string) (string, error) {
	return DecodeAsUTF8(Deurlify(input))
}
