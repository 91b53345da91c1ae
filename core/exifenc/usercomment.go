// Package exifenc builds the EXIF payload that carries an extracted
// generation-parameters string into the converted AVIF.
package exifenc

import (
	"golang.org/x/text/encoding/unicode"
)

// UserCommentTag is the EXIF tag the comment bytes are stored under.
const UserCommentTag = 0x9286

// Charset identification prefixes from the EXIF specification, eight bytes
// each, NUL-padded.
var (
	ASCIIPrefix   = []byte("ASCII\x00\x00\x00")
	UnicodePrefix = []byte("UNICODE\x00")
)

// UserComment encodes s as an EXIF UserComment value: a charset prefix
// followed by the text in that charset. Pure 7-bit ASCII input is stored
// byte-for-byte under the ASCII prefix; anything else is UTF-16LE under the
// UNICODE prefix. Readers key off the prefix+encoding pairing, so the
// convention is fixed.
func UserComment(s string) []byte {
	if isASCII(s) {
		return append(append([]byte{}, ASCIIPrefix...), s...)
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := enc.Bytes([]byte(s))
	if err != nil {
		// s was produced by a Latin-1 or UTF-8 decode, so it is valid
		// UTF-8 and this cannot happen; keep the raw bytes rather than
		// dropping the comment.
		encoded = []byte(s)
	}
	return append(append([]byte{}, UnicodePrefix...), encoded...)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}
