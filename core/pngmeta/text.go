package pngmeta

import (
	"bytes"
	"compress/zlib"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// parametersKeyword is the chunk keyword Stable Diffusion front-ends store
// their generation settings under.
const parametersKeyword = "parameters"

// Encoding names the chunk type an extracted value came from.
type Encoding string

const (
	EncodingPlain         Encoding = "tEXt"
	EncodingCompressed    Encoding = "zTXt"
	EncodingInternational Encoding = "iTXt"
)

// ExtractParameters returns the value of the first "parameters" text chunk in
// stream order, whichever of the three PNG text encodings carries it. The
// bool is false when no such chunk exists, the stream is truncated, or the
// signature is wrong: extraction is advisory and never fails the caller.
func ExtractParameters(r io.Reader) (string, Encoding, bool) {
	sc := NewScanner(r)
	for sc.Next() {
		c := sc.Chunk()
		var (
			val string
			ok  bool
		)
		switch c.Type {
		case "tEXt":
			val, ok = decodeText(c.Data)
		case "zTXt":
			val, ok = decodeCompressedText(c.Data)
		case "iTXt":
			val, ok = decodeInternationalText(c.Data)
		default:
			continue
		}
		if ok {
			return val, Encoding(c.Type), true
		}
	}
	return "", "", false
}

// decodeText handles tEXt: keyword, NUL, Latin-1 value.
func decodeText(data []byte) (string, bool) {
	keyword, rest, found := bytes.Cut(data, []byte{0})
	if !found || string(keyword) != parametersKeyword {
		return "", false
	}
	return latin1(rest), true
}

// decodeCompressedText handles zTXt: keyword, NUL, method byte, deflate
// stream. Method 0 (zlib) is the only one defined; anything else, or an
// inflate failure, skips the chunk.
func decodeCompressedText(data []byte) (string, bool) {
	keyword, rest, found := bytes.Cut(data, []byte{0})
	if !found || string(keyword) != parametersKeyword {
		return "", false
	}
	if len(rest) < 1 || rest[0] != 0 {
		return "", false
	}
	raw, err := inflate(rest[1:])
	if err != nil {
		return "", false
	}
	return latin1(raw), true
}

// decodeInternationalText handles iTXt: keyword NUL, compression flag,
// compression method, NUL-terminated language tag, NUL-terminated translated
// keyword, UTF-8 value.
func decodeInternationalText(data []byte) (string, bool) {
	keyword, rest, found := bytes.Cut(data, []byte{0})
	if !found || string(keyword) != parametersKeyword {
		return "", false
	}
	if len(rest) < 2 {
		return "", false
	}
	compressed := rest[0] != 0
	method := rest[1]
	rest = rest[2:]
	for i := 0; i < 2; i++ {
		_, tail, found := bytes.Cut(rest, []byte{0})
		if !found {
			return "", false
		}
		rest = tail
	}
	if compressed {
		if method != 0 {
			return "", false
		}
		raw, err := inflate(rest)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
	return string(rest), true
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// latin1 maps each byte to the code point of the same value, the character
// set PNG declares for tEXt and zTXt.
func latin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
