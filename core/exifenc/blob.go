package exifenc

import (
	"bytes"
	"encoding/binary"
)

const (
	tagExifIFD = 0x8769

	typeLong      = 4
	typeUndefined = 7
)

// Build wraps an encoded UserComment value in a minimal little-endian TIFF
// stream: IFD0 holds a single Exif sub-IFD pointer, and the sub-IFD holds the
// single UserComment entry. This is the byte blob handed to the image codec's
// EXIF metadata path.
func Build(comment []byte) []byte {
	var buf bytes.Buffer
	le16 := func(v uint16) { binary.Write(&buf, binary.LittleEndian, v) }
	le32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }

	// TIFF header: byte order, magic, offset of IFD0.
	buf.WriteString("II")
	le16(0x2A)
	le32(8)

	// IFD0: entry count + one 12-byte entry + next-IFD offset = 18 bytes.
	exifIFDOffset := uint32(8 + 18)
	le16(1)
	le16(tagExifIFD)
	le16(typeLong)
	le32(1)
	le32(exifIFDOffset)
	le32(0) // no next IFD

	// Exif sub-IFD: one UNDEFINED entry holding the comment bytes.
	valueOffset := exifIFDOffset + 18
	le16(1)
	le16(UserCommentTag)
	le16(typeUndefined)
	le32(uint32(len(comment)))
	if len(comment) <= 4 {
		inline := make([]byte, 4)
		copy(inline, comment)
		buf.Write(inline)
		le32(0)
	} else {
		le32(valueOffset)
		le32(0)
		buf.Write(comment)
	}
	return buf.Bytes()
}
