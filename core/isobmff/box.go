// Package isobmff patches structural boxes inside AVIF (ISO Base Media File
// Format) byte buffers.
package isobmff

import (
	"encoding/binary"
	"fmt"
)

// BoxHeader describes one box located inside a byte range.
type BoxHeader struct {
	Type       string
	Size       int64 // total box size including the header
	HeaderSize int64 // 8, or 16 when a 64-bit extended size follows the tag
}

// ParseBoxHeader decodes the box header at off, bounded by end. A stored
// size of 0 resolves to the remainder of the range; a stored size of 1 means
// a 64-bit size follows the type tag.
func ParseBoxHeader(buf []byte, off, end int64) (BoxHeader, error) {
	if end > int64(len(buf)) {
		end = int64(len(buf))
	}
	if off < 0 || off+8 > end {
		return BoxHeader{}, fmt.Errorf("box header at %d: need 8 bytes, have %d", off, end-off)
	}
	size := int64(binary.BigEndian.Uint32(buf[off : off+4]))
	typ := string(buf[off+4 : off+8])
	header := int64(8)
	switch size {
	case 0:
		size = end - off
	case 1:
		if off+16 > end {
			return BoxHeader{}, fmt.Errorf("box %q at %d: extended size truncated", typ, off)
		}
		size = int64(binary.BigEndian.Uint64(buf[off+8 : off+16]))
		header = 16
	}
	if size < header || off+size > end {
		return BoxHeader{}, fmt.Errorf("box %q at %d: size %d exceeds range", typ, off, size)
	}
	return BoxHeader{Type: typ, Size: size, HeaderSize: header}, nil
}

// findBox walks sibling boxes in buf[off:end] and returns the offset and
// header of the first box of the given type.
func findBox(buf []byte, off, end int64, typ string) (int64, BoxHeader, error) {
	if end > int64(len(buf)) {
		end = int64(len(buf))
	}
	for off < end {
		h, err := ParseBoxHeader(buf, off, end)
		if err != nil {
			return 0, BoxHeader{}, err
		}
		if h.Type == typ {
			return off, h, nil
		}
		off += h.Size
	}
	return 0, BoxHeader{}, fmt.Errorf("no %q box in range", typ)
}

// writeBoxSize rewrites the stored size of the box beginning at box[0],
// honouring the header width the box was parsed with.
func writeBoxSize(box []byte, headerSize, size int64) {
	if headerSize == 16 {
		binary.BigEndian.PutUint32(box[0:4], 1)
		binary.BigEndian.PutUint64(box[8:16], uint64(size))
		return
	}
	binary.BigEndian.PutUint32(box[0:4], uint32(size))
}
