package isobmff

import "encoding/binary"

// fullBoxHeaderSize is the version/flags prefix a full box carries before its
// own fields.
const fullBoxHeaderSize = 4

// ilocSchema carries the per-table field widths, resolved once from the iloc
// header so the entry and extent walks stay in lock-step.
type ilocSchema struct {
	offsetSize     int
	lengthSize     int
	baseOffsetSize int
	indexSize      int
}

// PatchIlocOffsets shifts every extent offset stored in the meta box's iloc
// table by delta. meta is the payload of the meta box, including its 4-byte
// full-box header. The iloc box's own size never changes, only the offsets
// inside it. On a missing iloc, an unsupported version, or any field that
// would run past the buffer, the input is returned unchanged; a partially
// patched table is never produced.
//
// The delta is applied to every extent offset unconditionally. Extents in
// practice point at mdat payload after the meta region, which is what the
// growth shifts; a table with offsets before the growth point would not
// survive this.
func PatchIlocOffsets(meta []byte, delta int64) []byte {
	off, h, err := findBox(meta, fullBoxHeaderSize, int64(len(meta)), "iloc")
	if err != nil {
		return meta
	}

	body := append([]byte(nil), meta[off+h.HeaderSize:off+h.Size]...)
	if !patchIlocBody(body, delta) {
		return meta
	}

	out := append([]byte(nil), meta[:off+h.HeaderSize]...)
	out = append(out, body...)
	out = append(out, meta[off+h.Size:]...)
	return out
}

// patchIlocBody rewrites the extent offsets inside an iloc full-box payload
// in place. It reports whether the walk covered the table without overrun.
func patchIlocBody(body []byte, delta int64) bool {
	r := &fieldReader{buf: body}

	version := r.byte()
	r.skip(3) // flags
	if version > 2 {
		return false
	}

	b := r.byte()
	schema := ilocSchema{
		offsetSize: int(b >> 4),
		lengthSize: int(b & 0x0F),
	}
	b = r.byte()
	schema.baseOffsetSize = int(b >> 4)
	schema.indexSize = int(b & 0x0F)

	var itemCount uint32
	if version < 2 {
		itemCount = uint32(r.uint16())
	} else {
		itemCount = r.uint32()
	}

	for i := uint32(0); i < itemCount; i++ {
		if version < 2 {
			r.skip(2) // item_ID
		} else {
			r.skip(4)
		}
		if version >= 1 {
			r.skip(2) // construction method / reserved
		}
		r.skip(2) // data_reference_index
		r.skip(schema.baseOffsetSize)
		extentCount := r.uint16()
		for j := uint16(0); j < extentCount; j++ {
			if version >= 1 && schema.indexSize > 0 {
				r.skip(schema.indexSize)
			}
			r.shift(schema.offsetSize, delta)
			r.skip(schema.lengthSize)
		}
		if r.failed {
			return false
		}
	}
	return !r.failed
}

// fieldReader walks variable-width big-endian fields over a mutable buffer.
// Any overrun latches failed; subsequent reads return zero and do nothing.
type fieldReader struct {
	buf    []byte
	pos    int
	failed bool
}

func (r *fieldReader) ensure(n int) bool {
	if r.failed || r.pos+n > len(r.buf) {
		r.failed = true
		return false
	}
	return true
}

func (r *fieldReader) byte() byte {
	if !r.ensure(1) {
		return 0
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

func (r *fieldReader) uint16() uint16 {
	if !r.ensure(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *fieldReader) uint32() uint32 {
	if !r.ensure(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *fieldReader) skip(n int) {
	if !r.ensure(n) {
		return
	}
	r.pos += n
}

// shift adds delta to the width-byte big-endian integer at the cursor,
// rewriting it in place.
func (r *fieldReader) shift(width int, delta int64) {
	if !r.ensure(width) {
		return
	}
	var v uint64
	for i := 0; i < width; i++ {
		v = v<<8 | uint64(r.buf[r.pos+i])
	}
	v = uint64(int64(v) + delta)
	for i := width - 1; i >= 0; i-- {
		r.buf[r.pos+i] = byte(v)
		v >>= 8
	}
	r.pos += width
}
