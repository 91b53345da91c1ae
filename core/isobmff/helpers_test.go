package isobmff

import (
	"encoding/binary"
)

// box frames a payload with a 32-bit size header.
func box(typ string, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(out)))
	copy(out[4:8], typ)
	copy(out[8:], payload)
	return out
}

// wideBox frames a payload with a 64-bit extended size header.
func wideBox(typ string, payload []byte) []byte {
	out := make([]byte, 16+len(payload))
	binary.BigEndian.PutUint32(out[0:4], 1)
	copy(out[4:8], typ)
	binary.BigEndian.PutUint64(out[8:16], uint64(len(out)))
	copy(out[16:], payload)
	return out
}

// fullBox frames a full box: version, flags, then the body.
func fullBox(typ string, version byte, body []byte) []byte {
	payload := append([]byte{version, 0, 0, 0}, body...)
	return box(typ, payload)
}

// hdlrBox builds a pict handler box with the given trailing name bytes.
func hdlrBox(name []byte) []byte {
	body := make([]byte, 0, 20+len(name))
	body = append(body, 0, 0, 0, 0) // pre_defined
	body = append(body, "pict"...)  // handler_type
	body = append(body, make([]byte, 12)...)
	body = append(body, name...)
	return fullBox("hdlr", 0, body)
}

// ilocV0 builds a version-0 iloc with 4-byte offset and length fields, one
// extent per item.
func ilocV0(extents ...[2]uint32) []byte {
	body := []byte{
		0x44, // offset_size=4, length_size=4
		0x00, // base_offset_size=0, index_size=0
	}
	count := make([]byte, 2)
	binary.BigEndian.PutUint16(count, uint16(len(extents)))
	body = append(body, count...)
	for i, ext := range extents {
		entry := make([]byte, 2+2+2+4+4)
		binary.BigEndian.PutUint16(entry[0:2], uint16(i+1)) // item_ID
		binary.BigEndian.PutUint16(entry[2:4], 0)           // data_reference_index
		binary.BigEndian.PutUint16(entry[4:6], 1)           // extent_count
		binary.BigEndian.PutUint32(entry[6:10], ext[0])     // extent_offset
		binary.BigEndian.PutUint32(entry[10:14], ext[1])    // extent_length
		body = append(body, entry...)
	}
	return fullBox("iloc", 0, body)
}

// ilocV1 builds a version-1 iloc with construction-method fields and 4-byte
// extent indexes.
func ilocV1(extents ...[2]uint32) []byte {
	body := []byte{
		0x44, // offset_size=4, length_size=4
		0x04, // base_offset_size=0, index_size=4
	}
	count := make([]byte, 2)
	binary.BigEndian.PutUint16(count, uint16(len(extents)))
	body = append(body, count...)
	for i, ext := range extents {
		entry := make([]byte, 2+2+2+2+4+4+4)
		binary.BigEndian.PutUint16(entry[0:2], uint16(i+1))  // item_ID
		binary.BigEndian.PutUint16(entry[2:4], 0)            // construction_method
		binary.BigEndian.PutUint16(entry[4:6], 0)            // data_reference_index
		binary.BigEndian.PutUint16(entry[6:8], 1)            // extent_count
		binary.BigEndian.PutUint32(entry[8:12], 0xABCD)      // extent_index
		binary.BigEndian.PutUint32(entry[12:16], ext[0])     // extent_offset
		binary.BigEndian.PutUint32(entry[16:20], ext[1])     // extent_length
		body = append(body, entry...)
	}
	return fullBox("iloc", 1, body)
}

// ilocV2 builds a version-2 iloc with 32-bit item count and item IDs, one
// extent per item and no extent indexes.
func ilocV2(extents ...[2]uint32) []byte {
	body := []byte{
		0x44, // offset_size=4, length_size=4
		0x00, // base_offset_size=0, index_size=0
	}
	count := make([]byte, 4)
	binary.BigEndian.PutUint32(count, uint32(len(extents)))
	body = append(body, count...)
	for i, ext := range extents {
		entry := make([]byte, 4+2+2+2+4+4)
		binary.BigEndian.PutUint32(entry[0:4], uint32(i+1)) // item_ID
		binary.BigEndian.PutUint16(entry[4:6], 0)           // construction_method
		binary.BigEndian.PutUint16(entry[6:8], 0)           // data_reference_index
		binary.BigEndian.PutUint16(entry[8:10], 1)          // extent_count
		binary.BigEndian.PutUint32(entry[10:14], ext[0])    // extent_offset
		binary.BigEndian.PutUint32(entry[14:18], ext[1])    // extent_length
		body = append(body, entry...)
	}
	return fullBox("iloc", 2, body)
}

// metaPayload assembles a meta full-box payload (version/flags prefix plus
// nested boxes).
func metaPayload(boxes ...[]byte) []byte {
	payload := []byte{0, 0, 0, 0}
	for _, b := range boxes {
		payload = append(payload, b...)
	}
	return payload
}

// buildAvif assembles a minimal AVIF-shaped file: ftyp, meta with the given
// nested boxes, and an mdat.
func buildAvif(metaBoxes ...[]byte) []byte {
	var out []byte
	out = append(out, box("ftyp", []byte("avif\x00\x00\x00\x00avifmif1"))...)
	meta := metaPayload(metaBoxes...)
	out = append(out, box("meta", meta)...)
	out = append(out, box("mdat", []byte("pretend image payload"))...)
	return out
}
