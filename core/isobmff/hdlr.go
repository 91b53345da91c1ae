package isobmff

import (
	"os"
)

// HandlerDescription is the name injected into an unnamed hdlr box. Some
// players key on the encoder string, so the converted file advertises the
// reference AVIF library.
const HandlerDescription = "libavif\x00"

// hdlrFixedFields spans the full-box header, pre_defined, handler_type and
// the three reserved words that precede the hdlr name.
const hdlrFixedFields = 24

// InjectHandlerDescription rewrites the file at path so its meta/hdlr box
// carries the libavif handler name, growing the hdlr and meta box sizes and
// shifting every iloc extent offset by the same amount. The write is
// all-or-nothing: on any parse failure, an already populated name, or a
// non-positive growth, the file is left byte-for-byte untouched.
func InjectHandlerDescription(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	patched, changed := injectHandlerDescription(data)
	if !changed {
		return nil
	}
	return os.WriteFile(path, patched, 0644)
}

// injectHandlerDescription computes the fully patched buffer in memory, or
// reports that nothing is to be written.
func injectHandlerDescription(data []byte) ([]byte, bool) {
	metaOff, metaHdr, err := findBox(data, 0, int64(len(data)), "meta")
	if err != nil {
		return nil, false
	}
	meta := data[metaOff : metaOff+metaHdr.Size]
	payload := meta[metaHdr.HeaderSize:]

	hdlrOff, hdlrHdr, err := findBox(payload, fullBoxHeaderSize, int64(len(payload)), "hdlr")
	if err != nil {
		return nil, false
	}
	hdlrPayload := payload[hdlrOff+hdlrHdr.HeaderSize : hdlrOff+hdlrHdr.Size]
	if len(hdlrPayload) < hdlrFixedFields {
		return nil, false
	}
	name := hdlrPayload[hdlrFixedFields:]
	if len(name) > 0 && !(len(name) == 1 && name[0] == 0) {
		// A named handler is never overwritten.
		return nil, false
	}

	newName := []byte(HandlerDescription)
	delta := int64(len(newName) - len(name))
	if delta <= 0 {
		return nil, false
	}

	// Rebuild hdlr with the grown name.
	newHdlr := make([]byte, 0, hdlrHdr.Size+delta)
	newHdlr = append(newHdlr, payload[hdlrOff:hdlrOff+hdlrHdr.HeaderSize]...)
	newHdlr = append(newHdlr, hdlrPayload[:hdlrFixedFields]...)
	newHdlr = append(newHdlr, newName...)
	writeBoxSize(newHdlr, hdlrHdr.HeaderSize, hdlrHdr.Size+delta)

	// Splice it into the meta payload and keep the iloc offsets consistent
	// with the growth.
	newPayload := make([]byte, 0, int64(len(payload))+delta)
	newPayload = append(newPayload, payload[:hdlrOff]...)
	newPayload = append(newPayload, newHdlr...)
	newPayload = append(newPayload, payload[hdlrOff+hdlrHdr.Size:]...)
	newPayload = PatchIlocOffsets(newPayload, delta)

	newMeta := make([]byte, 0, metaHdr.Size+delta)
	newMeta = append(newMeta, meta[:metaHdr.HeaderSize]...)
	newMeta = append(newMeta, newPayload...)
	writeBoxSize(newMeta, metaHdr.HeaderSize, metaHdr.Size+delta)

	out := make([]byte, 0, int64(len(data))+delta)
	out = append(out, data[:metaOff]...)
	out = append(out, newMeta...)
	out = append(out, data[metaOff+metaHdr.Size:]...)
	return out, true
}
