package core

import (
	"bytes"
)

// FormatID identifies the formats this tool distinguishes.
type FormatID string

const (
	FmtPNG     FormatID = "png"
	FmtAVIF    FormatID = "avif"
	FmtUnknown FormatID = "unknown"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// DetectFormat sniffs the magic bytes of a file's contents. Extensions lie;
// the pipeline only converts what actually is a PNG.
func DetectFormat(data []byte) FormatID {
	switch {
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(data, pngSignature):
		return FmtPNG
	// AVIF: ftyp box at offset 4 with an avif/avis brand
	case len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")):
		brand := string(data[8:12])
		if brand == "avif" || brand == "avis" {
			return FmtAVIF
		}
		return FmtUnknown
	}
	return FmtUnknown
}
