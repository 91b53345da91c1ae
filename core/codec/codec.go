// Package codec produces AVIF files from PNG input. The pixel re-encoding is
// delegated: either to the libavif avifenc binary or to an embedded encoder.
package codec

import (
	"os/exec"
)

// Encoder writes an AVIF rendition of pngData to outPath. exifBlob, when
// non-empty, is attached on the codec's metadata path.
type Encoder interface {
	Encode(pngData, exifBlob []byte, quality int, outPath string) error
	Name() string
}

// Detect returns the preferred encoder for this system: avifenc when it is on
// PATH, since it can embed EXIF metadata, otherwise the embedded encoder.
func Detect() Encoder {
	if bin, err := exec.LookPath("avifenc"); err == nil {
		return &Avifenc{Bin: bin}
	}
	return &Native{}
}
