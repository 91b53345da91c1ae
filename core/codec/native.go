package codec

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/avif"
	"github.com/rs/zerolog/log"
)

// Native encodes with an embedded libavif build, so converting works even
// without avifenc installed. It has no metadata path, so an EXIF blob is
// dropped rather than failing the conversion.
type Native struct{}

func (n *Native) Name() string { return "native" }

func (n *Native) Encode(pngData, exifBlob []byte, quality int, outPath string) error {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return fmt.Errorf("decoding PNG: %w", err)
	}
	if len(exifBlob) > 0 {
		log.Debug().Str("file", outPath).Msg("embedded encoder has no EXIF path, comment dropped")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := avif.Encode(f, img, avif.Options{Quality: quality, QualityAlpha: quality}); err != nil {
		f.Close()
		os.Remove(outPath)
		return fmt.Errorf("encoding AVIF: %w", err)
	}
	return f.Close()
}
