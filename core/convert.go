package core

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/js4000all/tool-png2avif/core/exifenc"
	"github.com/js4000all/tool-png2avif/core/isobmff"
	"github.com/js4000all/tool-png2avif/core/pngmeta"
)

// Convert turns one PNG into an AVIF next to it and removes the source.
// Metadata preservation is best-effort on both ends: a PNG with no readable
// parameters chunk, and an AVIF whose container resists patching, still
// convert. Only read, encode and delete failures fail the file.
func Convert(pngPath string, opts Options) (Result, error) {
	res := Result{PNG: pngPath, AVIF: AvifPath(pngPath)}

	data, err := os.ReadFile(pngPath)
	if err != nil {
		return res, err
	}
	if format := DetectFormat(data); format != FmtPNG {
		return res, fmt.Errorf("%s: not a PNG (%s)", pngPath, format)
	}

	var exifBlob []byte
	if params, enc, ok := pngmeta.ExtractParameters(bytes.NewReader(data)); ok {
		res.Parameters = params
		exifBlob = exifenc.Build(exifenc.UserComment(params))
		log.Debug().Str("file", pngPath).Str("chunk", string(enc)).Msg("parameters chunk found")
	}

	if opts.DryRun {
		res.Converted = true
		return res, nil
	}

	if err := opts.Encoder.Encode(data, exifBlob, opts.Quality, res.AVIF); err != nil {
		return res, err
	}

	// Advisory: an unpatchable container must not fail the conversion.
	if err := isobmff.InjectHandlerDescription(res.AVIF); err != nil {
		log.Debug().Err(err).Str("file", res.AVIF).Msg("handler description not injected")
	}

	if err := os.Remove(pngPath); err != nil {
		return res, err
	}
	res.Converted = true
	return res, nil
}
