// Package core drives the per-file PNG to AVIF conversion pipeline.
package core

import (
	"path/filepath"

	"github.com/js4000all/tool-png2avif/core/codec"
)

// Options controls a conversion run. One Options value is shared read-only by
// every worker.
type Options struct {
	// Quality is the AVIF quality, 0-100.
	Quality int
	// DryRun goes through reading and extraction but writes and deletes
	// nothing.
	DryRun bool
	// Encoder performs the pixel re-encoding.
	Encoder codec.Encoder
}

// Result reports one file's outcome.
type Result struct {
	PNG       string
	AVIF      string
	Converted bool
	// Parameters is the extracted generation-settings string, empty when
	// the source carried none.
	Parameters string
}

// AvifPath returns the sibling .avif path for a PNG file.
func AvifPath(pngPath string) string {
	ext := filepath.Ext(pngPath)
	return pngPath[:len(pngPath)-len(ext)] + ".avif"
}
