// Command png2avif recursively converts PNG files under a target path (or a
// single PNG file) to AVIF, preserving the Stable Diffusion parameters text
// chunk as an EXIF UserComment and removing each source PNG on success.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/js4000all/tool-png2avif/core"
	"github.com/js4000all/tool-png2avif/core/codec"
)

func main() {
	os.Exit(run())
}

func run() int {
	verbose := flag.Bool("verbose", false, "enable per-file converted/removed logs")
	dryrun := flag.Bool("dryrun", false, "disable AVIF write and PNG deletion while preserving normal flow")
	quality := flag.Int("quality", 80, "AVIF quality (0-100)")
	jobs := flag.Int("jobs", 1, "number of parallel workers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: png2avif [-verbose] [-dryrun] [-quality N] [-jobs N] <target>")
		return 2
	}
	target := flag.Arg(0)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(logLevel(*verbose))

	if _, err := os.Stat(target); err != nil {
		fmt.Fprintf(os.Stderr, "png2avif: %v\n", err)
		return 2
	}
	if *quality < 0 || *quality > 100 {
		fmt.Fprintln(os.Stderr, "png2avif: quality must be between 0 and 100")
		return 2
	}
	if *jobs < 1 {
		fmt.Fprintln(os.Stderr, "png2avif: jobs must be at least 1")
		return 2
	}

	scan := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	files, err := collectPNGs(target, func() { scan.Add(1) })
	scan.Finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "png2avif: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		return 1
	}

	opts := core.Options{
		Quality: *quality,
		DryRun:  *dryrun,
		Encoder: codec.Detect(),
	}
	log.Debug().Str("encoder", opts.Encoder.Name()).Int("files", len(files)).Msg("starting conversion")

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var g errgroup.Group
	g.SetLimit(*jobs)
	for _, f := range files {
		f := f
		g.Go(func() error {
			res, err := core.Convert(f, opts)
			bar.Add(1)
			if err != nil {
				log.Debug().Err(err).Str("file", f).Msg("conversion failed")
				return nil
			}
			if res.Converted {
				log.Info().Msgf("converted: %s -> %s", res.PNG, res.AVIF)
				log.Info().Msgf("removed: %s", res.PNG)
			}
			return nil
		})
	}
	g.Wait()
	bar.Finish()
	return 0
}

// logLevel maps -verbose to the zerolog level: converted/removed lines are
// Info, and failures are silent by design, so the default shows errors only.
func logLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.InfoLevel
	}
	return zerolog.ErrorLevel
}

// collectPNGs returns the target itself when it is a .png file, or every
// *.png under it when it is a directory. tick, when non-nil, is called once
// per directory entry visited, for scan progress.
func collectPNGs(target string, tick func()) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if tick != nil {
			tick()
		}
		if strings.EqualFold(filepath.Ext(target), ".png") {
			return []string{target}, nil
		}
		return nil, nil
	}
	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if tick != nil {
			tick()
		}
		if strings.EqualFold(filepath.Ext(path), ".png") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
