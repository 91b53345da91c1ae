package codec

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Avifenc shells out to libavif's avifenc binary.
type Avifenc struct {
	Bin string
}

func (a *Avifenc) Name() string { return "avifenc" }

func (a *Avifenc) Encode(pngData, exifBlob []byte, quality int, outPath string) error {
	dir, err := os.MkdirTemp("", "png2avif-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "in.png")
	if err := os.WriteFile(inPath, pngData, 0600); err != nil {
		return err
	}

	args := []string{"-q", strconv.Itoa(quality)}
	if len(exifBlob) > 0 {
		exifPath := filepath.Join(dir, "comment.exif")
		if err := os.WriteFile(exifPath, exifBlob, 0600); err != nil {
			return err
		}
		args = append(args, "--exif", exifPath)
	}
	args = append(args, inPath, outPath)

	cmd := exec.Command(a.Bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("avifenc: %v: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
