// Package pngmeta reads ancillary text metadata from PNG byte streams.
package pngmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

var signature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Chunk is one PNG chunk. The trailing CRC is consumed by the scanner but
// never verified.
type Chunk struct {
	Type string
	Data []byte
}

// Scanner walks a PNG stream chunk by chunk. It is forward-only: once Next
// returns false the scanner is exhausted and cannot be restarted.
type Scanner struct {
	r       io.Reader
	cur     Chunk
	err     error
	started bool
	done    bool
}

// NewScanner returns a Scanner positioned before the PNG signature.
func NewScanner(r io.Reader) *Scanner { return &Scanner{r: r} }

// Next advances to the next chunk. It returns false after the IEND chunk has
// been delivered, at a clean end of stream, or on a framing error (reported
// by Err).
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		sig := make([]byte, 8)
		if _, err := io.ReadFull(s.r, sig); err != nil {
			s.fail(fmt.Errorf("reading PNG signature: %w", err))
			return false
		}
		if !bytes.Equal(sig, signature) {
			s.fail(fmt.Errorf("not a valid PNG"))
			return false
		}
	}

	hdr := make([]byte, 8)
	if _, err := io.ReadFull(s.r, hdr); err != nil {
		if err == io.EOF {
			// Stream ended on a chunk boundary without IEND.
			s.done = true
		} else {
			s.fail(fmt.Errorf("reading chunk header: %w", err))
		}
		return false
	}
	length := binary.BigEndian.Uint32(hdr[0:4])
	typ := string(hdr[4:8])

	data := make([]byte, length)
	if _, err := io.ReadFull(s.r, data); err != nil {
		s.fail(fmt.Errorf("reading %s payload: %w", typ, err))
		return false
	}
	crc := make([]byte, 4)
	if _, err := io.ReadFull(s.r, crc); err != nil {
		s.fail(fmt.Errorf("reading %s CRC: %w", typ, err))
		return false
	}

	s.cur = Chunk{Type: typ, Data: data}
	if typ == "IEND" {
		s.done = true
	}
	return true
}

// Chunk returns the chunk read by the last successful call to Next.
func (s *Scanner) Chunk() Chunk { return s.cur }

// Err returns the first framing error encountered, or nil when the scan
// terminated cleanly.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) fail(err error) {
	s.err = err
	s.done = true
}
