package pngmeta

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
)

// rawChunk is an un-framed chunk used by the test builders.
type rawChunk struct {
	typ  string
	data []byte
}

// buildPNG assembles a minimal PNG carrying the given chunks between IHDR
// and IDAT.
func buildPNG(chunks ...rawChunk) []byte {
	buf := append([]byte{}, 0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A)
	// 1x1 8-bit grayscale IHDR
	buf = appendChunk(buf, "IHDR", []byte{
		0, 0, 0, 1,
		0, 0, 0, 1,
		8, 0, 0, 0, 0,
	})
	for _, c := range chunks {
		buf = appendChunk(buf, c.typ, c.data)
	}
	// Stored-block zlib stream for a single zero-filtered row.
	buf = appendChunk(buf, "IDAT", []byte{
		0x78, 0x01, 0x01, 0x02, 0x00, 0xFD, 0xFF,
		0x00, 0x00,
		0x00, 0x01, 0x00, 0x01,
	})
	buf = appendChunk(buf, "IEND", nil)
	return buf
}

func appendChunk(buf []byte, typ string, data []byte) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, typ...)
	buf = append(buf, data...)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	crcBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(crcBytes, crc.Sum32())
	return append(buf, crcBytes...)
}

func textChunk(keyword string, value []byte) rawChunk {
	data := append([]byte(keyword+"\x00"), value...)
	return rawChunk{typ: "tEXt", data: data}
}

func compressedTextChunk(keyword string, method byte, value []byte) rawChunk {
	data := append([]byte(keyword+"\x00"), method)
	data = append(data, deflate(value)...)
	return rawChunk{typ: "zTXt", data: data}
}

func intlTextChunk(keyword string, compressed bool, method byte, value []byte) rawChunk {
	flag := byte(0)
	body := value
	if compressed {
		flag = 1
		body = deflate(value)
	}
	data := append([]byte(keyword+"\x00"), flag, method)
	data = append(data, []byte("\x00\x00")...) // empty language tag, translated keyword
	data = append(data, body...)
	return rawChunk{typ: "iTXt", data: data}
}

func deflate(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}
