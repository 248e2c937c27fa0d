// Package vpk implements the content-addressed PKG archive format: a
// fixed header, a hash-bucketed entry index, a string table, and a
// data blob, with per-entry optional zstd compression.
package vpk

import (
	"bytes"
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"vasset/asseterr"
)

const (
	magic          = "VPK\x00"
	formatVersion  = uint32(1)
	entryRecordLen = 48
	headerLen      = 4 + 4 + 4 + 4 + 8 + 8 + 8 + 8 + 8
)

// Compression is the per-entry payload compression code.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionZstd Compression = 1
)

// Item is one input to Write: a logical path, its raw bytes, and
// whether the writer is allowed to compress it.
type Item struct {
	Path          string
	Data          []byte
	AllowCompress bool
}

type entry struct {
	pathHash64 uint64
	pathOffset uint32
	pathSize   uint32
	dataOffset uint64
	packedSize uint64
	rawSize    uint64
	compress   Compression
}

// alreadyCompressedExts are extensions the writer never re-compresses
// because their payload is already in a compressed container.
var alreadyCompressedExts = map[string]bool{
	".ktx2": true,
	".dds":  true,
	".jpg":  true,
	".jpeg": true,
}

func pathHash64(p string) uint64 { return xxh3.HashString(p) }

// looksAlreadyCompressed implements the writer's "already compressed"
// predicate: either the path extension names a compressed container,
// or the payload is a VMESH container whose own flags bit says it is
// already zstd-compressed.
func looksAlreadyCompressed(logicalPath string, data []byte) bool {
	if ext := extLower(logicalPath); alreadyCompressedExts[ext] {
		return true
	}
	const meshMagic = "VMESH"
	if len(data) < 16+4+4 {
		return false
	}
	var padded [16]byte
	copy(padded[:], meshMagic)
	if !bytes.Equal(data[:16], padded[:]) {
		return false
	}
	flags := binary.LittleEndian.Uint32(data[20:24])
	return flags&1 == 1
}

func extLower(p string) string {
	dot := -1
	for i := len(p) - 1; i >= 0 && p[i] != '/'; i-- {
		if p[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return ""
	}
	out := make([]byte, len(p)-dot)
	for i, c := range []byte(p[dot:]) {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func wrapIO(path string, err error) error { return asseterr.Wrap(asseterr.IOError, path, err) }
