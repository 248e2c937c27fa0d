package vpk

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/DataDog/zstd"

	"vasset/asseterr"
)

// Write cooks items into outPath's PKG archive. Items are stored in
// the order given; within that order, data ranges never overlap.
func Write(outPath string, items []Item, zstdLevel int) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapIO(outPath, err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return wrapIO(outPath, err)
	}
	defer f.Close()

	// Reserve header space with a placeholder; it is rewritten once
	// final offsets are known.
	if _, err := f.Write(make([]byte, headerLen)); err != nil {
		return wrapIO(outPath, err)
	}

	w := bufio.NewWriter(f)
	entries := make([]entry, 0, len(items))
	var stringTable bytes.Buffer
	dataOffset := uint64(headerLen)

	for _, it := range items {
		compress := it.AllowCompress && len(it.Data) > 0 && !looksAlreadyCompressed(it.Path, it.Data)
		var payload []byte
		comp := CompressionNone
		if compress {
			c, err := zstd.CompressLevel(nil, it.Data, zstdLevel)
			if err != nil {
				return asseterr.Wrap(asseterr.IOError, it.Path, err)
			}
			payload = c
			comp = CompressionZstd
		} else {
			payload = it.Data
		}

		pathOffset := uint32(stringTable.Len())
		pathSize := uint32(len(it.Path))
		stringTable.WriteString(it.Path)
		stringTable.WriteByte(0)

		e := entry{
			pathHash64: pathHash64(it.Path),
			pathOffset: pathOffset,
			pathSize:   pathSize,
			dataOffset: dataOffset,
			packedSize: uint64(len(payload)),
			rawSize:    uint64(len(it.Data)),
			compress:   comp,
		}
		entries = append(entries, e)

		if _, err := w.Write(payload); err != nil {
			return wrapIO(outPath, err)
		}
		dataOffset += uint64(len(payload))
	}
	if err := w.Flush(); err != nil {
		return wrapIO(outPath, err)
	}

	stringOffset := dataOffset
	if _, err := f.Write(stringTable.Bytes()); err != nil {
		return wrapIO(outPath, err)
	}
	stringSize := uint64(stringTable.Len())

	indexOffset := stringOffset + stringSize
	for _, e := range entries {
		if err := writeEntry(f, e); err != nil {
			return wrapIO(outPath, err)
		}
	}
	indexSize := uint64(len(entries)) * entryRecordLen

	hdr := header{
		fileCount:    uint32(len(entries)),
		indexOffset:  indexOffset,
		indexSize:    indexSize,
		stringOffset: stringOffset,
		stringSize:   stringSize,
		dataOffset:   headerLen,
	}
	if _, err := f.Seek(0, 0); err != nil {
		return wrapIO(outPath, err)
	}
	return writeHeader(f, hdr)
}

type header struct {
	fileCount    uint32
	indexOffset  uint64
	indexSize    uint64
	stringOffset uint64
	stringSize   uint64
	dataOffset   uint64
}

func writeHeader(w *os.File, h header) error {
	buf := make([]byte, headerLen)
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], formatVersion)
	binary.LittleEndian.PutUint32(buf[8:12], 0) // flags, reserved
	binary.LittleEndian.PutUint32(buf[12:16], h.fileCount)
	binary.LittleEndian.PutUint64(buf[16:24], h.indexOffset)
	binary.LittleEndian.PutUint64(buf[24:32], h.indexSize)
	binary.LittleEndian.PutUint64(buf[32:40], h.stringOffset)
	binary.LittleEndian.PutUint64(buf[40:48], h.stringSize)
	binary.LittleEndian.PutUint64(buf[48:56], h.dataOffset)
	_, err := w.Write(buf)
	return err
}

func writeEntry(w *os.File, e entry) error {
	buf := make([]byte, entryRecordLen)
	binary.LittleEndian.PutUint64(buf[0:8], e.pathHash64)
	binary.LittleEndian.PutUint32(buf[8:12], e.pathOffset)
	binary.LittleEndian.PutUint32(buf[12:16], e.pathSize)
	binary.LittleEndian.PutUint64(buf[16:24], e.dataOffset)
	binary.LittleEndian.PutUint64(buf[24:32], e.packedSize)
	binary.LittleEndian.PutUint64(buf[32:40], e.rawSize)
	buf[40] = byte(e.compress)
	_, err := w.Write(buf)
	return err
}
