package vpk

import (
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"

	"vasset/asseterr"
)

// Reader is an in-memory, read-only view over a PKG archive's header,
// entry index, and string table. It does not hold the data blob;
// ReadFile reopens the archive file per call.
type Reader struct {
	path    string
	entries []entry
	strtab  []byte
	buckets map[uint64][]int
}

// Open reads path's header, entry index, and string table, and builds
// the hash-bucket map used by ReadFile.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, asseterr.Wrap(asseterr.NotFound, path, err)
		}
		return nil, wrapIO(path, err)
	}
	defer f.Close()

	hdrBuf := make([]byte, headerLen)
	if _, err := io.ReadFull(f, hdrBuf); err != nil {
		return nil, wrapIO(path, err)
	}
	if string(hdrBuf[0:4]) != magic {
		return nil, asseterr.New(asseterr.InvalidFormat, path)
	}
	version := binary.LittleEndian.Uint32(hdrBuf[4:8])
	if version != formatVersion {
		return nil, asseterr.New(asseterr.InvalidFormat, path)
	}
	fileCount := binary.LittleEndian.Uint32(hdrBuf[12:16])
	indexOffset := binary.LittleEndian.Uint64(hdrBuf[16:24])
	indexSize := binary.LittleEndian.Uint64(hdrBuf[24:32])
	stringOffset := binary.LittleEndian.Uint64(hdrBuf[32:40])
	stringSize := binary.LittleEndian.Uint64(hdrBuf[40:48])

	if indexSize != uint64(fileCount)*entryRecordLen {
		return nil, asseterr.New(asseterr.InvalidFormat, path)
	}

	indexBuf := make([]byte, indexSize)
	if _, err := f.ReadAt(indexBuf, int64(indexOffset)); err != nil && err != io.EOF {
		return nil, wrapIO(path, err)
	}
	entries := make([]entry, fileCount)
	for i := range entries {
		rec := indexBuf[i*entryRecordLen : (i+1)*entryRecordLen]
		entries[i] = entry{
			pathHash64: binary.LittleEndian.Uint64(rec[0:8]),
			pathOffset: binary.LittleEndian.Uint32(rec[8:12]),
			pathSize:   binary.LittleEndian.Uint32(rec[12:16]),
			dataOffset: binary.LittleEndian.Uint64(rec[16:24]),
			packedSize: binary.LittleEndian.Uint64(rec[24:32]),
			rawSize:    binary.LittleEndian.Uint64(rec[32:40]),
			compress:   Compression(rec[40]),
		}
	}

	strtab := make([]byte, stringSize)
	if _, err := f.ReadAt(strtab, int64(stringOffset)); err != nil && err != io.EOF {
		return nil, wrapIO(path, err)
	}

	buckets := make(map[uint64][]int, fileCount)
	for i, e := range entries {
		buckets[e.pathHash64] = append(buckets[e.pathHash64], i)
	}

	return &Reader{path: path, entries: entries, strtab: strtab, buckets: buckets}, nil
}

func (r *Reader) entryPath(e entry) string {
	if uint64(e.pathOffset)+uint64(e.pathSize) > uint64(len(r.strtab)) {
		return ""
	}
	return string(r.strtab[e.pathOffset : e.pathOffset+e.pathSize])
}

// ReadFile looks up logicalPath (a single leading '/' is stripped)
// and returns its decompressed bytes.
func (r *Reader) ReadFile(logicalPath string) ([]byte, error) {
	key := strings.TrimPrefix(logicalPath, "/")
	hash := pathHash64(key)

	var match *entry
	for _, idx := range r.buckets[hash] {
		if r.entryPath(r.entries[idx]) == key {
			e := r.entries[idx]
			match = &e
			break
		}
	}
	if match == nil {
		return nil, asseterr.New(asseterr.NotFound, logicalPath)
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, wrapIO(r.path, err)
	}
	defer f.Close()

	packed := make([]byte, match.packedSize)
	if _, err := f.ReadAt(packed, int64(match.dataOffset)); err != nil && err != io.EOF {
		return nil, wrapIO(logicalPath, err)
	}

	switch match.compress {
	case CompressionNone:
		return packed, nil
	case CompressionZstd:
		raw, err := zstd.Decompress(make([]byte, 0, match.rawSize), packed)
		if err != nil {
			return nil, asseterr.Wrap(asseterr.InvalidFormat, logicalPath, err)
		}
		if uint64(len(raw)) != match.rawSize {
			return nil, asseterr.New(asseterr.InvalidFormat, logicalPath)
		}
		return raw, nil
	default:
		return nil, asseterr.New(asseterr.NotSupported, logicalPath)
	}
}

// Exists reports whether logicalPath (leading '/' stripped) has an
// entry in the archive.
func (r *Reader) Exists(logicalPath string) bool {
	key := strings.TrimPrefix(logicalPath, "/")
	hash := pathHash64(key)
	for _, idx := range r.buckets[hash] {
		if r.entryPath(r.entries[idx]) == key {
			return true
		}
	}
	return false
}
