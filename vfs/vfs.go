// Package vfs implements the read-only virtual filesystem views over
// a cooked asset pipeline: a package-backed mount and an editor-time
// mount that transparently remaps a source path to its cooked
// `.vimport` output.
package vfs

import (
	"io"

	"vasset/asseterr"
)

// FileMode is the open mode a FileSystem accepts. Only Read is
// supported; anything else fails with NotSupported.
type FileMode int

const (
	Read FileMode = iota
	Write
	Append
)

// FileSystem is the mount interface shared by every view in this
// package: exists/isFile/isDirectory/open.
type FileSystem interface {
	Exists(p string) bool
	IsFile(p string) bool
	IsDirectory(p string) bool
	Open(p string, mode FileMode) (File, error)
}

// File is a handle to an opened, fully-buffered read-only file.
type File interface {
	io.Reader
	io.Seeker
	Size() int64
	Tell() int64
	ReadAllBytes() ([]byte, error)
	Close() error
}

// memFile is an in-memory File backed by a byte buffer the owning
// view decoded or decompressed up front; dropping it releases the
// buffer, since the file object owns it outright.
type memFile struct {
	data []byte
	pos  int64
}

func newMemFile(data []byte) *memFile { return &memFile{data: data} }

func (f *memFile) Size() int64 { return int64(len(f.data)) }
func (f *memFile) Tell() int64 { return f.pos }

func (f *memFile) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = f.pos
	case io.SeekEnd:
		base = int64(len(f.data))
	}
	newPos := base + offset
	if newPos < 0 || newPos > int64(len(f.data)) {
		return f.pos, asseterr.NewFs(asseterr.FsInvalidPath, "")
	}
	f.pos = newPos
	return f.pos, nil
}

func (f *memFile) ReadAllBytes() ([]byte, error) {
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out, nil
}

// Write writes nothing and always fails with FsNotSupported: every
// view in this package is read-only and open never returns a
// write-mode handle. Write is not part of the File interface.
func (f *memFile) Write(p []byte) (int, error) { return 0, asseterr.NewFs(asseterr.FsNotSupported, "") }

func (f *memFile) Close() error { return nil }
