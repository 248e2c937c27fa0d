package vfs

import (
	"vasset/asseterr"
	"vasset/codec"
)

// EditorRemapFileSystem wraps another mount and transparently remaps
// any path `P` that has a `P + ".vimport"` sidecar to that sidecar's
// recorded `output` path. Directories are never remapped.
type EditorRemapFileSystem struct {
	base FileSystem
}

func NewEditorRemapFileSystem(base FileSystem) *EditorRemapFileSystem {
	return &EditorRemapFileSystem{base: base}
}

func importPathFor(p string) string { return p + ".vimport" }

// remapOutput returns the .vimport's output path for p, whether a
// .vimport was present at all, and any error from a malformed
// sidecar.
func (fs *EditorRemapFileSystem) remapOutput(p string) (output string, remapped bool, err error) {
	importPath := importPathFor(p)
	if !fs.base.Exists(importPath) {
		return "", false, nil
	}
	f, err := fs.base.Open(importPath, Read)
	if err != nil {
		return "", true, err
	}
	defer f.Close()
	desc, err := codec.DecodeVimport(f, importPath)
	if err != nil {
		return "", true, err
	}
	return desc.Output, true, nil
}

func (fs *EditorRemapFileSystem) Exists(p string) bool {
	output, remapped, err := fs.remapOutput(p)
	if err != nil {
		return false
	}
	if remapped {
		return fs.base.Exists(output)
	}
	return fs.base.Exists(p)
}

func (fs *EditorRemapFileSystem) IsFile(p string) bool {
	output, remapped, err := fs.remapOutput(p)
	if err != nil {
		return false
	}
	if remapped {
		return fs.base.IsFile(output)
	}
	return fs.base.IsFile(p)
}

// IsDirectory is never remapped.
func (fs *EditorRemapFileSystem) IsDirectory(p string) bool { return fs.base.IsDirectory(p) }

func (fs *EditorRemapFileSystem) Open(p string, mode FileMode) (File, error) {
	output, remapped, err := fs.remapOutput(p)
	if err != nil {
		return nil, asseterr.NewFs(asseterr.FsInvalidPath, p)
	}
	if !remapped {
		return fs.base.Open(p, mode)
	}
	if !fs.base.Exists(output) {
		return nil, asseterr.NewFs(asseterr.FsNotFound, p)
	}
	return fs.base.Open(output, mode)
}
