package vfs

import (
	"os"
	"path/filepath"

	"vasset/asseterr"
)

// OSFileSystem is a read-only mount over the local disk, rooted at
// Root. It is the typical base for EditorRemapFileSystem in an editor
// process, and exists purely so that wrapper can stay agnostic of
// where its base actually stores bytes.
type OSFileSystem struct {
	Root string
}

func NewOSFileSystem(root string) *OSFileSystem { return &OSFileSystem{Root: root} }

func (fs *OSFileSystem) full(p string) string { return filepath.Join(fs.Root, p) }

func (fs *OSFileSystem) Exists(p string) bool {
	_, err := os.Stat(fs.full(p))
	return err == nil
}

func (fs *OSFileSystem) IsFile(p string) bool {
	info, err := os.Stat(fs.full(p))
	return err == nil && !info.IsDir()
}

func (fs *OSFileSystem) IsDirectory(p string) bool {
	info, err := os.Stat(fs.full(p))
	return err == nil && info.IsDir()
}

func (fs *OSFileSystem) Open(p string, mode FileMode) (File, error) {
	if mode != Read {
		return nil, asseterr.NewFs(asseterr.FsNotSupported, p)
	}
	data, err := os.ReadFile(fs.full(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, asseterr.NewFs(asseterr.FsNotFound, p)
		}
		return nil, asseterr.WrapFs(asseterr.FsIOError, p, err)
	}
	return newMemFile(data), nil
}
