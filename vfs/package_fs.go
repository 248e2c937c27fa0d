package vfs

import (
	"vasset/asseterr"
	"vasset/vpk"
)

// PackageFileSystem is a read-only mount backed by an opened PKG
// archive. Its logical namespace is flat: isDirectory always returns
// false.
type PackageFileSystem struct {
	pkgPath string
	reader  *vpk.Reader
}

// OpenPackage opens pkgPath and returns a mount over it.
func OpenPackage(pkgPath string) (*PackageFileSystem, error) {
	r, err := vpk.Open(pkgPath)
	if err != nil {
		return nil, err
	}
	return &PackageFileSystem{pkgPath: pkgPath, reader: r}, nil
}

func (fs *PackageFileSystem) Exists(p string) bool      { return fs.reader.Exists(p) }
func (fs *PackageFileSystem) IsFile(p string) bool      { return fs.reader.Exists(p) }
func (fs *PackageFileSystem) IsDirectory(p string) bool { return false }

// Open returns an independent in-memory File for p. Only Read mode is
// supported; anything else is NotSupported.
func (fs *PackageFileSystem) Open(p string, mode FileMode) (File, error) {
	if mode != Read {
		return nil, asseterr.NewFs(asseterr.FsNotSupported, p)
	}
	data, err := fs.reader.ReadFile(p)
	if err != nil {
		return nil, asseterr.FromAsset(err)
	}
	return newMemFile(data), nil
}
