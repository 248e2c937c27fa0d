package vfs

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"vasset/asseterr"
	"vasset/vpk"
)

func writeTestPackage(t *testing.T) string {
	t.Helper()
	pkgPath := filepath.Join(t.TempDir(), "content.pkg")
	items := []vpk.Item{
		{Path: "res://sprites/a.png", Data: []byte{1, 2, 3, 4}, AllowCompress: true},
		{Path: "res://meshes/b.vmesh", Data: make([]byte, 256), AllowCompress: true},
	}
	if err := vpk.Write(pkgPath, items, 3); err != nil {
		t.Fatalf("vpk.Write: %v", err)
	}
	return pkgPath
}

func TestPackageFileSystemOpenAndRead(t *testing.T) {
	fs, err := OpenPackage(writeTestPackage(t))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}

	if !fs.Exists("res://sprites/a.png") || !fs.IsFile("res://sprites/a.png") {
		t.Error("packed path should exist and be a file")
	}
	if fs.IsDirectory("res://sprites") {
		t.Error("a package namespace is flat; IsDirectory must always be false")
	}
	if fs.Exists("res://missing.png") {
		t.Error("unpacked path should not exist")
	}

	f, err := fs.Open("res://sprites/a.png", Read)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	if f.Size() != 4 {
		t.Errorf("Size = %d, want 4", f.Size())
	}
	got, err := f.ReadAllBytes()
	if err != nil || string(got) != string([]byte{1, 2, 3, 4}) {
		t.Errorf("ReadAllBytes = % x, %v", got, err)
	}

	// Seek/Tell/Read over the in-memory buffer.
	if _, err := f.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if f.Tell() != 2 {
		t.Errorf("Tell = %d, want 2", f.Tell())
	}
	buf := make([]byte, 2)
	if n, err := f.Read(buf); n != 2 || err != nil {
		t.Fatalf("Read = %d, %v", n, err)
	}
	if buf[0] != 3 || buf[1] != 4 {
		t.Errorf("Read after seek = % x, want 03 04", buf)
	}
}

func TestPackageFileSystemLeadingSlash(t *testing.T) {
	fs, err := OpenPackage(writeTestPackage(t))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	f, err := fs.Open("/res://sprites/a.png", Read)
	if err != nil {
		t.Fatalf("Open with leading slash: %v", err)
	}
	defer f.Close()
	got, _ := f.ReadAllBytes()
	if string(got) != string([]byte{1, 2, 3, 4}) {
		t.Errorf("leading-slash read = % x", got)
	}
}

func TestPackageFileSystemRejectsWrites(t *testing.T) {
	fs, err := OpenPackage(writeTestPackage(t))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	for _, mode := range []FileMode{Write, Append} {
		_, err := fs.Open("res://sprites/a.png", mode)
		var fsErr *asseterr.FsError
		if !errors.As(err, &fsErr) || fsErr.Code != asseterr.FsNotSupported {
			t.Errorf("Open(mode %d) = %v, want FsNotSupported", mode, err)
		}
	}
}

func TestPackageFileSystemMissingFileIsNotFound(t *testing.T) {
	fs, err := OpenPackage(writeTestPackage(t))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	_, err = fs.Open("res://missing.png", Read)
	var fsErr *asseterr.FsError
	if !errors.As(err, &fsErr) || fsErr.Code != asseterr.FsNotFound {
		t.Errorf("Open missing = %v, want FsNotFound", err)
	}

	// Concurrent opens each get an independent buffer.
	a, err := fs.Open("res://sprites/a.png", Read)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b, err := fs.Open("res://sprites/a.png", Read)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()
	defer b.Close()
	if _, err := a.Seek(3, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if b.Tell() != 0 {
		t.Error("independent handles must not share a cursor")
	}
}
