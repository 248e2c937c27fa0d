// Package codec implements the binary/INI codecs for cooked assets:
// VTEXTURE, VMATERIAL, VMESH, and the `.vimport` INI dialect. All
// integers are little-endian; magics are ASCII, zero-padded to 16
// bytes.
package codec

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"vasset/asseterr"
	"vasset/id"
)

const magicSize = 16

func padMagic(s string) []byte {
	b := make([]byte, magicSize)
	copy(b, s)
	return b
}

func writeMagic(w io.Writer, s string) error {
	_, err := w.Write(padMagic(s))
	return err
}

// readMagic reads 16 bytes and compares them against the zero-padded
// form of want, rejecting the file immediately on mismatch.
func readMagic(r io.Reader, want string, path string) error {
	buf := make([]byte, magicSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return asseterr.Wrap(asseterr.IOError, path, err)
	}
	if !bytes.Equal(buf, padMagic(want)) {
		return asseterr.New(asseterr.InvalidFormat, path)
	}
	return nil
}

func writeU32(w io.Writer, v uint32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeU64(w io.Writer, v uint64) error { return binary.Write(w, binary.LittleEndian, v) }
func writeF32(w io.Writer, v float32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeBool32(w io.Writer, v bool) error {
	var u uint32
	if v {
		u = 1
	}
	return writeU32(w, u)
}

func readU32(r io.Reader, path string) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, asseterr.Wrap(asseterr.IOError, path, err)
	}
	return v, nil
}

func readU64(r io.Reader, path string) (uint64, error) {
	var v uint64
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, asseterr.Wrap(asseterr.IOError, path, err)
	}
	return v, nil
}

func readF32(r io.Reader, path string) (float32, error) {
	var v float32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, asseterr.Wrap(asseterr.IOError, path, err)
	}
	return v, nil
}

func readBool32(r io.Reader, path string) (bool, error) {
	v, err := readU32(r, path)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func writeId(w io.Writer, v id.Id) error {
	_, err := w.Write(v[:])
	return err
}

func readId(r io.Reader, path string) (id.Id, error) {
	var v id.Id
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return id.Nil, asseterr.Wrap(asseterr.IOError, path, err)
	}
	return v, nil
}

// writeBytes writes a u32 length prefix followed by the bytes, used
// for cooked texture payloads, names, and params.
func writeBytes(w io.Writer, b []byte) error {
	if err := writeU32(w, uint32(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}

// readBytes reads a u32 length prefix and that many bytes. A non-zero
// maxLen rejects a longer length prefix with InvalidFormat; 0 means
// unbounded.
func readBytes(r io.Reader, path string, maxLen uint64) ([]byte, error) {
	n, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	if maxLen != 0 && uint64(n) > maxLen {
		return nil, asseterr.New(asseterr.InvalidFormat, path)
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, asseterr.Wrap(asseterr.IOError, path, err)
	}
	return buf, nil
}

func writeString(w io.Writer, s string) error { return writeBytes(w, []byte(s)) }

func readString(r io.Reader, path string, maxLen uint64) (string, error) {
	b, err := readBytes(r, path, maxLen)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// createFile creates path's parent directories, if missing, and opens
// it for writing.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, asseterr.Wrap(asseterr.IOError, path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, asseterr.Wrap(asseterr.IOError, path, err)
	}
	return f, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, asseterr.Wrap(asseterr.NotFound, path, err)
		}
		return nil, asseterr.Wrap(asseterr.IOError, path, err)
	}
	return f, nil
}

// limitedReader wraps r so reads past n bytes fail, used to enforce
// VMESH's rawSize cap on the inner parser.
func limitedReader(r io.Reader, n uint64) io.Reader {
	return &io.LimitedReader{R: r, N: int64(n)}
}
