// Package asseterr defines the closed error taxonomies shared by the
// asset pipeline (codec, registry, importer, package) and by the
// virtual filesystem views that sit on top of a package.
package asseterr

import "fmt"

// Code is a member of the asset-layer closed error taxonomy.
type Code int

const (
	Ok Code = iota
	NotFound
	InvalidFormat
	InvalidImportFile
	UnknownImporter
	ImportFailed
	IOError
	NotSupported
	OutOfMemory
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "ok"
	case NotFound:
		return "not_found"
	case InvalidFormat:
		return "invalid_format"
	case InvalidImportFile:
		return "invalid_import_file"
	case UnknownImporter:
		return "unknown_importer"
	case ImportFailed:
		return "import_failed"
	case IOError:
		return "io_error"
	case NotSupported:
		return "not_supported"
	case OutOfMemory:
		return "out_of_memory"
	default:
		return "unknown"
	}
}

// AssetError is a Code plus the path it occurred on and an optional
// wrapped cause, satisfying the standard error interface so callers
// can use errors.Is/errors.As against a Code.
type AssetError struct {
	Code Code
	Path string
	Err  error
}

func New(code Code, path string) *AssetError {
	return &AssetError{Code: code, Path: path}
}

func Wrap(code Code, path string, err error) *AssetError {
	return &AssetError{Code: code, Path: path, Err: err}
}

func (e *AssetError) Error() string {
	if e.Path == "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *AssetError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, asseterr.NotFound) work directly against a Code.
func (e *AssetError) Is(target error) bool {
	other, ok := target.(*AssetError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// Sentinel errors for errors.Is comparisons against a bare Code, e.g.
// errors.Is(err, asseterr.ErrNotFound).
var (
	ErrNotFound          = &AssetError{Code: NotFound}
	ErrInvalidFormat     = &AssetError{Code: InvalidFormat}
	ErrInvalidImportFile = &AssetError{Code: InvalidImportFile}
	ErrUnknownImporter   = &AssetError{Code: UnknownImporter}
	ErrImportFailed      = &AssetError{Code: ImportFailed}
	ErrIOError           = &AssetError{Code: IOError}
	ErrNotSupported      = &AssetError{Code: NotSupported}
	ErrOutOfMemory       = &AssetError{Code: OutOfMemory}
)

// FsCode is a member of the filesystem-layer closed error taxonomy.
type FsCode int

const (
	FsNotFound FsCode = iota
	FsInvalidPath
	FsNotSupported
	FsIOError
)

func (c FsCode) String() string {
	switch c {
	case FsNotFound:
		return "not_found"
	case FsInvalidPath:
		return "invalid_path"
	case FsNotSupported:
		return "not_supported"
	case FsIOError:
		return "io_error"
	default:
		return "unknown"
	}
}

// FsError is the filesystem-layer counterpart to AssetError.
type FsError struct {
	Code FsCode
	Path string
	Err  error
}

func NewFs(code FsCode, path string) *FsError {
	return &FsError{Code: code, Path: path}
}

func WrapFs(code FsCode, path string, err error) *FsError {
	return &FsError{Code: code, Path: path, Err: err}
}

func (e *FsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *FsError) Unwrap() error { return e.Err }

func (e *FsError) Is(target error) bool {
	other, ok := target.(*FsError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// FromAsset translates the asset-layer taxonomy into the filesystem
// one: NotFound maps through, everything else becomes IOError, and
// callers are expected to special-case NotSupported themselves
// (FileMode != read) before reaching this helper.
func FromAsset(err error) *FsError {
	ae, ok := err.(*AssetError)
	if !ok {
		return WrapFs(FsIOError, "", err)
	}
	if ae.Code == NotFound {
		return WrapFs(FsNotFound, ae.Path, ae.Err)
	}
	return WrapFs(FsIOError, ae.Path, ae)
}
