package asset

import "vasset/id"

// Dimension is the texture's addressing dimensionality.
type Dimension uint32

const (
	Dimension1D Dimension = iota
	Dimension2D
	Dimension3D
)

// Format mirrors a canonical graphics format table; the integer
// values are persisted as-is and must not be renumbered once shipped.
type Format uint32

const (
	FormatUnknown Format = iota
	FormatR8Unorm
	FormatRG8Unorm
	FormatRGBA8Unorm
	FormatRGBA8Srgb
	FormatR16Float
	FormatRGBA16Float
	FormatR32Float
	FormatRGBA32Float
	FormatBC1Unorm
	FormatBC3Unorm
	FormatBC7Unorm
)

// FileFormat is the cooked container's payload kind, independent of
// in-memory Format (e.g. a BC7 texture may still be wrapped in a KTX2
// container, or a decoded PNG may carry raw RGBA8 bytes).
type FileFormat uint32

const (
	FileFormatRaw FileFormat = iota
	FileFormatPNG
	FileFormatKTX
	FileFormatKTX2
	FileFormatDDS
)

// Texture is the cooked texture asset.
type Texture struct {
	Id              id.Id
	Width           uint32
	Height          uint32
	Depth           uint32
	MipLevels       uint32
	ArrayLayers     uint32
	IsCubemap       bool
	GenerateMipmaps bool
	Dimension       Dimension
	Format          Format
	FileFormat      FileFormat
	Data            []byte
}

// Validate checks the texture's structural invariants. It does not check
// Data non-emptiness, and the codecs accept an empty data payload, so
// a texture with no Data passes both decode and Validate.
func (t *Texture) Validate() error {
	if t.IsCubemap && t.ArrayLayers%6 != 0 {
		return errInvariant("cubemap texture arrayLayers must be a multiple of 6")
	}
	if t.Dimension == Dimension1D && (t.Height != 1 || t.Depth != 1) {
		return errInvariant("1D texture must have height==1 and depth==1")
	}
	return nil
}
