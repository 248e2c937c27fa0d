package importer

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"go.uber.org/zap"

	"vasset/asset"
	"vasset/asseterr"
	"vasset/codec"
	"vasset/id"
	"vasset/internal/vlog"
	"vasset/registry"
)

// TextureOptions are the TextureImporter's enumerated knobs.
type TextureOptions struct {
	GenerateMipmaps         bool
	FlipY                   bool
	TargetTextureFileFormat asset.FileFormat
	UASTC                   bool
	NoSSE                   bool
	QualityLevel            int // 1..255
	CompressionLevel        int // 0..4
	BasisUThreadCount       uint32
}

// containerExts are formats already in a compressed/metadata-bearing
// container; the importer stores them byte-for-byte rather than
// transcoding.
var containerExts = map[string]asset.FileFormat{
	".ktx":  asset.FileFormatKTX,
	".dds":  asset.FileFormatDDS,
	".ktx2": asset.FileFormatKTX2,
}

// TextureImporter cooks source image files into VTEXTURE assets.
type TextureImporter struct {
	Registry *registry.Registry
	Options  TextureOptions

	// Logger defaults to vlog.Log (a nop logger until vlog.Init runs)
	// when nil; set per-pipeline so multiple TextureImporters in one
	// process stay independently silenceable.
	Logger *zap.SugaredLogger
}

// Import runs the texture import pipeline for sourcePath. A cache hit
// when reimport is false returns the existing id without
// touching the filesystem again.
func (ti *TextureImporter) Import(sourcePath string, reimport bool) (id.Id, error) {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	relative := ti.Registry.ImportedPath(asset.KindTexture, stem, true)
	assetID := id.FromPath(relative)

	if !reimport {
		if e, ok := ti.Registry.Lookup(assetID); ok && e.Kind != asset.KindUnknown {
			return assetID, nil
		}
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return id.Nil, asseterr.Wrap(asseterr.ImportFailed, sourcePath, err)
	}

	tex, err := decodeTexture(sourcePath, data, ti.Options, vlog.Or(ti.Logger))
	if err != nil {
		return id.Nil, asseterr.Wrap(asseterr.ImportFailed, sourcePath, err)
	}
	tex.Id = assetID
	tex.GenerateMipmaps = ti.Options.GenerateMipmaps
	if err := tex.Validate(); err != nil {
		return id.Nil, asseterr.Wrap(asseterr.ImportFailed, sourcePath, err)
	}

	outPath := ti.Registry.ImportedPath(asset.KindTexture, stem, false)
	if err := codec.SaveTexture(outPath, tex); err != nil {
		return id.Nil, err
	}
	if err := ti.Registry.Register(assetID, relative, asset.KindTexture); err != nil {
		return id.Nil, err
	}

	params := map[string]string{
		"generate_mipmaps":           strconv.FormatBool(ti.Options.GenerateMipmaps),
		"flip_y":                     strconv.FormatBool(ti.Options.FlipY),
		"target_texture_file_format": strconv.Itoa(int(ti.Options.TargetTextureFileFormat)),
		"quality_level":              strconv.Itoa(ti.Options.QualityLevel),
		"compression_level":          strconv.Itoa(ti.Options.CompressionLevel),
	}
	if err := writeVimportSidecar(ti.Registry, sourcePath, assetID, "texture", relative, params); err != nil {
		return id.Nil, err
	}
	return assetID, nil
}

// decodeTexture dispatches by extension. KTX/DDS/KTX2 containers and
// the formats with no decoder wired in (EXR/HDR/TGA/PSD/PIC) are
// stored byte-for-byte; everything else goes through image.Decode (or
// x/image/bmp for .bmp) into raw RGBA8. No transcode to the target
// file format is performed: the EXR/HDR/TGA/PSD/PIC passthroughs and
// decoded images are tagged with the target format the caller asked
// for, except that a decoded image with a KTX2 target is tagged
// FileFormatRaw, since no BasisU re-encode is wired in.
func decodeTexture(sourcePath string, data []byte, opts TextureOptions, log *zap.SugaredLogger) (*asset.Texture, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))

	if ff, ok := containerExts[ext]; ok {
		return &asset.Texture{
			Dimension:   asset.Dimension2D,
			ArrayLayers: 1,
			MipLevels:   1,
			Depth:       1,
			Format:      asset.FormatUnknown,
			FileFormat:  ff,
			Data:        data,
		}, nil
	}

	switch ext {
	case ".exr", ".hdr", ".tga", ".psd", ".pic":
		// No HDR/float decoder is wired into this pipeline; these
		// formats are stored byte-for-byte like the container types
		// above, to be transcoded by an external tool later.
		log.Warnw("texture format stored as opaque passthrough, not decoded", "path", sourcePath, "ext", ext)
		return &asset.Texture{
			Dimension:   asset.Dimension2D,
			ArrayLayers: 1,
			MipLevels:   1,
			Depth:       1,
			Format:      asset.FormatUnknown,
			FileFormat:  opts.TargetTextureFileFormat,
			Data:        data,
		}, nil
	}

	var img image.Image
	var err error
	switch ext {
	case ".bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	if opts.FlipY {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			srcY := bounds.Max.Y - 1 - (y - bounds.Min.Y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgba.Set(x, y, img.At(x, srcY))
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}

	fileFormat := opts.TargetTextureFileFormat
	if fileFormat == asset.FileFormatKTX2 {
		// BasisU/KTX2 re-encoding is an external TextureEncoder
		// collaborator this pipeline has no concrete implementation of,
		// so it bypasses the transcode and tags the cooked texture with
		// the raw container it actually wrote.
		log.Warnw("KTX2 target requested but no BasisU encoder is wired in; storing raw RGBA8", "path", sourcePath)
		fileFormat = asset.FileFormatRaw
	}

	return &asset.Texture{
		Width:       uint32(bounds.Dx()),
		Height:      uint32(bounds.Dy()),
		Depth:       1,
		MipLevels:   1,
		ArrayLayers: 1,
		Dimension:   asset.Dimension2D,
		Format:      asset.FormatRGBA8Unorm,
		FileFormat:  fileFormat,
		Data:        rgba.Pix,
	}, nil
}

// IsTextureExt reports whether ext (with leading dot, any case)
// dispatches to TextureImporter.
func IsTextureExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".exr", ".hdr", ".png", ".jpg", ".jpeg", ".bmp", ".tga", ".gif", ".psd", ".pic", ".ktx", ".dds", ".ktx2":
		return true
	default:
		return false
	}
}
