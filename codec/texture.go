package codec

import (
	"bytes"
	"io"

	"vasset/asset"
	"vasset/asseterr"
)

const textureMagic = "VTEXTURE"

// SaveTexture writes t to path in the VTEXTURE binary layout: magic,
// id, the ten scalar fields, then a u32-length-prefixed data
// payload.
func SaveTexture(path string, t *asset.Texture) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeTexture(f, t)
}

// EncodeTexture writes the VTEXTURE layout to w without touching the
// filesystem; SaveTexture calls it with the opened output file.
func EncodeTexture(w io.Writer, t *asset.Texture) error {
	if err := writeMagic(w, textureMagic); err != nil {
		return err
	}
	if err := writeId(w, t.Id); err != nil {
		return err
	}
	fields := []uint32{t.Width, t.Height, t.Depth, t.MipLevels, t.ArrayLayers}
	for _, v := range fields {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	if err := writeBool32(w, t.IsCubemap); err != nil {
		return err
	}
	if err := writeBool32(w, t.GenerateMipmaps); err != nil {
		return err
	}
	if err := writeU32(w, uint32(t.Dimension)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(t.Format)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(t.FileFormat)); err != nil {
		return err
	}
	return writeBytes(w, t.Data)
}

// LoadTexture reads path as a VTEXTURE file.
func LoadTexture(path string) (*asset.Texture, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeTexture(f, path)
}

// LoadTextureFromMemory decodes a VTEXTURE payload already held in
// memory, as used when reading a cooked texture back out of a PKG
// archive.
func LoadTextureFromMemory(data []byte, path string) (*asset.Texture, error) {
	return DecodeTexture(bytes.NewReader(data), path)
}

func DecodeTexture(r io.Reader, path string) (*asset.Texture, error) {
	if err := readMagic(r, textureMagic, path); err != nil {
		return nil, err
	}
	t := &asset.Texture{}
	var err error
	if t.Id, err = readId(r, path); err != nil {
		return nil, err
	}
	if t.Width, err = readU32(r, path); err != nil {
		return nil, err
	}
	if t.Height, err = readU32(r, path); err != nil {
		return nil, err
	}
	if t.Depth, err = readU32(r, path); err != nil {
		return nil, err
	}
	if t.MipLevels, err = readU32(r, path); err != nil {
		return nil, err
	}
	if t.ArrayLayers, err = readU32(r, path); err != nil {
		return nil, err
	}
	if t.IsCubemap, err = readBool32(r, path); err != nil {
		return nil, err
	}
	if t.GenerateMipmaps, err = readBool32(r, path); err != nil {
		return nil, err
	}
	dim, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	t.Dimension = asset.Dimension(dim)
	format, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	t.Format = asset.Format(format)
	fileFormat, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	t.FileFormat = asset.FileFormat(fileFormat)
	if t.Data, err = readBytes(r, path, 0); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, asseterr.Wrap(asseterr.InvalidFormat, path, err)
	}
	return t, nil
}
