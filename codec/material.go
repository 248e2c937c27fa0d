package codec

import (
	"bytes"
	"io"

	"vasset/asset"
	"vasset/core"
	"vasset/id"
)

const materialMagic = "VMATERIAL"

// SaveMaterial writes m to path in the VMATERIAL binary layout:
// magic, id, type, the PBR scalar block, name, then the nine texture
// references (see EncodeMaterial).
func SaveMaterial(path string, m *asset.Material) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeMaterial(f, m)
}

// EncodeMaterial follows the wire order id | type | PBR scalar block |
// name | nine texture-refs; the name sits between the scalar block
// and the texture references, not next to id.
func EncodeMaterial(w io.Writer, m *asset.Material) error {
	if err := writeMagic(w, materialMagic); err != nil {
		return err
	}
	if err := writeId(w, m.Id); err != nil {
		return err
	}
	if err := writeU32(w, uint32(m.Type)); err != nil {
		return err
	}
	if err := encodePBRScalars(w, &m.PBR); err != nil {
		return err
	}
	if err := writeString(w, m.Name); err != nil {
		return err
	}
	for _, t := range pbrTextureRefs(&m.PBR) {
		if err := writeId(w, t); err != nil {
			return err
		}
	}
	return nil
}

func encodePBRScalars(w io.Writer, pbr *asset.PBRMetallicRoughness) error {
	if err := writeColor(w, pbr.BaseColor); err != nil {
		return err
	}
	if err := writeF32(w, pbr.AlphaCutoff); err != nil {
		return err
	}
	if err := writeU32(w, uint32(pbr.AlphaMode)); err != nil {
		return err
	}
	if err := writeF32(w, pbr.Opacity); err != nil {
		return err
	}
	if err := writeU32(w, uint32(pbr.BlendMode)); err != nil {
		return err
	}
	if err := writeF32(w, pbr.MetallicFactor); err != nil {
		return err
	}
	if err := writeF32(w, pbr.RoughnessFactor); err != nil {
		return err
	}
	if err := writeColor(w, pbr.EmissiveColor); err != nil {
		return err
	}
	if err := writeColor(w, pbr.AmbientColor); err != nil {
		return err
	}
	if err := writeF32(w, pbr.IOR); err != nil {
		return err
	}
	return writeBool32(w, pbr.DoubleSided)
}

// pbrTextureRefs lists the nine texture-reference fields in fixed
// codec order, matching the struct's declared order.
func pbrTextureRefs(pbr *asset.PBRMetallicRoughness) []id.Id {
	return []id.Id{
		pbr.BaseColorTexture,
		pbr.AlphaTexture,
		pbr.MetallicTexture,
		pbr.RoughnessTexture,
		pbr.SpecularTexture,
		pbr.NormalTexture,
		pbr.AOTexture,
		pbr.EmissiveTexture,
		pbr.MetallicRoughnessTexture,
	}
}

func writeColor(w io.Writer, c core.Color) error {
	for _, v := range []float32{c.R, c.G, c.B, c.A} {
		if err := writeF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

func readColor(r io.Reader, path string) (core.Color, error) {
	var c core.Color
	var err error
	if c.R, err = readF32(r, path); err != nil {
		return c, err
	}
	if c.G, err = readF32(r, path); err != nil {
		return c, err
	}
	if c.B, err = readF32(r, path); err != nil {
		return c, err
	}
	if c.A, err = readF32(r, path); err != nil {
		return c, err
	}
	return c, nil
}

// LoadMaterial reads path as a VMATERIAL file.
func LoadMaterial(path string) (*asset.Material, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeMaterial(f, path)
}

func LoadMaterialFromMemory(data []byte, path string) (*asset.Material, error) {
	return DecodeMaterial(bytes.NewReader(data), path)
}

func DecodeMaterial(r io.Reader, path string) (*asset.Material, error) {
	if err := readMagic(r, materialMagic, path); err != nil {
		return nil, err
	}
	m := &asset.Material{}
	var err error
	if m.Id, err = readId(r, path); err != nil {
		return nil, err
	}
	typ, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	m.Type = asset.MaterialType(typ)
	pbr, err := decodePBRScalars(r, path)
	if err != nil {
		return nil, err
	}
	if m.Name, err = readString(r, path, 0); err != nil {
		return nil, err
	}
	refs := make([]id.Id, 9)
	for i := range refs {
		if refs[i], err = readId(r, path); err != nil {
			return nil, err
		}
	}
	pbr.BaseColorTexture = refs[0]
	pbr.AlphaTexture = refs[1]
	pbr.MetallicTexture = refs[2]
	pbr.RoughnessTexture = refs[3]
	pbr.SpecularTexture = refs[4]
	pbr.NormalTexture = refs[5]
	pbr.AOTexture = refs[6]
	pbr.EmissiveTexture = refs[7]
	pbr.MetallicRoughnessTexture = refs[8]
	m.PBR = *pbr
	return m, nil
}

func decodePBRScalars(r io.Reader, path string) (*asset.PBRMetallicRoughness, error) {
	pbr := &asset.PBRMetallicRoughness{}
	var err error
	if pbr.BaseColor, err = readColor(r, path); err != nil {
		return nil, err
	}
	if pbr.AlphaCutoff, err = readF32(r, path); err != nil {
		return nil, err
	}
	alphaMode, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	pbr.AlphaMode = asset.AlphaMode(alphaMode)
	if pbr.Opacity, err = readF32(r, path); err != nil {
		return nil, err
	}
	blendMode, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	pbr.BlendMode = asset.BlendMode(blendMode)
	if pbr.MetallicFactor, err = readF32(r, path); err != nil {
		return nil, err
	}
	if pbr.RoughnessFactor, err = readF32(r, path); err != nil {
		return nil, err
	}
	if pbr.EmissiveColor, err = readColor(r, path); err != nil {
		return nil, err
	}
	if pbr.AmbientColor, err = readColor(r, path); err != nil {
		return nil, err
	}
	if pbr.IOR, err = readF32(r, path); err != nil {
		return nil, err
	}
	if pbr.DoubleSided, err = readBool32(r, path); err != nil {
		return nil, err
	}
	return pbr, nil
}
