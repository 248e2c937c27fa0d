package importer

import (
	vmath "math"

	"go.uber.org/zap"

	"vasset/asset"
	"vasset/core"
	"vasset/id"
)

// textureChannel names the generic source-material texture slots
// processMaterial knows how to map onto the nine cooked texture-ref
// fields.
type textureChannel string

const (
	ChannelDiffuse               textureChannel = "Diffuse"
	ChannelOpacity               textureChannel = "Opacity"
	ChannelMetalness             textureChannel = "Metalness"
	ChannelDiffuseRoughness      textureChannel = "DiffuseRoughness"
	ChannelSpecular              textureChannel = "Specular"
	ChannelNormals               textureChannel = "Normals"
	ChannelLightmap              textureChannel = "Lightmap"
	ChannelEmissive              textureChannel = "Emissive"
	ChannelGltfMetallicRoughness textureChannel = "GltfMetallicRoughness"
)

// TextureResolver imports a source-relative texture path (relative to
// the mesh file's directory) and returns its cooked id.
type TextureResolver func(sourcePath string) (id.Id, error)

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// processMaterial fills the PBR-MR block from a generic property bag
// and a set of resolved texture-channel source paths. This is the one
// place the magic constants (0.2126/0.7152/0.0722 luminance weights,
// the 0.04 dielectric specular floor) are allowed to appear.
func processMaterial(name string, props *PropertyBag, textures map[textureChannel]string, resolve TextureResolver, log *zap.SugaredLogger) (*asset.Material, error) {
	m := &asset.Material{
		Name: props.GetString("NAME", name),
		Type: asset.MaterialPBRMetallicRoughness,
		PBR:  asset.DefaultPBR(),
	}
	pbr := &m.PBR

	kd := props.GetColor3("COLOR_DIFFUSE", [3]float32{1, 1, 1})
	ks := props.GetColor3("COLOR_SPECULAR", [3]float32{0, 0, 0})
	ke := props.GetColor3("COLOR_EMISSIVE", [3]float32{0, 0, 0})
	ka := props.GetColor3("COLOR_AMBIENT", [3]float32{0, 0, 0})

	shininess := props.GetFloat("Ns", 0)
	opacity := props.GetFloat("d", 1)
	ior := props.GetFloat("Ni", 1.5)
	emissiveIntensity := props.GetFloat("EMISSIVE_INTENSITY_SCALAR", 1)

	alphaMode := props.GetString("GLTF_ALPHAMODE", "")
	switch alphaMode {
	case "MASK":
		pbr.AlphaMode = asset.AlphaMask
	case "BLEND":
		pbr.AlphaMode = asset.AlphaBlend
	default:
		pbr.AlphaMode = asset.AlphaOpaque
	}
	pbr.AlphaCutoff = props.GetFloat("GLTF_ALPHACUTOFF", 0.5)

	if props.Has("GLTF_ALPHAMODE") {
		if alphaMode == "BLEND" {
			pbr.BlendMode = asset.BlendAlpha
		} else {
			pbr.BlendMode = asset.BlendNone
		}
	} else if props.Has("BLEND_FUNC") {
		switch props.GetString("BLEND_FUNC", "Default") {
		case "Default":
			pbr.BlendMode = asset.BlendAlpha
		case "Additive":
			pbr.BlendMode = asset.BlendAdditive
		default:
			pbr.BlendMode = asset.BlendNone
		}
	} else if opacity < 1 {
		pbr.BlendMode = asset.BlendAlpha
	} else {
		pbr.BlendMode = asset.BlendNone
	}

	pbr.BaseColor = core.Color{R: kd[0], G: kd[1], B: kd[2], A: 1}
	pbr.Opacity = opacity

	metallic := (0.2126*ks[0] + 0.7152*ks[1] + 0.0722*ks[2] - 0.04) / (1 - 0.04)
	pbr.MetallicFactor = clamp(metallic, 0, 1)

	roughness := float32(vmath.Sqrt(2 / (float64(shininess) + 2)))
	pbr.RoughnessFactor = clamp(roughness, 0.04, 1)

	pbr.EmissiveColor = core.Color{R: ke[0], G: ke[1], B: ke[2], A: emissiveIntensity}
	pbr.IOR = ior
	pbr.AmbientColor = core.Color{R: ka[0], G: ka[1], B: ka[2], A: 1}
	pbr.DoubleSided = props.GetBool("TWOSIDED", false)

	if props.Has("BASE_COLOR") {
		c := props.GetColor4("BASE_COLOR", [4]float32{pbr.BaseColor.R, pbr.BaseColor.G, pbr.BaseColor.B, pbr.BaseColor.A})
		pbr.BaseColor = core.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	if props.Has("METALLIC_FACTOR") {
		pbr.MetallicFactor = props.GetFloat("METALLIC_FACTOR", pbr.MetallicFactor)
	}
	if props.Has("ROUGHNESS_FACTOR") {
		pbr.RoughnessFactor = props.GetFloat("ROUGHNESS_FACTOR", pbr.RoughnessFactor)
	}
	if props.Has("EMISSIVE_INTENSITY") {
		c := props.GetColor4("EMISSIVE_INTENSITY", [4]float32{pbr.EmissiveColor.R, pbr.EmissiveColor.G, pbr.EmissiveColor.B, pbr.EmissiveColor.A})
		pbr.EmissiveColor = core.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	}

	slot := func(ch textureChannel) (id.Id, error) {
		path, ok := textures[ch]
		if !ok || path == "" {
			return id.Nil, nil
		}
		texID, err := resolve(path)
		if err != nil {
			log.Warnw("material texture import failed", "channel", ch, "path", path, "err", err)
			return id.Nil, nil
		}
		return texID, nil
	}

	var err error
	if pbr.BaseColorTexture, err = slot(ChannelDiffuse); err != nil {
		return nil, err
	}
	if pbr.AlphaTexture, err = slot(ChannelOpacity); err != nil {
		return nil, err
	}
	if pbr.MetallicTexture, err = slot(ChannelMetalness); err != nil {
		return nil, err
	}
	if pbr.RoughnessTexture, err = slot(ChannelDiffuseRoughness); err != nil {
		return nil, err
	}
	if pbr.SpecularTexture, err = slot(ChannelSpecular); err != nil {
		return nil, err
	}
	if pbr.NormalTexture, err = slot(ChannelNormals); err != nil {
		return nil, err
	}
	if pbr.AOTexture, err = slot(ChannelLightmap); err != nil {
		return nil, err
	}
	if pbr.EmissiveTexture, err = slot(ChannelEmissive); err != nil {
		return nil, err
	}
	if pbr.MetallicRoughnessTexture, err = slot(ChannelGltfMetallicRoughness); err != nil {
		return nil, err
	}

	for _, k := range props.UnconsumedKeys() {
		log.Warnw("unhandled material property", "material", m.Name, "key", k)
	}

	return m, nil
}
