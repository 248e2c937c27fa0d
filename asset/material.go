package asset

import (
	"vasset/core"
	"vasset/id"
)

// MaterialType is the closed set of material shading models.
type MaterialType uint32

const (
	MaterialNone MaterialType = iota
	MaterialPBRMetallicRoughness
)

// AlphaMode controls how Opacity/alpha channel is interpreted.
type AlphaMode uint32

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// BlendMode is the compositing mode for translucent surfaces.
type BlendMode uint32

const (
	BlendNone BlendMode = iota
	BlendAlpha
	BlendAdditive
	BlendMultiply
)

// PBRMetallicRoughness is the fixed-schema metallic-roughness block.
// A texture reference is just an Id; id.Nil means absent.
type PBRMetallicRoughness struct {
	BaseColor       core.Color
	AlphaCutoff     float32
	AlphaMode       AlphaMode
	Opacity         float32
	BlendMode       BlendMode
	MetallicFactor  float32
	RoughnessFactor float32
	EmissiveColor   core.Color // A channel carries emissive intensity
	AmbientColor    core.Color
	IOR             float32
	DoubleSided     bool

	BaseColorTexture         id.Id
	AlphaTexture             id.Id
	MetallicTexture          id.Id
	RoughnessTexture         id.Id
	SpecularTexture          id.Id
	NormalTexture            id.Id
	AOTexture                id.Id
	EmissiveTexture          id.Id
	MetallicRoughnessTexture id.Id
}

// Material is the cooked material asset.
type Material struct {
	Id   id.Id
	Name string
	Type MaterialType
	PBR  PBRMetallicRoughness
}

// DefaultPBR returns the PBR block's documented defaults: diffuse
// white, zero specular/ambient/emissive, shininess-derived roughness
// of 1 absent other data, opaque, Ni 1.5.
func DefaultPBR() PBRMetallicRoughness {
	return PBRMetallicRoughness{
		BaseColor:       core.Color{R: 1, G: 1, B: 1, A: 1},
		AlphaCutoff:     0.5,
		AlphaMode:       AlphaOpaque,
		Opacity:         1,
		BlendMode:       BlendNone,
		MetallicFactor:  0,
		RoughnessFactor: 1,
		EmissiveColor:   core.Color{R: 0, G: 0, B: 0, A: 1},
		AmbientColor:    core.Color{R: 0, G: 0, B: 0, A: 1},
		IOR:             1.5,
	}
}
