package asset

import (
	"vasset/core"
	"vasset/id"
	"vasset/math"
)

// VertexFlags is a bitmask over the eight possible per-vertex
// attribute streams. Iteration order over the set bits is
// fixed and must match the codec exactly: Position, Normal, Color,
// TexCoord0, TexCoord1, Tangent, JointIndices, JointWeights.
type VertexFlags uint32

const (
	FlagPosition VertexFlags = 1 << iota
	FlagNormal
	FlagColor
	FlagTexCoord0
	FlagTexCoord1
	FlagTangent
	FlagJointIndices
	FlagJointWeights
)

// OrderedVertexFlags lists the eight flags in the fixed codec
// iteration order; ranging over this slice (instead of 0..7) keeps
// the order change-resistant if the bitmask ever gains members.
var OrderedVertexFlags = []VertexFlags{
	FlagPosition, FlagNormal, FlagColor, FlagTexCoord0,
	FlagTexCoord1, FlagTangent, FlagJointIndices, FlagJointWeights,
}

// JointIndices4 is a 4-wide skinning joint index tuple.
type JointIndices4 [4]uint16

// Mesh is the cooked mesh asset. Each attribute stream is
// present (length == VertexCount) iff its VertexFlags bit is set;
// otherwise it is nil/empty. Tangent.W encodes handedness and must be
// either -1 or +1.
type Mesh struct {
	Id          id.Id
	VertexCount uint32
	VertexFlags VertexFlags

	Positions    []math.Vec3
	Normals      []math.Vec3
	Colors       []core.Color
	TexCoord0    []math.Vec2
	TexCoord1    []math.Vec2
	Tangents     []math.Vec4
	JointIndices []JointIndices4
	JointWeights []math.Vec4

	Indices []uint32

	SubMeshes []SubMesh

	MaterialRefs []id.Id

	Name string
}

// StreamLen returns the attribute slice's length for the given flag,
// used by the codec and by tests asserting the "length == vertexCount
// or empty" invariant.
func (m *Mesh) StreamLen(flag VertexFlags) int {
	switch flag {
	case FlagPosition:
		return len(m.Positions)
	case FlagNormal:
		return len(m.Normals)
	case FlagColor:
		return len(m.Colors)
	case FlagTexCoord0:
		return len(m.TexCoord0)
	case FlagTexCoord1:
		return len(m.TexCoord1)
	case FlagTangent:
		return len(m.Tangents)
	case FlagJointIndices:
		return len(m.JointIndices)
	case FlagJointWeights:
		return len(m.JointWeights)
	default:
		return 0
	}
}

// ValidateAttributeConsistency checks, for every flag, that a set bit
// means the stream's length equals VertexCount and a clear bit means
// the stream is empty.
func (m *Mesh) ValidateAttributeConsistency() error {
	for _, flag := range OrderedVertexFlags {
		n := m.StreamLen(flag)
		if m.VertexFlags&flag != 0 {
			if n != int(m.VertexCount) {
				return errInvariant("vertex stream for flag %d has length %d, want %d", flag, n, m.VertexCount)
			}
		} else if n != 0 {
			return errInvariant("vertex stream for flag %d is non-empty but its flag is clear", flag)
		}
	}
	return nil
}

// ValidateRanges checks submesh range and index bounds.
func (m *Mesh) ValidateRanges() error {
	for si, s := range m.SubMeshes {
		if uint64(s.VertexOffset)+uint64(s.VertexCount) > uint64(m.VertexCount) {
			return errInvariant("submesh %d vertex range exceeds vertexCount", si)
		}
		if uint64(s.IndexOffset)+uint64(s.IndexCount) > uint64(len(m.Indices)) {
			return errInvariant("submesh %d index range exceeds index count", si)
		}
		for i := s.IndexOffset; i < s.IndexOffset+s.IndexCount; i++ {
			if m.Indices[i] >= m.VertexCount {
				return errInvariant("submesh %d index %d out of vertex bounds", si, m.Indices[i])
			}
		}
		if int(s.MaterialIndex) >= len(m.MaterialRefs) && len(m.MaterialRefs) > 0 {
			return errInvariant("submesh %d materialIndex out of bounds", si)
		}
	}
	return nil
}
