package asset

import "vasset/math"

// MaxMeshletVertices and MaxMeshletTriangles bound a single cluster:
// at most 64 vertices and 124 triangles.
const (
	MaxMeshletVertices  = 64
	MaxMeshletTriangles = 124
)

// Meshlet is a bounded vertex+triangle cluster inside a submesh. The
// cone fields are rebuildable from geometry and are not part of the
// v1 on-disk codec; they still live on the in-memory type so a
// clusterer can compute and hand them back to the caller in one pass.
type Meshlet struct {
	VertexOffset   uint32
	VertexCount    uint32
	TriangleOffset uint32
	TriangleCount  uint32
	MaterialIndex  uint32

	Center math.Vec3
	Radius float32

	ConeAxis   math.Vec3
	ConeCutoff float32 // cosine of the cone half-angle
	ConeApex   math.Vec3
}

// MeshletGroup holds the meshlets for one submesh plus the two
// indirection tables they reference: MeshletVertices maps a meshlet's
// local vertex index to the mesh's global vertex streams, and
// MeshletTriangles packs local 0..vertexCount-1 indices, 3 per
// triangle, padded per-meshlet to a multiple of 4 bytes.
type MeshletGroup struct {
	Meshlets         []Meshlet
	MeshletVertices  []uint32
	MeshletTriangles []byte
}

// SubMesh is a contiguous range inside its parent mesh's vertex and
// index streams, with its own material index, name, and meshlets.
type SubMesh struct {
	VertexOffset  uint32
	VertexCount   uint32
	IndexOffset   uint32
	IndexCount    uint32
	MaterialIndex uint32
	Name          string
	Meshlets      MeshletGroup
}
