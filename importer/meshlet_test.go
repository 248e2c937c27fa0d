package importer

import (
	"testing"

	"vasset/asset"
	vmath "vasset/math"
)

// a single quad (two triangles) fits comfortably under both meshlet
// bounds and should come back as one meshlet.
func TestBuildMeshletsSingleQuadIsOneMeshlet(t *testing.T) {
	positions := []vmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	group := buildMeshlets(positions, indices, 0, uint32(len(indices)), 2)
	if len(group.Meshlets) != 1 {
		t.Fatalf("got %d meshlets, want 1", len(group.Meshlets))
	}
	ml := group.Meshlets[0]
	if ml.VertexCount != 4 {
		t.Errorf("VertexCount = %d, want 4", ml.VertexCount)
	}
	if ml.TriangleCount != 2 {
		t.Errorf("TriangleCount = %d, want 2", ml.TriangleCount)
	}
	if ml.MaterialIndex != 2 {
		t.Errorf("MaterialIndex = %d, want 2", ml.MaterialIndex)
	}
	if len(group.MeshletTriangles)%4 != 0 {
		t.Errorf("meshlet triangle byte region not padded to a multiple of 4: %d bytes", len(group.MeshletTriangles))
	}

	// both triangles of a planar quad face +Z; the cone should collapse
	// to that axis with a cutoff of (near) 1.
	if ml.ConeAxis.Distance(vmath.Vec3{X: 0, Y: 0, Z: 1}) > 1e-4 {
		t.Errorf("ConeAxis = %v, want +Z", ml.ConeAxis)
	}
	if ml.ConeCutoff < 0.999 {
		t.Errorf("ConeCutoff = %v, want ~1 for a planar cluster", ml.ConeCutoff)
	}
}

// a triangle fan spanning more than asset.MaxMeshletTriangles triangles
// must split into more than one meshlet. The fan cycles over 31 rim
// vertices, so no meshlet comes near asset.MaxMeshletVertices and only
// the triangle budget can force the split.
func TestBuildMeshletsSplitsOnTriangleBudget(t *testing.T) {
	n := asset.MaxMeshletTriangles + 10
	positions := make([]vmath.Vec3, 0, n+2)
	positions = append(positions, vmath.Vec3{X: 0, Y: 0, Z: 0})
	for i := 0; i < n+1; i++ {
		positions = append(positions, vmath.Vec3{X: float32(i), Y: 1, Z: 0})
	}

	indices := make([]uint32, 0, n*3)
	for i := 1; i <= n; i++ {
		indices = append(indices, 0, uint32(i%30+1), uint32(i%30+2))
	}

	group := buildMeshlets(positions, indices, 0, uint32(len(indices)), 0)
	if len(group.Meshlets) < 2 {
		t.Fatalf("got %d meshlets, want at least 2 when triangle count exceeds the per-meshlet budget", len(group.Meshlets))
	}
	var totalTris uint32
	for _, ml := range group.Meshlets {
		if ml.TriangleCount > asset.MaxMeshletTriangles {
			t.Errorf("meshlet has %d triangles, exceeds MaxMeshletTriangles", ml.TriangleCount)
		}
		if ml.VertexCount > asset.MaxMeshletVertices {
			t.Errorf("meshlet has %d vertices, exceeds MaxMeshletVertices", ml.VertexCount)
		}
		totalTris += ml.TriangleCount
	}
	if int(totalTris) != n {
		t.Errorf("total triangles across meshlets = %d, want %d", totalTris, n)
	}
}
