package codec

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vasset/asset"
	"vasset/id"
	vmath "vasset/math"
)

func sampleMesh() *asset.Mesh {
	return &asset.Mesh{
		Id:          id.FromPath("box.obj"),
		VertexCount: 4,
		VertexFlags: asset.FlagPosition | asset.FlagNormal | asset.FlagTexCoord0,
		Positions: []vmath.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		},
		Normals: []vmath.Vec3{
			{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
		},
		TexCoord0: []vmath.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		SubMeshes: []asset.SubMesh{
			{
				VertexOffset:  0,
				VertexCount:   4,
				IndexOffset:   0,
				IndexCount:    6,
				MaterialIndex: 0,
				Name:          "box_Default",
				Meshlets: asset.MeshletGroup{
					Meshlets: []asset.Meshlet{
						{
							VertexOffset:   0,
							VertexCount:    4,
							TriangleOffset: 0,
							TriangleCount:  2,
							MaterialIndex:  0,
							Center:         vmath.Vec3{X: 0.5, Y: 0.5, Z: 0},
							Radius:         0.7071,
						},
					},
					MeshletVertices:  []uint32{0, 1, 2, 3},
					MeshletTriangles: []byte{0, 1, 2, 0, 2, 3},
				},
			},
		},
		MaterialRefs: []id.Id{id.FromPath("box_Default")},
		Name:         "box",
	}
}

func TestSaveLoadMeshRoundTrips(t *testing.T) {
	for _, zstdLevel := range []int{0, 3} {
		dir := t.TempDir()
		path := filepath.Join(dir, "box.vmesh")
		want := sampleMesh()

		if err := SaveMesh(path, want, zstdLevel); err != nil {
			t.Fatalf("SaveMesh(zstdLevel=%d): %v", zstdLevel, err)
		}

		got, err := LoadMesh(path)
		if err != nil {
			t.Fatalf("LoadMesh(zstdLevel=%d): %v", zstdLevel, err)
		}

		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round trip mismatch (zstdLevel=%d):\ngot  %+v\nwant %+v", zstdLevel, got, want)
		}
	}
}

func TestLoadMeshRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.vmesh")
	if err := os.WriteFile(path, []byte("not a mesh file"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadMesh(path); err == nil {
		t.Fatal("expected an error loading a file with the wrong magic")
	}
}

func TestMeshAttributeConsistencyRejectsShortStream(t *testing.T) {
	m := sampleMesh()
	m.Normals = m.Normals[:2]
	if err := m.ValidateAttributeConsistency(); err == nil {
		t.Fatal("expected a short attribute stream to fail validation")
	}
}

func TestMeshRangeValidationRejectsOutOfBoundsIndex(t *testing.T) {
	m := sampleMesh()
	m.Indices[0] = m.VertexCount
	if err := m.ValidateRanges(); err == nil {
		t.Fatal("expected an out-of-bounds index to fail range validation")
	}
}
