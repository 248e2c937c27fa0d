package importer

import (
	"os"
	"path/filepath"
	"testing"

	"vasset/asset"
	"vasset/codec"
	"vasset/id"
	"vasset/registry"
)

const boxOBJ = `mtllib box.mtl
o box
usemtl Default
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
f 1 2 3
f 1 3 4
f 5 7 6
f 5 8 7
f 1 5 6
f 1 6 2
f 2 6 7
f 2 7 3
f 3 7 8
f 3 8 4
f 4 8 5
f 4 5 1
`

const boxMTL = `newmtl Default
Kd 0.8 0.8 0.8
Ks 0.1 0.1 0.1
Ns 32
`

func TestMeshImportOBJBoxWithMeshlets(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "box.obj"), []byte(boxOBJ), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "box.mtl"), []byte(boxMTL), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reg := registry.New()
	reg.SetAssetRoot(root)
	mi := &MeshImporter{
		Registry:  reg,
		Textures:  &TextureImporter{Registry: reg},
		Options:   MeshOptions{GenerateMeshlets: true},
		ZstdLevel: 3,
	}

	meshID, err := mi.Import(filepath.Join(root, "box.obj"), false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	meshRel := filepath.Join("imported", "mesh", "box")
	if want := id.FromPath(meshRel); meshID != want {
		t.Errorf("mesh id = %s, want %s", meshID, want)
	}
	if e, ok := reg.Lookup(meshID); !ok || e.Kind != asset.KindMesh || e.Path != meshRel {
		t.Errorf("mesh registry entry = %+v, %v", e, ok)
	}

	// The material is registered under the source-stem-derived name.
	matRel := filepath.Join("imported", "material", "box_Default")
	matID := id.FromPath(matRel)
	if e, ok := reg.Lookup(matID); !ok || e.Kind != asset.KindMaterial || e.Path != matRel {
		t.Errorf("material registry entry = %+v, %v", e, ok)
	}

	m, err := codec.LoadMesh(filepath.Join(root, meshRel))
	if err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	if m.VertexCount != 8 {
		t.Errorf("vertexCount = %d, want 8", m.VertexCount)
	}
	if len(m.Indices) != 36 {
		t.Errorf("indexCount = %d, want 36", len(m.Indices))
	}
	if len(m.SubMeshes) != 1 {
		t.Fatalf("subMesh count = %d, want 1", len(m.SubMeshes))
	}
	sm := m.SubMeshes[0]
	if sm.VertexCount != 8 || sm.IndexCount != 36 || sm.MaterialIndex != 0 {
		t.Errorf("subMesh = %+v, want vertexCount 8 indexCount 36 materialIndex 0", sm)
	}
	if len(sm.Meshlets.Meshlets) != 1 {
		t.Fatalf("meshlet count = %d, want 1", len(sm.Meshlets.Meshlets))
	}
	ml := sm.Meshlets.Meshlets[0]
	if ml.VertexCount != 8 || ml.TriangleCount != 12 || ml.MaterialIndex != 0 {
		t.Errorf("meshlet = %+v, want vertexCount 8 triangleCount 12 materialIndex 0", ml)
	}
	if ml.Radius <= 0 {
		t.Errorf("meshlet radius = %v, want > 0", ml.Radius)
	}
	if len(sm.Meshlets.MeshletVertices) != 8 {
		t.Errorf("meshlet vertex table = %d entries, want 8", len(sm.Meshlets.MeshletVertices))
	}
	if got := len(sm.Meshlets.MeshletTriangles); got != 36 {
		t.Errorf("meshlet triangle bytes = %d, want 36", got)
	}
	if len(m.MaterialRefs) != 1 || m.MaterialRefs[0] != matID {
		t.Errorf("materialRefs = %v, want [%s]", m.MaterialRefs, matID)
	}

	// Importing again without reimport is a cache hit: the registry is
	// unchanged and the cooked file untouched.
	before, err := os.ReadFile(filepath.Join(root, meshRel))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if _, err := mi.Import(filepath.Join(root, "box.obj"), false); err != nil {
		t.Fatalf("second Import: %v", err)
	}
	after, err := os.ReadFile(filepath.Join(root, meshRel))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(before) != string(after) {
		t.Error("idempotent import should leave the cooked mesh unchanged")
	}
}
