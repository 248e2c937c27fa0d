package importer

import (
	"math"
	"testing"

	"github.com/qmuntal/gltf"

	vmath "vasset/math"
)

func TestGltfNodeLocalTransformTranslation(t *testing.T) {
	gn := &gltf.Node{Translation: [3]float64{1, 2, 3}}
	m := gltfNodeLocalTransform(gn)

	got := m.MulVec3(vmath.Vec3Zero)
	want := vmath.Vec3{X: 1, Y: 2, Z: 3}
	if got.Distance(want) > 1e-4 {
		t.Fatalf("translation-only node: got %v, want %v", got, want)
	}
}

func TestGltfNodeLocalTransformDefaultIsIdentity(t *testing.T) {
	gn := &gltf.Node{}
	m := gltfNodeLocalTransform(gn)
	p := vmath.Vec3{X: 5, Y: -2, Z: 7}
	if got := m.MulVec3(p); got.Distance(p) > 1e-4 {
		t.Fatalf("node with no TRS channels: got %v, want %v unchanged", got, p)
	}
}

// TestGltfMeshWorldTransformsNestedTranslation builds a two-node chain
// (root translated along X, child translated along Y referencing mesh
// 0) and checks the mesh's baked world transform combines both.
func TestGltfMeshWorldTransformsNestedTranslation(t *testing.T) {
	meshIdx := 0
	childIdx := 1
	sceneIdx := 0

	doc := &gltf.Document{
		Scene: &sceneIdx,
		Scenes: []*gltf.Scene{
			{Nodes: []int{0}},
		},
		Nodes: []*gltf.Node{
			{Translation: [3]float64{10, 0, 0}, Children: []int{childIdx}},
			{Translation: [3]float64{0, 5, 0}, Mesh: &meshIdx},
		},
	}

	world := gltfMeshWorldTransforms(doc)
	m, ok := world[meshIdx]
	if !ok {
		t.Fatal("expected a world transform for mesh 0")
	}

	got := m.MulVec3(vmath.Vec3Zero)
	want := vmath.Vec3{X: 10, Y: 5, Z: 0}
	if got.Distance(want) > 1e-4 {
		t.Fatalf("nested transform: got %v, want %v", got, want)
	}
}

func TestGltfMeshWorldTransformsNoSceneFallsBackToParentless(t *testing.T) {
	meshIdx := 0
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Translation: [3]float64{2, 0, 0}, Mesh: &meshIdx},
		},
	}

	world := gltfMeshWorldTransforms(doc)
	m, ok := world[meshIdx]
	if !ok {
		t.Fatal("expected a world transform for the only node when no default scene is set")
	}
	if got, want := m.MulVec3(vmath.Vec3Zero), (vmath.Vec3{X: 2, Y: 0, Z: 0}); got.Distance(want) > 1e-4 {
		t.Fatalf("parentless fallback: got %v, want %v", got, want)
	}
}

func TestTransformNormalRenormalizesUnderScale(t *testing.T) {
	world := vmath.Mat4Scale(vmath.Vec3{X: 2, Y: 1, Z: 1})
	normalMat := world.Inverse().Transpose()

	n := transformNormal(normalMat, vmath.Vec3Up)
	if l := n.Length(); math.Abs(float64(l-1)) > 1e-4 {
		t.Fatalf("transformed normal not unit length: %v (len %v)", n, l)
	}
	if n.Distance(vmath.Vec3Up) > 1e-4 {
		t.Fatalf("scaling X should not rotate a Y-up normal: got %v", n)
	}
}
