package importer

import (
	"math"
	"testing"

	vmath "vasset/math"
)

// a unit quad in the XY plane, two triangles sharing an edge.
func quadPositionsIndices() ([]vmath.Vec3, []uint32) {
	positions := []vmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return positions, indices
}

func TestGenerateSmoothNormalsFacesPositiveZ(t *testing.T) {
	positions, indices := quadPositionsIndices()
	normals := generateSmoothNormals(positions, indices)

	if len(normals) != len(positions) {
		t.Fatalf("got %d normals, want %d", len(normals), len(positions))
	}
	for i, n := range normals {
		if l := n.Length(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("normal %d not unit length: %v (len %v)", i, n, l)
		}
		if n.Distance(vmath.Vec3{X: 0, Y: 0, Z: 1}) > 1e-4 {
			t.Fatalf("normal %d: got %v, want +Z", i, n)
		}
	}
}

func TestGenerateSmoothNormalsUnreferencedVertexStaysZero(t *testing.T) {
	positions := []vmath.Vec3{{X: 0}, {X: 1}, {X: 1, Y: 1}, {X: 5, Y: 5, Z: 5}}
	indices := []uint32{0, 1, 2}
	normals := generateSmoothNormals(positions, indices)
	if normals[3] != (vmath.Vec3{}) {
		t.Fatalf("vertex referenced by no triangle should stay zero, got %v", normals[3])
	}
}

func TestComputeTangentsOrthogonalToNormal(t *testing.T) {
	positions, indices := quadPositionsIndices()
	normals := []vmath.Vec3{
		{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
	}
	uvs := []vmath.Vec2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}

	tangents := computeTangents(positions, normals, uvs, indices)
	if len(tangents) != len(positions) {
		t.Fatalf("got %d tangents, want %d", len(tangents), len(positions))
	}
	for i, tv := range tangents {
		tang := vmath.Vec3{X: tv.X, Y: tv.Y, Z: tv.Z}
		if l := tang.Length(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("tangent %d not unit length: %v (len %v)", i, tang, l)
		}
		if d := normals[i].Dot(tang); math.Abs(float64(d)) > 1e-4 {
			t.Fatalf("tangent %d not orthogonal to normal: dot=%v", i, d)
		}
		if tv.W != 1 && tv.W != -1 {
			t.Fatalf("tangent %d handedness w must be +-1, got %v", i, tv.W)
		}
	}
}

func TestComputeTangentsDegenerateUVFallsBackToPerpendicular(t *testing.T) {
	positions, indices := quadPositionsIndices()
	normals := []vmath.Vec3{
		{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
	}
	uvs := make([]vmath.Vec2, len(positions)) // all zero: every triangle's UV area is degenerate

	tangents := computeTangents(positions, normals, uvs, indices)
	for i, tv := range tangents {
		tang := vmath.Vec3{X: tv.X, Y: tv.Y, Z: tv.Z}
		if l := tang.Length(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("degenerate-UV tangent %d not unit length: %v", i, tang)
		}
		if d := normals[i].Dot(tang); math.Abs(float64(d)) > 1e-4 {
			t.Fatalf("degenerate-UV tangent %d not orthogonal to normal: dot=%v", i, d)
		}
	}
}
