package math

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got, want := a.Add(b), NewVec3(5, 7, 9); got != want {
		t.Errorf("Add: got %v, want %v", got, want)
	}
	if got, want := b.Sub(a), NewVec3(3, 3, 3); got != want {
		t.Errorf("Sub: got %v, want %v", got, want)
	}
	if got, want := a.Mul(2), NewVec3(2, 4, 6); got != want {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
	if got, want := a.Dot(b), float32(32); got != want {
		t.Errorf("Dot: got %v, want %v", got, want)
	}
	if got, want := Vec3Right.Cross(Vec3Up), Vec3Front; got != want {
		t.Errorf("Cross: got %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 0).Normalize()
	if want := NewVec3(1, 0, 0); n != want {
		t.Errorf("Normalize: got %v, want %v", n, want)
	}
	if l := n.Length(); math.Abs(float64(l-1)) > 1e-4 {
		t.Errorf("Normalize: expected unit length, got %v", l)
	}
}

func TestVec3MinMax(t *testing.T) {
	a, b := NewVec3(1, -2, 3), NewVec3(-1, 2, 0)
	if got, want := a.Min(b), NewVec3(-1, -2, 0); got != want {
		t.Errorf("Min: got %v, want %v", got, want)
	}
	if got, want := a.Max(b), NewVec3(1, 2, 3); got != want {
		t.Errorf("Max: got %v, want %v", got, want)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if m[i][j] != want {
				t.Errorf("Identity[%d][%d]: got %v, want %v", i, j, m[i][j], want)
			}
		}
	}
}

func TestMat4MulIdentity(t *testing.T) {
	result := Mat4Identity().Mul(Mat4Identity())
	if result != Mat4Identity() {
		t.Errorf("Identity*Identity: got %v, want identity", result)
	}
}

func TestMat4Translation(t *testing.T) {
	offset := NewVec3(1, 2, 3)
	m := Mat4Translation(offset)

	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation row: got (%v,%v,%v), want (1,2,3)", m[3][0], m[3][1], m[3][2])
	}

	origin := NewVec4(0, 0, 0, 1)
	moved := origin.MulMat(m)
	if moved.ToVec3() != offset {
		t.Errorf("Translation applied: got %v, want %v", moved.ToVec3(), offset)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4Translation(NewVec3(2, -3, 5)).Mul(Mat4Scale(NewVec3(2, 2, 2)))
	roundTrip := m.Mul(m.Inverse())
	id := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if diff := roundTrip[i][j] - id[i][j]; diff > 1e-4 || diff < -1e-4 {
				t.Fatalf("M*M^-1 not identity at [%d][%d]: got %v", i, j, roundTrip[i][j])
			}
		}
	}
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("QuaternionIdentity: got %v", q)
	}
}

func TestQuaternionRotatesAxisAligned(t *testing.T) {
	// A 90 degree rotation about Y should carry +X onto -Z.
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	result := q.RotateVector(Vec3Right)

	const tol = 1e-3
	if math.Abs(float64(result.X)) > tol || math.Abs(float64(result.Y)) > tol || math.Abs(float64(result.Z+1)) > tol {
		t.Errorf("RotateVector: got %v, want approximately (0,0,-1)", result)
	}
}

func TestQuaternionToMat4MatchesRotateVector(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	viaQuat := q.RotateVector(Vec3Right)
	viaMat := Vec4{X: Vec3Right.X, Y: Vec3Right.Y, Z: Vec3Right.Z, W: 0}.MulMat(q.ToMat4()).ToVec3()

	const tol = 1e-3
	if viaQuat.Distance(viaMat) > tol {
		t.Errorf("ToMat4 disagrees with RotateVector: %v vs %v", viaMat, viaQuat)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(float32(math.Pi/4), 16.0/9.0, 0.1, 100)
	if m[0][0] == 0 {
		t.Error("Perspective: expected non-zero X scale")
	}
	if m[1][1] == 0 {
		t.Error("Perspective: expected non-zero Y scale")
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, NewVec3(0, 0, 0), Vec3Up)

	result := eye.ToVec4(1).MulMat(m)
	const tol = 1e-3
	if math.Abs(float64(result.X)) > tol || math.Abs(float64(result.Y)) > tol || math.Abs(float64(result.Z)) > tol {
		t.Errorf("LookAt: eye should transform to origin, got %v", result)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1, v2 := NewVec3(1, 2, 3), NewVec3(4, 5, 6)
	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1, m2 := Mat4Identity(), Mat4Identity()
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
