package math

import "math"

// Mat4 is a row-major 4x4 float32 matrix. Every constructor here
// builds for the row-vector convention: a point is transformed with
// v.MulMat(m), and composing A then B is A.Mul(B).
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(1)).ToVec3DivW()
}

func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

func Mat4Translation(t Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0], m[3][1], m[3][2] = t.X, t.Y, t.Z
	return m
}

func Mat4Scale(s Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0], m[1][1], m[2][2] = s.X, s.Y, s.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	c, s := float32(math.Cos(float64(angle))), float32(math.Sin(float64(angle)))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	c, s := float32(math.Cos(float64(angle))), float32(math.Sin(float64(angle)))
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	c, s := float32(math.Cos(float64(angle))), float32(math.Sin(float64(angle)))
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationAxis(axis Vec3, angle float32) Mat4 {
	axis = axis.Normalize()
	c, s := float32(math.Cos(float64(angle))), float32(math.Sin(float64(angle)))
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0},
		{t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0},
		{t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalf := float32(math.Tan(float64(fovY) / 2))

	m := Mat4Zero()
	m[0][0] = 1 / (aspect * tanHalf)
	m[1][1] = 1 / tanHalf
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

func Mat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	m := Mat4Identity()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[3][0] = -(right + left) / (right - left)
	m[3][1] = -(top + bottom) / (top - bottom)
	m[3][2] = -(far + near) / (far - near)
	return m
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// Mat4TRS composes translate * rotate(euler) * scale in that matrix
// product order; combined with the row-vector convention a point is
// actually transformed translate-first (v*T*R*S = ((v*T)*R)*S).
func Mat4TRS(translation, rotationEuler, scale Vec3) Mat4 {
	return Mat4Translation(translation).Mul(Mat4Rotation(rotationEuler)).Mul(Mat4Scale(scale))
}

func Mat4Rotation(euler Vec3) Mat4 {
	return Mat4RotationY(euler.Y).Mul(Mat4RotationX(euler.X)).Mul(Mat4RotationZ(euler.Z))
}

// Inverse computes the general 4x4 inverse via cofactor expansion,
// falling back to identity when the matrix is singular. Used on node
// world transforms to build the inverse-transpose normal matrix, so
// every cofactor is needed, not just the first column.
func (m Mat4) Inverse() Mat4 {
	sub3x3Det := func(r0, r1, r2, c0, c1, c2 int) float32 {
		return m[r0][c0]*(m[r1][c1]*m[r2][c2]-m[r1][c2]*m[r2][c1]) -
			m[r0][c1]*(m[r1][c0]*m[r2][c2]-m[r1][c2]*m[r2][c0]) +
			m[r0][c2]*(m[r1][c0]*m[r2][c1]-m[r1][c1]*m[r2][c0])
	}

	rows := [4][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}
	cols := [4][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}

	var cof Mat4
	for i := 0; i < 4; i++ {
		r := rows[i]
		for j := 0; j < 4; j++ {
			c := cols[j]
			minor := sub3x3Det(r[0], r[1], r[2], c[0], c[1], c[2])
			if (i+j)%2 != 0 {
				minor = -minor
			}
			cof[i][j] = minor
		}
	}

	det := m[0][0]*cof[0][0] + m[0][1]*cof[0][1] + m[0][2]*cof[0][2] + m[0][3]*cof[0][3]
	if det == 0 {
		return Mat4Identity()
	}

	invDet := 1 / det
	var inv Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[i][j] = cof[j][i] * invDet // adjugate is the cofactor transpose
		}
	}
	return inv
}
