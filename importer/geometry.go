package importer

import vmath "vasset/math"

// generateSmoothNormals computes area-weighted per-vertex normals: each
// triangle's unnormalized face normal (its cross-product magnitude
// scales with the triangle's area) is accumulated into its three
// vertices, then every accumulated normal is normalized. Adapted from
// the teacher's scene/obj_loader.go generateFlatNormals, generalized
// from a core.Vertex slice to raw parallel position/index slices so
// both the OBJ and glTF loaders can call it.
func generateSmoothNormals(positions []vmath.Vec3, indices []uint32) []vmath.Vec3 {
	normals := make([]vmath.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := positions[i0], positions[i1], positions[i2]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// computeTangents generates a per-vertex tangent with a handedness-
// encoding w in {-1, +1}, adapted from the teacher's scene/tangents.go
// ComputeTangents: the same per-triangle UV-area tangent/bitangent
// accumulation followed by Gram-Schmidt orthogonalization against the
// vertex normal, with the teacher's separate Tangent/Bitangent vertex
// fields collapsed into the single Vec4 this pipeline's VMESH codec
// persists.
func computeTangents(positions []vmath.Vec3, normals []vmath.Vec3, uvs []vmath.Vec2, indices []uint32) []vmath.Vec4 {
	tangents := make([]vmath.Vec3, len(positions))
	bitangents := make([]vmath.Vec3, len(positions))

	accum := func(i0, i1, i2 uint32) {
		p0, p1, p2 := positions[i0], positions[i1], positions[i2]
		uv0, uv1, uv2 := uvs[i0], uvs[i1], uvs[i2]

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p0)

		du1 := uv1.X - uv0.X
		dv1 := uv1.Y - uv0.Y
		du2 := uv2.X - uv0.X
		dv2 := uv2.Y - uv0.Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return // degenerate UV triangle
		}
		r := 1 / denom

		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))

		tangents[i0] = tangents[i0].Add(t)
		tangents[i1] = tangents[i1].Add(t)
		tangents[i2] = tangents[i2].Add(t)

		bitangents[i0] = bitangents[i0].Add(b)
		bitangents[i1] = bitangents[i1].Add(b)
		bitangents[i2] = bitangents[i2].Add(b)
	}

	for i := 0; i+2 < len(indices); i += 3 {
		accum(indices[i], indices[i+1], indices[i+2])
	}

	out := make([]vmath.Vec4, len(positions))
	for i := range out {
		n := normals[i]
		t := tangents[i]

		// T = normalize(T - N*(N·T))
		t = t.Sub(n.Mul(n.Dot(t)))
		if t.LengthSqr() < 1e-8 {
			// Degenerate: pick an arbitrary tangent perpendicular to N.
			if absF32(n.X) < 0.9 {
				t = vmath.Vec3{X: 1}.Sub(n.Mul(n.X))
			} else {
				t = vmath.Vec3{Y: 1}.Sub(n.Mul(n.Y))
			}
		}
		t = t.Normalize()

		w := float32(1)
		if n.Cross(t).Dot(bitangents[i]) < 0 {
			w = -1
		}
		out[i] = t.ToVec4(w)
	}
	return out
}

func absF32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
