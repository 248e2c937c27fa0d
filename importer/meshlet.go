package importer

import (
	"math"

	"vasset/asset"
	vmath "vasset/math"
)

// buildMeshlets greedily partitions a submesh's triangle range into
// meshlets bounded by asset.MaxMeshletVertices/asset.MaxMeshletTriangles.
// It does not attempt spatial locality beyond processing triangles in
// their existing order; a production clusterer would favor cache
// coherence, but nothing in this pipeline depends on that.
func buildMeshlets(positions []vmath.Vec3, indices []uint32, indexOffset, indexCount uint32, materialIndex uint32) asset.MeshletGroup {
	group := asset.MeshletGroup{}

	type building struct {
		vertexRemap map[uint32]uint32
		vertices    []uint32
		triangles   []byte
	}
	cur := &building{vertexRemap: map[uint32]uint32{}}

	flush := func() {
		if len(cur.triangles) == 0 {
			return
		}
		ml := asset.Meshlet{
			VertexOffset:   uint32(len(group.MeshletVertices)),
			VertexCount:    uint32(len(cur.vertices)),
			TriangleOffset: uint32(len(group.MeshletTriangles)),
			TriangleCount:  uint32(len(cur.triangles) / 3),
			MaterialIndex:  materialIndex,
		}
		ml.Center, ml.Radius = boundingSphere(positions, cur.vertices)
		ml.ConeAxis, ml.ConeCutoff, ml.ConeApex = normalCone(positions, cur.vertices, cur.triangles)
		group.Meshlets = append(group.Meshlets, ml)
		group.MeshletVertices = append(group.MeshletVertices, cur.vertices...)
		tris := append([]byte{}, cur.triangles...)
		for len(tris)%4 != 0 {
			tris = append(tris, 0)
		}
		group.MeshletTriangles = append(group.MeshletTriangles, tris...)
		cur = &building{vertexRemap: map[uint32]uint32{}}
	}

	for t := indexOffset; t+3 <= indexOffset+indexCount; t += 3 {
		tri := [3]uint32{indices[t], indices[t+1], indices[t+2]}

		newVerts := 0
		for _, v := range tri {
			if _, ok := cur.vertexRemap[v]; !ok {
				newVerts++
			}
		}
		wouldHaveTris := len(cur.triangles)/3 + 1
		wouldHaveVerts := len(cur.vertices) + newVerts
		if wouldHaveTris > asset.MaxMeshletTriangles || wouldHaveVerts > asset.MaxMeshletVertices {
			flush()
		}

		for _, v := range tri {
			local, ok := cur.vertexRemap[v]
			if !ok {
				local = uint32(len(cur.vertices))
				cur.vertexRemap[v] = local
				cur.vertices = append(cur.vertices, v)
			}
			cur.triangles = append(cur.triangles, byte(local))
		}
	}
	flush()

	return group
}

// normalCone derives a cluster-culling normal cone from the meshlet's
// per-triangle face normals: the axis is their normalized average, the
// cutoff the cosine of the widest angle any triangle's normal makes
// with that axis, and the apex the centroid of triangle centers (a
// coarse stand-in for the true apex a tighter solver would compute).
// These fields are not part of the v1 wire format; they exist so an
// in-process renderer can cull without recomputing them.
func normalCone(positions []vmath.Vec3, localToGlobal []uint32, localTriangles []byte) (axis vmath.Vec3, cutoff float32, apex vmath.Vec3) {
	triCount := len(localTriangles) / 3
	if triCount == 0 {
		return vmath.Vec3Zero, 1, vmath.Vec3Zero
	}

	normals := make([]vmath.Vec3, 0, triCount)
	var apexSum vmath.Vec3
	for t := 0; t < triCount; t++ {
		a := positions[localToGlobal[localTriangles[t*3+0]]]
		b := positions[localToGlobal[localTriangles[t*3+1]]]
		c := positions[localToGlobal[localTriangles[t*3+2]]]

		e1 := vmath.Vec3{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
		e2 := vmath.Vec3{X: c.X - a.X, Y: c.Y - a.Y, Z: c.Z - a.Z}
		n := e1.Cross(e2)
		if n.LengthSqr() > 1e-12 {
			n = n.Normalize()
		}
		normals = append(normals, n)

		center := vmath.Vec3{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3, Z: (a.Z + b.Z + c.Z) / 3}
		apexSum.X += center.X
		apexSum.Y += center.Y
		apexSum.Z += center.Z
	}

	var sum vmath.Vec3
	for _, n := range normals {
		sum.X += n.X
		sum.Y += n.Y
		sum.Z += n.Z
	}
	if sum.LengthSqr() < 1e-12 {
		axis = vmath.Vec3{X: 0, Y: 0, Z: 1}
	} else {
		axis = sum.Normalize()
	}

	cutoff = 1
	for _, n := range normals {
		if d := axis.Dot(n); d < cutoff {
			cutoff = d
		}
	}

	n := float32(triCount)
	apex = vmath.Vec3{X: apexSum.X / n, Y: apexSum.Y / n, Z: apexSum.Z / n}
	return axis, cutoff, apex
}

func boundingSphere(positions []vmath.Vec3, localToGlobal []uint32) (vmath.Vec3, float32) {
	if len(localToGlobal) == 0 {
		return vmath.Vec3Zero, 0
	}
	var center vmath.Vec3
	for _, gi := range localToGlobal {
		p := positions[gi]
		center.X += p.X
		center.Y += p.Y
		center.Z += p.Z
	}
	n := float32(len(localToGlobal))
	center = vmath.Vec3{X: center.X / n, Y: center.Y / n, Z: center.Z / n}

	var radius float32
	for _, gi := range localToGlobal {
		p := positions[gi]
		dx, dy, dz := p.X-center.X, p.Y-center.Y, p.Z-center.Z
		d2 := dx*dx + dy*dy + dz*dz
		if d2 > radius {
			radius = d2
		}
	}
	return center, float32(math.Sqrt(float64(radius)))
}
