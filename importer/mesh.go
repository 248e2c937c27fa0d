package importer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"vasset/asset"
	"vasset/asseterr"
	"vasset/codec"
	"vasset/id"
	"vasset/internal/vlog"
	vmath "vasset/math"
	"vasset/registry"
)

// MeshOptions are the MeshImporter's enumerated knobs.
type MeshOptions struct {
	GenerateMeshlets bool
}

// MeshImporter cooks source scene files (glTF/GLB, OBJ) into VMESH
// assets, importing and registering every referenced material and
// texture along the way.
type MeshImporter struct {
	Registry  *registry.Registry
	Textures  *TextureImporter
	Options   MeshOptions
	ZstdLevel int
	Logger    *zap.SugaredLogger
}

// Import runs the mesh import pipeline for sourcePath. A cache hit
// when reimport is false returns the existing id without touching the
// filesystem again.
func (mi *MeshImporter) Import(sourcePath string, reimport bool) (id.Id, error) {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	relative := mi.Registry.ImportedPath(asset.KindMesh, stem, true)
	assetID := id.FromPath(relative)

	if !reimport {
		if e, ok := mi.Registry.Lookup(assetID); ok && e.Kind != asset.KindUnknown {
			return assetID, nil
		}
	}

	ext := strings.ToLower(filepath.Ext(sourcePath))
	var m *asset.Mesh
	var err error
	switch ext {
	case ".gltf", ".glb":
		m, err = mi.loadGLTF(sourcePath)
	case ".obj":
		m, err = mi.loadOBJ(sourcePath)
	case ".fbx", ".dae":
		// FBX and Collada scenes are read through an external
		// SceneLoader this pipeline has no concrete implementation of;
		// dispatch still occurs so the failure is reported per-file
		// rather than the source silently skipped.
		return id.Nil, asseterr.New(asseterr.ImportFailed, sourcePath)
	default:
		return id.Nil, fmt.Errorf("mesh import: unsupported extension %q", ext)
	}
	if err != nil {
		return id.Nil, err
	}
	m.Id = assetID
	m.Name = stem

	if mi.Options.GenerateMeshlets {
		for i := range m.SubMeshes {
			sm := &m.SubMeshes[i]
			sm.Meshlets = buildMeshlets(m.Positions, m.Indices, sm.IndexOffset, sm.IndexCount, sm.MaterialIndex)
		}
	}

	if err := m.ValidateAttributeConsistency(); err != nil {
		return id.Nil, err
	}
	if err := m.ValidateRanges(); err != nil {
		return id.Nil, err
	}

	outPath := mi.Registry.ImportedPath(asset.KindMesh, stem, false)
	if err := codec.SaveMesh(outPath, m, mi.ZstdLevel); err != nil {
		return id.Nil, err
	}
	if err := mi.Registry.Register(assetID, relative, asset.KindMesh); err != nil {
		return id.Nil, err
	}

	params := map[string]string{
		"generate_meshlets": strconv.FormatBool(mi.Options.GenerateMeshlets),
	}
	if err := writeVimportSidecar(mi.Registry, sourcePath, assetID, "mesh", relative, params); err != nil {
		return id.Nil, err
	}
	return assetID, nil
}

// derivedMaterialName builds the registry-facing material name from
// the source file's stem and the source material's own name, falling
// back to the material's index within the source when it has none, so
// two sources can both carry a "Default" material without colliding.
func derivedMaterialName(sourceStem, matName string, index int) string {
	if matName == "" {
		return fmt.Sprintf("%s_%d", sourceStem, index)
	}
	return sourceStem + "_" + matName
}

// saveMaterial cooks and registers a single processed material under
// its derived name, deriving its id from the same imported-path
// scheme as every other asset kind.
func (mi *MeshImporter) saveMaterial(derivedName string, mat *asset.Material) (id.Id, error) {
	relative := mi.Registry.ImportedPath(asset.KindMaterial, derivedName, true)
	matID := id.FromPath(relative)
	mat.Id = matID

	outPath := mi.Registry.ImportedPath(asset.KindMaterial, derivedName, false)
	if err := codec.SaveMaterial(outPath, mat); err != nil {
		return id.Nil, err
	}
	if err := mi.Registry.Register(matID, relative, asset.KindMaterial); err != nil {
		return id.Nil, err
	}
	return matID, nil
}

// gltfNodeLocalTransform composes a node's local TRS into a single
// matrix, the glTF-default identity when a channel is absent. Explicit
// node `matrix` fields are rare in exporter output (Blender always
// writes TRS) and are not decomposed here; such a node is treated as
// identity rather than guessed at.
func gltfNodeLocalTransform(gn *gltf.Node) vmath.Mat4 {
	t := gn.TranslationOrDefault()
	s := gn.ScaleOrDefault()
	r := gn.RotationOrDefault()

	translate := vmath.Mat4Translation(vmath.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})
	scale := vmath.Mat4Scale(vmath.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])})
	rotate := vmath.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}.ToMat4()

	return scale.Mul(rotate).Mul(translate)
}

// transformNormal applies the upper 3x3 of m (expected to already be
// an inverse-transpose) to a direction, renormalizing afterward so
// non-uniform scale on the source node doesn't leave skewed normals.
func transformNormal(m vmath.Mat4, n vmath.Vec3) vmath.Vec3 {
	v := vmath.Vec4{X: n.X, Y: n.Y, Z: n.Z, W: 0}.MulMat(m)
	return vmath.Vec3{X: v.X, Y: v.Y, Z: v.Z}.Normalize()
}

// gltfMeshWorldTransforms walks the scene's node hierarchy (the
// default scene, or every parentless node when none is set) and
// returns, for every mesh index reached, the world matrix of the
// first node found referencing it. A mesh instanced by more than one
// node is baked with only that first transform — this importer
// flattens the document into one cooked mesh, so per-instance
// duplication is out of scope.
func gltfMeshWorldTransforms(doc *gltf.Document) map[int]vmath.Mat4 {
	out := map[int]vmath.Mat4{}
	visited := make([]bool, len(doc.Nodes))

	var walk func(idx int, parent vmath.Mat4)
	walk = func(idx int, parent vmath.Mat4) {
		if idx < 0 || idx >= len(doc.Nodes) || visited[idx] {
			return
		}
		visited[idx] = true
		gn := doc.Nodes[idx]
		world := gltfNodeLocalTransform(gn).Mul(parent)
		if gn.Mesh != nil {
			if _, ok := out[*gn.Mesh]; !ok {
				out[*gn.Mesh] = world
			}
		}
		for _, c := range gn.Children {
			walk(c, world)
		}
	}

	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, rootIdx := range doc.Scenes[*doc.Scene].Nodes {
			walk(rootIdx, vmath.Mat4Identity())
		}
	} else {
		hasParent := make([]bool, len(doc.Nodes))
		for _, gn := range doc.Nodes {
			for _, c := range gn.Children {
				if c < len(hasParent) {
					hasParent[c] = true
				}
			}
		}
		for i := range doc.Nodes {
			if !hasParent[i] {
				walk(i, vmath.Mat4Identity())
			}
		}
	}
	return out
}

// loadGLTF flattens every mesh primitive in the document into one
// cooked Mesh, baking each node's world transform into its positions
// and normals so the cooked mesh needs no further placement at
// runtime.
func (mi *MeshImporter) loadGLTF(path string) (*asset.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	mesh := &asset.Mesh{}
	mesh.MaterialRefs = make([]id.Id, len(doc.Materials))
	for i, gm := range doc.Materials {
		matID, err := mi.importGLTFMaterial(doc, dir, derivedMaterialName(stem, gm.Name, i), gm)
		if err != nil {
			return nil, err
		}
		mesh.MaterialRefs[i] = matID
	}

	meshWorld := gltfMeshWorldTransforms(doc)

	var anyUV0 bool

	for meshIdx, gm := range doc.Meshes {
		world, ok := meshWorld[meshIdx]
		if !ok {
			world = vmath.Mat4Identity()
		}
		normalMat := world.Inverse().Transpose()

		for primIdx, prim := range gm.Primitives {
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("gltf positions: %w", err)
			}

			vertexOffset := uint32(len(mesh.Positions))
			vcount := uint32(len(positions))
			localPositions := make([]vmath.Vec3, vcount)
			for i, p := range positions {
				local := vmath.Vec3{X: p[0], Y: p[1], Z: p[2]}
				localPositions[i] = world.MulVec3(local)
			}
			mesh.Positions = append(mesh.Positions, localPositions...)

			// Indices are needed before normal generation so a
			// primitive missing NORMAL can have smooth normals
			// computed from its own triangles.
			indexOffset := uint32(len(mesh.Indices))
			var localIndices []uint32
			if prim.Indices != nil {
				localIndices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("gltf indices: %w", err)
				}
			} else {
				localIndices = make([]uint32, vcount)
				for i := range localIndices {
					localIndices[i] = uint32(i)
				}
			}
			for _, idx := range localIndices {
				mesh.Indices = append(mesh.Indices, vertexOffset+idx)
			}

			if nidx, ok := prim.Attributes["NORMAL"]; ok {
				normals, err := modeler.ReadNormal(doc, doc.Accessors[nidx], nil)
				if err != nil {
					return nil, fmt.Errorf("gltf normals: %w", err)
				}
				for _, n := range normals {
					local := vmath.Vec3{X: n[0], Y: n[1], Z: n[2]}
					mesh.Normals = append(mesh.Normals, transformNormal(normalMat, local))
				}
			} else {
				mesh.Normals = append(mesh.Normals, generateSmoothNormals(localPositions, localIndices)...)
			}

			if uvIdx, ok := prim.Attributes["TEXCOORD_0"]; ok {
				uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("gltf uvs: %w", err)
				}
				for _, uv := range uvs {
					mesh.TexCoord0 = append(mesh.TexCoord0, vmath.Vec2{X: uv[0], Y: 1 - uv[1]})
				}
				anyUV0 = true
			} else {
				for i := uint32(0); i < vcount; i++ {
					mesh.TexCoord0 = append(mesh.TexCoord0, vmath.Vec2{})
				}
			}

			var matIndex uint32
			if prim.Material != nil {
				matIndex = uint32(*prim.Material)
			}

			name := gm.Name
			if name == "" {
				name = fmt.Sprintf("mesh_%d", meshIdx)
			}
			if len(gm.Primitives) > 1 {
				name = fmt.Sprintf("%s_p%d", name, primIdx)
			}

			mesh.SubMeshes = append(mesh.SubMeshes, asset.SubMesh{
				VertexOffset:  vertexOffset,
				VertexCount:   vcount,
				IndexOffset:   indexOffset,
				IndexCount:    uint32(len(localIndices)),
				MaterialIndex: matIndex,
				Name:          name,
			})
		}
	}

	mesh.VertexCount = uint32(len(mesh.Positions))
	// Every vertex now carries a normal, real or generated, so the
	// flag is set unconditionally rather than gated on any primitive
	// having supplied one.
	mesh.VertexFlags = asset.FlagPosition | asset.FlagNormal
	if anyUV0 {
		mesh.VertexFlags |= asset.FlagTexCoord0
	} else {
		mesh.TexCoord0 = nil
	}

	uvsForTangents := mesh.TexCoord0
	if uvsForTangents == nil {
		uvsForTangents = make([]vmath.Vec2, mesh.VertexCount)
	}
	if mesh.VertexCount > 0 {
		mesh.Tangents = computeTangents(mesh.Positions, mesh.Normals, uvsForTangents, mesh.Indices)
		mesh.VertexFlags |= asset.FlagTangent
	}

	return mesh, nil
}

func (mi *MeshImporter) importGLTFMaterial(doc *gltf.Document, dir, derivedName string, gm *gltf.Material) (id.Id, error) {
	// An already-registered material under the same derived name is
	// reused rather than re-processed, matching the texture importer's
	// cache gate.
	matRelative := mi.Registry.ImportedPath(asset.KindMaterial, derivedName, true)
	matID := id.FromPath(matRelative)
	if e, ok := mi.Registry.Lookup(matID); ok && e.Kind == asset.KindMaterial {
		return matID, nil
	}

	props := NewPropertyBag()
	textures := map[textureChannel]string{}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		props.Set("BASE_COLOR", PropValue{Kind: PropColor4, C4: [4]float32{float32(cf[0]), float32(cf[1]), float32(cf[2]), float32(cf[3])}})
		props.Set("METALLIC_FACTOR", PropValue{Kind: PropFloat, Float: float32(pbr.MetallicFactorOrDefault())})
		props.Set("ROUGHNESS_FACTOR", PropValue{Kind: PropFloat, Float: float32(pbr.RoughnessFactorOrDefault())})
		if p := gltfTextureInfoPath(doc, pbr.BaseColorTexture); p != "" {
			textures[ChannelDiffuse] = p
		}
		if p := gltfTextureInfoPath(doc, pbr.MetallicRoughnessTexture); p != "" {
			textures[ChannelGltfMetallicRoughness] = p
		}
	}
	if p := gltfNormalTexturePath(doc, gm.NormalTexture); p != "" {
		textures[ChannelNormals] = p
	}
	if p := gltfOcclusionTexturePath(doc, gm.OcclusionTexture); p != "" {
		textures[ChannelLightmap] = p
	}
	if p := gltfTextureInfoPath(doc, gm.EmissiveTexture); p != "" {
		textures[ChannelEmissive] = p
	}

	ef := gm.EmissiveFactor
	props.Set("COLOR_EMISSIVE", PropValue{Kind: PropColor3, C3: [3]float32{float32(ef[0]), float32(ef[1]), float32(ef[2])}})
	if string(gm.AlphaMode) != "" {
		props.Set("GLTF_ALPHAMODE", PropValue{Kind: PropString, Str: string(gm.AlphaMode)})
	}
	props.Set("GLTF_ALPHACUTOFF", PropValue{Kind: PropFloat, Float: float32(gm.AlphaCutoffOrDefault())})
	if gm.DoubleSided {
		props.Set("TWOSIDED", PropValue{Kind: PropBool, Bool: true})
	}

	resolve := func(rel string) (id.Id, error) {
		return mi.Textures.Import(filepath.Join(dir, rel), false)
	}

	mat, err := processMaterial(gm.Name, props, textures, resolve, vlog.Or(mi.Logger))
	if err != nil {
		return id.Nil, err
	}
	return mi.saveMaterial(derivedName, mat)
}

func gltfTextureInfoPath(doc *gltf.Document, ref *gltf.TextureInfo) string {
	if ref == nil {
		return ""
	}
	return gltfImageURI(doc, ref.Index)
}

func gltfNormalTexturePath(doc *gltf.Document, ref *gltf.NormalTexture) string {
	if ref == nil || ref.Index == nil {
		return ""
	}
	return gltfImageURI(doc, *ref.Index)
}

func gltfOcclusionTexturePath(doc *gltf.Document, ref *gltf.OcclusionTexture) string {
	if ref == nil || ref.Index == nil {
		return ""
	}
	return gltfImageURI(doc, *ref.Index)
}

func gltfImageURI(doc *gltf.Document, texIdx int) string {
	if doc == nil || texIdx >= len(doc.Textures) {
		return ""
	}
	gt := doc.Textures[texIdx]
	if gt.Source == nil || int(*gt.Source) >= len(doc.Images) {
		return ""
	}
	img := doc.Images[*gt.Source]
	if img.URI == "" || img.IsEmbeddedResource() {
		return ""
	}
	return img.URI
}

// loadOBJ parses a Wavefront OBJ scene into a single cooked Mesh, one
// submesh per "o"/"g" group, with materials pulled from any mtllib
// directive.
func (mi *MeshImporter) loadOBJ(path string) (*asset.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj open %q: %w", path, err)
	}
	defer f.Close()

	var positions []vmath.Vec3
	var normals []vmath.Vec3
	var uvs []vmath.Vec2

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh := &asset.Mesh{}
	materialIndexOf := map[string]int{}

	type group struct {
		name        string
		material    string
		vertexStart uint32
		indexStart  uint32
		vertexMap   map[string]uint32
	}
	newGroup := func(name, material string) *group {
		return &group{name: name, material: material, vertexStart: uint32(len(mesh.Positions)), indexStart: uint32(len(mesh.Indices)), vertexMap: map[string]uint32{}}
	}
	cur := newGroup("default", "")

	flush := func(g *group) {
		vcount := uint32(len(mesh.Positions)) - g.vertexStart
		if vcount == 0 {
			return
		}
		var matIdx uint32
		if idx, ok := materialIndexOf[g.material]; ok {
			matIdx = uint32(idx)
		}
		mesh.SubMeshes = append(mesh.SubMeshes, asset.SubMesh{
			VertexOffset:  g.vertexStart,
			VertexCount:   vcount,
			IndexOffset:   g.indexStart,
			IndexCount:    uint32(len(mesh.Indices)) - g.indexStart,
			MaterialIndex: matIdx,
			Name:          g.name,
		})
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 32)
				y, _ := strconv.ParseFloat(parts[2], 32)
				z, _ := strconv.ParseFloat(parts[3], 32)
				positions = append(positions, vmath.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
			}
		case "vn":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 32)
				y, _ := strconv.ParseFloat(parts[2], 32)
				z, _ := strconv.ParseFloat(parts[3], 32)
				normals = append(normals, vmath.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
			}
		case "vt":
			if len(parts) >= 3 {
				u, _ := strconv.ParseFloat(parts[1], 32)
				v, _ := strconv.ParseFloat(parts[2], 32)
				uvs = append(uvs, vmath.Vec2{X: float32(u), Y: 1 - float32(v)})
			}
		case "f":
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, fs := range parts[1:] {
				if gi, ok := cur.vertexMap[fs]; ok {
					faceVerts = append(faceVerts, gi)
					continue
				}
				p, n, uv := parseOBJFaceVertex(fs, positions, normals, uvs)
				gi := uint32(len(mesh.Positions))
				mesh.Positions = append(mesh.Positions, p)
				mesh.Normals = append(mesh.Normals, n)
				mesh.TexCoord0 = append(mesh.TexCoord0, uv)
				cur.vertexMap[fs] = gi
				faceVerts = append(faceVerts, gi)
			}
			for i := 2; i < len(faceVerts); i++ {
				mesh.Indices = append(mesh.Indices, faceVerts[0], faceVerts[i-1], faceVerts[i])
			}
		case "usemtl":
			if len(parts) > 1 {
				cur.material = parts[1]
			}
		case "o", "g":
			flush(cur)
			name := "unnamed"
			if len(parts) > 1 {
				name = parts[1]
			}
			cur = newGroup(name, cur.material)
		case "mtllib":
			if len(parts) > 1 {
				mtlPath := filepath.Join(filepath.Dir(path), parts[1])
				if err := mi.importOBJMaterials(mtlPath, stem, mesh, materialIndexOf); err != nil {
					return nil, fmt.Errorf("mtllib %q: %w", mtlPath, err)
				}
			}
		}
	}
	flush(cur)
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(mesh.SubMeshes) == 0 {
		return nil, fmt.Errorf("obj %q: no geometry", path)
	}

	// Mirrors the teacher's obj_loader.go: an OBJ file with no "vn"
	// lines at all gets whole-mesh area-weighted smooth normals instead
	// of the per-vertex (0,1,0) placeholder parseOBJFaceVertex falls
	// back to when an individual face vertex omits its normal index.
	hasNormals := len(normals) > 0
	if !hasNormals {
		mesh.Normals = generateSmoothNormals(mesh.Positions, mesh.Indices)
	}

	mesh.VertexCount = uint32(len(mesh.Positions))
	mesh.VertexFlags = asset.FlagPosition | asset.FlagNormal | asset.FlagTexCoord0

	if mesh.VertexCount > 0 {
		mesh.Tangents = computeTangents(mesh.Positions, mesh.Normals, mesh.TexCoord0, mesh.Indices)
		mesh.VertexFlags |= asset.FlagTangent
	}

	return mesh, nil
}

func parseOBJFaceVertex(spec string, positions, normals []vmath.Vec3, uvs []vmath.Vec2) (vmath.Vec3, vmath.Vec3, vmath.Vec2) {
	var p vmath.Vec3
	n := vmath.Vec3{X: 0, Y: 1, Z: 0}
	var uv vmath.Vec2

	parts := strings.Split(spec, "/")
	if len(parts) >= 1 && parts[0] != "" {
		if idx, err := strconv.Atoi(parts[0]); err == nil {
			if idx < 0 {
				idx = len(positions) + idx + 1
			}
			if idx > 0 && idx <= len(positions) {
				p = positions[idx-1]
			}
		}
	}
	if len(parts) >= 2 && parts[1] != "" {
		if idx, err := strconv.Atoi(parts[1]); err == nil {
			if idx < 0 {
				idx = len(uvs) + idx + 1
			}
			if idx > 0 && idx <= len(uvs) {
				uv = uvs[idx-1]
			}
		}
	}
	if len(parts) >= 3 && parts[2] != "" {
		if idx, err := strconv.Atoi(parts[2]); err == nil {
			if idx < 0 {
				idx = len(normals) + idx + 1
			}
			if idx > 0 && idx <= len(normals) {
				n = normals[idx-1]
			}
		}
	}
	return p, n, uv
}

// importOBJMaterials parses a .mtl file, processes each material
// through the same rules as every other source format, and appends
// the results to mesh.MaterialRefs.
func (mi *MeshImporter) importOBJMaterials(path, sourceStem string, mesh *asset.Mesh, materialIndexOf map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var order []string
	bags := map[string]*PropertyBag{}
	var current *PropertyBag
	var currentName string

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "newmtl":
			if len(parts) > 1 {
				currentName = parts[1]
				current = NewPropertyBag()
				bags[currentName] = current
				order = append(order, currentName)
			}
		case "Kd":
			if current != nil && len(parts) >= 4 {
				current.Set("COLOR_DIFFUSE", PropValue{Kind: PropColor3, C3: parseObjColor3(parts)})
			}
		case "Ks":
			if current != nil && len(parts) >= 4 {
				current.Set("COLOR_SPECULAR", PropValue{Kind: PropColor3, C3: parseObjColor3(parts)})
			}
		case "Ke":
			if current != nil && len(parts) >= 4 {
				current.Set("COLOR_EMISSIVE", PropValue{Kind: PropColor3, C3: parseObjColor3(parts)})
			}
		case "Ns":
			if current != nil && len(parts) >= 2 {
				v, _ := strconv.ParseFloat(parts[1], 32)
				current.Set("Ns", PropValue{Kind: PropFloat, Float: float32(v)})
			}
		case "Ni":
			if current != nil && len(parts) >= 2 {
				v, _ := strconv.ParseFloat(parts[1], 32)
				current.Set("Ni", PropValue{Kind: PropFloat, Float: float32(v)})
			}
		case "d", "Tr":
			if current != nil && len(parts) >= 2 {
				v, _ := strconv.ParseFloat(parts[1], 32)
				val := float32(v)
				if parts[0] == "Tr" {
					val = 1 - val
				}
				current.Set("d", PropValue{Kind: PropFloat, Float: val})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	for i, name := range order {
		if _, ok := materialIndexOf[name]; ok {
			continue
		}
		derivedName := derivedMaterialName(sourceStem, name, i)
		relative := mi.Registry.ImportedPath(asset.KindMaterial, derivedName, true)
		matID := id.FromPath(relative)
		if e, ok := mi.Registry.Lookup(matID); ok && e.Kind == asset.KindMaterial {
			materialIndexOf[name] = len(mesh.MaterialRefs)
			mesh.MaterialRefs = append(mesh.MaterialRefs, matID)
			continue
		}
		mat, err := processMaterial(name, bags[name], nil, nil, vlog.Or(mi.Logger))
		if err != nil {
			return err
		}
		if matID, err = mi.saveMaterial(derivedName, mat); err != nil {
			return err
		}
		materialIndexOf[name] = len(mesh.MaterialRefs)
		mesh.MaterialRefs = append(mesh.MaterialRefs, matID)
	}
	return nil
}

func parseObjColor3(parts []string) [3]float32 {
	r, _ := strconv.ParseFloat(parts[1], 32)
	g, _ := strconv.ParseFloat(parts[2], 32)
	b, _ := strconv.ParseFloat(parts[3], 32)
	return [3]float32{float32(r), float32(g), float32(b)}
}

// IsMeshExt reports whether ext (with leading dot, any case)
// dispatches to MeshImporter.
func IsMeshExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".gltf", ".glb", ".obj", ".fbx", ".dae":
		return true
	default:
		return false
	}
}
