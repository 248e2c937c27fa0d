package codec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/DataDog/zstd"

	"vasset/asset"
	"vasset/asseterr"
	"vasset/core"
	"vasset/id"
	vmath "vasset/math"
)

const meshMagic = "VMESH"
const meshContainerVersion = 1

// flagZstd marks the container payload as zstd-compressed to rawSize
// bytes.
const flagZstd uint32 = 1

// SaveMesh writes m to path wrapped in the VMESH container.
// zstdLevel <= 0 stores the inner payload raw; any positive
// level compresses it with DataDog/zstd at that level.
func SaveMesh(path string, m *asset.Mesh, zstdLevel int) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeMesh(f, m, zstdLevel)
}

func EncodeMesh(w io.Writer, m *asset.Mesh, zstdLevel int) error {
	var raw bytes.Buffer
	if err := encodeMeshPayload(&raw, m); err != nil {
		return err
	}

	var flags uint32
	payload := raw.Bytes()
	if zstdLevel > 0 {
		compressed, err := zstd.CompressLevel(nil, raw.Bytes(), zstdLevel)
		if err != nil {
			return asseterr.Wrap(asseterr.IOError, "", err)
		}
		flags = flagZstd
		payload = compressed
	}

	if err := writeMagic(w, meshMagic); err != nil {
		return err
	}
	if err := writeU32(w, meshContainerVersion); err != nil {
		return err
	}
	if err := writeU32(w, flags); err != nil {
		return err
	}
	if err := writeU64(w, uint64(raw.Len())); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// LoadMesh reads path as a VMESH container.
func LoadMesh(path string) (*asset.Mesh, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeMesh(f, path)
}

func LoadMeshFromMemory(data []byte, path string) (*asset.Mesh, error) {
	return DecodeMesh(bytes.NewReader(data), path)
}

func DecodeMesh(r io.Reader, path string) (*asset.Mesh, error) {
	if err := readMagic(r, meshMagic, path); err != nil {
		return nil, err
	}
	version, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	if version != meshContainerVersion {
		return nil, asseterr.New(asseterr.InvalidFormat, path)
	}
	flags, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	rawSize, err := readU64(r, path)
	if err != nil {
		return nil, err
	}

	packed, err := io.ReadAll(r)
	if err != nil {
		return nil, asseterr.Wrap(asseterr.IOError, path, err)
	}

	var raw []byte
	if flags&flagZstd != 0 {
		raw, err = zstd.Decompress(make([]byte, 0, rawSize), packed)
		if err != nil {
			return nil, asseterr.Wrap(asseterr.InvalidFormat, path, err)
		}
		if uint64(len(raw)) != rawSize {
			return nil, asseterr.New(asseterr.InvalidFormat, path)
		}
	} else {
		if uint64(len(packed)) < rawSize {
			return nil, asseterr.New(asseterr.IOError, path)
		}
		raw = packed[:rawSize]
	}

	inner := limitedReader(bytes.NewReader(raw), rawSize)
	return decodeMeshPayload(inner, path)
}

func encodeMeshPayload(w io.Writer, m *asset.Mesh) error {
	if err := writeMagic(w, meshMagic); err != nil {
		return err
	}
	if err := writeId(w, m.Id); err != nil {
		return err
	}
	if err := writeU32(w, m.VertexCount); err != nil {
		return err
	}
	if err := writeU32(w, uint32(m.VertexFlags)); err != nil {
		return err
	}
	for i := uint32(0); i < m.VertexCount; i++ {
		if err := writeVertexAttributes(w, m, i); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(m.Indices))); err != nil {
		return err
	}
	for _, idx := range m.Indices {
		if err := writeU32(w, idx); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(m.SubMeshes))); err != nil {
		return err
	}
	for _, s := range m.SubMeshes {
		if err := encodeSubMesh(w, &s); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(m.MaterialRefs))); err != nil {
		return err
	}
	for _, ref := range m.MaterialRefs {
		if err := writeId(w, ref); err != nil {
			return err
		}
	}
	return writeString(w, m.Name)
}

func writeVertexAttributes(w io.Writer, m *asset.Mesh, i uint32) error {
	for _, flag := range asset.OrderedVertexFlags {
		if m.VertexFlags&flag == 0 {
			continue
		}
		var err error
		switch flag {
		case asset.FlagPosition:
			err = writeVec3(w, m.Positions[i])
		case asset.FlagNormal:
			err = writeVec3(w, m.Normals[i])
		case asset.FlagColor:
			err = writeVertexColor(w, m.Colors[i])
		case asset.FlagTexCoord0:
			err = writeVec2(w, m.TexCoord0[i])
		case asset.FlagTexCoord1:
			err = writeVec2(w, m.TexCoord1[i])
		case asset.FlagTangent:
			err = writeVec4(w, m.Tangents[i])
		case asset.FlagJointIndices:
			err = writeJointIndices(w, m.JointIndices[i])
		case asset.FlagJointWeights:
			err = writeVec4(w, m.JointWeights[i])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeJointIndices(w io.Writer, j asset.JointIndices4) error {
	for _, v := range j {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func readJointIndices(r io.Reader, path string) (asset.JointIndices4, error) {
	var j asset.JointIndices4
	for i := range j {
		if err := binary.Read(r, binary.LittleEndian, &j[i]); err != nil {
			return j, asseterr.Wrap(asseterr.IOError, path, err)
		}
	}
	return j, nil
}

func encodeSubMesh(w io.Writer, s *asset.SubMesh) error {
	fields := []uint32{s.VertexOffset, s.VertexCount, s.IndexOffset, s.IndexCount, s.MaterialIndex}
	for _, v := range fields {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(s.Meshlets.Meshlets))); err != nil {
		return err
	}
	for _, ml := range s.Meshlets.Meshlets {
		if err := encodeMeshlet(w, &ml); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(s.Meshlets.MeshletVertices))); err != nil {
		return err
	}
	for _, v := range s.Meshlets.MeshletVertices {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(s.Meshlets.MeshletTriangles))); err != nil {
		return err
	}
	if len(s.Meshlets.MeshletTriangles) > 0 {
		if _, err := w.Write(s.Meshlets.MeshletTriangles); err != nil {
			return err
		}
	}
	return writeString(w, s.Name)
}

func encodeMeshlet(w io.Writer, ml *asset.Meshlet) error {
	fields := []uint32{ml.VertexOffset, ml.VertexCount, ml.TriangleOffset, ml.TriangleCount, ml.MaterialIndex}
	for _, v := range fields {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	if err := writeVec3(w, ml.Center); err != nil {
		return err
	}
	return writeF32(w, ml.Radius)
}

func decodeMeshPayload(r io.Reader, path string) (*asset.Mesh, error) {
	if err := readMagic(r, meshMagic, path); err != nil {
		return nil, err
	}
	m := &asset.Mesh{}
	var err error
	if m.Id, err = readId(r, path); err != nil {
		return nil, err
	}
	if m.VertexCount, err = readU32(r, path); err != nil {
		return nil, err
	}
	flags, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	m.VertexFlags = asset.VertexFlags(flags)
	for i := uint32(0); i < m.VertexCount; i++ {
		if err := readVertexAttributes(r, path, m, i); err != nil {
			return nil, err
		}
	}

	indexCount, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	m.Indices = make([]uint32, indexCount)
	for i := range m.Indices {
		if m.Indices[i], err = readU32(r, path); err != nil {
			return nil, err
		}
	}

	subMeshCount, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	m.SubMeshes = make([]asset.SubMesh, subMeshCount)
	for i := range m.SubMeshes {
		sm, err := decodeSubMesh(r, path)
		if err != nil {
			return nil, err
		}
		m.SubMeshes[i] = *sm
	}

	materialCount, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	m.MaterialRefs = make([]id.Id, materialCount)
	for i := range m.MaterialRefs {
		if m.MaterialRefs[i], err = readId(r, path); err != nil {
			return nil, err
		}
	}

	if m.Name, err = readString(r, path, 0); err != nil {
		return nil, err
	}
	if err := m.ValidateAttributeConsistency(); err != nil {
		return nil, asseterr.Wrap(asseterr.InvalidFormat, path, err)
	}
	if err := m.ValidateRanges(); err != nil {
		return nil, asseterr.Wrap(asseterr.InvalidFormat, path, err)
	}
	return m, nil
}

func readVertexAttributes(r io.Reader, path string, m *asset.Mesh, i uint32) error {
	n := int(m.VertexCount)
	ensureVertexCapacity(m, n)
	for _, flag := range asset.OrderedVertexFlags {
		if m.VertexFlags&flag == 0 {
			continue
		}
		var err error
		switch flag {
		case asset.FlagPosition:
			m.Positions[i], err = readVec3(r, path)
		case asset.FlagNormal:
			m.Normals[i], err = readVec3(r, path)
		case asset.FlagColor:
			m.Colors[i], err = readVertexColor(r, path)
		case asset.FlagTexCoord0:
			m.TexCoord0[i], err = readVec2(r, path)
		case asset.FlagTexCoord1:
			m.TexCoord1[i], err = readVec2(r, path)
		case asset.FlagTangent:
			m.Tangents[i], err = readVec4(r, path)
		case asset.FlagJointIndices:
			m.JointIndices[i], err = readJointIndices(r, path)
		case asset.FlagJointWeights:
			m.JointWeights[i], err = readVec4(r, path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureVertexCapacity(m *asset.Mesh, n int) {
	if m.VertexFlags&asset.FlagPosition != 0 && m.Positions == nil {
		m.Positions = make([]vmath.Vec3, n)
	}
	if m.VertexFlags&asset.FlagNormal != 0 && m.Normals == nil {
		m.Normals = make([]vmath.Vec3, n)
	}
	if m.VertexFlags&asset.FlagColor != 0 && m.Colors == nil {
		m.Colors = make([]core.Color, n)
	}
	if m.VertexFlags&asset.FlagTexCoord0 != 0 && m.TexCoord0 == nil {
		m.TexCoord0 = make([]vmath.Vec2, n)
	}
	if m.VertexFlags&asset.FlagTexCoord1 != 0 && m.TexCoord1 == nil {
		m.TexCoord1 = make([]vmath.Vec2, n)
	}
	if m.VertexFlags&asset.FlagTangent != 0 && m.Tangents == nil {
		m.Tangents = make([]vmath.Vec4, n)
	}
	if m.VertexFlags&asset.FlagJointIndices != 0 && m.JointIndices == nil {
		m.JointIndices = make([]asset.JointIndices4, n)
	}
	if m.VertexFlags&asset.FlagJointWeights != 0 && m.JointWeights == nil {
		m.JointWeights = make([]vmath.Vec4, n)
	}
}

func decodeSubMesh(r io.Reader, path string) (*asset.SubMesh, error) {
	s := &asset.SubMesh{}
	var err error
	if s.VertexOffset, err = readU32(r, path); err != nil {
		return nil, err
	}
	if s.VertexCount, err = readU32(r, path); err != nil {
		return nil, err
	}
	if s.IndexOffset, err = readU32(r, path); err != nil {
		return nil, err
	}
	if s.IndexCount, err = readU32(r, path); err != nil {
		return nil, err
	}
	if s.MaterialIndex, err = readU32(r, path); err != nil {
		return nil, err
	}

	meshletCount, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	s.Meshlets.Meshlets = make([]asset.Meshlet, meshletCount)
	for i := range s.Meshlets.Meshlets {
		ml, err := decodeMeshlet(r, path)
		if err != nil {
			return nil, err
		}
		s.Meshlets.Meshlets[i] = *ml
	}

	meshletVertexCount, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	s.Meshlets.MeshletVertices = make([]uint32, meshletVertexCount)
	for i := range s.Meshlets.MeshletVertices {
		if s.Meshlets.MeshletVertices[i], err = readU32(r, path); err != nil {
			return nil, err
		}
	}

	meshletTriangleCount, err := readU32(r, path)
	if err != nil {
		return nil, err
	}
	s.Meshlets.MeshletTriangles = make([]byte, meshletTriangleCount)
	if meshletTriangleCount > 0 {
		if _, err := io.ReadFull(r, s.Meshlets.MeshletTriangles); err != nil {
			return nil, asseterr.Wrap(asseterr.IOError, path, err)
		}
	}

	if s.Name, err = readString(r, path, 0); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeMeshlet(r io.Reader, path string) (*asset.Meshlet, error) {
	ml := &asset.Meshlet{}
	var err error
	if ml.VertexOffset, err = readU32(r, path); err != nil {
		return nil, err
	}
	if ml.VertexCount, err = readU32(r, path); err != nil {
		return nil, err
	}
	if ml.TriangleOffset, err = readU32(r, path); err != nil {
		return nil, err
	}
	if ml.TriangleCount, err = readU32(r, path); err != nil {
		return nil, err
	}
	if ml.MaterialIndex, err = readU32(r, path); err != nil {
		return nil, err
	}
	if ml.Center, err = readVec3(r, path); err != nil {
		return nil, err
	}
	if ml.Radius, err = readF32(r, path); err != nil {
		return nil, err
	}
	return ml, nil
}
