package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/g3n/engine/core"
	"github.com/g3n/engine/geometry"
	"github.com/g3n/engine/gls"
	"github.com/g3n/engine/graphic"
	"github.com/g3n/engine/loader/gltf"
	"github.com/g3n/engine/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var triangle = []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}

func float32Bytes(t *testing.T, v []float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	return buf.Bytes()
}

// triangleDoc is a single node, single primitive glTF document. bufferURI
// is empty for GLB files, where the buffer is the BIN chunk.
func triangleDoc(viewLength int, bufferURI string) string {
	uri := ""
	if bufferURI != "" {
		uri = fmt.Sprintf(`,"uri":%q`, bufferURI)
	}
	return fmt.Sprintf(`{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"nodes": [0]}],
	"nodes": [{"name": "tri", "mesh": 0, "translation": [1, 2, 3]}],
	"meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
	"accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3",
		"min": [0, 0, 0], "max": [1, 1, 0]}],
	"bufferViews": [{"buffer": 0, "byteLength": %d}],
	"buffers": [{"byteLength": 36%s}]
}`, viewLength, uri)
}

func writeGLB(t *testing.T, filename, doc string, bin []byte) {
	t.Helper()
	js := []byte(doc)
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}

	var buf bytes.Buffer
	le := binary.LittleEndian
	total := 12 + 8 + len(js) + 8 + len(bin)
	require.NoError(t, binary.Write(&buf, le, []uint32{gltf.GLBMagic, 2, uint32(total)}))
	require.NoError(t, binary.Write(&buf, le, []uint32{uint32(len(js)), gltf.GLBJson}))
	buf.Write(js)
	require.NoError(t, binary.Write(&buf, le, []uint32{uint32(len(bin)), gltf.GLBBin}))
	buf.Write(bin)

	require.NoError(t, os.WriteFile(filename, buf.Bytes(), 0o644))
}

func TestGLTFDecoderBufferViewPastChunk(t *testing.T) {
	dir := t.TempDir()
	writeGLB(t, filepath.Join(dir, "broken.glb"), triangleDoc(1000, ""), float32Bytes(t, triangle))

	var err error
	assert.NotPanics(t, func() {
		_, err = NewGLTFDecoder().Decode(filepath.Join(dir, "broken.glb"))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.glb")

	h, err := wait(t, New(dir, NewGLTFDecoder()).Load(context.Background(), "/broken.glb"))
	assert.Nil(t, h)
	assert.Error(t, err)
}

func TestGLTFDecoderReadsBinaryTriangle(t *testing.T) {
	dir := t.TempDir()
	writeGLB(t, filepath.Join(dir, "tri.glb"), triangleDoc(36, ""), float32Bytes(t, triangle))

	root, err := NewGLTFDecoder().Decode(filepath.Join(dir, "tri.glb"))
	require.NoError(t, err)

	meshes := root.Meshes()
	require.Len(t, meshes, 1)
	assert.Equal(t, triangle, meshes[0].Mesh.Positions)
}

func TestLoadEmbeddedGLTF(t *testing.T) {
	dir := t.TempDir()
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(float32Bytes(t, triangle))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.gltf"), []byte(triangleDoc(36, uri)), 0o644))

	h, err := wait(t, New(dir, NewGLTFDecoder()).Load(context.Background(), "/tri.gltf"))
	require.NoError(t, err)

	meshes := h.Root.Meshes()
	require.Len(t, meshes, 1)
	tri := meshes[0]
	assert.Equal(t, "tri", tri.Name)
	assert.Equal(t, triangle, tri.Mesh.Positions)
	assert.Equal(t, []uint32{0, 1, 2}, tri.Mesh.Indices, "non-indexed primitives get sequential indices")
	require.Len(t, tri.Mesh.Normals, 9)
	assert.InDelta(t, 1, tri.Mesh.Normals[2], 1e-6)
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, tri.Local.Col(3))
	assert.False(t, tri.Mesh.CastShadow)
	assert.False(t, tri.Mesh.ReceiveShadow)
}

func TestConvertNodeKeepsSkinnedMeshes(t *testing.T) {
	geom := geometry.NewGeometry()
	geom.AddVBO(gls.NewVBO(math32.ArrayF32(triangle)).AddAttrib(gls.VertexPosition))
	geom.SetIndices(math32.ArrayU32{0, 1, 2})

	rigged := graphic.NewRiggedMesh(graphic.NewMesh(geom, nil))
	rigged.SetName("body")
	group := core.NewNode()
	group.Add(rigged)

	root := convertNode(group)

	require.Len(t, root.Children, 1)
	body := root.Children[0]
	require.NotNil(t, body.Mesh, "skinned node converted to an empty group")
	assert.Equal(t, "body", body.Name)
	assert.Equal(t, triangle, body.Mesh.Positions)
	assert.Equal(t, []uint32{0, 1, 2}, body.Mesh.Indices)
	assert.Len(t, body.Mesh.Normals, 9)
}
