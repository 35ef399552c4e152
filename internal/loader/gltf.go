package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ModelPreview/internal/scene"

	"github.com/g3n/engine/core"
	"github.com/g3n/engine/graphic"
	"github.com/g3n/engine/loader/gltf"
	"github.com/g3n/engine/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnsupportedFormat = errors.New("unsupported model format")

// defaultMeshColor is used for every mesh, materials are not carried over.
var defaultMeshColor = mgl32.Vec3{0.8, 0.8, 0.8}

// GLTFDecoder decodes binary (.glb) and JSON (.gltf) glTF files.
type GLTFDecoder struct{}

func NewGLTFDecoder() GLTFDecoder {
	return GLTFDecoder{}
}

// Decode never panics: the glTF reader indexes buffers without bounds
// checks, so a malformed file is reported as an error instead.
func (GLTFDecoder) Decode(filename string) (root *scene.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = fmt.Errorf("decode %s: %v", filepath.Base(filename), r)
		}
	}()

	var doc *gltf.GLTF
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".glb":
		doc, err = gltf.ParseBin(filename)
	case ".gltf":
		doc, err = gltf.ParseJSON(filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("no scene defined in %s", filepath.Base(filename))
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}

	node, err := doc.LoadScene(sceneIdx)
	if err != nil {
		return nil, err
	}
	return convertNode(node), nil
}

func convertNode(in core.INode) *scene.Node {
	n := in.GetNode()

	var out *scene.Node
	switch m := in.(type) {
	case *graphic.Mesh:
		out = scene.NewMeshNode(n.Name(), convertMesh(m))
	case *graphic.RiggedMesh:
		// Skinned meshes are drawn in their bind pose.
		out = scene.NewMeshNode(n.Name(), convertMesh(m.Mesh))
	default:
		out = scene.NewGroup(n.Name())
	}

	n.UpdateMatrix()
	out.Local = mgl32.Mat4(n.Matrix())

	for _, c := range n.Children() {
		out.Add(convertNode(c))
	}
	return out
}

func convertMesh(m *graphic.Mesh) *scene.Mesh {
	geom := m.GetGeometry().GetGeometry()

	mesh := &scene.Mesh{
		Color:         defaultMeshColor,
		CastShadow:    true,
		ReceiveShadow: true,
	}

	geom.ReadVertices(func(v math32.Vector3) bool {
		mesh.Positions = append(mesh.Positions, v.X, v.Y, v.Z)
		return false
	})
	geom.ReadVertexNormals(func(v math32.Vector3) bool {
		mesh.Normals = append(mesh.Normals, v.X, v.Y, v.Z)
		return false
	})

	indices := geom.Indices()
	if len(indices) > 0 {
		mesh.Indices = append([]uint32(nil), indices...)
	} else {
		mesh.Indices = make([]uint32, mesh.VertexCount())
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	if len(mesh.Normals) != len(mesh.Positions) {
		mesh.Normals = computeNormals(mesh.Positions, mesh.Indices)
	}
	return mesh
}

// computeNormals averages face normals into vertex normals.
func computeNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	vertex := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}
	count := uint32(len(positions) / 3)

	for f := 0; f+2 < len(indices); f += 3 {
		a, b, c := indices[f], indices[f+1], indices[f+2]
		if a >= count || b >= count || c >= count {
			continue
		}
		n := vertex(b).Sub(vertex(a)).Cross(vertex(c).Sub(vertex(a)))
		for _, i := range [3]uint32{a, b, c} {
			normals[i*3] += n[0]
			normals[i*3+1] += n[1]
			normals[i*3+2] += n[2]
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		n := mgl32.Vec3{normals[i], normals[i+1], normals[i+2]}
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		normals[i], normals[i+1], normals[i+2] = n[0], n[1], n[2]
	}
	return normals
}
