package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	}
	return "unknown"
}

// Node is one element of a scene graph. Exactly one of Mesh or Light is set
// for mesh and light nodes; groups carry neither.
type Node struct {
	ID       uuid.UUID
	Name     string
	Kind     Kind
	Local    mgl32.Mat4 // Transform relative to the parent
	Children []*Node
	Mesh     *Mesh
	Light    *Light
}

// GPUMesh holds the buffer objects a renderer created for a mesh.
type GPUMesh struct {
	VAO      uint32
	VBO      uint32
	EBO      uint32
	Count    int32
	Uploaded bool
}

type Mesh struct {
	Positions     []float32 // xyz per vertex
	Normals       []float32 // xyz per vertex, may be empty
	Indices       []uint32
	Color         mgl32.Vec3
	CastShadow    bool
	ReceiveShadow bool
	GPU           GPUMesh
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		ID:    uuid.New(),
		Name:  name,
		Kind:  kind,
		Local: mgl32.Ident4(),
	}
}

func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

func NewMeshNode(name string, mesh *Mesh) *Node {
	n := newNode(name, KindMesh)
	n.Mesh = mesh
	return n
}

func NewLightNode(light *Light) *Node {
	n := newNode(light.Kind.String(), KindLight)
	n.Light = light
	return n
}

func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Traverse visits n and its descendants depth first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// TraverseWorld is Traverse with each node's accumulated world matrix.
func (n *Node) TraverseWorld(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	world := parent.Mul4(n.Local)
	fn(n, world)
	for _, c := range n.Children {
		c.TraverseWorld(world, fn)
	}
}

// Meshes returns every mesh node under n in traversal order.
func (n *Node) Meshes() []*Node {
	var out []*Node
	n.Traverse(func(c *Node) {
		if c.Kind == KindMesh && c.Mesh != nil {
			out = append(out, c)
		}
	})
	return out
}

// Bounds returns the world-space axis aligned box of all mesh vertices
// under n. ok is false when there are no vertices.
func (n *Node) Bounds() (min, max mgl32.Vec3, ok bool) {
	n.TraverseWorld(mgl32.Ident4(), func(c *Node, world mgl32.Mat4) {
		if c.Mesh == nil {
			return
		}
		p := c.Mesh.Positions
		for i := 0; i+2 < len(p); i += 3 {
			v := mgl32.TransformCoordinate(mgl32.Vec3{p[i], p[i+1], p[i+2]}, world)
			if !ok {
				min, max, ok = v, v, true
				continue
			}
			for a := 0; a < 3; a++ {
				if v[a] < min[a] {
					min[a] = v[a]
				}
				if v[a] > max[a] {
					max[a] = v[a]
				}
			}
		}
	})
	return min, max, ok
}
