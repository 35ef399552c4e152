package scene

import "github.com/google/uuid"

// Graph is the ordered list of top-level nodes one owner has built. Release
// hands the nodes back in reverse order of addition.
type Graph struct {
	owner    uuid.UUID
	nodes    []*Node
	released bool
}

func NewGraph(owner uuid.UUID) *Graph {
	return &Graph{owner: owner}
}

func (g *Graph) Owner() uuid.UUID {
	return g.owner
}

func (g *Graph) Add(nodes ...*Node) {
	g.nodes = append(g.nodes, nodes...)
}

func (g *Graph) Nodes() []*Node {
	return g.nodes
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// Lights returns the light models of the top-level light nodes.
func (g *Graph) Lights() []*Light {
	var out []*Light
	for _, n := range g.nodes {
		if n.Kind == KindLight && n.Light != nil {
			out = append(out, n.Light)
		}
	}
	return out
}

// Released reports whether Release already ran.
func (g *Graph) Released() bool {
	return g.released
}

// Release calls fn for every top-level node, last added first, and empties
// the graph. Subsequent calls do nothing.
func (g *Graph) Release(fn func(*Node)) {
	if g.released {
		return
	}
	g.released = true
	for i := len(g.nodes) - 1; i >= 0; i-- {
		if fn != nil {
			fn(g.nodes[i])
		}
	}
	g.nodes = nil
}
