package kernel

import "github.com/chazu/meshview/pkg/mesh"

// Welder builds an indexed mesh from a triangle soup, merging corners with
// equal coordinates into one vertex. Vertices are numbered in
// first-seen order, which keeps the result deterministic for a given soup.
type Welder struct {
	index map[mesh.Vertex]int
	m     *mesh.Mesh
}

// NewWelder returns an empty Welder.
func NewWelder() *Welder {
	return &Welder{
		index: make(map[mesh.Vertex]int),
		m:     &mesh.Mesh{Vertices: []mesh.Vertex{}, Faces: []mesh.Face{}},
	}
}

// AddTriangle appends one triangle. Triangles whose corners weld into
// fewer than three distinct vertices are dropped.
func (w *Welder) AddTriangle(a, b, c mesh.Vertex) {
	ia, ib, ic := w.vertex(a), w.vertex(b), w.vertex(c)
	if ia == ib || ib == ic || ia == ic {
		return
	}
	w.m.Faces = append(w.m.Faces, mesh.Face{ia, ib, ic})
}

func (w *Welder) vertex(v mesh.Vertex) int {
	if i, ok := w.index[v]; ok {
		return i
	}
	i := len(w.m.Vertices)
	w.m.Vertices = append(w.m.Vertices, v)
	w.index[v] = i
	return i
}

// Mesh returns the mesh built so far.
func (w *Welder) Mesh() *mesh.Mesh {
	return w.m
}
