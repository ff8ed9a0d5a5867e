// Package mesh defines the indexed polygon mesh shared by the editor,
// the bounds checker, the scene composer and the renderer boundary.
package mesh

import (
	"github.com/ungerik/go3d/float64/vec3"
)

// Vertex is a position in model space.
type Vertex = vec3.T

// Face is an ordered list of indices into the owning mesh's vertex list.
// A face needs at least three indices to describe a polygon.
type Face []int

// Mesh is a list of vertex positions and the faces that reference them by
// position. Vertex order is identity: faces index into Vertices, so
// reordering or removing vertices changes what every face means.
type Mesh struct {
	Vertices []Vertex `json:"vertices"`
	Faces    []Face   `json:"faces"`
	Offset   vec3.T   `json:"offset"` // model-space placement
}

// New returns a mesh holding the given vertices and faces.
// The slices are taken as-is, not copied.
func New(vertices []Vertex, faces []Face) *Mesh {
	return &Mesh{Vertices: vertices, Faces: faces}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	if m == nil {
		return 0
	}
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return m.VertexCount() == 0
}

// WellFormed reports whether every index of f lies within [0, n).
func (f Face) WellFormed(n int) bool {
	if len(f) < 3 {
		return false
	}
	for _, idx := range f {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

// Valid reports whether every face references only vertices that exist.
func (m *Mesh) Valid() bool {
	if m == nil {
		return true
	}
	for _, f := range m.Faces {
		if !f.WellFormed(len(m.Vertices)) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
		Offset:   m.Offset,
	}
	copy(out.Vertices, m.Vertices)
	for i, f := range m.Faces {
		out.Faces[i] = append(Face(nil), f...)
	}
	return out
}

// FaceNormal derives the unit normal of face i from its first three
// vertices. It returns false when the face is malformed or degenerate
// (collinear or collapsed vertices give a zero-length cross product).
// Normals are never stored on the mesh; edits would make them stale.
func (m *Mesh) FaceNormal(i int) (vec3.T, bool) {
	if i < 0 || i >= len(m.Faces) {
		return vec3.Zero, false
	}
	f := m.Faces[i]
	if !f.WellFormed(len(m.Vertices)) {
		return vec3.Zero, false
	}
	a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	e1 := vec3.Sub(&b, &a)
	e2 := vec3.Sub(&c, &a)
	n := vec3.Cross(&e1, &e2)
	if n.LengthSqr() == 0 {
		return vec3.Zero, false
	}
	return n.Normalized(), true
}
