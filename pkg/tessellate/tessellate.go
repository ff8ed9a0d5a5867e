// Package tessellate turns meshes and scenes into flat triangle buffers for
// the renderer. Normals are derived from face geometry on every call and
// never cached, so buffers built after an edit always match the edit.
package tessellate

import (
	"github.com/chazu/meshview/pkg/mesh"
	"github.com/chazu/meshview/pkg/scene"
	"github.com/ungerik/go3d/float64/vec3"
)

// Buffer is a triangle list suitable for upload to a GPU.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Buffer struct {
	Vertices []float32  `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32  `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32   `json:"indices"`  // [i0,i1,i2, ...] triangles
	Offset   [3]float32 `json:"offset"`   // already applied to Vertices
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// IsEmpty returns true if the buffer has no geometry.
func (b *Buffer) IsEmpty() bool {
	return len(b.Vertices) == 0
}

// Mesh flattens m into a buffer translated by m.Offset plus offset.
// Each face is fan-triangulated from its first index and every triangle
// takes the face normal computed from the first three indices. Malformed
// faces are skipped; degenerate faces are emitted with a zero normal.
// A nil mesh yields an empty buffer.
func Mesh(m *mesh.Mesh, offset vec3.T) *Buffer {
	b := &Buffer{
		Vertices: []float32{},
		Normals:  []float32{},
		Indices:  []uint32{},
	}
	if m == nil {
		return b
	}

	translation := vec3.Add(&m.Offset, &offset)
	b.Offset = [3]float32{float32(translation[0]), float32(translation[1]), float32(translation[2])}

	n := len(m.Vertices)
	for fi, f := range m.Faces {
		if !f.WellFormed(n) {
			continue
		}
		normal, _ := m.FaceNormal(fi)
		for k := 1; k+1 < len(f); k++ {
			for _, idx := range [3]int{f[0], f[k], f[k+1]} {
				v := vec3.Add(&m.Vertices[idx], &translation)
				b.Indices = append(b.Indices, uint32(len(b.Vertices)/3))
				b.Vertices = append(b.Vertices, float32(v[0]), float32(v[1]), float32(v[2]))
				b.Normals = append(b.Normals, float32(normal[0]), float32(normal[1]), float32(normal[2]))
			}
		}
	}

	return b
}

// Scene produces one buffer per placed instance, in placement order.
// The tessellator is read-only and never mutates the shared base mesh.
func Scene(s scene.Scene) []*Buffer {
	buffers := make([]*Buffer, 0, len(s))
	for _, inst := range s {
		buffers = append(buffers, Mesh(inst.Mesh, inst.Offset))
	}
	return buffers
}
