// Package edit derives new meshes from existing ones. Every operation is
// pure: the input mesh is never modified and callers replace their working
// reference with the result.
//
// The operations are intentionally approximate. Slice cuts by vertex index
// rather than by a plane, CreateHole collapses vertices instead of cutting a
// boundary, and AddSupport extrudes the lowest layer instead of building
// struts.
package edit

import (
	"github.com/chazu/meshview/pkg/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

// Slice keeps the first half of the vertex list (floor of count/2) and,
// for every face, the indices that still resolve. A face survives only if
// at least three of its indices remain, in their original order; geometry
// is not clipped at the cut.
func Slice(m *mesh.Mesh) *mesh.Mesh {
	if m == nil {
		return nil
	}

	keep := len(m.Vertices) / 2
	out := &mesh.Mesh{
		Vertices: make([]mesh.Vertex, keep),
		Faces:    make([]mesh.Face, 0, len(m.Faces)),
		Offset:   m.Offset,
	}
	copy(out.Vertices, m.Vertices[:keep])

	for _, f := range m.Faces {
		valid := make(mesh.Face, 0, len(f))
		for _, idx := range f {
			if idx >= 0 && idx < keep {
				valid = append(valid, idx)
			}
		}
		if len(valid) >= 3 {
			out.Faces = append(out.Faces, valid)
		}
	}

	return out
}

// CreateHole moves every vertex within radius of center (inclusive) to the
// origin. Vertices are zeroed in place, never removed, so faces keep their
// indices and may collapse to a point. A nil mesh yields nil.
func CreateHole(m *mesh.Mesh, center vec3.T, radius float64) *mesh.Mesh {
	if m == nil {
		return nil
	}

	out := m.Clone()
	for i := range out.Vertices {
		if vec3.Distance(&out.Vertices[i], &center) <= radius {
			out.Vertices[i] = vec3.Zero
		}
	}
	return out
}

// AddSupport raises every vertex sitting exactly on the lowest z by height.
// The comparison is exact float equality with no tolerance: a vertex a
// rounding error above the minimum is left alone. Vertex count and faces
// are unchanged.
func AddSupport(m *mesh.Mesh, height float64) *mesh.Mesh {
	if m == nil {
		return nil
	}

	out := m.Clone()
	if len(out.Vertices) == 0 {
		return out
	}

	minZ := out.Vertices[0][2]
	for _, v := range out.Vertices[1:] {
		if v[2] < minZ {
			minZ = v[2]
		}
	}

	for i := range out.Vertices {
		if out.Vertices[i][2] == minZ {
			out.Vertices[i][2] += height
		}
	}
	return out
}
