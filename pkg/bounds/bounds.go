// Package bounds computes axis-aligned extents of a mesh and flags when
// the mesh spills past a fixed build volume.
package bounds

import (
	"github.com/chazu/meshview/pkg/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

// DefaultThreshold is the unit build-volume bound used by the viewer.
const DefaultThreshold = 1.0

// Box is an axis-aligned bounding box in model space.
// The zero value is ready to use.
type Box struct {
	Min, Max    vec3.T
	initialized bool
}

// Add grows the box to contain p.
func (b *Box) Add(p vec3.T) *Box {
	if !b.initialized {
		b.Min, b.Max = p, p
		b.initialized = true
		return b
	}
	for i, v := range p {
		if v > b.Max[i] {
			b.Max[i] = v
		}
		if v < b.Min[i] {
			b.Min[i] = v
		}
	}
	return b
}

// Empty reports whether no point has been added.
func (b *Box) Empty() bool {
	return !b.initialized
}

// Size returns the edge lengths of the box.
func (b *Box) Size() vec3.T {
	return vec3.Sub(&b.Max, &b.Min)
}

// Extents returns the bounding box of m's vertices. Offset is not applied.
// ok is false for a nil or empty mesh.
func Extents(m *mesh.Mesh) (box Box, ok bool) {
	if m.IsEmpty() {
		return Box{}, false
	}
	for _, v := range m.Vertices {
		box.Add(v)
	}
	return box, true
}

// Overflow reports whether the maximum x, y or z of m strictly exceeds
// threshold. Only the positive side is checked; a mesh reaching far into
// negative coordinates does not overflow. A nil or empty mesh never does.
func Overflow(m *mesh.Mesh, threshold float64) bool {
	box, ok := Extents(m)
	if !ok {
		return false
	}
	return box.Max[0] > threshold || box.Max[1] > threshold || box.Max[2] > threshold
}
