// Package scene places repeated copies of a base mesh for rendering.
package scene

import (
	"github.com/chazu/meshview/pkg/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

// Instance is a placed copy of a base mesh. Instances share the base
// mesh's vertex and face data and must treat it as read-only; only the
// offset belongs to the instance.
type Instance struct {
	Mesh   *mesh.Mesh
	Offset vec3.T
}

// Scene is the current placement set. It is rebuilt wholesale whenever
// placement parameters change.
type Scene []Instance

// PlaceInstances lays out count copies of base along the x axis, spaced
// interval apart starting at the origin. count <= 0 yields an empty scene.
// A negative interval extends the row toward negative x.
func PlaceInstances(base *mesh.Mesh, interval float64, count int) Scene {
	if count <= 0 {
		return Scene{}
	}
	s := make(Scene, count)
	for i := range s {
		s[i] = Instance{
			Mesh:   base,
			Offset: vec3.T{float64(i) * interval, 0, 0},
		}
	}
	return s
}

// Len returns the number of instances.
func (s Scene) Len() int {
	return len(s)
}

// Offsets returns the placement offset of each instance in order.
func (s Scene) Offsets() []vec3.T {
	out := make([]vec3.T, len(s))
	for i, inst := range s {
		out[i] = inst.Offset
	}
	return out
}
