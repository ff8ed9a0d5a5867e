// Package viewer holds the controller state of the mesh viewer and the
// command handlers that act on it. State is an explicit cell owned by one
// writer and passed by pointer into every handler; handlers run to
// completion and replace derived meshes by reassignment.
package viewer

import (
	"github.com/chazu/meshview/pkg/config"
	"github.com/chazu/meshview/pkg/mesh"
	"github.com/chazu/meshview/pkg/scene"
	"github.com/ungerik/go3d/float64/vec3"
)

// State is everything the viewer knows between commands.
type State struct {
	// Model is the mesh as loaded. Placement always reads this mesh.
	Model *mesh.Mesh
	// Working is the latest derived mesh. Edits replace it; there is no history.
	Working *mesh.Mesh
	// Scene is the current placement set, rebuilt wholesale.
	Scene scene.Scene

	Camera      vec3.T // eye position; the view always looks at the origin
	Rotation    vec3.T // accumulated Euler angles in degrees
	Overflowing bool   // last value of the overflow indicator

	Settings config.Settings
}

// NewState returns an empty state using the given settings.
func NewState(settings config.Settings) *State {
	return &State{
		Scene:    scene.Scene{},
		Camera:   vec3.T(settings.Camera),
		Settings: settings,
	}
}

// Snapshot returns a shallow copy of s. Meshes are never edited in place,
// so sharing them between the copy and s is safe.
func (s *State) Snapshot() *State {
	c := *s
	return &c
}

// HasModel reports whether a model has been loaded.
func (s *State) HasModel() bool {
	return s.Model != nil
}
