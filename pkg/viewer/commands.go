package viewer

import (
	"log"

	"github.com/chazu/meshview/pkg/bounds"
	"github.com/chazu/meshview/pkg/edit"
	"github.com/chazu/meshview/pkg/mesh"
	"github.com/chazu/meshview/pkg/scene"
	"github.com/ungerik/go3d/float64/vec3"
)

// Load installs m as the model and immediately slices it into the working
// mesh.
func Load(s *State, m *mesh.Mesh) {
	s.Model = m
	Slice(s)
}

// Slice derives the working mesh from the loaded model. No-op without a
// model.
func Slice(s *State) {
	if s.Model == nil {
		return
	}
	s.Working = edit.Slice(s.Model)
}

// CreateHole collapses working-mesh vertices within radius of center.
// No-op without a working mesh.
func CreateHole(s *State, center vec3.T, radius float64) {
	if s.Working == nil {
		return
	}
	s.Working = edit.CreateHole(s.Working, center, radius)
}

// CreateSupport raises the lowest layer of the working mesh by height.
// No-op without a working mesh.
func CreateSupport(s *State, height float64) {
	if s.Working == nil {
		return
	}
	s.Working = edit.AddSupport(s.Working, height)
}

// PlaceInstances replaces the scene with count copies of the loaded model.
// It reports false and leaves the scene untouched when no model is loaded.
func PlaceInstances(s *State, interval float64, count int) bool {
	if s.Model == nil {
		log.Printf("place instances: no model data set")
		return false
	}
	s.Scene = scene.PlaceInstances(s.Model, interval, count)
	return true
}

// Overflow evaluates the working mesh against the configured threshold
// and records the result as the indicator value.
func Overflow(s *State) bool {
	s.Overflowing = bounds.Overflow(s.Working, s.Settings.OverflowThreshold)
	return s.Overflowing
}

// Rotate adds the given angles, in degrees, to the model rotation.
func Rotate(s *State, dx, dy, dz float64) {
	s.Rotation[0] += dx
	s.Rotation[1] += dy
	s.Rotation[2] += dz
}

// SetCamera moves the eye to p.
func SetCamera(s *State, p vec3.T) {
	s.Camera = p
}
