package viewer

import (
	"fmt"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
)

// Nudge moves the camera by one step for a movement key and refreshes the
// overflow indicator. W/S move along z, A/D along x, Q/E along y. It
// reports whether the key was recognised; the indicator is refreshed either
// way.
func Nudge(s *State, key string) bool {
	step := s.Settings.NudgeStep
	handled := true
	switch strings.ToUpper(key) {
	case "W":
		s.Camera[2] -= step
	case "S":
		s.Camera[2] += step
	case "A":
		s.Camera[0] -= step
	case "D":
		s.Camera[0] += step
	case "Q":
		s.Camera[1] += step
	case "E":
		s.Camera[1] -= step
	default:
		handled = false
	}
	Overflow(s)
	return handled
}

// Preset names a fixed camera direction.
type Preset string

const (
	ViewTop    Preset = "top"
	ViewBottom Preset = "bottom"
	ViewFront  Preset = "front"
	ViewBack   Preset = "back"
	ViewLeft   Preset = "left"
	ViewRight  Preset = "right"
)

// presetDirections maps each preset to a unit eye direction.
var presetDirections = map[Preset]vec3.T{
	ViewTop:    {0, 1, 0},
	ViewBottom: {0, -1, 0},
	ViewFront:  {0, 0, 1},
	ViewBack:   {0, 0, -1},
	ViewLeft:   {-1, 0, 0},
	ViewRight:  {1, 0, 0},
}

// ViewPreset places the camera on an axis at the configured preset
// distance from the origin.
func ViewPreset(s *State, p Preset) error {
	dir, ok := presetDirections[Preset(strings.ToLower(string(p)))]
	if !ok {
		return fmt.Errorf("unknown view %q", p)
	}
	SetCamera(s, dir.Scaled(s.Settings.PresetDistance))
	return nil
}
