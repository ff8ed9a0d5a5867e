// Package config loads viewer settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the settings file path.
const EnvVar = "MESHVIEW_CONFIG"

// Light describes the single scene light handed to the renderer.
type Light struct {
	Position [4]float32 `toml:"position" yaml:"position" json:"position"`
	Ambient  [4]float32 `toml:"ambient" yaml:"ambient" json:"ambient"`
	Diffuse  [4]float32 `toml:"diffuse" yaml:"diffuse" json:"diffuse"`
	Specular [4]float32 `toml:"specular" yaml:"specular" json:"specular"`
}

// Material describes the front-face material handed to the renderer.
type Material struct {
	Ambient   [4]float32 `toml:"ambient" yaml:"ambient" json:"ambient"`
	Diffuse   [4]float32 `toml:"diffuse" yaml:"diffuse" json:"diffuse"`
	Specular  [4]float32 `toml:"specular" yaml:"specular" json:"specular"`
	Shininess float32    `toml:"shininess" yaml:"shininess" json:"shininess"`
}

// Settings holds every tunable of the viewer.
type Settings struct {
	HoleRadius        float64    `toml:"hole_radius" yaml:"hole_radius" json:"holeRadius"`
	SupportHeight     float64    `toml:"support_height" yaml:"support_height" json:"supportHeight"`
	OverflowThreshold float64    `toml:"overflow_threshold" yaml:"overflow_threshold" json:"overflowThreshold"`
	Camera            [3]float64 `toml:"camera" yaml:"camera" json:"camera"`
	NudgeStep         float64    `toml:"nudge_step" yaml:"nudge_step" json:"nudgeStep"`
	RotateStep        float64    `toml:"rotate_step" yaml:"rotate_step" json:"rotateStep"`
	PresetDistance    float64    `toml:"preset_distance" yaml:"preset_distance" json:"presetDistance"`
	PlaceInterval     float64    `toml:"place_interval" yaml:"place_interval" json:"placeInterval"`
	PlaceCount        int        `toml:"place_count" yaml:"place_count" json:"placeCount"`
	MeshCells         int        `toml:"mesh_cells" yaml:"mesh_cells" json:"meshCells"`
	Light             Light      `toml:"light" yaml:"light" json:"light"`
	Material          Material   `toml:"material" yaml:"material" json:"material"`
}

// Default returns the settings the viewer starts with when no file is given.
func Default() Settings {
	return Settings{
		HoleRadius:        0.1,
		SupportHeight:     0.5,
		OverflowThreshold: 1.0,
		Camera:            [3]float64{0, 0, 5},
		NudgeStep:         0.1,
		RotateStep:        10,
		PresetDistance:    5,
		PlaceInterval:     1,
		PlaceCount:        1,
		MeshCells:         64,
		Light: Light{
			Position: [4]float32{5, 5, 5, 1},
			Ambient:  [4]float32{0.2, 0.2, 0.2, 1},
			Diffuse:  [4]float32{1, 1, 1, 1},
			Specular: [4]float32{1, 1, 1, 1},
		},
		Material: Material{
			Ambient:   [4]float32{0.5, 0.5, 0.5, 1},
			Diffuse:   [4]float32{0.8, 0.8, 0.8, 1},
			Specular:  [4]float32{1, 1, 1, 1},
			Shininess: 120,
		},
	}
}

// Load reads settings from path. The format follows the file extension:
// .toml, or .yaml/.yml. Fields absent from the file keep their defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes settings in the format named by ext (with or without the
// leading dot) on top of Default.
func Parse(data []byte, ext string) (Settings, error) {
	s := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("config: toml: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("config: yaml: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("config: unsupported format %q", ext)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// FromEnv loads the file named by EnvVar, or returns Default when the
// variable is unset.
func FromEnv() (Settings, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects settings the controller cannot act on.
func (s Settings) Validate() error {
	if s.HoleRadius < 0 {
		return fmt.Errorf("config: hole_radius must be >= 0, got %g", s.HoleRadius)
	}
	if s.MeshCells < 1 {
		return fmt.Errorf("config: mesh_cells must be >= 1, got %d", s.MeshCells)
	}
	return nil
}

// Marshal encodes s in the format named by ext.
func (s Settings) Marshal(ext string) ([]byte, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		return toml.Marshal(s)
	case "yaml", "yml":
		return yaml.Marshal(s)
	}
	return nil, fmt.Errorf("config: unsupported format %q", ext)
}
