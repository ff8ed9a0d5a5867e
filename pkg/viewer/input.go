package viewer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
)

// ParseVec3 reads three text fields as a position. Malformed user input is
// the only failure the controller surfaces.
func ParseVec3(x, y, z string) (vec3.T, error) {
	var v vec3.T
	for i, field := range [3]string{x, y, z} {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return vec3.T{}, fmt.Errorf("coordinate %c: %w", "xyz"[i], err)
		}
		v[i] = f
	}
	return v, nil
}

// ParsePlacement reads the interval and count fields of the placement
// controls.
func ParsePlacement(interval, count string) (float64, int, error) {
	iv, err := strconv.ParseFloat(strings.TrimSpace(interval), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("interval: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return 0, 0, fmt.Errorf("count: %w", err)
	}
	return iv, n, nil
}
