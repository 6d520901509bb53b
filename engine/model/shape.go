package model

import (
	"fmt"
	"strings"
)

// Shape selects the surface the panorama is projected onto.
type Shape int

const (
	// ShapeSphere is a full sphere for equirectangular 360x180 panoramas.
	ShapeSphere Shape = iota
	// ShapeDome is the upper hemisphere, for sky-only captures.
	ShapeDome
	// ShapeTube is an open cylinder, for 360 strips with limited vertical coverage.
	ShapeTube
)

// String returns the config name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeDome:
		return "dome"
	case ShapeTube:
		return "tube"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape converts a config name into a Shape. Matching ignores case;
// "cylinder" is accepted as an alias for tube.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sphere":
		return ShapeSphere, nil
	case "dome", "hemisphere":
		return ShapeDome, nil
	case "tube", "cylinder":
		return ShapeTube, nil
	default:
		return 0, fmt.Errorf("unknown shape %q", name)
	}
}
