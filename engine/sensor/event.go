package sensor

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-pano/engine/orientation"
)

// Event is one device-orientation reading as forwarded by a phone, in degrees. Fields a sender
// does not know are left out and decode as nil, which the controller treats as zero.
//
// The three screen fields mirror the browser sources of the screen rotation, in priority order:
// the standard screen.orientation.angle, the legacy numeric window.orientation and the vendor
// orientation type string.
type Event struct {
	Alpha *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	Gamma *float64 `json:"gamma,omitempty" yaml:"gamma,omitempty"`

	ScreenOrientationAngle *int   `json:"screenOrientationAngle,omitempty" yaml:"screenOrientationAngle,omitempty"`
	Orientation            *int   `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	OrientationType        string `json:"orientationType,omitempty" yaml:"orientationType,omitempty"`
}

// DecodeEvent parses a JSON datagram.
//
// Parameters:
//   - data: the JSON object
//
// Returns:
//   - Event: the decoded event
//   - error: error if data is not a JSON object with the expected field types
func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("invalid orientation event: %w", err)
	}
	return e, nil
}

// Sample returns the Euler angles with missing values as zero.
func (e Event) Sample() orientation.DeviceOrientation {
	return orientation.DeviceOrientation{
		Alpha: deref(e.Alpha),
		Beta:  deref(e.Beta),
		Gamma: deref(e.Gamma),
	}
}

// Probes returns the screen-angle probes carried by the event, highest priority first.
// A probe for a missing field reports no result.
func (e Event) Probes() []orientation.ScreenProbe {
	return []orientation.ScreenProbe{
		orientation.NumericProbe(e.ScreenOrientationAngle),
		orientation.NumericProbe(e.Orientation),
		orientation.OrientationTypeProbe(e.OrientationType),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
