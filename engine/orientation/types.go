package orientation

import "fmt"

// Mode identifies which input stream produced the current rotation.
type Mode int

const (
	// ModeNone means no input has been applied since construction or Reset.
	ModeNone Mode = iota
	// ModeDrag means the rotation was built from accumulated pointer drag.
	ModeDrag
	// ModeSensor means the rotation was built from the last device-orientation sample.
	ModeSensor
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeDrag:
		return "drag"
	case ModeSensor:
		return "sensor"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ScreenAngle is the rotation of the display relative to the device's natural
// orientation, in degrees. Valid values are 0, 90, 180 and 270.
type ScreenAngle int

// Portrait reports whether the angle is one of the upright orientations (0 or 180).
func (a ScreenAngle) Portrait() bool {
	n := NormalizeAngle(int(a))
	return n == 0 || n == 180
}

// DeviceOrientation is one device-orientation sample, all angles in degrees.
//   - Alpha: rotation about the device Z axis (compass heading), [0, 360)
//   - Beta: front-to-back tilt about the device X axis, [-180, 180)
//   - Gamma: left-to-right tilt about the device Y axis, [-90, 90)
type DeviceOrientation struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// EulerOrder names the axis sequence used when composing three Euler angles.
// The order is read left to right as the quaternion product, so OrderYXZ
// yields qY * qX * qZ.
type EulerOrder int

const (
	// OrderYXZ is yaw, then pitch, then roll. Used for drag and portrait screens.
	OrderYXZ EulerOrder = iota
	// OrderYZX is yaw, then roll, then pitch. Used for landscape screens.
	OrderYZX
)

// String returns the three-letter axis sequence.
func (o EulerOrder) String() string {
	switch o {
	case OrderYXZ:
		return "YXZ"
	case OrderYZX:
		return "YZX"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}
