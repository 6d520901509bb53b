package orientation

import "github.com/go-gl/mathgl/mgl32"

// Controller turns pointer drags and device-orientation samples into a camera
// rotation. Exactly one input stream drives the rotation at a time: whichever
// event arrived last wins. Implementations are safe for concurrent use.
type Controller interface {
	// StartCapture begins a drag gesture. Pointer movement is applied only while capturing.
	StartCapture()

	// StopCapture ends the current drag gesture.
	StopCapture()

	// Capturing reports whether a drag gesture is active.
	//
	// Returns:
	//   - bool: true between StartCapture and StopCapture
	Capturing() bool

	// PointerMove applies one pointer movement sample while a drag is active.
	// Outside a drag the sample is ignored.
	//
	// Parameters:
	//   - dx: horizontal movement in pixels
	//   - dy: vertical movement in pixels
	//
	// Returns:
	//   - bool: true if the rotation changed
	PointerMove(dx, dy float64) bool

	// Rotate applies a drag delta regardless of capture state. Used for
	// keyboard nudges.
	//
	// Parameters:
	//   - dx: horizontal movement in pixels
	//   - dy: vertical movement in pixels
	Rotate(dx, dy float64)

	// ApplySensor replaces the rotation with the one derived from a
	// device-orientation sample. All-zero samples are dropped.
	//
	// Parameters:
	//   - sample: device angles in degrees
	//   - probes: screen-angle probes for this sample, consulted before the controller's own
	//
	// Returns:
	//   - bool: false if the sample was dropped
	ApplySensor(sample DeviceOrientation, probes ...ScreenProbe) bool

	// Rotation returns the current camera rotation.
	//
	// Returns:
	//   - mgl32.Quat: unit quaternion
	Rotation() mgl32.Quat

	// Latitude returns the accumulated drag pitch in radians, within [-pi/2, pi/2].
	Latitude() float64

	// Longitude returns the accumulated drag yaw in radians. Unbounded.
	Longitude() float64

	// Mode reports which input produced the current rotation.
	Mode() Mode

	// ScreenAngle returns the screen angle used by the last accepted sensor sample.
	ScreenAngle() ScreenAngle

	// Version increases every time the rotation changes. The camera uses it to
	// skip rebuilding its matrices on frames without input.
	//
	// Returns:
	//   - uint64: monotonically increasing change counter
	Version() uint64

	// Reset restores the initial latitude and longitude and ends any drag.
	Reset()
}
