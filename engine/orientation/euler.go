package orientation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// eyeCorrection turns the device's flat-on-the-table rest pose into a camera
// looking at the horizon: -90 degrees about world X.
var eyeCorrection = mgl32.QuatRotate(float32(-math.Pi/2), axisX)

// EulerToQuat composes rotations about X, Y and Z (radians) into one quaternion
// using the given axis order.
//
// Parameters:
//   - x: rotation about the X axis in radians
//   - y: rotation about the Y axis in radians
//   - z: rotation about the Z axis in radians
//   - order: composition order
//
// Returns:
//   - mgl32.Quat: unit quaternion for the combined rotation
func EulerToQuat(x, y, z float64, order EulerOrder) mgl32.Quat {
	qx := mgl32.QuatRotate(float32(x), axisX)
	qy := mgl32.QuatRotate(float32(y), axisY)
	qz := mgl32.QuatRotate(float32(z), axisZ)

	switch order {
	case OrderYZX:
		return qy.Mul(qz).Mul(qx)
	default:
		return qy.Mul(qx).Mul(qz)
	}
}

// DragRotation builds the camera rotation for accumulated drag angles:
// yaw by longitude about world Y, then pitch by latitude about the local X axis.
//
// Parameters:
//   - latitude: pitch in radians
//   - longitude: yaw in radians
//
// Returns:
//   - mgl32.Quat: camera rotation
func DragRotation(latitude, longitude float64) mgl32.Quat {
	return EulerToQuat(latitude, longitude, 0, OrderYXZ)
}

// SensorRotation maps one device-orientation sample to an absolute camera rotation.
// The result is sensor * device * eye, where device undoes the screen rotation
// about world Y and eye tilts the rest pose up to the horizon.
//
// Parameters:
//   - sample: device angles in degrees
//   - screen: current screen rotation
//
// Returns:
//   - mgl32.Quat: camera rotation
func SensorRotation(sample DeviceOrientation, screen ScreenAngle) mgl32.Quat {
	alpha := degToRad(finiteOrZero(sample.Alpha))
	beta := degToRad(finiteOrZero(sample.Beta))
	gamma := degToRad(finiteOrZero(sample.Gamma))

	sensor := EulerToQuat(beta, alpha, -gamma, OrderForScreen(screen))
	device := mgl32.QuatRotate(float32(-degToRad(float64(NormalizeAngle(int(screen))))), axisY)

	return sensor.Mul(device).Mul(eyeCorrection)
}

// IsNullSample reports whether a sample is the all-zero "sensor not ready" value.
// NaN components count as zero.
func IsNullSample(sample DeviceOrientation) bool {
	return finiteOrZero(sample.Alpha) == 0 &&
		finiteOrZero(sample.Beta) == 0 &&
		finiteOrZero(sample.Gamma) == 0
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
