package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a perspective projection matrix for WebGPU clip space,
// where depth maps to [0, 1] rather than OpenGL's [-1, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ViewFromRotation builds a view matrix for a camera at the origin with the
// given orientation. The view is the inverse rotation, which for a unit
// quaternion is its conjugate.
//
// Parameters:
//   - rotation: camera orientation as a unit quaternion
//
// Returns:
//   - mgl32.Mat4: column-major view matrix
func ViewFromRotation(rotation mgl32.Quat) mgl32.Mat4 {
	return rotation.Normalize().Conjugate().Mat4()
}

// Clamp limits v to [lo, hi].
func Clamp[T ~int | ~int32 | ~uint32 | ~float32 | ~float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
