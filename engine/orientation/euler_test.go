package orientation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const quatEps = 1e-5

// within compares component-wise with an absolute tolerance.
func within(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > quatEps {
			return false
		}
	}
	return true
}

func quatNear(a, b mgl32.Quat) bool {
	return within([]float32{a.W, a.V[0], a.V[1], a.V[2]}, []float32{b.W, b.V[0], b.V[1], b.V[2]})
}

func assertQuat(t *testing.T, name string, got, want mgl32.Quat) {
	t.Helper()
	if !quatNear(got, want) {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func assertVec(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	if !within(got[:], want[:]) {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func TestEulerToQuat_SingleAxis(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
		want    mgl32.Quat
	}{
		{"identity", 0, 0, 0, mgl32.QuatIdent()},
		{"yaw", 0, math.Pi / 2, 0, mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})},
		{"pitch", math.Pi / 3, 0, 0, mgl32.QuatRotate(math.Pi/3, mgl32.Vec3{1, 0, 0})},
		{"roll", 0, 0, -math.Pi / 4, mgl32.QuatRotate(-math.Pi/4, mgl32.Vec3{0, 0, 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, order := range []EulerOrder{OrderYXZ, OrderYZX} {
				assertQuat(t, order.String(), EulerToQuat(tt.x, tt.y, tt.z, order), tt.want)
			}
		})
	}
}

func TestEulerToQuat_OrderMatters(t *testing.T) {
	x, y, z := 0.3, 1.1, -0.7
	qx := mgl32.QuatRotate(float32(x), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(float32(y), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(float32(z), mgl32.Vec3{0, 0, 1})

	yxz := EulerToQuat(x, y, z, OrderYXZ)
	yzx := EulerToQuat(x, y, z, OrderYZX)

	assertQuat(t, "YXZ", yxz, qy.Mul(qx).Mul(qz))
	assertQuat(t, "YZX", yzx, qy.Mul(qz).Mul(qx))
	if quatNear(yxz, yzx) {
		t.Errorf("Expected YXZ and YZX to differ for mixed angles, both %v", yxz)
	}
}

func TestDragRotation_YawThenPitch(t *testing.T) {
	q := DragRotation(0.4, 1.2)
	want := mgl32.QuatRotate(1.2, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(0.4, mgl32.Vec3{1, 0, 0}))
	assertQuat(t, "drag", q, want)

	// local right axis stays horizontal: pitch happens after yaw
	right := q.Rotate(mgl32.Vec3{1, 0, 0})
	if math.Abs(float64(right.Y())) > quatEps {
		t.Errorf("Expected right axis to stay horizontal, got %v", right)
	}
}

func TestSensorRotation_Golden(t *testing.T) {
	got := SensorRotation(DeviceOrientation{Alpha: 90}, 0)
	want := mgl32.Quat{W: 0.5, V: mgl32.Vec3{-0.5, 0.5, 0.5}}
	assertQuat(t, "alpha=90 screen=0", got, want)

	// same value as yaw 90 composed with the eye correction
	yaw := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	eye := mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})
	assertQuat(t, "yaw*eye", got, yaw.Mul(eye))
}

func TestSensorRotation_UprightLooksAtHorizon(t *testing.T) {
	q := SensorRotation(DeviceOrientation{Beta: 90}, 0)
	assertVec(t, "forward", q.Rotate(mgl32.Vec3{0, 0, -1}), mgl32.Vec3{0, 0, -1})
	assertVec(t, "up", q.Rotate(mgl32.Vec3{0, 1, 0}), mgl32.Vec3{0, 1, 0})
}

func TestSensorRotation_FlatLooksDown(t *testing.T) {
	q := SensorRotation(DeviceOrientation{Alpha: 45}, 0)
	assertVec(t, "forward", q.Rotate(mgl32.Vec3{0, 0, -1}), mgl32.Vec3{0, -1, 0})
}

func TestSensorRotation_ScreenCorrection(t *testing.T) {
	sample := DeviceOrientation{Alpha: 30, Beta: 60, Gamma: 15}
	alpha, beta, gamma := degToRad(30), degToRad(60), degToRad(15)
	eye := mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})

	tests := []struct {
		screen ScreenAngle
		order  EulerOrder
	}{
		{0, OrderYXZ},
		{90, OrderYZX},
		{180, OrderYXZ},
		{270, OrderYZX},
	}

	for _, tt := range tests {
		device := mgl32.QuatRotate(float32(-degToRad(float64(tt.screen))), mgl32.Vec3{0, 1, 0})
		want := EulerToQuat(beta, alpha, -gamma, tt.order).Mul(device).Mul(eye)
		assertQuat(t, tt.order.String(), SensorRotation(sample, tt.screen), want)
	}
}

func TestIsNullSample(t *testing.T) {
	tests := []struct {
		name   string
		sample DeviceOrientation
		want   bool
	}{
		{"zero", DeviceOrientation{}, true},
		{"nan", DeviceOrientation{Alpha: math.NaN(), Beta: math.NaN(), Gamma: math.NaN()}, true},
		{"alpha", DeviceOrientation{Alpha: 0.001}, false},
		{"beta", DeviceOrientation{Beta: -1}, false},
		{"gamma", DeviceOrientation{Gamma: 90}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNullSample(tt.sample); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
