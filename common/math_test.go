package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// within compares component-wise with an absolute tolerance.
func within(a, b []float32, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func TestPerspective_DepthRange(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(75), 16.0/9.0, 1, 1000)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -1000, 1})

	if d := near.Z() / near.W(); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("Expected near plane depth 0, got %v", d)
	}
	if d := far.Z() / far.W(); math.Abs(float64(d-1)) > 1e-5 {
		t.Errorf("Expected far plane depth 1, got %v", d)
	}
}

func TestViewFromRotation(t *testing.T) {
	view, ident := ViewFromRotation(mgl32.QuatIdent()), mgl32.Ident4()
	if !within(view[:], ident[:], 1e-6) {
		t.Error("Expected identity rotation to give identity view")
	}

	// camera yawed left 90 degrees sees the world -X axis straight ahead
	rot := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	got := ViewFromRotation(rot).Mul4x1(mgl32.Vec4{-1, 0, 0, 1})
	if want := (mgl32.Vec4{0, 0, -1, 1}); !within(got[:], want[:], 1e-5) {
		t.Errorf("Expected -X to map to view forward, got %v", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1.5, -1.0, 1.0) != -1.0 || Clamp(uint32(2), 1, 4) != 2 {
		t.Error("Clamp returned a value outside the expected range")
	}
}

func TestTextureStagingDataValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    TextureStagingData
		wantErr bool
	}{
		{"valid", TextureStagingData{Pixels: make([]byte, 2*3*4), Width: 2, Height: 3}, false},
		{"empty size", TextureStagingData{}, true},
		{"short buffer", TextureStagingData{Pixels: make([]byte, 4), Width: 2, Height: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.data.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
