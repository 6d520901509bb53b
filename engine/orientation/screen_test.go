package orientation

import "testing"

func undefined() (ScreenAngle, bool) { return 0, false }

func TestResolveScreenAngle_FirstDefinedWins(t *testing.T) {
	called := false
	late := func() (ScreenAngle, bool) {
		called = true
		return 180, true
	}

	got := ResolveScreenAngle(undefined, nil, FixedScreen(90), late)
	if got != 90 {
		t.Errorf("Expected 90, got %d", got)
	}
	if called {
		t.Error("Expected probes after the first defined one not to run")
	}
}

func TestResolveScreenAngle_DefaultZero(t *testing.T) {
	if got := ResolveScreenAngle(); got != 0 {
		t.Errorf("Expected 0 with no probes, got %d", got)
	}
	if got := ResolveScreenAngle(undefined, OrientationTypeProbe("")); got != 0 {
		t.Errorf("Expected 0 with only undefined probes, got %d", got)
	}
}

func TestResolveScreenAngle_Normalises(t *testing.T) {
	legacy := -90
	if got := ResolveScreenAngle(NumericProbe(&legacy)); got != 270 {
		t.Errorf("Expected -90 to normalise to 270, got %d", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := map[int]int{0: 0, 90: 90, -90: 270, 360: 0, 450: 90, -180: 180, 720: 0}
	for in, want := range tests {
		if got := NormalizeAngle(in); got != want {
			t.Errorf("NormalizeAngle(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestOrderForScreen(t *testing.T) {
	tests := []struct {
		angle ScreenAngle
		want  EulerOrder
	}{
		{0, OrderYXZ},
		{180, OrderYXZ},
		{90, OrderYZX},
		{270, OrderYZX},
		{-90, OrderYZX},
	}
	for _, tt := range tests {
		if got := OrderForScreen(tt.angle); got != tt.want {
			t.Errorf("OrderForScreen(%d): expected %s, got %s", tt.angle, tt.want, got)
		}
	}
}

func TestOrientationTypeProbe(t *testing.T) {
	tests := []struct {
		in     string
		want   ScreenAngle
		wantOK bool
	}{
		{"portrait-primary", 0, true},
		{"portrait-secondary", 180, true},
		{"landscape-primary", 90, true},
		{"landscape-secondary", 270, true},
		{"upside-down", 0, false},
	}
	for _, tt := range tests {
		got, ok := OrientationTypeProbe(tt.in)()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%q: expected (%d, %v), got (%d, %v)", tt.in, tt.want, tt.wantOK, got, ok)
		}
	}
}

func TestNumericProbe_Nil(t *testing.T) {
	if _, ok := NumericProbe(nil)(); ok {
		t.Error("Expected nil numeric probe to be undefined")
	}
}
