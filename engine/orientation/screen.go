package orientation

// ScreenProbe asks one platform source for the current screen rotation.
// ok is false when the source has nothing to report.
type ScreenProbe func() (angle ScreenAngle, ok bool)

// vendorOrientationTypes maps orientation-type strings to screen angles.
var vendorOrientationTypes = map[string]ScreenAngle{
	"portrait-primary":    0,
	"portrait-secondary":  180,
	"landscape-primary":   90,
	"landscape-secondary": 270,
}

// ResolveScreenAngle walks the probes in order and returns the first defined
// angle, normalised to [0, 360). With no defined probe the angle is 0.
//
// Parameters:
//   - probes: capability probes in priority order; nil entries are skipped
//
// Returns:
//   - ScreenAngle: resolved screen rotation
func ResolveScreenAngle(probes ...ScreenProbe) ScreenAngle {
	for _, probe := range probes {
		if probe == nil {
			continue
		}
		if angle, ok := probe(); ok {
			return ScreenAngle(NormalizeAngle(int(angle)))
		}
	}
	return 0
}

// NormalizeAngle folds any integer angle into [0, 360). Legacy platforms
// report -90 for landscape-secondary, which becomes 270.
func NormalizeAngle(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// OrderForScreen selects the Euler order for the sensor rotation.
// Upright screens use YXZ; screens turned sideways use YZX.
func OrderForScreen(angle ScreenAngle) EulerOrder {
	if angle.Portrait() {
		return OrderYXZ
	}
	return OrderYZX
}

// FixedScreen returns a probe that always reports angle.
func FixedScreen(angle ScreenAngle) ScreenProbe {
	return func() (ScreenAngle, bool) {
		return angle, true
	}
}

// NumericProbe returns a probe over an optional numeric angle, as exposed by
// the standard and legacy orientation properties.
func NumericProbe(angle *int) ScreenProbe {
	return func() (ScreenAngle, bool) {
		if angle == nil {
			return 0, false
		}
		return ScreenAngle(*angle), true
	}
}

// OrientationTypeProbe returns a probe over an orientation-type string such as
// "landscape-primary". Unknown or empty strings are undefined.
func OrientationTypeProbe(orientationType string) ScreenProbe {
	return func() (ScreenAngle, bool) {
		angle, ok := vendorOrientationTypes[orientationType]
		return angle, ok
	}
}
