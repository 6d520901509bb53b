package orientation

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithSensitivity sets the drag sensitivity. Non-positive values are ignored.
//
// Parameters:
//   - sensitivity: radians per pixel of pointer movement
//
// Returns:
//   - ControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float64) ControllerOption {
	return func(c *controllerImpl) {
		if sensitivity > 0 {
			c.sensitivity = sensitivity
		}
	}
}

// WithLatitude sets the initial pitch, also used by Reset. Clamped to [-pi/2, pi/2].
//
// Parameters:
//   - latitude: pitch in radians
//
// Returns:
//   - ControllerOption: functional option to set the initial latitude
func WithLatitude(latitude float64) ControllerOption {
	return func(c *controllerImpl) {
		c.initialLatitude = latitude
	}
}

// WithLongitude sets the initial yaw, also used by Reset.
//
// Parameters:
//   - longitude: yaw in radians
//
// Returns:
//   - ControllerOption: functional option to set the initial longitude
func WithLongitude(longitude float64) ControllerOption {
	return func(c *controllerImpl) {
		c.initialLongitude = longitude
	}
}

// WithScreenProbes appends fallback screen-angle probes consulted after the
// probes supplied with each sensor sample.
//
// Parameters:
//   - probes: probes in priority order
//
// Returns:
//   - ControllerOption: functional option to add screen probes
func WithScreenProbes(probes ...ScreenProbe) ControllerOption {
	return func(c *controllerImpl) {
		c.probes = append(c.probes, probes...)
	}
}
