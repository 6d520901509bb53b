package camera

// CameraBuilderOption configures a camera at construction time.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view in radians.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithClipPlanes sets the near and far plane distances.
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithViewport sets the aspect ratio from a framebuffer size.
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.aspect = float32(width) / float32(height)
		}
	}
}

// WithSource sets the orientation source read on every Update.
func WithSource(source OrientationSource) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.source = source
	}
}
