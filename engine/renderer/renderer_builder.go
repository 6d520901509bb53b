package renderer

import "github.com/Carmen-Shannon/oxy-pano/internal/logger"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode. Defaults to PresentModeVSync.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample count of the main render pass. Defaults to MSAA4x.
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer requests the fallback (CPU) adapter. Needs a software
// Vulkan ICD such as lavapipe or SwiftShader on the host.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color drawn behind the panorama mesh, visible around a dome or tube.
func WithClearColor(rgba [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = rgba
	}
}

// WithLogger sets the logger used for surface and pipeline events.
func WithLogger(log logger.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.log = log
	}
}
