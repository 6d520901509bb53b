package viewer

import (
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
)

// ViewerOption is a functional option for configuring a Viewer.
type ViewerOption func(*Viewer)

// WithCamera enables scroll-wheel zoom on the given camera.
func WithCamera(cam camera.Camera) ViewerOption {
	return func(v *Viewer) {
		v.cam = cam
	}
}

// WithTexture lets the space bar pause and resume a video source.
func WithTexture(tex texture.Source) ViewerOption {
	return func(v *Viewer) {
		v.tex = tex
	}
}

// WithNudge sets the synthetic drag distance of an arrow key press in pixels.
// Non-positive values keep the default of 10.
func WithNudge(pixels float64) ViewerOption {
	return func(v *Viewer) {
		if pixels > 0 {
			v.nudge = pixels
		}
	}
}

// WithLogger sets the viewer's logger.
func WithLogger(log logger.Logger) ViewerOption {
	return func(v *Viewer) {
		if log != nil {
			v.log = log
		}
	}
}
