package viewer

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/orientation"
	"github.com/Carmen-Shannon/oxy-pano/engine/sensor"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// defaultNudge is the synthetic drag distance of one arrow key press, in pixels.
	defaultNudge = 10

	minFovDegrees  = 30
	maxFovDegrees  = 100
	zoomStepDegree = 5
)

// Viewer routes window input and sensor events to the orientation controller.
type Viewer struct {
	win  window.Window
	ctrl orientation.Controller
	cam  camera.Camera
	tex  texture.Source
	log  logger.Logger

	nudge float64

	mu       sync.Mutex
	lastX    float64
	lastY    float64
	havePos  bool
	sensorOn atomic.Bool
}

// NewViewer creates a viewer for a window and controller. Call Attach to start receiving input.
//
// Parameters:
//   - win: the window delivering input
//   - ctrl: the controller driving the camera
//   - options: functional options
//
// Returns:
//   - *Viewer: the viewer
func NewViewer(win window.Window, ctrl orientation.Controller, options ...ViewerOption) *Viewer {
	v := &Viewer{
		win:   win,
		ctrl:  ctrl,
		log:   logger.NewNop(),
		nudge: defaultNudge,
	}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// Attach registers the viewer's input callbacks on the window.
// Must be called before the window's message loop starts.
func (v *Viewer) Attach() {
	v.win.SetMouseDownCallback(v.mouseDown)
	v.win.SetMouseUpCallback(v.mouseUp)
	v.win.SetMouseMoveCallback(v.mouseMove)
	v.win.SetKeyDownCallback(v.keyDown)
	v.win.SetScrollCallback(v.scroll)
}

// RunSensor forwards every event from src to the controller until ctx is cancelled or the
// source ends. All-zero samples are dropped by the controller.
//
// Parameters:
//   - ctx: cancels the source
//   - src: the sensor source
//
// Returns:
//   - error: the source's error, nil on cancellation or a finished recording
func (v *Viewer) RunSensor(ctx context.Context, src sensor.Source) error {
	return src.Run(ctx, v.applySensor)
}

func (v *Viewer) applySensor(ev sensor.Event) {
	if !v.ctrl.ApplySensor(ev.Sample(), ev.Probes()...) {
		return
	}
	if v.sensorOn.CompareAndSwap(false, true) {
		v.log.Info("sensor stream active", logger.F("screen_angle", int(v.ctrl.ScreenAngle())))
	}
}

func (v *Viewer) mouseDown(button uint32, x, y float64) {
	if button != common.MouseButtonLeft {
		return
	}
	v.mu.Lock()
	v.lastX, v.lastY, v.havePos = x, y, true
	v.mu.Unlock()
	v.ctrl.StartCapture()
}

func (v *Viewer) mouseUp(button uint32, _, _ float64) {
	if button != common.MouseButtonLeft {
		return
	}
	v.ctrl.StopCapture()
}

func (v *Viewer) mouseMove(x, y float64) {
	v.mu.Lock()
	dx, dy := x-v.lastX, y-v.lastY
	first := !v.havePos
	v.lastX, v.lastY, v.havePos = x, y, true
	v.mu.Unlock()

	if first {
		return
	}
	v.ctrl.PointerMove(dx, dy)
}

func (v *Viewer) keyDown(key uint32) {
	switch key {
	case common.KeyEsc:
		v.win.RequestClose()
	case common.KeyR:
		v.ctrl.Reset()
		v.log.Debug("view reset")
	case common.KeyLeft:
		v.ctrl.Rotate(-v.nudge, 0)
	case common.KeyRight:
		v.ctrl.Rotate(v.nudge, 0)
	case common.KeyUp:
		v.ctrl.Rotate(0, -v.nudge)
	case common.KeyDown:
		v.ctrl.Rotate(0, v.nudge)
	case common.KeySpace:
		if p, ok := v.tex.(texture.Pausable); ok {
			p.SetPaused(!p.Paused())
			v.log.Debug("playback toggled", logger.F("paused", p.Paused()))
		}
	}
}

// scroll zooms by narrowing or widening the field of view.
func (v *Viewer) scroll(delta float64) {
	if v.cam == nil {
		return
	}
	fov := float64(mgl32.RadToDeg(v.cam.Fov())) - delta*zoomStepDegree
	v.cam.SetFov(mgl32.DegToRad(float32(common.Clamp(fov, minFovDegrees, maxFovDegrees))))
}
