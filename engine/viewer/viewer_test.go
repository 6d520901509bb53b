package viewer

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/orientation"
	"github.com/Carmen-Shannon/oxy-pano/engine/sensor"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeWindow struct {
	window.Window
	closeRequested bool

	onMouseDown func(button uint32, x, y float64)
	onMouseUp   func(button uint32, x, y float64)
	onMouseMove func(x, y float64)
	onKeyDown   func(key uint32)
	onScroll    func(delta float64)
}

func (w *fakeWindow) SetMouseDownCallback(cb func(button uint32, x, y float64)) { w.onMouseDown = cb }
func (w *fakeWindow) SetMouseUpCallback(cb func(button uint32, x, y float64)) { w.onMouseUp = cb }
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y float64)) { w.onMouseMove = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(key uint32)) { w.onKeyDown = cb }
func (w *fakeWindow) SetScrollCallback(cb func(delta float64)) { w.onScroll = cb }
func (w *fakeWindow) RequestClose() { w.closeRequested = true }

func newAttached(options ...ViewerOption) (*fakeWindow, orientation.Controller) {
	w := &fakeWindow{}
	ctrl := orientation.NewController()
	NewViewer(w, ctrl, options...).Attach()
	return w, ctrl
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestViewer_DragLifecycle(t *testing.T) {
	w, ctrl := newAttached()

	// moving without a press does nothing
	w.onMouseMove(50, 50)
	w.onMouseMove(80, 50)
	if ctrl.Longitude() != 0 {
		t.Fatalf("Expected no rotation before capture, got longitude %v", ctrl.Longitude())
	}

	w.onMouseDown(common.MouseButtonLeft, 100, 100)
	w.onMouseMove(150, 100)
	w.onMouseMove(200, 90)
	w.onMouseUp(common.MouseButtonLeft, 200, 90)
	w.onMouseMove(400, 400)

	if !near(ctrl.Longitude(), -1.0) {
		t.Errorf("Expected longitude -1.0, got %v", ctrl.Longitude())
	}
	if !near(ctrl.Latitude(), 0.1) {
		t.Errorf("Expected latitude 0.1, got %v", ctrl.Latitude())
	}
	if ctrl.Capturing() {
		t.Error("Capture should stop on mouse up")
	}
	if ctrl.Mode() != orientation.ModeDrag {
		t.Errorf("Expected drag mode, got %v", ctrl.Mode())
	}
}

func TestViewer_OtherButtonsIgnored(t *testing.T) {
	w, ctrl := newAttached()
	w.onMouseDown(common.MouseButtonRight, 0, 0)
	if ctrl.Capturing() {
		t.Error("Right button should not start capture")
	}
	w.onMouseDown(common.MouseButtonLeft, 0, 0)
	w.onMouseUp(common.MouseButtonMiddle, 0, 0)
	if !ctrl.Capturing() {
		t.Error("Middle button release should not stop capture")
	}
}

func TestViewer_Keys(t *testing.T) {
	w, ctrl := newAttached()

	w.onKeyDown(common.KeyRight)
	if !near(ctrl.Longitude(), -0.1) {
		t.Errorf("Right arrow: expected longitude -0.1, got %v", ctrl.Longitude())
	}
	w.onKeyDown(common.KeyLeft)
	w.onKeyDown(common.KeyLeft)
	if !near(ctrl.Longitude(), 0.1) {
		t.Errorf("Left arrow: expected longitude 0.1, got %v", ctrl.Longitude())
	}
	w.onKeyDown(common.KeyUp)
	if !near(ctrl.Latitude(), 0.1) {
		t.Errorf("Up arrow: expected latitude 0.1, got %v", ctrl.Latitude())
	}
	w.onKeyDown(common.KeyDown)
	w.onKeyDown(common.KeyDown)
	if !near(ctrl.Latitude(), -0.1) {
		t.Errorf("Down arrow: expected latitude -0.1, got %v", ctrl.Latitude())
	}

	w.onKeyDown(common.KeyR)
	if ctrl.Latitude() != 0 || ctrl.Longitude() != 0 {
		t.Errorf("R should reset, got lat %v lon %v", ctrl.Latitude(), ctrl.Longitude())
	}

	w.onKeyDown(common.KeyEsc)
	if !w.closeRequested {
		t.Error("Esc should request close")
	}
}

func TestViewer_CustomNudge(t *testing.T) {
	w, ctrl := newAttached(WithNudge(50))
	w.onKeyDown(common.KeyRight)
	if !near(ctrl.Longitude(), -0.5) {
		t.Errorf("Expected longitude -0.5, got %v", ctrl.Longitude())
	}
}

func TestViewer_SpaceTogglesVideo(t *testing.T) {
	px := &common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	video, err := texture.NewVideo([]*common.TextureStagingData{px}, []time.Duration{time.Second})
	if err != nil {
		t.Fatalf("NewVideo failed: %v", err)
	}
	w, _ := newAttached(WithTexture(video))

	w.onKeyDown(common.KeySpace)
	if !video.Paused() {
		t.Error("Space should pause the video")
	}
	w.onKeyDown(common.KeySpace)
	if video.Paused() {
		t.Error("Space should resume the video")
	}
}

func TestViewer_SpaceWithStillIsNoop(t *testing.T) {
	px := &common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	w, _ := newAttached(WithTexture(texture.NewStill(px)))
	w.onKeyDown(common.KeySpace)

	w2, _ := newAttached()
	w2.onKeyDown(common.KeySpace)
}

func TestViewer_ScrollZoom(t *testing.T) {
	cam := camera.NewCamera()
	w, _ := newAttached(WithCamera(cam))

	w.onScroll(1)
	if got := mgl32.RadToDeg(cam.Fov()); math.Abs(float64(got-70)) > 1e-3 {
		t.Errorf("Expected fov 70, got %v", got)
	}
	for range 20 {
		w.onScroll(1)
	}
	if got := mgl32.RadToDeg(cam.Fov()); math.Abs(float64(got-minFovDegrees)) > 1e-3 {
		t.Errorf("Expected fov clamped to %d, got %v", minFovDegrees, got)
	}
	for range 40 {
		w.onScroll(-1)
	}
	if got := mgl32.RadToDeg(cam.Fov()); math.Abs(float64(got-maxFovDegrees)) > 1e-3 {
		t.Errorf("Expected fov clamped to %d, got %v", maxFovDegrees, got)
	}
}

// sliceSource replays fixed events synchronously.
type sliceSource []sensor.Event

func (s sliceSource) Run(ctx context.Context, handler sensor.Handler) error {
	for _, e := range s {
		if ctx.Err() != nil {
			return nil
		}
		handler(e)
	}
	return nil
}

func deg(v float64) *float64 { return &v }

func TestViewer_RunSensor(t *testing.T) {
	w := &fakeWindow{}
	ctrl := orientation.NewController()
	v := NewViewer(w, ctrl)

	landscape := 90
	src := sliceSource{
		{Alpha: deg(90)},
		{Alpha: deg(0), Beta: deg(0), Gamma: deg(0), ScreenOrientationAngle: &landscape},
	}
	if err := v.RunSensor(context.Background(), src); err != nil {
		t.Fatalf("RunSensor failed: %v", err)
	}

	if ctrl.Mode() != orientation.ModeSensor {
		t.Fatalf("Expected sensor mode, got %v", ctrl.Mode())
	}
	want := orientation.SensorRotation(orientation.DeviceOrientation{Alpha: 90}, 0)
	got := ctrl.Rotation()
	if math.Abs(float64(got.W-want.W)) > 1e-5 || math.Abs(float64(got.V.Sub(want.V).Len())) > 1e-5 {
		t.Errorf("All-zero sample should be dropped, rotation %v, want %v", got, want)
	}
	if ctrl.ScreenAngle() != 0 {
		t.Errorf("Dropped sample must not change the screen angle, got %d", ctrl.ScreenAngle())
	}
}
