package orientation

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSensitivity is the drag sensitivity in radians per pixel.
const DefaultSensitivity = 0.01

const halfPi = math.Pi / 2

// controllerImpl is the single implementation of Controller.
// GLFW callbacks, the sensor goroutine and the render goroutine all reach this
// state, so every access holds mu.
type controllerImpl struct {
	mu *sync.Mutex

	sensitivity float64
	capturing   bool

	initialLatitude  float64
	initialLongitude float64
	latitude         float64
	longitude        float64

	probes []ScreenProbe
	screen ScreenAngle

	rotation mgl32.Quat
	mode     Mode
	version  uint64
}

var _ Controller = &controllerImpl{}

// NewController creates an orientation controller looking down -Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controllerImpl{
		mu:          &sync.Mutex{},
		sensitivity: DefaultSensitivity,
	}

	for _, option := range options {
		option(c)
	}

	c.initialLatitude = common.Clamp(c.initialLatitude, -halfPi, halfPi)
	c.latitude = c.initialLatitude
	c.longitude = c.initialLongitude
	c.rotation = DragRotation(c.latitude, c.longitude)
	return c
}

func (c *controllerImpl) StartCapture() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capturing = true
}

func (c *controllerImpl) StopCapture() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capturing = false
}

func (c *controllerImpl) Capturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capturing
}

func (c *controllerImpl) PointerMove(dx, dy float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.capturing {
		return false
	}
	c.applyDrag(dx, dy)
	return true
}

func (c *controllerImpl) Rotate(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyDrag(dx, dy)
}

func (c *controllerImpl) ApplySensor(sample DeviceOrientation, probes ...ScreenProbe) bool {
	if IsNullSample(sample) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	chain := make([]ScreenProbe, 0, len(probes)+len(c.probes))
	chain = append(chain, probes...)
	chain = append(chain, c.probes...)

	c.screen = ResolveScreenAngle(chain...)
	c.rotation = SensorRotation(sample, c.screen)
	c.mode = ModeSensor
	c.version++
	return true
}

func (c *controllerImpl) Rotation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *controllerImpl) Latitude() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latitude
}

func (c *controllerImpl) Longitude() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.longitude
}

func (c *controllerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) ScreenAngle() ScreenAngle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *controllerImpl) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

func (c *controllerImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.capturing = false
	c.latitude = c.initialLatitude
	c.longitude = c.initialLongitude
	c.rotation = DragRotation(c.latitude, c.longitude)
	c.mode = ModeNone
	c.version++
}

// applyDrag accumulates one drag delta and rebuilds the rotation.
// Caller must hold the mutex.
func (c *controllerImpl) applyDrag(dx, dy float64) {
	c.latitude = common.Clamp(c.latitude-dy*c.sensitivity, -halfPi, halfPi)
	c.longitude -= dx * c.sensitivity
	c.rotation = DragRotation(c.latitude, c.longitude)
	c.mode = ModeDrag
	c.version++
}
