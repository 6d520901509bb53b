package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// OrientationSource supplies the camera rotation each frame. orientation.Controller satisfies it.
type OrientationSource interface {
	Rotation() mgl32.Quat
}

// VersionedSource is an OrientationSource that counts its changes. Update skips the
// matrix rebuild while the version stays the same.
type VersionedSource interface {
	OrientationSource
	Version() uint64
}

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32 // radians
	aspect float32
	near   float32
	far    float32

	orientation mgl32.Quat

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	source            OrientationSource
	sourceGeneration  uint64 // bumped by SetSource
	sourceVersion     uint64
	haveVersion       bool
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera is a perspective camera fixed at the origin. With the identity orientation it looks
// down -Z with +Y up; its orientation is read from an OrientationSource on every Update.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32
	Aspect() float32
	Near() float32
	Far() float32

	// Orientation returns the rotation captured by the last Update.
	Orientation() mgl32.Quat

	// Forward returns the unit view direction in world space.
	Forward() mgl32.Vec3

	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ViewProjectionMatrix() mgl32.Mat4

	// Uniform returns the GPU representation of the current matrices.
	Uniform() GPUCameraUniform

	Source() OrientationSource

	// BindGroupProvider returns the provider holding the camera uniform buffer at group 0.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update reads the orientation source, if any, and recomputes the matrices.
	Update()

	SetFov(fov float32)

	// SetViewport sets the aspect ratio from a framebuffer size. A zero height is ignored.
	SetViewport(width, height int)

	SetSource(source OrientationSource)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with a 75° vertical field of view, near plane 1 and far plane 1000.
//
// Parameters:
//   - options: optional configuration such as WithSource and WithViewport
//
// Returns:
//   - Camera: the camera with its matrices computed
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                &sync.Mutex{},
		fov:               mgl32.DegToRad(75),
		aspect:            1,
		near:              1,
		far:               1000,
		orientation:       mgl32.QuatIdent(),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider("camera", bind_group_provider.WithGroup(0)),
	}
	for _, option := range options {
		option(c)
	}
	c.Update()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation.Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{ViewProj: c.viewProjectionMatrix}
}

func (c *cameraImpl) Source() OrientationSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return c.bindGroupProvider
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	source, generation := c.source, c.sourceGeneration
	c.mu.Unlock()

	// read outside the camera lock, the source has its own.
	// The version is read first so a change racing the rotation read is picked up next frame.
	var (
		rotation  mgl32.Quat
		version   uint64
		versioned bool
	)
	if vs, ok := source.(VersionedSource); ok {
		version, versioned = vs.Version(), true
	}
	if source != nil {
		rotation = source.Rotation()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sourceGeneration != generation {
		// SetSource ran meanwhile; the next Update reads the new one
		return
	}
	if versioned && c.haveVersion && version == c.sourceVersion {
		return
	}
	c.sourceVersion, c.haveVersion = version, versioned
	if source != nil {
		c.orientation = rotation.Normalize()
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = float32(width) / float32(height)
	c.updateMatrices()
}

func (c *cameraImpl) SetSource(source OrientationSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = source
	c.sourceGeneration++
	c.haveVersion = false
}

// updateMatrices recomputes view, projection and their product. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = common.ViewFromRotation(c.orientation)
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
