package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is what the renderer needs from a window to present into it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend
	log         logger.Logger

	// collected from builder options before the backend exists
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           [4]float64
}

// Renderer is the high-level GPU API used by the scene. It caches registered pipelines by key
// and forwards resource creation and per-frame drawing to the backend.
//
// A frame is BeginFrame, any number of DrawCall, EndFrame, then Present.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	Resize(width, height int)

	SetPresentMode(mode PresentMode)

	// Pipeline returns a registered pipeline, or nil.
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates GPU pipelines for every pipeline not yet cached under its key.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first registration error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	UpdateTexture(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	BeginFrame() error

	// DrawCall draws meshProvider with the pipeline cached under pipelineKey.
	//
	// Returns:
	//   - error: error if no pipeline is registered under pipelineKey
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	EndFrame()
	Present()

	// Release frees every GPU object the renderer created itself. Providers are released by their owners.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU backend for surface and configures it at the surface's size.
// It panics if no GPU adapter or device can be obtained.
//
// Parameters:
//   - backendType: the backend implementation, only BackendTypeWGPU exists
//   - surface: the window to present into
//   - options: present mode, MSAA, clear color and logger options
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		log:           logger.NewNop(),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    [4]float64{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.presentMode, r.clearColor)
	}

	r.backend.ConfigureSurface(surface.Width(), surface.Height())
	r.log.Info("renderer ready",
		logger.F("width", surface.Width()),
		logger.F("height", surface.Height()),
		logger.F("msaa", uint32(r.msaa)),
		logger.F("software", r.forceFallbackAdapter),
	)
	return r
}

func (r *renderer) Resize(width, height int) {
	r.log.Debug("surface resized", logger.F("width", width), logger.F("height", height))
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		if _, exists := r.pipelineCache[p.Key()]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[p.Key()] = p
		r.log.Debug("pipeline registered", logger.F("pipeline", p.Key()))
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) UpdateTexture(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.UpdateTexture(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		if rp := p.RenderPipeline(); rp != nil {
			rp.Release()
			p.SetRenderPipeline(nil)
		}
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}
