package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
)

// Scene is the panorama: one inward-facing mesh, one material sampling one texture source,
// and one camera at the origin. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently drawn.
	Active() bool

	// SetActive sets whether this scene is drawn.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Model returns the panorama mesh.
	Model() model.Model

	// Material returns the material drawing the mesh.
	Material() material.Material

	// Texture returns the texture source picked at startup.
	Texture() texture.Source

	// Update refreshes the camera from its orientation source, advances the texture source
	// and uploads the camera uniform, any dirty frame and the params block.
	//
	// Parameters:
	//   - dt: wall-clock time since the previous frame
	//
	// Returns:
	//   - error: error if a texture upload fails
	Update(dt time.Duration) error

	// DrawCalls records the panorama draw. Must be called between BeginFrame and EndFrame.
	//
	// Returns:
	//   - error: error if the draw cannot be recorded
	DrawCalls() error

	// Resize reconfigures the surface and the camera aspect ratio.
	//
	// Parameters:
	//   - width, height: new framebuffer size in pixels
	Resize(width, height int)

	// Release frees the scene's GPU resources. The renderer is left to its owner.
	Release()
}

type scene struct {
	mu sync.RWMutex

	name   string
	active bool
	log    logger.Logger

	cam camera.Camera
	r   renderer.Renderer
	mdl model.Model
	mat material.Material
	tex texture.Source

	plan            bindingPlan
	textureProvider bind_group_provider.BindGroupProvider

	elapsed time.Duration
	frame   uint32

	// reused each frame
	writes     []bind_group_provider.BufferWrite
	bindGroups []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene builds the panorama and creates its GPU resources: the material pipeline, the mesh
// buffers, the camera bind group and the texture bind group holding the first frame.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera, usually sourced from the orientation controller
//   - r: the renderer owning the surface
//   - mdl: the panorama mesh
//   - mat: the material; its shaders decide the bind group layout
//   - tex: the texture source
//   - options: functional options
//
// Returns:
//   - Scene: the ready scene
//   - error: error if the shaders do not fit the panorama layout or GPU setup fails
func NewScene(name string, cam camera.Camera, r renderer.Renderer, mdl model.Model, mat material.Material, tex texture.Source, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil || r == nil || mdl == nil || mat == nil || tex == nil {
		return nil, errors.New("scene: camera, renderer, model, material and texture are all required")
	}

	s := &scene{
		name:   name,
		active: true,
		log:    logger.NewNop(),
		cam:    cam,
		r:      r,
		mdl:    mdl,
		mat:    mat,
		tex:    tex,
	}
	for _, option := range options {
		option(s)
	}

	if err := s.init(); err != nil {
		s.Release()
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}

	w, h := tex.Size()
	s.log.Info("scene ready",
		logger.F("scene", name),
		logger.F("geometry", mdl.Shape().String()),
		logger.F("material", mat.Mode().String()),
		logger.F("texture", tex.Kind().String()),
		logger.F("width", w),
		logger.F("height", h),
	)
	return s, nil
}

func (s *scene) init() error {
	vs := s.mat.Pipeline().Shader(shader.ShaderTypeVertex)
	fs := s.mat.Pipeline().Shader(shader.ShaderTypeFragment)
	if err := checkVertexLayout(vs); err != nil {
		return err
	}
	plan, err := planBindings(vs, fs)
	if err != nil {
		return err
	}
	camProvider := s.cam.BindGroupProvider()
	if camProvider.Group() != plan.cameraGroup {
		return fmt.Errorf("camera uniform is declared in group %d, the camera binds group %d", plan.cameraGroup, camProvider.Group())
	}
	s.plan = plan

	if err := s.r.RegisterPipelines(s.mat.Pipeline()); err != nil {
		return err
	}

	mesh := bind_group_provider.NewBindGroupProvider(s.mdl.Name() + " mesh")
	if err := s.r.InitMeshBuffers(mesh, s.mdl.VertexData(), s.mdl.IndexData(), s.mdl.IndexCount()); err != nil {
		return fmt.Errorf("failed to upload mesh: %w", err)
	}
	s.mdl.SetMeshProvider(mesh)

	if err := s.r.InitBindGroup(camProvider, plan.layouts[plan.cameraGroup], nil); err != nil {
		return fmt.Errorf("failed to init camera bind group: %w", err)
	}

	if plan.textureGroup >= 0 {
		provider := bind_group_provider.NewBindGroupProvider(s.mat.Name(), bind_group_provider.WithGroup(plan.textureGroup))
		s.textureProvider = provider
		s.mat.SetBindGroupProvider(provider)

		// consumes the source's dirty flag: this is the first upload
		frame, _ := s.tex.Advance(0)
		for _, b := range plan.textures {
			if err := s.r.InitTextureView(provider, b, *frame); err != nil {
				return fmt.Errorf("failed to upload panorama texture: %w", err)
			}
		}
		for _, b := range plan.samplers {
			if err := s.r.InitSampler(provider, b, common.PanoramaSampler()); err != nil {
				return fmt.Errorf("failed to create panorama sampler: %w", err)
			}
		}
		if err := s.r.InitBindGroup(provider, plan.layouts[plan.textureGroup], nil); err != nil {
			return fmt.Errorf("failed to init texture bind group: %w", err)
		}
	}

	return nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Model() model.Model {
	return s.mdl
}

func (s *scene) Material() material.Material {
	return s.mat
}

func (s *scene) Texture() texture.Source {
	return s.tex
}

func (s *scene) Update(dt time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed += dt
	s.cam.Update()

	s.writes = s.writes[:0]
	uniform := s.cam.Uniform()
	s.writes = append(s.writes, bind_group_provider.BufferWrite{
		Provider: s.cam.BindGroupProvider(),
		Binding:  s.plan.cameraBinding,
		Data:     uniform.Marshal(),
	})

	frame, dirty := s.tex.Advance(dt)
	if s.textureProvider != nil {
		if dirty {
			for _, b := range s.plan.textures {
				if err := s.r.UpdateTexture(s.textureProvider, b, *frame); err != nil {
					return fmt.Errorf("scene %s: %w", s.name, err)
				}
			}
		}
		if len(s.plan.params) > 0 {
			data := s.params(frame).Marshal()
			for _, b := range s.plan.params {
				s.writes = append(s.writes, bind_group_provider.BufferWrite{
					Provider: s.textureProvider,
					Binding:  b,
					Data:     data,
				})
			}
		}
	}

	s.r.WriteBuffers(s.writes)
	s.frame++
	return nil
}

// params builds the per-frame uniform for custom shaders. Caller must hold the mutex.
func (s *scene) params(frame *common.TextureStagingData) *material.GPUPanoramaParams {
	return &material.GPUPanoramaParams{
		Resolution: [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:       float32(s.elapsed.Seconds()),
		Frame:      s.frame,
	}
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	mesh := s.mdl.MeshProvider()
	if mesh == nil {
		return fmt.Errorf("scene %s: mesh not uploaded", s.name)
	}

	s.bindGroups = append(s.bindGroups[:0], s.cam.BindGroupProvider())
	if s.textureProvider != nil {
		s.bindGroups = append(s.bindGroups, s.textureProvider)
	}
	return s.r.DrawCall(s.mat.Pipeline().Key(), mesh, s.bindGroups)
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.r.Resize(width, height)
	s.cam.SetViewport(width, height)
}

func (s *scene) Release() {
	if mesh := s.mdl.MeshProvider(); mesh != nil {
		mesh.Release()
		s.mdl.SetMeshProvider(nil)
	}
	if s.textureProvider != nil {
		s.textureProvider.Release()
		s.textureProvider = nil
		s.mat.SetBindGroupProvider(nil)
	}
	s.cam.BindGroupProvider().Release()
}
