package material

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
)

// Mode selects how the panorama texture is turned into pixels.
type Mode int

const (
	// ModeBasic samples an equirectangular texture with the built-in shaders.
	ModeBasic Mode = iota

	// ModeShader runs author-supplied WGSL, for raw sensor layouts such as a fisheye circle.
	ModeShader
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeShader:
		return "shader"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type material struct {
	name string
	mode Mode

	vertexPath, fragmentPath string
	vertexShader             shader.Shader
	fragmentShader           shader.Shader
	pipelineOptions          []pipeline.PipelineBuilderOption

	pipeline          pipeline.Pipeline
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material pairs a render pipeline with the bind group provider holding the panorama texture.
type Material interface {
	Name() string

	Mode() Mode

	// Pipeline returns the pipeline description built from the material's shaders.
	Pipeline() pipeline.Pipeline

	// BindGroupProvider returns the texture group provider, nil until the scene initializes it.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial builds a material. Without shader options it uses the built-in equirectangular
// shaders. Supplying WithShaderFiles or WithShaders switches it to ModeShader.
//
// Parameters:
//   - options: name and shader options
//
// Returns:
//   - Material: the material with its pipeline description
//   - error: error if custom shaders cannot be loaded or only one stage was given
func NewMaterial(options ...MaterialBuilderOption) (Material, error) {
	m := &material{name: "panorama"}
	for _, opt := range options {
		opt(m)
	}

	if (m.vertexPath == "") != (m.fragmentPath == "") {
		return nil, errors.New("custom material needs both a vertex and a fragment shader file")
	}
	if m.vertexPath != "" {
		vs, vErr := shader.LoadShader(m.name+".vert", shader.ShaderTypeVertex, m.vertexPath)
		fs, fErr := shader.LoadShader(m.name+".frag", shader.ShaderTypeFragment, m.fragmentPath)
		if err := errors.Join(vErr, fErr); err != nil {
			return nil, err
		}
		m.vertexShader, m.fragmentShader = vs, fs
	}

	switch {
	case m.vertexShader == nil && m.fragmentShader == nil:
		m.mode = ModeBasic
		m.vertexShader = shader.MustShader(m.name+".vert", shader.ShaderTypeVertex, BasicVertexSource)
		m.fragmentShader = shader.MustShader(m.name+".frag", shader.ShaderTypeFragment, BasicFragmentSource)
	case m.vertexShader == nil || m.fragmentShader == nil:
		return nil, errors.New("custom material needs both a vertex and a fragment shader")
	default:
		m.mode = ModeShader
	}

	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(m.vertexShader),
		pipeline.WithFragmentShader(m.fragmentShader),
	}, m.pipelineOptions...)
	m.pipeline = pipeline.NewPipeline(m.name, opts...)
	return m, nil
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Mode() Mode {
	return m.mode
}

func (m *material) Pipeline() pipeline.Pipeline {
	return m.pipeline
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
