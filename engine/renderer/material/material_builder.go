package material

import (
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
)

// MaterialBuilderOption configures a material at construction time.
type MaterialBuilderOption func(*material)

// WithName sets the material name, also used as the pipeline key and shader key prefix.
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithShaderFiles loads custom WGSL from disk. Empty paths keep the built-in shaders.
func WithShaderFiles(vertexPath, fragmentPath string) MaterialBuilderOption {
	return func(m *material) {
		m.vertexPath = vertexPath
		m.fragmentPath = fragmentPath
	}
}

// WithShaders uses already reflected custom shaders.
func WithShaders(vertex, fragment shader.Shader) MaterialBuilderOption {
	return func(m *material) {
		m.vertexShader = vertex
		m.fragmentShader = fragment
	}
}

// WithPipelineOptions adds fixed-function state, such as blending, to the material's pipeline.
func WithPipelineOptions(opts ...pipeline.PipelineBuilderOption) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineOptions = append(m.pipelineOptions, opts...)
	}
}
