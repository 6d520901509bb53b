package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const vertexSource = `@vertex fn vs_main(@location(0) p: vec3<f32>) -> @builtin(position) vec4<f32> { return vec4<f32>(p, 1.0); }`
const fragmentSource = `@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("panorama")

	if p.Key() != "panorama" {
		t.Errorf("Key() = %q", p.Key())
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("depth test and write should default on")
	}
	if p.CullMode() != wgpu.CullModeNone {
		t.Errorf("CullMode() = %v, want none", p.CullMode())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v", p.Topology())
	}
	if p.BlendState() != nil {
		t.Error("blending should default off")
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() should be nil before registration")
	}
}

func TestNewPipelineOptions(t *testing.T) {
	vs := shader.MustShader("vs", shader.ShaderTypeVertex, vertexSource)
	fs := shader.MustShader("fs", shader.ShaderTypeFragment, fragmentSource)

	p := NewPipeline("custom",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithDepthTest(false, false),
		WithCullMode(wgpu.CullModeBack),
		WithAlphaBlend(),
	)

	if p.Shader(shader.ShaderTypeVertex) != vs || p.Shader(shader.ShaderTypeFragment) != fs {
		t.Error("Shader() should return the configured shaders")
	}
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Error("WithDepthTest(false, false) not applied")
	}
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("CullMode() = %v, want back", p.CullMode())
	}
	if p.BlendState() == nil || p.BlendState().Color.SrcFactor != wgpu.BlendFactorSrcAlpha {
		t.Error("WithAlphaBlend() not applied")
	}
}
