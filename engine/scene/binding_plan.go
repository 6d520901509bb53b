package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// bindingPlan says which reflected binding receives which scene resource.
type bindingPlan struct {
	layouts map[int]wgpu.BindGroupLayoutDescriptor

	cameraGroup   int
	cameraBinding int

	// textureGroup is -1 when the shaders declare no panorama resources.
	textureGroup int
	textures     []int
	samplers     []int
	params       []int
}

// planBindings reflects the material's shaders and assigns the camera uniform, the panorama
// texture, its sampler and the optional params uniform to their bindings.
//
// The camera is the vertex uniform whose variable name contains "camera". Every binding of the
// one remaining group is classified by type: textures receive the panorama, samplers the
// panorama sampler and uniform buffers the GPUPanoramaParams block.
//
// Parameters:
//   - vertexShader: the material's vertex shader
//   - fragmentShader: the material's fragment shader
//
// Returns:
//   - bindingPlan: the resolved bindings
//   - error: error describing the first layout the scene cannot feed
func planBindings(vertexShader, fragmentShader shader.Shader) (bindingPlan, error) {
	plan := bindingPlan{
		layouts:       renderer.MergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors()),
		cameraGroup:   -1,
		cameraBinding: -1,
		textureGroup:  -1,
	}

	groups := make([]int, 0, len(plan.layouts))
	for g := range plan.layouts {
		groups = append(groups, g)
	}
	sort.Ints(groups)

	for _, g := range groups {
		for _, entry := range plan.layouts[g].Entries {
			name := vertexShader.VarName(g, int(entry.Binding))
			if entry.Buffer.Type == wgpu.BufferBindingTypeUniform && strings.Contains(strings.ToLower(name), "camera") {
				plan.cameraGroup, plan.cameraBinding = g, int(entry.Binding)
				break
			}
		}
		if plan.cameraGroup >= 0 {
			break
		}
	}
	if plan.cameraGroup < 0 {
		return bindingPlan{}, fmt.Errorf("%s: no camera uniform found", vertexShader.Key())
	}
	if n := len(plan.layouts[plan.cameraGroup].Entries); n != 1 {
		return bindingPlan{}, fmt.Errorf("group %d: the camera uniform must be alone in its group, found %d bindings", plan.cameraGroup, n)
	}
	if size := plan.layouts[plan.cameraGroup].Entries[0].Buffer.MinBindingSize; size != 64 {
		return bindingPlan{}, fmt.Errorf("camera uniform is %d bytes, expected a single mat4x4<f32> (64 bytes)", size)
	}

	var params material.GPUPanoramaParams
	for _, g := range groups {
		if g == plan.cameraGroup {
			continue
		}
		if plan.textureGroup >= 0 {
			return bindingPlan{}, fmt.Errorf("shaders use groups %d and %d, only one texture group is supported", plan.textureGroup, g)
		}
		plan.textureGroup = g

		for _, entry := range plan.layouts[g].Entries {
			binding := int(entry.Binding)
			switch {
			case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
				if entry.Texture.ViewDimension != wgpu.TextureViewDimension2D {
					return bindingPlan{}, fmt.Errorf("group %d binding %d: panorama texture must be texture_2d", g, binding)
				}
				plan.textures = append(plan.textures, binding)
			case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
				if entry.Sampler.Type == wgpu.SamplerBindingTypeComparison {
					return bindingPlan{}, fmt.Errorf("group %d binding %d: comparison samplers are not supported", g, binding)
				}
				plan.samplers = append(plan.samplers, binding)
			case entry.Buffer.Type == wgpu.BufferBindingTypeUniform:
				if entry.Buffer.MinBindingSize > uint64(params.Size()) {
					return bindingPlan{}, fmt.Errorf("group %d binding %d: uniform is %d bytes, params block is %d", g, binding, entry.Buffer.MinBindingSize, params.Size())
				}
				plan.params = append(plan.params, binding)
			default:
				return bindingPlan{}, fmt.Errorf("group %d binding %d: unsupported resource type", g, binding)
			}
		}
	}

	return plan, nil
}

// checkVertexLayout verifies the vertex shader reads the panorama mesh layout.
func checkVertexLayout(vertexShader shader.Shader) error {
	layouts := vertexShader.VertexLayouts()
	if len(layouts) != 1 {
		return fmt.Errorf("%s: expected one vertex buffer, found %d", vertexShader.Key(), len(layouts))
	}
	if stride := layouts[0].ArrayStride; stride != model.GPUVertexStride {
		return fmt.Errorf("%s: vertex stride is %d bytes, panorama meshes use %d (vec3 position, vec2 uv)", vertexShader.Key(), stride, model.GPUVertexStride)
	}
	return nil
}
