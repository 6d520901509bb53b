package scene

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

const testFragmentHeader = `
@group(1) @binding(0) var panoramaTexture: texture_2d<f32>;
@group(1) @binding(1) var panoramaSampler: sampler;
`

func vertexShader(t *testing.T, src string) shader.Shader {
	t.Helper()
	s, err := shader.NewShader("test.vert", shader.ShaderTypeVertex, src)
	if err != nil {
		t.Fatalf("NewShader failed: %v", err)
	}
	return s
}

func fragmentShader(t *testing.T, src string) shader.Shader {
	t.Helper()
	s, err := shader.NewShader("test.frag", shader.ShaderTypeFragment, src)
	if err != nil {
		t.Fatalf("NewShader failed: %v", err)
	}
	return s
}

func TestPlanBindings_Basic(t *testing.T) {
	plan, err := planBindings(
		vertexShader(t, material.BasicVertexSource),
		fragmentShader(t, material.BasicFragmentSource),
	)
	if err != nil {
		t.Fatalf("planBindings failed: %v", err)
	}
	if plan.cameraGroup != 0 || plan.cameraBinding != 0 {
		t.Errorf("Expected camera at 0/0, got %d/%d", plan.cameraGroup, plan.cameraBinding)
	}
	if plan.textureGroup != 1 {
		t.Errorf("Expected texture group 1, got %d", plan.textureGroup)
	}
	if !slices.Equal(plan.textures, []int{0}) || !slices.Equal(plan.samplers, []int{1}) || len(plan.params) != 0 {
		t.Errorf("Unexpected plan textures=%v samplers=%v params=%v", plan.textures, plan.samplers, plan.params)
	}
}

func TestPlanBindings_Fisheye(t *testing.T) {
	plan, err := planBindings(
		vertexShader(t, material.BasicVertexSource),
		fragmentShader(t, FisheyeFragmentSource),
	)
	if err != nil {
		t.Fatalf("planBindings failed: %v", err)
	}
	if !slices.Equal(plan.params, []int{2}) {
		t.Errorf("Expected params at binding 2, got %v", plan.params)
	}
}

func TestPlanBindings_Errors(t *testing.T) {
	noCamera := strings.Replace(material.BasicVertexSource, "camera", "view", -1)
	crowdedCamera := material.BasicVertexSource + "\n@group(0) @binding(1) var<uniform> extra: vec4<f32>;\n"
	bigCamera := strings.Replace(material.BasicVertexSource, "viewProj: mat4x4<f32>,", "viewProj: mat4x4<f32>,\n    eye: vec4<f32>,", 1)

	tests := []struct {
		name     string
		vertex   string
		fragment string
		want     string
	}{
		{"no camera", noCamera, material.BasicFragmentSource, "no camera uniform"},
		{"camera not alone", crowdedCamera, material.BasicFragmentSource, "alone"},
		{"camera too big", bigCamera, material.BasicFragmentSource, "64 bytes"},
		{"two texture groups", material.BasicVertexSource, material.BasicFragmentSource + "\n@group(2) @binding(0) var other: sampler;\n", "only one texture group"},
		{"params too big", material.BasicVertexSource, testFragmentHeader + `
@group(1) @binding(2) var<uniform> big: mat4x4<f32>;
@fragment
fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`, "params block"},
		{"storage buffer", material.BasicVertexSource, testFragmentHeader + `
@group(1) @binding(2) var<storage, read> data: array<f32>;
@fragment
fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`, "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planBindings(vertexShader(t, tt.vertex), fragmentShader(t, tt.fragment))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCheckVertexLayout(t *testing.T) {
	if err := checkVertexLayout(vertexShader(t, material.BasicVertexSource)); err != nil {
		t.Errorf("Basic vertex shader rejected: %v", err)
	}

	wide := strings.Replace(material.BasicVertexSource, "@location(0) position: vec3<f32>", "@location(0) position: vec4<f32>", 1)
	if err := checkVertexLayout(vertexShader(t, wide)); err == nil {
		t.Error("Expected stride mismatch error")
	}
}

// fakeRenderer records the calls a scene makes without a GPU.
type fakeRenderer struct {
	renderer.Renderer

	registered  []string
	meshUploads int
	bindGroups  []int
	views       []int
	samplers    []int
	samplerData []common.SamplerStagingData
	textureOps  []string
	writes      []bind_group_provider.BufferWrite
	draws       []fakeDraw
	resized     [2]int
}

type fakeDraw struct {
	key    string
	groups []int
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.registered = append(f.registered, p.Key())
	}
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	f.meshUploads++
	provider.SetIndexCount(indexCount)
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor, _ map[int]uint64) error {
	f.bindGroups = append(f.bindGroups, provider.Group())
	return nil
}

func (f *fakeRenderer) InitTextureView(_ bind_group_provider.BindGroupProvider, binding int, data common.TextureStagingData) error {
	f.views = append(f.views, binding)
	f.textureOps = append(f.textureOps, "init:"+string(rune('0'+data.Pixels[0])))
	return nil
}

func (f *fakeRenderer) UpdateTexture(_ bind_group_provider.BindGroupProvider, _ int, data common.TextureStagingData) error {
	f.textureOps = append(f.textureOps, "update:"+string(rune('0'+data.Pixels[0])))
	return nil
}

func (f *fakeRenderer) InitSampler(_ bind_group_provider.BindGroupProvider, binding int, data common.SamplerStagingData) error {
	f.samplers = append(f.samplers, binding)
	f.samplerData = append(f.samplerData, data)
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeRenderer) DrawCall(key string, _ bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	d := fakeDraw{key: key}
	for _, bg := range bindGroups {
		d.groups = append(d.groups, bg.Group())
	}
	f.draws = append(f.draws, d)
	return nil
}

func (f *fakeRenderer) Resize(width, height int) {
	f.resized = [2]int{width, height}
}

func frame(marker byte) *common.TextureStagingData {
	return &common.TextureStagingData{Pixels: []byte{marker, 0, 0, 255}, Width: 1, Height: 1}
}

func newTestScene(t *testing.T, mat material.Material, tex texture.Source) (Scene, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{}
	s, err := NewScene("test", camera.NewCamera(), r, model.NewModel(model.ShapeSphere, model.WithSegments(8, 8)), mat, tex)
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
	return s, r
}

func TestNewScene_InitializesResources(t *testing.T) {
	mat, err := material.NewMaterial()
	if err != nil {
		t.Fatalf("NewMaterial failed: %v", err)
	}
	s, r := newTestScene(t, mat, texture.NewStill(frame(1)))

	if !slices.Equal(r.registered, []string{"panorama"}) {
		t.Errorf("Expected panorama pipeline registered, got %v", r.registered)
	}
	if r.meshUploads != 1 || s.Model().MeshProvider() == nil {
		t.Error("Expected mesh uploaded and attached to the model")
	}
	if !slices.Equal(r.bindGroups, []int{0, 1}) {
		t.Errorf("Expected camera then texture bind groups, got %v", r.bindGroups)
	}
	if !slices.Equal(r.views, []int{0}) || !slices.Equal(r.samplers, []int{1}) {
		t.Errorf("Unexpected texture setup views=%v samplers=%v", r.views, r.samplers)
	}
	if len(r.samplerData) != 1 || r.samplerData[0] != common.PanoramaSampler() {
		t.Fatalf("Expected the panorama sampler, got %+v", r.samplerData)
	}
	if s := r.samplerData[0]; s.AddressModeU != wgpu.AddressModeRepeat || s.AddressModeV != wgpu.AddressModeClampToEdge {
		t.Errorf("Expected repeat U and clamped V, got %v/%v", s.AddressModeU, s.AddressModeV)
	}
	if mat.BindGroupProvider() == nil || mat.BindGroupProvider().Group() != 1 {
		t.Error("Expected material provider on group 1")
	}
	if !s.Active() {
		t.Error("Scene should start active")
	}
}

func TestNewScene_RequiresParts(t *testing.T) {
	if _, err := NewScene("x", nil, &fakeRenderer{}, nil, nil, nil); err == nil {
		t.Fatal("Expected error for missing parts")
	}
}

func TestScene_StillUploadedOnce(t *testing.T) {
	mat, _ := material.NewMaterial()
	s, r := newTestScene(t, mat, texture.NewStill(frame(1)))

	for range 3 {
		if err := s.Update(16 * time.Millisecond); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	if !slices.Equal(r.textureOps, []string{"init:1"}) {
		t.Errorf("Expected a single initial upload, got %v", r.textureOps)
	}
	if len(r.writes) != 3 {
		t.Fatalf("Expected one camera write per frame, got %d", len(r.writes))
	}
	if w := r.writes[0]; w.Provider != s.Camera().BindGroupProvider() || w.Binding != 0 || len(w.Data) != 64 {
		t.Errorf("Unexpected camera write %+v", w)
	}
}

func TestScene_VideoUploadsChangedFrames(t *testing.T) {
	video, err := texture.NewVideo(
		[]*common.TextureStagingData{frame(1), frame(2)},
		[]time.Duration{100 * time.Millisecond, 100 * time.Millisecond},
	)
	if err != nil {
		t.Fatalf("NewVideo failed: %v", err)
	}
	mat, _ := material.NewMaterial()
	s, r := newTestScene(t, mat, video)

	steps := []time.Duration{50 * time.Millisecond, 60 * time.Millisecond, 10 * time.Millisecond, 90 * time.Millisecond}
	for _, dt := range steps {
		if err := s.Update(dt); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	want := []string{"init:1", "update:2", "update:1"}
	if !slices.Equal(r.textureOps, want) {
		t.Errorf("Expected %v, got %v", want, r.textureOps)
	}
}

func TestScene_ParamsWrittenForCustomShader(t *testing.T) {
	mat, err := material.NewMaterial(material.WithName("fisheye"), material.WithShaders(
		shader.MustShader("fisheye.vert", shader.ShaderTypeVertex, material.BasicVertexSource),
		shader.MustShader("fisheye.frag", shader.ShaderTypeFragment, FisheyeFragmentSource),
	))
	if err != nil {
		t.Fatalf("NewMaterial failed: %v", err)
	}
	s, r := newTestScene(t, mat, texture.NewStill(frame(1)))

	if err := s.Update(time.Second); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(r.writes) != 2 {
		t.Fatalf("Expected camera and params writes, got %d", len(r.writes))
	}
	params := r.writes[1]
	if params.Provider != mat.BindGroupProvider() || params.Binding != 2 {
		t.Errorf("Params written to wrong binding: %+v", params)
	}
	want := (&material.GPUPanoramaParams{Resolution: [2]float32{1, 1}, Time: 1, Frame: 0}).Marshal()
	if !slices.Equal(params.Data, want) {
		t.Errorf("Expected params %v, got %v", want, params.Data)
	}
}

func TestScene_DrawCalls(t *testing.T) {
	mat, _ := material.NewMaterial()
	s, r := newTestScene(t, mat, texture.NewStill(frame(1)))

	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls failed: %v", err)
	}
	if len(r.draws) != 1 || r.draws[0].key != "panorama" || !slices.Equal(r.draws[0].groups, []int{0, 1}) {
		t.Errorf("Unexpected draws %+v", r.draws)
	}

	s.SetActive(false)
	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls failed: %v", err)
	}
	if len(r.draws) != 1 {
		t.Error("Inactive scene should not draw")
	}
}

func TestScene_Resize(t *testing.T) {
	mat, _ := material.NewMaterial()
	s, r := newTestScene(t, mat, texture.NewStill(frame(1)))

	s.Resize(800, 400)
	if r.resized != [2]int{800, 400} {
		t.Errorf("Expected renderer resized to 800x400, got %v", r.resized)
	}
	if got := s.Camera().Aspect(); got != 2 {
		t.Errorf("Expected aspect 2, got %v", got)
	}

	s.Resize(0, 400)
	if r.resized != [2]int{800, 400} {
		t.Error("Zero-size resize should be ignored")
	}
}
