package material

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/shader"
)

func TestNewMaterialBasic(t *testing.T) {
	m, err := NewMaterial()
	if err != nil {
		t.Fatalf("NewMaterial() error = %v", err)
	}
	if m.Mode() != ModeBasic {
		t.Errorf("Mode() = %v, want basic", m.Mode())
	}
	if m.Pipeline().Key() != "panorama" {
		t.Errorf("pipeline key = %q", m.Pipeline().Key())
	}

	vs := m.Pipeline().Shader(shader.ShaderTypeVertex)
	if vs.EntryPoint() != "vs_main" || len(vs.VertexLayouts()) != 1 {
		t.Errorf("basic vertex shader reflected badly: entry %q, %d layouts", vs.EntryPoint(), len(vs.VertexLayouts()))
	}
	if vs.VertexLayouts()[0].ArrayStride != 20 {
		t.Errorf("basic vertex stride = %d, want 20", vs.VertexLayouts()[0].ArrayStride)
	}

	fs := m.Pipeline().Shader(shader.ShaderTypeFragment)
	if b, ok := fs.BindingFor(1, "panoramaTexture"); !ok || b != 0 {
		t.Errorf("panoramaTexture binding = %d, %v", b, ok)
	}
	if b, ok := fs.BindingFor(1, "panoramaSampler"); !ok || b != 1 {
		t.Errorf("panoramaSampler binding = %d, %v", b, ok)
	}
}

func TestNewMaterialShaderFiles(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "v.wgsl")
	frag := filepath.Join(dir, "f.wgsl")
	if err := os.WriteFile(vert, []byte(BasicVertexSource), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(frag, []byte(BasicFragmentSource), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewMaterial(WithName("fisheye"), WithShaderFiles(vert, frag))
	if err != nil {
		t.Fatalf("NewMaterial() error = %v", err)
	}
	if m.Mode() != ModeShader {
		t.Errorf("Mode() = %v, want shader", m.Mode())
	}
	if m.Name() != "fisheye" || m.Pipeline().Shader(shader.ShaderTypeFragment).Key() != "fisheye.frag" {
		t.Error("material name should prefix shader keys")
	}
}

func TestNewMaterialErrors(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "f.wgsl")
	if err := os.WriteFile(frag, []byte(BasicFragmentSource), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts []MaterialBuilderOption
	}{
		{"only fragment file", []MaterialBuilderOption{WithShaderFiles("", frag)}},
		{"missing vertex file", []MaterialBuilderOption{WithShaderFiles(filepath.Join(dir, "nope.wgsl"), frag)}},
		{"only vertex shader", []MaterialBuilderOption{WithShaders(shader.MustShader("v", shader.ShaderTypeVertex, BasicVertexSource), nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMaterial(tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGPUPanoramaParamsMarshal(t *testing.T) {
	p := GPUPanoramaParams{Resolution: [2]float32{4096, 2048}, Time: 1.5, Frame: 7}
	buf := p.Marshal()
	if len(buf) != p.Size() || p.Size() != 16 {
		t.Fatalf("Marshal() length %d, Size() %d, want 16", len(buf), p.Size())
	}
	if buf[12] != 7 {
		t.Errorf("frame byte = %d, want 7", buf[12])
	}
}
