package bind_group_provider

import "testing"

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("panorama.texture", WithGroup(1))

	if p.Label() != "panorama.texture" {
		t.Errorf("Label() = %q", p.Label())
	}
	if p.Group() != 1 {
		t.Errorf("Group() = %d, want 1", p.Group())
	}
	if p.Buffer(0) != nil || p.Texture(0) != nil || p.TextureView(0) != nil || p.Sampler(1) != nil {
		t.Error("new provider should have no resources")
	}
}

func TestReleaseEmptyProvider(t *testing.T) {
	p := NewBindGroupProvider("empty")
	p.SetIndexCount(36)
	p.SetBuffer(0, nil)
	p.SetSampler(1, nil)

	p.Release()

	if p.IndexCount() != 0 {
		t.Errorf("IndexCount() after Release = %d, want 0", p.IndexCount())
	}
	if len(p.Buffers()) != 0 || len(p.Samplers()) != 0 {
		t.Error("Release should clear binding maps")
	}

	// releasing twice is harmless
	p.Release()
}
