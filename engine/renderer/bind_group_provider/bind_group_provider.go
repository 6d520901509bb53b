package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider owns the GPU objects behind one bind group slot of a draw.
// A provider that carries the mesh also owns the vertex and index buffers.
type bindGroupProvider struct {
	label string
	group int

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout

	// resources keyed by @binding index
	buffers      map[int]*wgpu.Buffer
	textures     map[int]*wgpu.Texture
	textureSizes map[int][2]uint32
	textureViews map[int]*wgpu.TextureView
	samplers     map[int]*wgpu.Sampler

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider holds the buffers, textures and samplers bound at one @group index,
// together with the bind group created from them. The renderer backend fills a provider
// in InitBindGroup and InitMeshBuffers; the scene reads it back when drawing and when
// re-uploading texture contents.
type BindGroupProvider interface {
	// Release frees every GPU object held by the provider. The provider can be reused afterwards.
	Release()

	// Label returns the debug label used for the GPU objects created for this provider.
	Label() string

	// Group returns the @group index this provider is bound at.
	Group() int

	BindGroup() *wgpu.BindGroup
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at the given binding, or nil.
	Buffer(binding int) *wgpu.Buffer
	Buffers() map[int]*wgpu.Buffer

	// Texture returns the texture at the given binding, or nil. It is kept next to its
	// view so the contents can be rewritten without recreating the bind group.
	Texture(binding int) *wgpu.Texture
	// TextureSize returns the width and height the texture at binding was created with.
	TextureSize(binding int) (uint32, uint32)
	TextureView(binding int) *wgpu.TextureView
	TextureViews() map[int]*wgpu.TextureView

	Sampler(binding int) *wgpu.Sampler
	Samplers() map[int]*wgpu.Sampler

	VertexBuffer() *wgpu.Buffer
	IndexBuffer() *wgpu.Buffer
	IndexCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetTexture(binding int, tex *wgpu.Texture, width, height uint32)
	SetTextureView(binding int, tv *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: debug label for GPU objects created for this provider
//   - options: optional configuration such as WithGroup
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textures:     make(map[int]*wgpu.Texture),
		textureSizes: make(map[int][2]uint32),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Group() int {
	return p.group
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) Texture(binding int) *wgpu.Texture {
	return p.textures[binding]
}

func (p *bindGroupProvider) TextureSize(binding int) (uint32, uint32) {
	size := p.textureSizes[binding]
	return size[0], size[1]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) TextureViews() map[int]*wgpu.TextureView {
	return p.textureViews
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) Samplers() map[int]*wgpu.Sampler {
	return p.samplers
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, width, height uint32) {
	p.textures[binding] = tex
	p.textureSizes[binding] = [2]uint32{width, height}
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

// Release drops the bind group before the resources it references.
func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}

	for binding, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, binding)
	}
	for binding, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, binding)
		delete(p.textureSizes, binding)
	}
	for binding, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, binding)
	}
	for binding, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, binding)
	}

	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
