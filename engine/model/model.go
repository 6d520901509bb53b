package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	shape          Shape
	radius         float32
	height         float32
	widthSegments  int
	heightSegments int
	scale          [3]float32

	vertices       []GPUVertex
	indices        []uint32
	boundingRadius float32
	meshProvider   bind_group_provider.BindGroupProvider
}

// Model defines the interface for the surface a panorama is projected onto.
// A Model owns its generated geometry and, once the Renderer has uploaded it,
// the BindGroupProvider holding the vertex and index buffers.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Shape reports which surface was generated.
	//
	// Returns:
	//   - Shape: sphere, dome or tube
	Shape() Shape

	// Vertices returns the generated vertices after scaling.
	//
	// Returns:
	//   - []GPUVertex: the vertex list
	Vertices() []GPUVertex

	// Indices returns the triangle list indices.
	//
	// Returns:
	//   - []uint32: the index list
	Indices() []uint32

	// VertexData returns the vertices packed for a GPU vertex buffer.
	//
	// Returns:
	//   - []byte: tightly packed vertex bytes
	VertexData() []byte

	// IndexData returns the indices packed for a GPU index buffer.
	//
	// Returns:
	//   - []byte: little-endian uint32 indices
	IndexData() []byte

	// IndexCount returns the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the distance from the origin to the furthest vertex.
	//
	// Returns:
	//   - float32: bounding sphere radius
	BoundingRadius() float32

	// MeshProvider returns the provider holding GPU mesh buffers, or nil before upload.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider stores the provider created by the Renderer.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Model = &model{}

// NewModel generates a panorama surface. The default is a sphere of radius
// 500 with 64x64 segments, mirrored on Z so the surface faces inward.
//
// Parameters:
//   - shape: surface to generate
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the generated model
func NewModel(shape Shape, options ...ModelBuilderOption) Model {
	m := &model{
		name:   shape.String(),
		shape:  shape,
		radius: 500,
		height: 500,
		scale:  [3]float32{1, 1, -1},
	}
	switch shape {
	case ShapeDome:
		m.widthSegments, m.heightSegments = 64, 32
	case ShapeTube:
		m.widthSegments, m.heightSegments = 64, 1
	default:
		m.widthSegments, m.heightSegments = 64, 64
	}

	for _, option := range options {
		option(m)
	}

	m.generate()
	return m
}

func (m *model) generate() {
	switch m.shape {
	case ShapeDome:
		m.vertices, m.indices = Sphere(SphereParams{
			Radius:         m.radius,
			WidthSegments:  m.widthSegments,
			HeightSegments: m.heightSegments,
			PhiLength:      2 * math.Pi,
			ThetaLength:    math.Pi / 2,
		})
	case ShapeTube:
		m.vertices, m.indices = Cylinder(CylinderParams{
			RadiusTop:      m.radius,
			RadiusBottom:   m.radius,
			Height:         m.height,
			RadialSegments: m.widthSegments,
			HeightSegments: m.heightSegments,
		})
	default:
		m.vertices, m.indices = Sphere(SphereParams{
			Radius:         m.radius,
			WidthSegments:  m.widthSegments,
			HeightSegments: m.heightSegments,
			PhiLength:      2 * math.Pi,
			ThetaLength:    math.Pi,
		})
	}

	ScaleVertices(m.vertices, m.scale[0], m.scale[1], m.scale[2])

	var r2 float32
	for _, v := range m.vertices {
		p := v.Position
		r2 = max(r2, p[0]*p[0]+p[1]*p[1]+p[2]*p[2])
	}
	m.boundingRadius = float32(math.Sqrt(float64(r2)))
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Shape() Shape {
	return m.shape
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	return MarshalVertices(m.vertices)
}

func (m *model) IndexData() []byte {
	return MarshalIndices(m.indices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}
