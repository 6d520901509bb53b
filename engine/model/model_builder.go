package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithRadius sets the sphere, dome or tube radius. Non-positive values are ignored.
//
// Parameters:
//   - radius: surface radius in world units
//
// Returns:
//   - ModelBuilderOption: a function that applies the radius option to a model
func WithRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		if radius > 0 {
			m.radius = radius
		}
	}
}

// WithHeight sets the tube height. Ignored by sphere and dome.
//
// Parameters:
//   - height: tube height in world units
//
// Returns:
//   - ModelBuilderOption: a function that applies the height option to a model
func WithHeight(height float32) ModelBuilderOption {
	return func(m *model) {
		if height > 0 {
			m.height = height
		}
	}
}

// WithSegments sets the tessellation. For a tube, width is the radial count
// and height the number of vertical bands. Zero keeps the shape's default.
//
// Parameters:
//   - width: segments around the vertical axis
//   - height: segments from top to bottom
//
// Returns:
//   - ModelBuilderOption: a function that applies the segment counts to a model
func WithSegments(width, height int) ModelBuilderOption {
	return func(m *model) {
		if width > 0 {
			m.widthSegments = width
		}
		if height > 0 {
			m.heightSegments = height
		}
	}
}

// WithScale sets the scale baked into the vertices. The default (1, 1, -1)
// mirrors the surface so it is viewed from inside.
//
// Parameters:
//   - x, y, z: per-axis scale factors
//
// Returns:
//   - ModelBuilderOption: a function that applies the scale option to a model
func WithScale(x, y, z float32) ModelBuilderOption {
	return func(m *model) {
		m.scale = [3]float32{x, y, z}
	}
}
