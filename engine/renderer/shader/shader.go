package shader

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader module is written for.
type ShaderType int

const (
	// ShaderTypeVertex is a module with a @vertex entry point.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is a module with a @fragment entry point.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// stage maps the shader type to the wgpu visibility flag used for its bindings.
func (t ShaderType) stage() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	default:
		return wgpu.ShaderStageNone
	}
}

type shader struct {
	key        string
	source     string
	shaderType ShaderType
	module     *wgpu.ShaderModuleDescriptor

	reflection
}

// Shader is a WGSL module together with the layout data reflected from its source:
// the entry point, the vertex buffer layout of the vertex input struct and one bind
// group layout descriptor per @group index.
type Shader interface {
	// Key is the unique name used for pipeline caching and GPU labels.
	Key() string

	Source() string

	ShaderType() ShaderType

	// EntryPoint returns the name of the @vertex or @fragment function.
	EntryPoint() string

	// Module returns the descriptor passed to CreateShaderModule.
	Module() *wgpu.ShaderModuleDescriptor

	// VertexLayouts returns the vertex buffer layouts in declaration order. Empty for fragment shaders.
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the reflected layout of one @group, or an empty descriptor.
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindingFor looks up the @binding index of a variable declared in the given group.
	//
	// Parameters:
	//   - group: the @group index
	//   - varName: the WGSL variable name, e.g. "panoramaTexture"
	//
	// Returns:
	//   - int: the binding index, -1 when not found
	//   - bool: whether the variable is declared in that group
	BindingFor(group int, varName string) (int, bool)

	// VarName returns the variable declared at group/binding, or "".
	VarName(group, binding int) string
}

var _ Shader = &shader{}

// NewShader reflects WGSL source and wraps it in a Shader.
//
// Parameters:
//   - key: unique shader name
//   - shaderType: the stage the source is written for
//   - source: WGSL source code
//
// Returns:
//   - Shader: the reflected shader
//   - error: error if the source has no entry point for shaderType
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	r := reflectSource(source, shaderType)
	if r.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: no @%s entry point found", key, shaderType)
	}
	return &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		module: &wgpu.ShaderModuleDescriptor{
			Label:          key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
		},
		reflection: r,
	}, nil
}

// LoadShader reads a WGSL file from disk and reflects it.
//
// Parameters:
//   - key: unique shader name
//   - shaderType: the stage the file is written for
//   - path: path of the .wgsl file
//
// Returns:
//   - Shader: the reflected shader
//   - error: error if the file cannot be read or has no entry point
func LoadShader(key string, shaderType ShaderType, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s shader %q: %w", shaderType, path, err)
	}
	return NewShader(key, shaderType, string(data))
}

// MustShader is NewShader for sources embedded in the binary, where a failure is a programming error.
func MustShader(key string, shaderType ShaderType, source string) Shader {
	s, err := NewShader(key, shaderType, source)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.groups[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.groups
}

func (s *shader) BindingFor(group int, varName string) (int, bool) {
	for binding, name := range s.varNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) VarName(group, binding int) string {
	return s.varNames[group][binding]
}
