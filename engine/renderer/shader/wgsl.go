package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// reflection is what the renderer needs to know about a WGSL module to build
// a pipeline for it without hand-written layout tables.
type reflection struct {
	entryPoint    string
	vertexLayouts []wgpu.VertexBufferLayout
	groups        map[int]wgpu.BindGroupLayoutDescriptor
	varNames      map[int]map[int]string
}

// wgslField is one member of a WGSL struct.
type wgslField struct {
	name     string
	typeName string
	location int // -1 without @location
	builtin  bool
}

type wgslStruct struct {
	name   string
	fields []wgslField
}

// memLayout is the host-shareable size and alignment of a WGSL type.
type memLayout struct {
	size  uint64
	align uint64
}

var (
	structRe   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRe = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRe  = regexp.MustCompile(`@builtin\(\w+\)`)
	memberRe   = regexp.MustCompile(`(\w+)\s*:\s*(.+)$`)
	vectorRe   = regexp.MustCompile(`^vec([234])(?:<(\w+)>|([fihu]))$`)
	matrixRe   = regexp.MustCompile(`^mat([234])x([234])(?:<(\w+)>|([fh]))$`)
	resourceRe = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)

	entryRe = map[ShaderType]*regexp.Regexp{
		ShaderTypeVertex:   regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`),
		ShaderTypeFragment: regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`),
	}
)

// scalar element sizes for vectors and matrices, keyed by both the long and the suffix spelling
var scalarSize = map[string]uint64{
	"f32": 4, "i32": 4, "u32": 4, "bool": 4, "f16": 2,
	"f": 4, "i": 4, "u": 4, "h": 2,
}

// vertexFormats maps WGSL vertex attribute types to wgpu formats
var vertexFormats = map[string]wgpu.VertexFormat{
	"f32":       wgpu.VertexFormatFloat32,
	"vec2<f32>": wgpu.VertexFormatFloat32x2,
	"vec2f":     wgpu.VertexFormatFloat32x2,
	"vec3<f32>": wgpu.VertexFormatFloat32x3,
	"vec3f":     wgpu.VertexFormatFloat32x3,
	"vec4<f32>": wgpu.VertexFormatFloat32x4,
	"vec4f":     wgpu.VertexFormatFloat32x4,
	"u32":       wgpu.VertexFormatUint32,
	"vec2<u32>": wgpu.VertexFormatUint32x2,
	"vec2u":     wgpu.VertexFormatUint32x2,
	"vec4<u32>": wgpu.VertexFormatUint32x4,
	"vec4u":     wgpu.VertexFormatUint32x4,
	"i32":       wgpu.VertexFormatSint32,
	"vec2<i32>": wgpu.VertexFormatSint32x2,
	"vec2i":     wgpu.VertexFormatSint32x2,
	"vec4<i32>": wgpu.VertexFormatSint32x4,
	"vec4i":     wgpu.VertexFormatSint32x4,
}

var textureDimensions = map[string]wgpu.TextureViewDimension{
	"texture_1d":               wgpu.TextureViewDimension1D,
	"texture_2d":               wgpu.TextureViewDimension2D,
	"texture_2d_array":         wgpu.TextureViewDimension2DArray,
	"texture_3d":               wgpu.TextureViewDimension3D,
	"texture_cube":             wgpu.TextureViewDimensionCube,
	"texture_cube_array":       wgpu.TextureViewDimensionCubeArray,
	"texture_multisampled_2d":  wgpu.TextureViewDimension2D,
	"texture_depth_2d":         wgpu.TextureViewDimension2D,
	"texture_depth_2d_array":   wgpu.TextureViewDimension2DArray,
	"texture_depth_cube":       wgpu.TextureViewDimensionCube,
	"texture_depth_cube_array": wgpu.TextureViewDimensionCubeArray,
}

var sampleTypes = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

// reflectSource extracts the entry point, vertex layouts and bind group layouts from WGSL source.
func reflectSource(source string, shaderType ShaderType) reflection {
	cleaned := stripComments(source)
	structs := parseStructs(cleaned)

	r := reflection{}
	if re, ok := entryRe[shaderType]; ok {
		if m := re.FindStringSubmatch(cleaned); m != nil {
			r.entryPoint = m[1]
		}
	}
	if shaderType == ShaderTypeVertex {
		r.vertexLayouts = vertexLayouts(structs)
	}
	r.groups, r.varNames = bindGroupLayouts(cleaned, structs, shaderType.stage())
	return r
}

// vertexLayouts builds one buffer layout per vertex input struct: a struct with at least
// one @location member and no @builtin member. Attributes are packed in declaration order.
func vertexLayouts(structs []wgslStruct) []wgpu.VertexBufferLayout {
	var layouts []wgpu.VertexBufferLayout
	for _, s := range structs {
		if !isVertexInput(s) {
			continue
		}
		var offset uint64
		attrs := make([]wgpu.VertexAttribute, 0, len(s.fields))
		ok := true
		for _, f := range s.fields {
			format, known := vertexFormats[f.typeName]
			size, sized := typeLayout(f.typeName, nil)
			if !known || !sized || f.location < 0 {
				ok = false
				break
			}
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         format,
				Offset:         offset,
				ShaderLocation: uint32(f.location),
			})
			offset += size.size
		}
		if !ok {
			continue
		}
		layouts = append(layouts, wgpu.VertexBufferLayout{
			ArrayStride: offset,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  attrs,
		})
	}
	return layouts
}

func isVertexInput(s wgslStruct) bool {
	located := false
	for _, f := range s.fields {
		if f.builtin {
			return false
		}
		if f.location >= 0 {
			located = true
		}
	}
	return located
}

// bindGroupLayouts reflects every @group/@binding declaration. Buffer entries get their
// MinBindingSize from the bound type when it can be resolved.
func bindGroupLayouts(source string, structs []wgslStruct, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	known := structLayouts(structs)
	entries := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)

	for _, m := range resourceRe.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		space := strings.TrimSpace(m[3])
		typeName := strings.TrimSpace(m[5])

		entry, ok := resourceEntry(uint32(binding), visibility, space, typeName)
		if !ok {
			continue
		}
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if l, sized := typeLayout(typeName, known); sized {
				entry.Buffer.MinBindingSize = l.size
			}
		}
		entries[group] = append(entries[group], entry)

		if names[group] == nil {
			names[group] = make(map[int]string)
		}
		names[group][binding] = m[4]
	}

	groups := make(map[int]wgpu.BindGroupLayoutDescriptor, len(entries))
	for g, e := range entries {
		sort.Slice(e, func(i, j int) bool { return e[i].Binding < e[j].Binding })
		groups[g] = wgpu.BindGroupLayoutDescriptor{Entries: e}
	}
	return groups, names
}

// resourceEntry classifies one declaration. Storage textures are not supported.
func resourceEntry(binding uint32, visibility wgpu.ShaderStage, space, typeName string) (wgpu.BindGroupLayoutEntry, bool) {
	entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}

	switch {
	case space == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(space, "storage"):
		entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		if strings.Contains(space, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		}
	case space != "":
		return entry, false
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(typeName, "texture_storage_"):
		return entry, false
	case strings.HasPrefix(typeName, "texture_"):
		base, param, _ := strings.Cut(typeName, "<")
		dim, ok := textureDimensions[base]
		if !ok {
			return entry, false
		}
		entry.Texture.ViewDimension = dim
		entry.Texture.Multisampled = strings.Contains(base, "multisampled")
		if strings.HasPrefix(base, "texture_depth_") {
			entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		} else {
			entry.Texture.SampleType = sampleTypes[strings.TrimSuffix(strings.TrimSpace(param), ">")]
		}
	default:
		return entry, false
	}
	return entry, true
}

// typeLayout resolves the size and alignment of a WGSL type following the WGSL
// memory layout rules. Runtime-sized arrays resolve to one element stride.
func typeLayout(typeName string, structs map[string]memLayout) (memLayout, bool) {
	typeName = strings.ReplaceAll(typeName, " ", "")
	if s, ok := scalarSize[typeName]; ok && len(typeName) > 1 {
		return memLayout{s, s}, true
	}
	if l, ok := structs[typeName]; ok {
		return l, true
	}
	if m := vectorRe.FindStringSubmatch(typeName); m != nil {
		return vectorLayout(m[1], m[2]+m[3])
	}
	if m := matrixRe.FindStringSubmatch(typeName); m != nil {
		col, ok := vectorLayout(m[2], m[3]+m[4])
		if !ok {
			return memLayout{}, false
		}
		cols, _ := strconv.ParseUint(m[1], 10, 64)
		return memLayout{cols * roundUp(col.align, col.size), col.align}, true
	}
	if strings.HasPrefix(typeName, "array<") && strings.HasSuffix(typeName, ">") {
		inner := typeName[len("array<") : len(typeName)-1]
		elemName, count, fixed := cutLast(inner, ",")
		elem, ok := typeLayout(elemName, structs)
		if !ok {
			return memLayout{}, false
		}
		stride := roundUp(elem.align, elem.size)
		if !fixed {
			return memLayout{stride, elem.align}, true
		}
		n, err := strconv.ParseUint(count, 10, 64)
		if err != nil {
			return memLayout{}, false
		}
		return memLayout{n * stride, elem.align}, true
	}
	return memLayout{}, false
}

func vectorLayout(width, scalar string) (memLayout, bool) {
	s, ok := scalarSize[scalar]
	if !ok {
		return memLayout{}, false
	}
	n, _ := strconv.ParseUint(width, 10, 64)
	if n == 3 {
		return memLayout{3 * s, 4 * s}, true
	}
	return memLayout{n * s, n * s}, true
}

// structLayouts resolves struct sizes, repeating until nested structs settle.
func structLayouts(structs []wgslStruct) map[string]memLayout {
	known := make(map[string]memLayout, len(structs))
	for progress := true; progress; {
		progress = false
		for _, s := range structs {
			if _, done := known[s.name]; done {
				continue
			}
			if l, ok := structLayout(s, known); ok {
				known[s.name] = l
				progress = true
			}
		}
	}
	return known
}

func structLayout(s wgslStruct, known map[string]memLayout) (memLayout, bool) {
	var offset uint64
	align := uint64(1)
	for _, f := range s.fields {
		if f.builtin {
			continue
		}
		l, ok := typeLayout(f.typeName, known)
		if !ok {
			return memLayout{}, false
		}
		offset = roundUp(l.align, offset) + l.size
		align = max(align, l.align)
	}
	return memLayout{roundUp(align, offset), align}, true
}

func parseStructs(source string) []wgslStruct {
	matches := structRe.FindAllStringSubmatch(source, -1)
	structs := make([]wgslStruct, 0, len(matches))
	for _, m := range matches {
		s := wgslStruct{name: m[1]}
		for _, member := range splitMembers(m[2]) {
			member = strings.TrimSpace(member)
			fm := memberRe.FindStringSubmatch(member)
			if fm == nil {
				continue
			}
			f := wgslField{
				name:     fm[1],
				typeName: strings.TrimSpace(fm[2]),
				location: -1,
				builtin:  builtinRe.MatchString(member),
			}
			if lm := locationRe.FindStringSubmatch(member); lm != nil {
				f.location, _ = strconv.Atoi(lm[1])
			}
			s.fields = append(s.fields, f)
		}
		structs = append(structs, s)
	}
	return structs
}

// splitMembers splits a struct body on commas outside of <...>.
func splitMembers(body string) []string {
	var out []string
	depth, start := 0, 0
	for i, c := range body {
		switch c {
		case '<':
			depth++
		case '>':
			depth = max(0, depth-1)
		case ',':
			if depth == 0 {
				out = append(out, body[start:i])
				start = i + 1
			}
		}
	}
	return append(out, body[start:])
}

// cutLast splits s around the last top-level sep.
func cutLast(s, sep string) (before, after string, found bool) {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '>':
			depth++
		case '<':
			depth--
		}
		if depth == 0 && strings.HasPrefix(s[i:], sep) {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):]), true
		}
	}
	return s, "", false
}

func roundUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// stripComments removes line comments and nested block comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch source[i : i+2] {
			case "/*":
				depth++
				i++
				continue
			case "*/":
				if depth > 0 {
					depth--
					i++
					continue
				}
			case "//":
				if depth == 0 {
					for i < len(source) && source[i] != '\n' {
						i++
					}
					if i < len(source) {
						sb.WriteByte('\n')
					}
					continue
				}
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
