package shader

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the programmable stage a Shader is bound to.
type ShaderType int

const (
	// ShaderTypeVertex marks a vertex stage entry point.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment marks a fragment stage entry point.
	ShaderTypeFragment
)

// String returns the WGSL stage attribute name.
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

type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
}

// Shader is one stage of a WGSL program: its source, entry point, and the resource layouts the stage declares.
//
// Several Shader values may share the same source with different entry points. Layouts are declared in Go
// through builder options and must match the @group/@binding declarations in the source.
type Shader interface {
	Key() string
	Source() string
	ShaderType() ShaderType
	EntryPoint() string

	// BindGroupLayoutDescriptor returns the layout declared for the given group index, or a zero descriptor.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the declared layout
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayout returns the vertex buffer layouts declared for the given slot key.
	//
	// Parameters:
	//   - key: the slot key the layouts were registered under
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, nil when none were declared
	VertexLayout(key int) []wgpu.VertexBufferLayout

	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// OrderedVertexLayouts flattens VertexLayouts in ascending key order, the order the pipeline expects buffers in.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the flattened layouts
	OrderedVertexLayouts() []wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

// NewShader creates a Shader for one stage of a WGSL program.
// The entry point defaults to "vs_main" for vertex shaders and "fs_main" for fragment shaders.
// Panics when the source is empty or does not declare the entry point for the given stage.
//
// Parameters:
//   - key: a unique label used for the GPU shader module
//   - shaderType: the stage this entry point runs in
//   - source: the WGSL source text
//   - options: functional options applied before validation
//
// Returns:
//   - Shader: the configured Shader
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: %s must have non-empty WGSL source", key))
	}
	s := &shader{
		key:                        key,
		source:                     source,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		vertexLayouts:              make(map[int][]wgpu.VertexBufferLayout),
	}
	switch shaderType {
	case ShaderTypeVertex:
		s.entryPoint = "vs_main"
	case ShaderTypeFragment:
		s.entryPoint = "fs_main"
	}
	for _, opt := range options {
		opt(s)
	}
	if !DeclaresEntryPoint(s.source, s.shaderType, s.entryPoint) {
		panic(fmt.Sprintf("shader: %s does not declare @%s fn %s", key, s.shaderType, s.entryPoint))
	}
	return s
}

// DeclaresEntryPoint reports whether source contains a function named entryPoint carrying the stage attribute
// for shaderType.
//
// Parameters:
//   - source: the WGSL source text
//   - shaderType: the expected stage
//   - entryPoint: the function name
//
// Returns:
//   - bool: true if the entry point is declared for that stage
func DeclaresEntryPoint(source string, shaderType ShaderType, entryPoint string) bool {
	if entryPoint == "" {
		return false
	}
	re := regexp.MustCompile(`@` + shaderType.String() + `\s+fn\s+` + regexp.QuoteMeta(entryPoint) + `\s*\(`)
	return re.MatchString(source)
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

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) OrderedVertexLayouts() []wgpu.VertexBufferLayout {
	keys := make([]int, 0, len(s.vertexLayouts))
	for k := range s.vertexLayouts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]wgpu.VertexBufferLayout, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.vertexLayouts[k]...)
	}
	return out
}
