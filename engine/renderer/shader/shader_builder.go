package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option applied to a shader during construction via NewShader.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default stage entry point name.
//
// Parameters:
//   - name: the WGSL function name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry point option to a shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout declares the layout of one @group used by this stage.
// Declaring the same group twice replaces the earlier descriptor.
//
// Parameters:
//   - group: the @group index
//   - descriptor: the layout entries for the group
//
// Returns:
//   - ShaderBuilderOption: a function that applies the bind group layout option to a shader
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayout declares the vertex buffer layouts consumed at the given slot key.
//
// Parameters:
//   - key: the slot key, buffers are bound in ascending key order
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - ShaderBuilderOption: a function that applies the vertex layout option to a shader
func WithVertexLayout(key int, layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts[key] = append(s.vertexLayouts[key], layouts...)
	}
}
