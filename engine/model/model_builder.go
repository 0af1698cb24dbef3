package model

import (
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName sets the identifier of the Model. The scene keys pipelines and GPU buffers by it.
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

// WithTopology sets the primitive topology of the Model.
//
// Parameters:
//   - t: TopologyTriangles or TopologyLines
//
// Returns:
//   - ModelBuilderOption: a function that applies the topology option to a model
func WithTopology(t Topology) ModelBuilderOption {
	return func(m *model) {
		m.topology = t
	}
}

// WithVertexData sets the packed vertex stream and the number of vertices it holds.
//
// Parameters:
//   - data: packed GPUVertex bytes
//   - count: number of vertices in data
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertex data option to a model
func WithVertexData(data []byte, count int) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = data
		m.vertexCount = count
	}
}

// WithBoundingRadius sets the bounding sphere radius of the Model.
//
// Parameters:
//   - r: the radius
//
// Returns:
//   - ModelBuilderOption: a function that applies the radius option to a model
func WithBoundingRadius(r float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = r
	}
}

// WithMeshProvider attaches an already initialized mesh provider.
//
// Parameters:
//   - p: the mesh provider
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider option to a model
func WithMeshProvider(p bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = p
	}
}
