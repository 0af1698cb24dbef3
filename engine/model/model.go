package model

import (
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/bind_group_provider"
)

// Topology describes how the vertex stream of a Model is assembled into primitives.
type Topology uint8

const (
	// TopologyTriangles draws every three vertices as a triangle.
	TopologyTriangles Topology = iota
	// TopologyLines draws every two vertices as a line segment.
	TopologyLines
)

func (t Topology) String() string {
	if t == TopologyLines {
		return "lines"
	}
	return "triangles"
}

// model is the implementation of the Model interface.
type model struct {
	name           string
	topology       Topology
	vertexData     []byte
	vertexCount    int
	boundingRadius float32
	meshProvider   bind_group_provider.BindGroupProvider
}

// Model is a GPU-ready, non-indexed mesh. Several game objects may share one Model; each object
// carries its own transform and color, so the vertex data is uploaded once per Model.
type Model interface {
	Name() string
	Topology() Topology

	// VertexData returns the packed GPUVertex stream for this mesh.
	//
	// Returns:
	//   - []byte: VertexCount * GPUVertexSize bytes
	VertexData() []byte

	VertexCount() int

	// BoundingRadius returns the radius of the origin-centered sphere enclosing the mesh.
	// The scene uses it to size the shadow frustum.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// MeshProvider returns the provider holding the GPU vertex buffer, or nil before the scene uploads it.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider or nil
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider attaches the provider that owns this model's GPU vertex buffer.
	//
	// Parameters:
	//   - p: the mesh provider
	SetMeshProvider(p bind_group_provider.BindGroupProvider)
}

var _ Model = &model{}

// NewModel creates a Model configured with the given options.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the new model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Topology() Topology {
	return m.topology
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(p bind_group_provider.BindGroupProvider) {
	m.meshProvider = p
}
