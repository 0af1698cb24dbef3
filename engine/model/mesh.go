package model

import (
	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
)

// FromPrismMesh wraps a prism half as a triangle-list Model.
//
// Parameters:
//   - name: the model identifier
//   - m: the generated prism mesh
//
// Returns:
//   - Model: a Model ready for upload
func FromPrismMesh(name string, m *geometry.Mesh) Model {
	vs := make([]GPUVertex, len(m.Vertices))
	for i, v := range m.Vertices {
		vs[i] = GPUVertex{Position: v.Position, Normal: v.Normal}
	}
	return NewModel(
		WithName(name),
		WithTopology(TopologyTriangles),
		WithVertexData(MarshalVertices(vs), len(vs)),
		WithBoundingRadius(m.Dims.BoundingRadius()),
	)
}

// FromLineMesh wraps a wireframe cell as a line-list Model. Line vertices carry a zero normal;
// the line shader does not light them.
//
// Parameters:
//   - name: the model identifier
//   - l: the generated line mesh
//
// Returns:
//   - Model: a Model ready for upload
func FromLineMesh(name string, l *geometry.LineMesh) Model {
	vs := make([]GPUVertex, len(l.Vertices))
	for i, p := range l.Vertices {
		vs[i] = GPUVertex{Position: p}
	}
	return NewModel(
		WithName(name),
		WithTopology(TopologyLines),
		WithVertexData(MarshalVertices(vs), len(vs)),
		WithBoundingRadius(l.Dims.BoundingRadius()),
	)
}
