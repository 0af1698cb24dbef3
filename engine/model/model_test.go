package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
)

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}}
	if v.Size() != GPUVertexSize {
		t.Fatalf("Size() = %d, want %d", v.Size(), GPUVertexSize)
	}
	buf := v.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])); got != 3 {
		t.Errorf("position.z = %v, want 3", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])); got != 1 {
		t.Errorf("normal.y = %v, want 1", got)
	}
}

func TestFromPrismMesh(t *testing.T) {
	mesh, err := geometry.PrismHalf(geometry.HalfA, geometry.DefaultDimensions)
	if err != nil {
		t.Fatal(err)
	}
	m := FromPrismMesh("prism_a", mesh)
	if m.Topology() != TopologyTriangles {
		t.Errorf("topology = %v", m.Topology())
	}
	if m.VertexCount() != 24 || len(m.VertexData()) != 24*GPUVertexSize {
		t.Errorf("vertex count %d, data %d bytes", m.VertexCount(), len(m.VertexData()))
	}
	if m.BoundingRadius() <= 0.5 {
		t.Errorf("bounding radius %v too small", m.BoundingRadius())
	}
	if m.MeshProvider() != nil {
		t.Error("fresh model should not have a mesh provider")
	}
}

func TestFromLineMesh(t *testing.T) {
	lines, err := geometry.WireframeCell(geometry.DefaultDimensions)
	if err != nil {
		t.Fatal(err)
	}
	m := FromLineMesh("wire", lines)
	if m.Topology() != TopologyLines || m.VertexCount() != 28 {
		t.Fatalf("got %v with %d vertices", m.Topology(), m.VertexCount())
	}
	if m.Name() != "wire" {
		t.Fatalf("name = %q", m.Name())
	}
}
