package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSize is the stride of GPUVertex in the vertex buffer.
const GPUVertexSize = 24

// GPUVertex is the GPU layout of a single mesh vertex, matching the WGSL vertex input
// (@location(0) position: vec3<f32>, @location(1) normal: vec3<f32>).
// Size: 24 bytes, tightly packed.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	g.put(buf)
	return buf
}

func (g *GPUVertex) put(buf []byte) {
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(g.Normal[i]))
	}
}

// MarshalVertices packs a vertex slice into one contiguous buffer.
//
// Parameters:
//   - vs: the vertices to pack
//
// Returns:
//   - []byte: len(vs) * GPUVertexSize bytes
func MarshalVertices(vs []GPUVertex) []byte {
	buf := make([]byte, len(vs)*GPUVertexSize)
	for i := range vs {
		vs[i].put(buf[i*GPUVertexSize:])
	}
	return buf
}
