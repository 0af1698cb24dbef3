package game_object

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUObjectUniform is the per-object uniform bound at group 1, matching the WGSL ObjectUniform struct.
// Size: 80 bytes (std140 aligned).
type GPUObjectUniform struct {
	Model [16]float32 // offset  0: world matrix, column-major
	Color [4]float32  // offset 64: linear RGBA
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 80)
	for i, v := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}

// Uniform builds the GPU uniform for an object from its current world matrix and color.
//
// Parameters:
//   - obj: the object to snapshot
//
// Returns:
//   - GPUObjectUniform: the uniform contents
func Uniform(obj GameObject) GPUObjectUniform {
	return GPUObjectUniform{Model: obj.WorldMatrix(), Color: obj.Color().Linear()}
}
