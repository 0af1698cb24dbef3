package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/prism-tower/common"
)

// MaxGPULights is the number of light slots in the light uniform block.
const MaxGPULights = 4

// LightBlockSize is the byte size of the light uniform: a header plus MaxGPULights lights.
const LightBlockSize = 16 + MaxGPULights*32

// GPULight is one directional light as laid out in the WGSL Light struct.
// Size: 32 bytes.
type GPULight struct {
	Direction    [3]float32 // offset  0: travel direction, unit length
	Intensity    float32    // offset 12
	Color        [3]float32 // offset 16: linear RGB
	CastsShadows uint32     // offset 28: 1 if this light owns the shadow map
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 32)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Direction[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[28:32], g.CastsShadows)
	return buf
}

// GPULightHeader precedes the light array in the light uniform block.
// Size: 16 bytes (vec3 + u32).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: ambient RGB, already scaled by its intensity
	LightCount   uint32     // offset 12: number of valid entries in the light array
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(h.AmbientColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(h.AmbientColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(h.AmbientColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
	return buf
}

// ToGPULight converts a Light into its GPU representation.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	shadowVal := uint32(0)
	if l.CastsShadows() {
		shadowVal = 1
	}
	return GPULight{
		Direction:    l.Direction(),
		Intensity:    l.Intensity(),
		Color:        l.Color(),
		CastsShadows: shadowVal,
	}
}

// MarshalLightBlock packs the enabled lights into the fixed-size light uniform. Lights past MaxGPULights are
// dropped. Unused slots are zeroed.
//
// Parameters:
//   - lights: the scene lights, in priority order
//   - ambient: ambient RGB, already scaled by its intensity
//
// Returns:
//   - []byte: LightBlockSize bytes ready for GPU upload
func MarshalLightBlock(lights []Light, ambient [3]float32) []byte {
	buf := make([]byte, LightBlockSize)
	count := 0
	for _, l := range lights {
		if count == MaxGPULights {
			break
		}
		if !l.Enabled() {
			continue
		}
		gpu := ToGPULight(l)
		copy(buf[16+count*32:], gpu.Marshal())
		count++
	}
	header := GPULightHeader{AmbientColor: ambient, LightCount: uint32(count)}
	copy(buf, header.Marshal())
	return buf
}

// GPUShadowData is the shadow uniform shared by the shadow pass and the lit pass.
// Size: 80 bytes.
//
// Layout:
//
//	mat4x4<f32> light_vp       (64 bytes, offset 0)
//	vec2<f32>   texel_size     ( 8 bytes, offset 64)
//	f32         bias           ( 4 bytes, offset 72)
//	f32         normal_bias    ( 4 bytes, offset 76)
type GPUShadowData struct {
	LightVP    [16]float32
	TexelSize  [2]float32
	Bias       float32
	NormalBias float32
}

// Size returns the size of the GPUShadowData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (s *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*s))
}

// ComputeDirectionalLightVP builds the light's orthographic view-projection for the shadow pass and stores it
// in LightVP. The frustum is a cube of side 2*halfExtent centered on (centerX, centerY, centerZ) and looks
// along lightDir.
//
// Parameters:
//   - lightDir: normalized travel direction of the light
//   - centerX, centerY, centerZ: world-space center of the shadow frustum
//   - halfExtent: half-size of the frustum in world units
//   - near: near plane distance
//   - far: far plane distance
func (s *GPUShadowData) ComputeDirectionalLightVP(lightDir [3]float32, centerX, centerY, centerZ, halfExtent, near, far float32) {
	eyeX := centerX - lightDir[0]*far*0.5
	eyeY := centerY - lightDir[1]*far*0.5
	eyeZ := centerZ - lightDir[2]*far*0.5

	upX, upY, upZ := float32(0), float32(1), float32(0)
	if lightDir[1] > 0.99 || lightDir[1] < -0.99 {
		upX, upY, upZ = 1, 0, 0
	}

	var view, proj [16]float32
	common.LookAt(view[:], eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ)
	common.Orthographic(proj[:], -halfExtent, halfExtent, -halfExtent, halfExtent, near, far)
	common.Mul4(s.LightVP[:], proj[:], view[:])
}

// ComputeNormalBias sets NormalBias to scale times the world size of one shadow texel.
//
// Parameters:
//   - halfExtent: frustum half-size in world units
//   - scale: multiplier on the per-texel world size
//   - resolution: shadow map resolution in texels
func (s *GPUShadowData) ComputeNormalBias(halfExtent, scale float32, resolution int) {
	texelWorldSize := 2.0 * halfExtent / float32(resolution)
	s.NormalBias = texelWorldSize * scale
}

// Marshal serializes the GPUShadowData struct into a byte buffer suitable for GPU uniform upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (s *GPUShadowData) Marshal() []byte {
	buf := make([]byte, 80)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s.LightVP[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(s.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(s.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(s.NormalBias))
	return buf
}
