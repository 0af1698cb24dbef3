package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidDimensions is returned when a cube's half extents are not finite and strictly positive.
var ErrInvalidDimensions = errors.New("geometry: invalid cube dimensions")

// Dimensions describes an axis-aligned box centered on the origin by its half extents.
// S is the half-width along X and the half-depth along Z; H is the half-height along Y.
type Dimensions struct {
	S float32 `yaml:"half_width"`
	H float32 `yaml:"half_height"`
}

// DefaultDimensions is the unit cube.
var DefaultDimensions = Dimensions{S: 0.5, H: 0.5}

// Validate reports whether both half extents are finite and greater than zero.
//
// Returns:
//   - error: an error wrapping ErrInvalidDimensions, or nil
func (d Dimensions) Validate() error {
	for _, v := range [2]float32{d.S, d.H} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || v <= 0 {
			return fmt.Errorf("%w: S=%v H=%v", ErrInvalidDimensions, d.S, d.H)
		}
	}
	return nil
}

// BoundingRadius returns the radius of the sphere centered at the origin that encloses the box.
func (d Dimensions) BoundingRadius() float32 {
	return float32(math.Sqrt(float64(2*d.S*d.S + d.H*d.H)))
}

// Corners returns the 8 box corners. Bit 0 of the index selects +X, bit 1 selects +Y and bit 2 selects +Z.
func (d Dimensions) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		x, y, z := -d.S, -d.H, -d.S
		if i&1 != 0 {
			x = d.S
		}
		if i&2 != 0 {
			y = d.H
		}
		if i&4 != 0 {
			z = d.S
		}
		out[i] = mgl32.Vec3{x, y, z}
	}
	return out
}
