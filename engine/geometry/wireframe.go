package geometry

import (
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"
)

// LineMesh is a non-indexed line list (two consecutive vertices per segment).
type LineMesh struct {
	Dims     Dimensions
	Vertices []mgl32.Vec3
}

// SegmentCount returns the number of line segments in the mesh.
func (l *LineMesh) SegmentCount() int {
	return len(l.Vertices) / 2
}

// Segment returns the endpoints of segment i.
func (l *LineMesh) Segment(i int) [2]mgl32.Vec3 {
	return [2]mgl32.Vec3{l.Vertices[2*i], l.Vertices[2*i+1]}
}

// WireframeCell builds the outline of the box described by dims: its 12 edges followed by the top and bottom
// face diagonals that trace the cut between the two prism halves.
//
// Parameters:
//   - dims: the box half extents
//
// Returns:
//   - *LineMesh: 14 segments / 28 vertices
//   - error: ErrInvalidDimensions on bad input
func WireframeCell(dims Dimensions) (*LineMesh, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	corners := dims.Corners()
	out := &LineMesh{Dims: dims, Vertices: make([]mgl32.Vec3, 0, 28)}
	// Two corners share an edge when their indices differ in exactly one axis bit.
	for i := 0; i < len(corners); i++ {
		for j := i + 1; j < len(corners); j++ {
			if bits.OnesCount(uint(i^j)) == 1 {
				out.Vertices = append(out.Vertices, corners[i], corners[j])
			}
		}
	}
	for _, y := range [2]float32{dims.H, -dims.H} {
		out.Vertices = append(out.Vertices,
			mgl32.Vec3{-dims.S, y, -dims.S},
			mgl32.Vec3{dims.S, y, dims.S},
		)
	}
	return out, nil
}
