package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single non-indexed mesh vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh is a non-indexed triangle list (three consecutive vertices per triangle) for one half of a box.
type Mesh struct {
	Half     Half
	Dims     Dimensions
	Vertices []Vertex
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Triangle returns the three positions of triangle i.
func (m *Mesh) Triangle(i int) [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{m.Vertices[3*i].Position, m.Vertices[3*i+1].Position, m.Vertices[3*i+2].Position}
}

// Positions returns the distinct vertex positions in first-seen order.
func (m *Mesh) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, 6)
	for _, v := range m.Vertices {
		if indexOf(out, v.Position) < 0 {
			out = append(out, v.Position)
		}
	}
	return out
}

// face is a planar polygon of the prism with its outward unit normal.
type face struct {
	normal    mgl32.Vec3
	positions []mgl32.Vec3
}

// PrismHalf builds the closed triangular prism that is one half of the box described by dims, cut along the
// vertical plane through (-S, *, -S) and (S, *, S).
//
// Triangles are emitted as top cap, bottom cap, then the three rectangular sides as two triangles each.
// Every triangle is wound counter-clockwise when seen from outside. Normals are the normalized average of the
// normals of every face that touches the vertex position.
//
// Parameters:
//   - half: which half to build
//   - dims: the box half extents
//
// Returns:
//   - *Mesh: 8 triangles / 24 vertices
//   - error: ErrInvalidHalf or ErrInvalidDimensions on bad input
func PrismHalf(half Half, dims Dimensions) (*Mesh, error) {
	if !half.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHalf, uint8(half))
	}
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	footprint := footprintOf(half, dims)
	bottom := make([]mgl32.Vec3, len(footprint))
	top := make([]mgl32.Vec3, len(footprint))
	var centroid mgl32.Vec3
	for i, p := range footprint {
		bottom[i] = mgl32.Vec3{p[0], -dims.H, p[1]}
		top[i] = mgl32.Vec3{p[0], dims.H, p[1]}
		centroid = centroid.Add(bottom[i]).Add(top[i])
	}
	centroid = centroid.Mul(1 / float32(2*len(footprint)))

	tris := make([][3]mgl32.Vec3, 0, 8)
	faces := make([]face, 0, 5)
	addFace := func(polyTris ...[3]mgl32.Vec3) {
		var f face
		for _, t := range polyTris {
			t = orientOutward(t, centroid)
			tris = append(tris, t)
			for _, p := range t {
				if indexOf(f.positions, p) < 0 {
					f.positions = append(f.positions, p)
				}
			}
		}
		f.normal = triangleNormal(tris[len(tris)-1])
		faces = append(faces, f)
	}

	addFace([3]mgl32.Vec3{top[0], top[1], top[2]})
	addFace([3]mgl32.Vec3{bottom[0], bottom[1], bottom[2]})
	for i := range footprint {
		j := (i + 1) % len(footprint)
		addFace(
			[3]mgl32.Vec3{bottom[i], bottom[j], top[j]},
			[3]mgl32.Vec3{bottom[i], top[j], top[i]},
		)
	}

	mesh := &Mesh{Half: half, Dims: dims, Vertices: make([]Vertex, 0, 3*len(tris))}
	for _, t := range tris {
		for _, p := range t {
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: p, Normal: averagedNormal(faces, p)})
		}
	}
	return mesh, nil
}

// footprintOf returns the XZ corners of the box kept by half, ordered counter-clockwise around their centroid.
func footprintOf(half Half, dims Dimensions) [][2]float32 {
	all := [4][2]float32{{-dims.S, -dims.S}, {dims.S, -dims.S}, {dims.S, dims.S}, {-dims.S, dims.S}}
	kept := make([][2]float32, 0, 3)
	var cx, cz float32
	for _, p := range all {
		if half.keeps(p[0] - p[1]) {
			kept = append(kept, p)
			cx += p[0]
			cz += p[1]
		}
	}
	cx /= float32(len(kept))
	cz /= float32(len(kept))
	sort.Slice(kept, func(i, j int) bool {
		ai := math.Atan2(float64(kept[i][1]-cz), float64(kept[i][0]-cx))
		aj := math.Atan2(float64(kept[j][1]-cz), float64(kept[j][0]-cx))
		return ai < aj
	})
	return kept
}

// orientOutward flips t when its normal points toward the interior point c. Valid for convex solids.
func orientOutward(t [3]mgl32.Vec3, c mgl32.Vec3) [3]mgl32.Vec3 {
	mid := t[0].Add(t[1]).Add(t[2]).Mul(1.0 / 3.0)
	if triangleNormal(t).Dot(mid.Sub(c)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
	return t
}

func triangleNormal(t [3]mgl32.Vec3) mgl32.Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
}

func averagedNormal(faces []face, p mgl32.Vec3) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, f := range faces {
		if indexOf(f.positions, p) >= 0 {
			sum = sum.Add(f.normal)
		}
	}
	return sum.Normalize()
}

func indexOf(ps []mgl32.Vec3, p mgl32.Vec3) int {
	for i, q := range ps {
		if q.ApproxEqual(p) {
			return i
		}
	}
	return -1
}
