package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func buildBoth(t *testing.T, dims Dimensions) (*Mesh, *Mesh) {
	t.Helper()
	a, err := PrismHalf(HalfA, dims)
	if err != nil {
		t.Fatalf("PrismHalf(a): %v", err)
	}
	b, err := PrismHalf(HalfB, dims)
	if err != nil {
		t.Fatalf("PrismHalf(b): %v", err)
	}
	return a, b
}

func centroidOf(m *Mesh) mgl32.Vec3 {
	ps := m.Positions()
	var c mgl32.Vec3
	for _, p := range ps {
		c = c.Add(p)
	}
	return c.Mul(1 / float32(len(ps)))
}

func contains(ps []mgl32.Vec3, p mgl32.Vec3) bool {
	return indexOf(ps, p) >= 0
}

func TestPrismHalfCounts(t *testing.T) {
	dims := []Dimensions{DefaultDimensions, {S: 1, H: 0.25}, {S: 2.5, H: 3}}
	for _, d := range dims {
		a, b := buildBoth(t, d)
		for _, m := range []*Mesh{a, b} {
			if len(m.Vertices) != 24 {
				t.Errorf("%v %+v: %d vertices, want 24", m.Half, d, len(m.Vertices))
			}
			if m.TriangleCount() != 8 {
				t.Errorf("%v %+v: %d triangles, want 8", m.Half, d, m.TriangleCount())
			}
			if len(m.Positions()) != 6 {
				t.Errorf("%v %+v: %d distinct positions, want 6", m.Half, d, len(m.Positions()))
			}
		}
	}
}

func TestPrismHalfOutwardWinding(t *testing.T) {
	a, b := buildBoth(t, Dimensions{S: 0.5, H: 0.75})
	for _, m := range []*Mesh{a, b} {
		c := centroidOf(m)
		var volume float32
		for i := 0; i < m.TriangleCount(); i++ {
			tri := m.Triangle(i)
			n := triangleNormal(tri)
			mid := tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3.0)
			if n.Dot(mid.Sub(c)) <= 0 {
				t.Errorf("half %v triangle %d faces inward", m.Half, i)
			}
			volume += tri[0].Dot(tri[1].Cross(tri[2])) / 6
		}
		// Half of a 1 x 1.5 x 1 box.
		if math.Abs(float64(volume-0.75)) > 1e-5 {
			t.Errorf("half %v signed volume = %v, want 0.75", m.Half, volume)
		}
	}
}

func TestPrismHalfCapOrder(t *testing.T) {
	d := DefaultDimensions
	a, _ := buildBoth(t, d)
	for _, p := range a.Triangle(0) {
		if p.Y() != d.H {
			t.Fatalf("first triangle should be the top cap, got %v", a.Triangle(0))
		}
	}
	for _, p := range a.Triangle(1) {
		if p.Y() != -d.H {
			t.Fatalf("second triangle should be the bottom cap, got %v", a.Triangle(1))
		}
	}
	if n := triangleNormal(a.Triangle(0)); !n.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("top cap normal = %v", n)
	}
	if n := triangleNormal(a.Triangle(1)); !n.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-6) {
		t.Errorf("bottom cap normal = %v", n)
	}
}

func TestPrismHalvesTileTheBox(t *testing.T) {
	d := DefaultDimensions
	a, b := buildBoth(t, d)
	pa, pb := a.Positions(), b.Positions()

	for _, y := range []float32{d.H, -d.H} {
		if !contains(pa, mgl32.Vec3{d.S, y, -d.S}) {
			t.Errorf("half a is missing (+x,%v,-z)", y)
		}
		if contains(pa, mgl32.Vec3{-d.S, y, d.S}) {
			t.Errorf("half a must not contain (-x,%v,+z)", y)
		}
		if !contains(pb, mgl32.Vec3{-d.S, y, d.S}) {
			t.Errorf("half b is missing (-x,%v,+z)", y)
		}
		if contains(pb, mgl32.Vec3{d.S, y, -d.S}) {
			t.Errorf("half b must not contain (+x,%v,-z)", y)
		}
	}

	union := append([]mgl32.Vec3{}, pa...)
	for _, p := range pb {
		if !contains(union, p) {
			union = append(union, p)
		}
	}
	if len(union) != 8 {
		t.Fatalf("union has %d positions, want 8", len(union))
	}
	for _, c := range d.Corners() {
		if !contains(union, c) {
			t.Errorf("corner %v missing from union", c)
		}
	}
}

func TestPrismHalvesShareSeamFace(t *testing.T) {
	d := Dimensions{S: 1, H: 2}
	a, b := buildBoth(t, d)
	axis := mgl32.Vec3{1, 0, -1}.Normalize()

	seam := func(m *Mesh) ([]mgl32.Vec3, mgl32.Vec3) {
		var ps []mgl32.Vec3
		var n mgl32.Vec3
		for i := 0; i < m.TriangleCount(); i++ {
			tri := m.Triangle(i)
			tn := triangleNormal(tri)
			if math.Abs(float64(tn.Dot(axis))) < 1-1e-5 {
				continue
			}
			n = tn
			for _, p := range tri {
				if !contains(ps, p) {
					ps = append(ps, p)
				}
			}
		}
		return ps, n
	}

	sa, na := seam(a)
	sb, nb := seam(b)
	if len(sa) != 4 || len(sb) != 4 {
		t.Fatalf("seam faces have %d and %d positions, want 4", len(sa), len(sb))
	}
	for _, p := range sa {
		if !contains(sb, p) {
			t.Errorf("seam position %v of half a not in half b", p)
		}
		if p.X() != p.Z() {
			t.Errorf("seam position %v is off the cut plane", p)
		}
	}
	if !na.ApproxEqualThreshold(nb.Mul(-1), 1e-6) {
		t.Errorf("seam normals %v and %v should be opposite", na, nb)
	}
	if na.Dot(axis) >= 0 {
		t.Errorf("half a seam normal %v should point toward -x/+z", na)
	}
}

func TestPrismHalfNormals(t *testing.T) {
	a, b := buildBoth(t, DefaultDimensions)
	for _, m := range []*Mesh{a, b} {
		for i, v := range m.Vertices {
			if l := v.Normal.Len(); math.Abs(float64(l-1)) > 1e-5 {
				t.Fatalf("half %v vertex %d normal length %v", m.Half, i, l)
			}
			tn := triangleNormal(m.Triangle(i / 3))
			if v.Normal.Dot(tn) <= 0 {
				t.Errorf("half %v vertex %d normal %v disagrees with face %v", m.Half, i, v.Normal, tn)
			}
		}
	}
}

func TestPrismHalfInvalidInput(t *testing.T) {
	if _, err := PrismHalf(Half(0), DefaultDimensions); !errors.Is(err, ErrInvalidHalf) {
		t.Errorf("zero half: err = %v, want ErrInvalidHalf", err)
	}
	if _, err := PrismHalf(Half(7), DefaultDimensions); !errors.Is(err, ErrInvalidHalf) {
		t.Errorf("out of range half: err = %v, want ErrInvalidHalf", err)
	}
	bad := []Dimensions{
		{S: 0, H: 1},
		{S: 1, H: -1},
		{S: float32(math.NaN()), H: 1},
		{S: 1, H: float32(math.Inf(1))},
	}
	for _, d := range bad {
		if _, err := PrismHalf(HalfA, d); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("dims %+v: err = %v, want ErrInvalidDimensions", d, err)
		}
	}
}

func TestParseHalf(t *testing.T) {
	tests := []struct {
		in   string
		want Half
		ok   bool
	}{
		{"a", HalfA, true},
		{"b", HalfB, true},
		{" B ", HalfB, true},
		{"c", 0, false},
		{"", 0, false},
		{"ab", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseHalf(tt.in)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("ParseHalf(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidHalf) {
			t.Errorf("ParseHalf(%q) err = %v, want ErrInvalidHalf", tt.in, err)
		}
	}
	if HalfA.Other() != HalfB || HalfB.Other() != HalfA {
		t.Error("Other() is not complementary")
	}
}
