package common

import "testing"

func TestFrustumIntersectsSphere(t *testing.T) {
	var proj [16]float32
	Orthographic(proj[:], -1, 1, -1, 1, 0.1, 10)
	f := ExtractFrustumFromMatrix(proj[:])

	cases := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"inside", [3]float32{0, 0, -5}, 0.1, true},
		{"straddles right", [3]float32{1.2, 0, -5}, 0.5, true},
		{"past right", [3]float32{5, 0, -5}, 1, false},
		{"above top", [3]float32{0, 3, -5}, 1, false},
		{"behind camera", [3]float32{0, 0, 1}, 0.5, false},
		{"beyond far", [3]float32{0, 0, -20}, 1, false},
	}
	for _, c := range cases {
		if got := f.IntersectsSphere(c.center, c.radius); got != c.want {
			t.Errorf("%s: IntersectsSphere = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	var proj [16]float32
	Orthographic(proj[:], -4, 4, -2, 2, 0.1, 100)
	f := ExtractFrustumFromMatrix(proj[:])
	for i, p := range f.Planes {
		n := p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]
		if !approx(n, 1) {
			t.Errorf("plane %d normal length^2 = %v", i, n)
		}
	}
}
