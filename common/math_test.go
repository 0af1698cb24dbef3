package common

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 1, 2, 3, 0.3, 0.7, -0.2, 2, 2, 2)

	Mul4(out[:], id[:], m[:])
	for i := range out {
		if !approx(out[i], m[i]) {
			t.Fatalf("I*M differs at %d: got %v want %v", i, out[i], m[i])
		}
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, out [16]float32
	BuildModelMatrix(m[:], -4, 1.5, 9, 0.1, 1.2, 0.4, 1, 3, 0.5)
	if !Invert4(inv[:], m[:]) {
		t.Fatal("expected invertible matrix")
	}
	Mul4(out[:], m[:], inv[:])
	var id [16]float32
	Identity(id[:])
	for i := range out {
		if !approx(out[i], id[i]) {
			t.Fatalf("M*M^-1 differs from identity at %d: %v", i, out[i])
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	var m, out [16]float32
	out[0] = 42
	if Invert4(out[:], m[:]) {
		t.Fatal("zero matrix reported as invertible")
	}
	if out[0] != 42 {
		t.Fatal("output modified for singular matrix")
	}
}

func TestBuildModelMatrixRotationY(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0, math.Pi/2, 0, 1, 1, 1)
	p := TransformPoint(m[:], 1, 0, 0)
	// Yaw by +90 degrees takes +x to -z.
	if !approx(p[0], 0) || !approx(p[1], 0) || !approx(p[2], -1) {
		t.Fatalf("rotated point = %v, want (0,0,-1)", p)
	}
}

func TestOrthographicDepthRange(t *testing.T) {
	var m [16]float32
	Orthographic(m[:], -4, 4, -3, 3, 0.1, 100)

	near := TransformPoint(m[:], 0, 0, -0.1)
	far := TransformPoint(m[:], 0, 0, -100)
	if !approx(near[2], 0) {
		t.Errorf("near plane maps to z=%v, want 0", near[2])
	}
	if !approx(far[2], 1) {
		t.Errorf("far plane maps to z=%v, want 1", far[2])
	}

	corner := TransformPoint(m[:], 4, 3, -1)
	if !approx(corner[0], 1) || !approx(corner[1], 1) {
		t.Errorf("top-right maps to %v, want x=1 y=1", corner)
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var v [16]float32
	LookAt(v[:], 10, 10, 10, 0, 0, 0, 0, 1, 0)

	eye := TransformPoint(v[:], 10, 10, 10)
	for i, c := range eye {
		if !approx(c, 0) {
			t.Fatalf("eye component %d = %v, want 0", i, c)
		}
	}
	target := TransformPoint(v[:], 0, 0, 0)
	d := float32(math.Sqrt(300))
	if !approx(target[2], -d) {
		t.Fatalf("target z = %v, want %v", target[2], -d)
	}
}
