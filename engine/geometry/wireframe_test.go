package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWireframeCell(t *testing.T) {
	d := Dimensions{S: 0.5, H: 1}
	l, err := WireframeCell(d)
	if err != nil {
		t.Fatalf("WireframeCell: %v", err)
	}
	if len(l.Vertices) != 28 || l.SegmentCount() != 14 {
		t.Fatalf("got %d vertices / %d segments, want 28 / 14", len(l.Vertices), l.SegmentCount())
	}

	corners := d.Corners()
	lengths := map[int]int{}
	for i := 0; i < l.SegmentCount(); i++ {
		s := l.Segment(i)
		for _, p := range s {
			if !contains(corners[:], p) {
				t.Fatalf("segment %d endpoint %v is not a box corner", i, p)
			}
		}
		length := int(math.Round(float64(s[1].Sub(s[0]).Len()) * 1000))
		lengths[length]++
	}
	// 8 horizontal edges of 2S, 4 vertical edges of 2H, 2 diagonals of 2S*sqrt(2).
	if lengths[1000] != 8 || lengths[2000] != 4 || lengths[1414] != 2 {
		t.Fatalf("unexpected length histogram %v", lengths)
	}

	top, bottom := l.Segment(12), l.Segment(13)
	if top[0] != (mgl32.Vec3{-0.5, 1, -0.5}) || top[1] != (mgl32.Vec3{0.5, 1, 0.5}) {
		t.Errorf("top diagonal = %v", top)
	}
	if bottom[0] != (mgl32.Vec3{-0.5, -1, -0.5}) || bottom[1] != (mgl32.Vec3{0.5, -1, 0.5}) {
		t.Errorf("bottom diagonal = %v", bottom)
	}
}

func TestWireframeCellInvalid(t *testing.T) {
	if _, err := WireframeCell(Dimensions{S: -1, H: 1}); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestCacheReusesMeshes(t *testing.T) {
	c := NewCache()
	a1, err := c.Prism(HalfA, DefaultDimensions)
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := c.Prism(HalfA, DefaultDimensions)
	b, _ := c.Prism(HalfB, DefaultDimensions)
	if a1 != a2 {
		t.Error("same key returned different meshes")
	}
	if a1 == b {
		t.Error("different halves share a mesh")
	}
	w1, _ := c.Wireframe(DefaultDimensions)
	w2, _ := c.Wireframe(DefaultDimensions)
	if w1 != w2 {
		t.Error("wireframe not reused")
	}
	if _, err := c.Prism(HalfA, Dimensions{}); err == nil {
		t.Error("invalid dimensions accepted")
	}
	if c.Len() != 3 {
		t.Errorf("cache holds %d meshes, want 3", c.Len())
	}
}
