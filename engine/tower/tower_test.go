package tower

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
	"github.com/Carmen-Shannon/prism-tower/engine/model"
)

func TestRotatorAdvance(t *testing.T) {
	r := NewRotator(0.5)
	for i := 0; i < 120; i++ {
		r.Advance(1.0 / 60)
	}
	if math.Abs(r.Angle()-1.0) > 1e-9 {
		t.Fatalf("angle after 2s at 0.5 rad/s = %v, want 1", r.Angle())
	}

	before := r.Angle()
	for _, dt := range []float64{-1, math.NaN(), math.Inf(1), 0} {
		r.Advance(dt)
	}
	if r.Angle() != before {
		t.Fatalf("invalid dt changed the angle: %v -> %v", before, r.Angle())
	}
}

func TestRotatorHasNoModulo(t *testing.T) {
	r := NewRotator(1)
	prev := 0.0
	for i := 0; i < 100; i++ {
		a := r.Advance(0.5)
		if a < prev {
			t.Fatalf("angle decreased at step %d: %v < %v", i, a, prev)
		}
		prev = a
	}
	if prev != 50 || prev <= 2*math.Pi {
		t.Fatalf("angle = %v, want 50 with no wrap", prev)
	}
}

func TestRotatorConcurrentAdvance(t *testing.T) {
	r := NewRotator(1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Advance(0.001)
				_ = r.Angle()
			}
		}()
	}
	wg.Wait()
	if math.Abs(r.Angle()-8) > 1e-6 {
		t.Fatalf("angle = %v, want 8", r.Angle())
	}
}

func TestNewTowerBuildsSceneGraph(t *testing.T) {
	tw, err := NewTower()
	if err != nil {
		t.Fatal(err)
	}
	// Default table: 4 levels, 20 cells, 6 colored halves.
	children := tw.Root().Children()
	if len(children) != 20+6 {
		t.Fatalf("root has %d children, want 26", len(children))
	}
	if len(tw.Objects()) != 27 {
		t.Fatalf("Objects() = %d, want 27", len(tw.Objects()))
	}

	counts := map[string]int{}
	for _, c := range children {
		counts[c.Model().Name()]++
		if c.Model().Topology() == model.TopologyLines && c.CastsShadows() {
			t.Error("wire cells should not cast shadows")
		}
	}
	if counts[ModelWire] != 20 || counts[ModelPrismA] != 3 || counts[ModelPrismB] != 3 {
		t.Fatalf("model usage %v", counts)
	}
	if len(tw.Models()) != 3 {
		t.Fatalf("%d shared models, want 3", len(tw.Models()))
	}
}

func TestTowerTickRotatesRoot(t *testing.T) {
	tw, err := NewTower(WithRotationRate(0.25))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 40; i++ {
		tw.Tick(0.1)
	}
	if math.Abs(tw.Angle()-1) > 1e-9 {
		t.Fatalf("angle = %v, want 1", tw.Angle())
	}
	_, ry, _ := tw.Root().Rotation()
	if math.Abs(float64(ry)-1) > 1e-6 {
		t.Fatalf("root yaw = %v, want 1", ry)
	}
	for _, c := range tw.Root().Children() {
		if _, cy, _ := c.Rotation(); cy != 0 {
			t.Fatal("children must not carry their own rotation")
		}
	}
}

func TestTowerTickKeepsLayoutRigid(t *testing.T) {
	tw, err := NewTower(WithRotationRate(0.5))
	if err != nil {
		t.Fatal(err)
	}
	tw.Tick(1.5)
	theta := tw.Angle()
	sin, cos := float32(math.Sin(theta)), float32(math.Cos(theta))
	corners := tw.Layout().Dims.Corners()
	near := func(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

	wires := 0
	for _, c := range tw.Root().Children() {
		w := c.WorldMatrix()
		_, y, _ := c.Position()
		if c.Model().Name() == ModelWire {
			if y != tw.Layout().Slots[wires].Y {
				t.Fatalf("wire %d sits at y=%v, want slot y=%v", wires, y, tw.Layout().Slots[wires].Y)
			}
			wires++
		}
		// Rotation about Y leaves the child's origin on the axis at its slot height.
		if !near(w[12], 0) || !near(w[13], y) || !near(w[14], 0) {
			t.Fatalf("child %d world translation = (%v, %v, %v), want (0, %v, 0)", c.ID(), w[12], w[13], w[14], y)
		}
		for _, k := range corners {
			got := common.TransformPoint(w[:], k.X(), k.Y(), k.Z())
			want := [3]float32{k.X()*cos + k.Z()*sin, k.Y() + y, -k.X()*sin + k.Z()*cos}
			for i := range got {
				if !near(got[i], want[i]) {
					t.Fatalf("child %d corner %v -> %v, want %v", c.ID(), k, got, want)
				}
			}
		}
	}
	if wires != len(tw.Layout().Slots) {
		t.Fatalf("visited %d wire cells, want %d", wires, len(tw.Layout().Slots))
	}
}

func TestTowerTickReducesTransformOnly(t *testing.T) {
	tw, err := NewTower(WithRotationRate(1))
	if err != nil {
		t.Fatal(err)
	}
	// About a day of spinning at 0.5 rad/s.
	tw.Tick(43200)
	if tw.Angle() != 43200 {
		t.Fatalf("accumulated angle = %v, want 43200", tw.Angle())
	}
	_, ry, _ := tw.Root().Rotation()
	want := float32(math.Mod(43200, 2*math.Pi))
	if ry != want || ry < 0 || float64(ry) >= 2*math.Pi {
		t.Fatalf("root yaw = %v, want %v", ry, want)
	}

	// A frame step near that angle still moves the transform.
	tw.Tick(1.0 / 60)
	if _, next, _ := tw.Root().Rotation(); next == ry {
		t.Fatal("a 1/60 s step was lost to float32 rounding")
	}
}

func TestNewTowerResetsAngle(t *testing.T) {
	cache := geometry.NewCache()
	first, _ := NewTower(WithCache(cache))
	first.Tick(3)
	before := first.Angle()
	for _, dt := range []float64{0, -3, math.NaN()} {
		first.Tick(dt)
	}
	if first.Angle() != before || before == 0 {
		t.Fatalf("live tower angle went from %v to %v", before, first.Angle())
	}
	second, err := NewTower(WithCache(cache))
	if err != nil {
		t.Fatal(err)
	}
	if second.Angle() != 0 {
		t.Fatalf("new tower starts at %v", second.Angle())
	}
	if first.Angle() != before {
		t.Fatal("creating a tower changed another tower's angle")
	}
	if cache.Len() != 3 {
		t.Fatalf("cache holds %d meshes, want 3", cache.Len())
	}
}

func TestNewTowerErrors(t *testing.T) {
	if _, err := NewTower(WithColorTable([]Level{})); err == nil {
		t.Fatal("empty table accepted")
	}
	if _, err := NewTower(WithDimensions(geometry.Dimensions{S: -1, H: 1})); err == nil {
		t.Fatal("invalid dimensions accepted")
	}
}
