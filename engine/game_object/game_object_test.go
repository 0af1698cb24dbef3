package game_object

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism-tower/common"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestWorldMatrixComposesParent(t *testing.T) {
	root := NewGameObject(WithRotation(0, math.Pi/2, 0))
	child := NewGameObject(WithPosition(1, 2, 0))
	root.AddChild(child)

	w := child.WorldMatrix()
	p := common.TransformPoint(w[:], 0, 0, 0)
	// The child's offset of +1 on X is yawed onto -Z by the root.
	if !approx(p[0], 0) || !approx(p[1], 2) || !approx(p[2], -1) {
		t.Fatalf("child origin in world = %v, want (0,2,-1)", p)
	}
	if child.Parent() != root {
		t.Fatal("parent not recorded")
	}
}

func TestAddChildMovesBetweenParents(t *testing.T) {
	a, b := NewGameObject(), NewGameObject()
	c := NewGameObject()
	a.AddChild(c)
	b.AddChild(c)
	if len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Fatalf("children a=%d b=%d, want 0 and 1", len(a.Children()), len(b.Children()))
	}
	a.AddChild(a)
	if len(a.Children()) != 0 {
		t.Fatal("object became its own child")
	}
}

func TestWalkVisitsDescendants(t *testing.T) {
	root := NewGameObject(WithID(1))
	mid := NewGameObject(WithID(2))
	leaf := NewGameObject(WithID(3))
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.AddChild(NewGameObject(WithID(4)))

	var ids []uint64
	root.Walk(func(o GameObject) { ids = append(ids, o.ID()) })
	want := []uint64{1, 2, 3, 4}
	if len(ids) != len(want) {
		t.Fatalf("visited %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("visited %v, want %v", ids, want)
		}
	}
}

func TestDefaults(t *testing.T) {
	o := NewGameObject()
	if !o.Enabled() || !o.CastsShadows() {
		t.Fatal("objects should start enabled and shadow casting")
	}
	if sx, sy, sz := o.Scale(); sx != 1 || sy != 1 || sz != 1 {
		t.Fatalf("scale = %v %v %v", sx, sy, sz)
	}
	o.SetEnabled(false)
	if o.Enabled() {
		t.Fatal("SetEnabled(false) ignored")
	}
}

func TestGPUObjectUniform(t *testing.T) {
	red := common.MustParseHexColor("#FF0000")
	o := NewGameObject(WithPosition(3, 4, 5), WithColor(red))
	u := Uniform(o)
	if u.Size() != 80 {
		t.Fatalf("Size() = %d, want 80", u.Size())
	}
	buf := u.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[13*4:])); got != 4 {
		t.Errorf("translation y = %v, want 4", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])); !approx(got, 1) {
		t.Errorf("color r = %v, want 1", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])); got != 0 {
		t.Errorf("color g = %v, want 0", got)
	}
}
