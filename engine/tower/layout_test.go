package tower

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
)

func str(s string) *string { return &s }

func TestSkeletonCountAndStart(t *testing.T) {
	for l := 1; l <= 9; l++ {
		if got := SkeletonCount(l); got != 5*l {
			t.Errorf("SkeletonCount(%d) = %d", l, got)
		}
		if got, want := ColoredStart(l), (5*l-l)/2; got != want {
			t.Errorf("ColoredStart(%d) = %d, want %d", l, got, want)
		}
		if ColoredStart(l) != 2*l {
			t.Errorf("ColoredStart(%d) should equal 2L", l)
		}
	}
}

func TestLevelYIsSymmetric(t *testing.T) {
	const count = 10
	for i := 0; i < count; i++ {
		a, b := LevelY(i, count, 0.5), LevelY(count-1-i, count, 0.5)
		if a != -b {
			t.Errorf("LevelY(%d)=%v and LevelY(%d)=%v are not mirrored", i, a, count-1-i, b)
		}
	}
	if d := LevelY(1, count, 0.5) - LevelY(0, count, 0.5); d != 1 {
		t.Errorf("spacing = %v, want 2H = 1", d)
	}
	if got := LevelY(2, 5, 1); got != 0 {
		t.Errorf("middle of an odd stack = %v, want 0", got)
	}
}

func TestComposeScenario(t *testing.T) {
	l0, err := ParseLevel(str("#FF0000"), str("#00FF00"))
	if err != nil {
		t.Fatal(err)
	}
	l1, err := ParseLevel(nil, str("#0000FF"))
	if err != nil {
		t.Fatal(err)
	}

	layout, err := Compose([]Level{l0, l1}, geometry.DefaultDimensions)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Slots) != 10 {
		t.Fatalf("%d slots, want 10", len(layout.Slots))
	}
	if layout.ColoredStart != 4 {
		t.Fatalf("colored start = %d, want 4", layout.ColoredStart)
	}

	red, green, blue := common.MustParseHexColor("#FF0000"), common.MustParseHexColor("#00FF00"), common.MustParseHexColor("#0000FF")
	s4, s5 := layout.Slots[4], layout.Slots[5]
	if s4.A == nil || *s4.A != red || s4.B == nil || *s4.B != green {
		t.Errorf("slot 4 = %+v, want a=red b=green", s4)
	}
	if s5.A != nil || s5.B == nil || *s5.B != blue {
		t.Errorf("slot 5 = %+v, want only b=blue", s5)
	}
	for i, s := range layout.Slots {
		if i != 4 && i != 5 && s.Colored() {
			t.Errorf("slot %d should be outline only", i)
		}
	}
}

func TestComposeErrors(t *testing.T) {
	if _, err := Compose(nil, geometry.DefaultDimensions); !errors.Is(err, ErrEmptyColorTable) {
		t.Errorf("empty table: err = %v", err)
	}
	if _, err := Compose(DefaultColorTable(), geometry.Dimensions{S: 1}); !errors.Is(err, geometry.ErrInvalidDimensions) {
		t.Errorf("bad dims: err = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel(str(""), nil)
	if err != nil {
		t.Fatal(err)
	}
	if lvl.A != nil || lvl.B != nil {
		t.Fatal("empty and nil colors should omit both halves")
	}
	if _, err := ParseLevel(str("#GG0000"), nil); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("bad color: err = %v", err)
	}
	if _, err := ParseLevel(nil, str("blue")); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("bad color: err = %v", err)
	}
}

func TestDefaultColorTableParses(t *testing.T) {
	table := DefaultColorTable()
	if len(table) != 4 {
		t.Fatalf("default table has %d levels", len(table))
	}
	if table[1].Color(geometry.HalfA) != nil || table[1].Color(geometry.HalfB) == nil {
		t.Fatal("level 1 should only color half b")
	}
}
