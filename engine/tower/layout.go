package tower

import (
	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
)

// SkeletonCount returns the number of wireframe cells stacked for a color table of l levels.
func SkeletonCount(l int) int {
	return 5 * l
}

// ColoredStart returns the first skeleton index that carries a colored level. Integer division floors the
// centering offset.
func ColoredStart(l int) int {
	return (SkeletonCount(l) - l) / 2
}

// LevelY returns the vertical center of cell i in a stack of count cells with half-height h.
// The stack is symmetric about y = 0 and cells are 2h apart.
func LevelY(i, count int, h float32) float32 {
	return (float32(i) - float32(count-1)/2) * 2 * h
}

// Slot is one level of the skeleton.
type Slot struct {
	Index int           `yaml:"index"`
	Y     float32       `yaml:"y"`
	A     *common.Color `yaml:"-"`
	B     *common.Color `yaml:"-"`
}

// Colored reports whether any prism half is drawn in this slot.
func (s Slot) Colored() bool {
	return s.A != nil || s.B != nil
}

// Layout is the composed tower: one slot per skeleton level, bottom to top.
type Layout struct {
	Dims         geometry.Dimensions
	Levels       int
	ColoredStart int
	Slots        []Slot
}

// Compose lays the color table out over the skeleton. Slots inside the centered block of len(table) levels
// receive the colors of the matching table entry; every other slot is outline only.
//
// Parameters:
//   - table: the per-level color table, bottom to top
//   - dims: the cell half extents
//
// Returns:
//   - *Layout: the composed layout
//   - error: ErrEmptyColorTable or an error wrapping geometry.ErrInvalidDimensions
func Compose(table []Level, dims geometry.Dimensions) (*Layout, error) {
	if len(table) == 0 {
		return nil, ErrEmptyColorTable
	}
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	l := len(table)
	count := SkeletonCount(l)
	start := ColoredStart(l)
	out := &Layout{Dims: dims, Levels: l, ColoredStart: start, Slots: make([]Slot, count)}
	for i := range out.Slots {
		s := Slot{Index: i, Y: LevelY(i, count, dims.H)}
		if j := i - start; j >= 0 && j < l {
			s.A, s.B = table[j].A, table[j].B
		}
		out.Slots[i] = s
	}
	return out, nil
}

// Height returns the total height of the stacked cells.
func (l *Layout) Height() float32 {
	return float32(len(l.Slots)) * 2 * l.Dims.H
}
