package tower

import (
	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
)

// TowerBuilderOption is a functional option for configuring a Tower via NewTower.
type TowerBuilderOption func(*tower)

// WithDimensions sets the half extents of every cell.
//
// Parameters:
//   - dims: the cell half extents
//
// Returns:
//   - TowerBuilderOption: a function that applies the dimensions option
func WithDimensions(dims geometry.Dimensions) TowerBuilderOption {
	return func(t *tower) {
		t.dims = dims
	}
}

// WithColorTable sets the per-level color table, bottom to top. The table length is the colored height.
//
// Parameters:
//   - table: the color table
//
// Returns:
//   - TowerBuilderOption: a function that applies the color table option
func WithColorTable(table []Level) TowerBuilderOption {
	return func(t *tower) {
		t.table = table
	}
}

// WithRotationRate sets the spin speed in radians per second.
//
// Parameters:
//   - rate: the angular speed
//
// Returns:
//   - TowerBuilderOption: a function that applies the rate option
func WithRotationRate(rate float64) TowerBuilderOption {
	return func(t *tower) {
		t.rate = rate
	}
}

// WithWireColor sets the color of the wireframe cells.
//
// Parameters:
//   - c: the line color
//
// Returns:
//   - TowerBuilderOption: a function that applies the wire color option
func WithWireColor(c common.Color) TowerBuilderOption {
	return func(t *tower) {
		t.wireColor = c
	}
}

// WithCache shares a mesh cache between towers.
//
// Parameters:
//   - c: the cache to use
//
// Returns:
//   - TowerBuilderOption: a function that applies the cache option
func WithCache(c *geometry.Cache) TowerBuilderOption {
	return func(t *tower) {
		t.cache = c
	}
}
