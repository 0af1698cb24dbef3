package tower

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
)

var (
	// ErrEmptyColorTable is returned when a tower is composed from a table with no levels.
	ErrEmptyColorTable = errors.New("tower: color table is empty")
	// ErrInvalidColor is returned when a level color cannot be parsed.
	ErrInvalidColor = errors.New("tower: invalid level color")
)

// Level is one entry of the color table. A nil color omits that half at this level.
type Level struct {
	A *common.Color
	B *common.Color
}

// Color returns the color configured for half h, or nil when that half is omitted.
func (l Level) Color(h geometry.Half) *common.Color {
	switch h {
	case geometry.HalfA:
		return l.A
	case geometry.HalfB:
		return l.B
	}
	return nil
}

// ParseLevel builds a Level from optional hex strings. A nil or empty string omits the half.
//
// Parameters:
//   - a: color of half "a", or nil
//   - b: color of half "b", or nil
//
// Returns:
//   - Level: the parsed level
//   - error: an error wrapping ErrInvalidColor
func ParseLevel(a, b *string) (Level, error) {
	var lvl Level
	var err error
	if lvl.A, err = parseOptional(a); err != nil {
		return Level{}, fmt.Errorf("%w: half a: %w", ErrInvalidColor, err)
	}
	if lvl.B, err = parseOptional(b); err != nil {
		return Level{}, fmt.Errorf("%w: half b: %w", ErrInvalidColor, err)
	}
	return lvl, nil
}

func parseOptional(s *string) (*common.Color, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	c, err := common.ParseHexColor(*s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func colorPtr(hex string) *common.Color {
	c := common.MustParseHexColor(hex)
	return &c
}

// DefaultColorTable returns the built-in four-level palette.
func DefaultColorTable() []Level {
	return []Level{
		{A: colorPtr("#FF6B6B"), B: colorPtr("#4ECDC4")},
		{B: colorPtr("#FFE66D")},
		{A: colorPtr("#1A535C")},
		{A: colorPtr("#FF9F1C"), B: colorPtr("#2EC4B6")},
	}
}
