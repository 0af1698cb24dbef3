package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHalf is returned for a half selector other than "a" or "b".
var ErrInvalidHalf = errors.New("geometry: invalid half selector")

// Half selects one of the two triangular prisms produced by cutting a box along the vertical plane x = z.
type Half uint8

const (
	// HalfA keeps the corner (+x, -z).
	HalfA Half = iota + 1
	// HalfB keeps the corner (-x, +z).
	HalfB
)

// seamEpsilon absorbs float32 noise when classifying points that lie on the cutting plane.
const seamEpsilon = 1e-6

// ParseHalf converts a selector string into a Half.
//
// Parameters:
//   - s: "a" or "b" (case-insensitive, surrounding whitespace ignored)
//
// Returns:
//   - Half: the parsed half
//   - error: an error wrapping ErrInvalidHalf for any other input
func ParseHalf(s string) (Half, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return HalfA, nil
	case "b":
		return HalfB, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidHalf, s)
}

func (h Half) String() string {
	switch h {
	case HalfA:
		return "a"
	case HalfB:
		return "b"
	}
	return fmt.Sprintf("Half(%d)", uint8(h))
}

// MarshalText implements encoding.TextMarshaler.
func (h Half) MarshalText() ([]byte, error) {
	if !h.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHalf, uint8(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Half) UnmarshalText(text []byte) error {
	v, err := ParseHalf(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func (h Half) valid() bool {
	return h == HalfA || h == HalfB
}

// Other returns the complementary half.
func (h Half) Other() Half {
	if h == HalfA {
		return HalfB
	}
	return HalfA
}

// keeps reports whether a point with signed plane distance side = x - z belongs to this half.
// Points on the plane belong to both halves.
func (h Half) keeps(side float32) bool {
	if h == HalfA {
		return side >= -seamEpsilon
	}
	return side <= seamEpsilon
}
