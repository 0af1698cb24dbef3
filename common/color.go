package common

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight alpha, each channel in [0, 1].
type Color struct {
	R, G, B, A float32
}

// ParseHexColor parses a CSS-style hex color ("#RRGGBB" or "#RGB", the leading '#' optional)
// into an opaque Color.
//
// Parameters:
//   - s: the hex string to parse
//
// Returns:
//   - Color: the parsed color
//   - error: an error if s is not a valid hex color
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("invalid color %q: expected #RGB or #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}, nil
}

// MustParseHexColor is like ParseHexColor but panics on malformed input.
// Intended for package-level color tables.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#rrggbb" representation of the color, ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// Linear converts the color to linear RGB for shading on an sRGB render target.
//
// Returns:
//   - [4]float32: linear (r, g, b) with alpha passed through
func (c Color) Linear() [4]float32 {
	r, g, b := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.LinearRgb()
	return [4]float32{float32(r), float32(g), float32(b), c.A}
}

// RGBA returns the channels as an array without conversion.
func (c Color) RGBA() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
