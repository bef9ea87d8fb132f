// Package palette provides the polish colour type and the channel arithmetic
// the compositing engine needs: strict hex parsing, clamping, and the
// multiply/overlay/screen blend modes used when layering a nail finish.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// hexPattern accepts exactly six hex digits with an optional leading '#'.
var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{6})$`)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" (case-insensitive, '#' optional). Anything else
// fails closed: the zero Color and false are returned.
func ParseHex(s string) (Color, bool) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return Color{}, false
	}
	c, err := colorful.Hex("#" + m[1])
	if err != nil {
		return Color{}, false
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, true
}

// MustParseHex is ParseHex for package-level literals. It panics on invalid
// input.
func MustParseHex(s string) Color {
	c, ok := ParseHex(s)
	if !ok {
		panic(fmt.Sprintf("palette: invalid hex colour %q", s))
	}
	return c
}

// Hex formats the colour as canonical upper-case "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// NRGBA returns the colour as a fully opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Colorful returns the colour in go-colorful's [0,1] float representation.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful converts back from go-colorful, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Offset adds per-channel deltas, clamping each result to [0,255].
func (c Color) Offset(dr, dg, db int) Color {
	return Color{R: ClampByte(int(c.R) + dr), G: ClampByte(int(c.G) + dg), B: ClampByte(int(c.B) + db)}
}

// Scale multiplies every channel by f, rounding and clamping the result.
func (c Color) Scale(f float64) Color {
	return Color{
		R: ClampRound(float64(c.R) * f),
		G: ClampRound(float64(c.G) * f),
		B: ClampRound(float64(c.B) * f),
	}
}

// TowardWhite moves each channel toward 255 by the fraction t.
func (c Color) TowardWhite(t float64) Color {
	return Color{
		R: ClampRound(float64(c.R) + (255-float64(c.R))*t),
		G: ClampRound(float64(c.G) + (255-float64(c.G))*t),
		B: ClampRound(float64(c.B) + (255-float64(c.B))*t),
	}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampByte restricts an integer channel value to [0,255].
func ClampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ClampRound rounds a float channel value and restricts it to [0,255]. NaN
// maps to 0.
func ClampRound(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(Clamp(math.Round(v), 0, 255))
}
