package render

import "strings"

// Shape is the nail outline preference.
type Shape int

const (
	ShapeRound Shape = iota
	ShapeSquare
	ShapeOval
)

// Shapes lists every outline in cycling order.
var Shapes = []Shape{ShapeRound, ShapeSquare, ShapeOval}

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeOval:
		return "oval"
	default:
		return "round"
	}
}

// ParseShape maps a shape name to a Shape; unknown names are round.
func ParseShape(s string) Shape {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return ShapeSquare
	case "oval":
		return ShapeOval
	default:
		return ShapeRound
	}
}

// Length is the nail length preference. The zero value is medium.
type Length int

const (
	LengthMedium Length = iota
	LengthShort
	LengthLong
)

// Lengths lists every length in cycling order.
var Lengths = []Length{LengthShort, LengthMedium, LengthLong}

func (l Length) String() string {
	switch l {
	case LengthShort:
		return "short"
	case LengthLong:
		return "long"
	default:
		return "medium"
	}
}

// ParseLength maps a length name to a Length; unknown names are medium.
func ParseLength(s string) Length {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return LengthShort
	case "long":
		return LengthLong
	default:
		return LengthMedium
	}
}

// Multiplier is the factor applied to a nail's height.
func (l Length) Multiplier() float64 {
	switch l {
	case LengthShort:
		return 0.8
	case LengthLong:
		return 1.25
	default:
		return 1.0
	}
}

// TopCoat is the top-coat style. The zero value is unspecified, which renders
// between glossy and matte.
type TopCoat int

const (
	TopCoatUnspecified TopCoat = iota
	TopCoatGlossy
	TopCoatMatte
)

func (t TopCoat) String() string {
	switch t {
	case TopCoatGlossy:
		return "glossy"
	case TopCoatMatte:
		return "matte"
	default:
		return "unspecified"
	}
}

// ParseTopCoat maps "glossy" or "matte" to a TopCoat.
func ParseTopCoat(s string) TopCoat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "glossy":
		return TopCoatGlossy
	case "matte":
		return TopCoatMatte
	default:
		return TopCoatUnspecified
	}
}

// Finish holds the cosmetic polish parameters.
type Finish struct {
	Coats   int
	TopCoat TopCoat
}

// DefaultFinish is two coats with a glossy top coat.
var DefaultFinish = Finish{Coats: 2, TopCoat: TopCoatGlossy}

// Opacity maps the coat count to the polish opacity. Counts outside 1..3
// behave as two coats.
func (f Finish) Opacity() float64 {
	switch f.Coats {
	case 1:
		return 0.55
	case 3:
		return 0.95
	default:
		return 0.85
	}
}

// Glossiness maps the top coat to the highlight intensity.
func (f Finish) Glossiness() float64 {
	switch f.TopCoat {
	case TopCoatGlossy:
		return 0.8
	case TopCoatMatte:
		return 0.1
	default:
		return 0.6
	}
}
