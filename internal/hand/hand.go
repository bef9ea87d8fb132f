// Package hand describes the reference hand photographs and the coarse skin
// tone model used to pick between them. The ten reference photographs are
// ordered from the lightest to the deepest skin tone.
package hand

import (
	"fmt"
	"strings"

	"github.com/nailtryon/tryon/internal/palette"
)

// PhotoID identifies one of the reference hand photographs (1..NumPhotos).
// The zero value means "no reference photograph".
type PhotoID int

// NumPhotos is the number of reference photographs.
const NumPhotos = 10

// Valid reports whether id names a reference photograph.
func (id PhotoID) Valid() bool { return id >= 1 && id <= NumPhotos }

func (id PhotoID) String() string {
	if !id.Valid() {
		return "none"
	}
	return fmt.Sprintf("hand%02d", int(id))
}

// Photos returns every reference photograph id in order.
func Photos() []PhotoID {
	ids := make([]PhotoID, NumPhotos)
	for i := range ids {
		ids[i] = PhotoID(i + 1)
	}
	return ids
}

// Depth is a three-way skin depth bucket.
type Depth int

const (
	DepthUnknown Depth = iota
	DepthLight
	DepthMedium
	DepthDark
)

func (d Depth) String() string {
	switch d {
	case DepthLight:
		return "light"
	case DepthMedium:
		return "medium"
	case DepthDark:
		return "dark"
	default:
		return "unknown"
	}
}

// ParseDepth maps "light", "medium" or "dark" (any case) to a Depth. Anything
// else is DepthUnknown.
func ParseDepth(s string) Depth {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return DepthLight
	case "medium":
		return DepthMedium
	case "dark":
		return DepthDark
	default:
		return DepthUnknown
	}
}

// Undertone is the skin undertone.
type Undertone int

const (
	UndertoneUnknown Undertone = iota
	UndertoneWarm
	UndertoneNeutral
	UndertoneCool
)

func (u Undertone) String() string {
	switch u {
	case UndertoneWarm:
		return "warm"
	case UndertoneNeutral:
		return "neutral"
	case UndertoneCool:
		return "cool"
	default:
		return "unknown"
	}
}

// ParseUndertone maps "warm", "neutral" or "cool" (any case) to an Undertone.
func ParseUndertone(s string) Undertone {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warm":
		return UndertoneWarm
	case "neutral":
		return UndertoneNeutral
	case "cool":
		return UndertoneCool
	default:
		return UndertoneUnknown
	}
}

// Tone pairs a depth bucket with an undertone.
type Tone struct {
	Depth     Depth
	Undertone Undertone
}

func (t Tone) String() string { return t.Depth.String() + "-" + t.Undertone.String() }

// clampSlider restricts a demo slider value to [0,100].
func clampSlider(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// FromSlider derives a tone from the 0 (lightest) .. 100 (deepest) demo
// slider.
func FromSlider(v int) Tone {
	v = clampSlider(v)

	var t Tone
	switch {
	case v <= 30:
		t.Depth = DepthLight
	case v <= 70:
		t.Depth = DepthMedium
	default:
		t.Depth = DepthDark
	}

	switch variation := v % 30; {
	case variation <= 10:
		t.Undertone = UndertoneWarm
	case variation <= 20:
		t.Undertone = UndertoneNeutral
	default:
		t.Undertone = UndertoneCool
	}
	return t
}

// PhotoForSlider picks the reference photograph for a slider value; the
// slider moves in steps of ten, one photograph per step.
func PhotoForSlider(v int) PhotoID {
	idx := clampSlider(v) / 10
	if idx > NumPhotos-1 {
		idx = NumPhotos - 1
	}
	return PhotoID(idx + 1)
}

// PhotoForTone approximates the reference photograph closest to a tone. An
// unknown depth maps to the middle of the range.
func PhotoForTone(t Tone) PhotoID {
	var base int
	switch t.Depth {
	case DepthLight:
		base = 1
	case DepthMedium:
		base = 4
	case DepthDark:
		base = 7
	default:
		return 5
	}
	switch t.Undertone {
	case UndertoneWarm:
		return PhotoID(base)
	case UndertoneCool:
		return PhotoID(base + 2)
	default:
		return PhotoID(base + 1)
	}
}

// swatches are the representative skin colours of the reference photographs.
var swatches = [NumPhotos]palette.Color{
	{R: 250, G: 220, B: 195},
	{R: 245, G: 210, B: 185},
	{R: 235, G: 200, B: 175},
	{R: 215, G: 180, B: 150},
	{R: 195, G: 160, B: 130},
	{R: 175, G: 140, B: 110},
	{R: 145, G: 115, B: 90},
	{R: 125, G: 95, B: 70},
	{R: 105, G: 75, B: 55},
	{R: 85, G: 60, B: 45},
}

// Swatch returns the representative skin colour of a reference photograph.
// Invalid ids use the middle of the range.
func Swatch(id PhotoID) palette.Color {
	if !id.Valid() {
		id = 5
	}
	return swatches[id-1]
}
