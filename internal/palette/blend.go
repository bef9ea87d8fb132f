package palette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// BlendMode selects how a source colour combines with the backdrop before
// source-over compositing.
type BlendMode int

const (
	Normal BlendMode = iota
	Multiply
	Overlay
	Screen
)

func (m BlendMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Multiply:
		return "multiply"
	case Overlay:
		return "overlay"
	case Screen:
		return "screen"
	default:
		return "unknown"
	}
}

// blendChannel applies the separable blend function to one channel; cb is
// the backdrop and cs the source, both in [0,1].
func blendChannel(mode BlendMode, cb, cs float64) float64 {
	switch mode {
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		// Overlay is hard-light with the layers swapped.
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	default:
		return cs
	}
}

// Composite paints src with the given alpha over dst using the blend mode,
// following the canvas compositing model: the blended colour is mixed with
// the source by the backdrop alpha, then composited source-over. Alpha values
// outside [0,1] are clamped; alpha 0 leaves dst unchanged.
func Composite(dst color.NRGBA, src colorful.Color, alpha float64, mode BlendMode) color.NRGBA {
	as := Clamp(alpha, 0, 1)
	if as == 0 {
		return dst
	}
	ab := float64(dst.A) / 255
	cb := [3]float64{float64(dst.R) / 255, float64(dst.G) / 255, float64(dst.B) / 255}
	cs := [3]float64{Clamp(src.R, 0, 1), Clamp(src.G, 0, 1), Clamp(src.B, 0, 1)}

	ao := as + ab*(1-as)
	if ao == 0 {
		return color.NRGBA{}
	}

	var out [3]uint8
	for i := range cb {
		mixed := (1-ab)*cs[i] + ab*blendChannel(mode, cb[i], cs[i])
		premul := as*mixed + (1-as)*ab*cb[i]
		out[i] = ClampRound(premul / ao * 255)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: ClampRound(ao * 255)}
}
