// Package render draws synthesized polish onto hand images.
//
// For each nail geometry record it:
// 1. Maps the normalized record to buffer pixels and applies the length preference.
// 2. Builds the nail outline for the chosen shape in the unrotated local frame.
// 3. Rotates the outline about the nail center, triangulates it and rasterizes a coverage mask.
// 4. Composites the finish layers (base, volume gradient, highlight, texture) through the mask.
package render

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/nailtryon/tryon/internal/geom"
	"github.com/nailtryon/tryon/internal/nails"
	"github.com/nailtryon/tryon/internal/palette"
)

var renderLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("TRYON_DEBUG_RENDER") == "1" {
		renderLogger = log.New(os.Stdout, "[render] ", log.Ltime|log.Lmsgprefix)
	}
}

// highlightThreshold is the glossiness at or below which no highlight is
// drawn.
const highlightThreshold = 0.1

// Paint yields a colour and alpha for a point in the nail's local frame.
type Paint interface {
	At(p geom.Point) (colorful.Color, float64)
}

// Solid is a uniform paint.
type Solid struct {
	Color colorful.Color
	Alpha float64
}

func (s Solid) At(geom.Point) (colorful.Color, float64) { return s.Color, s.Alpha }

// Stop is a gradient colour stop.
type Stop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// LinearGradient varies along the segment From -> To; points project onto it
// and are clamped to the end stops.
type LinearGradient struct {
	From, To geom.Point
	Stops    []Stop
}

func (g LinearGradient) At(p geom.Point) (colorful.Color, float64) {
	d := g.To.Sub(g.From)
	l2 := geom.Dot(d, d)
	if l2 == 0 {
		return sampleStops(g.Stops, 0)
	}
	return sampleStops(g.Stops, geom.Dot(p.Sub(g.From), d)/l2)
}

// RadialGradient varies with distance from Center, reaching the last stop at
// Radius.
type RadialGradient struct {
	Center geom.Point
	Radius float64
	Stops  []Stop
}

func (g RadialGradient) At(p geom.Point) (colorful.Color, float64) {
	if g.Radius <= 0 {
		return sampleStops(g.Stops, 1)
	}
	return sampleStops(g.Stops, geom.Dist(p, g.Center)/g.Radius)
}

// sampleStops interpolates the stops at t; colour in non-premultiplied RGB,
// alpha linearly.
func sampleStops(stops []Stop, t float64) (colorful.Color, float64) {
	if len(stops) == 0 {
		return colorful.Color{}, 0
	}
	t = palette.Clamp(t, 0, 1)
	if t <= stops[0].Offset {
		return stops[0].Color, stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color, b.Alpha
		}
		f := (t - a.Offset) / span
		return a.Color.BlendRgb(b.Color, f), a.Alpha + (b.Alpha-a.Alpha)*f
	}
	last := stops[len(stops)-1]
	return last.Color, last.Alpha
}

// Layer is one fill over the nail's clipped region.
type Layer struct {
	Name  string
	Mode  palette.BlendMode
	Alpha float64 // applied on top of the paint's own alpha
	Paint Paint
}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// PlanLayers returns the finish layers for a nail, bottom to top. Geometry is
// expressed in the frame's local (unrotated) coordinates.
func PlanLayers(frame Frame, c palette.Color, finish Finish) []Layer {
	box := frame.Box
	cx := box.X + box.W/2
	opacity := finish.Opacity()
	base := c.Colorful()

	layers := []Layer{
		{
			Name:  "base",
			Mode:  palette.Multiply,
			Alpha: opacity * 0.8,
			Paint: Solid{Color: base, Alpha: 1},
		},
		{
			Name:  "volume",
			Mode:  palette.Overlay,
			Alpha: 0.6,
			Paint: LinearGradient{
				From: geom.MakePoint(cx-box.W/2, box.Y),
				To:   geom.MakePoint(cx+box.W/2, box.Y+box.H),
				Stops: []Stop{
					{Offset: 0, Color: white, Alpha: 0.3 * opacity},
					{Offset: 0.3, Color: white, Alpha: 0.1 * opacity},
					{Offset: 0.7, Color: base, Alpha: 1},
					{Offset: 1, Color: black, Alpha: 0.2 * opacity},
				},
			},
		},
	}

	if gloss := finish.Glossiness(); gloss > highlightThreshold {
		layers = append(layers, Layer{
			Name:  "highlight",
			Mode:  palette.Screen,
			Alpha: 0.8,
			Paint: RadialGradient{
				Center: geom.MakePoint(cx-box.W*0.15, box.Y+box.H*0.2),
				Radius: box.W * 0.6,
				Stops: []Stop{
					{Offset: 0, Color: white, Alpha: gloss * 0.8},
					{Offset: 0.4, Color: white, Alpha: gloss * 0.3},
					{Offset: 1, Color: white, Alpha: 0},
				},
			},
		})
	}

	return append(layers, Layer{
		Name:  "texture",
		Mode:  palette.Overlay,
		Alpha: 0.05,
		Paint: Solid{Color: white, Alpha: 0.02},
	})
}

// RenderNail draws one polished nail into dst. Only pixels inside the nail
// outline are read or written.
func RenderNail(dst *image.NRGBA, rec nails.Record, c palette.Color, finish Finish, shape Shape, length Length) error {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	frame := NailFrame(rec, w, h, length)
	outline := frame.BufferOutline(shape, rec.Curvature)

	// Outline coordinates are relative to the buffer origin.
	origin := dst.Bounds().Min
	x0, y0, x1, y1 := pixelBounds(outline)
	bounds := image.Rect(x0, y0, x1, y1).Add(origin).Intersect(dst.Bounds())
	if bounds.Empty() {
		renderLogger.Printf("%v: outside the %dx%d buffer, skipping", rec.Finger, w, h)
		return nil
	}

	shifted := make([]geom.Point, len(outline))
	for i, p := range outline {
		shifted[i] = p.Add(geom.MakePoint(float64(origin.X), float64(origin.Y)))
	}
	mask := coverageMask(shifted, bounds)

	toLocal, err := frame.ToBuffer().Inv()
	if err != nil {
		return fmt.Errorf("%v nail: %w", rec.Finger, err)
	}

	layers := PlanLayers(frame, c, finish)
	renderLogger.Printf("%v: %s %s, %d layers in %v", rec.Finger, shape, length, len(layers), bounds)

	var painted int
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			cov := float64(mask.AlphaAt(px, py).A) / 255
			if cov == 0 {
				continue
			}
			local := toLocal.MulPoint(geom.MakePoint(
				float64(px-origin.X)+0.5,
				float64(py-origin.Y)+0.5,
			))

			pix := dst.NRGBAAt(px, py)
			for _, l := range layers {
				col, a := l.Paint.At(local)
				pix = palette.Composite(pix, col, a*l.Alpha*cov, l.Mode)
			}
			dst.SetNRGBA(px, py, pix)
			painted++
		}
	}
	renderLogger.Printf("%v: %d pixels painted", rec.Finger, painted)
	return nil
}

// RenderSet draws every nail of the set into dst.
func RenderSet(dst *image.NRGBA, set nails.Set, c palette.Color, finish Finish, shape Shape, length Length) error {
	for _, rec := range set {
		if err := RenderNail(dst, rec, c, finish, shape, length); err != nil {
			return err
		}
	}
	return nil
}
