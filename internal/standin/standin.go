// Package standin synthesizes hand photographs for when the reference assets
// are not available: a plain hand for each reference skin tone, and a
// placeholder variant whose nails are painted in the chroma-key marker green.
//
// Everything is laid out on the 300×400 logical canvas and scaled to the
// requested size.
package standin

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"github.com/nailtryon/tryon/internal/geom"
	"github.com/nailtryon/tryon/internal/hand"
	"github.com/nailtryon/tryon/internal/nails"
	"github.com/nailtryon/tryon/internal/palette"
	"github.com/nailtryon/tryon/internal/render"
)

// Logical canvas size.
const (
	Width  = 300
	Height = 400
)

// kappa places cubic control points so four curves approximate an ellipse.
const kappa = 0.5522847498

// Marker greens of the placeholder nails.
var (
	markerLight     = palette.Color{R: 120, G: 230, B: 120}
	markerDark      = palette.Color{R: 30, G: 140, B: 45}
	markerHighlight = palette.Color{R: 220, G: 245, B: 220}
)

// Hand draws the stand-in hand for a reference photograph at w×h pixels.
func Hand(photo hand.PhotoID, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	base := hand.Swatch(photo)
	shadow := base.Offset(-30, -25, -20)
	highlight := base.Offset(20, 15, 15)

	// Diagonal background gradient highlight -> base -> shadow.
	sx, sy := float64(w)/Width, float64(h)/Height
	d := geom.MakePoint(Width, Height)
	l2 := geom.Dot(d, d)
	hc, bc, sc := highlight.Colorful(), base.Colorful(), shadow.Colorful()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := geom.MakePoint((float64(x)+0.5)/sx, (float64(y)+0.5)/sy)
			t := palette.Clamp(geom.Dot(p, d)/l2, 0, 1)
			var c colorful.Color
			if t < 0.5 {
				c = hc.BlendRgb(bc, t*2)
			} else {
				c = bc.BlendRgb(sc, (t-0.5)*2)
			}
			img.SetNRGBA(x, y, palette.FromColorful(c).NRGBA())
		}
	}

	scale := geom.MakeAffine(sx, 0, 0, 0, sy, 0)
	fillEllipse(img, scale, geom.MakePoint(150, 320), 80, 60, shadow.NRGBA())
	for i := 0; i < nails.NumFingers; i++ {
		cx := 100 + 25*float64(i)
		cy := 200 - 20*math.Abs(float64(i-2))
		fillEllipse(img, scale, geom.MakePoint(cx, cy), 12, 40, base.NRGBA())
	}
	return img
}

// Placeholder draws the stand-in hand with every reference nail of the
// photograph painted marker green, shaded top to bottom with a small
// highlight.
func Placeholder(photo hand.PhotoID, w, h int) *image.NRGBA {
	img := Hand(photo, w, h)
	for _, rec := range nails.Reference(photo) {
		frame := render.NailFrame(rec, w, h, render.LengthMedium)
		outline := frame.BufferOutline(render.ShapeRound, rec.Curvature)
		paintMarker(img, frame, outline)
	}
	return img
}

// fillEllipse fills an axis-aligned ellipse given in logical units.
func fillEllipse(dst *image.NRGBA, t geom.Affine, c geom.Point, rx, ry float64, col color.NRGBA) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	pt := func(x, y float64) (float32, float32) {
		p := t.MulPoint(geom.MakePoint(x, y))
		return float32(p.X), float32(p.Y)
	}
	kx, ky := rx*kappa, ry*kappa

	z.MoveTo(pt(c.X+rx, c.Y))
	cubeTo(z, pt, c.X+rx, c.Y+ky, c.X+kx, c.Y+ry, c.X, c.Y+ry)
	cubeTo(z, pt, c.X-kx, c.Y+ry, c.X-rx, c.Y+ky, c.X-rx, c.Y)
	cubeTo(z, pt, c.X-rx, c.Y-ky, c.X-kx, c.Y-ry, c.X, c.Y-ry)
	cubeTo(z, pt, c.X+kx, c.Y-ry, c.X+rx, c.Y-ky, c.X+rx, c.Y)
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

func cubeTo(z *vector.Rasterizer, pt func(x, y float64) (float32, float32), x1, y1, x2, y2, x3, y3 float64) {
	ax, ay := pt(x1, y1)
	bx, by := pt(x2, y2)
	cx, cy := pt(x3, y3)
	z.CubeTo(ax, ay, bx, by, cx, cy)
}

// paintMarker fills a nail outline with the shaded marker green.
func paintMarker(dst *image.NRGBA, frame render.Frame, outline []geom.Point) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(outline[0].X), float32(outline[0].Y))
	for _, p := range outline[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()

	// Shade in the nail's local frame so the gradient follows its rotation.
	toLocal, err := frame.ToBuffer().Inv()
	if err != nil {
		return
	}
	box := frame.Box
	spot := geom.MakePoint(box.X+box.W*0.35, box.Y+box.H*0.25)
	spotR := box.W * 0.18
	light, dark, hl := markerLight.Colorful(), markerDark.Colorful(), markerHighlight.Colorful()

	src := image.NewNRGBA(b)
	bb := geom.Bounds(outline)
	x0, y0 := max(b.Min.X, int(bb.X)-1), max(b.Min.Y, int(bb.Y)-1)
	x1, y1 := min(b.Max.X, int(bb.X+bb.W)+2), min(b.Max.Y, int(bb.Y+bb.H)+2)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := toLocal.MulPoint(geom.MakePoint(float64(x)+0.5, float64(y)+0.5))
			t := 0.0
			if box.H > 0 {
				t = palette.Clamp((p.Y-box.Y)/box.H, 0, 1)
			}
			c := light.BlendRgb(dark, t)
			if spotR > 0 {
				if d := geom.Dist(p, spot); d < spotR {
					c = c.BlendRgb(hl, 1-d/spotR)
				}
			}
			src.SetNRGBA(x, y, palette.FromColorful(c).NRGBA())
		}
	}
	z.Draw(dst, b, src, b.Min)
}

// Loader produces a stand-in photograph without any encoding round trip.
type Loader struct {
	Photo       hand.PhotoID
	Placeholder bool
	// Width and Height default to the logical canvas size.
	Width, Height int
}

// Load renders the stand-in.
func (l Loader) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := l.Width, l.Height
	if w <= 0 || h <= 0 {
		w, h = Width, Height
	}
	if l.Placeholder {
		return Placeholder(l.Photo, w, h), nil
	}
	return Hand(l.Photo, w, h), nil
}

func (l Loader) String() string {
	if l.Placeholder {
		return "standin:" + l.Photo.String() + "_tryon"
	}
	return "standin:" + l.Photo.String()
}
