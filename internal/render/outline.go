package render

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/nailtryon/tryon/internal/geom"
	"github.com/nailtryon/tryon/internal/nails"
)

// curveSegments is the number of straight pieces each quadratic edge is
// flattened into.
const curveSegments = 12

// Frame is a nail's placement in buffer pixels: the unrotated box (with the
// length preference already applied to its height) and the rotation about the
// box center.
type Frame struct {
	Box      geom.Box
	Rotation float64
}

// NailFrame converts a normalized geometry record to buffer space for a
// w×h buffer.
func NailFrame(rec nails.Record, w, h int, length Length) Frame {
	return Frame{
		Box: geom.MakeBox(
			rec.X*float64(w),
			rec.Y*float64(h),
			rec.Width*float64(w),
			rec.Height*float64(h)*length.Multiplier(),
		),
		Rotation: rec.Rotation,
	}
}

// Center returns the rotation pivot.
func (f Frame) Center() geom.Point { return f.Box.Center() }

// ToBuffer maps the local (unrotated) frame into buffer space.
func (f Frame) ToBuffer() geom.Affine {
	return geom.RotateAbout(f.Center(), f.Rotation)
}

// Outline builds the closed nail boundary in the local frame. Curves are
// flattened; the last vertex connects back to the first.
func Outline(shape Shape, box geom.Box, curv nails.Curvature) []geom.Point {
	x, y, w, h := box.X, box.Y, box.W, box.H
	cx, cy := x+w/2, y+h/2

	var path []geom.Point
	moveTo := func(px, py float64) { path = append(path, geom.MakePoint(px, py)) }
	lineTo := moveTo
	quadTo := func(qx, qy, px, py float64) {
		p0 := path[len(path)-1]
		path = append(path, geom.QuadPoints(p0, geom.MakePoint(qx, qy), geom.MakePoint(px, py), curveSegments)...)
	}

	switch shape {
	case ShapeSquare:
		top, bot := w*0.4, w*0.45
		moveTo(cx-top/2, y)
		lineTo(cx+top/2, y)
		lineTo(cx+bot/2, y+h)
		lineTo(cx-bot/2, y+h)

	case ShapeOval:
		top, bot := w*0.8, w*0.6
		moveTo(cx-top/2, y)
		quadTo(cx, y-h*0.15, cx+top/2, y)
		quadTo(cx+w*0.4, cy, cx+bot/2, y+h)
		quadTo(cx, y+h+h*0.1, cx-bot/2, y+h)
		quadTo(cx-w*0.4, cy, cx-top/2, y)
		path = path[:len(path)-1] // closes onto the first vertex

	default:
		top, bot := w*curv.Top, w*curv.Bottom
		moveTo(cx-top/2, y)
		quadTo(cx, y-h*0.1, cx+top/2, y)
		lineTo(cx+bot/2, y+h)
		quadTo(cx, y+h+h*0.05, cx-bot/2, y+h)
	}
	return path
}

// BufferOutline returns the nail boundary in buffer space.
func (f Frame) BufferOutline(shape Shape, curv nails.Curvature) []geom.Point {
	local := Outline(shape, f.Box, curv)
	t := f.ToBuffer()
	out := make([]geom.Point, len(local))
	for i, p := range local {
		out[i] = t.MulPoint(p)
	}
	return out
}

// pixelBounds returns the integer pixel rectangle covering the points.
func pixelBounds(points []geom.Point) (x0, y0, x1, y1 int) {
	b := geom.Bounds(points)
	return int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X + b.W)), int(math.Ceil(b.Y + b.H))
}

// coverageMask rasterizes the outline into an anti-aliased alpha mask covering
// bounds. Pixels of the mask outside the outline are zero, as is the whole
// mask of an outline with fewer than three vertices.
func coverageMask(outline []geom.Point, bounds image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(bounds)
	if bounds.Empty() || len(outline) < 3 {
		return mask
	}

	// The rasterizer's origin is bounds.Min.
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.MoveTo(float32(outline[0].X-ox), float32(outline[0].Y-oy))
	for _, p := range outline[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(mask, bounds, image.Opaque, image.Point{})

	renderLogger.Printf("mask %v: %d vertices", bounds, len(outline))
	return mask
}
