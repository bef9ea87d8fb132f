// Package geom provides 2D geometric primitives and affine transformations:
// - 2D affine transformations (translation, rotation, scaling)
// - Bounding box operations
// - Point arithmetic and quadratic curve flattening
// - Transform composition and inversion
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// Identity returns the identity transform.
func Identity() Affine { return MakeAffine(1, 0, 0, 0, 1, 0) }

// Translate returns a pure translation by (dx, dy).
func Translate(dx, dy float64) Affine { return MakeAffine(1, 0, dx, 0, 1, dy) }

// Rotate returns a rotation about the origin by the given angle in degrees.
// Positive angles turn clockwise in y-down raster space.
func Rotate(degrees float64) Affine {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return MakeAffine(cos, -sin, 0, sin, cos, 0)
}

// RotateAbout returns a rotation by degrees about the pivot point.
func RotateAbout(pivot Point, degrees float64) Affine {
	return Translate(pivot.X, pivot.Y).Mul(Rotate(degrees)).Mul(Translate(-pivot.X, -pivot.Y))
}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Center returns the midpoint of the box.
func (b Box) Center() Point { return Point{b.X + 0.5*b.W, b.Y + 0.5*b.H} }

// Bounds returns the axis-aligned bounding box of the points. The zero Box is
// returned for an empty slice.
func Bounds(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	xmin, xmax := math.MaxFloat64, -math.MaxFloat64
	ymin, ymax := math.MaxFloat64, -math.MaxFloat64
	for _, p := range points {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	return MakeBox(xmin, ymin, xmax-xmin, ymax-ymin)
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// QuadPoints flattens the quadratic Bézier p0 -> (ctrl) -> p1 into segments
// straight pieces. The returned slice excludes p0 and ends with p1, so
// consecutive curves can be appended to a path without duplicate vertices.
func QuadPoints(p0, ctrl, p1 Point, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	out := make([]Point, 0, segments)
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments)
		mt := 1 - t
		out = append(out, Point{
			X: mt*mt*p0.X + 2*mt*t*ctrl.X + t*t*p1.X,
			Y: mt*mt*p0.Y + 2*mt*t*ctrl.Y + t*t*p1.Y,
		})
	}
	return out
}

// FillBox returns a transform that maps box b1 into b2 preserving aspect
// ratio, centered in b2. Returns an error for empty boxes.
func FillBox(b1, b2 Box) (Affine, error) {
	if b1.W <= 0 || b1.H <= 0 {
		return Affine{}, fmt.Errorf("source box must have positive width and height, got W=%v H=%v", b1.W, b1.H)
	}
	if b2.W <= 0 || b2.H <= 0 {
		return Affine{}, fmt.Errorf("destination box must have positive width and height, got W=%v H=%v", b2.W, b2.H)
	}

	sc := math.Min(b2.W/b1.W, b2.H/b1.H)
	centerDst := Translate(b2.X+0.5*b2.W, b2.Y+0.5*b2.H)
	centerSrc := Translate(-(b1.X + 0.5*b1.W), -(b1.Y + 0.5*b1.H))
	return centerDst.Mul(MakeAffine(sc, 0, 0, 0, sc, 0)).Mul(centerSrc), nil
}
