package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/nailtryon/tryon/internal/geom"
	"github.com/nailtryon/tryon/internal/hand"
	"github.com/nailtryon/tryon/internal/nails"
	"github.com/nailtryon/tryon/internal/palette"
)

var plum = palette.MustParseHex("#3D1A36")

func skinBuffer(t *testing.T, w, h int) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	skin := color.NRGBA{R: 205, G: 160, B: 130, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, skin)
		}
	}
	return img
}

func TestFinishMapping(t *testing.T) {
	tests := []struct {
		finish     Finish
		opacity    float64
		glossiness float64
	}{
		{Finish{Coats: 1, TopCoat: TopCoatGlossy}, 0.55, 0.8},
		{Finish{Coats: 2, TopCoat: TopCoatMatte}, 0.85, 0.1},
		{Finish{Coats: 3}, 0.95, 0.6},
		{Finish{Coats: 7, TopCoat: TopCoatMatte}, 0.85, 0.1},
		{Finish{}, 0.85, 0.6},
	}
	for _, tc := range tests {
		if got := tc.finish.Opacity(); got != tc.opacity {
			t.Errorf("%+v: opacity %v, want %v", tc.finish, got, tc.opacity)
		}
		if got := tc.finish.Glossiness(); got != tc.glossiness {
			t.Errorf("%+v: glossiness %v, want %v", tc.finish, got, tc.glossiness)
		}
	}
}

func TestParsePreferences(t *testing.T) {
	if ParseShape("OVAL") != ShapeOval || ParseShape("stiletto") != ShapeRound {
		t.Error("ParseShape mismatch")
	}
	if ParseLength("long") != LengthLong || ParseLength("") != LengthMedium {
		t.Error("ParseLength mismatch")
	}
	if ParseTopCoat("matte") != TopCoatMatte || ParseTopCoat("satin") != TopCoatUnspecified {
		t.Error("ParseTopCoat mismatch")
	}
	for l, want := range map[Length]float64{LengthShort: 0.8, LengthMedium: 1, LengthLong: 1.25} {
		if got := l.Multiplier(); got != want {
			t.Errorf("%v multiplier %v, want %v", l, got, want)
		}
	}
}

func layerNames(layers []Layer) []string {
	var names []string
	for _, l := range layers {
		names = append(names, l.Name)
	}
	return names
}

func TestPlanLayersMatteSingleCoat(t *testing.T) {
	frame := Frame{Box: geom.MakeBox(10, 10, 20, 40)}
	layers := PlanLayers(frame, plum, Finish{Coats: 1, TopCoat: TopCoatMatte})

	names := layerNames(layers)
	if len(names) != 3 || names[0] != "base" || names[1] != "volume" || names[2] != "texture" {
		t.Fatalf("expected base, volume, texture; got %v", names)
	}
	if got := layers[0].Alpha; math.Abs(got-0.55*0.8) > 1e-9 {
		t.Errorf("base alpha %v, want %v", got, 0.55*0.8)
	}
	if layers[0].Mode != palette.Multiply || layers[1].Mode != palette.Overlay || layers[2].Mode != palette.Overlay {
		t.Errorf("unexpected blend modes: %v %v %v", layers[0].Mode, layers[1].Mode, layers[2].Mode)
	}
}

func TestPlanLayersGlossy(t *testing.T) {
	frame := Frame{Box: geom.MakeBox(0, 0, 20, 40)}
	layers := PlanLayers(frame, plum, DefaultFinish)

	names := layerNames(layers)
	if len(names) != 4 || names[2] != "highlight" {
		t.Fatalf("expected a highlight as the third layer; got %v", names)
	}
	hl := layers[2]
	if hl.Mode != palette.Screen || hl.Alpha != 0.8 {
		t.Errorf("highlight: mode %v alpha %v", hl.Mode, hl.Alpha)
	}
	// The highlight peaks near the upper-left of the nail.
	_, peak := hl.Paint.At(geom.MakePoint(10-20*0.15, 40*0.2))
	if math.Abs(peak-0.8*0.8) > 1e-9 {
		t.Errorf("highlight peak alpha %v, want %v", peak, 0.64)
	}
	if _, edge := hl.Paint.At(geom.MakePoint(100, 100)); edge != 0 {
		t.Errorf("highlight alpha beyond the radius %v, want 0", edge)
	}
}

func TestSampleStops(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: white, Alpha: 0.4},
		{Offset: 0.5, Color: black, Alpha: 0.2},
		{Offset: 1, Color: black, Alpha: 1},
	}
	if _, a := sampleStops(stops, -1); a != 0.4 {
		t.Errorf("before first stop: alpha %v", a)
	}
	c, a := sampleStops(stops, 0.25)
	if math.Abs(a-0.3) > 1e-9 || math.Abs(c.R-0.5) > 1e-9 {
		t.Errorf("midway: colour %v alpha %v", c, a)
	}
	if _, a := sampleStops(stops, 2); a != 1 {
		t.Errorf("after last stop: alpha %v", a)
	}
}

func TestOutlineSquare(t *testing.T) {
	got := Outline(ShapeSquare, geom.MakeBox(0, 0, 100, 50), nails.Curvature{})
	want := []geom.Point{{X: 30, Y: 0}, {X: 70, Y: 0}, {X: 72.5, Y: 50}, {X: 27.5, Y: 50}}
	if len(got) != len(want) {
		t.Fatalf("expected %d vertices, got %d", len(want), len(got))
	}
	for i := range want {
		if geom.Dist(got[i], want[i]) > 1e-9 {
			t.Errorf("vertex %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOutlineCurves(t *testing.T) {
	box := geom.MakeBox(0, 0, 100, 50)
	curv := nails.Curvature{Top: 0.8, Bottom: 0.4}

	round := Outline(ShapeRound, box, curv)
	if len(round) != 2+2*curveSegments {
		t.Errorf("round: %d vertices", len(round))
	}
	if geom.Dist(round[0], geom.MakePoint(10, 0)) > 1e-9 {
		t.Errorf("round starts at %v", round[0])
	}
	// The top edge bulges above the box; the bottom edge below it.
	b := geom.Bounds(round)
	if b.Y >= 0 || b.Y+b.H <= 50 {
		t.Errorf("round bounds %+v do not bulge past the box", b)
	}

	oval := Outline(ShapeOval, box, curv)
	if len(oval) != 4*curveSegments {
		t.Errorf("oval: %d vertices", len(oval))
	}
	if geom.Dist(oval[len(oval)-1], oval[0]) < 1e-6 {
		t.Error("oval repeats its first vertex")
	}
}

func TestNailFrame(t *testing.T) {
	rec := nails.Record{X: 0.5, Y: 0.25, Width: 0.1, Height: 0.2, Rotation: 12}
	f := NailFrame(rec, 300, 400, LengthLong)
	want := geom.MakeBox(150, 100, 30, 100)
	got := f.Box
	if math.Abs(got.X-want.X)+math.Abs(got.Y-want.Y)+math.Abs(got.W-want.W)+math.Abs(got.H-want.H) > 1e-9 || f.Rotation != 12 {
		t.Errorf("frame %+v, want box %+v rotation 12", f, want)
	}
	if c := f.ToBuffer().MulPoint(f.Center()); geom.Dist(c, f.Center()) > 1e-9 {
		t.Errorf("rotation moved the pivot to %v", c)
	}
}

func TestEarClipWinding(t *testing.T) {
	// Clockwise on screen.
	poly := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	tris, err := earClip(poly)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(tris))
	}
	for _, tri := range tris {
		if cross(tri[0], tri[1], tri[2]) <= 0 {
			t.Errorf("triangle %v has negative winding", tri)
		}
	}

	if _, err := earClip(poly[:2]); err == nil {
		t.Error("expected an error for a two-vertex polygon")
	}
}

func TestCoverageMask(t *testing.T) {
	poly := []geom.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}}
	mask := coverageMask(poly, image.Rect(0, 0, 10, 10))
	for _, p := range []image.Point{{3, 3}, {5, 5}, {7, 7}, {3, 6}} {
		if a := mask.AlphaAt(p.X, p.Y).A; a < 250 {
			t.Errorf("interior pixel %v coverage %d", p, a)
		}
	}
	for _, p := range []image.Point{{0, 0}, {1, 5}, {9, 9}, {5, 8}} {
		if a := mask.AlphaAt(p.X, p.Y).A; a != 0 {
			t.Errorf("exterior pixel %v coverage %d", p, a)
		}
	}
}

func TestCoverageMaskEitherWinding(t *testing.T) {
	cw := []geom.Point{{X: 2, Y: 2}, {X: 2, Y: 8}, {X: 8, Y: 8}, {X: 8, Y: 2}}
	ccw := []geom.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}}
	a := coverageMask(cw, image.Rect(0, 0, 10, 10))
	b := coverageMask(ccw, image.Rect(0, 0, 10, 10))
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("coverage depends on outline winding")
	}
	if m := coverageMask(cw[:2], image.Rect(0, 0, 10, 10)); !bytes.Equal(m.Pix, make([]uint8, 100)) {
		t.Error("a two-vertex outline should cover nothing")
	}
}

func polygonArea(points []geom.Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

func TestTriangulate(t *testing.T) {
	const w, h = 600, 800
	for id := hand.PhotoID(1); id <= hand.NumPhotos; id++ {
		set := nails.Reference(id)
		for _, shape := range Shapes {
			for _, length := range Lengths {
				meshes, err := Triangulate(set, w, h, shape, length)
				if err != nil {
					t.Fatalf("%v %s/%s: %v", id, shape, length, err)
				}
				if len(meshes) != len(set) {
					t.Fatalf("%v: %d meshes for %d nails", id, len(meshes), len(set))
				}
				for i, m := range meshes {
					rec := set[i]
					outline := NailFrame(rec, w, h, length).BufferOutline(shape, rec.Curvature)
					if m.Finger != rec.Finger || len(m.Triangles) == 0 || len(m.Triangles) > len(outline)-2 {
						t.Fatalf("%v %v %s: %d triangles for %d vertices", id, m.Finger, shape, len(m.Triangles), len(outline))
					}

					var meshArea float64
					for _, tri := range m.Triangles {
						c := cross(tri[0], tri[1], tri[2])
						if c < 0 {
							t.Fatalf("%v %v %s: triangle %v wound backwards", id, m.Finger, shape, tri)
						}
						meshArea += c / 2
					}
					area := polygonArea(outline)
					if math.Abs(meshArea-area) > 1e-6*area {
						t.Errorf("%v %v %s/%s: mesh area %.3f, outline area %.3f", id, m.Finger, shape, length, meshArea, area)
					}

					// The filled mask covers the same region the mesh does.
					x0, y0, x1, y1 := pixelBounds(outline)
					mask := coverageMask(outline, image.Rect(x0, y0, x1, y1))
					var covered float64
					for _, a := range mask.Pix {
						covered += float64(a) / 255
					}
					if math.Abs(covered-meshArea) > 0.01*meshArea+1 {
						t.Errorf("%v %v %s/%s: mask covers %.1f px, mesh %.1f px", id, m.Finger, shape, length, covered, meshArea)
					}
				}
			}
		}
	}

	bad := nails.Default()
	bad[0].Width, bad[0].Height = 0, 0
	if _, err := Triangulate(bad, w, h, ShapeSquare, LengthMedium); err == nil {
		t.Error("expected an error for a nail with no area")
	}
}

func TestRenderNailStaysInsideOutline(t *testing.T) {
	for _, shape := range Shapes {
		t.Run(shape.String(), func(t *testing.T) {
			const w, h = 300, 400
			rec := nails.Default()[nails.Index]
			before := skinBuffer(t, w, h)
			after := skinBuffer(t, w, h)
			if err := RenderNail(after, rec, plum, DefaultFinish, shape, LengthMedium); err != nil {
				t.Fatal(err)
			}

			frame := NailFrame(rec, w, h, LengthMedium)
			outline := frame.BufferOutline(shape, rec.Curvature)
			x0, y0, x1, y1 := pixelBounds(outline)
			mask := coverageMask(outline, image.Rect(x0, y0, x1, y1).Intersect(after.Bounds()))

			changed := 0
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if before.NRGBAAt(x, y) == after.NRGBAAt(x, y) {
						continue
					}
					changed++
					if mask.AlphaAt(x, y).A == 0 {
						t.Fatalf("pixel (%d,%d) outside the outline changed", x, y)
					}
				}
			}
			if changed == 0 {
				t.Fatal("no pixels changed")
			}

			c := frame.Center()
			if before.NRGBAAt(int(c.X), int(c.Y)) == after.NRGBAAt(int(c.X), int(c.Y)) {
				t.Error("nail center was not painted")
			}
		})
	}
}

func TestRenderNailRotation(t *testing.T) {
	const w, h = 300, 400
	rec := nails.Record{X: 0.4, Y: 0.35, Width: 0.1, Height: 0.3, Rotation: 90}
	before := skinBuffer(t, w, h)
	after := skinBuffer(t, w, h)
	if err := RenderNail(after, rec, plum, DefaultFinish, ShapeSquare, LengthMedium); err != nil {
		t.Fatal(err)
	}

	var pts []geom.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if before.NRGBAAt(x, y) != after.NRGBAAt(x, y) {
				pts = append(pts, geom.MakePoint(float64(x), float64(y)))
			}
		}
	}
	b := geom.Bounds(pts)
	if b.W <= 4*b.H {
		t.Errorf("a tall nail rotated 90° should be wide; painted bounds %+v", b)
	}
}

func TestRenderSetDeterministic(t *testing.T) {
	a := skinBuffer(t, 150, 200)
	b := skinBuffer(t, 150, 200)
	finish := Finish{Coats: 3, TopCoat: TopCoatGlossy}
	if err := RenderSet(a, nails.Reference(4), plum, finish, ShapeOval, LengthShort); err != nil {
		t.Fatal(err)
	}
	if err := RenderSet(b, nails.Reference(4), plum, finish, ShapeOval, LengthShort); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("rendering is not deterministic")
	}
}

func TestRenderNailOffCanvas(t *testing.T) {
	img := skinBuffer(t, 50, 50)
	orig := append([]uint8(nil), img.Pix...)
	rec := nails.Record{X: 1, Y: 1, Width: 0.1, Height: 0.1}
	// Nudge it fully past the corner.
	rec = rec.Offset(0.5, 0.5)
	if err := RenderNail(img, rec, plum, DefaultFinish, ShapeSquare, LengthMedium); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(orig, img.Pix) {
		t.Error("off-canvas nail modified the buffer")
	}
}
