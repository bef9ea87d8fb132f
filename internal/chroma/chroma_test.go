package chroma

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/nailtryon/tryon/internal/palette"
	"github.com/nailtryon/tryon/internal/standin"
)

var plum = palette.MustParseHex("#3D1A36")

func TestClassify(t *testing.T) {
	tests := []struct {
		name                   string
		r, g, b                uint8
		placeholder, highlight bool
	}{
		{"marker", 40, 180, 60, true, false},
		{"dark shadow", 20, 60, 30, true, false},
		{"mid tone", 60, 120, 70, true, false},
		{"grey green", 90, 110, 95, true, false},
		{"faint tint", 200, 212, 200, true, true},
		{"white shine", 250, 252, 250, true, true},
		{"skin", 205, 160, 130, false, true},
		{"deep skin", 85, 60, 45, false, false},
		{"black", 0, 0, 0, false, false},
		{"pure blue", 10, 20, 200, false, false},
		{"neutral grey", 128, 128, 128, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(tc.r, tc.g, tc.b)
			if c.Placeholder != tc.placeholder {
				t.Errorf("placeholder = %v, want %v", c.Placeholder, tc.placeholder)
			}
			if c.Highlight != tc.highlight {
				t.Errorf("highlight = %v, want %v", c.Highlight, tc.highlight)
			}
		})
	}
}

func TestShade(t *testing.T) {
	// Shadows keep a minimum intensity.
	if got, want := Shade(plum, Class{Placeholder: true, Brightness: 0.1}), plum.Scale(0.3); got != want {
		t.Errorf("dark shade %v, want %v", got, want)
	}
	if got, want := Shade(plum, Class{Placeholder: true, Brightness: 0.5}), plum.Scale(0.5); got != want {
		t.Errorf("mid shade %v, want %v", got, want)
	}
	// Highlights blend toward white, capped.
	got := Shade(plum, Class{Placeholder: true, Highlight: true, Brightness: 1})
	want := palette.Color{
		R: uint8(math.Round(61 + (255-61)*0.95*0.6)),
		G: uint8(math.Round(26 + (255-26)*0.95*0.6)),
		B: uint8(math.Round(54 + (255-54)*0.95*0.6)),
	}
	if got != want {
		t.Errorf("highlight shade %v, want %v", got, want)
	}
}

func TestRecolorPreservesAlphaAndBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 40, G: 180, B: 60, A: 200})   // marker, translucent
	img.SetNRGBA(1, 0, color.NRGBA{R: 205, G: 160, B: 130, A: 255}) // skin
	img.SetNRGBA(2, 0, color.NRGBA{R: 40, G: 180, B: 60, A: 0})     // transparent marker
	img.SetNRGBA(3, 0, color.NRGBA{R: 20, G: 60, B: 30, A: 255})    // shadow

	stats := Recolor(img, plum)
	if stats.Pixels != 3 || stats.Placeholder != 2 {
		t.Errorf("stats %+v", stats)
	}

	if got := img.NRGBAAt(0, 0); got.A != 200 || got.G == 180 {
		t.Errorf("marker pixel %v: expected recolor with alpha 200", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 205, G: 160, B: 130, A: 255}) {
		t.Errorf("skin pixel changed to %v", got)
	}
	if got := img.NRGBAAt(2, 0); got != (color.NRGBA{R: 40, G: 180, B: 60, A: 0}) {
		t.Errorf("transparent pixel changed to %v", got)
	}
	if got, want := img.NRGBAAt(3, 0), plum.Scale(0.3).NRGBA(); got != want {
		t.Errorf("shadow pixel %v, want %v", got, want)
	}
}

// TestRecolorPlaceholderPhoto recolors the stand-in placeholder for
// photograph 5: every marker pixel takes a shade of the polish colour and
// nothing else moves.
func TestRecolorPlaceholderPhoto(t *testing.T) {
	img := standin.Placeholder(5, standin.Width, standin.Height)
	before := image.NewNRGBA(img.Bounds())
	copy(before.Pix, img.Pix)

	stats := Recolor(img, plum)
	if stats.Placeholder == 0 {
		t.Fatal("no placeholder pixels found")
	}

	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b, a := before.Pix[i], before.Pix[i+1], before.Pix[i+2], before.Pix[i+3]
		if img.Pix[i+3] != a {
			t.Fatalf("alpha changed at offset %d", i/4)
		}
		c := Classify(r, g, b)
		got := palette.Color{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
		if !c.Placeholder {
			if got != (palette.Color{R: r, G: g, B: b}) {
				t.Fatalf("background pixel at offset %d changed", i/4)
			}
			continue
		}
		if want := Shade(plum, c); got != want {
			t.Fatalf("marker pixel at offset %d is %v, want %v", i/4, got, want)
		}
	}
}

// TestRecolorStableBackground re-runs the pass over its own output: pixels
// that were not placeholders stay byte-identical.
func TestRecolorStableBackground(t *testing.T) {
	img := standin.Placeholder(8, standin.Width, standin.Height)
	Recolor(img, plum)
	once := append([]uint8(nil), img.Pix...)
	Recolor(img, plum)

	for i := 0; i < len(once); i += 4 {
		if Classify(once[i], once[i+1], once[i+2]).Placeholder {
			continue
		}
		for j := 0; j < 4; j++ {
			if img.Pix[i+j] != once[i+j] {
				t.Fatalf("non-placeholder pixel at offset %d changed on the second pass", i/4)
			}
		}
	}
}

func TestRecolorSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 40, 180, 60, 255
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	if stats := Recolor(sub, plum); stats.Placeholder != 4 {
		t.Errorf("expected 4 recolored pixels, got %d", stats.Placeholder)
	}
	if img.NRGBAAt(0, 0).G != 180 || img.NRGBAAt(3, 3).G != 180 {
		t.Error("pixels outside the sub-image changed")
	}
}
