package palette

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#3D1A36", Color{61, 26, 54}, true},
		{"3d1a36", Color{61, 26, 54}, true},
		{"#ffffff", Color{255, 255, 255}, true},
		{"#000000", Color{0, 0, 0}, true},
		{"", Color{}, false},
		{"#fff", Color{}, false},
		{"##3D1A36", Color{}, false},
		{"#3D1A3", Color{}, false},
		{"#3D1A366", Color{}, false},
		{"#GG0000", Color{}, false},
		{" #3D1A36", Color{}, false},
		{"rgb(1,2,3)", Color{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseHex(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Errorf("ParseHex(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	// Sweep each channel independently; formatting then parsing (in either
	// case, with or without '#') must be lossless.
	for v := 0; v < 256; v++ {
		for _, c := range []Color{{uint8(v), 0, 0}, {0, uint8(v), 0}, {0, 0, uint8(v)}, {uint8(v), uint8(255 - v), uint8(v / 2)}} {
			h := c.Hex()
			for _, s := range []string{h, strings.ToLower(h), strings.TrimPrefix(h, "#")} {
				got, ok := ParseHex(s)
				if !ok || got != c {
					t.Fatalf("ParseHex(%q) = %v, %v; want %v", s, got, ok, c)
				}
			}
		}
	}
}

func TestClampHelpers(t *testing.T) {
	if ClampByte(-4) != 0 || ClampByte(300) != 255 || ClampByte(17) != 17 {
		t.Error("ClampByte does not clamp to [0,255]")
	}
	if ClampRound(255.6) != 255 || ClampRound(-0.4) != 0 || ClampRound(12.5) != 13 {
		t.Error("ClampRound does not round and clamp")
	}

	c := Color{250, 5, 128}
	if got := c.Offset(20, -30, 0); got != (Color{255, 0, 128}) {
		t.Errorf("Offset did not clamp: %v", got)
	}
	if got := c.Scale(2); got != (Color{255, 10, 255}) {
		t.Errorf("Scale did not clamp: %v", got)
	}
	if got := (Color{0, 100, 255}).TowardWhite(0.5); got != (Color{128, 178, 255}) {
		t.Errorf("TowardWhite mismatch: %v", got)
	}
}

func TestComposite(t *testing.T) {
	dst := color.NRGBA{R: 201, G: 100, B: 50, A: 255}
	red := colorful.Color{R: 1, G: 0, B: 0}

	if got := Composite(dst, red, 0, Multiply); got != dst {
		t.Errorf("zero alpha should not change dst, got %v", got)
	}

	// Full-alpha multiply with white is a no-op.
	if got := Composite(dst, colorful.Color{R: 1, G: 1, B: 1}, 1, Multiply); got != dst {
		t.Errorf("multiply by white changed dst: %v", got)
	}

	// Full-alpha screen with black is a no-op.
	if got := Composite(dst, colorful.Color{}, 1, Screen); got != dst {
		t.Errorf("screen with black changed dst: %v", got)
	}

	// Half-alpha normal blend lands halfway.
	got := Composite(dst, red, 0.5, Normal)
	want := color.NRGBA{R: 228, G: 50, B: 25, A: 255}
	if got != want {
		t.Errorf("normal blend: got %v, want %v", got, want)
	}

	// Compositing onto a transparent pixel yields the source at that alpha.
	got = Composite(color.NRGBA{}, red, 0.5, Overlay)
	if got.R != 255 || got.G != 0 || got.A != 128 {
		t.Errorf("onto transparent: got %v", got)
	}
}

func ExampleParseHex() {
	c, ok := ParseHex("#7d2638")
	fmt.Println(c.R, c.G, c.B, ok, c.Hex())
	_, ok = ParseHex("7d263")
	fmt.Println(ok)
	// Output:
	// 125 38 56 true #7D2638
	// false
}
