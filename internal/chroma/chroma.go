// Package chroma recolors the marker-green nails of pre-authored placeholder
// hand photographs.
//
// Placeholder nails appear shaded, highlighted and anti-aliased, so a pixel is
// treated as marker green when any one of several overlapping rules matches.
// Matching pixels are rewritten to the polish colour; highlights are blended
// toward white and everything else is scaled by the original intensity, so the
// shading of the photograph carries over to the new colour.
package chroma

import (
	"image"
	"io"
	"log"
	"os"

	"github.com/nailtryon/tryon/internal/palette"
)

var chromaLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("TRYON_DEBUG_CHROMA") == "1" {
		chromaLogger = log.New(os.Stdout, "[chroma] ", log.Ltime|log.Lmsgprefix)
	}
}

const (
	// minIntensity keeps dark placeholder regions visibly coloured.
	minIntensity = 0.3
	maxShine     = 0.95
	shineMix     = 0.6
)

// Class is the classification of a single pixel.
type Class struct {
	Placeholder bool
	Highlight   bool
	Brightness  float64 // max channel / 255
}

// Classify inspects an opaque colour. Any one rule marks it as placeholder; the
// thresholds are tuned against the placeholder photographs.
func Classify(r, g, b uint8) Class {
	ri, gi, bi := int(r), int(g), int(b)
	total := ri + gi + bi
	maxC := max(ri, gi, bi)
	minC := min(ri, gi, bi)
	spread := maxC - minC

	var ratio float64
	if total > 0 {
		ratio = float64(gi) / float64(total)
	}
	bright := float64(maxC) / 255

	placeholder :=
		// dominant
		(gi > ri && gi > bi && gi > 70) ||
			// share of the channel sum
			(ratio > 0.38 && gi > ri+8 && gi > bi+8) ||
			// bright highlight
			(bright > 0.55 && gi > ri+12 && gi > bi+12 && gi > 100) ||
			// mid tones
			(gi > 90 && gi > ri+10 && gi > bi+10 && bright > 0.25 && bright < 0.8) ||
			// shadows
			(gi > 50 && gi > ri+8 && gi > bi+8 && bright < 0.5) ||
			// saturated
			(gi > 120 && gi-ri > 30 && gi-bi > 30) ||
			// grey-green
			(ratio > 0.42 && spread < 60 && gi > 80) ||
			// faint tint in highlights
			(bright > 0.7 && gi > ri+5 && gi > bi+5 && ratio > 0.35)

	highlight := (bright > 0.65 && spread < 90) || (bright > 0.8 && gi > ri && gi > bi)

	return Class{Placeholder: placeholder, Highlight: highlight, Brightness: bright}
}

// Shade returns the replacement colour for a placeholder pixel of the given
// class.
func Shade(target palette.Color, c Class) palette.Color {
	if c.Highlight {
		return target.TowardWhite(min(c.Brightness*1.2, maxShine) * shineMix)
	}
	return target.Scale(max(minIntensity, c.Brightness))
}

// Stats summarizes a recolor pass.
type Stats struct {
	Pixels      int // non-transparent pixels inspected
	Placeholder int // pixels rewritten
	Highlight   int // rewritten pixels treated as highlights
}

// Recolor rewrites every marker-green pixel of img to a shade of target.
// Fully transparent pixels are skipped, alpha is never modified and
// non-placeholder pixels are left byte-identical.
func Recolor(img *image.NRGBA, target palette.Color) Stats {
	var stats Stats
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			if row[i+3] == 0 {
				continue
			}
			stats.Pixels++

			c := Classify(row[i], row[i+1], row[i+2])
			if !c.Placeholder {
				continue
			}
			stats.Placeholder++
			if c.Highlight {
				stats.Highlight++
			}

			s := Shade(target, c)
			row[i], row[i+1], row[i+2] = s.R, s.G, s.B
		}
	}
	chromaLogger.Printf("recolored %d/%d pixels to %v (%d highlights)",
		stats.Placeholder, stats.Pixels, target, stats.Highlight)
	return stats
}
