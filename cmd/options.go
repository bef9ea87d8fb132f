package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nailtryon/tryon/internal/hand"
	"github.com/nailtryon/tryon/internal/palette"
	"github.com/nailtryon/tryon/internal/render"
	"github.com/nailtryon/tryon/internal/tryon"
)

// LookOptions holds the polish and finish flags shared by render, batch and
// looks save.
type LookOptions struct {
	Color   string
	Coats   int
	TopCoat string
	Shape   string
	Length  string
}

func (o *LookOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Color, "color", "c", "", "Polish colour as #RRGGBB")
	cmd.Flags().IntVar(&o.Coats, "coats", render.DefaultFinish.Coats, "Number of coats (1-3)")
	cmd.Flags().StringVar(&o.TopCoat, "topcoat", render.DefaultFinish.TopCoat.String(), "Top coat: glossy or matte")
	cmd.Flags().StringVar(&o.Shape, "shape", render.ShapeRound.String(), "Nail shape: round, square or oval")
	cmd.Flags().StringVar(&o.Length, "length", render.LengthMedium.String(), "Nail length: short, medium or long")
}

func (o *LookOptions) color() (palette.Color, error) {
	c, ok := palette.ParseHex(o.Color)
	if !ok {
		return palette.Color{}, fmt.Errorf("invalid colour %q, want #RRGGBB", o.Color)
	}
	return c, nil
}

func (o *LookOptions) finish() render.Finish {
	return render.Finish{Coats: o.Coats, TopCoat: render.ParseTopCoat(o.TopCoat)}
}

// SourceOptions selects the photograph a look is rendered on.
type SourceOptions struct {
	Photo       int
	Slider      int
	Placeholder bool
	Captured    string
	Depth       string
}

func (o *SourceOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.Photo, "photo", "p", 1, "Reference photograph 1 (lightest) to 10 (deepest)")
	cmd.Flags().IntVar(&o.Slider, "slider", -1, "Skin tone slider 0-100; picks the photograph instead of --photo")
	cmd.Flags().BoolVar(&o.Placeholder, "placeholder", false, "Use the chroma-key variant of the reference photograph")
	cmd.Flags().StringVar(&o.Captured, "captured", "", "Render on a captured photo (PNG, JPEG or WebP) instead of a reference")
	cmd.Flags().StringVar(&o.Depth, "depth", "", "Skin depth of a captured photo: light, medium or dark")
}

func (o *SourceOptions) photo() hand.PhotoID {
	if o.Slider >= 0 {
		return hand.PhotoForSlider(o.Slider)
	}
	return hand.PhotoID(o.Photo)
}

func (o *SourceOptions) source(a tryon.Assets) (tryon.Source, error) {
	if o.Captured != "" {
		return tryon.CapturedSource(tryon.FileLoader(o.Captured), hand.ParseDepth(o.Depth)), nil
	}
	photo := o.photo()
	if !photo.Valid() {
		return tryon.Source{}, fmt.Errorf("photo %d out of range 1-%d", int(photo), hand.NumPhotos)
	}
	return a.Source(photo, o.Placeholder), nil
}

func buildRequest(src tryon.Source, lo *LookOptions) (tryon.Request, error) {
	c, err := lo.color()
	if err != nil {
		return tryon.Request{}, err
	}
	return tryon.Request{
		Source: src,
		Color:  &c,
		Finish: lo.finish(),
		Shape:  render.ParseShape(lo.Shape),
		Length: render.ParseLength(lo.Length),
	}, nil
}
