// Package tryon orchestrates a virtual try-on render: it loads the source
// photograph onto a fresh canvas, picks the compositing path for the source
// and applies it, and tracks whether a render is in progress.
package tryon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"

	"github.com/nailtryon/tryon/internal/chroma"
	"github.com/nailtryon/tryon/internal/nails"
	"github.com/nailtryon/tryon/internal/palette"
	"github.com/nailtryon/tryon/internal/render"
)

// Logical canvas size; the pixel size is this times the device scale.
const (
	CanvasWidth  = 300
	CanvasHeight = 400
)

// Supported device scale factors.
const (
	MinScale = 1.0
	MaxScale = 4.0
)

var (
	ErrNoSource   = errors.New("no source image")
	ErrNoColor    = errors.New("no polish colour selected")
	ErrDecode     = errors.New("image decode failed")
	ErrSuperseded = errors.New("request superseded")
)

// Request is everything a render depends on.
type Request struct {
	Source Source
	Color  *palette.Color
	Finish render.Finish
	Shape  render.Shape
	Length render.Length
}

func (r Request) validate() error {
	if r.Source.Image == nil {
		return ErrNoSource
	}
	if r.Color == nil {
		return ErrNoColor
	}
	return nil
}

// Result is a finished render. The image is owned by the caller.
type Result struct {
	Image    *image.NRGBA
	Path     Path
	Geometry nails.Set   // shape path only
	Recolor  chroma.Stats // recolor path only
}

// Compositor renders requests. It is safe for concurrent use; every render
// allocates its own canvas.
type Compositor struct {
	table      *nails.Table
	scale      float64
	processing atomic.Int32
}

// NewCompositor returns a compositor using the given geometry table and
// device scale factor. A nil table uses the built-in sets; a scale that is
// not finite falls back to 1, others are clamped to [MinScale, MaxScale].
func NewCompositor(table *nails.Table, scale float64) *Compositor {
	if table == nil {
		table = nails.NewTable(nil)
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &Compositor{table: table, scale: palette.Clamp(scale, MinScale, MaxScale)}
}

// Geometry returns the nail geometry the source resolves to, whichever path
// it takes.
func (c *Compositor) Geometry(src Source) nails.Set {
	return src.Geometry(c.table)
}

// CanvasSize returns the canvas size in pixels.
func (c *Compositor) CanvasSize() (w, h int) {
	return int(math.Round(CanvasWidth * c.scale)), int(math.Round(CanvasHeight * c.scale))
}

// Processing reports whether any render is between decode start and the end
// of drawing.
func (c *Compositor) Processing() bool { return c.processing.Load() > 0 }

// Decode loads the source photograph and stretches it over a fresh
// transparent canvas.
func (c *Compositor) Decode(ctx context.Context, src Source) (*image.NRGBA, error) {
	if src.Image == nil {
		return nil, ErrNoSource
	}
	img, err := src.Image.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := c.CanvasSize()
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return canvas, nil
}

// Compose applies the source's compositing path to buf. It runs to
// completion without suspending.
func (c *Compositor) Compose(buf *image.NRGBA, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	res := &Result{Image: buf, Path: req.Source.Path()}
	switch res.Path {
	case PathRecolor:
		res.Recolor = chroma.Recolor(buf, *req.Color)
	default:
		res.Geometry = req.Source.Geometry(c.table)
		if err := render.RenderSet(buf, res.Geometry, *req.Color, req.Finish, req.Shape, req.Length); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Render decodes and composes a request. On any failure no image is
// returned.
func (c *Compositor) Render(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	c.processing.Add(1)
	defer c.processing.Add(-1)

	buf, err := c.Decode(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	return c.Compose(buf, req)
}

// EncodePNG encodes a render for export or sharing.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportName is the file name used when sharing a look.
const ExportName = "nail-look.png"
