package preview

import (
	"github.com/nailtryon/tryon/internal/geom"
)

const (
	minZoom = 0.5
	maxZoom = 8.0
)

// View manages the current view state: zoom, pan and viewport.
type View struct {
	Zoom          float64
	PanX, PanY    float64
	Width, Height int
}

// NewView creates a new view state with default values.
func NewView(width, height int) *View {
	return &View{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// SetZoom sets the zoom level, clamping to valid range.
func (vs *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		vs.Zoom = minZoom
	} else if zoom > maxZoom {
		vs.Zoom = maxZoom
	} else {
		vs.Zoom = zoom
	}
}

// SetPan sets the pan offset in framebuffer pixels.
func (vs *View) SetPan(x, y float64) {
	vs.PanX, vs.PanY = x, y
}

// SetViewport updates the viewport dimensions.
func (vs *View) SetViewport(width, height int) {
	vs.Width = width
	vs.Height = height
}

// Reset returns to the fitted, centered view.
func (vs *View) Reset() {
	vs.Zoom = 1.0
	vs.PanX, vs.PanY = 0, 0
}

// Transform computes the transform from image pixels to OpenGL NDC: the
// image is letterboxed into the viewport, then zoomed about the viewport
// center and panned.
func (vs *View) Transform(imgW, imgH int) (geom.Affine, error) {
	fit, err := geom.FillBox(
		geom.MakeBox(0, 0, float64(imgW), float64(imgH)),
		geom.MakeBox(0, 0, float64(vs.Width), float64(vs.Height)),
	)
	if err != nil {
		return geom.Affine{}, err
	}

	cx, cy := float64(vs.Width)/2.0, float64(vs.Height)/2.0
	zoom := geom.Translate(cx, cy).
		Mul(geom.MakeAffine(vs.Zoom, 0, 0, 0, vs.Zoom, 0)).
		Mul(geom.Translate(-cx, -cy))
	pan := geom.Translate(vs.PanX, vs.PanY)
	screenToNDC := geom.MakeAffine(
		2.0/float64(vs.Width), 0, -1,
		0, -2.0/float64(vs.Height), 1,
	)
	return screenToNDC.Mul(pan).Mul(zoom).Mul(fit), nil
}

// Matrix4 converts an affine transform to a column-major OpenGL 4x4 matrix.
func Matrix4(transform geom.Affine) [16]float32 {
	return [16]float32{
		float32(transform.A), float32(transform.D), 0, 0,
		float32(transform.B), float32(transform.E), 0, 0,
		0, 0, 1, 0,
		float32(transform.C), float32(transform.F), 0, 1,
	}
}
