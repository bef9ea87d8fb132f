package tryon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Decoders for captured and asset photographs.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/nailtryon/tryon/internal/hand"
	"github.com/nailtryon/tryon/internal/nails"
	"github.com/nailtryon/tryon/internal/standin"
)

// Loader produces the pixels of a source photograph. Loading is the only
// step of a render that may block.
type Loader interface {
	Load(ctx context.Context) (image.Image, error)
}

// FileLoader decodes a PNG, JPEG or WebP file.
type FileLoader string

func (f FileLoader) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(string(f))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(string(f)), err)
	}
	return img, nil
}

func (f FileLoader) String() string { return string(f) }

// BytesLoader decodes an encoded image held in memory, e.g. a camera capture.
type BytesLoader []byte

func (b BytesLoader) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	return img, err
}

// SourceKind tells the compositor which path a source takes.
type SourceKind int

const (
	// Captured is an arbitrary photograph; nails are synthesized on adaptive
	// geometry.
	Captured SourceKind = iota
	// Reference is a plain reference photograph; nails are synthesized on its
	// recorded geometry.
	Reference
	// Placeholder is a reference photograph with marker-green nails; they are
	// recolored in place.
	Placeholder
)

func (k SourceKind) String() string {
	switch k {
	case Reference:
		return "reference"
	case Placeholder:
		return "placeholder"
	default:
		return "captured"
	}
}

// Source is the photograph a render starts from. Its kind is decided once,
// when the source is built, never by inspecting pixels.
type Source struct {
	Kind  SourceKind
	Photo hand.PhotoID // Reference and Placeholder
	Depth hand.Depth   // Captured
	Image Loader
}

// CapturedSource wraps a user photograph of the given skin depth.
func CapturedSource(img Loader, depth hand.Depth) Source {
	return Source{Kind: Captured, Depth: depth, Image: img}
}

// ReferenceSource wraps a plain reference photograph.
func ReferenceSource(photo hand.PhotoID, img Loader) Source {
	return Source{Kind: Reference, Photo: photo, Image: img}
}

// PlaceholderSource wraps a marker-green reference photograph.
func PlaceholderSource(photo hand.PhotoID, img Loader) Source {
	return Source{Kind: Placeholder, Photo: photo, Image: img}
}

// Path is the compositing path for a source.
type Path int

const (
	PathShape Path = iota
	PathRecolor
)

func (p Path) String() string {
	if p == PathRecolor {
		return "recolor"
	}
	return "shape"
}

// resolved returns the effective kind: sources naming no valid photograph
// are treated as captured.
func (s Source) resolved() SourceKind {
	if s.Kind != Captured && !s.Photo.Valid() {
		return Captured
	}
	return s.Kind
}

// Path reports which compositing path the source takes.
func (s Source) Path() Path {
	if s.resolved() == Placeholder {
		return PathRecolor
	}
	return PathShape
}

// Geometry resolves the nail geometry for the shape path. Table overrides
// apply to reference photographs only; captured photos always derive from
// the default set.
func (s Source) Geometry(table *nails.Table) nails.Set {
	if s.resolved() == Captured {
		return nails.Adaptive(nails.Default(), s.Depth)
	}
	return table.For(s.Photo)
}

func (s Source) String() string {
	var name string
	if st, ok := s.Image.(fmt.Stringer); ok {
		name = st.String()
	}
	switch s.resolved() {
	case Captured:
		return fmt.Sprintf("captured(%s, %s)", s.Depth, name)
	default:
		return fmt.Sprintf("%s(%s, %s)", s.Kind, s.Photo, name)
	}
}

// Assets locates the reference photographs in a directory, named
// hand01.png..hand10.png with marker-green variants hand01_tryon.png..
// hand10_tryon.png. Missing files fall back to synthesized stand-ins.
type Assets struct {
	Dir string
}

// Filename returns the asset name of a photograph.
func Filename(photo hand.PhotoID, placeholder bool) string {
	if placeholder {
		return photo.String() + "_tryon.png"
	}
	return photo.String() + ".png"
}

// Source builds the source for a reference photograph.
func (a Assets) Source(photo hand.PhotoID, placeholder bool) Source {
	var img Loader = standin.Loader{Photo: photo, Placeholder: placeholder}
	if a.Dir != "" {
		path := filepath.Join(a.Dir, Filename(photo, placeholder))
		if _, err := os.Stat(path); err == nil {
			img = FileLoader(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			sessionLogger.Printf("WARNING: %s: %v, using a stand-in", path, err)
		}
	}
	if placeholder {
		return PlaceholderSource(photo, img)
	}
	return ReferenceSource(photo, img)
}
