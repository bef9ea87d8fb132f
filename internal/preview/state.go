// Package preview holds the interactive preview's state: the selections a
// user can cycle through with the keyboard, and the view that letterboxes the
// rendered canvas into the window.
package preview

import (
	"fmt"

	"github.com/nailtryon/tryon/internal/hand"
	"github.com/nailtryon/tryon/internal/palette"
	"github.com/nailtryon/tryon/internal/render"
	"github.com/nailtryon/tryon/internal/tryon"
)

// Swatches are the polish colours reachable with the number keys 1..9.
var Swatches = []palette.Color{
	palette.MustParseHex("#C2185B"), // berry
	palette.MustParseHex("#3D1A36"), // plum
	palette.MustParseHex("#B71C1C"), // classic red
	palette.MustParseHex("#F8BBD0"), // ballet pink
	palette.MustParseHex("#D7A98C"), // nude
	palette.MustParseHex("#1A237E"), // navy
	palette.MustParseHex("#2E7D32"), // emerald
	palette.MustParseHex("#FF7043"), // coral
	palette.MustParseHex("#212121"), // black
}

// Action is a user command in the preview window.
type Action int

const (
	ActionNone Action = iota
	ActionNextPhoto
	ActionPrevPhoto
	ActionCycleShape
	ActionCycleLength
	ActionCycleCoats
	ActionToggleTopCoat
	ActionTogglePlaceholder
)

// State is everything the preview lets the user change. Each change yields a
// new try-on request.
type State struct {
	Photo       hand.PhotoID
	Placeholder bool
	Swatch      int
	Shape       render.Shape
	Length      render.Length
	Finish      render.Finish
}

// NewState starts on the given photograph with the first swatch, two glossy
// coats, round and medium.
func NewState(photo hand.PhotoID, placeholder bool) State {
	if !photo.Valid() {
		photo = 1
	}
	return State{Photo: photo, Placeholder: placeholder, Finish: render.DefaultFinish}
}

// Apply performs an action and reports whether the state changed.
func (s *State) Apply(a Action) bool {
	switch a {
	case ActionNextPhoto:
		s.Photo = s.Photo%hand.NumPhotos + 1
	case ActionPrevPhoto:
		s.Photo = (s.Photo+hand.NumPhotos-2)%hand.NumPhotos + 1
	case ActionCycleShape:
		s.Shape = cycle(render.Shapes, s.Shape)
	case ActionCycleLength:
		s.Length = cycle(render.Lengths, s.Length)
	case ActionCycleCoats:
		s.Finish.Coats = s.Finish.Coats%3 + 1
	case ActionToggleTopCoat:
		if s.Finish.TopCoat == render.TopCoatMatte {
			s.Finish.TopCoat = render.TopCoatGlossy
		} else {
			s.Finish.TopCoat = render.TopCoatMatte
		}
	case ActionTogglePlaceholder:
		s.Placeholder = !s.Placeholder
	default:
		return false
	}
	return true
}

// PickSwatch selects swatch i (0-based) and reports whether it changed.
func (s *State) PickSwatch(i int) bool {
	if i < 0 || i >= len(Swatches) || i == s.Swatch {
		return false
	}
	s.Swatch = i
	return true
}

func cycle[T comparable](all []T, cur T) T {
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Color returns the selected polish colour.
func (s State) Color() palette.Color {
	if s.Swatch < 0 || s.Swatch >= len(Swatches) {
		return Swatches[0]
	}
	return Swatches[s.Swatch]
}

// Request builds the try-on request for the state.
func (s State) Request(assets tryon.Assets) tryon.Request {
	c := s.Color()
	return tryon.Request{
		Source: assets.Source(s.Photo, s.Placeholder),
		Color:  &c,
		Finish: s.Finish,
		Shape:  s.Shape,
		Length: s.Length,
	}
}

// Title describes the state for the window title.
func (s State) Title(processing bool) string {
	path := "reference"
	if s.Placeholder {
		path = "placeholder"
	}
	title := fmt.Sprintf("Try-on %v (%s) %v %s/%s, %d coats, %s",
		s.Photo, path, s.Color(), s.Shape, s.Length, s.Finish.Coats, s.Finish.TopCoat)
	if processing {
		title += " rendering…"
	}
	return title
}
