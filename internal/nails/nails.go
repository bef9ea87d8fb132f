// Package nails holds the nail placement geometry for the reference hand
// photographs. Every geometry set has exactly one record per finger, in
// normalized canvas coordinates (0..1 of the canvas width/height, top-left
// origin). Sets are read-only once constructed.
package nails

import (
	"errors"
	"fmt"
	"math"

	"github.com/nailtryon/tryon/internal/hand"
)

// ErrInvalidSet is returned when a geometry set violates its invariants.
var ErrInvalidSet = errors.New("invalid nail geometry set")

// Finger names one of the five fingers of a hand.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
)

// NumFingers is the number of records in every geometry set.
const NumFingers = 5

var fingerNames = [NumFingers]string{"thumb", "index", "middle", "ring", "pinky"}

func (f Finger) String() string {
	if f < 0 || int(f) >= NumFingers {
		return "unknown"
	}
	return fingerNames[f]
}

// ParseFinger maps a finger name to a Finger.
func ParseFinger(name string) (Finger, bool) {
	for i, n := range fingerNames {
		if n == name {
			return Finger(i), true
		}
	}
	return 0, false
}

// Curvature holds the roundness factors of the nail's top and bottom edges.
type Curvature struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Record places a single nail. X and Y are the top-left corner of the nail's
// unrotated bounding box; Rotation is in degrees about the box's center.
type Record struct {
	Finger    Finger
	X, Y      float64
	Width     float64
	Height    float64
	Rotation  float64
	Curvature Curvature
}

// Offset returns a copy of the record translated by (dx, dy).
func (r Record) Offset(dx, dy float64) Record {
	r.X += dx
	r.Y += dy
	return r
}

// Set is an ordered geometry set, indexed by Finger.
type Set [NumFingers]Record

// Validate checks the set invariants: one record per finger in finger order,
// position and size in [0,1], curvature in [0,1] and a finite rotation.
func (s Set) Validate() error {
	for i, r := range s {
		if r.Finger != Finger(i) {
			return fmt.Errorf("%w: record %d is %v, want %v", ErrInvalidSet, i, r.Finger, Finger(i))
		}
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"x", r.X}, {"y", r.Y}, {"width", r.Width}, {"height", r.Height},
			{"curvature.top", r.Curvature.Top}, {"curvature.bottom", r.Curvature.Bottom},
		} {
			if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
				return fmt.Errorf("%w: %v %s = %v outside [0,1]", ErrInvalidSet, r.Finger, f.name, f.v)
			}
		}
		if math.IsNaN(r.Rotation) || math.IsInf(r.Rotation, 0) {
			return fmt.Errorf("%w: %v rotation is not finite", ErrInvalidSet, r.Finger)
		}
	}
	return nil
}

// Adaptive derives geometry for a photograph outside the reference set by
// nudging every record of base according to the skin depth bucket. Light
// shifts up-left, dark shifts down-right; medium and unknown depths return
// base unchanged.
func Adaptive(base Set, depth hand.Depth) Set {
	var dx, dy float64
	switch depth {
	case hand.DepthLight:
		dx, dy = -0.01, -0.005
	case hand.DepthDark:
		dx, dy = 0.005, 0.01
	default:
		return base
	}

	out := base
	for i := range out {
		out[i] = out[i].Offset(dx, dy)
	}
	return out
}

// Table resolves geometry sets for reference photographs, preferring loaded
// overrides over the built-in sets.
type Table struct {
	overrides map[hand.PhotoID]Set
}

// NewTable returns a table with the given overrides. Overrides are copied.
func NewTable(overrides map[hand.PhotoID]Set) *Table {
	t := &Table{overrides: make(map[hand.PhotoID]Set, len(overrides))}
	for id, s := range overrides {
		t.overrides[id] = s
	}
	return t
}

// For returns the geometry set of a reference photograph. Ids without a set
// resolve to the default set.
func (t *Table) For(id hand.PhotoID) Set {
	if t != nil {
		if s, ok := t.overrides[id]; ok {
			return s
		}
	}
	return Reference(id)
}
