package nails

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nailtryon/tryon/internal/hand"
)

// LoadSets reads geometry overrides from a JSON document keyed by photograph
// number:
//
//	{"3": [{"x": 0.27, "y": 0.285, "width": 0.077, "height": 0.123,
//	        "rotation": -18, "name": "thumb",
//	        "curvature": {"top": 0.77, "bottom": 0.35}}, ...]}
//
// Records may appear in any order but each set needs exactly one record per
// finger. Every set is validated before it is returned.
func LoadSets(r io.Reader) (map[hand.PhotoID]Set, error) {
	type rawRecord struct {
		X         float64   `json:"x"`
		Y         float64   `json:"y"`
		Width     float64   `json:"width"`
		Height    float64   `json:"height"`
		Rotation  float64   `json:"rotation"`
		Name      string    `json:"name"`
		Curvature Curvature `json:"curvature"`
	}

	convertRawSet := func(raw []rawRecord) (Set, error) {
		var s Set
		if len(raw) != NumFingers {
			return s, fmt.Errorf("%w: %d records, want %d", ErrInvalidSet, len(raw), NumFingers)
		}
		var seen [NumFingers]bool
		for _, rr := range raw {
			f, ok := ParseFinger(rr.Name)
			if !ok {
				return s, fmt.Errorf("%w: unknown finger %q", ErrInvalidSet, rr.Name)
			}
			if seen[f] {
				return s, fmt.Errorf("%w: duplicate finger %q", ErrInvalidSet, rr.Name)
			}
			seen[f] = true
			s[f] = Record{
				Finger:    f,
				X:         rr.X,
				Y:         rr.Y,
				Width:     rr.Width,
				Height:    rr.Height,
				Rotation:  rr.Rotation,
				Curvature: rr.Curvature,
			}
		}
		return s, s.Validate()
	}

	var rawLib map[string][]rawRecord
	if err := json.NewDecoder(r).Decode(&rawLib); err != nil {
		return nil, fmt.Errorf("decoding geometry sets: %w", err)
	}

	sets := make(map[hand.PhotoID]Set, len(rawLib))
	for k, raw := range rawLib {
		n, err := strconv.Atoi(k)
		if err != nil || !hand.PhotoID(n).Valid() {
			return nil, fmt.Errorf("%w: unknown photograph %q", ErrInvalidSet, k)
		}
		s, err := convertRawSet(raw)
		if err != nil {
			return nil, fmt.Errorf("photograph %s: %w", k, err)
		}
		sets[hand.PhotoID(n)] = s
	}
	return sets, nil
}

// LoadTable builds a Table from the overrides file at path. An empty path
// yields a table with only the built-in sets.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return NewTable(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets, err := LoadSets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewTable(sets), nil
}
