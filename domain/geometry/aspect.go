package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AspectRatio is a width:height pair such as 9:16.
type AspectRatio struct {
	X int
	Y int
}

// Fallback is used when no candidate leaves room below the viewfinder.
var Fallback = AspectRatio{X: 3, Y: 4}

// DefaultRatios lists the supported portrait ratios in preference order.
func DefaultRatios() []AspectRatio {
	return []AspectRatio{{X: 9, Y: 16}, {X: 3, Y: 4}}
}

func (r AspectRatio) String() string { return fmt.Sprintf("%d:%d", r.X, r.Y) }

// Valid reports whether both components are positive.
func (r AspectRatio) Valid() bool { return r.X > 0 && r.Y > 0 }

// Float returns X/Y, or 0 for an invalid ratio.
func (r AspectRatio) Float() float64 {
	if !r.Valid() {
		return 0
	}
	return float64(r.X) / float64(r.Y)
}

// ParseAspectRatio parses "9:16" (or "9x16").
func ParseAspectRatio(s string) (AspectRatio, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	sep := strings.IndexAny(s, ":x")
	if sep <= 0 || sep == len(s)-1 {
		return AspectRatio{}, fmt.Errorf("geometry: malformed aspect ratio %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return AspectRatio{}, fmt.Errorf("geometry: aspect ratio %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return AspectRatio{}, fmt.Errorf("geometry: aspect ratio %q: %w", s, err)
	}
	r := AspectRatio{X: x, Y: y}
	if !r.Valid() {
		return AspectRatio{}, fmt.Errorf("geometry: aspect ratio %q must be positive", s)
	}
	return r, nil
}

// ProjectedHeight is the camera height for a viewport width w: round(w*y/x).
func ProjectedHeight(w int, r AspectRatio) int {
	if !r.Valid() {
		return 0
	}
	return int(math.Round(float64(w) * (float64(r.Y) / float64(r.X))))
}

// Selection is the outcome of Select.
type Selection struct {
	Ratio        AspectRatio
	CameraHeight int
}

// Select returns the first candidate whose projected height is strictly less
// than the viewport height h, leaving room for the controls. Invalid
// candidates are skipped. When none fits, Fallback is used.
func Select(w, h int, candidates []AspectRatio) Selection {
	for _, c := range candidates {
		if !c.Valid() {
			continue
		}
		if ph := ProjectedHeight(w, c); ph < h {
			return Selection{Ratio: c, CameraHeight: ph}
		}
	}
	return Selection{Ratio: Fallback, CameraHeight: ProjectedHeight(w, Fallback)}
}
