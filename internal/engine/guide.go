package engine

import (
	"encoding/json"
	"math"
)

// GuideKind identifies the visual form of a Guide.
type GuideKind uint8

const (
	GuideVertical   GuideKind = iota // alignment line at x = Pos
	GuideHorizontal                  // alignment line at y = Pos
	GuideGapX                        // horizontal gap between Start and End, drawn at y = Pos
	GuideGapY                        // vertical gap between Start and End, drawn at x = Pos
)

var guideKindNames = [...]string{
	GuideVertical:   "vertical",
	GuideHorizontal: "horizontal",
	GuideGapX:       "gap-x",
	GuideGapY:       "gap-y",
}

func (k GuideKind) String() string {
	if int(k) < len(guideKindNames) {
		return guideKindNames[k]
	}
	return "unknown"
}

// MarshalJSON encodes the kind by name.
func (k GuideKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Guide is a transient visual hint produced while a gesture is active.
type Guide struct {
	Kind GuideKind `json:"kind"`
	// Pos is the x of a vertical line, the y of a horizontal line, or the
	// cross-axis coordinate a gap indicator is drawn at.
	Pos float64 `json:"pos"`
	// Start and End bound the guide along its own axis. For gap indicators
	// they are the two facing edges.
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	// Distance is the gap size in stage units. Zero for alignment lines.
	Distance float64 `json:"distance,omitempty"`
}

// IsLine reports whether g is an alignment line rather than a gap indicator.
func (g Guide) IsLine() bool {
	return g.Kind == GuideVertical || g.Kind == GuideHorizontal
}

func verticalGuide(x float64, a, b Rect) Guide {
	return Guide{
		Kind:  GuideVertical,
		Pos:   x,
		Start: min(a.Y, b.Y),
		End:   max(a.Bottom(), b.Bottom()),
	}
}

func horizontalGuide(y float64, a, b Rect) Guide {
	return Guide{
		Kind:  GuideHorizontal,
		Pos:   y,
		Start: min(a.X, b.X),
		End:   max(a.Right(), b.Right()),
	}
}

const guideEpsilon = 1e-9

func hasLine(guides []Guide, kind GuideKind, pos float64) bool {
	for _, g := range guides {
		if g.Kind == kind && math.Abs(g.Pos-pos) < guideEpsilon {
			return true
		}
	}
	return false
}
