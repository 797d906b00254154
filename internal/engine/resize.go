package engine

import "math"

// Handle identifies one of the eight resize affordances of a rect.
type Handle uint8

const (
	HandleNone Handle = iota
	HandleLeft
	HandleRight
	HandleTop
	HandleBottom
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

// Handles lists every resize handle in hit-test order: corners first so they
// win over the edges they overlap.
var Handles = []Handle{
	HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight,
	HandleLeft, HandleRight, HandleTop, HandleBottom,
}

var handleNames = [...]string{
	HandleNone:        "",
	HandleLeft:        "left",
	HandleRight:       "right",
	HandleTop:         "top",
	HandleBottom:      "bottom",
	HandleTopLeft:     "top-left",
	HandleTopRight:    "top-right",
	HandleBottomLeft:  "bottom-left",
	HandleBottomRight: "bottom-right",
}

func (h Handle) String() string {
	if int(h) < len(handleNames) {
		return handleNames[h]
	}
	return ""
}

// ParseHandle converts a handle name such as "top-left" to a Handle.
func ParseHandle(s string) (Handle, bool) {
	for i, name := range handleNames {
		if name != "" && name == s {
			return Handle(i), true
		}
	}
	return HandleNone, false
}

// xSign is -1 when h moves the left edge, +1 for the right edge, 0 otherwise.
func (h Handle) xSign() float64 {
	switch h {
	case HandleLeft, HandleTopLeft, HandleBottomLeft:
		return -1
	case HandleRight, HandleTopRight, HandleBottomRight:
		return 1
	}
	return 0
}

// ySign is -1 when h moves the top edge, +1 for the bottom edge, 0 otherwise.
func (h Handle) ySign() float64 {
	switch h {
	case HandleTop, HandleTopLeft, HandleTopRight:
		return -1
	case HandleBottom, HandleBottomLeft, HandleBottomRight:
		return 1
	}
	return 0
}

// IsCorner reports whether h scales both axes.
func (h Handle) IsCorner() bool {
	return h.xSign() != 0 && h.ySign() != 0
}

// Point returns the stage position of h on r.
func (h Handle) Point(r Rect) (float64, float64) {
	cx, cy := r.Center()
	x := cx + h.xSign()*r.Width/2
	y := cy + h.ySign()*r.Height/2
	return x, y
}

// ProposeResize computes the geometric resize of start for a pointer delta,
// in stage units, on handle h. Edge handles move one edge against a fixed
// opposite edge; corner handles scale uniformly around the center.
func ProposeResize(start Rect, h Handle, dx, dy, minSize float64) Rect {
	if h.IsCorner() {
		cx, cy := start.Center()
		s := cornerScale(start, h, dx, dy)
		s = clamp(s, minScale(start, minSize), maxCenteredScale(start, cx, cy))
		w, ht := start.Width*s, start.Height*s
		return ClampToStage(Rect{X: cx - w/2, Y: cy - ht/2, Width: w, Height: ht}, minSize)
	}

	r := start
	switch h {
	case HandleRight:
		r.Width = clamp(start.Width+dx, minSize, StageWidth-start.X)
	case HandleLeft:
		right := start.Right()
		r.Width = clamp(start.Width-dx, minSize, right)
		r.X = right - r.Width
	case HandleBottom:
		r.Height = clamp(start.Height+dy, minSize, StageHeight-start.Y)
	case HandleTop:
		bottom := start.Bottom()
		r.Height = clamp(start.Height-dy, minSize, bottom)
		r.Y = bottom - r.Height
	}
	return ClampToStage(r, minSize)
}

// axisScale is the scale implied by moving one side of an extent by delta
// while the opposite side mirrors it around the center.
func axisScale(extent, sign, delta float64) float64 {
	if extent <= 0 || sign == 0 {
		return 1
	}
	return (extent + 2*sign*delta) / extent
}

// cornerScale picks the axis with the larger change as the driving scale.
func cornerScale(r Rect, h Handle, dx, dy float64) float64 {
	sx := axisScale(r.Width, h.xSign(), dx)
	sy := axisScale(r.Height, h.ySign(), dy)
	if math.Abs(sy-1) > math.Abs(sx-1) {
		return sy
	}
	return sx
}

// minScale is the smallest uniform scale keeping r at least minSize wide and high.
func minScale(r Rect, minSize float64) float64 {
	s := 0.0
	if r.Width > 0 {
		s = max(s, minSize/r.Width)
	}
	if r.Height > 0 {
		s = max(s, minSize/r.Height)
	}
	return s
}

// maxCenteredScale is the largest uniform scale keeping r, scaled around
// (cx, cy), inside the stage.
func maxCenteredScale(r Rect, cx, cy float64) float64 {
	return min(maxAxisScale(r.Width, cx, StageWidth), maxAxisScale(r.Height, cy, StageHeight))
}

func maxAxisScale(extent, center, limit float64) float64 {
	if extent <= 0 {
		return math.Inf(1)
	}
	return 2 * min(center, limit-center) / extent
}

// GroupScale computes the scale factors for resizing the group box of items
// with handle h. Corner handles scale uniformly, edge handles scale one axis.
// Scales are bounded so the group stays inside the stage and no item shrinks
// below minSize; items already below minSize only block further shrinking.
func GroupScale(group Rect, items []Rect, h Handle, dx, dy, minSize float64) (sx, sy float64) {
	cx, cy := group.Center()
	var loX, loY float64
	for _, r := range items {
		if r.Width > 0 {
			loX = max(loX, minSize/r.Width)
		}
		if r.Height > 0 {
			loY = max(loY, minSize/r.Height)
		}
	}
	loX, loY = min(loX, 1), min(loY, 1)
	hiX := max(maxAxisScale(group.Width, cx, StageWidth), 1)
	hiY := max(maxAxisScale(group.Height, cy, StageHeight), 1)

	switch {
	case h.IsCorner():
		s := cornerScale(group, h, dx, dy)
		s = clamp(s, max(loX, loY), min(hiX, hiY))
		return s, s
	case h.xSign() != 0:
		return clamp(axisScale(group.Width, h.xSign(), dx), loX, hiX), 1
	case h.ySign() != 0:
		return 1, clamp(axisScale(group.Height, h.ySign(), dy), loY, hiY)
	}
	return 1, 1
}

// ScaleAround scales every rect about the point (cx, cy): each center moves
// to c + (center - c) * s and each size is multiplied by s. Results are
// clamped to the stage and minSize.
func ScaleAround(items []Rect, cx, cy, sx, sy, minSize float64) []Rect {
	out := make([]Rect, len(items))
	for i, r := range items {
		icx, icy := r.Center()
		w, h := r.Width*sx, r.Height*sy
		ncx := cx + (icx-cx)*sx
		ncy := cy + (icy-cy)*sy
		out[i] = ClampToStage(Rect{X: ncx - w/2, Y: ncy - h/2, Width: w, Height: h}, minSize)
	}
	return out
}
