package engine

import "math"

// Rect represents an axis-aligned rectangle in stage units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Geometry is an item's identity together with its rectangle.
// It is the payload of commit notifications.
type Geometry struct {
	ID string `json:"id"`
	Rect
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Rectangles that only share an edge are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.Right() &&
		r.Right() >= other.X &&
		r.Y <= other.Bottom() &&
		r.Bottom() >= other.Y
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.Right(), other.Right())
	maxY := max(r.Bottom(), other.Bottom())

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Translate returns the rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// RectFromPoints returns the normalized rect spanning two corner points.
func RectFromPoints(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X:      min(x1, x2),
		Y:      min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}
}

// UnionAll returns the bounding box of rects. ok is false when rects is empty.
func UnionAll(rects []Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	result := rects[0]
	for _, r := range rects[1:] {
		result = result.Union(r)
	}
	return result, true
}

// ClampToStage shrinks r to fit the stage and then shifts it inside.
// Size is never reduced below minSize unless the stage itself is smaller.
func ClampToStage(r Rect, minSize float64) Rect {
	r.Width = clamp(r.Width, min(minSize, StageWidth), StageWidth)
	r.Height = clamp(r.Height, min(minSize, StageHeight), StageHeight)
	r.X = clamp(r.X, 0, StageWidth-r.Width)
	r.Y = clamp(r.Y, 0, StageHeight-r.Height)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
