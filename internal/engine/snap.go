package engine

import (
	"math"
	"slices"
)

// SnapOptions parameterizes the snapping functions.
type SnapOptions struct {
	// Threshold is the maximum distance, in stage units, at which a line snaps.
	Threshold float64
	// Enabled gates value alteration. When false the input delta or rect is
	// returned unchanged but guides are still reported.
	Enabled bool
}

func (s Settings) snapOptions() SnapOptions {
	return SnapOptions{Threshold: s.SnapThreshold, Enabled: s.SnapEnabled}
}

// lines holds the start, center and end coordinates of a rect on one axis.
type lines [3]float64

func xLines(r Rect) lines { return lines{r.X, r.X + r.Width/2, r.Right()} }
func yLines(r Rect) lines { return lines{r.Y, r.Y + r.Height/2, r.Bottom()} }

type snapHit struct {
	ok     bool
	diff   float64 // signed distance from the moving line to the target line
	line   float64 // target coordinate
	target Rect
}

// nearestLine finds the target line closest to any of the moving lines,
// within threshold. Earlier targets win ties.
func nearestLine(moving []float64, targets []Rect, lineOf func(Rect) lines, threshold float64) snapHit {
	var best snapHit
	bestDist := math.Inf(1)
	for _, t := range targets {
		for _, tl := range lineOf(t) {
			for _, ml := range moving {
				d := tl - ml
				if ad := math.Abs(d); ad <= threshold && ad < bestDist {
					bestDist = ad
					best = snapHit{ok: true, diff: d, line: tl, target: t}
				}
			}
		}
	}
	return best
}

// withStage returns targets followed by the stage rect.
func withStage(targets []Rect) []Rect {
	return append(slices.Clip(targets), StageRect)
}

// SnapMove adjusts a proposed move delta so the bounding box of starts
// aligns with the nearest edge or center line of targets or the stage.
//
// targets must not contain the moving rects themselves. Each axis snaps
// independently. Alignment guides are emitted for every axis that found a
// line within threshold; gap guides to the nearest neighbor on each side
// are always emitted.
func SnapMove(starts []Rect, dx, dy float64, targets []Rect, opts SnapOptions) (float64, float64, []Guide) {
	group, ok := UnionAll(starts)
	if !ok {
		return dx, dy, nil
	}
	proposed := group.Translate(dx, dy)
	all := withStage(targets)

	px, py := xLines(proposed), yLines(proposed)
	hx := nearestLine(px[:], all, xLines, opts.Threshold)
	hy := nearestLine(py[:], all, yLines, opts.Threshold)

	if opts.Enabled {
		if hx.ok {
			dx += hx.diff
		}
		if hy.ok {
			dy += hy.diff
		}
	}
	final := group.Translate(dx, dy)

	var guides []Guide
	if hx.ok {
		guides = append(guides, verticalGuide(hx.line, final, hx.target))
	}
	if hy.ok {
		guides = append(guides, horizontalGuide(hy.line, final, hy.target))
	}
	guides = append(guides, stageCenterGuides(final, guides, opts.Threshold)...)
	guides = append(guides, gapGuides(final, targets)...)
	return dx, dy, guides
}

// stageCenterGuides reports the stage's own center lines when the box center
// sits on them, even if another line won the snap on that axis.
func stageCenterGuides(box Rect, existing []Guide, threshold float64) []Guide {
	var guides []Guide
	cx, cy := box.Center()
	const scx, scy = StageWidth / 2, StageHeight / 2
	if math.Abs(cx-scx) <= threshold && !hasLine(existing, GuideVertical, scx) {
		guides = append(guides, Guide{Kind: GuideVertical, Pos: scx, Start: 0, End: StageHeight})
	}
	if math.Abs(cy-scy) <= threshold && !hasLine(existing, GuideHorizontal, scy) {
		guides = append(guides, Guide{Kind: GuideHorizontal, Pos: scy, Start: 0, End: StageWidth})
	}
	return guides
}

// gapGuides measures the distance from box to the nearest non-overlapping
// neighbor on each side. A left/right neighbor must share vertical extent
// with box, a top/bottom neighbor horizontal extent.
func gapGuides(box Rect, others []Rect) []Guide {
	type nearest struct {
		found bool
		dist  float64
		rect  Rect
	}
	var left, right, top, bottom nearest
	consider := func(n *nearest, d float64, r Rect) {
		if d > 0 && (!n.found || d < n.dist) {
			*n = nearest{found: true, dist: d, rect: r}
		}
	}

	for _, t := range others {
		if t.Y < box.Bottom() && t.Bottom() > box.Y {
			if t.Right() <= box.X {
				consider(&left, box.X-t.Right(), t)
			}
			if t.X >= box.Right() {
				consider(&right, t.X-box.Right(), t)
			}
		}
		if t.X < box.Right() && t.Right() > box.X {
			if t.Bottom() <= box.Y {
				consider(&top, box.Y-t.Bottom(), t)
			}
			if t.Y >= box.Bottom() {
				consider(&bottom, t.Y-box.Bottom(), t)
			}
		}
	}

	var guides []Guide
	midY := func(t Rect) float64 { return (max(t.Y, box.Y) + min(t.Bottom(), box.Bottom())) / 2 }
	midX := func(t Rect) float64 { return (max(t.X, box.X) + min(t.Right(), box.Right())) / 2 }
	if left.found {
		guides = append(guides, Guide{Kind: GuideGapX, Pos: midY(left.rect), Start: left.rect.Right(), End: box.X, Distance: left.dist})
	}
	if right.found {
		guides = append(guides, Guide{Kind: GuideGapX, Pos: midY(right.rect), Start: box.Right(), End: right.rect.X, Distance: right.dist})
	}
	if top.found {
		guides = append(guides, Guide{Kind: GuideGapY, Pos: midX(top.rect), Start: top.rect.Bottom(), End: box.Y, Distance: top.dist})
	}
	if bottom.found {
		guides = append(guides, Guide{Kind: GuideGapY, Pos: midX(bottom.rect), Start: box.Bottom(), End: bottom.rect.Y, Distance: bottom.dist})
	}
	return guides
}

// SnapResize snaps the edges moved by handle h of a proposed rect to the
// nearest line of targets or the stage. The opposite edge never moves.
// The result is clamped to the stage and to minSize.
func SnapResize(h Handle, proposed Rect, targets []Rect, opts SnapOptions, minSize float64) (Rect, []Guide) {
	all := withStage(targets)
	out := proposed
	var guides []Guide

	if xs := h.xSign(); xs != 0 {
		edge := out.Right()
		if xs < 0 {
			edge = out.X
		}
		if hit := nearestLine([]float64{edge}, all, xLines, opts.Threshold); hit.ok {
			if opts.Enabled {
				if xs < 0 {
					right := out.Right()
					out.X = hit.line
					out.Width = right - hit.line
				} else {
					out.Width = hit.line - out.X
				}
			}
			guides = append(guides, verticalGuide(hit.line, out, hit.target))
		}
	}

	if ys := h.ySign(); ys != 0 {
		edge := out.Bottom()
		if ys < 0 {
			edge = out.Y
		}
		if hit := nearestLine([]float64{edge}, all, yLines, opts.Threshold); hit.ok {
			if opts.Enabled {
				if ys < 0 {
					bottom := out.Bottom()
					out.Y = hit.line
					out.Height = bottom - hit.line
				} else {
					out.Height = hit.line - out.Y
				}
			}
			guides = append(guides, horizontalGuide(hit.line, out, hit.target))
		}
	}

	return clampResized(out, h, minSize), guides
}

// clampResized enforces stage bounds and minimum size while keeping the
// edges opposite to h fixed.
func clampResized(r Rect, h Handle, minSize float64) Rect {
	switch h.xSign() {
	case -1:
		right := r.Right()
		left := clamp(r.X, 0, right-minSize)
		r.X, r.Width = left, right-left
	case 1:
		r.Width = clamp(r.Width, minSize, StageWidth-r.X)
	}
	switch h.ySign() {
	case -1:
		bottom := r.Bottom()
		top := clamp(r.Y, 0, bottom-minSize)
		r.Y, r.Height = top, bottom-top
	case 1:
		r.Height = clamp(r.Height, minSize, StageHeight-r.Y)
	}
	return ClampToStage(r, minSize)
}
