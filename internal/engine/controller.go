package engine

import "slices"

type gestureKind uint8

const (
	gestureIdle gestureKind = iota
	gestureMove
	gestureResize
	gestureGroupResize
)

// Controller is the move/resize state machine for a single pointer. Every
// gesture starts from the registry's current values; there is no state
// carried between gestures.
//
// Deltas passed to Update are in stage units, measured from the pointer
// position at gesture start.
type Controller struct {
	bounds   BoundsProvider
	updates  UpdaterRegistry
	settings Settings

	kind       gestureKind
	handle     Handle
	keepAspect bool
	ids        []string
	starts     []Rect
	group      Rect

	dxMin, dxMax float64
	dyMin, dyMax float64
}

// NewController creates an idle controller.
func NewController(bounds BoundsProvider, updates UpdaterRegistry, s Settings) *Controller {
	return &Controller{bounds: bounds, updates: updates, settings: s.withDefaults()}
}

// SetSettings replaces the settings used by subsequent updates.
func (c *Controller) SetSettings(s Settings) { c.settings = s.withDefaults() }

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool { return c.kind != gestureIdle }

// IDs returns the items taking part in the current gesture.
func (c *Controller) IDs() []string { return slices.Clone(c.ids) }

// snapshot records the starting rect of every registered id. Missing ids are
// skipped.
func (c *Controller) snapshot(ids []string) bool {
	c.ids, c.starts = c.ids[:0], c.starts[:0]
	for _, id := range ids {
		if r, ok := c.bounds.Bounds(id); ok {
			c.ids = append(c.ids, id)
			c.starts = append(c.starts, r)
		}
	}
	c.group, _ = UnionAll(c.starts)
	return len(c.ids) > 0
}

// BeginMove starts moving ids together. The legal delta range is computed
// once so that no item can leave the stage during the gesture.
func (c *Controller) BeginMove(ids []string) bool {
	c.reset()
	if !c.snapshot(ids) {
		return false
	}
	c.dxMin, c.dyMin = 0, 0
	c.dxMax, c.dyMax = StageWidth, StageHeight
	for i, r := range c.starts {
		if i == 0 {
			c.dxMin, c.dxMax = -r.X, StageWidth-r.Width-r.X
			c.dyMin, c.dyMax = -r.Y, StageHeight-r.Height-r.Y
			continue
		}
		c.dxMin = max(c.dxMin, -r.X)
		c.dxMax = min(c.dxMax, StageWidth-r.Width-r.X)
		c.dyMin = max(c.dyMin, -r.Y)
		c.dyMax = min(c.dyMax, StageHeight-r.Height-r.Y)
	}
	// Items that start out of bounds may stay where they are.
	c.dxMin, c.dxMax = min(c.dxMin, 0), max(c.dxMax, 0)
	c.dyMin, c.dyMax = min(c.dyMin, 0), max(c.dyMax, 0)
	c.kind = gestureMove
	return true
}

// BeginResize starts resizing a single item with handle h. Corner resizes
// of keepAspect items report guides but never snap, so the aspect ratio
// survives.
func (c *Controller) BeginResize(id string, h Handle, keepAspect bool) bool {
	c.reset()
	if h == HandleNone || !c.snapshot([]string{id}) {
		return false
	}
	c.kind = gestureResize
	c.handle = h
	c.keepAspect = keepAspect
	return true
}

// BeginGroupResize starts scaling ids around the center of their group box.
func (c *Controller) BeginGroupResize(ids []string, h Handle) bool {
	c.reset()
	if h == HandleNone || !c.snapshot(ids) {
		return false
	}
	c.kind = gestureGroupResize
	c.handle = h
	return true
}

// Update applies the gesture for a pointer delta and returns the guides
// produced by the snapping engine.
func (c *Controller) Update(dx, dy float64) []Guide {
	switch c.kind {
	case gestureMove:
		return c.updateMove(dx, dy)
	case gestureResize:
		return c.updateResize(dx, dy)
	case gestureGroupResize:
		c.updateGroupResize(dx, dy)
	}
	return nil
}

func (c *Controller) updateMove(dx, dy float64) []Guide {
	dx = clamp(dx, c.dxMin, c.dxMax)
	dy = clamp(dy, c.dyMin, c.dyMax)
	dx, dy, guides := SnapMove(c.starts, dx, dy, c.targets(), c.settings.snapOptions())
	dx = clamp(dx, c.dxMin, c.dxMax)
	dy = clamp(dy, c.dyMin, c.dyMax)

	for i, id := range c.ids {
		start := c.starts[i]
		c.updates.Apply(id, PositionPatch(start.X+dx, start.Y+dy))
	}
	return guides
}

func (c *Controller) updateResize(dx, dy float64) []Guide {
	minSize := c.settings.MinSize
	proposed := ProposeResize(c.starts[0], c.handle, dx, dy, minSize)
	opts := c.settings.snapOptions()
	if c.keepAspect && c.handle.IsCorner() {
		opts.Enabled = false
	}
	r, guides := SnapResize(c.handle, proposed, c.targets(), opts, minSize)
	c.updates.Apply(c.ids[0], RectPatch(r))
	return guides
}

func (c *Controller) updateGroupResize(dx, dy float64) {
	minSize := c.settings.MinSize
	sx, sy := GroupScale(c.group, c.starts, c.handle, dx, dy, minSize)
	cx, cy := c.group.Center()
	for i, r := range ScaleAround(c.starts, cx, cy, sx, sy, minSize) {
		c.updates.Apply(c.ids[i], RectPatch(r))
	}
}

// targets returns the live rects of every registered item not taking part
// in the gesture.
func (c *Controller) targets() []Rect {
	var out []Rect
	c.bounds.EachBounds(func(id string, r Rect) {
		if !slices.Contains(c.ids, id) {
			out = append(out, r)
		}
	})
	return out
}

// End finishes the gesture and returns the final geometry of every item
// whose rect changed. Items unregistered mid-gesture are left out.
func (c *Controller) End() []Geometry {
	if c.kind == gestureIdle {
		return nil
	}
	var out []Geometry
	for i, id := range c.ids {
		r, ok := c.bounds.Bounds(id)
		if !ok || r == c.starts[i] {
			continue
		}
		out = append(out, Geometry{ID: id, Rect: r})
	}
	c.reset()
	return out
}

func (c *Controller) reset() {
	c.kind = gestureIdle
	c.handle = HandleNone
	c.keepAspect = false
	c.ids, c.starts = nil, nil
	c.group = Rect{}
}
