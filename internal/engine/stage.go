package engine

import "slices"

// Hooks are the host callbacks of a Stage. Any of them may be nil.
type Hooks struct {
	// OnCommit receives the final geometry of every item a gesture changed.
	OnCommit func(changes []Geometry)
	// OnSelectionChange fires whenever the selected set changes.
	OnSelectionChange func(ids []string)
	// OnGuides fires whenever the visible guides change.
	OnGuides func(guides []Guide)
}

type pointerMode uint8

const (
	modeIdle pointerMode = iota
	modeGesture
	modeMarquee
	modePan
)

// Stage owns the coordinate system, the shared registry and the selection,
// and routes pointer input either to the canvas (marquee, pan) or to the
// item controller (move, resize).
//
// Pointer coordinates are screen pixels. Stage is not safe for concurrent
// use; every call is expected on the host's event thread.
type Stage struct {
	settings   Settings
	hooks      Hooks
	viewport   *Viewport
	registry   *Registry
	selection  *Selection
	controller *Controller

	mode         pointerMode
	downX, downY float64
	lastX, lastY float64
	moved        bool

	// pending holds the latest pointer position of a batched move.
	pending      bool
	pendX, pendY float64

	// clickID is a plain click on an item of a multi-selection, resolved to
	// a single selection on pointer-up unless the pointer moved.
	clickID string

	marqueeX, marqueeY float64
	marquee            Rect

	guides []Guide
}

// NewStage creates a stage rendered into a viewport of the given size.
func NewStage(width, height float64, s Settings, hooks Hooks) *Stage {
	s = s.withDefaults()
	st := &Stage{
		settings: s,
		hooks:    hooks,
		viewport: NewViewport(width, height, s),
		registry: NewRegistry(),
	}
	st.selection = NewSelection(func(ids []string) {
		if st.hooks.OnSelectionChange != nil {
			st.hooks.OnSelectionChange(ids)
		}
	})
	st.controller = NewController(st.registry, st.registry, s)
	return st
}

// Viewport returns the stage's viewport.
func (s *Stage) Viewport() *Viewport { return s.viewport }

// Registry returns the shared bounds registry and update dispatcher.
func (s *Stage) Registry() *Registry { return s.registry }

// Selection returns the selection model.
func (s *Stage) Selection() *Selection { return s.selection }

// Settings returns the current settings.
func (s *Stage) Settings() Settings { return s.settings }

// SetSettings replaces the settings. A gesture in progress picks them up on
// its next update.
func (s *Stage) SetSettings(settings Settings) {
	s.settings = settings.withDefaults()
	s.viewport.configure(s.settings)
	s.controller.SetSettings(s.settings)
	s.publishGuides()
}

// SetSnapEnabled toggles value alteration by the snapping engine.
func (s *Stage) SetSnapEnabled(on bool) {
	settings := s.settings
	settings.SnapEnabled = on
	s.SetSettings(settings)
}

// SetShowGuides toggles guide publication.
func (s *Stage) SetShowGuides(on bool) {
	settings := s.settings
	settings.ShowGuides = on
	s.SetSettings(settings)
}

// Register mounts an item. See Registry.Register.
func (s *Stage) Register(id string, r Rect, fn Updater) {
	s.registry.Register(id, r, fn)
}

// Unregister unmounts an item and drops it from the selection. A gesture in
// progress keeps running for the remaining items.
func (s *Stage) Unregister(id string) {
	s.registry.Unregister(id)
	s.selection.Prune(s.registry.Has)
}

// ImposeSelection applies a selection chosen by the host. Unknown ids are
// dropped. Equal selections are ignored and do not notify.
func (s *Stage) ImposeSelection(ids []string) bool {
	known := slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return !s.registry.Has(id) })
	return s.selection.Impose(known)
}

// PointerDown starts a gesture on target t at screen position (x, y).
func (s *Stage) PointerDown(t Target, x, y float64, button MouseButton, mods Modifiers) {
	if s.mode != modeIdle {
		s.finish()
	}
	s.downX, s.downY = x, y
	s.lastX, s.lastY = x, y
	s.moved = false

	switch button {
	case MouseButtonMiddle:
		s.mode = modePan
		return
	case MouseButtonLeft:
	default:
		return
	}

	switch t.Kind {
	case TargetCanvas:
		s.selection.Clear()
		s.marqueeX, s.marqueeY = s.viewport.ScreenToStage(x, y)
		s.marquee = Rect{X: s.marqueeX, Y: s.marqueeY}
		s.mode = modeMarquee

	case TargetItem:
		if !s.registry.Has(t.ID) {
			return
		}
		if mods == 0 && s.selection.Len() > 1 && s.selection.Has(t.ID) {
			s.clickID = t.ID
		} else {
			s.selection.Click(t.ID, mods)
		}
		if t.Static || !s.selection.Has(t.ID) {
			return
		}
		if s.controller.BeginMove(s.selection.IDs()) {
			s.mode = modeGesture
		}

	case TargetHandle:
		if t.Static {
			return
		}
		var ok bool
		if t.ID == "" {
			if s.selection.Len() > 1 {
				ok = s.controller.BeginGroupResize(s.selection.IDs(), t.Handle)
			}
		} else {
			ok = s.controller.BeginResize(t.ID, t.Handle, t.KeepAspect)
		}
		if ok {
			s.mode = modeGesture
		}
	}
}

// PointerMove continues the current gesture.
func (s *Stage) PointerMove(x, y float64) {
	if x != s.downX || y != s.downY {
		s.moved = true
	}
	switch s.mode {
	case modePan:
		s.viewport.PanBy(x-s.lastX, y-s.lastY)
	case modeMarquee:
		// A click without movement only clears. The start point may have
		// been clamped onto the stage border, where it would touch items.
		if s.moved {
			s.updateMarquee(x, y)
		}
	case modeGesture:
		if s.settings.BatchMoves {
			s.pending, s.pendX, s.pendY = true, x, y
		} else {
			s.updateGesture(x, y)
		}
	}
	s.lastX, s.lastY = x, y
}

// PointerUp ends the current gesture at (x, y).
func (s *Stage) PointerUp(x, y float64) {
	s.PointerMove(x, y)
	s.finish()
}

// PointerLeave ends the current gesture at the last known pointer position.
// The last applied geometry is kept.
func (s *Stage) PointerLeave() {
	s.finish()
}

// Frame runs the batched gesture update, if any. Hosts call it once per
// rendered frame.
func (s *Stage) Frame() {
	if s.pending {
		s.updateGesture(s.pendX, s.pendY)
	}
}

// Wheel handles a scroll gesture. See Viewport.Wheel.
func (s *Stage) Wheel(delta float64, mods Modifiers) bool {
	return s.viewport.Wheel(delta, mods)
}

func (s *Stage) updateGesture(x, y float64) {
	s.pending = false
	dx, dy := s.viewport.ScreenDeltaToStage(x-s.downX, y-s.downY)
	s.setGuides(s.controller.Update(dx, dy))
}

func (s *Stage) updateMarquee(x, y float64) {
	cx, cy := s.viewport.ScreenToStage(x, y)
	s.marquee = RectFromPoints(s.marqueeX, s.marqueeY, cx, cy)
	s.selection.Replace(s.hitTestRect(s.marquee))
}

func (s *Stage) hitTestRect(area Rect) []string {
	var ids []string
	s.registry.EachBounds(func(id string, r Rect) {
		if area.Intersects(r) {
			ids = append(ids, id)
		}
	})
	return ids
}

func (s *Stage) finish() {
	mode := s.mode
	s.mode = modeIdle
	s.marquee = Rect{}

	if mode == modeGesture {
		if s.pending {
			s.updateGesture(s.pendX, s.pendY)
		}
		changes := s.controller.End()
		s.setGuides(nil)
		if len(changes) > 0 && s.hooks.OnCommit != nil {
			s.hooks.OnCommit(changes)
		}
	}
	s.pending = false

	if s.clickID != "" {
		if !s.moved && s.registry.Has(s.clickID) {
			s.selection.Click(s.clickID, 0)
		}
		s.clickID = ""
	}
}

func (s *Stage) setGuides(guides []Guide) {
	if len(guides) == 0 && len(s.guides) == 0 {
		return
	}
	s.guides = guides
	s.publishGuides()
}

func (s *Stage) publishGuides() {
	if s.hooks.OnGuides != nil {
		s.hooks.OnGuides(s.Guides())
	}
}

// Guides returns the guides to render. It is empty when guides are hidden or
// no gesture is active.
func (s *Stage) Guides() []Guide {
	if !s.settings.ShowGuides {
		return nil
	}
	return slices.Clone(s.guides)
}

// Marquee returns the marquee rectangle while a marquee gesture is active.
func (s *Stage) Marquee() (Rect, bool) {
	return s.marquee, s.mode == modeMarquee
}

// Gesturing reports whether an item move or resize is in progress.
func (s *Stage) Gesturing() bool { return s.mode == modeGesture }

// Panning reports whether a pan gesture is in progress.
func (s *Stage) Panning() bool { return s.mode == modePan }

// SelectionBounds returns the group box of the selected items.
func (s *Stage) SelectionBounds() (Rect, bool) {
	var rects []Rect
	for _, id := range s.selection.IDs() {
		if r, ok := s.registry.Bounds(id); ok {
			rects = append(rects, r)
		}
	}
	return UnionAll(rects)
}

// HandleAt hit-tests the resize handles at screen position (x, y). With one
// item selected the handles belong to that item; with several they belong
// to the group box and the returned target has an empty ID.
func (s *Stage) HandleAt(x, y float64) (Target, bool) {
	var id string
	var box Rect
	switch s.selection.Len() {
	case 0:
		return Target{}, false
	case 1:
		id = s.selection.IDs()[0]
		r, ok := s.registry.Bounds(id)
		if !ok {
			return Target{}, false
		}
		box = r
	default:
		r, ok := s.SelectionBounds()
		if !ok {
			return Target{}, false
		}
		box = r
	}

	half := s.settings.HandleSize / 2
	for _, h := range Handles {
		hx, hy := s.viewport.StageToScreen(h.Point(box))
		if x >= hx-half && x <= hx+half && y >= hy-half && y <= hy+half {
			return HandleTarget(id, h), true
		}
	}
	return Target{}, false
}
