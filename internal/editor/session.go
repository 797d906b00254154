package editor

import (
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"github.com/overlaydeck/overlaydeck/internal/document"
	"github.com/overlaydeck/overlaydeck/internal/engine"
)

// Hooks are the host callbacks of a Session. Any of them may be nil.
type Hooks struct {
	// OnCommit receives the final geometry of components changed by a
	// gesture, after the layout has been updated.
	OnCommit func(changes []engine.Geometry)
	// OnSelectionChange receives the selected component ids.
	OnSelectionChange func(ids []string)
}

// Session owns an overlay layout and the stage editing it. Visible
// components are mounted into the stage registry; gestures write geometry
// back into the layout through the registered updaters.
type Session struct {
	layout *document.Layout
	stage  *engine.Stage
	hooks  Hooks

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a session with an empty layout and a viewport of the given
// screen size.
func New(settings engine.Settings, width, height float64, hooks Hooks) *Session {
	s := &Session{hooks: hooks, now: time.Now}
	s.stage = engine.NewStage(width, height, settings, engine.Hooks{
		OnCommit:          s.commit,
		OnSelectionChange: s.selectionChanged,
	})
	s.Load(document.NewEmptyLayout("", "Untitled"))
	return s
}

// --- Commands (host → editor) ---

// Load replaces the edited layout. The selection is cleared.
func (s *Session) Load(l *document.Layout) {
	s.stage.PointerLeave()
	s.stage.ImposeSelection(nil)
	for _, id := range s.mountedIDs() {
		s.stage.Unregister(id)
	}

	s.layout = l
	for _, c := range l.Ordered() {
		if !c.Hidden {
			s.mount(c)
		}
	}
	slog.Info("layout loaded", "layout", l.ID, "components", len(l.Components))
}

// LoadData parses a YAML or JSON layout and loads it.
func (s *Session) LoadData(data []byte) error {
	l, err := document.ParseLayout(data)
	if err != nil {
		slog.Error("load layout", "error", err)
		return err
	}
	s.Load(l)
	return nil
}

// LoadSample loads the built-in sample layout.
func (s *Session) LoadSample() {
	s.Load(document.NewSampleLayout())
}

// AddComponent inserts a component into the layout and mounts it. The
// component's rect is clamped to the stage.
func (s *Session) AddComponent(c document.Component) (document.Component, error) {
	r := engine.ClampToStage(rectOf(c), s.stage.Settings().MinSize)
	c.X, c.Y, c.Width, c.Height = r.X, r.Y, r.Width, r.Height

	added, err := s.layout.AddComponent(c)
	if err != nil {
		return document.Component{}, err
	}
	if !added.Hidden {
		s.mount(added)
	}
	s.layout.Touch(s.now())
	slog.Info("component added", "component", added.ID, "type", added.Type)
	return added, nil
}

// RemoveComponent deletes a component from the layout and unmounts it.
func (s *Session) RemoveComponent(id string) error {
	if err := s.layout.RemoveComponent(id); err != nil {
		return err
	}
	s.stage.Unregister(id)
	s.layout.Touch(s.now())
	slog.Info("component removed", "component", id)
	return nil
}

// RemoveSelected deletes every selected component that is not locked and
// returns how many were removed.
func (s *Session) RemoveSelected() int {
	n := 0
	for _, id := range s.stage.Selection().IDs() {
		if c, ok := s.layout.Component(id); ok && c.Locked {
			continue
		}
		if err := s.RemoveComponent(id); err == nil {
			n++
		}
	}
	return n
}

// SetHidden shows or hides a component. Hidden components are unmounted so
// they neither render nor act as snap targets.
func (s *Session) SetHidden(id string, hidden bool) error {
	c, ok := s.layout.Component(id)
	if !ok {
		return document.ErrComponentNotFound
	}
	c.Hidden = hidden
	s.layout.Components[id] = c
	s.Sync(id)
	return nil
}

// SetLocked marks a component as selectable but not movable.
func (s *Session) SetLocked(id string, locked bool) error {
	c, ok := s.layout.Component(id)
	if !ok {
		return document.ErrComponentNotFound
	}
	c.Locked = locked
	s.layout.Components[id] = c
	return nil
}

// SetGeometry places a component outside a gesture, e.g. from a property
// panel. The rect is clamped to the stage and committed.
func (s *Session) SetGeometry(id string, r engine.Rect) error {
	if _, ok := s.layout.Component(id); !ok {
		return document.ErrComponentNotFound
	}
	r = engine.ClampToStage(r, s.stage.Settings().MinSize)
	if err := s.layout.ApplyGeometry(id, patchChanges(engine.RectPatch(r))); err != nil {
		return err
	}
	s.Sync(id)
	s.commit([]engine.Geometry{{ID: id, Rect: r}})
	return nil
}

// Nudge moves the selected, unlocked components by a stage-unit delta,
// keeping each on the stage, and commits the result.
func (s *Session) Nudge(dx, dy float64) []engine.Geometry {
	if s.stage.Gesturing() {
		return nil
	}
	reg := s.stage.Registry()
	minSize := s.stage.Settings().MinSize

	var changes []engine.Geometry
	for _, id := range s.stage.Selection().IDs() {
		if c, ok := s.layout.Component(id); !ok || c.Locked {
			continue
		}
		start, ok := reg.Bounds(id)
		if !ok {
			continue
		}
		r := engine.ClampToStage(start.Translate(dx, dy), minSize)
		if r == start {
			continue
		}
		reg.Apply(id, engine.PositionPatch(r.X, r.Y))
		changes = append(changes, engine.Geometry{ID: id, Rect: r})
	}
	if len(changes) > 0 {
		s.commit(changes)
	}
	return changes
}

// Sync re-reads a component from the layout after an external edit,
// mounting, unmounting or updating its bounds as needed.
func (s *Session) Sync(id string) {
	c, ok := s.layout.Component(id)
	switch {
	case !ok || c.Hidden:
		s.stage.Unregister(id)
	case s.stage.Registry().Has(id):
		s.stage.Registry().SetBounds(id, rectOf(c))
	default:
		s.mount(c)
	}
}

// SetSelection imposes a host-side selection. It reports whether the
// selection changed.
func (s *Session) SetSelection(ids []string) bool {
	return s.stage.ImposeSelection(ids)
}

// SetSettings replaces the engine settings.
func (s *Session) SetSettings(settings engine.Settings) {
	s.stage.SetSettings(settings)
}

// SetSnapEnabled toggles magnetism.
func (s *Session) SetSnapEnabled(on bool) { s.stage.SetSnapEnabled(on) }

// SetShowGuides toggles guide rendering.
func (s *Session) SetShowGuides(on bool) { s.stage.SetShowGuides(on) }

// Resize updates the on-screen placement of the viewport.
func (s *Session) Resize(left, top, width, height float64) {
	s.stage.Viewport().Resize(left, top, width, height)
}

// SetView sets zoom and pan directly, e.g. from a host animation.
func (s *Session) SetView(zoom, panX, panY float64) {
	v := s.stage.Viewport()
	v.SetZoom(zoom)
	v.PanX, v.PanY = panX, panY
}

// --- Pointer input (screen pixels) ---

// PointerDown hit-tests (x, y) and starts the matching gesture.
func (s *Session) PointerDown(x, y float64, button engine.MouseButton, mods engine.Modifiers) {
	s.stage.PointerDown(s.TargetAt(x, y), x, y, button, mods)
}

func (s *Session) PointerMove(x, y float64) { s.stage.PointerMove(x, y) }
func (s *Session) PointerUp(x, y float64)   { s.stage.PointerUp(x, y) }
func (s *Session) PointerLeave()            { s.stage.PointerLeave() }

// Wheel forwards a scroll gesture. It reports whether the zoom changed.
func (s *Session) Wheel(delta float64, mods engine.Modifiers) bool {
	return s.stage.Wheel(delta, mods)
}

// Frame runs batched gesture work. Hosts call it once per rendered frame.
func (s *Session) Frame() { s.stage.Frame() }

// TargetAt resolves what lies under screen position (x, y): a resize handle
// of the selection first, then the topmost component, else the canvas.
func (s *Session) TargetAt(x, y float64) engine.Target {
	if t, ok := s.stage.HandleAt(x, y); ok {
		if t.ID == "" {
			t.Static = s.anySelectedLocked()
			return t
		}
		if c, ok := s.layout.Component(t.ID); ok {
			t.Static = c.Locked
			t.KeepAspect = c.KeepAspect
		}
		return t
	}
	if id := s.HitTest(x, y); id != "" {
		t := engine.ItemTarget(id)
		if c, ok := s.layout.Component(id); ok {
			t.Static = c.Locked
			t.KeepAspect = c.KeepAspect
		}
		return t
	}
	return engine.CanvasTarget()
}

// --- Queries (editor → host) ---

// Layout returns the edited layout. Callers must not mutate it.
func (s *Session) Layout() *document.Layout { return s.layout }

// Stage returns the underlying stage.
func (s *Session) Stage() *engine.Stage { return s.stage }

// HitTest returns the id of the topmost visible component under screen
// position (x, y), or "".
func (s *Session) HitTest(x, y float64) string {
	sx, sy := s.stage.Viewport().Matrix().Invert().TransformPoint(x, y)
	ordered := s.layout.Ordered()
	for i := len(ordered) - 1; i >= 0; i-- {
		c := ordered[i]
		if c.Hidden {
			continue
		}
		r, ok := s.stage.Registry().Bounds(c.ID)
		if ok && r.Contains(sx, sy) {
			return c.ID
		}
	}
	return ""
}

// Selection returns the selected component ids.
func (s *Session) Selection() []string { return s.stage.Selection().IDs() }

// SelectionBounds returns the group box of the selection in stage units.
func (s *Session) SelectionBounds() (engine.Rect, bool) {
	return s.stage.SelectionBounds()
}

// ViewState describes the current viewport transform.
type ViewState struct {
	Zoom    float64 `json:"zoom"`
	PanX    float64 `json:"panX"`
	PanY    float64 `json:"panY"`
	Scale   float64 `json:"scale"`
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
}

// View returns the current viewport transform.
func (s *Session) View() ViewState {
	v := s.stage.Viewport()
	ox, oy := v.Origin()
	return ViewState{Zoom: v.Zoom, PanX: v.PanX, PanY: v.PanY, Scale: v.Scale(), OriginX: ox, OriginY: oy}
}

// LayoutJSON returns the full layout as JSON.
func (s *Session) LayoutJSON() string {
	data, err := json.Marshal(s.layout)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// --- internals ---

func (s *Session) mount(c document.Component) {
	id := c.ID
	s.stage.Register(id, rectOf(c), func(p engine.Patch) {
		if err := s.layout.ApplyGeometry(id, patchChanges(p)); err != nil {
			slog.Warn("apply geometry", "component", id, "error", err)
		}
	})
}

func (s *Session) mountedIDs() []string {
	var ids []string
	s.stage.Registry().EachBounds(func(id string, _ engine.Rect) {
		ids = append(ids, id)
	})
	return ids
}

func (s *Session) anySelectedLocked() bool {
	return slices.ContainsFunc(s.stage.Selection().IDs(), func(id string) bool {
		c, ok := s.layout.Component(id)
		return ok && c.Locked
	})
}

func (s *Session) commit(changes []engine.Geometry) {
	s.layout.Touch(s.now())
	slog.Info("layout committed", "layout", s.layout.ID, "version", s.layout.Version, "changed", len(changes))
	if s.hooks.OnCommit != nil {
		s.hooks.OnCommit(changes)
	}
}

func (s *Session) selectionChanged(ids []string) {
	slog.Debug("selection changed", "ids", ids)
	if s.hooks.OnSelectionChange != nil {
		s.hooks.OnSelectionChange(ids)
	}
}

func rectOf(c document.Component) engine.Rect {
	return engine.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// patchChanges converts an engine patch to the layout's partial update form.
func patchChanges(p engine.Patch) map[string]float64 {
	changes := make(map[string]float64, 4)
	if p.Set&engine.FieldX != 0 {
		changes["x"] = p.X
	}
	if p.Set&engine.FieldY != 0 {
		changes["y"] = p.Y
	}
	if p.Set&engine.FieldWidth != 0 {
		changes["width"] = p.Width
	}
	if p.Set&engine.FieldHeight != 0 {
		changes["height"] = p.Height
	}
	return changes
}
