package engine

// Field is a bitmask of rectangle fields carried by a Patch.
type Field uint8

const (
	FieldX Field = 1 << iota
	FieldY
	FieldWidth
	FieldHeight

	FieldPosition = FieldX | FieldY
	FieldSize     = FieldWidth | FieldHeight
	FieldAll      = FieldPosition | FieldSize
)

// Patch is a partial geometry update. Only fields named in Set are meaningful.
type Patch struct {
	X, Y, Width, Height float64
	Set                 Field
}

// PositionPatch returns a patch that moves an item to (x, y).
func PositionPatch(x, y float64) Patch {
	return Patch{X: x, Y: y, Set: FieldPosition}
}

// RectPatch returns a patch that sets every field from r.
func RectPatch(r Rect) Patch {
	return Patch{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Set: FieldAll}
}

// Apply returns r with the patched fields replaced.
func (p Patch) Apply(r Rect) Rect {
	if p.Set&FieldX != 0 {
		r.X = p.X
	}
	if p.Set&FieldY != 0 {
		r.Y = p.Y
	}
	if p.Set&FieldWidth != 0 {
		r.Width = p.Width
	}
	if p.Set&FieldHeight != 0 {
		r.Height = p.Height
	}
	return r
}

// Updater applies a geometry patch to a host-owned item.
type Updater func(Patch)

// BoundsProvider gives read access to the live rectangles of registered items.
type BoundsProvider interface {
	Bounds(id string) (Rect, bool)
	// EachBounds calls fn for every registered item in registration order.
	EachBounds(fn func(id string, r Rect))
}

// UpdaterRegistry dispatches geometry patches to items by id.
type UpdaterRegistry interface {
	// Apply patches item id and reports whether the item was registered.
	Apply(id string, p Patch) bool
}

// Registry is the shared bounds map and update dispatcher. It is owned by the
// Stage and handed to collaborators through the narrow interfaces above.
type Registry struct {
	bounds   map[string]Rect
	updaters map[string]Updater
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bounds:   make(map[string]Rect),
		updaters: make(map[string]Updater),
	}
}

// Register adds or replaces an item. fn may be nil for items that only act
// as snap targets.
func (r *Registry) Register(id string, rect Rect, fn Updater) {
	if _, ok := r.bounds[id]; !ok {
		r.order = append(r.order, id)
	}
	r.bounds[id] = rect
	if fn != nil {
		r.updaters[id] = fn
	} else {
		delete(r.updaters, id)
	}
}

// Unregister removes both the bounds entry and the updater of id.
func (r *Registry) Unregister(id string) {
	if _, ok := r.bounds[id]; !ok {
		return
	}
	delete(r.bounds, id)
	delete(r.updaters, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// SetBounds records the current geometry of an item, e.g. after the host
// changed it outside a gesture. Unknown ids are ignored.
func (r *Registry) SetBounds(id string, rect Rect) {
	if _, ok := r.bounds[id]; ok {
		r.bounds[id] = rect
	}
}

// Bounds returns the live rectangle of id.
func (r *Registry) Bounds(id string) (Rect, bool) {
	rect, ok := r.bounds[id]
	return rect, ok
}

// EachBounds calls fn for every registered item in registration order.
func (r *Registry) EachBounds(fn func(id string, rect Rect)) {
	for _, id := range r.order {
		fn(id, r.bounds[id])
	}
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.bounds[id]
	return ok
}

// Len returns the number of registered items.
func (r *Registry) Len() int { return len(r.order) }

// Apply patches the bounds entry of id and forwards the patch to its updater.
// Missing items are a no-op.
func (r *Registry) Apply(id string, p Patch) bool {
	rect, ok := r.bounds[id]
	if !ok {
		return false
	}
	r.bounds[id] = p.Apply(rect)
	if fn := r.updaters[id]; fn != nil {
		fn(p)
	}
	return true
}
