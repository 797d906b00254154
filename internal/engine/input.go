package engine

// Modifiers is a bitmask of keyboard modifier keys held during a pointer event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all bits of m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// toggle reports whether the ctrl/meta toggle modifier is held.
func (m Modifiers) toggle() bool { return m&(ModCtrl|ModMeta) != 0 }

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button, used for panning
)

// TargetKind says what a pointer-down landed on.
type TargetKind uint8

const (
	TargetCanvas TargetKind = iota // empty stage area
	TargetItem                     // the body of a registered item
	TargetHandle                   // a resize handle of the active item or group box
)

// Target describes what the host hit-tested under the pointer.
type Target struct {
	Kind TargetKind
	ID   string
	// Handle is set for TargetHandle. ID is empty when the handle belongs to
	// the group box of a multi-selection.
	Handle Handle
	// Static marks items that can be selected but not moved or resized.
	Static bool
	// KeepAspect marks items whose corner resize must not snap.
	KeepAspect bool
}

// CanvasTarget returns a Target for the empty canvas.
func CanvasTarget() Target { return Target{Kind: TargetCanvas} }

// ItemTarget returns a Target for the body of item id.
func ItemTarget(id string) Target { return Target{Kind: TargetItem, ID: id} }

// HandleTarget returns a Target for a resize handle. Pass an empty id for the
// group box.
func HandleTarget(id string, h Handle) Target {
	return Target{Kind: TargetHandle, ID: id, Handle: h}
}
