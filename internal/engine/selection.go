package engine

import "slices"

// Selection is the set of selected item ids plus the active one.
//
// Change notifications fire only when the set itself changes; moving the
// active marker alone is not a selection change.
type Selection struct {
	ids      []string
	active   string
	onChange func(ids []string)
}

// NewSelection creates an empty selection. onChange may be nil.
func NewSelection(onChange func(ids []string)) *Selection {
	return &Selection{onChange: onChange}
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Active returns the most recently interacted-with item id.
func (s *Selection) Active() string { return s.active }

// Len returns the number of selected items.
func (s *Selection) Len() int { return len(s.ids) }

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

// Click updates the selection for a click on item id:
// ctrl/meta toggles, shift adds, no modifier selects only id.
func (s *Selection) Click(id string, mods Modifiers) {
	next := slices.Clone(s.ids)
	switch {
	case mods.toggle():
		if i := slices.Index(next, id); i >= 0 {
			next = slices.Delete(next, i, i+1)
		} else {
			next = append(next, id)
		}
	case mods.Has(ModShift):
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	default:
		next = []string{id}
	}
	s.active = id
	s.set(next)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.active = ""
	s.set(nil)
}

// Replace sets the selection to ids, keeping the active id only if it is
// still selected.
func (s *Selection) Replace(ids []string) {
	if s.active != "" && !slices.Contains(ids, s.active) {
		s.active = ""
	}
	if s.active == "" && len(ids) > 0 {
		s.active = ids[len(ids)-1]
	}
	s.set(ids)
}

// Impose applies a selection chosen outside the engine, such as a host-side
// list panel. Equal sets are ignored so host and engine cannot ping-pong
// notifications. It reports whether the selection changed.
func (s *Selection) Impose(ids []string) bool {
	ids = dedupe(ids)
	if sameSet(s.ids, ids) {
		return false
	}
	s.Replace(ids)
	return true
}

// Prune drops ids for which keep returns false, e.g. items the host removed.
func (s *Selection) Prune(keep func(id string) bool) {
	next := slices.DeleteFunc(slices.Clone(s.ids), func(id string) bool { return !keep(id) })
	if s.active != "" && !keep(s.active) {
		s.active = ""
	}
	s.set(next)
}

func (s *Selection) set(ids []string) {
	ids = dedupe(ids)
	if sameSet(s.ids, ids) {
		s.ids = ids
		return
	}
	s.ids = ids
	if s.onChange != nil {
		s.onChange(slices.Clone(ids))
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
