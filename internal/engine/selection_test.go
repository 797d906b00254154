package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Click(t *testing.T) {
	tests := []struct {
		name       string
		initial    []string
		id         string
		mods       Modifiers
		wantIDs    []string
		wantActive string
	}{
		{"plain click replaces", []string{"a", "b"}, "c", 0, []string{"c"}, "c"},
		{"ctrl adds", []string{"a"}, "b", ModCtrl, []string{"a", "b"}, "b"},
		{"ctrl removes", []string{"a", "b"}, "a", ModCtrl, []string{"b"}, "a"},
		{"meta toggles like ctrl", []string{"a", "b"}, "b", ModMeta, []string{"a"}, "b"},
		{"shift adds", []string{"a"}, "b", ModShift, []string{"a", "b"}, "b"},
		{"shift never removes", []string{"a", "b"}, "a", ModShift, []string{"a", "b"}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(nil)
			s.Replace(tt.initial)
			s.Click(tt.id, tt.mods)

			assert.Equal(t, tt.wantIDs, s.IDs())
			assert.Equal(t, tt.wantActive, s.Active())
		})
	}
}

func TestSelection_NotifiesOnlyOnChange(t *testing.T) {
	var calls [][]string
	s := NewSelection(func(ids []string) { calls = append(calls, ids) })

	s.Click("a", 0)
	s.Click("a", 0)
	s.Click("b", ModShift)
	s.Click("a", ModShift)

	assert.Equal(t, [][]string{{"a"}, {"a", "b"}}, calls)
	assert.Equal(t, "a", s.Active())
}

func TestSelection_ImposeIsIdempotent(t *testing.T) {
	calls := 0
	s := NewSelection(func([]string) { calls++ })
	s.Replace([]string{"a", "b"})
	assert.Equal(t, 1, calls)

	assert.False(t, s.Impose([]string{"b", "a"}))
	assert.False(t, s.Impose([]string{"a", "b", "a"}))
	assert.Equal(t, 1, calls)

	assert.True(t, s.Impose([]string{"c"}))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "c", s.Active())
}

func TestSelection_Prune(t *testing.T) {
	s := NewSelection(nil)
	s.Replace([]string{"a", "b", "c"})
	s.Click("b", ModShift)

	s.Prune(func(id string) bool { return id != "b" })
	assert.Equal(t, []string{"a", "c"}, s.IDs())
	assert.Empty(t, s.Active())
}
