package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ApplyForwardsPatch(t *testing.T) {
	r := NewRegistry()
	var got []Patch
	r.Register("a", Rect{10, 10, 50, 50}, func(p Patch) { got = append(got, p) })

	ok := r.Apply("a", PositionPatch(20, 30))
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, FieldPosition, got[0].Set)

	b, ok := r.Bounds("a")
	require.True(t, ok)
	assert.Equal(t, Rect{20, 30, 50, 50}, b)
}

func TestRegistry_MissingIsNoop(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Apply("ghost", RectPatch(Rect{1, 2, 3, 4})))
	assert.False(t, r.Has("ghost"))

	r.SetBounds("ghost", Rect{1, 2, 3, 4})
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Order(t *testing.T) {
	r := NewRegistry()
	r.Register("a", Rect{}, nil)
	r.Register("b", Rect{}, nil)
	r.Register("c", Rect{}, nil)
	r.Register("a", Rect{X: 1}, nil)
	r.Unregister("b")

	var ids []string
	r.EachBounds(func(id string, _ Rect) { ids = append(ids, id) })
	assert.Equal(t, []string{"a", "c"}, ids)

	b, _ := r.Bounds("a")
	assert.Equal(t, 1.0, b.X)
}

func TestRegistry_ApplyWithoutUpdater(t *testing.T) {
	r := NewRegistry()
	r.Register("a", Rect{0, 0, 30, 30}, nil)

	assert.True(t, r.Apply("a", Patch{Width: 60, Set: FieldWidth}))
	b, _ := r.Bounds("a")
	assert.Equal(t, Rect{0, 0, 60, 30}, b)
}
