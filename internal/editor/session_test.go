package editor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlaydeck/overlaydeck/internal/document"
	"github.com/overlaydeck/overlaydeck/internal/engine"
)

const testLayout = `
id: layout_test
name: Test
components:
  a:
    type: text
    x: 100
    y: 100
    width: 200
    height: 50
    z: 1
  b:
    type: image
    x: 310
    y: 90
    width: 150
    height: 80
    z: 2
    keepAspect: true
  c:
    type: text
    x: 600
    y: 600
    width: 50
    height: 50
    hidden: true
  d:
    type: datafield
    x: 1000
    y: 500
    width: 100
    height: 100
    z: 3
    locked: true
  e:
    type: datetime
    x: 1050
    y: 550
    width: 100
    height: 100
    z: 4
`

type recorder struct {
	commits    [][]engine.Geometry
	selections [][]string
}

// newTestSession returns a session whose viewport maps screen pixels 1:1
// onto stage units.
func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	settings := engine.DefaultSettings()
	settings.BatchMoves = false

	s := New(settings, engine.StageWidth, engine.StageHeight, Hooks{
		OnCommit:          func(c []engine.Geometry) { rec.commits = append(rec.commits, c) },
		OnSelectionChange: func(ids []string) { rec.selections = append(rec.selections, ids) },
	})
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	require.NoError(t, s.LoadData([]byte(testLayout)))
	return s, rec
}

func TestSession_LoadMountsVisibleComponents(t *testing.T) {
	s, _ := newTestSession(t)
	reg := s.Stage().Registry()

	assert.Equal(t, 4, reg.Len())
	assert.False(t, reg.Has("c"), "hidden components are not mounted")

	require.NoError(t, s.SetHidden("c", false))
	assert.True(t, reg.Has("c"))
	require.NoError(t, s.SetHidden("c", true))
	assert.False(t, reg.Has("c"))

	assert.ErrorIs(t, s.SetHidden("missing", true), document.ErrComponentNotFound)
}

func TestSession_LoadDataInvalid(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.LoadData([]byte("components:\n  x:\n    type: video\n"))
	assert.ErrorIs(t, err, document.ErrInvalidLayout)
	assert.Equal(t, "layout_test", s.Layout().ID, "failed loads keep the current layout")
}

func TestSession_DragCommitsToLayout(t *testing.T) {
	s, rec := newTestSession(t)

	s.PointerDown(280, 140, engine.MouseButtonLeft, 0)
	assert.Equal(t, []string{"a"}, s.Selection())
	s.PointerMove(288, 140)
	s.PointerUp(288, 140)

	a := s.Layout().Components["a"]
	assert.Equal(t, 110.0, a.X, "right edge snapped to b's left edge")
	assert.Equal(t, 105.0, a.Y)
	assert.Equal(t, 2, s.Layout().Version)
	assert.Equal(t, "2026-01-02T03:04:05Z", s.Layout().UpdatedAt)

	require.Len(t, rec.commits, 1)
	assert.Equal(t, "a", rec.commits[0][0].ID)
	assert.Equal(t, [][]string{{"a"}}, rec.selections)
}

func TestSession_HitTestTopmost(t *testing.T) {
	s, _ := newTestSession(t)

	assert.Equal(t, "e", s.HitTest(1075, 575))
	assert.Equal(t, "d", s.HitTest(1010, 510))
	assert.Equal(t, "", s.HitTest(625, 625), "hidden components are not hit")
	assert.Equal(t, "", s.HitTest(5, 5))
}

func TestSession_LockedComponentSelectsOnly(t *testing.T) {
	s, rec := newTestSession(t)

	s.PointerDown(1010, 510, engine.MouseButtonLeft, 0)
	s.PointerMove(1100, 600)
	s.PointerUp(1100, 600)

	assert.Equal(t, []string{"d"}, s.Selection())
	assert.Equal(t, 1000.0, s.Layout().Components["d"].X)
	assert.Empty(t, rec.commits)
}

func TestSession_TargetAtHandle(t *testing.T) {
	s, _ := newTestSession(t)
	require.True(t, s.SetSelection([]string{"b"}))

	target := s.TargetAt(460, 170)
	assert.Equal(t, engine.TargetHandle, target.Kind)
	assert.Equal(t, "b", target.ID)
	assert.Equal(t, engine.HandleBottomRight, target.Handle)
	assert.True(t, target.KeepAspect)

	assert.Equal(t, engine.TargetItem, s.TargetAt(400, 130).Kind)
	assert.Equal(t, engine.TargetCanvas, s.TargetAt(800, 800).Kind)
}

func TestSession_ResizeKeepAspect(t *testing.T) {
	s, _ := newTestSession(t)
	require.True(t, s.SetSelection([]string{"b"}))

	// Bottom-right handle of b sits at (460, 170).
	s.PointerDown(460, 170, engine.MouseButtonLeft, 0)
	s.PointerMove(475, 170)
	s.PointerUp(475, 170)

	b := s.Layout().Components["b"]
	assert.InDelta(t, 150.0/80.0, b.Width/b.Height, 1e-9)
	assert.InDelta(t, 180.0, b.Width, 1e-9)
}

func TestSession_RemoveSelectedSkipsLocked(t *testing.T) {
	s, _ := newTestSession(t)
	require.True(t, s.SetSelection([]string{"a", "d"}))

	assert.Equal(t, 1, s.RemoveSelected())
	_, ok := s.Layout().Component("a")
	assert.False(t, ok)
	assert.False(t, s.Stage().Registry().Has("a"))
	assert.Equal(t, []string{"d"}, s.Selection())
}

func TestSession_AddComponentClamps(t *testing.T) {
	s, _ := newTestSession(t)

	c, err := s.AddComponent(document.Component{Type: document.ComponentText, X: 1900, Y: -10, Width: 100, Height: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 1820.0, c.X)
	assert.Equal(t, 0.0, c.Y)
	assert.Equal(t, 24.0, c.Height)
	assert.Equal(t, 5, c.Z)
	assert.True(t, s.Stage().Registry().Has(c.ID))
}

func TestSession_Nudge(t *testing.T) {
	s, rec := newTestSession(t)
	require.True(t, s.SetSelection([]string{"a", "d"}))

	changes := s.Nudge(-200, 0)
	require.Len(t, changes, 1, "locked components stay put")
	assert.Equal(t, "a", changes[0].ID)
	assert.Equal(t, 0.0, changes[0].X)
	assert.Equal(t, 0.0, s.Layout().Components["a"].X)
	assert.Len(t, rec.commits, 1)

	assert.Empty(t, s.Nudge(-1, 0), "already at the edge")
	assert.Len(t, rec.commits, 1)
}

func TestSession_SetGeometry(t *testing.T) {
	s, rec := newTestSession(t)

	require.NoError(t, s.SetGeometry("a", engine.Rect{X: -50, Y: 10, Width: 10, Height: 10}))
	a := s.Layout().Components["a"]
	assert.Equal(t, engine.Rect{X: 0, Y: 10, Width: 24, Height: 24}, rectOf(a))

	b, ok := s.Stage().Registry().Bounds("a")
	require.True(t, ok)
	assert.Equal(t, rectOf(a), b)
	assert.Len(t, rec.commits, 1)

	assert.ErrorIs(t, s.SetGeometry("missing", engine.Rect{}), document.ErrComponentNotFound)
}

func TestSession_DrawCommands(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetSnapEnabled(false)

	s.PointerDown(280, 140, engine.MouseButtonLeft, 0)
	s.PointerMove(288, 140)

	cmds := s.DrawCommands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, RoleStage, cmds[0].Role)

	roles := map[string]int{}
	var gapLabels []string
	for _, c := range cmds {
		roles[c.Role]++
		if c.Role == RoleGap && c.Op == "label" {
			gapLabels = append(gapLabels, c.Text)
		}
	}
	assert.Equal(t, 8, roles[RoleHandle])
	assert.Equal(t, 1, roles[RoleSelection])
	assert.Positive(t, roles[RoleGuide])
	assert.Contains(t, gapLabels, "2px")

	s.PointerUp(288, 140)
	for _, c := range s.DrawCommands() {
		assert.NotEqual(t, RoleGuide, c.Role, "guides cleared after release")
	}

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(s.Render()), &decoded))
	assert.Len(t, decoded, len(s.DrawCommands()))
}

func TestSession_DrawCommandsGroup(t *testing.T) {
	s, _ := newTestSession(t)
	require.True(t, s.SetSelection([]string{"a", "b"}))

	roles := map[string]int{}
	for _, c := range s.DrawCommands() {
		roles[c.Role]++
	}
	assert.Equal(t, 1, roles[RoleGroup])
	assert.Equal(t, 8, roles[RoleHandle])
	assert.Equal(t, 2, roles[RoleSelection])
}

func TestSession_View(t *testing.T) {
	s, _ := newTestSession(t)
	s.Resize(0, 0, engine.StageWidth/2, engine.StageHeight/2)
	s.SetView(2, 10, 20)

	v := s.View()
	assert.Equal(t, 2.0, v.Zoom)
	assert.Equal(t, 1.0, v.Scale)
	assert.Equal(t, 10.0, v.PanX)
}
