package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	snapOn  = SnapOptions{Threshold: DefaultSnapThreshold, Enabled: true}
	snapOff = SnapOptions{Threshold: DefaultSnapThreshold, Enabled: false}
)

func guidesOf(guides []Guide, kind GuideKind) []Guide {
	var out []Guide
	for _, g := range guides {
		if g.Kind == kind {
			out = append(out, g)
		}
	}
	return out
}

func TestSnapMove_RightEdgeToNeighborLeftEdge(t *testing.T) {
	a := Rect{X: 100, Y: 100, Width: 200, Height: 50}
	b := Rect{X: 310, Y: 90, Width: 150, Height: 80}

	// A's right edge lands at 308, two units short of B's left edge.
	dx, dy, guides := SnapMove([]Rect{a}, 8, 0, []Rect{b}, snapOn)

	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 310.0, a.Translate(dx, dy).Right())
	// The centers are 5 apart vertically, so y snaps as well.
	assert.Equal(t, 5.0, dy)

	vertical := guidesOf(guides, GuideVertical)
	require.Len(t, vertical, 1)
	assert.Equal(t, 310.0, vertical[0].Pos)
	assert.Equal(t, 90.0, vertical[0].Start)
	assert.Equal(t, 170.0, vertical[0].End)

	horizontal := guidesOf(guides, GuideHorizontal)
	require.Len(t, horizontal, 1)
	assert.Equal(t, 130.0, horizontal[0].Pos)

	assert.Empty(t, guidesOf(guides, GuideGapX), "touching neighbors have no gap")
}

func TestSnapMove_DisabledPassesDeltaThrough(t *testing.T) {
	a := Rect{X: 100, Y: 100, Width: 200, Height: 50}
	b := Rect{X: 310, Y: 90, Width: 150, Height: 80}

	dx, dy, guides := SnapMove([]Rect{a}, 8, 0, []Rect{b}, snapOff)

	assert.Equal(t, 8.0, dx)
	assert.Equal(t, 0.0, dy)

	vertical := guidesOf(guides, GuideVertical)
	require.Len(t, vertical, 1)
	assert.Equal(t, 310.0, vertical[0].Pos)

	gaps := guidesOf(guides, GuideGapX)
	require.Len(t, gaps, 1)
	assert.Equal(t, 2.0, gaps[0].Distance)
	assert.Equal(t, 308.0, gaps[0].Start)
	assert.Equal(t, 310.0, gaps[0].End)
}

func TestSnapMove_Threshold(t *testing.T) {
	a := Rect{X: 10, Y: 500, Width: 50, Height: 50}

	dx, dy, guides := SnapMove([]Rect{a}, -4, 0, nil, snapOn)
	assert.Equal(t, -10.0, dx, "exactly at threshold snaps to the stage edge")
	assert.Equal(t, 0.0, dy)
	require.Len(t, guidesOf(guides, GuideVertical), 1)

	dx, _, guides = SnapMove([]Rect{a}, -3.5, 0, nil, snapOn)
	assert.Equal(t, -3.5, dx)
	assert.Empty(t, guidesOf(guides, GuideVertical))
}

func TestSnapMove_GroupBox(t *testing.T) {
	starts := []Rect{
		{X: 100, Y: 100, Width: 50, Height: 50},
		{X: 200, Y: 300, Width: 50, Height: 50},
	}
	target := Rect{X: 500, Y: 700, Width: 100, Height: 100}

	// Group box spans x 100..250; its right edge lands at 503 after dx=253.
	dx, _, guides := SnapMove(starts, 253, 0, []Rect{target}, snapOn)
	assert.Equal(t, 250.0, dx)
	vertical := guidesOf(guides, GuideVertical)
	require.Len(t, vertical, 1)
	assert.Equal(t, 500.0, vertical[0].Pos)
}

func TestSnapMove_GapGuides(t *testing.T) {
	box := Rect{X: 100, Y: 100, Width: 100, Height: 100}
	others := []Rect{
		{X: 300, Y: 120, Width: 100, Height: 50}, // right, farther
		{X: 250, Y: 100, Width: 20, Height: 20},  // right, nearest
		{X: 100, Y: 400, Width: 100, Height: 100}, // below
		{X: 1000, Y: 1000, Width: 10, Height: 10}, // no overlap on either axis
	}

	_, _, guides := SnapMove([]Rect{box}, 0, 0, others, snapOff)

	gx := guidesOf(guides, GuideGapX)
	require.Len(t, gx, 1)
	assert.Equal(t, 50.0, gx[0].Distance)
	assert.Equal(t, 200.0, gx[0].Start)
	assert.Equal(t, 250.0, gx[0].End)
	assert.Equal(t, 110.0, gx[0].Pos)

	gy := guidesOf(guides, GuideGapY)
	require.Len(t, gy, 1)
	assert.Equal(t, 200.0, gy[0].Distance)
	assert.Equal(t, 200.0, gy[0].Start)
	assert.Equal(t, 400.0, gy[0].End)
	assert.Equal(t, 150.0, gy[0].Pos)
}

func TestSnapMove_StageCenterGuide(t *testing.T) {
	a := Rect{X: 912, Y: 490, Width: 100, Height: 100}
	t1 := Rect{X: 963, Y: 0, Width: 10, Height: 10}

	// The item's left edge at 963 beats the stage center at 960, yet the
	// center still sits within threshold of the stage center.
	dx, _, guides := SnapMove([]Rect{a}, 0, 0, []Rect{t1}, snapOn)
	assert.Equal(t, 1.0, dx)

	var xs []float64
	for _, g := range guidesOf(guides, GuideVertical) {
		xs = append(xs, g.Pos)
	}
	assert.ElementsMatch(t, []float64{963, 960}, xs)
}

func TestSnapMove_StageCenterNotDuplicated(t *testing.T) {
	a := Rect{X: 910, Y: 490, Width: 100, Height: 100}

	_, _, guides := SnapMove([]Rect{a}, 0, 0, nil, snapOn)
	assert.Len(t, guidesOf(guides, GuideVertical), 1)
	assert.Len(t, guidesOf(guides, GuideHorizontal), 1)
}

func TestSnapMove_Empty(t *testing.T) {
	dx, dy, guides := SnapMove(nil, 3, 4, nil, snapOn)
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, 4.0, dy)
	assert.Nil(t, guides)
}

func TestSnapResize(t *testing.T) {
	tests := []struct {
		name      string
		handle    Handle
		proposed  Rect
		targets   []Rect
		opts      SnapOptions
		want      Rect
		wantLines []float64
	}{
		{
			name:      "right edge snaps, left edge fixed",
			handle:    HandleRight,
			proposed:  Rect{X: 100, Y: 100, Width: 205, Height: 50},
			targets:   []Rect{{X: 310, Y: 90, Width: 150, Height: 80}},
			opts:      snapOn,
			want:      Rect{X: 100, Y: 100, Width: 210, Height: 50},
			wantLines: []float64{310},
		},
		{
			name:      "left edge snaps, right edge fixed",
			handle:    HandleLeft,
			proposed:  Rect{X: 303, Y: 100, Width: 97, Height: 50},
			targets:   []Rect{{X: 100, Y: 400, Width: 200, Height: 50}},
			opts:      snapOn,
			want:      Rect{X: 300, Y: 100, Width: 100, Height: 50},
			wantLines: []float64{300},
		},
		{
			name:      "disabled keeps rect but reports guide",
			handle:    HandleLeft,
			proposed:  Rect{X: 303, Y: 100, Width: 97, Height: 50},
			targets:   []Rect{{X: 100, Y: 400, Width: 200, Height: 50}},
			opts:      snapOff,
			want:      Rect{X: 303, Y: 100, Width: 97, Height: 50},
			wantLines: []float64{300},
		},
		{
			name:      "corner snaps both axes independently",
			handle:    HandleBottomRight,
			proposed:  Rect{X: 50, Y: 75, Width: 300, Height: 150},
			targets:   []Rect{{X: 352, Y: 0, Width: 100, Height: 226}},
			opts:      snapOn,
			want:      Rect{X: 50, Y: 75, Width: 302, Height: 151},
			wantLines: []float64{352, 226},
		},
		{
			name:      "snap to stage edge",
			handle:    HandleRight,
			proposed:  Rect{X: 1800, Y: 0, Width: 118, Height: 50},
			opts:      snapOn,
			want:      Rect{X: 1800, Y: 0, Width: 120, Height: 50},
			wantLines: []float64{1920},
		},
		{
			name:      "min size wins over snap",
			handle:    HandleLeft,
			proposed:  Rect{X: 100, Y: 0, Width: 26, Height: 50},
			targets:   []Rect{{X: 104, Y: 500, Width: 10, Height: 10}},
			opts:      snapOn,
			want:      Rect{X: 102, Y: 0, Width: 24, Height: 50},
			wantLines: []float64{104},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, guides := SnapResize(tt.handle, tt.proposed, tt.targets, tt.opts, DefaultMinSize)
			assert.Equal(t, tt.want, got)

			var lines []float64
			for _, g := range guides {
				lines = append(lines, g.Pos)
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestGuideKind_JSON(t *testing.T) {
	b, err := GuideGapX.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"gap-x"`, string(b))
}
