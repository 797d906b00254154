package editor

import (
	"encoding/json"
	"fmt"

	"github.com/overlaydeck/overlaydeck/internal/document"
	"github.com/overlaydeck/overlaydeck/internal/engine"
)

// DrawCommand is a single drawing operation in screen pixels. Hosts execute
// the list in order (painter's order, back to front).
type DrawCommand struct {
	Op          string  `json:"op"`                 // "rect", "line" or "label"
	Role        string  `json:"role"`               // what is drawn, see the Role constants
	ObjectID    string  `json:"objectId,omitempty"` // for hit correlation
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width,omitempty"`  // rect
	Height      float64 `json:"height,omitempty"` // rect
	X2          float64 `json:"x2,omitempty"`     // line end
	Y2          float64 `json:"y2,omitempty"`     // line end
	Text        string  `json:"text,omitempty"`   // label
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dashed      bool    `json:"dashed,omitempty"`
}

const (
	RoleStage     = "stage"
	RoleComponent = "component"
	RoleSelection = "selection"
	RoleGroup     = "group"
	RoleHandle    = "handle"
	RoleGuide     = "guide"
	RoleGap       = "gap"
	RoleMarquee   = "marquee"
)

const (
	colorStage     = "#101018"
	colorSelection = "#4aa3ff"
	colorHandle    = "#ffffff"
	colorGuide     = "#ff3d8b"
	colorGap       = "#ffb02e"
	colorMarquee   = "#4aa3ff33"
	colorLocked    = "#8a8a99"
)

var componentColors = map[document.ComponentType]string{
	document.ComponentText:      "#2e7d6b",
	document.ComponentImage:     "#5b4b9e",
	document.ComponentDateTime:  "#9e6b2e",
	document.ComponentDataField: "#2e5b9e",
}

// DrawCommands compiles the current editor state into draw commands.
func (s *Session) DrawCommands() []DrawCommand {
	v := s.stage.Viewport()
	m := v.Matrix()
	toScreen := func(r engine.Rect) engine.Rect { return m.TransformRect(r) }

	var cmds []DrawCommand
	cmds = append(cmds, rectCommand(RoleStage, "", toScreen(engine.StageRect), colorStage, "", 0))

	for _, c := range s.layout.Ordered() {
		if c.Hidden {
			continue
		}
		r, ok := s.stage.Registry().Bounds(c.ID)
		if !ok {
			continue
		}
		sr := toScreen(r)
		stroke := ""
		if c.Locked {
			stroke = colorLocked
		}
		cmds = append(cmds, rectCommand(RoleComponent, c.ID, sr, componentColors[c.Type], stroke, 1))
		cmds = append(cmds, DrawCommand{
			Op: "label", Role: RoleComponent, ObjectID: c.ID,
			X: sr.X + 4, Y: sr.Y + 4, Text: componentLabel(c),
		})
	}

	selected := s.stage.Selection().IDs()
	for _, id := range selected {
		if r, ok := s.stage.Registry().Bounds(id); ok {
			cmds = append(cmds, rectCommand(RoleSelection, id, toScreen(r), "", colorSelection, 2))
		}
	}
	switch {
	case len(selected) == 1:
		if r, ok := s.stage.Registry().Bounds(selected[0]); ok && !s.anySelectedLocked() {
			cmds = append(cmds, s.handleCommands(selected[0], toScreen(r))...)
		}
	case len(selected) > 1:
		if r, ok := s.stage.SelectionBounds(); ok {
			sr := toScreen(r)
			group := rectCommand(RoleGroup, "", sr, "", colorSelection, 1)
			group.Dashed = true
			cmds = append(cmds, group)
			if !s.anySelectedLocked() {
				cmds = append(cmds, s.handleCommands("", sr)...)
			}
		}
	}

	for _, g := range s.stage.Guides() {
		cmds = append(cmds, guideCommands(g, m)...)
	}

	if r, ok := s.stage.Marquee(); ok {
		marquee := rectCommand(RoleMarquee, "", toScreen(r), colorMarquee, colorSelection, 1)
		marquee.Dashed = true
		cmds = append(cmds, marquee)
	}
	return cmds
}

// Render returns the draw commands as JSON.
func (s *Session) Render() string {
	result, _ := DrawCommandsToJSON(s.DrawCommands())
	return result
}

func (s *Session) handleCommands(id string, box engine.Rect) []DrawCommand {
	size := s.stage.Settings().HandleSize
	cmds := make([]DrawCommand, 0, len(engine.Handles))
	for _, h := range engine.Handles {
		// box is already in screen space.
		cx, cy := h.Point(box)
		cmds = append(cmds, DrawCommand{
			Op: "rect", Role: RoleHandle, ObjectID: id, Text: h.String(),
			X: cx - size/2, Y: cy - size/2, Width: size, Height: size,
			Fill: colorHandle, Stroke: colorSelection, StrokeWidth: 1,
		})
	}
	return cmds
}

func guideCommands(g engine.Guide, m engine.Matrix2D) []DrawCommand {
	var x1, y1, x2, y2 float64
	switch g.Kind {
	case engine.GuideVertical, engine.GuideGapY:
		x1, y1 = m.TransformPoint(g.Pos, g.Start)
		x2, y2 = m.TransformPoint(g.Pos, g.End)
	default:
		x1, y1 = m.TransformPoint(g.Start, g.Pos)
		x2, y2 = m.TransformPoint(g.End, g.Pos)
	}

	if g.IsLine() {
		return []DrawCommand{{Op: "line", Role: RoleGuide, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: colorGuide, StrokeWidth: 1}}
	}
	return []DrawCommand{
		{Op: "line", Role: RoleGap, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: colorGap, StrokeWidth: 1, Dashed: true},
		{Op: "label", Role: RoleGap, X: (x1 + x2) / 2, Y: (y1 + y2) / 2, Text: gapLabel(g.Distance), Fill: colorGap},
	}
}

func rectCommand(role, id string, r engine.Rect, fill, stroke string, width float64) DrawCommand {
	return DrawCommand{
		Op: "rect", Role: role, ObjectID: id,
		X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
		Fill: fill, Stroke: stroke, StrokeWidth: width,
	}
}

func componentLabel(c document.Component) string {
	if c.Name != "" {
		return c.Name
	}
	return string(c.Type)
}

func gapLabel(d float64) string {
	return fmt.Sprintf("%.0fpx", d)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r engine.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
