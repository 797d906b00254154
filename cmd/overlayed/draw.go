package main

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/overlaydeck/overlaydeck/internal/editor"
)

const dashLength = 6.0

var backgroundColor = color.RGBA{R: 0x1c, G: 0x1c, B: 0x22, A: 0xff}

// drawCommands executes editor draw commands on screen in order.
func drawCommands(screen *ebiten.Image, cmds []editor.DrawCommand) {
	screen.Fill(backgroundColor)
	for _, c := range cmds {
		switch c.Op {
		case "rect":
			drawRect(screen, c)
		case "line":
			drawLine(screen, c)
		case "label":
			// Debug font glyphs sit below the anchor; gap labels are centered.
			x, y := c.X, c.Y
			if c.Role == editor.RoleGap {
				x -= float64(len(c.Text)) * 3
				y -= 8
			}
			ebitenutil.DebugPrintAt(screen, c.Text, int(x), int(y))
		}
	}
}

func drawRect(screen *ebiten.Image, c editor.DrawCommand) {
	x, y, w, h := float32(c.X), float32(c.Y), float32(c.Width), float32(c.Height)
	if fill, ok := parseColor(c.Fill); ok {
		vector.FillRect(screen, x, y, w, h, fill, false)
	}
	stroke, ok := parseColor(c.Stroke)
	if !ok || c.StrokeWidth <= 0 {
		return
	}
	if !c.Dashed {
		vector.StrokeRect(screen, x, y, w, h, float32(c.StrokeWidth), stroke, false)
		return
	}
	sw := float32(c.StrokeWidth)
	dashedLine(screen, x, y, x+w, y, sw, stroke)
	dashedLine(screen, x+w, y, x+w, y+h, sw, stroke)
	dashedLine(screen, x+w, y+h, x, y+h, sw, stroke)
	dashedLine(screen, x, y+h, x, y, sw, stroke)
}

func drawLine(screen *ebiten.Image, c editor.DrawCommand) {
	stroke, ok := parseColor(c.Stroke)
	if !ok {
		return
	}
	x1, y1, x2, y2 := float32(c.X), float32(c.Y), float32(c.X2), float32(c.Y2)
	sw := float32(max(c.StrokeWidth, 1))
	if c.Dashed {
		dashedLine(screen, x1, y1, x2, y2, sw, stroke)
		return
	}
	vector.StrokeLine(screen, x1, y1, x2, y2, sw, stroke, true)
}

func dashedLine(screen *ebiten.Image, x1, y1, x2, y2, width float32, clr color.Color) {
	dx, dy := float64(x2-x1), float64(y2-y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	for d := 0.0; d < length; d += 2 * dashLength {
		end := min(d+dashLength, length)
		vector.StrokeLine(screen,
			x1+float32(ux*d), y1+float32(uy*d),
			x1+float32(ux*end), y1+float32(uy*end),
			width, clr, true)
	}
}

func drawStatus(screen *ebiten.Image, s *editor.Session) {
	settings := s.Stage().Settings()
	v := s.View()
	msg := fmt.Sprintf("%s v%d  zoom %.0f%%  snap %s  guides %s  selected %d",
		s.Layout().Name, s.Layout().Version, v.Zoom*100,
		onOff(settings.SnapEnabled), onOff(settings.ShowGuides), len(s.Selection()))
	ebitenutil.DebugPrintAt(screen, msg, 8, screen.Bounds().Dy()-20)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// parseColor reads "#rrggbb" or "#rrggbbaa". Empty strings report false.
func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}, true
}
