package main

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/overlaydeck/overlaydeck/internal/config"
	"github.com/overlaydeck/overlaydeck/internal/editor"
	"github.com/overlaydeck/overlaydeck/internal/engine"
)

const (
	// wheelStep converts one ebiten wheel notch into a DOM-like delta.
	wheelStep = 120.0

	nudgeStep     = 1.0
	nudgeStepFast = 10.0

	resetDuration = 0.35 // seconds
)

var pointerButtons = []struct {
	key    ebiten.MouseButton
	button engine.MouseButton
}{
	{ebiten.MouseButtonLeft, engine.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, engine.MouseButtonMiddle},
	{ebiten.MouseButtonRight, engine.MouseButtonRight},
}

// viewTween animates the viewport back to its resting transform.
type viewTween struct {
	zoom, panX, panY *gween.Tween
}

func newViewTween(v editor.ViewState, zoom, panX, panY float64) *viewTween {
	return &viewTween{
		zoom: gween.New(float32(v.Zoom), float32(zoom), resetDuration, ease.OutCubic),
		panX: gween.New(float32(v.PanX), float32(panX), resetDuration, ease.OutCubic),
		panY: gween.New(float32(v.PanY), float32(panY), resetDuration, ease.OutCubic),
	}
}

func (t *viewTween) update(dt float32) (zoom, panX, panY float64, done bool) {
	z, zDone := t.zoom.Update(dt)
	x, xDone := t.panX.Update(dt)
	y, yDone := t.panY.Update(dt)
	return float64(z), float64(x), float64(y), zDone && xDone && yDone
}

// runtimeToggles remembers the G/S key presses so a config reload keeps
// them. A reload that changes the same key in the file wins.
type runtimeToggles struct {
	snap, guides *bool
	// file holds the settings of the last applied config, before overrides.
	file engine.Settings
}

func (t *runtimeToggles) apply(next engine.Settings) engine.Settings {
	file := next
	if t.snap != nil {
		if next.SnapEnabled != t.file.SnapEnabled {
			t.snap = nil
		} else {
			next.SnapEnabled = *t.snap
		}
	}
	if t.guides != nil {
		if next.ShowGuides != t.file.ShowGuides {
			t.guides = nil
		} else {
			next.ShowGuides = *t.guides
		}
	}
	t.file = file
	return next
}

// editorGame is the ebiten host of an editor session.
type editorGame struct {
	session *editor.Session
	watcher *config.Watcher
	toggles runtimeToggles

	down         bool
	button       ebiten.MouseButton
	lastX, lastY int

	tween *viewTween
}

func newEditorGame(session *editor.Session, settings engine.Settings) *editorGame {
	return &editorGame{session: session, toggles: runtimeToggles{file: settings}}
}

func (g *editorGame) Update() error {
	g.drainWatcher()

	mods := modifiers()
	g.updatePointer(mods)
	g.updateKeys(mods)

	if _, wy := ebiten.Wheel(); wy != 0 && g.tween == nil {
		g.session.Wheel(-wy*wheelStep, mods)
	}

	if g.tween != nil {
		zoom, panX, panY, done := g.tween.update(1 / float32(ebiten.TPS()))
		g.session.SetView(zoom, panX, panY)
		if done {
			g.tween = nil
		}
	}

	g.session.Frame()
	return nil
}

func (g *editorGame) Draw(screen *ebiten.Image) {
	drawCommands(screen, g.session.DrawCommands())
	drawStatus(screen, g.session)
}

func (g *editorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.session.Resize(0, 0, float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *editorGame) updatePointer(mods engine.Modifiers) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	if !g.down {
		for _, b := range pointerButtons {
			if inpututil.IsMouseButtonJustPressed(b.key) {
				g.session.PointerDown(x, y, b.button, mods)
				g.down, g.button = true, b.key
				g.lastX, g.lastY = cx, cy
				break
			}
		}
		return
	}

	if cx != g.lastX || cy != g.lastY {
		g.session.PointerMove(x, y)
		g.lastX, g.lastY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(g.button) {
		g.session.PointerUp(x, y)
		g.down = false
	}
}

func (g *editorGame) updateKeys(mods engine.Modifiers) {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		on := !g.session.Stage().Settings().ShowGuides
		g.session.SetShowGuides(on)
		g.toggles.guides = &on
		slog.Info("guides toggled", "visible", on)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && !mods.Has(engine.ModCtrl) {
		on := !g.session.Stage().Settings().SnapEnabled
		g.session.SetSnapEnabled(on)
		g.toggles.snap = &on
		slog.Info("snapping toggled", "enabled", on)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		g.tween = newViewTween(g.session.View(), 1, 0, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.down {
		g.session.SetSelection(nil)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if n := g.session.RemoveSelected(); n > 0 {
			slog.Info("components deleted", "count", n)
		}
	}

	step := nudgeStep
	if mods.Has(engine.ModShift) {
		step = nudgeStepFast
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.session.Nudge(-step, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.session.Nudge(step, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.session.Nudge(0, -step)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.session.Nudge(0, step)
	}
}

// drainWatcher applies config reloads without blocking the frame.
func (g *editorGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-g.watcher.Updates:
		if ok && cfg != nil {
			settings := g.toggles.apply(cfg.Settings())
			g.session.SetSettings(settings)
			slog.Info("config reloaded", "snap", settings.SnapEnabled, "guides", settings.ShowGuides, "threshold", settings.SnapThreshold)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			slog.Warn("config reload failed", "error", err)
		}
	default:
	}
}

func modifiers() engine.Modifiers {
	var m engine.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= engine.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= engine.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= engine.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= engine.ModMeta
	}
	return m
}
