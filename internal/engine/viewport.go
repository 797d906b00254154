package engine

import "math"

// Viewport maps the fixed logical stage into a resizable on-screen area.
//
// The stage is scaled to fit the viewport, centered, multiplied by Zoom and
// finally translated by the pan offset:
//
//	screen = stage*scale + origin
type Viewport struct {
	// Left and Top are the screen position of the viewport's top-left corner.
	Left, Top float64
	// Width and Height are the on-screen size in pixels.
	Width, Height float64
	// Zoom is the user zoom factor on top of the fit scale.
	Zoom float64
	// PanX and PanY are the free pixel translation applied after centering.
	PanX, PanY float64

	minZoom     float64
	maxZoom     float64
	sensitivity float64
}

// NewViewport creates a viewport of the given on-screen size.
func NewViewport(width, height float64, s Settings) *Viewport {
	v := &Viewport{Width: width, Height: height, Zoom: 1.0}
	v.configure(s)
	return v
}

// configure applies the zoom limits of s and re-clamps the current zoom.
func (v *Viewport) configure(s Settings) {
	s = s.withDefaults()
	v.minZoom, v.maxZoom = s.MinZoom, s.MaxZoom
	v.sensitivity = s.ZoomSensitivity
	v.SetZoom(v.Zoom)
}

// Resize updates the on-screen placement and size of the viewport.
func (v *Viewport) Resize(left, top, width, height float64) {
	v.Left, v.Top = left, top
	v.Width, v.Height = max(width, 0), max(height, 0)
}

// Scale returns the stage-to-screen scale factor.
func (v *Viewport) Scale() float64 {
	fit := min(v.Width/StageWidth, v.Height/StageHeight)
	return fit * v.Zoom
}

// Origin returns the screen position of the stage's top-left corner.
func (v *Viewport) Origin() (float64, float64) {
	s := v.Scale()
	ox := v.Left + (v.Width-StageWidth*s)/2 + v.PanX
	oy := v.Top + (v.Height-StageHeight*s)/2 + v.PanY
	return ox, oy
}

// Matrix returns the stage-to-screen transform.
func (v *Viewport) Matrix() Matrix2D {
	ox, oy := v.Origin()
	s := v.Scale()
	return ScaleTranslate(s, s, ox, oy)
}

// ScreenToStage converts screen pixels to stage units, clamped to the stage.
func (v *Viewport) ScreenToStage(sx, sy float64) (float64, float64) {
	x, y := v.Matrix().Invert().TransformPoint(sx, sy)
	return clamp(x, 0, StageWidth), clamp(y, 0, StageHeight)
}

// StageToScreen converts stage units to screen pixels.
func (v *Viewport) StageToScreen(x, y float64) (float64, float64) {
	return v.Matrix().TransformPoint(x, y)
}

// ScreenDeltaToStage converts a pixel delta to a stage-unit delta. The result
// is not clamped: gesture math clamps geometry, not pointer motion.
func (v *Viewport) ScreenDeltaToStage(dx, dy float64) (float64, float64) {
	return v.Matrix().Invert().TransformVector(dx, dy)
}

// Wheel applies a scroll gesture. Zoom only changes while ctrl or meta is
// held; the factor is exp(-delta*k) so repeated scrolling is smooth and
// monotonic. It reports whether the zoom changed.
func (v *Viewport) Wheel(delta float64, mods Modifiers) bool {
	if !mods.toggle() || delta == 0 {
		return false
	}
	prev := v.Zoom
	v.SetZoom(v.Zoom * math.Exp(-delta*v.sensitivity))
	return v.Zoom != prev
}

// SetZoom sets the zoom factor, clamped to the configured range.
func (v *Viewport) SetZoom(zoom float64) {
	v.Zoom = clamp(zoom, v.minZoom, v.maxZoom)
}

// PanBy translates the stage by a pixel offset.
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}
