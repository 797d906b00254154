package engine

// Logical stage size. Every item rectangle lives inside [0,StageWidth]x[0,StageHeight].
const (
	StageWidth  = 1920.0
	StageHeight = 1080.0
)

const (
	DefaultMinSize         = 24.0
	DefaultSnapThreshold   = 6.0
	DefaultMinZoom         = 0.1
	DefaultMaxZoom         = 8.0
	DefaultZoomSensitivity = 0.0015
	DefaultHandleSize      = 10.0 // screen pixels
)

// StageRect is the full stage as a rectangle. It doubles as the virtual
// snap target that lets items align to the stage edges and center.
var StageRect = Rect{X: 0, Y: 0, Width: StageWidth, Height: StageHeight}

// Settings holds the host-supplied knobs of the engine.
type Settings struct {
	// SnapEnabled gates value alteration by the snapping engine. Guides are
	// computed either way.
	SnapEnabled bool
	// ShowGuides gates whether computed guides are published for rendering.
	ShowGuides bool

	SnapThreshold   float64
	MinSize         float64
	MinZoom         float64
	MaxZoom         float64
	ZoomSensitivity float64
	HandleSize      float64

	// BatchMoves defers pointer-move processing to Stage.Frame so at most one
	// snapping pass runs per rendered frame.
	BatchMoves bool
}

// DefaultSettings returns the settings used when the host supplies none.
func DefaultSettings() Settings {
	return Settings{
		SnapEnabled:     true,
		ShowGuides:      true,
		SnapThreshold:   DefaultSnapThreshold,
		MinSize:         DefaultMinSize,
		MinZoom:         DefaultMinZoom,
		MaxZoom:         DefaultMaxZoom,
		ZoomSensitivity: DefaultZoomSensitivity,
		HandleSize:      DefaultHandleSize,
	}
}

// withDefaults fills zero-valued numeric fields. Booleans are taken as given.
func (s Settings) withDefaults() Settings {
	if s.SnapThreshold <= 0 {
		s.SnapThreshold = DefaultSnapThreshold
	}
	if s.MinSize <= 0 {
		s.MinSize = DefaultMinSize
	}
	if s.MinZoom <= 0 {
		s.MinZoom = DefaultMinZoom
	}
	if s.MaxZoom < s.MinZoom {
		s.MaxZoom = max(DefaultMaxZoom, s.MinZoom)
	}
	if s.ZoomSensitivity <= 0 {
		s.ZoomSensitivity = DefaultZoomSensitivity
	}
	if s.HandleSize <= 0 {
		s.HandleSize = DefaultHandleSize
	}
	return s
}
