package document

import "github.com/overlaydeck/overlaydeck/internal/typeid"

// NewSampleLayout returns a small stream overlay with one component of each
// type. Ids are freshly generated.
func NewSampleLayout() *Layout {
	l := NewEmptyLayout("", "Sample overlay")

	sample := []Component{
		{
			Type: ComponentText, Name: "Title",
			X: 80, Y: 60, Width: 640, Height: 96,
			Data: map[string]any{"text": "Live from the workshop", "fontSize": 48},
		},
		{
			Type: ComponentImage, Name: "Logo",
			X: 1680, Y: 40, Width: 200, Height: 200, KeepAspect: true,
			Data: map[string]any{"src": "logo.png"},
		},
		{
			Type: ComponentDateTime, Name: "Clock",
			X: 1600, Y: 960, Width: 280, Height: 72,
			Data: map[string]any{"format": "15:04:05"},
		},
		{
			Type: ComponentDataField, Name: "Session",
			X: 80, Y: 960, Width: 480, Height: 72,
			Data: map[string]any{"field": "session.title"},
		},
		{
			Type: ComponentText, Name: "Watermark",
			X: 880, Y: 1020, Width: 160, Height: 40, Locked: true,
			Data: map[string]any{"text": "overlaydeck"},
		},
	}
	for i, c := range sample {
		c.ID = typeid.NewComponentID()
		c.Z = i + 1
		l.Components[c.ID] = c
	}
	return l
}
