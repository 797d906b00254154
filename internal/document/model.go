package document

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/overlaydeck/overlaydeck/internal/typeid"
)

var (
	ErrComponentNotFound = errors.New("component not found")
	ErrComponentExists   = errors.New("component already exists")
	ErrInvalidLayout     = errors.New("invalid layout")
)

// Logical canvas size of every overlay layout.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// Layout is an overlay layout: a set of components placed on the canvas.
type Layout struct {
	ID         string               `json:"id" yaml:"id"`
	Name       string               `json:"name" yaml:"name"`
	Width      int                  `json:"width" yaml:"width"`
	Height     int                  `json:"height" yaml:"height"`
	Version    int                  `json:"version" yaml:"version"`
	UpdatedAt  string               `json:"updatedAt" yaml:"updatedAt"`
	Components map[string]Component `json:"components" yaml:"components"`
}

type ComponentType string

const (
	ComponentText      ComponentType = "text"
	ComponentImage     ComponentType = "image"
	ComponentDateTime  ComponentType = "datetime"
	ComponentDataField ComponentType = "datafield"
)

func (t ComponentType) Valid() bool {
	switch t {
	case ComponentText, ComponentImage, ComponentDateTime, ComponentDataField:
		return true
	}
	return false
}

type Component struct {
	ID         string         `json:"id" yaml:"id"`
	Type       ComponentType  `json:"type" yaml:"type"`
	Name       string         `json:"name" yaml:"name"`
	X          float64        `json:"x" yaml:"x"`
	Y          float64        `json:"y" yaml:"y"`
	Width      float64        `json:"width" yaml:"width"`
	Height     float64        `json:"height" yaml:"height"`
	Z          int            `json:"z" yaml:"z"`
	KeepAspect bool           `json:"keepAspect,omitempty" yaml:"keepAspect,omitempty"`
	Hidden     bool           `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Locked     bool           `json:"locked,omitempty" yaml:"locked,omitempty"`
	Data       map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// NewEmptyLayout creates a layout with no components.
func NewEmptyLayout(id, name string) *Layout {
	if id == "" {
		id = typeid.NewLayoutID()
	}
	return &Layout{
		ID:         id,
		Name:       name,
		Width:      CanvasWidth,
		Height:     CanvasHeight,
		Version:    1,
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		Components: map[string]Component{},
	}
}

// ParseLayout decodes a layout from YAML or JSON and validates it.
// Components keyed by id may omit the id field.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	if l.Width == 0 {
		l.Width = CanvasWidth
	}
	if l.Height == 0 {
		l.Height = CanvasHeight
	}
	if l.Version == 0 {
		l.Version = 1
	}
	if l.Components == nil {
		l.Components = map[string]Component{}
	}
	for key, c := range l.Components {
		if c.ID == "" {
			c.ID = key
			l.Components[key] = c
		}
		if c.ID != key {
			return nil, fmt.Errorf("%w: component key %q has id %q", ErrInvalidLayout, key, c.ID)
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func (c Component) validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: component %s has unknown type %q", ErrInvalidLayout, c.ID, c.Type)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: component %s has negative size", ErrInvalidLayout, c.ID)
	}
	if p := typeid.Prefix(c.ID); p != "" && p != typeid.PrefixComponent {
		return fmt.Errorf("%w: component id %s carries prefix %q", ErrInvalidLayout, c.ID, p)
	}
	return nil
}

// ApplyGeometry applies a partial geometry update. Recognized keys are x, y,
// width and height; other keys are ignored.
func (l *Layout) ApplyGeometry(id string, changes map[string]float64) error {
	c, ok := l.Components[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	if v, ok := changes["x"]; ok {
		c.X = v
	}
	if v, ok := changes["y"]; ok {
		c.Y = v
	}
	if v, ok := changes["width"]; ok {
		c.Width = v
	}
	if v, ok := changes["height"]; ok {
		c.Height = v
	}
	l.Components[id] = c
	return nil
}

// AddComponent inserts c, assigning an id when empty and placing it on top
// when Z is zero.
func (l *Layout) AddComponent(c Component) (Component, error) {
	if c.ID == "" {
		c.ID = typeid.NewComponentID()
	}
	if _, ok := l.Components[c.ID]; ok {
		return Component{}, fmt.Errorf("%w: %s", ErrComponentExists, c.ID)
	}
	if err := c.validate(); err != nil {
		return Component{}, err
	}
	if c.Z == 0 {
		c.Z = l.topZ() + 1
	}
	if l.Components == nil {
		l.Components = map[string]Component{}
	}
	l.Components[c.ID] = c
	return c, nil
}

// RemoveComponent deletes a component.
func (l *Layout) RemoveComponent(id string) error {
	if _, ok := l.Components[id]; !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	delete(l.Components, id)
	return nil
}

// Component returns the component with the given id.
func (l *Layout) Component(id string) (Component, bool) {
	c, ok := l.Components[id]
	return c, ok
}

// Ordered returns components back to front: by Z, then by id.
func (l *Layout) Ordered() []Component {
	out := make([]Component, 0, len(l.Components))
	for _, c := range l.Components {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Component) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Touch records a committed edit.
func (l *Layout) Touch(now time.Time) {
	l.Version++
	l.UpdatedAt = now.UTC().Format(time.RFC3339)
}

func (l *Layout) topZ() int {
	top := 0
	for _, c := range l.Components {
		top = max(top, c.Z)
	}
	return top
}
