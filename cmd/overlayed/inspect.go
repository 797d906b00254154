package main

import (
	"fmt"
	"strings"

	"github.com/overlaydeck/overlaydeck/internal/document"
	"github.com/overlaydeck/overlaydeck/internal/engine"
)

// inspectLayout renders a plain-text summary of a layout, one component per
// line in paint order. Components that lie partly off the stage are flagged.
func inspectLayout(data []byte) (string, error) {
	l, err := document.ParseLayout(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) %dx%d version %d\n", l.Name, l.ID, l.Width, l.Height, l.Version)
	fmt.Fprintf(&b, "%d components\n", len(l.Components))
	for _, c := range l.Ordered() {
		r := engine.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
		var flags []string
		if c.Hidden {
			flags = append(flags, "hidden")
		}
		if c.Locked {
			flags = append(flags, "locked")
		}
		if c.KeepAspect {
			flags = append(flags, "keep-aspect")
		}
		if r.X < 0 || r.Y < 0 || r.Right() > engine.StageWidth || r.Bottom() > engine.StageHeight {
			flags = append(flags, "off-stage")
		}
		fmt.Fprintf(&b, "  %-24s %-9s z=%-3d %gx%g at (%g, %g)", c.ID, c.Type, c.Z, c.Width, c.Height, c.X, c.Y)
		if len(flags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(flags, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
