package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixLayout    = "layout"
	PrefixComponent = "comp"
)

var ErrInvalidID = errors.New("invalid id")

// New returns a fresh id such as "comp_01h455vb4pex5vsknk084sn02q".
func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewLayoutID() string    { return New(PrefixLayout) }
func NewComponentID() string { return New(PrefixComponent) }

// Prefix returns the prefix of a typeid, or "" when id is not a typeid.
// Hand-written layout files use plain ids like "title", which have none.
func Prefix(id string) string {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return ""
	}
	return parsed.Prefix()
}

// Validate checks that id is a typeid carrying expectedPrefix.
func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidID, id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("%w: %q has prefix %q, want %q", ErrInvalidID, id, parsed.Prefix(), expectedPrefix)
	}
	return nil
}
