package sprite

import (
	"errors"
	"fmt"

	"github.com/san-kum/dotsprite/internal/grid"
)

// Authoring errors, reported once when a sprite is built or loaded.
var (
	// ErrBadDimensions indicates a non-positive width or height.
	ErrBadDimensions = errors.New("sprite: width and height must be positive")

	// ErrEmptyTable indicates a sprite without transitions.
	ErrEmptyTable = errors.New("sprite: transition table is empty")

	// ErrOutOfBounds indicates a coordinate outside the sprite grid.
	ErrOutOfBounds = errors.New("sprite: coordinate out of bounds")

	// ErrOpenLoop indicates the table does not return to the initial pose.
	ErrOpenLoop = errors.New("sprite: transition table does not close the loop")

	// ErrUnknownSprite indicates a name missing from the registry.
	ErrUnknownSprite = errors.New("sprite: unknown sprite")

	// ErrMalformedAsset indicates an asset file that cannot be decoded.
	ErrMalformedAsset = errors.New("sprite: malformed asset")
)

// Frame values of a ConfigError that do not point into the table.
const (
	WholeSprite  = -2
	InitialFrame = -1
)

// ConfigError wraps an authoring error with its location.
type ConfigError struct {
	Sprite  string
	Frame   int // index into the table, InitialFrame or WholeSprite
	Coord   *grid.Coord
	Wrapped error
}

func (e *ConfigError) Error() string {
	msg := "sprite " + e.Sprite
	switch {
	case e.Frame == InitialFrame:
		msg += ": initial pose"
	case e.Frame >= 0:
		msg += fmt.Sprintf(": transition %d", e.Frame)
	}
	if e.Coord != nil {
		msg += ": " + e.Coord.String()
	}
	return msg + ": " + e.Wrapped.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
