package impressionist

import "github.com/pkg/errors"

// The painting pipeline never surfaces these to the user. They are used to
// classify why a sample or a whole event batch was skipped.
var (
	// ErrNoImageLoaded is reported when the image provider has no pixel data yet.
	ErrNoImageLoaded = errors.New("no source image loaded")
	// ErrOutOfBounds is reported when a touch point falls outside the
	// source image or outside the rectangle the image occupies on screen.
	ErrOutOfBounds = errors.New("point out of bounds")
	// ErrDegenerateTiming is reported when two distinct samples share the same timestamp.
	ErrDegenerateTiming = errors.New("zero elapsed time between samples")
	// ErrEmptyMark is reported when the brush mark has no area to paint.
	ErrEmptyMark = errors.New("brush mark is empty")
)
