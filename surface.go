package impressionist

import (
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ResizePolicy decides what happens to the painting when the surface is resized.
type ResizePolicy int

const (
	// Discard starts over with a blank surface of the new size.
	Discard ResizePolicy = iota
	// Preserve keeps the overlapping part of the painting, anchored at the top-left corner.
	Preserve
)

// MarshalText implements encoding.TextMarshaler.
func (p ResizePolicy) MarshalText() ([]byte, error) {
	switch p {
	case Discard:
		return []byte("discard"), nil
	case Preserve:
		return []byte("preserve"), nil
	}
	return nil, errors.Errorf("unsupported resize policy %d", int(p))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ResizePolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "discard", "":
		*p = Discard
	case "preserve":
		*p = Preserve
	default:
		return errors.Errorf("unsupported resize policy %q", string(text))
	}
	return nil
}

// Blank is the color of a cleared surface.
var Blank = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Surface is the off-screen raster the brush marks are stamped on.
// It survives across gestures and redraws. Painting and presentation may
// happen on different goroutines, the pixel buffer is guarded by a RWMutex.
type Surface struct {
	mu    sync.RWMutex
	img   *image.NRGBA
	blank color.NRGBA
}

// NewSurface allocates a surface of the given size filled with the blank color.
func NewSurface(width, height int, blank color.NRGBA) *Surface {
	return &Surface{
		img:   imaging.New(width, height, blank),
		blank: blank,
	}
}

// Bounds returns the surface bounds.
func (s *Surface) Bounds() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.img.Bounds()
}

// BlankColor returns the color used to clear the surface.
func (s *Surface) BlankColor() color.NRGBA {
	return s.blank
}

// At returns the pixel at (x, y).
func (s *Surface) At(x, y int) color.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.img.NRGBAAt(x, y)
}

// Clear resets every pixel to the blank color.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.img.Bounds()
	s.img = imaging.New(b.Dx(), b.Dy(), s.blank)
}

// Resize reallocates the surface. Resizing to the current size is a no-op.
func (s *Surface) Resize(width, height int, policy ResizePolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.img.Bounds().Size() == image.Pt(width, height) {
		return
	}
	dst := imaging.New(width, height, s.blank)
	if policy == Preserve {
		dst = imaging.Paste(dst, s.img, image.Point{})
	}
	s.img = dst
}

// Snapshot returns a copy of the current pixels, safe to hand over to the
// presentation step or to an encoder.
func (s *Surface) Snapshot() *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return imaging.Clone(s.img)
}
