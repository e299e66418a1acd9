package impressionist

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ImageProvider exposes the photograph being painted over.
// A nil image means nothing has been loaded yet.
type ImageProvider interface {
	SourceImage() image.Image
}

// Sample returns the exact pixel color of img at (x, y), without any
// interpolation. Coordinates are relative to the image origin.
func Sample(img image.Image, x, y int) (color.NRGBA, error) {
	if img == nil {
		return color.NRGBA{}, ErrNoImageLoaded
	}
	b := img.Bounds()
	p := image.Pt(b.Min.X+x, b.Min.Y+y)
	if x < 0 || y < 0 || !p.In(b) {
		return color.NRGBA{}, errors.Wrapf(ErrOutOfBounds, "sample at (%d,%d) in %v", x, y, b)
	}

	if src, ok := img.(*image.NRGBA); ok {
		return src.NRGBAAt(p.X, p.Y), nil
	}
	return color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA), nil
}
