package impressionist

import (
	"image"
	"math"
)

// Geometry describes the display widget hosting the source image:
// its size and the scale applied to the image on each axis.
type Geometry struct {
	Width  int
	Height int
	ScaleX float64
	ScaleY float64
}

// Mapping is the placement of the source image inside the display widget.
// It is derived from the widget geometry every time it is needed.
type Mapping struct {
	ScaleX float64
	ScaleY float64
	Left   int
	Top    int

	bounds image.Rectangle
}

// ImageBounds returns the rectangle, in widget coordinates, occupied by an image
// of the given intrinsic size, centered in the widget and scaled by the geometry.
// The axes are scaled independently. A zero size yields an empty rectangle.
func ImageBounds(g Geometry, size image.Point) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	w := int(math.Round(float64(size.X) * g.ScaleX))
	h := int(math.Round(float64(size.Y) * g.ScaleY))

	left := (g.Width - w) / 2
	top := (g.Height - h) / 2

	return image.Rect(left, top, left+w, top+h)
}

// NewMapping computes the display mapping of an image with the provided size.
func NewMapping(g Geometry, size image.Point) Mapping {
	r := ImageBounds(g, size)
	return Mapping{
		ScaleX: g.ScaleX,
		ScaleY: g.ScaleY,
		Left:   r.Min.X,
		Top:    r.Min.Y,
		bounds: r,
	}
}

// Bounds returns the display rectangle of the image.
func (m Mapping) Bounds() image.Rectangle {
	return m.bounds
}

// Contains reports whether the widget point (x, y) lies inside the display rectangle.
func (m Mapping) Contains(x, y float64) bool {
	return pixel(x, y).In(m.bounds)
}

// pixel returns the widget pixel containing (x, y).
func pixel(x, y float64) image.Point {
	return image.Pt(int(math.Floor(x)), int(math.Floor(y)))
}

// ToImage converts a widget point into integer image coordinates.
// The second return value is false when the point is outside the display
// rectangle or the scale is degenerate.
func (m Mapping) ToImage(x, y float64) (image.Point, bool) {
	if !m.Contains(x, y) || m.ScaleX <= 0 || m.ScaleY <= 0 {
		return image.Point{}, false
	}
	p := pixel(x, y)
	px := float64(p.X-m.Left) / m.ScaleX
	py := float64(p.Y-m.Top) / m.ScaleY

	return image.Pt(int(px), int(py)), true
}

// ContainScale returns the largest uniform scale that fits an image of the
// given size inside the view without cropping, keeping its aspect ratio.
func ContainScale(view, size image.Point) float64 {
	if size.X <= 0 || size.Y <= 0 || view.X <= 0 || view.Y <= 0 {
		return 0
	}
	sx := float64(view.X) / float64(size.X)
	sy := float64(view.Y) / float64(size.Y)

	return math.Min(sx, sy)
}

// FitGeometry returns the geometry of a view that displays an image of the
// given size scaled to fit, as an image widget with a "contain" fit does.
func FitGeometry(view, size image.Point) Geometry {
	s := ContainScale(view, size)
	return Geometry{
		Width:  view.X,
		Height: view.Y,
		ScaleX: s,
		ScaleY: s,
	}
}
