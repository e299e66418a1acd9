package impressionist

import "image"

// Photo is a source image displayed centered and scaled to fit inside a view.
// It serves both as the image provider and the geometry provider of a session.
type Photo struct {
	img  *image.NRGBA
	view image.Point
}

var (
	_ ImageProvider    = (*Photo)(nil)
	_ GeometryProvider = (*Photo)(nil)
)

// NewPhoto creates a photo shown in a view of the given size.
// The image may be nil until it is loaded.
func NewPhoto(img *image.NRGBA, view image.Point) *Photo {
	return &Photo{img: img, view: view}
}

// SourceImage returns the loaded image or nil.
func (p *Photo) SourceImage() image.Image {
	if p.img == nil {
		return nil
	}
	return p.img
}

// Load replaces the displayed image.
func (p *Photo) Load(img *image.NRGBA) {
	p.img = img
}

// SetView updates the size of the view hosting the photo.
func (p *Photo) SetView(view image.Point) {
	p.view = view
}

// View returns the size of the view hosting the photo.
func (p *Photo) View() image.Point {
	return p.view
}

// Geometry returns the current display geometry. Without an image the scale is zero.
func (p *Photo) Geometry() Geometry {
	if p.img == nil {
		return Geometry{Width: p.view.X, Height: p.view.Y}
	}
	return FitGeometry(p.view, p.img.Bounds().Size())
}

// Bounds returns the rectangle the photo occupies inside the view.
func (p *Photo) Bounds() image.Rectangle {
	if p.img == nil {
		return image.Rectangle{}
	}
	return ImageBounds(p.Geometry(), p.img.Bounds().Size())
}
