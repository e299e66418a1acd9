package impressionist

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa is the control point distance used to approximate a quarter circle with a cubic Bézier.
const kappa = 0.5522847498

var _ Canvas = (*Surface)(nil)

// FillSquare fills an axis aligned square of the given side centered at (cx, cy).
func (s *Surface) FillSquare(cx, cy, side float64, c color.NRGBA) {
	if side <= 0 {
		return
	}
	h := side / 2
	s.fill(c, [][2]float64{
		{cx - h, cy - h},
		{cx + h, cy - h},
		{cx + h, cy + h},
		{cx - h, cy + h},
	}, nil)
}

// FillCircle fills a circle of the given radius centered at (cx, cy).
func (s *Surface) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	bbox := [][2]float64{
		{cx - radius, cy - radius},
		{cx + radius, cy + radius},
	}
	s.fill(c, bbox, func(z *vector.Rasterizer, dx, dy float64) {
		x, y := float32(cx-dx), float32(cy-dy)
		r := float32(radius)
		k := float32(kappa) * r

		z.MoveTo(x, y-r)
		z.CubeTo(x+k, y-r, x+r, y-k, x+r, y)
		z.CubeTo(x+r, y+k, x+k, y+r, x, y+r)
		z.CubeTo(x-k, y+r, x-r, y+k, x-r, y)
		z.CubeTo(x-r, y-k, x-k, y-r, x, y-r)
		z.ClosePath()
	})
}

// StrokeLine draws a straight segment of the given width with butt caps.
// A zero length segment leaves no mark.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// Unit normal scaled to half the line width.
	nx, ny := -dy/length*width/2, dx/length*width/2

	s.fill(c, [][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, nil)
}

// fill rasterizes a shape into the surface. The points define the bounding
// box of the shape; when no path function is given they are also the
// vertices of the polygon to fill. Only the intersection of the bounding
// box with the surface is touched.
func (s *Surface) fill(c color.NRGBA, pts [][2]float64, path func(z *vector.Rasterizer, dx, dy float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := polygonBounds(pts).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	dx, dy := float64(r.Min.X), float64(r.Min.Y)

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	if path != nil {
		path(z, dx, dy)
	} else {
		z.MoveTo(float32(pts[0][0]-dx), float32(pts[0][1]-dy))
		for _, p := range pts[1:] {
			z.LineTo(float32(p[0]-dx), float32(p[1]-dy))
		}
		z.ClosePath()
	}
	z.Draw(s.img, r, image.NewUniform(c), image.Point{})
}

// polygonBounds returns the smallest integer rectangle containing the points.
func polygonBounds(pts [][2]float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}
