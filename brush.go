package impressionist

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/esimov/impressionist/utils"
	"github.com/pkg/errors"
)

// BrushType selects the mark stamped at every sample.
type BrushType int

const (
	Square BrushType = iota
	Circle
	Hatch
)

// Brush defaults.
const (
	DefaultAlpha         = 150
	DefaultRadius        = 25
	DefaultMinRadius     = 5
	DefaultVelocityScale = 25
	DefaultHatchScale    = 15
	DefaultHatchWidth    = 3

	// hatchLines is the number of segments stamped by the hatch brush.
	hatchLines = 3
	// hatchSteps is the exclusive upper bound of the random hatch offset multiplier.
	hatchSteps = 5
)

var brushNames = map[BrushType]string{
	Square: "square",
	Circle: "circle",
	Hatch:  "hatch",
}

// String returns the brush name.
func (b BrushType) String() string {
	if name, ok := brushNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BrushType(%d)", int(b))
}

// ParseBrushType returns the brush type with the given name.
func ParseBrushType(name string) (BrushType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, n := range brushNames {
		if n == name {
			return b, nil
		}
	}
	return Square, errors.Errorf("unsupported brush type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (b BrushType) MarshalText() ([]byte, error) {
	if _, ok := brushNames[b]; !ok {
		return nil, errors.Errorf("unsupported brush type %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BrushType) UnmarshalText(text []byte) error {
	t, err := ParseBrushType(string(text))
	if err != nil {
		return err
	}
	*b = t
	return nil
}

// Brush holds the brush configuration read by every stroke operation.
type Brush struct {
	Type          BrushType `toml:"type"`
	Alpha         uint8     `toml:"alpha"`
	Radius        float64   `toml:"radius"`
	MinRadius     float64   `toml:"min_radius"`
	VelocityScale float64   `toml:"velocity_scale"`
	HatchScale    float64   `toml:"hatch_scale"`
	HatchWidth    float64   `toml:"hatch_width"`
	Dynamic       bool      `toml:"dynamic"`
}

// DefaultBrush returns a square brush sized by the pointer speed.
func DefaultBrush() Brush {
	return Brush{
		Type:          Square,
		Alpha:         DefaultAlpha,
		Radius:        DefaultRadius,
		MinRadius:     DefaultMinRadius,
		VelocityScale: DefaultVelocityScale,
		HatchScale:    DefaultHatchScale,
		HatchWidth:    DefaultHatchWidth,
		Dynamic:       true,
	}
}

// Size returns the square side or circle radius used for the given velocity.
// With dynamic sizing the size grows with the velocity and never drops under MinRadius.
func (b Brush) Size(velocity float64) float64 {
	if !b.Dynamic {
		return b.Radius
	}
	return math.Max(sanitizeVelocity(velocity)*b.VelocityScale, b.MinRadius)
}

// Canvas is the raster sink of the brush engine.
type Canvas interface {
	FillSquare(cx, cy, side float64, c color.NRGBA)
	FillCircle(cx, cy, radius float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}

// Segment is a straight line between two points.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Len returns the length of the segment.
func (s Segment) Len() float64 {
	return math.Hypot(s.X1-s.X0, s.Y1-s.Y0)
}

// BrushEngine rasterizes brush marks.
type BrushEngine struct {
	Brush
	rnd *rand.Rand
}

// NewBrushEngine creates a brush engine. A nil random source is replaced by
// one seeded with the current time.
func NewBrushEngine(b Brush, rnd *rand.Rand) *BrushEngine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BrushEngine{Brush: b, rnd: rnd}
}

// Paint stamps one mark of the active brush at (x, y) using the sampled color,
// whose alpha is replaced by the brush alpha. It reports whether the mark
// has any area: squares and circles of null size and hatches made only of
// zero length segments leave no paint.
func (e *BrushEngine) Paint(c Canvas, x, y float64, col color.NRGBA, velocity float64) bool {
	col.A = e.Alpha

	switch e.Type {
	case Circle:
		size := e.Size(velocity)
		c.FillCircle(x, y, size, col)
		return size > 0
	case Square:
		size := e.Size(velocity)
		c.FillSquare(x, y, size, col)
		return size > 0
	case Hatch:
		var drawn bool
		for _, s := range e.HatchSegments(x, y, velocity) {
			c.StrokeLine(s.X0, s.Y0, s.X1, s.Y1, e.HatchWidth, col)
			drawn = drawn || s.Len() > 0
		}
		return drawn && e.HatchWidth > 0
	}
	return false
}

// HatchSegments returns the randomized hatch lines around (x, y).
// Every endpoint is offset along each axis by at most
// (hatchSteps-1) * velocity * HatchScale, with velocity fixed to 1 when
// dynamic sizing is off.
func (e *BrushEngine) HatchSegments(x, y, velocity float64) []Segment {
	v := 1.0
	if e.Dynamic {
		v = sanitizeVelocity(velocity)
	}
	step := func() float64 {
		return float64(e.rnd.Intn(hatchSteps)) * v * e.HatchScale
	}

	segs := make([]Segment, 0, hatchLines)
	for i := 0; i < hatchLines; i++ {
		xDir := e.direction()
		sx := x + xDir*step()
		ex := x - xDir*step()

		yDir := e.direction()
		sy := y + yDir*step()
		ey := y - yDir*step()

		segs = append(segs, Segment{X0: sx, Y0: sy, X1: ex, Y1: ey})
	}
	return segs
}

// direction returns a random sign.
func (e *BrushEngine) direction() float64 {
	if e.rnd.Intn(2) == 0 {
		return -1
	}
	return 1
}

// sanitizeVelocity keeps non-finite or negative velocities out of the size computations.
func sanitizeVelocity(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return utils.Min(v, MaxVelocity)
}
