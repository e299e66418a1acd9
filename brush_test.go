package impressionist

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mark struct {
	kind  string
	x, y  float64
	size  float64
	line  Segment
	color color.NRGBA
}

// canvasRecorder is a Canvas keeping track of every primitive it receives.
type canvasRecorder struct {
	marks []mark
}

func (c *canvasRecorder) FillSquare(cx, cy, side float64, col color.NRGBA) {
	c.marks = append(c.marks, mark{kind: "square", x: cx, y: cy, size: side, color: col})
}

func (c *canvasRecorder) FillCircle(cx, cy, radius float64, col color.NRGBA) {
	c.marks = append(c.marks, mark{kind: "circle", x: cx, y: cy, size: radius, color: col})
}

func (c *canvasRecorder) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	c.marks = append(c.marks, mark{kind: "line", size: width, line: Segment{x0, y0, x1, y1}, color: col})
}

func TestBrush_DynamicSize(t *testing.T) {
	assert := assert.New(t)
	b := DefaultBrush()

	assert.Equal(50.0, b.Size(2))
	assert.Equal(DefaultMinRadius*1.0, b.Size(0))
	assert.Equal(DefaultMinRadius*1.0, b.Size(0.1))
	assert.Equal(MaxVelocity*DefaultVelocityScale, b.Size(1e9))
	assert.Equal(DefaultMinRadius*1.0, b.Size(math.NaN()))
	assert.Equal(DefaultMinRadius*1.0, b.Size(-3))

	prev := 0.0
	for v := 0.0; v <= MaxVelocity; v += 0.25 {
		size := b.Size(v)
		assert.GreaterOrEqual(size, prev)
		assert.GreaterOrEqual(size, b.MinRadius)
		prev = size
	}
}

func TestBrush_FixedSize(t *testing.T) {
	b := DefaultBrush()
	b.Dynamic = false

	for _, v := range []float64{0, 1, 5, MaxVelocity} {
		assert.Equal(t, DefaultRadius*1.0, b.Size(v))
	}
}

func TestBrush_PaintAppliesAlpha(t *testing.T) {
	tests := []struct {
		brush BrushType
		kind  string
	}{
		{Square, "square"},
		{Circle, "circle"},
	}
	for _, tt := range tests {
		t.Run(tt.brush.String(), func(t *testing.T) {
			b := DefaultBrush()
			b.Type = tt.brush
			e := NewBrushEngine(b, rand.New(rand.NewSource(1)))

			c := &canvasRecorder{}
			e.Paint(c, 30, 40, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, 2)

			require.Len(t, c.marks, 1)
			m := c.marks[0]
			assert.Equal(t, tt.kind, m.kind)
			assert.Equal(t, 30.0, m.x)
			assert.Equal(t, 40.0, m.y)
			assert.Equal(t, 50.0, m.size)
			assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: DefaultAlpha}, m.color)
		})
	}
}

func TestBrush_HatchSegments(t *testing.T) {
	b := DefaultBrush()
	b.Type = Hatch
	e := NewBrushEngine(b, rand.New(rand.NewSource(42)))

	const v = 0.5
	limit := float64(hatchSteps-1) * v * b.HatchScale

	for i := 0; i < 100; i++ {
		segs := e.HatchSegments(100, 100, v)
		require.Len(t, segs, hatchLines)

		for _, s := range segs {
			for _, d := range []float64{s.X0 - 100, s.X1 - 100, s.Y0 - 100, s.Y1 - 100} {
				assert.LessOrEqual(t, math.Abs(d), limit)
			}
		}
	}
}

func TestBrush_HatchIgnoresVelocityWhenStatic(t *testing.T) {
	b := DefaultBrush()
	b.Type = Hatch
	b.Dynamic = false
	e := NewBrushEngine(b, rand.New(rand.NewSource(7)))

	limit := float64(hatchSteps-1) * b.HatchScale
	for i := 0; i < 50; i++ {
		for _, s := range e.HatchSegments(0, 0, MaxVelocity) {
			for _, d := range []float64{s.X0, s.X1, s.Y0, s.Y1} {
				assert.LessOrEqual(t, math.Abs(d), limit)
				// Offsets are whole multiples of the hatch scale.
				assert.Zero(t, math.Mod(d, b.HatchScale))
			}
		}
	}
}

func TestBrush_HatchIsReproducible(t *testing.T) {
	b := DefaultBrush()
	b.Type = Hatch

	e1 := NewBrushEngine(b, rand.New(rand.NewSource(99)))
	e2 := NewBrushEngine(b, rand.New(rand.NewSource(99)))

	for i := 0; i < 10; i++ {
		assert.Equal(t, e1.HatchSegments(50, 60, 1.5), e2.HatchSegments(50, 60, 1.5))
	}
}

func TestBrush_PaintHatch(t *testing.T) {
	b := DefaultBrush()
	b.Type = Hatch
	e := NewBrushEngine(b, rand.New(rand.NewSource(3)))

	c := &canvasRecorder{}
	e.Paint(c, 10, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, 1)

	require.Len(t, c.marks, hatchLines)
	for _, m := range c.marks {
		assert.Equal(t, "line", m.kind)
		assert.Equal(t, DefaultHatchWidth*1.0, m.size)
		assert.Equal(t, uint8(DefaultAlpha), m.color.A)
	}
}

func TestBrush_TypeText(t *testing.T) {
	assert := assert.New(t)

	bt, err := ParseBrushType(" Circle ")
	assert.NoError(err)
	assert.Equal(Circle, bt)

	var h BrushType
	assert.NoError(h.UnmarshalText([]byte("hatch")))
	assert.Equal(Hatch, h)
	assert.Error(h.UnmarshalText([]byte("sponge")))

	text, err := Square.MarshalText()
	assert.NoError(err)
	assert.Equal("square", string(text))

	_, err = BrushType(7).MarshalText()
	assert.Error(err)
	assert.Equal("BrushType(7)", BrushType(7).String())
}

func TestBrush_PaintReportsEmptyMarks(t *testing.T) {
	b := DefaultBrush()
	b.Type = Hatch
	e := NewBrushEngine(b, rand.New(rand.NewSource(5)))
	c := &canvasRecorder{}

	// At rest every hatch offset is null.
	assert.False(t, e.Paint(c, 10, 10, red, 0))
	assert.Len(t, c.marks, hatchLines)

	e.Type = Square
	assert.True(t, e.Paint(c, 10, 10, red, 0))

	e.Radius = 0
	e.Dynamic = false
	assert.False(t, e.Paint(c, 10, 10, red, 3))

	assert.Equal(t, 5.0, Segment{0, 0, 3, 4}.Len())
}
