package impressionist

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestVelocity_FirstSampleSeedsTracker(t *testing.T) {
	var vt VelocityTracker

	v, ok, err := vt.Update(PointerSample{X: 10, Y: 10, Time: 100})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, v)

	last, ok := vt.Last()
	assert.True(t, ok)
	assert.Equal(t, PointerSample{X: 10, Y: 10, Time: 100}, last)
}

func TestVelocity_DistanceOverTime(t *testing.T) {
	var vt VelocityTracker

	vt.Update(PointerSample{X: 0, Y: 0, Time: 0})
	v, ok, err := vt.Update(PointerSample{X: 3, Y: 4, Time: 10})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	// The tracker advances on every sample.
	v, ok, err = vt.Update(PointerSample{X: 3, Y: 24, Time: 20})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestVelocity_SamePointIsZero(t *testing.T) {
	for _, dt := range []int64{0, 1, 1000} {
		v, err := Velocity(PointerSample{X: 7, Y: 7, Time: 5}, PointerSample{X: 7, Y: 7, Time: 5 + dt})
		assert.NoError(t, err)
		assert.Zero(t, v)
		assert.False(t, math.IsNaN(v))
	}
}

func TestVelocity_DegenerateTiming(t *testing.T) {
	v, err := Velocity(PointerSample{X: 0, Y: 0, Time: 5}, PointerSample{X: 10, Y: 0, Time: 5})
	assert.True(t, errors.Is(err, ErrDegenerateTiming))
	assert.Equal(t, MaxVelocity, v)
	assert.False(t, math.IsInf(v, 0))

	v, err = Velocity(PointerSample{X: 0, Y: 0, Time: 5}, PointerSample{X: 10, Y: 0, Time: 2})
	assert.Error(t, err)
	assert.Equal(t, MaxVelocity, v)
}

func TestVelocity_ClampedToMax(t *testing.T) {
	v, err := Velocity(PointerSample{X: 0, Y: 0, Time: 0}, PointerSample{X: 1e6, Y: 0, Time: 1})
	assert.NoError(t, err)
	assert.Equal(t, MaxVelocity, v)
}

func TestVelocity_Reset(t *testing.T) {
	var vt VelocityTracker
	vt.Update(PointerSample{X: 1, Y: 1, Time: 1})
	vt.Reset()

	_, ok := vt.Last()
	assert.False(t, ok)

	_, ok, _ = vt.Update(PointerSample{X: 5, Y: 5, Time: 2})
	assert.False(t, ok)
}

func TestVelocity_TrackerReportsDegenerateTiming(t *testing.T) {
	var vt VelocityTracker
	vt.Update(PointerSample{X: 0, Y: 0, Time: 40})

	v, ok, err := vt.Update(PointerSample{X: 8, Y: 6, Time: 40})
	assert.True(t, ok)
	assert.Equal(t, MaxVelocity, v)
	assert.True(t, errors.Is(err, ErrDegenerateTiming))

	// The tracker still advances past the degenerate sample.
	last, _ := vt.Last()
	assert.Equal(t, PointerSample{X: 8, Y: 6, Time: 40}, last)
}
