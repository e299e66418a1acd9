package impressionist

import "math"

// MaxVelocity caps the pointer speed (pixels per millisecond). It is used
// whenever two distinct samples arrive with no measurable elapsed time.
const MaxVelocity = 10.0

// PointerSample is a single pointer position in view coordinates.
// Time is a monotonic timestamp in milliseconds.
type PointerSample struct {
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
	Time int64   `toml:"t,omitempty"`
}

// VelocityTracker keeps the last seen sample of a gesture and computes the
// pointer speed between consecutive samples.
type VelocityTracker struct {
	last *PointerSample
}

// Reset forgets the last sample. The next update seeds the tracker.
func (vt *VelocityTracker) Reset() {
	vt.last = nil
}

// Last returns the last tracked sample, if any.
func (vt *VelocityTracker) Last() (PointerSample, bool) {
	if vt.last == nil {
		return PointerSample{}, false
	}
	return *vt.last, true
}

// Update records the sample and returns the speed since the previous one.
// The first sample after a reset has no defined speed: it only seeds the
// tracker and the returned boolean is false. A degenerate timing is reported
// with ErrDegenerateTiming along with the clamped speed.
func (vt *VelocityTracker) Update(s PointerSample) (float64, bool, error) {
	prev := vt.last
	vt.last = &s

	if prev == nil {
		return 0, false, nil
	}
	v, err := Velocity(*prev, s)
	return v, true, err
}

// Velocity computes the speed between two samples. Identical positions yield
// zero whatever the elapsed time. Distinct positions with zero or negative
// elapsed time are clamped to MaxVelocity and reported with ErrDegenerateTiming.
func Velocity(from, to PointerSample) (float64, error) {
	dist := math.Hypot(to.X-from.X, to.Y-from.Y)
	if dist == 0 {
		return 0, nil
	}
	dt := to.Time - from.Time
	if dt <= 0 {
		return MaxVelocity, ErrDegenerateTiming
	}

	v := dist / float64(dt)
	if math.IsNaN(v) || math.IsInf(v, 0) || v > MaxVelocity {
		return MaxVelocity, nil
	}
	return v, nil
}
