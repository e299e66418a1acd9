package impressionist

import (
	"image"
	"log"
	"math/rand"

	"github.com/pkg/errors"
)

// Action is the kind of a pointer event.
type Action int

const (
	Press Action = iota
	Move
	Release
	Cancel
	// Configure replaces the brush configuration.
	Configure
	// Clear blanks the painting.
	Clear
	// Resize changes the size of the view.
	Resize
)

var actionNames = []string{"press", "move", "release", "cancel", "configure", "clear", "resize"}

// String returns the action name.
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(actionNames) {
		return nil, errors.Errorf("unsupported action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	for i, name := range actionNames {
		if name == string(text) {
			*a = Action(i)
			return nil
		}
	}
	return errors.Errorf("unsupported action %q", string(text))
}

// Event is a batch of pointer samples delivered at once. History holds the
// samples coalesced since the previous event, oldest first; they are
// processed before the live Sample. Brush and Size carry the payload of the
// Configure and Resize actions.
type Event struct {
	Action  Action          `toml:"action"`
	Sample  PointerSample   `toml:"sample"`
	History []PointerSample `toml:"history,omitempty"`
	Brush   *Brush          `toml:"brush,omitempty"`
	Size    *Window         `toml:"size,omitempty"`
}

// GeometryProvider reports the current geometry of the display widget.
type GeometryProvider interface {
	Geometry() Geometry
}

// Presenter is notified when the surface needs to be shown again.
type Presenter interface {
	Invalidate()
}

// viewResizer is implemented by geometry providers whose view follows the window size.
type viewResizer interface {
	SetView(image.Point)
}

// Recorder receives every event handled by a session.
type Recorder interface {
	Record(Event)
}

// State of a stroke session.
type State int

const (
	Idle State = iota
	Stroking
)

// Result summarizes how an event batch was handled. Painted counts the
// samples which left paint on the surface. Samples outside the photo and
// samples whose mark has no area, such as a hatch stroked at rest, are
// counted as skipped.
type Result struct {
	Painted int
	Skipped int
	// Err is the reason the whole batch was skipped, if it was.
	Err error
}

// Session drives the painting pipeline across a gesture: it maps the pointer
// samples onto the source image, tracks their velocity, samples the photo
// color and stamps brush marks on the surface.
type Session struct {
	Surface   *Surface
	Images    ImageProvider
	Display   GeometryProvider
	Presenter Presenter
	Recorder  Recorder
	Logger    *log.Logger
	Policy    ResizePolicy

	engine  *BrushEngine
	tracker VelocityTracker
	state   State
	pending *image.Point
}

// NewSession creates a session painting on the surface with the given brush.
func NewSession(s *Surface, images ImageProvider, display GeometryProvider, b Brush, rnd *rand.Rand) *Session {
	return &Session{
		Surface: s,
		Images:  images,
		Display: display,
		engine:  NewBrushEngine(b, rnd),
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Brush returns the active brush configuration.
func (s *Session) Brush() Brush {
	return s.engine.Brush
}

// SetBrush replaces the brush configuration. It applies from the next sample.
func (s *Session) SetBrush(b Brush) {
	s.engine.Brush = b
}

// SetBrushType changes the brush variant. It applies from the next sample.
func (s *Session) SetBrushType(t BrushType) {
	s.engine.Type = t
}

// SetDynamic toggles velocity based brush sizing. It applies from the next sample.
func (s *Session) SetDynamic(dynamic bool) {
	s.engine.Dynamic = dynamic
}

// Handle processes one pointer event batch to completion.
func (s *Session) Handle(ev Event) Result {
	if s.Recorder != nil {
		s.Recorder.Record(ev)
	}

	switch ev.Action {
	case Press:
		s.state = Stroking
		s.tracker.Reset()
		s.tracker.Update(ev.Sample)
		return Result{}
	case Move:
		if s.state != Stroking {
			return Result{}
		}
		return s.stroke(ev)
	case Release, Cancel:
		s.state = Idle
		s.applyPendingResize()
	case Configure:
		if ev.Brush != nil {
			s.SetBrush(*ev.Brush)
		}
	case Clear:
		s.Clear()
	case Resize:
		if ev.Size != nil {
			s.Resize(ev.Size.Width, ev.Size.Height)
		}
	}
	return Result{}
}

// stroke paints every sample of a move batch, historical samples first.
func (s *Session) stroke(ev Event) Result {
	var img image.Image
	if s.Images != nil {
		img = s.Images.SourceImage()
	}
	if img == nil {
		s.debugf("skipping event batch: %v", ErrNoImageLoaded)
		return Result{Skipped: len(ev.History) + 1, Err: ErrNoImageLoaded}
	}

	var res Result
	for _, sample := range s.samples(ev) {
		if err := s.paint(img, sample); err != nil {
			s.debugf("skipping sample (%.1f,%.1f): %v", sample.X, sample.Y, err)
			res.Skipped++
			continue
		}
		res.Painted++
	}
	if s.Presenter != nil {
		s.Presenter.Invalidate()
	}
	return res
}

// paint advances the velocity tracker with the sample and, if the sample lies
// on the displayed image, stamps a mark colored after the photo.
func (s *Session) paint(img image.Image, sample PointerSample) error {
	v, _, err := s.tracker.Update(sample)
	if err != nil {
		s.debugf("sample (%.1f,%.1f) at %dms: %v", sample.X, sample.Y, sample.Time, err)
	}

	var g Geometry
	if s.Display != nil {
		g = s.Display.Geometry()
	}
	m := NewMapping(g, img.Bounds().Size())

	pt, ok := m.ToImage(sample.X, sample.Y)
	if !ok {
		return errors.Wrapf(ErrOutOfBounds, "outside display rectangle %v", m.Bounds())
	}
	col, err := Sample(img, pt.X, pt.Y)
	if err != nil {
		return err
	}
	if !s.engine.Paint(s.Surface, sample.X, sample.Y, col, v) {
		return ErrEmptyMark
	}
	return nil
}

// samples returns the samples of the batch in chronological order. Missing
// historical timestamps are interpolated between the last tracked sample and
// the live one.
func (s *Session) samples(ev Event) []PointerSample {
	out := make([]PointerSample, 0, len(ev.History)+1)

	start := ev.Sample.Time
	if last, ok := s.tracker.Last(); ok {
		start = last.Time
	}
	n := int64(len(ev.History) + 1)
	for i, h := range ev.History {
		if h.Time == 0 {
			h.Time = start + (ev.Sample.Time-start)*int64(i+1)/n
		}
		out = append(out, h)
	}
	return append(out, ev.Sample)
}

// Clear blanks the painting and requests a redraw.
func (s *Session) Clear() {
	s.Surface.Clear()
	if s.Presenter != nil {
		s.Presenter.Invalidate()
	}
}

// Resize reallocates the surface to the new view size. The display geometry
// follows immediately but the surface is never resized in the middle of a
// gesture: the request is applied on release. Empty sizes, as reported by a
// minimized window, are ignored.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		s.debugf("ignoring resize to %dx%d", width, height)
		return
	}
	if v, ok := s.Display.(viewResizer); ok {
		v.SetView(image.Pt(width, height))
	}
	if s.state == Stroking {
		s.pending = &image.Point{X: width, Y: height}
		return
	}
	s.Surface.Resize(width, height, s.Policy)
}

func (s *Session) applyPendingResize() {
	if s.pending == nil {
		return
	}
	p := *s.pending
	s.pending = nil
	s.Resize(p.X, p.Y)
}

func (s *Session) debugf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
