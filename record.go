package impressionist

import (
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Recording is a captured painting session: the view it was painted in,
// the brush, the random seed of the hatch brush and every pointer event.
type Recording struct {
	View   Window  `toml:"view"`
	Brush  Brush   `toml:"brush"`
	Seed   int64   `toml:"seed"`
	Events []Event `toml:"events"`
}

var _ Recorder = (*Recording)(nil)

// Record appends an event to the recording.
func (r *Recording) Record(ev Event) {
	r.Events = append(r.Events, ev)
}

// Encode writes the recording as TOML.
func (r *Recording) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(r); err != nil {
		return errors.Wrap(err, "could not encode the recording")
	}
	return nil
}

// DecodeRecording reads a TOML recording.
func DecodeRecording(rd io.Reader) (*Recording, error) {
	rec := &Recording{Brush: DefaultBrush()}
	if err := toml.NewDecoder(rd).Decode(rec); err != nil {
		return nil, errors.Wrap(err, "could not decode the recording")
	}
	if rec.View.Width <= 0 || rec.View.Height <= 0 {
		return nil, errors.Errorf("invalid recorded view size %dx%d", rec.View.Width, rec.View.Height)
	}
	return rec, nil
}

// Replay feeds the recorded events to the session, in order, and returns the
// accumulated painting result. The progress callback, if any, is invoked
// after each event with the number of events handled so far.
func (r *Recording) Replay(s *Session, progress func(done, total int)) Result {
	var total Result
	for i, ev := range r.Events {
		res := s.Handle(ev)
		total.Painted += res.Painted
		total.Skipped += res.Skipped

		if progress != nil {
			progress(i+1, len(r.Events))
		}
	}
	return total
}
