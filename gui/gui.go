// Package gui implements the interactive painting window. The window is split
// in two panes of the same size: the photo on the left and the painting on
// the right. The pointer events received by the painting pane are batched per
// frame and handed over to the stroke session, the painting is presented as
// soon as a batch has been processed.
package gui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/esimov/impressionist"
	"github.com/esimov/impressionist/utils"
	"github.com/pkg/errors"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	defaultBkgColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	// borderColor outlines the rectangle the photo occupies in the window.
	borderColor = color.NRGBA{A: 50}
)

const borderWidth = 3

var brushKeys = map[string]impressionist.BrushType{
	"1": impressionist.Square,
	"2": impressionist.Circle,
	"3": impressionist.Hatch,
}

// Gui is the painting window. It owns the stroke session and feeds it with
// the pointer events received from Gio.
type Gui struct {
	cfg struct {
		window struct {
			w, h  float32
			title string
		}
		out    string
		record string
	}
	painter   *impressionist.Painter
	session   *impressionist.Session
	photo     *impressionist.Photo
	recording *impressionist.Recording

	// pane is the size of each of the two window panes.
	pane  image.Point
	batch []impressionist.PointerSample
	ops   op.Ops
	tag   bool

	photoSrc image.Image
	photoOp  paint.ImageOp
}

// NewGUI initializes the painting window for the given photo.
// The painting is saved to out when the S key is pressed and, if record is
// not empty, the gestures are saved there when the window is closed.
func NewGUI(p *impressionist.Painter, photo *impressionist.Photo, s *impressionist.Session, out, record string) *Gui {
	g := &Gui{
		painter: p,
		session: s,
		photo:   photo,
	}
	g.cfg.out = out
	g.cfg.record = record
	pane := g.initWindow(photo.View())
	s.Resize(pane.X, pane.Y)

	if record != "" {
		g.recording = &impressionist.Recording{
			View: impressionist.Window{
				Width:  pane.X,
				Height: pane.Y,
			},
			Brush: s.Brush(),
			Seed:  p.Config.Seed,
		}
		s.Recorder = g.recording
	}
	return g
}

// initWindow computes the window size and returns the size of a pane. Both
// panes fit side by side in the predefined window and keep the aspect ratio
// of the photo in case it is larger than a pane.
func (g *Gui) initWindow(view image.Point) image.Point {
	pane := image.Pt(view.X/2, view.Y)
	w, h := float32(pane.X), float32(pane.Y)
	if img := g.photo.SourceImage(); img != nil {
		size := img.Bounds().Size()
		r := float32(impressionist.ContainScale(pane, size))
		w, h = float32(size.X)*utils.Min(r, 1), float32(size.Y)*utils.Min(r, 1)
	}
	g.cfg.window.w, g.cfg.window.h = 2*w, h
	g.cfg.window.title = "Impressionist"

	return image.Pt(int(w), int(h))
}

// Run is the core method of the Gio GUI application. It dispatches the window
// events until the window is closed.
func (g *Gui) Run() error {
	w := app.NewWindow(app.Title(g.cfg.window.title), app.Size(
		unit.Dp(g.cfg.window.w),
		unit.Dp(g.cfg.window.h),
	))
	g.session.Presenter = w

	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			g.draw(e)
		case key.Event:
			if e.State == key.Press {
				g.handleKey(w, e)
			}
		case system.DestroyEvent:
			if err := g.saveRecording(); err != nil {
				log.Printf("%s", utils.DecorateText(err.Error(), utils.ErrorMessage))
			}
			return e.Err
		}
	}
	return nil
}

// handleKey implements the keyboard shortcuts of the window.
func (g *Gui) handleKey(w *app.Window, e key.Event) {
	switch e.Name {
	case key.NameEscape:
		w.Perform(system.ActionClose)
	case "C":
		g.session.Handle(impressionist.Event{Action: impressionist.Clear})
	case "D":
		b := g.session.Brush()
		b.Dynamic = !b.Dynamic
		g.configure(b)
	case "1", "2", "3":
		b := g.session.Brush()
		b.Type = brushKeys[e.Name]
		g.configure(b)
	case "S":
		if err := g.painter.Export(g.session.Surface, g.cfg.out); err != nil {
			log.Printf("%s", utils.DecorateText(fmt.Sprintf("could not save the painting: %v", err), utils.ErrorMessage))
			return
		}
		fmt.Fprintf(os.Stderr, "The painting has been saved as: %s\n", utils.DecorateText(g.cfg.out, utils.SuccessMessage))
	}
}

// configure changes the brush through the session, so that the change is recorded.
func (g *Gui) configure(b impressionist.Brush) {
	g.session.Handle(impressionist.Event{Action: impressionist.Configure, Brush: &b})
}

// draw processes the pointer events of the frame, then presents the photo in
// the left pane, the painting and the outline of the photo in the right pane.
func (g *Gui) draw(e system.FrameEvent) {
	gtx := layout.NewContext(&g.ops, e)

	// Reports the real pane size to the session whenever the window is resized.
	if pane := image.Pt(e.Size.X/2, e.Size.Y); pane != g.pane {
		g.pane = pane
		g.session.Handle(impressionist.Event{
			Action: impressionist.Resize,
			Size:   &impressionist.Window{Width: pane.X, Height: pane.Y},
		})
	}
	g.handlePointer(gtx)

	paint.Fill(gtx.Ops, defaultBkgColor)
	g.drawPhoto(gtx)

	// The pointer positions are relative to the painting pane.
	pane := op.Offset(image.Pt(g.pane.X, 0)).Push(gtx.Ops)
	g.drawSurface(gtx)
	g.drawBorder(gtx)

	area := clip.Rect(image.Rectangle{Max: g.pane}).Push(gtx.Ops)
	pointer.InputOp{
		Tag:   &g.tag,
		Grab:  true,
		Types: pointer.Press | pointer.Drag | pointer.Release,
	}.Add(gtx.Ops)
	area.Pop()
	pane.Pop()

	e.Frame(gtx.Ops)
}

// drawPhoto presents the source photo scaled to fit the pane, at the same
// place the session maps the pointer samples to.
func (g *Gui) drawPhoto(gtx C) {
	img := g.photo.SourceImage()
	if img == nil {
		return
	}
	if img != g.photoSrc {
		g.photoSrc = img
		g.photoOp = paint.NewImageOp(img)
	}
	r := g.photo.Bounds()
	geom := g.photo.Geometry()

	tr := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(float32(geom.ScaleX), float32(geom.ScaleY))).
		Offset(f32.Pt(float32(r.Min.X), float32(r.Min.Y)))

	defer op.Affine(tr).Push(gtx.Ops).Pop()
	defer clip.Rect(img.Bounds()).Push(gtx.Ops).Pop()

	g.photoOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// handlePointer converts the Gio pointer events into session events. The
// drag events received since the previous frame form one batch: the last one
// is the live sample, the others its history.
func (g *Gui) handlePointer(gtx C) {
	for _, ev := range gtx.Events(&g.tag) {
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		sample := impressionist.PointerSample{
			X:    float64(pe.Position.X),
			Y:    float64(pe.Position.Y),
			Time: pe.Time.Milliseconds(),
		}

		switch pe.Type {
		case pointer.Press:
			g.flush()
			g.session.Handle(impressionist.Event{Action: impressionist.Press, Sample: sample})
		case pointer.Drag:
			g.batch = append(g.batch, sample)
		case pointer.Release:
			g.flush()
			g.session.Handle(impressionist.Event{Action: impressionist.Release, Sample: sample})
		case pointer.Cancel:
			g.flush()
			g.session.Handle(impressionist.Event{Action: impressionist.Cancel, Sample: sample})
		}
	}
	g.flush()
}

// flush hands the pending drag samples over to the session.
func (g *Gui) flush() {
	n := len(g.batch)
	if n == 0 {
		return
	}
	history := make([]impressionist.PointerSample, n-1)
	copy(history, g.batch[:n-1])

	g.session.Handle(impressionist.Event{
		Action:  impressionist.Move,
		Sample:  g.batch[n-1],
		History: history,
	})
	g.batch = g.batch[:0]
}

// drawSurface presents a snapshot of the off-screen surface.
func (g *Gui) drawSurface(gtx C) D {
	img := g.session.Surface.Snapshot()

	defer clip.Rect(img.Bounds()).Push(gtx.Ops).Pop()
	paint.NewImageOp(img).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return D{Size: img.Bounds().Size()}
}

// drawBorder outlines the rectangle occupied by the photo.
func (g *Gui) drawBorder(gtx C) {
	r := g.photo.Bounds()
	if r.Empty() {
		return
	}
	defer clip.Stroke{Path: clip.Rect(r).Path(), Width: borderWidth}.Op().Push(gtx.Ops).Pop()
	paint.ColorOp{Color: borderColor}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// saveRecording writes the captured gestures, if recording was requested.
func (g *Gui) saveRecording() error {
	if g.recording == nil {
		return nil
	}
	f, err := os.Create(g.cfg.record)
	if err != nil {
		return errors.Wrap(err, "unable to create the recording file")
	}
	defer f.Close()

	return g.recording.Encode(f)
}
