package impressionist

import (
	"fmt"
	"image"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/impressionist/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Painter holds the options shared by the interactive and the headless mode.
type Painter struct {
	Config   Config
	PipeName string
	Debug    bool
	Spinner  *utils.Spinner
	Logger   *log.Logger
}

// Ops describes a headless painting: the source photo, the recording to
// replay over it and the destination of the painting.
type Ops struct {
	Src, Dst, Replay string
}

// LoadSource reads the source photo from a local file, a URL or stdin.
func (p *Painter) LoadSource(src string) (*image.NRGBA, error) {
	var r io.Reader

	switch {
	case utils.IsValidUrl(src):
		img, err := utils.DownloadImage(src)
		if err != nil {
			return nil, err
		}
		r = img
	case src == p.PipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		r = os.Stdin
	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, errors.Wrap(err, "unable to open the source file")
		}
		defer f.Close()
		r = f
	}
	return decodeImg(r)
}

// Export encodes the painting into dst, which is either a file path or the pipe name.
func (p *Painter) Export(s *Surface, dst string) error {
	var w io.Writer

	if dst == p.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		w = os.Stdout
	} else {
		if ext := filepath.Ext(dst); !isValidExtension(ext) {
			return errors.Errorf("%v file type not supported", ext)
		}
		f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return errors.Wrap(err, "unable to create the destination file")
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}()
		w = f
	}

	if err := encodeImg(w, s.Snapshot()); err != nil {
		if f, ok := w.(*os.File); ok && f != os.Stdout {
			os.Remove(f.Name())
		}
		return err
	}
	return nil
}

// NewSession builds a session painting the photo on a surface of the view size.
// The seed is used as given, zero included, so that a replay is deterministic.
func (p *Painter) NewSession(photo *Photo, brush Brush, seed int64) (*Session, error) {
	blank, err := p.Config.BlankColor()
	if err != nil {
		return nil, err
	}
	view := photo.View()

	s := NewSession(NewSurface(view.X, view.Y, blank), photo, photo, brush, rand.New(rand.NewSource(seed)))
	s.Policy = p.Config.Resize
	if p.Debug {
		s.Logger = p.Logger
	}
	return s, nil
}

// Execute replays a recorded gesture sequence over the source photo and
// saves the resulting painting.
func (p *Painter) Execute(op *Ops) error {
	now := time.Now()

	f, err := os.Open(op.Replay)
	if err != nil {
		return errors.Wrap(err, "unable to open the recording")
	}
	rec, err := DecodeRecording(f)
	f.Close()
	if err != nil {
		return err
	}

	img, err := p.LoadSource(op.Src)
	if err != nil {
		return errors.Wrap(err, "failed to load the source image")
	}

	photo := NewPhoto(img, image.Pt(rec.View.Width, rec.View.Height))
	session, err := p.NewSession(photo, rec.Brush, rec.Seed)
	if err != nil {
		return err
	}

	if p.Spinner != nil {
		// Capture CTRL-C signal and restore the cursor visibility back.
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(signalChan)

		go func() {
			<-signalChan
			p.Spinner.RestoreCursor()
			os.Exit(1)
		}()
		p.Spinner.Start()
	}
	res := rec.Replay(session, func(done, total int) {
		if p.Spinner != nil {
			p.Spinner.SetMessage(fmt.Sprintf("%s %s",
				utils.DecorateText("⚡ IMPRESSIONIST", utils.StatusMessage),
				utils.DecorateText(fmt.Sprintf("⇢ painting event %d/%d...", done, total), utils.DefaultMessage),
			))
		}
	})
	if p.Spinner != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ IMPRESSIONIST", utils.StatusMessage),
			utils.DecorateText(fmt.Sprintf("⇢ %d marks painted, %d samples skipped ✔", res.Painted, res.Skipped), utils.SuccessMessage),
		)
		p.Spinner.Stop()
	}

	if err := p.Export(session.Surface, op.Dst); err != nil {
		return err
	}
	if op.Dst != p.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe painting has been saved as: %s\n",
			utils.DecorateText(filepath.Base(op.Dst), utils.SuccessMessage),
		)
	}
	fmt.Fprintf(os.Stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return nil
}
