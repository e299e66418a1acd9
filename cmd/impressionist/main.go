package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"github.com/esimov/impressionist"
	"github.com/esimov/impressionist/gui"
	"github.com/esimov/impressionist/utils"
)

const HelpBanner = `
┬┌┬┐┌─┐┬─┐┌─┐┌─┐┌─┐┬┌─┐┌┐┌┬┌─┐┌┬┐
││││├─┘├┬┘├┤ └─┐└─┐││ ││││├┘└─┐ │
┴┴ ┴┴  ┴└─└─┘└─┘└─┘┴└─┘┘└┘┴└─┘ ┴

Paint over a photograph with impressionist brush strokes.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source image (file, URL or - for stdin)")
	destination = flag.String("out", "painting.png", "Destination of the painting (- for stdout)")
	configFile  = flag.String("config", "", "TOML configuration file")
	brushType   = flag.String("brush", "square", "Brush type: square, circle or hatch")
	dynamic     = flag.Bool("dynamic", true, "Size the brush by the pointer speed")
	alpha       = flag.Int("alpha", impressionist.DefaultAlpha, "Brush opacity (0-255)")
	radius      = flag.Float64("radius", impressionist.DefaultRadius, "Brush size when dynamic sizing is off")
	minRadius   = flag.Float64("min-radius", impressionist.DefaultMinRadius, "Minimum brush size with dynamic sizing")
	seed        = flag.Int64("seed", 0, "Seed of the hatch brush random generator (0 is time based)")
	replay      = flag.String("replay", "", "Replay a recorded gesture file and save the painting without opening a window")
	record      = flag.String("record", "", "Record the gestures into this file when the window is closed")
	width       = flag.Int("width", impressionist.MaxScreenX, "Maximum window width")
	height      = flag.Int("height", impressionist.MaxScreenY, "Maximum window height")
	debug       = flag.Bool("debug", false, "Log skipped samples")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf(utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage), err)
	}

	painter := &impressionist.Painter{
		Config:   cfg,
		PipeName: pipeName,
		Debug:    *debug,
		Logger:   log.New(os.Stderr, "impressionist: ", log.Ltime),
	}

	if *replay != "" {
		painter.Spinner = utils.NewSpinner(utils.DecorateText("⚡ IMPRESSIONIST", utils.StatusMessage), time.Millisecond*80, true)
		op := &impressionist.Ops{Src: *source, Dst: *destination, Replay: *replay}
		if err := painter.Execute(op); err != nil {
			painter.Spinner.RestoreCursor()
			log.Fatalf(
				utils.DecorateText("\nError painting the image: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		return
	}

	img, err := painter.LoadSource(*source)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	photo := impressionist.NewPhoto(img, image.Pt(cfg.Window.Width, cfg.Window.Height))
	seed := painter.Config.EnsureSeed()
	if *debug {
		painter.Logger.Printf("hatch seed: %d", seed)
	}
	session, err := painter.NewSession(photo, cfg.Brush, seed)
	if err != nil {
		log.Fatalf(utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage), err)
	}

	g := gui.NewGUI(painter, photo, session, *destination, *record)
	go func() {
		if err := g.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// loadConfig reads the configuration file, if any, and applies the flags
// explicitly set on the command line on top of it.
func loadConfig() (impressionist.Config, error) {
	cfg := impressionist.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = impressionist.LoadConfig(*configFile); err != nil {
			return cfg, err
		}
	}

	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "brush":
			var t impressionist.BrushType
			if t, err = impressionist.ParseBrushType(*brushType); err == nil {
				cfg.Brush.Type = t
			}
		case "dynamic":
			cfg.Brush.Dynamic = *dynamic
		case "alpha":
			cfg.Brush.Alpha = uint8(utils.Clamp(*alpha, 0, 255))
		case "radius":
			cfg.Brush.Radius = *radius
		case "min-radius":
			cfg.Brush.MinRadius = *minRadius
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		}
	})
	return cfg, err
}
