package impressionist

import (
	"bytes"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/esimov/impressionist/utils"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// The painting window never opens larger than this by default.
const (
	MaxScreenX = 1366
	MaxScreenY = 768
)

// Window is the preferred size of the painting window.
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config holds the settings read from a TOML configuration file.
type Config struct {
	Brush      Brush        `toml:"brush"`
	Background string       `toml:"background"`
	Seed       int64        `toml:"seed"`
	Resize     ResizePolicy `toml:"resize"`
	Window     Window       `toml:"window"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{
		Brush:      DefaultBrush(),
		Background: "#ffffff",
		Resize:     Discard,
		Window:     Window{Width: MaxScreenX, Height: MaxScreenY},
	}
}

// BlankColor parses the background color of the painting.
func (c Config) BlankColor() (color.NRGBA, error) {
	if c.Background == "" {
		return Blank, nil
	}
	col, err := utils.HexToRGBA(c.Background)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(err, "invalid background color")
	}
	return col, nil
}

// EnsureSeed replaces a zero seed with a time based one and returns the seed
// in use. The seed is fixed from then on, so a recording made with this
// configuration replays the same hatch strokes.
func (c *Config) EnsureSeed() int64 {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c.Seed
}

// DecodeConfig reads a TOML configuration on top of the defaults.
// Unknown keys are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "could not decode the configuration")
	}
	if _, err := cfg.BlankColor(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), errors.Wrapf(err, "could not read the configuration file %s", path)
	}
	return DecodeConfig(bytes.NewReader(data))
}
