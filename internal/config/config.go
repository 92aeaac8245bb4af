// Package config holds the viewer and selection settings, read from an
// optional TOML file and overridden by command line flags.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/pkg/errors"
)

type Config struct {
	Selection Selection `toml:"selection"`
	Overlay   Overlay   `toml:"overlay"`
	Viewer    Viewer    `toml:"viewer"`
}

type Selection struct {
	// ContainsPolicy is "consume" or "query"
	ContainsPolicy string `toml:"contains_policy"`
	// Derivation is "canvas" or "zoom"
	Derivation string `toml:"derivation"`
}

type Overlay struct {
	// Renderer is "auto", "dashed" or "solid"
	Renderer  string  `toml:"renderer"`
	DashSize  float32 `toml:"dash_size"`
	GapSize   float32 `toml:"gap_size"`
	LineWidth float32 `toml:"line_width"`
}

type Viewer struct {
	Width    int      `toml:"width"`
	Height   int      `toml:"height"`
	FPS      int      `toml:"fps"`
	Watch    bool     `toml:"watch"`
	Debounce Duration `toml:"debounce"`
}

// Duration decodes TOML strings such as "500ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(text))
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings
func Default() Config {
	style := selection.DefaultStyle()
	return Config{
		Selection: Selection{
			ContainsPolicy: selection.ConsumeOnContains.String(),
			Derivation:     "canvas",
		},
		Overlay: Overlay{
			Renderer:  "auto",
			DashSize:  style.DashSize,
			GapSize:   style.GapSize,
			LineWidth: style.LineWidth,
		},
		Viewer: Viewer{
			Width:    1400,
			Height:   900,
			FPS:      60,
			Watch:    true,
			Debounce: Duration{500 * time.Millisecond},
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config")
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	return cfg, cfg.Validate()
}

// Validate checks every enumerated value and numeric range
func (c Config) Validate() error {
	if _, err := selection.ParseContainsPolicy(c.Selection.ContainsPolicy); err != nil {
		return err
	}
	if _, err := selection.ParseDerivation(c.Selection.Derivation); err != nil {
		return err
	}
	switch c.Overlay.Renderer {
	case "auto", "dashed", "solid":
	default:
		return errors.Errorf("unknown overlay renderer %q", c.Overlay.Renderer)
	}
	if c.Overlay.DashSize <= 0 || c.Overlay.GapSize < 0 {
		return errors.New("dash_size must be positive and gap_size not negative")
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}

// Policy returns the parsed contains policy
func (c Config) Policy() selection.ContainsPolicy {
	p, _ := selection.ParseContainsPolicy(c.Selection.ContainsPolicy)
	return p
}

// Derivation returns the parsed coordinate derivation
func (c Config) Derivation() selection.Derivation {
	d, err := selection.ParseDerivation(c.Selection.Derivation)
	if err != nil {
		return selection.CanvasNormalized{}
	}
	return d
}

// Style returns the overlay style with the configured sizes
func (c Config) Style() selection.Style {
	style := selection.DefaultStyle()
	style.DashSize = c.Overlay.DashSize
	style.GapSize = c.Overlay.GapSize
	style.LineWidth = c.Overlay.LineWidth
	return style
}
