// Package config loads the application settings from TOML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"colorbook/internal/palette"
	"colorbook/internal/render"
)

// Duration is a time.Duration written as text, e.g. "10s".
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	Palette Palette `toml:"palette"`
	Canvas  Canvas  `toml:"canvas"`
	Mirror  Mirror  `toml:"mirror"`
}

// Palette configures the remote palette source.
type Palette struct {
	Endpoint string   `toml:"endpoint"`
	Timeout  Duration `toml:"timeout"`
}

// Canvas configures the drawing surface.
type Canvas struct {
	StrokeWidth  float32 `toml:"stroke_width"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	TemplatesDir string  `toml:"templates_dir"`
}

// Mirror configures the live snapshot mirror.
type Mirror struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Palette: Palette{
			Endpoint: palette.DefaultEndpoint,
			Timeout:  Duration(palette.DefaultTimeout),
		},
		Canvas: Canvas{
			StrokeWidth:  render.DefaultStrokeWidth,
			Width:        800,
			Height:       600,
			TemplatesDir: "assets/templates",
		},
		Mirror: Mirror{
			Port:      8888,
			Advertise: true,
		},
	}
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if c.Palette.Endpoint == "" {
		return fmt.Errorf("palette.endpoint is empty")
	}
	if c.Palette.Timeout <= 0 {
		return fmt.Errorf("palette.timeout must be positive")
	}
	if c.Canvas.StrokeWidth <= 0 {
		return fmt.Errorf("canvas.stroke_width must be positive")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d is invalid", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Mirror.Enabled && (c.Mirror.Port <= 0 || c.Mirror.Port > 65535) {
		return fmt.Errorf("mirror.port %d is out of range", c.Mirror.Port)
	}
	return nil
}

// PaletteConfig converts the palette section for palette.NewProvider.
func (c Config) PaletteConfig() palette.Config {
	return palette.Config{
		Endpoint: c.Palette.Endpoint,
		Timeout:  time.Duration(c.Palette.Timeout),
	}
}
