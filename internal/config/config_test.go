package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colorbook/internal/palette"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colorbook.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, palette.DefaultEndpoint, cfg.Palette.Endpoint)
	assert.Equal(t, float32(5), cfg.Canvas.StrokeWidth)
	assert.False(t, cfg.Mirror.Enabled)

	pc := cfg.PaletteConfig()
	assert.Equal(t, palette.DefaultTimeout, pc.Timeout)
}

func TestLoad(t *testing.T) {
	path := write(t, `
[palette]
endpoint = "http://localhost:9000/colors"
timeout = "2s"

[canvas]
stroke_width = 8.0
templates_dir = "/srv/templates"

[mirror]
enabled = true
port = 9999
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/colors", cfg.Palette.Endpoint)
	assert.Equal(t, Duration(2*time.Second), cfg.Palette.Timeout)
	assert.Equal(t, float32(8), cfg.Canvas.StrokeWidth)
	assert.Equal(t, "/srv/templates", cfg.Canvas.TemplatesDir)
	assert.Equal(t, 800, cfg.Canvas.Width, "unset keys keep defaults")
	assert.True(t, cfg.Mirror.Enabled)
	assert.Equal(t, 9999, cfg.Mirror.Port)
	assert.True(t, cfg.Mirror.Advertise)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(write(t, `[palette]
timeout = "soon"`))
	assert.Error(t, err)

	_, err = Load(write(t, `[canvas]
stroke_width = 0.0`))
	assert.ErrorContains(t, err, "stroke_width")

	_, err = Load(write(t, `[mirror]
enabled = true
port = 70000`))
	assert.ErrorContains(t, err, "mirror.port")
}
