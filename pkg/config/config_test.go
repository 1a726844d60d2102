package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
source: "https://archive.example.org/docs/viewer/index.html"
canvas:
  width: 1024
strict: true
log_level: debug
pdf:
  text_layer: false
  layer_name: "Text"
`))
	require.NoError(t, err)

	require.Equal(t, "https://archive.example.org/docs/viewer/index.html", cfg.Source)
	require.Equal(t, 1024, cfg.Width)
	require.Equal(t, DefaultHeight, cfg.Height)
	require.True(t, cfg.Strict)
	require.Equal(t, ":8080", cfg.Listen)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.False(t, cfg.PDF.TextLayer)
	require.Equal(t, "Text", cfg.PDF.LayerName)
	require.Equal(t, "Helvetica", cfg.PDF.Font.Name)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(``))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("canvas:\n  width: -1\n"))
	require.Error(t, err)

	_, err = Parse([]byte("log_level: loud\n"))
	require.Error(t, err)

	_, err = Parse([]byte("canvas: [1, 2"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9090\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Listen)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
