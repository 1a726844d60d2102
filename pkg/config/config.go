// Package config loads the YAML configuration shared by the pageview commands.
//
// Example:
//
//	source: "https://archive.example.org/docs/viewer/index.html"
//	canvas:
//	  width: 800
//	  height: 800
//	strict: false
//	listen: ":8080"
//	log_level: info
//	user_agent: "pageview/1.0"
//	pdf:
//	  text_layer: true
//	  layer_name: "OCR Text"
//	  debug: false
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/pageview/pkg/pdfocr"
)

// Default canvas size in pixels
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

type yamlConfig struct {
	Source string `yaml:"source"`
	Canvas struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"canvas"`
	Strict    bool   `yaml:"strict"`
	Listen    string `yaml:"listen"`
	LogLevel  string `yaml:"log_level"`
	UserAgent string `yaml:"user_agent"`
	PDF       struct {
		TextLayer *bool  `yaml:"text_layer"`
		LayerName string `yaml:"layer_name"`
		Debug     bool   `yaml:"debug"`
	} `yaml:"pdf"`
}

// Config holds the settings of the viewer commands
type Config struct {
	Source    string // URL of the viewer page or directory it is served from
	Width     int    // Canvas width in pixels
	Height    int    // Canvas height in pixels
	Strict    bool   // Reject documents with invalid numeric attributes
	Listen    string // Listen address of pageserve
	LogLevel  slog.Level
	UserAgent string
	PDF       pdfocr.Config
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Source:   ".",
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Listen:   ":8080",
		LogLevel: slog.LevelInfo,
		PDF:      pdfocr.DefaultConfig(),
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse converts YAML data to a Config, keeping defaults for unset fields
func Parse(data []byte) (*Config, error) {
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg := Default()

	if yc.Source != "" {
		cfg.Source = yc.Source
	}
	if yc.Canvas.Width != 0 {
		cfg.Width = yc.Canvas.Width
	}
	if yc.Canvas.Height != 0 {
		cfg.Height = yc.Canvas.Height
	}
	if yc.Listen != "" {
		cfg.Listen = yc.Listen
	}
	if yc.LogLevel != "" {
		level, err := ParseLevel(yc.LogLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	cfg.Strict = yc.Strict
	cfg.UserAgent = yc.UserAgent

	if yc.PDF.TextLayer != nil {
		cfg.PDF.TextLayer = *yc.PDF.TextLayer
	}
	if yc.PDF.LayerName != "" {
		cfg.PDF.LayerName = yc.PDF.LayerName
	}
	cfg.PDF.Debug = yc.PDF.Debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a command cannot work without
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	return nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Logger returns a text logger on stderr at the configured level
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))
}
