// Package config loads the chesspos YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hailam/chesspos/internal/board"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Board layouts selectable from the config file.
const (
	LayoutMailbox  = "mailbox"
	LayoutBitboard = "bitboard"
)

// Config is the on-disk configuration.
type Config struct {
	Listen   string  `yaml:"listen"`
	DataDir  string  `yaml:"data_dir"` // empty: platform data dir
	Layout   string  `yaml:"layout"`
	LogLevel string  `yaml:"log_level"`
	Diagram  Diagram `yaml:"diagram"`
}

// Diagram controls rendered board images.
type Diagram struct {
	SquareSize int    `yaml:"square_size"`
	Light      string `yaml:"light"`
	Dark       string `yaml:"dark"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:   "localhost:8080",
		Layout:   LayoutMailbox,
		LogLevel: "info",
		Diagram: Diagram{
			SquareSize: 45,
			Light:      "#f0d9b5",
			Dark:       "#b58863",
		},
	}
}

// Load reads filename over the defaults. An empty filename returns the
// defaults unchanged.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if _, err := c.NewLayout(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Diagram.SquareSize < 8 || c.Diagram.SquareSize > 256 {
		return fmt.Errorf("%w: diagram square_size %d out of range [8, 256]", ErrInvalidConfig, c.Diagram.SquareSize)
	}
	for _, col := range []string{c.Diagram.Light, c.Diagram.Dark} {
		if !hexColor.MatchString(col) {
			return fmt.Errorf("%w: diagram color %q is not #rrggbb", ErrInvalidConfig, col)
		}
	}
	return nil
}

// NewLayout returns the constructor for the configured board layout.
func (c *Config) NewLayout() (func() board.Layout, error) {
	switch strings.ToLower(c.Layout) {
	case "", LayoutMailbox:
		return board.NewMailbox, nil
	case LayoutBitboard:
		return board.NewBitboards, nil
	}
	return nil, fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, c.Layout)
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return l, nil
}
