// Package config loads and validates batch render configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrInvalidScale    = errors.New("invalid raster scale factor")
	ErrInvalidStroke   = errors.New("invalid outline stroke width")
	ErrInvalidColor    = errors.New("invalid outline stroke color")
	ErrInvalidTimeout  = errors.New("invalid timeout")
)

// maxConfigSize limits YAML input to prevent memory exhaustion.
const maxConfigSize = 1 << 20

// MaxColorLength bounds the outline color string ("#rrggbbaa" or a CSS color name).
const MaxColorLength = 50

// Render defaults.
const (
	DefaultScale       = 1.0
	DefaultMargin      = 200.0 // SVG user units; MathJax emits 1000 units per em
	DefaultStrokeWidth = 40.0
	DefaultStrokeColor = "#000000"
)

// Config holds all configuration for a batch render run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Outline OutlineConfig `yaml:"outline"`
}

// InputConfig defines where equation sources are read from.
type InputConfig struct {
	Dir string `yaml:"dir"` // Source directory (empty = must specify on the command line)
}

// OutputConfig defines where artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory (empty = must specify on the command line)
}

// RenderConfig defines typesetting and rasterization settings.
type RenderConfig struct {
	Inline  bool    `yaml:"inline"`  // Inline math layout instead of display (block) layout
	Scale   float64 `yaml:"scale"`   // Multiplier on the base raster density (default: 1.0)
	Margin  float64 `yaml:"margin"`  // Canvas padding in SVG user units (default: 200)
	Timeout string  `yaml:"timeout"` // Per-equation typesetting timeout, e.g. "30s" (empty = default)
}

// OutlineConfig defines the stroke added around every glyph path.
type OutlineConfig struct {
	Color string  `yaml:"color"` // Stroke color (default: "#000000")
	Width float64 `yaml:"width"` // Stroke width in SVG user units (default: 40)
}

// DefaultConfig returns the configuration used when no file or flag overrides it.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Scale:  DefaultScale,
			Margin: DefaultMargin,
		},
		Outline: OutlineConfig{
			Color: DefaultStrokeColor,
			Width: DefaultStrokeWidth,
		},
	}
}

// Validate checks that configured values are usable.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if c.Render.Scale <= 0 {
		return fmt.Errorf("%w: %v (must be > 0)", ErrInvalidScale, c.Render.Scale)
	}
	// Negative margins are tolerated: the margin pass treats them as zero,
	// so they are not a configuration error.
	if c.Outline.Width < 0 {
		return fmt.Errorf("%w: %v (must be >= 0)", ErrInvalidStroke, c.Outline.Width)
	}
	if len(c.Outline.Color) > MaxColorLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidColor, len(c.Outline.Color), MaxColorLength)
	}
	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, c.Render.Timeout)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, c.Render.Timeout)
		}
	}
	return nil
}

// ParsedTimeout returns the timeout as a duration, or zero when unset.
// Validate must have accepted the config first.
func (c *Config) ParsedTimeout() time.Duration {
	if c.Render.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
//
// Values absent from the file keep their defaults, so a partial config file
// only overrides what it mentions.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), maxConfigSize)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths returns the locations LoadConfig considers for a config name,
// in search order. A value containing a path separator is used verbatim.
// Useful for error reporting when no candidate exists.
func SearchPaths(nameOrPath string) []string {
	if nameOrPath == "" {
		return nil
	}
	if isFilePath(nameOrPath) {
		return []string{nameOrPath}
	}

	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, nameOrPath+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-tex2img", nameOrPath+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-tex2img/
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
