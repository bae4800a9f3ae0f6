package deckgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/icons"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/render"
)

// DefaultParallelism bounds concurrent icon fetches.
const DefaultParallelism = 4

// Config is the user-tunable part of a run, usually read from YAML.
type Config struct {
	Theme  render.Theme `yaml:"theme"`
	Icons  IconsConfig  `yaml:"icons"`
	Charts ChartsConfig `yaml:"charts"`
}

// IconsConfig configures icon lookup.
type IconsConfig struct {
	// BaseURL is the Iconify-compatible service root.
	BaseURL string `yaml:"base_url"`
	// DefaultPrefix is the icon set used for ids without a prefix.
	DefaultPrefix string `yaml:"default_prefix"`
	// Color is the requested icon color as RRGGBB.
	Color string `yaml:"color"`
	// Timeout bounds one fetch, e.g. "5s".
	Timeout time.Duration `yaml:"timeout"`
	// SizePx is the rasterised icon edge length.
	SizePx int `yaml:"size_px"`
	// Parallelism is the number of concurrent fetches.
	Parallelism int `yaml:"parallelism"`
}

// ChartsConfig configures chart rasterisation.
type ChartsConfig struct {
	// DPI is the pixel density of chart images.
	DPI float64 `yaml:"dpi"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Theme: render.DefaultTheme(),
		Icons: IconsConfig{
			BaseURL:       icons.DefaultBaseURL,
			DefaultPrefix: icons.DefaultPrefix,
			Color:         icons.DefaultColor,
			Timeout:       icons.DefaultTimeout,
			SizePx:        icons.DefaultSizePx,
			Parallelism:   DefaultParallelism,
		},
		Charts: ChartsConfig{
			DPI: render.DefaultDPI,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys left out keep their
// defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Theme = cfg.Theme.Merge(render.DefaultTheme())
	if cfg.Icons.Parallelism <= 0 {
		cfg.Icons.Parallelism = DefaultParallelism
	}
	if cfg.Charts.DPI <= 0 {
		cfg.Charts.DPI = render.DefaultDPI
	}
	return cfg, nil
}
