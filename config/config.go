// Package config loads the YAML configuration of wshed and the scene files
// it segments.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wshed/report"
	"github.com/katalvlaran/wshed/watershed"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Engine parameters
	Watershed struct {
		// MinDepth is the smallest basin depth that yields an emission
		MinDepth int `yaml:"minDepth"`

		// MinimaMaxValue bounds the intensity of flooded unmarked minima
		MinimaMaxValue int `yaml:"minimaMaxValue"`

		// MinimaBorder drops unmarked minima this close to the image edge
		MinimaBorder int `yaml:"minimaBorder"`

		// DetectMinima floods from unmarked regional minima as well
		DetectMinima bool `yaml:"detectMinima"`

		// FinalEmission emits seeds that never met another basin
		FinalEmission bool `yaml:"finalEmission"`

		// QueueLimit caps the priority queue; 0 means unlimited
		QueueLimit int `yaml:"queueLimit"`
	} `yaml:"watershed"`

	// Output parameters
	Output struct {
		// Format is text or yaml
		Format report.Format `yaml:"format"`

		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Watershed.MinDepth = 1
	cfg.Watershed.MinimaMaxValue = watershed.DefaultMinimaMaxValue
	cfg.Watershed.MinimaBorder = 0
	cfg.Watershed.DetectMinima = true
	cfg.Watershed.FinalEmission = false
	cfg.Watershed.QueueLimit = 0

	cfg.Output.Format = report.FormatText
	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks every field against the range the engine accepts.
func (c *Config) Validate() error {
	w := c.Watershed
	switch {
	case w.MinimaMaxValue < 1 || w.MinimaMaxValue > 255:
		return fmt.Errorf("%w: watershed.minimaMaxValue %d not in [1,255]", ErrInvalidConfig, w.MinimaMaxValue)
	case w.MinimaBorder < 0:
		return fmt.Errorf("%w: watershed.minimaBorder %d is negative", ErrInvalidConfig, w.MinimaBorder)
	case w.QueueLimit < 0:
		return fmt.Errorf("%w: watershed.queueLimit %d is negative", ErrInvalidConfig, w.QueueLimit)
	}
	switch c.Output.Format {
	case report.FormatText, report.FormatYAML:
	default:
		return fmt.Errorf("%w: output.format %q", ErrInvalidConfig, c.Output.Format)
	}
	return nil
}

// Options converts the engine section to watershed options.
func (c *Config) Options() []watershed.Option {
	w := c.Watershed
	opts := []watershed.Option{
		watershed.WithMinimaMaxValue(w.MinimaMaxValue),
		watershed.WithMinimaBorder(w.MinimaBorder),
		watershed.WithQueueLimit(w.QueueLimit),
	}
	if !w.DetectMinima {
		opts = append(opts, watershed.WithoutMinima())
	}
	if w.FinalEmission {
		opts = append(opts, watershed.WithFinalEmission())
	}
	return opts
}
