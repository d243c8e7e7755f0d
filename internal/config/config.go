// Package config defines the labelscan configuration model and its loader.
// Configuration is sourced from YAML files, LABELSCAN_* environment
// variables, and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/labelscan/internal/preprocess"
	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// Known preset names accepted by the scan command.
const (
	PresetNone          = ""
	PresetShippingLabel = "shipping-label"
	PresetLowResolution = "low-resolution"
)

// Config represents the complete configuration for the labelscan application.
// It supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Scan behavior
	Scan ScanConfig `mapstructure:"scan" yaml:"scan" json:"scan"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// ScanConfig contains decoding settings.
type ScanConfig struct {
	Preset      string   `mapstructure:"preset" yaml:"preset" json:"preset"`
	Profile     string   `mapstructure:"profile" yaml:"profile" json:"profile"`
	MaxCodes    int      `mapstructure:"max_codes" yaml:"max_codes" json:"max_codes"`
	TryHarder   bool     `mapstructure:"try_harder" yaml:"try_harder" json:"try_harder"`
	WholeImage  bool     `mapstructure:"whole_image" yaml:"whole_image" json:"whole_image"`
	Symbologies []string `mapstructure:"symbologies" yaml:"symbologies" json:"symbologies"`
	Inverted    []string `mapstructure:"inverted" yaml:"inverted" json:"inverted"`
}

// OutputConfig contains output file settings.
type OutputConfig struct {
	File      string `mapstructure:"file" yaml:"file" json:"file"`
	DebugFile string `mapstructure:"debug_file" yaml:"debug_file" json:"debug_file"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Scan: ScanConfig{
			Preset:     PresetShippingLabel,
			Profile:    preprocess.Enhanced.String(),
			MaxCodes:   10,
			TryHarder:  true,
			WholeImage: true,
		},
		Output: OutputConfig{
			File:      "labelscan_output.jpg",
			DebugFile: "labelscan_debug.jpg",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (expected debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Scan.Preset {
	case PresetNone, PresetShippingLabel, PresetLowResolution:
	default:
		return fmt.Errorf("unknown preset %q (expected %q or %q)",
			c.Scan.Preset, PresetShippingLabel, PresetLowResolution)
	}

	if _, err := preprocess.ParseKind(c.Scan.Profile); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	if c.Scan.MaxCodes < 1 {
		return fmt.Errorf("max_codes must be at least 1, got %d", c.Scan.MaxCodes)
	}

	for _, name := range c.Scan.Symbologies {
		if _, err := symbology.Parse(name); err != nil {
			return fmt.Errorf("invalid symbology: %w", err)
		}
	}
	for _, name := range c.Scan.Inverted {
		if _, err := symbology.Parse(name); err != nil {
			return fmt.Errorf("invalid inverted symbology: %w", err)
		}
	}

	if c.Output.File == "" {
		return fmt.Errorf("output file must not be empty")
	}
	return nil
}
