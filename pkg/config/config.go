// Package config loads the optional capgen YAML configuration file. The
// zero value is a valid default; command-line flags override whatever the
// file sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/beaumcc/cap-generator/pkg/season"
)

// Config holds the run-level conversion settings.
type Config struct {
	// OutputDir receives converted files; empty means alongside each input.
	OutputDir string `yaml:"output_dir"`

	// Source forces the provider adapter ("tas" or "presto") instead of
	// detecting it per document.
	Source string `yaml:"source"`

	// AggregateRoles stores the team games-played count in each record's
	// role byte instead of the hitter/pitcher flag.
	AggregateRoles bool `yaml:"aggregate_roles"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects settings the converter cannot honor.
func (c *Config) Validate() error {
	if c.Source != "" {
		if _, ok := season.ByName(c.Source); !ok {
			return fmt.Errorf("unknown source %q (accepted: tas, presto)", c.Source)
		}
	}
	return nil
}
