// Package config loads the small settings surface cmd/gosql accepts beyond
// its flags. It mirrors the teacher's internal/config.LoadConfig/DefaultConfig
// shape (a YAML file with graceful fallback to defaults) but trimmed to the
// handful of knobs an embeddable query engine's demo CLI actually has.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the root of the optional -config YAML document.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig controls how cmd/gosql renders SELECT results.
type OutputConfig struct {
	// Format is "table" or "csv".
	Format string `yaml:"format"`
}

// LogConfig controls the verbosity of the diagnostic logger.
type LogConfig struct {
	// Level is a logrus level name: "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings used when no -config file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "table"},
		Log:    LogConfig{Level: "warn"},
	}
}

// LoadConfig reads and parses a YAML config file. An empty path returns
// DefaultConfig without touching the filesystem.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return cfg, nil
}
