// Package config holds the build configuration for specgen. A config
// file is optional: defaults cover a conventional layout, a YAML file
// overrides them, and SPECGEN_* environment variables override the
// file. Precedence: defaults < file < environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "specgen.yaml"

// Config is the top-level configuration.
type Config struct {
	// Specs is the root directory of the YAML spec tree.
	Specs string `yaml:"specs"`
	// Output is the root the generated tree is written under. It is
	// cleared at the start of every build.
	Output string `yaml:"output"`
	// Templates optionally points at a template override directory.
	Templates string `yaml:"templates,omitempty"`
	// Suite is the display name of the spec collection.
	Suite string `yaml:"suite"`
	// Version is the spec tree's semantic version.
	Version string `yaml:"version"`
	// Provenance optionally overrides the See-link URL pattern; it
	// needs two %s slots, version then path.
	Provenance string `yaml:"provenance,omitempty"`
	// Excludes lists path substrings; matching spec files are dropped
	// before parsing.
	Excludes []string `yaml:"excludes,omitempty"`
	// Skips maps fully-qualified targets to skip reasons. Keys take
	// the forms namespace::module::case, namespace::module::* and
	// namespace::*.
	Skips map[string]string `yaml:"skips,omitempty"`
	// Reserved overrides the reserved namespace-segment table.
	Reserved []string `yaml:"reserved,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string `yaml:"level"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Specs:   "./specs",
		Output:  "./generated",
		Suite:   "core",
		Version: "1.0.0",
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration at path, or DefaultPath when path is
// empty. A missing file is not an error; defaults apply. Environment
// overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults stand
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over file values, one
// SPECGEN_* variable per field.
func (c *Config) applyEnvOverrides() {
	for _, o := range []struct {
		env string
		dst *string
	}{
		{"SPECGEN_SPECS", &c.Specs},
		{"SPECGEN_OUTPUT", &c.Output},
		{"SPECGEN_TEMPLATES", &c.Templates},
		{"SPECGEN_SUITE", &c.Suite},
		{"SPECGEN_VERSION", &c.Version},
		{"SPECGEN_PROVENANCE", &c.Provenance},
		{"SPECGEN_LOG_LEVEL", &c.Logging.Level},
	} {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}
