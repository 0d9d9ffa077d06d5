// Package config loads the settings of the formula command.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/formula"
)

// Format is a configuration file format.
type Format int

const (
	// FormatTOML is TOML, the default.
	FormatTOML Format = iota
	// FormatYAML is YAML.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the settings of the formula command.
type Config struct {
	// Scale is the number of fractional digits kept in results.
	Scale uint `toml:"scale" yaml:"scale"`
	// Rounding is the rounding mode, by name, e.g. "half_even".
	Rounding formula.RoundingMode `toml:"rounding" yaml:"rounding"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// Formulas maps names to formulas that can be evaluated by name.
	Formulas map[string]string `toml:"formulas" yaml:"formulas"`
}

// Default returns the settings used when there is no configuration file.
func Default() *Config {
	return &Config{
		Scale:    formula.DefaultScale,
		Rounding: formula.HalfUp,
		LogLevel: zerolog.LevelInfoValue,
	}
}

// DetectFormat determines the format of a file from its extension. Anything
// other than .yaml or .yml is TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load loads the configuration file at path. Environment variables in the
// path are expanded.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(b, DetectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration. Settings absent from b keep
// their defaults.
func Parse(b []byte, f Format) (*Config, error) {
	cfg := Default()
	switch f {
	case FormatTOML:
		if _, err := toml.Decode(string(b), cfg); err != nil {
			return nil, errors.Wrap(err, "TOML parse error")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, errors.Wrap(err, "YAML parse error")
		}
	default:
		return nil, errors.Errorf("unsupported format %v", f)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Scale > formula.MaxScale {
		return errors.Errorf("scale %d exceeds %d", c.Scale, formula.MaxScale)
	}
	if _, err := formula.ParseRoundingMode(c.Rounding.String()); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	for name, f := range c.Formulas {
		if strings.TrimSpace(name) == "" {
			return errors.New("formula with empty name")
		}
		if strings.TrimSpace(f) == "" {
			return errors.Errorf("formula %q is empty", name)
		}
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// Arithmetic creates an Arithmetic with the configured scale and rounding
// that logs to l.
func (c *Config) Arithmetic(l zerolog.Logger) *formula.Arithmetic {
	return formula.New(formula.Scale(c.Scale), formula.Rounding(c.Rounding), formula.Logger(l))
}

// Formula returns the formula with the given name.
func (c *Config) Formula(name string) (string, error) {
	f, ok := c.Formulas[name]
	if !ok {
		return "", errors.Errorf("no formula named %q (have %s)", name, strings.Join(c.Names(), ", "))
	}
	return f, nil
}

// Names returns the names of the configured formulas in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Formulas))
	for name := range c.Formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
