package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStretch      = 1.0
	DefaultGlyph        = "x"
	DefaultBlank        = " "
	DefaultPredicate    = "ink"
	DefaultThreshold    = 128.0
	DefaultInterpolator = "bilinear"
	DefaultTheme        = "minimal"
)

// Config is the on-disk form of a render configuration. Width 0 means the
// intrinsic image width.
type Config struct {
	Width        float64 `yaml:"width"`
	Stretch      float64 `yaml:"stretch"`
	Async        bool    `yaml:"async"`
	Workers      int     `yaml:"workers"`
	Text         string  `yaml:"text"`
	Glyph        string  `yaml:"glyph"`
	Blank        string  `yaml:"blank"`
	Predicate    string  `yaml:"predicate"`
	Threshold    float64 `yaml:"threshold"`
	Interpolator string  `yaml:"interpolator"`
	ReverseText  bool    `yaml:"reverse_text"`
	Theme        string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Stretch:      DefaultStretch,
		Glyph:        DefaultGlyph,
		Blank:        DefaultBlank,
		Predicate:    DefaultPredicate,
		Threshold:    DefaultThreshold,
		Interpolator: DefaultInterpolator,
		Theme:        DefaultTheme,
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks numeric ranges. Predicate and interpolator names are
// resolved later by the pipeline registry.
func (c *Config) Validate() error {
	if bad(c.Width) || c.Width < 0 {
		return fmt.Errorf("width must be a non-negative number, got %g", c.Width)
	}
	if bad(c.Stretch) || c.Stretch < 0 {
		return fmt.Errorf("stretch must be a non-negative number, got %g", c.Stretch)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if bad(c.Threshold) || c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold must be within [0, 255], got %g", c.Threshold)
	}
	if c.Glyph == "" {
		return fmt.Errorf("glyph must not be empty")
	}
	return nil
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
