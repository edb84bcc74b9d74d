// Package config handles configuration loading for the geokit commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for configuration values out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the root configuration file structure.
type Config struct {
	Listen Listen `yaml:"listen"`

	// MaxBodyBytes caps the size of a single HTTP request body.
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`

	// EquivalenceLimit caps the positions per side of an equivalence request.
	EquivalenceLimit int  `yaml:"equivalence_limit,omitempty"`
	Concurrency      int  `yaml:"concurrency,omitempty"`
	Pretty           bool `yaml:"pretty,omitempty"`
}

// Listen is the HTTP listener address.
type Listen struct {
	Addr string `yaml:"addr,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Defaults.
const (
	DefaultAddr             = "0.0.0.0"
	DefaultPort             = 8080
	DefaultMaxBodyBytes     = 8 << 20
	DefaultEquivalenceLimit = 10000
	DefaultConcurrency      = 8
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:           Listen{Addr: DefaultAddr, Port: DefaultPort},
		MaxBodyBytes:     DefaultMaxBodyBytes,
		EquivalenceLimit: DefaultEquivalenceLimit,
		Concurrency:      DefaultConcurrency,
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// An empty path yields Default. Fields left out of the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects negative limits and out of range ports.
func (c *Config) Validate() error {
	switch {
	case c.Listen.Port < 0 || c.Listen.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Listen.Port)
	case c.MaxBodyBytes < 0:
		return fmt.Errorf("%w: max_body_bytes %d", ErrInvalid, c.MaxBodyBytes)
	case c.EquivalenceLimit < 0:
		return fmt.Errorf("%w: equivalence_limit %d", ErrInvalid, c.EquivalenceLimit)
	case c.Concurrency < 0:
		return fmt.Errorf("%w: concurrency %d", ErrInvalid, c.Concurrency)
	}
	return nil
}
