// Package config holds the client tuning knobs: transport timeouts,
// connection pooling, and an optional endpoint override for S3-compatible
// services that are not addressed by region.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Duration wraps time.Duration so YAML documents can use "10s" syntax.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the dispatcher's transport configuration.
type Config struct {
	// Endpoint overrides the endpoint derived from the account's region.
	// Include the scheme, e.g. "https://minio.internal:9000".
	Endpoint string `yaml:"endpoint"`

	ConnectTimeout Duration `yaml:"connect_timeout"`
	RequestTimeout Duration `yaml:"request_timeout"`
	MaxIdleConns   int      `yaml:"max_idle_conns"`
	DisableSSL     bool     `yaml:"disable_ssl"`
	UserAgent      string   `yaml:"user_agent"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		ConnectTimeout: Duration(10 * time.Second),
		RequestTimeout: Duration(30 * time.Second),
		MaxIdleConns:   100,
		UserAgent:      "s3kit",
	}
}

// Load reads a YAML configuration file, applying defaults for unset
// fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the transport cannot use.
func (c *Config) Validate() error {
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("connect_timeout must not be negative, got %v", c.ConnectTimeout.Std())
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %v", c.RequestTimeout.Std())
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns must not be negative, got %d", c.MaxIdleConns)
	}
	return nil
}
