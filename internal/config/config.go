// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"

	"studio-quote/core/types"
	"studio-quote/internal/errors"
	"studio-quote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP service configuration
	Server ServerConfig `json:"server"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP service settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" env:"QUOTE_ADDR"`

	// ReadTimeout bounds reading a request
	ReadTimeout Duration `json:"read_timeout" env:"QUOTE_READ_TIMEOUT"`

	// WriteTimeout bounds writing a response
	WriteTimeout Duration `json:"write_timeout" env:"QUOTE_WRITE_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout Duration `json:"shutdown_timeout" env:"QUOTE_SHUTDOWN_TIMEOUT"`

	// MaxBodyBytes limits request body size
	MaxBodyBytes int64 `json:"max_body_bytes" env:"QUOTE_MAX_BODY_BYTES"`

	// MetricsEnabled exposes GET /metrics
	MetricsEnabled bool `json:"metrics_enabled" env:"QUOTE_METRICS_ENABLED"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Currency is the currency quotes are expressed in
	Currency types.Currency `json:"currency" env:"QUOTE_CURRENCY"`

	// RateCardPath is an optional HCL or JSON rate card replacing the built-in catalog
	RateCardPath string `json:"rate_card_path,omitempty" env:"QUOTE_RATE_CARD"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default CLI output format
	DefaultFormat string `json:"default_format" env:"QUOTE_FORMAT"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color" env:"NO_COLOR"`
}

// Duration is a time.Duration that reads and writes as a string ("30s") in JSON
type Duration time.Duration

// Std returns the standard library duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler, which env parsing also uses
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(10 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
			MaxBodyBytes:    64 * 1024,
			MetricsEnabled:  true,
		},
		Pricing: PricingConfig{
			Currency: types.CurrencyUSD,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.studio-quote.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".studio-quote.json"
	}
	return filepath.Join(homeDir, ".studio-quote.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "read config", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "parse config %s", path)
	}

	return cfg, cfg.Validate()
}

// ApplyEnv overlays QUOTE_* environment variables onto the configuration.
// Variables that are not set leave the current value untouched.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrap(errors.TypeConfig, "parse environment", err)
	}
	return c.Validate()
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.Config("server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Config("server.max_body_bytes must be positive")
	}
	if c.Pricing.Currency == "" {
		c.Pricing.Currency = types.CurrencyUSD
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
