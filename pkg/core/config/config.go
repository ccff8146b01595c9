// ============================================================================
// safestr - Safe String Toolkit
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML or YAML files
// Author:      Mike Stoffels
// Created:     2025-08-04
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/safestr/pkg/core/logging"
	"github.com/msto63/safestr/pkg/safestr"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "SAFESTR_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Limits  LimitsConfig  `toml:"limits" yaml:"limits"`
	Scripts ScriptsConfig `toml:"scripts" yaml:"scripts"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
}

// LimitsConfig bounds the Strings created by the tool
type LimitsConfig struct {
	// MaxCapacity caps every String buffer in bytes; 0 means unlimited
	MaxCapacity int `toml:"max_capacity" yaml:"max_capacity"`

	// DefaultScriptCapacity is the initial capacity for scripts without one
	DefaultScriptCapacity int `toml:"default_script_capacity" yaml:"default_script_capacity"`
}

// ScriptsConfig holds script runner settings
type ScriptsConfig struct {
	Dir           string   `toml:"dir" yaml:"dir"`
	Timeout       Duration `toml:"timeout" yaml:"timeout"`
	StopOnFailure bool     `toml:"stop_on_failure" yaml:"stop_on_failure"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(text))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML (.toml) or YAML (.yaml, .yml) file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from SAFESTR_CONFIG or a default location.
// Without any config file it returns Default().
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./safestr.toml",
			"./safestr.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/safestr/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "safestr"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}

	if c.Limits.DefaultScriptCapacity == 0 {
		c.Limits.DefaultScriptCapacity = safestr.DefaultCapacity
	}

	if c.Scripts.Dir == "" {
		c.Scripts.Dir = "."
	}
	if c.Scripts.Timeout.Duration == 0 {
		c.Scripts.Timeout.Duration = 30 * time.Second
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logging.FormatJSON
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Scripts.Dir = os.ExpandEnv(c.Scripts.Dir)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Limits.MaxCapacity < 0 {
		return fmt.Errorf("limits.max_capacity must not be negative, got %d", c.Limits.MaxCapacity)
	}
	if c.Limits.MaxCapacity > 0 && c.Limits.MaxCapacity < safestr.DefaultCapacity {
		return fmt.Errorf("limits.max_capacity must be 0 or at least %d, got %d",
			safestr.DefaultCapacity, c.Limits.MaxCapacity)
	}
	if c.Limits.DefaultScriptCapacity < 0 {
		return fmt.Errorf("limits.default_script_capacity must not be negative, got %d",
			c.Limits.DefaultScriptCapacity)
	}
	if c.Scripts.Timeout.Duration < 0 {
		return fmt.Errorf("scripts.timeout must not be negative, got %s", c.Scripts.Timeout.Duration)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q",
			logging.FormatJSON, logging.FormatConsole, c.Logging.Format)
	}
	return nil
}

// StringOptions returns the String construction options implied by the limits
func (c *Config) StringOptions() []safestr.Option {
	if c.Limits.MaxCapacity > 0 {
		return []safestr.Option{safestr.WithLimit(c.Limits.MaxCapacity)}
	}
	return nil
}

// LoggerConfig returns the logger configuration for the named service
func (c *Config) LoggerConfig(serviceName string) logging.LoggerConfig {
	cfg := logging.DefaultLoggerConfig(serviceName)
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	return cfg
}
