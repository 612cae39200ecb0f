// Package config provides YAML configuration parsing for presence.
//
// This package enables running presence as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	port: 8080
//	secret_key: ${SECRET_KEY}
//	stale_after: 10m
//	seed_status: true
//	store:
//	  driver: sqlite
//	  path: ${PRESENCE_DB_PATH:-./data/presence.db}
//
// When no file is given, [Default] parses [DefaultYAML], so the only required
// input is the SECRET_KEY environment variable.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultYAML is the configuration used when no file is supplied.
const DefaultYAML = `
secret_key: ${SECRET_KEY}
store:
  driver: sqlite
  path: ${PRESENCE_DB_PATH:-./data/presence.db}
`

const (
	defaultPort       = 8080
	defaultStaleAfter = 10 * time.Minute
	defaultDBPath     = "./data/presence.db"

	// minStaleAfter keeps a typo like "10" (nanoseconds) from making every
	// record read as offline.
	minStaleAfter = 1 * time.Second
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the root configuration structure for presence.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// SecretKey is the shared secret publishers present as a bearer token.
	// Required. Supports environment variable substitution.
	SecretKey string `yaml:"secret_key"`

	// StaleAfter is the age at which a record reads as offline. Defaults to 10m.
	StaleAfter Duration `yaml:"stale_after"`

	// SeedStatus writes an "online" record on every start, replacing the
	// stored one. Defaults to true.
	SeedStatus *bool `yaml:"seed_status"`

	// Store selects where records are kept.
	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects and locates the key-value store.
type StoreConfig struct {
	// Driver is "sqlite" (default) or "memory".
	Driver string `yaml:"driver"`

	// Path is the SQLite database file. Supports environment variable
	// substitution. Defaults to ./data/presence.db.
	Path string `yaml:"path"`
}

// Seed reports whether startup seeding is enabled.
func (c *Config) Seed() bool {
	return c.SeedStatus == nil || *c.SeedStatus
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Default parses [DefaultYAML] against the current environment.
func Default() (*Config, error) {
	return Parse([]byte(DefaultYAML))
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in SecretKey and Store.Path.
// Defaults are applied for Port, StaleAfter, and the store.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.StaleAfter == 0 {
		cfg.StaleAfter = Duration(defaultStaleAfter)
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DriverSQLite
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	secret, err := expandEnvVars(c.SecretKey)
	if err != nil {
		return fmt.Errorf("secret_key: %w", err)
	}
	if secret == "" {
		return errors.New("secret_key is required")
	}
	c.SecretKey = secret

	if c.StaleAfter.Duration() < minStaleAfter {
		return fmt.Errorf("stale_after must be at least %s, got %s", minStaleAfter, c.StaleAfter.Duration())
	}

	switch c.Store.Driver {
	case DriverSQLite:
		path, err := expandEnvVars(c.Store.Path)
		if err != nil {
			return fmt.Errorf("store.path: %w", err)
		}
		if path == "" {
			path = defaultDBPath
		}
		c.Store.Path = path
	case DriverMemory:
		// nothing to locate
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", DriverSQLite, DriverMemory, c.Store.Driver)
	}

	return nil
}
