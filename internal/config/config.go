// Package config loads server configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Tickets  TicketsConfig  `yaml:"tickets"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig configures the SQL connection.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// TicketsConfig configures ticket intake.
type TicketsConfig struct {
	// AcceptByDefault is the accept switch state at startup.
	AcceptByDefault bool `yaml:"accept_by_default"`
	// MaxQuestionLen bounds question text at the API boundary; the
	// registry itself treats text as opaque.
	MaxQuestionLen int `yaml:"max_question_len"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{
			Driver:       "sqlite3",
			DSN:          "gmdesk.db",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Tickets: TicketsConfig{
			AcceptByDefault: true,
			MaxQuestionLen:  4096,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in that precedence order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.Tickets.MaxQuestionLen <= 0 {
		return nil, fmt.Errorf("tickets.max_question_len must be positive, got %d", cfg.Tickets.MaxQuestionLen)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GMDESK_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("GMDESK_ACCEPT_TICKETS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Tickets.AcceptByDefault = b
		}
	}
	if v := os.Getenv("GMDESK_MAX_QUESTION_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Tickets.MaxQuestionLen = n
		}
	}
}
