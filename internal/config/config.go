// Package config provides configuration for the Sequoia archive server.
// Settings come from an optional YAML file with environment variable
// overrides on top, so a bare deployment can run from env alone.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingArchiveURL = errors.New("archive.base_url is required")
	ErrInvalidTimeout    = errors.New("archive.timeout_sec must be at least 1")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Archive ArchiveConfig `yaml:"archive"`
	Inbox   InboxConfig   `yaml:"inbox"`
	Email   EmailConfig   `yaml:"email"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Addr      string `yaml:"addr" env:"SEQUOIA_ADDR"`
	Env       string `yaml:"env" env:"SEQUOIA_ENV"`
	StaticDir string `yaml:"static_dir" env:"SEQUOIA_STATIC_DIR"`
}

// ArchiveConfig points at the upstream voyage archive API.
type ArchiveConfig struct {
	BaseURL    string `yaml:"base_url" env:"SEQUOIA_ARCHIVE_URL"`
	TimeoutSec int    `yaml:"timeout_sec" env:"SEQUOIA_ARCHIVE_TIMEOUT_SEC"`
}

// Timeout returns the archive request timeout as a duration.
func (a *ArchiveConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// InboxConfig locates the local corrections inbox database.
type InboxConfig struct {
	DBPath string `yaml:"db_path" env:"SEQUOIA_INBOX_DB"`
}

// EmailConfig holds the notification provider settings. When APIKey is
// empty, submissions are still stored but no email is sent.
type EmailConfig struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	From         string `yaml:"from" env:"SEQUOIA_EMAIL_FROM"`
	NotifyTo     string `yaml:"notify_to" env:"SEQUOIA_NOTIFY_TO"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" env:"SEQUOIA_LOG_LEVEL"`
}

// Default returns a configuration with working defaults for local
// development against a local archive API.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8080",
			Env:       "development",
			StaticDir: "static",
		},
		Archive: ArchiveConfig{
			BaseURL:    "http://localhost:3001",
			TimeoutSec: 15,
		},
		Inbox: InboxConfig{
			DBPath: "sequoia.db",
		},
		Email: EmailConfig{
			From: "Sequoia Archive <noreply@localhost>",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path if
// it exists, then environment overrides. An empty path skips the file
// step entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.Archive.BaseURL == "" {
		return ErrMissingArchiveURL
	}
	if c.Archive.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}
	return nil
}
