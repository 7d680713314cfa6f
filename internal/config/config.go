// Package config handles loading and validating the application
// configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration, shared by the
// kartctl client and the kartd reference server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	API           APIConfig           `yaml:"api"`
	Auth          AuthConfig          `yaml:"auth"`
	Contact       ContactConfig       `yaml:"contact"`
	Refresh       RefreshConfig       `yaml:"refresh"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings for kartd.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Tokens maps pre-issued bearer tokens to user ids. kartd's
	// verifier resolves the acting user from this map; tokens are
	// issued out of band.
	Tokens map[string]string `yaml:"tokens"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`

	// InMemory runs kartd against an in-process store instead of
	// Postgres. Development only; nothing survives a restart.
	InMemory bool `yaml:"in_memory"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// Validate checks that the fields required to open a connection are set.
// Only kartd needs a database; the client never calls this.
func (d *DatabaseConfig) Validate() error {
	var errs []error
	if d.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if d.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	return errors.Join(errs...)
}

// APIConfig defines how the client reaches the remote marketplace API.
type APIConfig struct {
	BaseURL   string          `yaml:"base_url"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines client-side API rate limiting settings.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// AuthConfig defines the session provider. Either a token-exchange
// endpoint plus refresh token, or a pre-issued static session for
// development.
type AuthConfig struct {
	Endpoint     string `yaml:"endpoint"`
	RefreshToken string `yaml:"refresh_token"`

	// Static session (development / CI). Used when both are set.
	UserID      string `yaml:"user_id"`
	AccessToken string `yaml:"access_token"`
}

// Static reports whether a pre-issued session is configured.
func (a *AuthConfig) Static() bool {
	return a.UserID != "" && a.AccessToken != ""
}

// ContactConfig defines the contact-seller opening message.
type ContactConfig struct {
	// Template is a text/template body with the product as dot.
	Template string `yaml:"template"`
}

// RefreshConfig defines the background listing refresh.
type RefreshConfig struct {
	// AutoInterval bumps the refresh token periodically so the
	// listing feed refetches. Zero disables the refresher.
	AutoInterval time.Duration `yaml:"auto_interval"`
}

// NotificationsConfig defines optional outcome notification targets
// beyond the terminal.
type NotificationsConfig struct {
	Webhook WebhookConfig `yaml:"webhook"`
}

// WebhookConfig defines generic webhook settings.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultContactTemplate is the deterministic opening message sent by
// the contact-seller flow.
const DefaultContactTemplate = "Hi! I'm interested in your {{.Title}}"

// Default returns a configuration with every default applied and no
// file read. The client CLI falls back to this when no config file
// exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment
// variable substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyAPIDefaults(&cfg.API)
	applyContactDefaults(&cfg.Contact)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = "http://localhost:8080"
	}
	if a.Timeout == 0 {
		a.Timeout = 10 * time.Second
	}
	if a.RateLimit.PerSecond == 0 {
		a.RateLimit.PerSecond = 10.0
	}
	if a.RateLimit.Burst == 0 {
		a.RateLimit.Burst = 20
	}
}

func applyContactDefaults(c *ContactConfig) {
	if c.Template == "" {
		c.Template = DefaultContactTemplate
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if !cfg.Auth.Static() {
		if cfg.Auth.Endpoint == "" && cfg.Auth.RefreshToken == "" {
			// No auth configured at all is fine: the guard will
			// report unauthenticated and the caller routes to the
			// external auth flow.
		} else {
			if cfg.Auth.Endpoint == "" {
				errs = append(errs, fmt.Errorf("auth.endpoint is required with auth.refresh_token"))
			}
			if cfg.Auth.RefreshToken == "" {
				errs = append(errs, fmt.Errorf("auth.refresh_token is required with auth.endpoint"))
			}
		}
	}

	if cfg.Notifications.Webhook.Enabled && cfg.Notifications.Webhook.URL == "" {
		errs = append(errs, fmt.Errorf("notifications.webhook.url is required when enabled"))
	}

	if cfg.Refresh.AutoInterval < 0 {
		errs = append(errs, fmt.Errorf("refresh.auto_interval must not be negative"))
	}

	return errors.Join(errs...)
}
