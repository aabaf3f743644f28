// Package config loads runtime configuration for gitdrop.
//
// Sources & precedence (later sources override earlier ones):
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables GITDROP_*, optionally seeded from a .env file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags.
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.github.com",
//	  "raw_base_url": "https://raw.githubusercontent.com",
//	  "storage_dsn": "gitdrop.db",
//	  "redis_addr": "",
//	  "account_id": 42,
//	  "rate_limit_interval": "10s",
//	  "request_timeout": "30s",
//	  "repo_init_delay": "2s",
//	  "max_probe_attempts": 1000,
//	  "log_level": "info",
//	  "otlp_endpoint": ""
//	}
//
// The passphrase that seals the stored token is deliberately not part of the
// JSON schema; pass it through GITDROP_PASSPHRASE or -p.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for gitdrop.
type Config struct {
	// APIBaseURL is the GitHub REST API root.
	APIBaseURL string
	// RawBaseURL is the host serving raw file content for produced links.
	RawBaseURL string
	// StorageDSN selects the credential store: a SQLite file path, or a
	// postgres:// URL.
	StorageDSN string
	// RedisAddr enables the shared Redis rate limiter when non-empty.
	RedisAddr string
	// AccountID is the chat account owning this session; it names the
	// storage repository.
	AccountID int64
	// Passphrase seals the persisted token.
	Passphrase string

	RateLimitInterval time.Duration
	RequestTimeout    time.Duration
	RepoInitDelay     time.Duration
	MaxProbeAttempts  int

	LogLevel     string
	OTLPEndpoint string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.github.com"
	c.RawBaseURL = "https://raw.githubusercontent.com"
	c.StorageDSN = "gitdrop.db"
	c.RateLimitInterval = 10 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.RepoInitDelay = 2 * time.Second
	c.MaxProbeAttempts = 1000
	c.LogLevel = "info"
}

// Validate reports settings that would make the uploader misbehave.
func (c *Config) Validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api base url is required"))
	}
	if c.RawBaseURL == "" {
		errs = append(errs, errors.New("raw base url is required"))
	}
	if c.AccountID <= 0 {
		errs = append(errs, errors.New("account id must be positive (GITDROP_ACCOUNT_ID or -u)"))
	}
	if c.RateLimitInterval < 0 {
		errs = append(errs, errors.New("rate limit interval must not be negative"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.MaxProbeAttempts <= 0 {
		errs = append(errs, errors.New("max probe attempts must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, the environment (and .env), an
// optional JSON file and command-line flags, then validates it.
func LoadConfig() (*Config, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, os.Getenv); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJson(cfg, os.Args[1:]); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
