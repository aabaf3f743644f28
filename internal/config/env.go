package config

import (
	"fmt"
	"strconv"
	"time"
)

// parseEnv overlays cfg with GITDROP_* variables read through getenv.
// Empty variables leave the current value untouched.
func parseEnv(cfg *Config, getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	setString("GITDROP_API_URL", &cfg.APIBaseURL)
	setString("GITDROP_RAW_URL", &cfg.RawBaseURL)
	setString("GITDROP_STORAGE_DSN", &cfg.StorageDSN)
	setString("GITDROP_REDIS_ADDR", &cfg.RedisAddr)
	setString("GITDROP_PASSPHRASE", &cfg.Passphrase)
	setString("GITDROP_LOG_LEVEL", &cfg.LogLevel)
	setString("GITDROP_OTLP_ENDPOINT", &cfg.OTLPEndpoint)

	if v := getenv("GITDROP_ACCOUNT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GITDROP_ACCOUNT_ID: %w", err)
		}
		cfg.AccountID = id
	}
	if v := getenv("GITDROP_MAX_PROBE_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GITDROP_MAX_PROBE_ATTEMPTS: %w", err)
		}
		cfg.MaxProbeAttempts = n
	}

	if err := setDuration("GITDROP_RATE_LIMIT_INTERVAL", &cfg.RateLimitInterval); err != nil {
		return err
	}
	if err := setDuration("GITDROP_REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		return err
	}
	return setDuration("GITDROP_REPO_INIT_DELAY", &cfg.RepoInitDelay)
}
