package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gitdrop/internal/flagx"
	"github.com/dmitrijs2005/gitdrop/internal/timex"
)

// JsonConfig is a DTO used only for unmarshalling. Pointer fields tell an
// absent key apart from a zero value, so a partial file only overrides what
// it mentions.
type JsonConfig struct {
	APIBaseURL        *string         `json:"api_base_url"`
	RawBaseURL        *string         `json:"raw_base_url"`
	StorageDSN        *string         `json:"storage_dsn"`
	RedisAddr         *string         `json:"redis_addr"`
	AccountID         *int64          `json:"account_id"`
	RateLimitInterval *timex.Duration `json:"rate_limit_interval"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	RepoInitDelay     *timex.Duration `json:"repo_init_delay"`
	MaxProbeAttempts  *int            `json:"max_probe_attempts"`
	LogLevel          *string         `json:"log_level"`
	OTLPEndpoint      *string         `json:"otlp_endpoint"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RawBaseURL != nil {
		cfg.RawBaseURL = *jc.RawBaseURL
	}
	if jc.StorageDSN != nil {
		cfg.StorageDSN = *jc.StorageDSN
	}
	if jc.RedisAddr != nil {
		cfg.RedisAddr = *jc.RedisAddr
	}
	if jc.AccountID != nil {
		cfg.AccountID = *jc.AccountID
	}
	if jc.RateLimitInterval != nil {
		cfg.RateLimitInterval = jc.RateLimitInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RepoInitDelay != nil {
		cfg.RepoInitDelay = jc.RepoInitDelay.Duration
	}
	if jc.MaxProbeAttempts != nil {
		cfg.MaxProbeAttempts = *jc.MaxProbeAttempts
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.OTLPEndpoint != nil {
		cfg.OTLPEndpoint = *jc.OTLPEndpoint
	}
	return nil
}
