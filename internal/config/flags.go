package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gitdrop/internal/flagx"
)

var knownFlags = []string{"-a", "-r", "-d", "-k", "-u", "-p", "-i", "-t", "-l", "-o"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   GitHub API base URL
//	-r string   raw content base URL
//	-d string   storage DSN (SQLite path or postgres:// URL)
//	-k string   Redis address for the shared rate limiter
//	-u int      chat account id owning the session
//	-p string   passphrase sealing the stored token
//	-i int      rate limit interval (seconds)
//	-t int      remote call timeout (seconds)
//	-l string   log level
//	-o string   OTLP/HTTP endpoint for traces
//
// args are filtered through flagx.FilterArgs first, so unrelated flags
// (such as -c) do not cause errors.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("gitdrop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "GitHub API base URL")
	fs.StringVar(&cfg.RawBaseURL, "r", cfg.RawBaseURL, "raw content base URL")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.RedisAddr, "k", cfg.RedisAddr, "redis address for rate limiting")
	fs.Int64Var(&cfg.AccountID, "u", cfg.AccountID, "chat account id")
	fs.StringVar(&cfg.Passphrase, "p", cfg.Passphrase, "token passphrase")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.OTLPEndpoint, "o", cfg.OTLPEndpoint, "OTLP endpoint")

	interval := fs.Int("i", int(cfg.RateLimitInterval.Seconds()), "rate limit interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	// Only explicit -i/-t override, so sub-second values from other
	// sources survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.RateLimitInterval = time.Duration(*interval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
