package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitdrop.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":        "http://ghe.local/api/v3",
		"account_id":          99,
		"rate_limit_interval": "20s",
		"repo_init_delay":     0,
		"max_probe_attempts":  10,
	})

	t.Run("overrides only present keys", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "http://ghe.local/api/v3", cfg.APIBaseURL)
		assert.Equal(t, int64(99), cfg.AccountID)
		assert.Equal(t, 20*time.Second, cfg.RateLimitInterval)
		assert.Equal(t, time.Duration(0), cfg.RepoInitDelay)
		assert.Equal(t, 10, cfg.MaxProbeAttempts)
		assert.Equal(t, "https://raw.githubusercontent.com", cfg.RawBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, nil))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		require.Error(t, parseJson(defaults(), []string{"-c", bad}))
	})
}
