package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/gitdrop/internal/config"
	"github.com/dmitrijs2005/gitdrop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageDSN = filepath.Join(t.TempDir(), "gitdrop.db")
	cfg.APIBaseURL = "http://127.0.0.1:1"
	return cfg
}

func TestNewApp_OpensStorageAndRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := appConfig(t)
	cfg.RedisAddr = mr.Addr()

	var buf bytes.Buffer
	a, err := NewApp(context.Background(), cfg, logging.NewSlog(&buf, "debug"))
	require.NoError(t, err)

	assert.NotNil(t, a.rdb)
	assert.False(t, a.hasToken())
	assert.Contains(t, buf.String(), `msg="storage opened" dialect=sqlite`)
	require.NoError(t, a.Close(context.Background()))
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := appConfig(t)
	cfg.RedisAddr = addr

	_, err := NewApp(context.Background(), cfg, logging.Nop())
	assert.ErrorContains(t, err, "error connecting to redis")
}
