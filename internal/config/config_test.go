package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ROOTED_DB", "ROOTED_DB_PATH", "YOUTUBE_API_KEY", "ROOTED_YOUTUBE_API_KEY", "ROOTED_LOG_LEVEL", "ROOTED_YOUTUBE_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.DBPath, cfg.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 10, cfg.YouTube.MaxResults)
	assert.Equal(t, 8*time.Second, cfg.YouTube.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Live.CacheTTL)
	assert.Equal(t, 5, cfg.Live.HistorySize)
	assert.Equal(t, 30, cfg.Recommend.RecentCap)
	assert.Equal(t, 15, cfg.Recommend.RecentExclude)
	assert.Empty(t, cfg.YouTube.APIKey)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
db_path: /tmp/rooted-test.db
log:
  level: debug
  pretty: true
youtube:
  api_key: file-key
  timeout: 3s
live:
  cache_ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rooted-test.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "file-key", cfg.YouTube.APIKey)
	assert.Equal(t, 3*time.Second, cfg.YouTube.Timeout)
	assert.Equal(t, time.Hour, cfg.Live.CacheTTL)
	assert.Equal(t, 10, cfg.YouTube.MaxResults, "unset keys keep defaults")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROOTED_DB", "/tmp/env.db")
	t.Setenv("YOUTUBE_API_KEY", "env-key")
	t.Setenv("ROOTED_LOG_LEVEL", "info")
	t.Setenv("ROOTED_YOUTUBE_TIMEOUT", "2s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, "env-key", cfg.YouTube.APIKey)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.YouTube.Timeout)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("YOUTUBE_API_KEY=dotenv-key\n"), 0o644))

	LoadEnv(path)
	t.Cleanup(func() { os.Unsetenv("YOUTUBE_API_KEY") })

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.YouTube.APIKey)

	LoadEnv(filepath.Join(t.TempDir(), "nope.env"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".rooted/x.db"), expandPath("~/.rooted/x.db"))
	assert.Equal(t, "/abs/x.db", expandPath("/abs/x.db"))
}
