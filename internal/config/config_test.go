package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gavinalvarezz/PhishBotAgent/wordlists"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	wl := cfg.GetWordLists()
	require.Empty(t, wl.Dir)
	require.Equal(t, wordlists.DangerFile, wl.Danger.File)
	require.Equal(t, wordlists.DangerSHA256, wl.Danger.SHA256)
	require.Equal(t, map[string]string{
		wordlists.DangerFile: wordlists.DangerSHA256,
		wordlists.SafeFile:   wordlists.SafeSHA256,
	}, wl.PinnedDigests())

	domains := cfg.GetDomains()
	require.Contains(t, domains.Trusted, "fafsa.gov")
	require.Contains(t, domains.Suspicious, "fasa-gov.com")

	cache, err := cfg.GetCache()
	require.NoError(t, err)
	require.True(t, cache.Enabled)
	require.Equal(t, time.Hour, cache.TTL)

	server, err := cfg.GetServer()
	require.NoError(t, err)
	require.Equal(t, "http", server.FilterType)
	require.Equal(t, 61, server.BlockThreshold)
	require.Equal(t, "X-PhishBot-Score", server.Headers.Score)
	require.Equal(t, 30*time.Second, server.ReadTimeout)

	require.Equal(t, "info", cfg.GetLogging().Level)
	require.Equal(t, 1<<20, cfg.GetMaxInputBytes())
}

func TestInvalidDurations(t *testing.T) {
	v := NewEmptyViper()
	v.Set("cache.ttl", "soon")
	cfg := NewFromViper(v)

	_, err := cfg.GetCache()
	require.Error(t, err)

	v.Set("server.read_timeout", "never")
	_, err = cfg.GetServer()
	require.Error(t, err)
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phishbot.yaml")
	content := []byte("domains:\n  trusted:\n    - example.com\nserver:\n  filter_type: smtp\n  block_threshold: 80\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := NewWithFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"example.com"}, cfg.GetDomains().Trusted)

	server, err := cfg.GetServer()
	require.NoError(t, err)
	require.Equal(t, "smtp", server.FilterType)
	require.Equal(t, 80, server.BlockThreshold)
}

func TestNewWithMissingFile(t *testing.T) {
	_, err := NewWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PHISHBOT_LOGGING_LEVEL", "debug")
	path := filepath.Join(t.TempDir(), "phishbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600))

	cfg, err := NewWithFile(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.GetLogging().Level)
}

func TestSet(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())
	cfg.Set("wordlists.dir", "/srv/lists")
	require.Equal(t, "/srv/lists", cfg.GetWordLists().Dir)
}
