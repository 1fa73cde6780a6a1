package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gavinalvarezz/PhishBotAgent/internal/adapters/filter"
	"github.com/gavinalvarezz/PhishBotAgent/internal/advisory"
	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/wordlist"
)

func newTestConfig() *config.Config {
	return config.NewFromViper(config.NewEmptyViper())
}

func TestScorerFactoryEmbeddedLists(t *testing.T) {
	f := NewScorerFactory(newTestConfig(), zap.NewNop())

	snap, err := f.LoadWordLists()
	require.NoError(t, err)
	require.False(t, snap.SafeDegraded)
	require.Positive(t, snap.Danger.Len())

	s := f.CreateScorer(snap)
	result := s.Score("From: support@micros0ft.com\nSecurity alert: reset your password <input type=\"password\">")
	require.True(t, result.Spoofed)
	require.Equal(t, "microsoft.com", result.SpoofTarget)
	require.True(t, result.CredentialTrap)
	// two phrases + unknown sender + spoof + credential trap
	require.Equal(t, 80, result.Score)
}

func TestScorerFactoryDirectory(t *testing.T) {
	dir := t.TempDir()
	danger := []byte("Wire Transfer\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "danger.txt"), danger, 0o600))

	cfg := newTestConfig()
	cfg.Set("wordlists.dir", dir)
	cfg.Set("wordlists.danger.file", "danger.txt")
	cfg.Set("wordlists.danger.sha256", wordlist.Digest(danger))

	snap, err := NewScorerFactory(cfg, zap.NewNop()).LoadWordLists()
	require.NoError(t, err)
	require.Equal(t, []string{"wire transfer"}, snap.Danger.Phrases())
	// the default safe list is not in dir
	require.True(t, snap.SafeDegraded)
	require.Equal(t, []string{wordlist.SafeListWarning}, snap.Warnings)
}

func TestScorerFactoryBadPin(t *testing.T) {
	cfg := newTestConfig()
	cfg.Set("wordlists.danger.sha256", "deadbeef")

	_, err := NewScorerFactory(cfg, zap.NewNop()).LoadWordLists()
	require.ErrorIs(t, err, wordlist.ErrDangerListUnavailable)
	require.ErrorIs(t, err, wordlist.ErrIntegrityMismatch)
}

func TestCacheFactory(t *testing.T) {
	c, err := NewCacheFactory(newTestConfig(), zap.NewNop()).CreateResultCache()
	require.NoError(t, err)
	c.Stop()

	cfg := newTestConfig()
	cfg.Set("cache.cleanup_frequency", "often")
	_, err = NewCacheFactory(cfg, zap.NewNop()).CreateResultCache()
	require.Error(t, err)
}

func TestFilterFactory(t *testing.T) {
	service := core.NewScanService(nil, advisory.NewEngine(), nil, nil, zap.NewNop(), false, 0, nil)
	processor := NewTextProcessorFactory(newTestConfig(), zap.NewNop()).CreateTextProcessor()

	testCases := []struct {
		filterType string
		expected   any
	}{
		{"http", &filter.HTTPFilter{}},
		{"smtp", &filter.SMTPFilter{}},
		{"cli", &filter.CliFilter{}},
	}

	for _, tc := range testCases {
		t.Run(tc.filterType, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.Set("server.filter_type", tc.filterType)

			f, err := NewFilterFactory(cfg, zap.NewNop(), service, processor, nil, os.Stdout).CreateEmailFilter()
			require.NoError(t, err)
			require.IsType(t, tc.expected, f)
		})
	}

	cfg := newTestConfig()
	cfg.Set("server.filter_type", "milter")
	_, err := NewFilterFactory(cfg, zap.NewNop(), service, processor, nil, os.Stdout).CreateEmailFilter()
	require.Error(t, err)
}
