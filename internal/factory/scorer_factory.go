package factory

import (
	"io/fs"
	"os"

	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"github.com/gavinalvarezz/PhishBotAgent/internal/credtrap"
	"github.com/gavinalvarezz/PhishBotAgent/internal/scorer"
	"github.com/gavinalvarezz/PhishBotAgent/internal/sender"
	"github.com/gavinalvarezz/PhishBotAgent/internal/wordlist"
	"github.com/gavinalvarezz/PhishBotAgent/wordlists"
	"go.uber.org/zap"
)

// ScorerFactory builds the word list store and the scorer from configuration
type ScorerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewScorerFactory creates a new scorer factory
func NewScorerFactory(cfg *config.Config, logger *zap.Logger) *ScorerFactory {
	return &ScorerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// WordListFS returns the configured directory, or the embedded lists when none is set
func (f *ScorerFactory) WordListFS() fs.FS {
	if dir := f.cfg.GetWordLists().Dir; dir != "" {
		return os.DirFS(dir)
	}
	return wordlists.FS
}

// CreateStore creates a word list store pinned to the configured digests
func (f *ScorerFactory) CreateStore() *wordlist.Store {
	return wordlist.NewStore(f.WordListFS(), f.cfg.GetWordLists().PinnedDigests(), f.logger)
}

// LoadWordLists verifies and loads both phrase lists
func (f *ScorerFactory) LoadWordLists() (*wordlist.Snapshot, error) {
	wl := f.cfg.GetWordLists()
	f.logger.Debug("Loading word lists",
		zap.String("dir", wl.Dir),
		zap.String("danger", wl.Danger.File),
		zap.String("safe", wl.Safe.File))
	return wordlist.Bootstrap(f.CreateStore(), wl.Danger.File, wl.Safe.File, f.logger)
}

// CreateTrustTable creates the sender reputation table
func (f *ScorerFactory) CreateTrustTable() *sender.TrustTable {
	domains := f.cfg.GetDomains()
	return sender.NewTrustTable(domains.Trusted, domains.Suspicious, f.logger)
}

// CreateScorer creates a scorer over a loaded snapshot
func (f *ScorerFactory) CreateScorer(snap *wordlist.Snapshot) *scorer.Scorer {
	return scorer.New(scorer.Profile{
		Danger: snap.Danger,
		Safe:   snap.Safe,
		Trust:  f.CreateTrustTable(),
	}, credtrap.NewDetector(credtrap.NewHTMLFinder(), f.logger))
}
