package di

import (
	"io"
	"net/http"
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/gavinalvarezz/PhishBotAgent/internal/adapters/cache"
	"github.com/gavinalvarezz/PhishBotAgent/internal/advisory"
	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/factory"
	"github.com/gavinalvarezz/PhishBotAgent/internal/logging"
	"github.com/gavinalvarezz/PhishBotAgent/internal/metrics"
	"github.com/gavinalvarezz/PhishBotAgent/internal/ports"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
	"github.com/gavinalvarezz/PhishBotAgent/internal/wordlist"
)

// BuildContainer creates and configures a dependency injection container for
// the daemon, reading configuration from the default locations
func BuildContainer() (*dig.Container, error) {
	return BuildContainerWithConfig(config.New)
}

// BuildContainerWithConfig is BuildContainer with a custom configuration source
func BuildContainerWithConfig(newConfig func() (*config.Config, error)) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(newConfig); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewScorerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register word lists; a danger list failure stops the daemon here
	if err := container.Provide(func(f *factory.ScorerFactory) (*wordlist.Snapshot, error) {
		return f.LoadWordLists()
	}); err != nil {
		return nil, err
	}

	// Register scorer and advisory engine
	if err := container.Provide(func(f *factory.ScorerFactory, snap *wordlist.Snapshot) core.Scorer {
		return f.CreateScorer(snap)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func() core.Advisor {
		return advisory.NewEngine()
	}); err != nil {
		return nil, err
	}

	// Register result cache
	if err := container.Provide(func(f *factory.CacheFactory) (*cache.MemoryCache, error) {
		return f.CreateResultCache()
	}); err != nil {
		return nil, err
	}

	// Register metrics
	if err := container.Provide(func() *metrics.Recorder {
		return metrics.NewRecorder(true)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *metrics.Recorder) http.Handler {
		return r.Handler()
	}); err != nil {
		return nil, err
	}

	// Register scan output
	if err := container.Provide(func() io.Writer {
		return os.Stdout
	}); err != nil {
		return nil, err
	}

	// Register scan service
	if err := container.Provide(func(
		scorer core.Scorer,
		advisor core.Advisor,
		resultCache *cache.MemoryCache,
		recorder *metrics.Recorder,
		logger *zap.Logger,
		f *factory.CacheFactory,
		snap *wordlist.Snapshot,
	) (*core.ScanService, error) {
		cc, err := f.GetCacheConfig()
		if err != nil {
			return nil, err
		}
		return core.NewScanService(
			scorer,
			advisor,
			resultCache,
			recorder,
			logger,
			cc.Enabled,
			cc.TTL,
			snap.Warnings,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
