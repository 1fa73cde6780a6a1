package factory

import (
	"github.com/gavinalvarezz/PhishBotAgent/internal/adapters/cache"
	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"go.uber.org/zap"
)

// CacheFactory creates result caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateResultCache creates the in-memory result cache
func (f *CacheFactory) CreateResultCache() (*cache.MemoryCache, error) {
	cc, err := f.cfg.GetCache()
	if err != nil {
		return nil, err
	}
	return cache.NewMemoryCache(f.logger, cc.CleanupFrequency), nil
}

// GetCacheConfig returns the validated cache configuration
func (f *CacheFactory) GetCacheConfig() (config.CacheConfig, error) {
	return f.cfg.GetCache()
}
