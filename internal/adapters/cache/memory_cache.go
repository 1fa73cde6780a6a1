package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a cache entry is not found
	ErrNotFound = errors.New("cache entry not found")
	// ErrExpired is returned when a cache entry has expired
	ErrExpired = errors.New("cache entry expired")
)

type entry struct {
	result    core.ScanResult
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of core.ResultCache keyed by
// content digest
type MemoryCache struct {
	entries     map[string]entry
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	now         func() time.Time
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMemoryCache creates a new in-memory cache. A positive cleanupFreq starts
// a background task that evicts expired entries until Stop is called.
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration) *MemoryCache {
	cache := &MemoryCache{
		entries:     make(map[string]entry),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		now:         time.Now,
		stopCh:      make(chan struct{}),
	}

	if cleanupFreq > 0 {
		go cache.startCleanupTask()
	}

	return cache
}

// Get retrieves the result stored for digest
func (c *MemoryCache) Get(ctx context.Context, digest string) (*core.ScanResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[digest]
	if !ok {
		return nil, ErrNotFound
	}
	if c.now().After(e.expiresAt) {
		return nil, ErrExpired
	}

	result := cloneResult(e.result)
	return &result, nil
}

// Set stores a result for ttl
func (c *MemoryCache) Set(ctx context.Context, digest string, result *core.ScanResult, ttl time.Duration) error {
	if result == nil {
		return errors.New("cannot cache a nil result")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[digest] = entry{
		result:    cloneResult(*result),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Delete removes a cache entry
func (c *MemoryCache) Delete(ctx context.Context, digest string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, digest)
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup removes expired entries
func (c *MemoryCache) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expiredCount := 0

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			expiredCount++
		}
	}

	c.logger.Debug("Cleaned up expired cache entries", zap.Int("expired_count", expiredCount))
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task. It is safe to call more than once.
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// results are shared between scans, so slices are never aliased
func cloneResult(r core.ScanResult) core.ScanResult {
	r.MatchedDanger = append([]string(nil), r.MatchedDanger...)
	r.MatchedSafe = append([]string(nil), r.MatchedSafe...)
	return r
}
