package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyInput is returned when there is nothing to scan
	ErrEmptyInput = errors.New("please paste an email to scan")
	// ErrScanningHalted is returned when the danger list could not be loaded
	ErrScanningHalted = errors.New("scanning halted: danger word list unavailable")
)

// ScanService is the core service front ends call into
type ScanService struct {
	scorer       Scorer
	advisor      Advisor
	cache        ResultCache
	recorder     Recorder
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	warnings     []string
}

// NewScanService creates a new scan service. A nil scorer puts the service in
// halted mode; a nil recorder disables metrics.
func NewScanService(
	scorer Scorer,
	advisor Advisor,
	cache ResultCache,
	recorder Recorder,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	warnings []string,
) *ScanService {
	return &ScanService{
		scorer:       scorer,
		advisor:      advisor,
		cache:        cache,
		recorder:     recorder,
		logger:       logger,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
		warnings:     append([]string(nil), warnings...),
	}
}

// Warnings returns the non-blocking startup warnings attached to every report
func (s *ScanService) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// Halted reports whether scanning is disabled for the process lifetime
func (s *ScanService) Halted() bool {
	return s.scorer == nil
}

// Advise maps a score to a recommendation without scanning
func (s *ScanService) Advise(score int) Advice {
	return s.advisor.Advise(score)
}

// Scan scores text and wraps the result into a report
func (s *ScanService) Scan(ctx context.Context, text string) (*Report, error) {
	if s.scorer == nil {
		s.observeError("halted")
		return nil, ErrScanningHalted
	}
	if strings.TrimSpace(text) == "" {
		s.observeError("empty_input")
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	digest := contentDigest(text)

	var (
		result ScanResult
		cached bool
	)
	if s.cacheEnabled {
		if hit, err := s.cache.Get(ctx, digest); err == nil {
			s.logger.Debug("Cache hit for scan", zap.String("digest", digest))
			result = *hit
			cached = true
		}
	}

	if !cached {
		result = s.scorer.Score(text)
		if s.cacheEnabled {
			if err := s.cache.Set(ctx, digest, &result, s.cacheTTL); err != nil {
				s.logger.Error("Failed to update cache", zap.Error(err))
			}
		}
	}

	report := &Report{
		ID:        uuid.NewString(),
		ScannedAt: time.Now(),
		Result:    result,
		Advice:    s.advisor.Advise(result.Score),
		Warnings:  s.Warnings(),
		Cached:    cached,
	}

	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.ObserveScan(report, elapsed)
	}

	s.logger.Info("Scanned email",
		zap.String("id", report.ID),
		zap.Int("score", result.Score),
		zap.String("tier", string(report.Advice.Tier)),
		zap.String("sender_domain", result.SenderDomain),
		zap.Int("danger_matches", len(result.MatchedDanger)),
		zap.Int("safe_matches", len(result.MatchedSafe)),
		zap.Bool("spoofed", result.Spoofed),
		zap.Bool("credential_trap", result.CredentialTrap),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", elapsed))

	return report, nil
}

func (s *ScanService) observeError(kind string) {
	if s.recorder != nil {
		s.recorder.ObserveError(kind)
	}
}

func contentDigest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
