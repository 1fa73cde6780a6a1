package core

import (
	"context"
	"time"
)

// Scorer computes a ScanResult from raw email text
type Scorer interface {
	// Score must be deterministic and safe for concurrent use
	Score(text string) ScanResult
}

// Advisor maps a score to a recommendation
type Advisor interface {
	Advise(score int) Advice
}

// ResultCache memoizes scan results by content digest
type ResultCache interface {
	// Get retrieves a cached result
	Get(ctx context.Context, digest string) (*ScanResult, error)

	// Set stores a result for ttl
	Set(ctx context.Context, digest string, result *ScanResult, ttl time.Duration) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// Recorder observes completed scans
type Recorder interface {
	ObserveScan(report *Report, elapsed time.Duration)
	ObserveError(kind string)
}
