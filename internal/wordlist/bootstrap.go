package wordlist

import (
	"errors"
	"fmt"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"go.uber.org/zap"
)

// ErrDangerListUnavailable halts scanning; callers must not score without the danger list
var ErrDangerListUnavailable = errors.New("danger word list failed integrity check or is missing")

// SafeListWarning is surfaced to users when the safe list is degraded
const SafeListWarning = "'safe_words.txt' failed integrity check or is missing. Safe word dampening disabled."

// Snapshot is the immutable result of startup loading
type Snapshot struct {
	Danger       core.PhraseList
	Safe         core.PhraseList
	SafeDegraded bool
	Warnings     []string
}

// Bootstrap loads both lists once. A danger failure is fatal; a safe failure
// leaves an empty safe list and a warning.
func Bootstrap(store *Store, dangerName, safeName string, logger *zap.Logger) (*Snapshot, error) {
	danger, err := store.Load(dangerName)
	if err != nil {
		logger.Error("Danger word list unavailable, scanning disabled",
			zap.String("name", dangerName),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDangerListUnavailable, err)
	}

	snap := &Snapshot{Danger: danger}

	safe, err := store.Load(safeName)
	if err != nil {
		logger.Warn("Safe word list unavailable, safe word dampening disabled",
			zap.String("name", safeName),
			zap.Error(err))
		snap.Safe = core.NewPhraseList()
		snap.SafeDegraded = true
		snap.Warnings = []string{SafeListWarning}
		return snap, nil
	}

	snap.Safe = safe
	logger.Info("Loaded word lists",
		zap.Int("danger_phrases", danger.Len()),
		zap.Int("safe_phrases", safe.Len()))
	return snap, nil
}
