package core

import (
	"time"
)

// PhraseList is an ordered, read-only list of lowercase trigger phrases
type PhraseList struct {
	phrases []string
}

// NewPhraseList copies phrases into a new list. Entries are kept as given;
// normalization is the loader's job.
func NewPhraseList(phrases ...string) PhraseList {
	cp := make([]string, len(phrases))
	copy(cp, phrases)
	return PhraseList{phrases: cp}
}

// Len returns the number of phrases
func (l PhraseList) Len() int {
	return len(l.phrases)
}

// Phrases returns a copy of the phrases in their original order
func (l PhraseList) Phrases() []string {
	cp := make([]string, len(l.phrases))
	copy(cp, l.phrases)
	return cp
}

// Reputation is the classification of a sender domain
type Reputation string

const (
	ReputationTrusted    Reputation = "trusted"
	ReputationSuspicious Reputation = "suspicious"
	ReputationUnknown    Reputation = "unknown"
)

// ScanResult holds the score and the evidence behind it
type ScanResult struct {
	MatchedDanger  []string   `json:"matched_danger"`
	MatchedSafe    []string   `json:"matched_safe"`
	Score          int        `json:"score"`
	SenderDomain   string     `json:"sender_domain,omitempty"`
	Reputation     Reputation `json:"reputation,omitempty"`
	Spoofed        bool       `json:"spoofed"`
	SpoofTarget    string     `json:"spoof_target,omitempty"`
	CredentialTrap bool       `json:"credential_trap"`
}

// HasSenderDomain reports whether a sender domain was found
func (r ScanResult) HasSenderDomain() bool {
	return r.SenderDomain != ""
}

// Tier is a recommendation band
type Tier string

const (
	TierSafe   Tier = "safe"
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Advice is the recommendation for a score
type Advice struct {
	Tier      Tier   `json:"tier"`
	Label     string `json:"label"`
	Headline  string `json:"headline"`
	Directive string `json:"directive"`
}

// Message renders the advice the way it is shown to users
func (a Advice) Message() string {
	return a.Headline + "\n\nWhat to do: " + a.Directive
}

// Report is what front ends receive for a single scan
type Report struct {
	ID        string     `json:"id"`
	ScannedAt time.Time  `json:"scanned_at"`
	Result    ScanResult `json:"result"`
	Advice    Advice     `json:"advice"`
	Warnings  []string   `json:"warnings,omitempty"`
	Cached    bool       `json:"cached"`
}
