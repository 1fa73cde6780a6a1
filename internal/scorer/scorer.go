// Package scorer combines phrase, sender and markup signals into a risk score.
package scorer

import (
	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/credtrap"
	"github.com/gavinalvarezz/PhishBotAgent/internal/matcher"
	"github.com/gavinalvarezz/PhishBotAgent/internal/sender"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
)

// Score contributions
const (
	DangerWeight        = 10
	SafeWeight          = 15
	SafeDampening       = 10
	SuspiciousPenalty   = 30
	UnknownPenalty      = 15
	SpoofPenalty        = 20
	CredentialTrapScore = 25
	MinScore            = 0
	MaxScore            = 100
)

// Profile is the immutable configuration a Scorer works from
type Profile struct {
	Danger core.PhraseList
	Safe   core.PhraseList
	Trust  *sender.TrustTable
}

// TrapDetector reports embedded credential fields
type TrapDetector interface {
	HasCredentialTrap(text string) bool
}

// Scorer is a pure function of its input text and Profile.
// It is safe for concurrent use.
type Scorer struct {
	danger  *matcher.Matcher
	safe    *matcher.Matcher
	trust   *sender.TrustTable
	trusted []string
	traps   TrapDetector
}

// New compiles the profile's phrase lists. A nil detector uses the HTML one.
func New(profile Profile, traps TrapDetector) *Scorer {
	trust := profile.Trust
	if trust == nil {
		trust = sender.NewTrustTable(nil, nil, nil)
	}
	if traps == nil {
		traps = credtrap.NewDetector(nil, nil)
	}
	return &Scorer{
		danger:  matcher.New(profile.Danger),
		safe:    matcher.New(profile.Safe),
		trust:   trust,
		trusted: trust.Trusted(),
		traps:   traps,
	}
}

// Score computes the risk score of text and the evidence behind it
func (s *Scorer) Score(text string) core.ScanResult {
	text = utils.Lower(text)

	result := core.ScanResult{
		MatchedDanger: s.danger.FindMatches(text),
		MatchedSafe:   s.safe.FindMatches(text),
	}

	safeHits := len(result.MatchedSafe)
	score := max(0, DangerWeight*len(result.MatchedDanger)-SafeWeight*safeHits)

	if domain, ok := sender.ExtractDomain(text); ok {
		result.SenderDomain = domain
		result.Reputation = s.trust.Classify(domain)

		if s.trust.IsSuspicious(domain) {
			score += SuspiciousPenalty
		} else if !s.trust.IsTrusted(domain) {
			score += UnknownPenalty
		}

		if look, spoofed := sender.FindLookalike(domain, s.trusted); spoofed {
			result.Spoofed = true
			result.SpoofTarget = look.Trusted
			score += SpoofPenalty
		}
	}

	if s.traps.HasCredentialTrap(text) {
		result.CredentialTrap = true
		score += CredentialTrapScore
	}

	// second, independent safe phrase pass
	score -= SafeDampening * safeHits

	result.Score = clamp(score)
	return result
}

func clamp(score int) int {
	return min(max(score, MinScore), MaxScore)
}
