package scorer

import (
	"strings"
	"sync"
	"testing"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/sender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScorer() *Scorer {
	return New(Profile{
		Danger: core.NewPhraseList("urgent", "verify your account", "click here", "pay", "gift card"),
		Safe:   core.NewPhraseList("unsubscribe", "meeting agenda"),
		Trust: sender.NewTrustTable(
			[]string{"amazon.com", "netflix.com", "microsoft.com", "fafsa.gov"},
			[]string{"secure-payments-support.com", "netflix-support.biz", "account-alerts.org", "fasa-gov.com"},
			zap.NewNop(),
		),
	}, nil)
}

func TestScore(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected int
	}{
		{"nothing", "see you at lunch tomorrow", 0},
		{"one danger phrase", "this is URGENT", 10},
		{"two danger phrases", "Urgent: click here", 20},
		{"trusted sender", "From: orders@amazon.com\nyour order shipped", 0},
		{"unknown sender", "From: someone@example.org\nhi", 15},
		{"suspicious sender", "From: alerts@account-alerts.org\nhi", 30},
		{"suspicious sender with phrase", "From: x@netflix-support.biz\nurgent", 40},
		{"spoofed unknown sender", "From: billing@netfiix.com\nhello", 35},
		{"credential trap", `<input type="password">`, 25},
		{"trap plus phrases", `urgent, click here <input type="email">`, 45},
		{"payroll is not pay", "your payroll summary", 0},
		{"safe phrase floors at zero", "unsubscribe", 0},
		{"safe phrase dampens twice", "From: a@example.org\nurgent click here pay gift card unsubscribe", 30},
	}

	s := newTestScorer()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, s.Score(tc.text).Score)
		})
	}
}

func TestScoreEvidence(t *testing.T) {
	s := newTestScorer()

	result := s.Score("From: Billing <billing@NETFIIX.com>\nURGENT: verify your account\n<input type=\"password\">\nunsubscribe")

	require.Equal(t, []string{"urgent", "verify your account"}, result.MatchedDanger)
	require.Equal(t, []string{"unsubscribe"}, result.MatchedSafe)
	require.Equal(t, "netfiix.com", result.SenderDomain)
	require.Equal(t, core.ReputationUnknown, result.Reputation)
	require.True(t, result.Spoofed)
	require.Equal(t, "netflix.com", result.SpoofTarget)
	require.True(t, result.CredentialTrap)
	// max(0, 20-15) + 15 + 20 + 25 - 10
	require.Equal(t, 55, result.Score)
}

func TestScoreClampsToHundred(t *testing.T) {
	s := newTestScorer()

	text := "From: x@secure-payments-support.com\n" +
		strings.Repeat("urgent verify your account click here pay gift card ", 50) +
		`<input type="password">`

	result := s.Score(text)
	require.Equal(t, MaxScore, result.Score)
}

func TestScoreNeverNegative(t *testing.T) {
	s := newTestScorer()

	result := s.Score(strings.Repeat("unsubscribe meeting agenda ", 20))
	require.Equal(t, 0, result.Score)
	require.Equal(t, []string{"unsubscribe", "meeting agenda"}, result.MatchedSafe)
}

func TestScoreWithoutSenderSkipsDomainChecks(t *testing.T) {
	s := newTestScorer()

	result := s.Score("to: billing@netfiix.com")
	require.False(t, result.HasSenderDomain())
	require.Empty(t, result.Reputation)
	require.False(t, result.Spoofed)
	require.Equal(t, 0, result.Score)
}

func TestScoreExactTrustedIsNotSpoofed(t *testing.T) {
	s := newTestScorer()

	result := s.Score("from: account@netflix.com")
	require.Equal(t, core.ReputationTrusted, result.Reputation)
	require.False(t, result.Spoofed)
	require.Equal(t, 0, result.Score)
}

func TestScoreSuspiciousLookalikeFollowsSimilarity(t *testing.T) {
	s := newTestScorer()

	result := s.Score("from: help@netflix-support.biz")
	spoofed := sender.Similarity("netflix-support.biz", "netflix.com") > sender.SpoofThreshold

	require.Equal(t, core.ReputationSuspicious, result.Reputation)
	require.Equal(t, spoofed, result.Spoofed)
}

func TestScoreIsDeterministic(t *testing.T) {
	s := newTestScorer()
	text := "From: x@amaz0n.com\nurgent gift card <input type=text>"

	first := s.Score(text)
	second := s.Score(text)
	require.Equal(t, first, second)
}

func TestScoreConcurrentUse(t *testing.T) {
	s := newTestScorer()
	text := "From: x@amaz0n.com\nurgent gift card"
	expected := s.Score(text)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, expected, s.Score(text))
		}()
	}
	wg.Wait()
}

type stubTraps bool

func (s stubTraps) HasCredentialTrap(string) bool { return bool(s) }

func TestScoreUsesInjectedDetector(t *testing.T) {
	s := New(Profile{}, stubTraps(true))

	result := s.Score("plain text")
	require.True(t, result.CredentialTrap)
	require.Equal(t, CredentialTrapScore, result.Score)
}

func TestScoreEmptyProfile(t *testing.T) {
	s := New(Profile{}, nil)

	result := s.Score("From: a@example.org\nurgent")
	require.Empty(t, result.MatchedDanger)
	require.Equal(t, core.ReputationUnknown, result.Reputation)
	require.Equal(t, UnknownPenalty, result.Score)
}

func TestScoreNonASCIILookalikeSender(t *testing.T) {
	s := newTestScorer()

	result := s.Score("From: billing@amazön.com\nplease payé")

	require.Equal(t, "amazön.com", result.SenderDomain)
	require.True(t, result.Spoofed)
	require.Equal(t, "amazon.com", result.SpoofTarget)
	require.Empty(t, result.MatchedDanger)
	// unknown sender + spoof
	require.Equal(t, 35, result.Score)
}
