package sender

import (
	"strings"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"go.uber.org/zap"
)

// TrustTable holds the trusted and suspicious domain sets
type TrustTable struct {
	trusted    []string
	trustedSet map[string]struct{}
	suspicious map[string]struct{}
}

// NewTrustTable creates a trust table. Entries are trimmed and lowercased;
// lookups are exact, with no subdomain handling.
func NewTrustTable(trusted, suspicious []string, logger *zap.Logger) *TrustTable {
	t := &TrustTable{
		trustedSet: make(map[string]struct{}, len(trusted)),
		suspicious: make(map[string]struct{}, len(suspicious)),
	}

	for _, domain := range trusted {
		domain = normalizeDomain(domain)
		if domain == "" {
			continue
		}
		if _, dup := t.trustedSet[domain]; dup {
			continue
		}
		t.trustedSet[domain] = struct{}{}
		t.trusted = append(t.trusted, domain)
	}
	for _, domain := range suspicious {
		if domain = normalizeDomain(domain); domain != "" {
			t.suspicious[domain] = struct{}{}
		}
	}

	if logger != nil {
		logger.Info("Initialized domain trust table",
			zap.Strings("trusted", t.trusted),
			zap.Int("suspicious", len(t.suspicious)))
	}

	return t
}

// Trusted returns the trusted domains in configuration order
func (t *TrustTable) Trusted() []string {
	return append([]string(nil), t.trusted...)
}

// IsTrusted checks exact membership in the trusted set
func (t *TrustTable) IsTrusted(domain string) bool {
	_, ok := t.trustedSet[domain]
	return ok
}

// IsSuspicious checks exact membership in the suspicious set
func (t *TrustTable) IsSuspicious(domain string) bool {
	_, ok := t.suspicious[domain]
	return ok
}

// Classify returns the reputation of domain. Suspicious wins over trusted
// when a domain is listed in both.
func (t *TrustTable) Classify(domain string) core.Reputation {
	switch {
	case t.IsSuspicious(domain):
		return core.ReputationSuspicious
	case t.IsTrusted(domain):
		return core.ReputationTrusted
	default:
		return core.ReputationUnknown
	}
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
