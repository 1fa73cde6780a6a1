package sender

import (
	"github.com/agnivade/levenshtein"
)

// Lookalike describes the trusted domain a sender domain imitates
type Lookalike struct {
	Trusted      string
	Similarity   float64
	EditDistance int
}

// FindLookalike returns the first trusted domain that domain imitates: more
// than SpoofThreshold similar without being identical.
func FindLookalike(domain string, trusted []string) (Lookalike, bool) {
	for _, t := range trusted {
		if domain == t {
			continue
		}
		ratio := Similarity(domain, t)
		if ratio > SpoofThreshold {
			return Lookalike{
				Trusted:      t,
				Similarity:   ratio,
				EditDistance: levenshtein.ComputeDistance(domain, t),
			}, true
		}
	}
	return Lookalike{}, false
}

// IsSpoofed reports whether domain is a near miss of any trusted domain
func IsSpoofed(domain string, trusted []string) bool {
	_, ok := FindLookalike(domain, trusted)
	return ok
}
