// Package sender extracts and judges the sender domain of an email.
package sender

import (
	"regexp"
)

var fromAddress = regexp.MustCompile(`from:\s*.*?@([\p{L}\p{N}_.-]+)`)

// ExtractDomain returns the domain of the first "from:" address in text.
// text is expected to be lowercased already.
func ExtractDomain(text string) (string, bool) {
	m := fromAddress.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
