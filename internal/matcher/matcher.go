// Package matcher finds whole-word phrase occurrences in text.
package matcher

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
)

type pattern struct {
	phrase string
	re     *regexp.Regexp
}

// Matcher holds one compiled pattern per phrase, in list order
type Matcher struct {
	patterns []pattern
}

// New compiles every phrase of list. Phrases are matched literally with a
// word boundary at their start and end only. Word characters are Unicode
// letters, digits and underscore.
func New(list core.PhraseList) *Matcher {
	phrases := list.Phrases()
	m := &Matcher{patterns: make([]pattern, 0, len(phrases))}
	for _, p := range phrases {
		m.patterns = append(m.patterns, pattern{
			phrase: p,
			re:     regexp.MustCompile(regexp.QuoteMeta(p)),
		})
	}
	return m
}

// Len returns the number of compiled phrases
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// FindMatches returns the phrases found in text, in list order, one entry
// per distinct phrase. text is expected to be lowercased already.
func (m *Matcher) FindMatches(text string) []string {
	found := make([]string, 0)
	seen := make(map[string]struct{})
	for _, p := range m.patterns {
		if _, dup := seen[p.phrase]; dup {
			continue
		}
		if p.matchWholeWord(text) {
			seen[p.phrase] = struct{}{}
			found = append(found, p.phrase)
		}
	}
	return found
}

// matchWholeWord tries every occurrence, overlapping ones included, until
// one sits on a word boundary at both ends.
func (p pattern) matchWholeWord(text string) bool {
	for off := 0; off <= len(text); {
		loc := p.re.FindStringIndex(text[off:])
		if loc == nil {
			return false
		}
		start, end := off+loc[0], off+loc[1]
		if atBoundary(text, start) && atBoundary(text, end) {
			return true
		}
		if start == len(text) {
			return false
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		off = start + size
	}
	return false
}

// atBoundary reports whether exactly one side of position i is a word rune
func atBoundary(text string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FindMatches is a one-shot helper that compiles list and matches text
func FindMatches(text string, list core.PhraseList) []string {
	return New(list).FindMatches(text)
}
