// Package wordlist loads integrity-checked phrase lists.
package wordlist

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
	"go.uber.org/zap"
)

var (
	// ErrUnavailable is returned when a list is missing or unreadable
	ErrUnavailable = errors.New("word list unavailable")
	// ErrIntegrityMismatch is returned when a list does not match its pinned digest
	ErrIntegrityMismatch = errors.New("word list failed integrity check")
)

// Store reads phrase lists from a filesystem and checks them against pinned digests
type Store struct {
	fsys   fs.FS
	pinned map[string]string
	logger *zap.Logger
}

// NewStore creates a store. pinned maps resource names to hex SHA-256 digests.
func NewStore(fsys fs.FS, pinned map[string]string, logger *zap.Logger) *Store {
	normalized := make(map[string]string, len(pinned))
	for name, digest := range pinned {
		normalized[name] = normalizeDigest(digest)
	}
	return &Store{
		fsys:   fsys,
		pinned: normalized,
		logger: logger,
	}
}

// Fingerprint returns the hex SHA-256 digest of a resource
func (s *Store) Fingerprint(name string) (string, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, name, err)
	}
	return Digest(data), nil
}

// Load reads, verifies and parses a resource
func (s *Store) Load(name string) (core.PhraseList, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return core.PhraseList{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, name, err)
	}

	expected, ok := s.pinned[name]
	actual := Digest(data)
	if !ok || actual != expected {
		s.logger.Debug("Word list digest mismatch",
			zap.String("name", name),
			zap.String("expected", expected),
			zap.String("actual", actual))
		return core.PhraseList{}, fmt.Errorf("%w: %s", ErrIntegrityMismatch, name)
	}

	list := Parse(data)
	s.logger.Debug("Loaded word list", zap.String("name", name), zap.Int("phrases", list.Len()))
	return list, nil
}

// Digest returns the hex SHA-256 of data
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestsEqual compares hex digests ignoring case and surrounding space
func DigestsEqual(a, b string) bool {
	return normalizeDigest(a) == normalizeDigest(b)
}

func normalizeDigest(digest string) string {
	return strings.ToLower(strings.TrimSpace(digest))
}

// Parse turns raw list contents into a PhraseList: one phrase per line,
// trimmed and lowercased, empty lines dropped, order and duplicates kept.
// Lines end at "\r\n", "\r" or "\n".
func Parse(data []byte) core.PhraseList {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	var phrases []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		phrases = append(phrases, utils.Lower(line))
	}
	return core.NewPhraseList(phrases...)
}
