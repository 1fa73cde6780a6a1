package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextProcessor prepares untrusted input before it reaches the scorer
type TextProcessor struct {
	logger       *zap.Logger
	maxInputSize int
}

// NewTextProcessor creates a new TextProcessor. maxInputSize <= 0 disables truncation.
func NewTextProcessor(logger *zap.Logger, maxInputSize int) *TextProcessor {
	return &TextProcessor{
		logger:       logger,
		maxInputSize: maxInputSize,
	}
}

// Lower lowercases text with full Unicode case mapping.
// A Caser is stateful, so one is built per call.
func Lower(text string) string {
	return cases.Lower(language.Und).String(text)
}

// TruncateText cuts text to at most maxSize bytes without splitting a rune
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// SanitizeUTF8 drops invalid UTF-8 bytes
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// ProcessText truncates to the configured limit and sanitizes in one operation
func (tp *TextProcessor) ProcessText(text string) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, tp.maxInputSize))
}
