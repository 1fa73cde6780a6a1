// Package credtrap detects embedded form fields that solicit credentials.
package credtrap

import (
	"go.uber.org/zap"
)

// sensitiveTypes are the input types that count as a credential trap
var sensitiveTypes = map[string]struct{}{
	"password": {},
	"email":    {},
	"text":     {},
}

// Detector reports whether text embeds a sensitive input field
type Detector struct {
	finder ElementFinder
	logger *zap.Logger
}

// NewDetector creates a detector. A nil finder uses the HTML tokenizer.
func NewDetector(finder ElementFinder, logger *zap.Logger) *Detector {
	if finder == nil {
		finder = NewHTMLFinder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{finder: finder, logger: logger}
}

// HasCredentialTrap returns true if any input element declares a password,
// email or text type. Type values compare exactly. It never fails: markup
// the finder cannot handle counts as containing no trap.
func (d *Detector) HasCredentialTrap(text string) (trapped bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug("Markup enumeration panicked, treating as no trap", zap.Any("panic", r))
			trapped = false
		}
	}()

	found, err := d.finder.FindElements(text, "input", isSensitiveInput)
	if err != nil {
		d.logger.Debug("Malformed markup, treating as no trap", zap.Error(err))
		return false
	}
	return len(found) > 0
}

func isSensitiveInput(el Element) bool {
	typ, ok := el.Attr("type")
	if !ok {
		return false
	}
	_, sensitive := sensitiveTypes[typ]
	return sensitive
}
