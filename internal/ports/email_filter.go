package ports

import (
	"context"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
)

// EmailFilter defines the interface for the scanning front ends
type EmailFilter interface {
	// ProcessEmail scans one raw email or pasted text and returns the report
	ProcessEmail(ctx context.Context, raw string) (*core.Report, error)

	// Start starts the front end
	Start() error

	// Stop stops the front end
	Stop() error
}
