package filter

import (
	"context"
	"io"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
	"go.uber.org/zap"
)

// CliFilter scans one email per call and prints the result panel
type CliFilter struct {
	service    *core.ScanService
	processor  *utils.TextProcessor
	logger     *zap.Logger
	out        io.Writer
	jsonOutput bool
}

// NewCliFilter creates a new CLI filter
func NewCliFilter(
	service *core.ScanService,
	processor *utils.TextProcessor,
	logger *zap.Logger,
	out io.Writer,
	jsonOutput bool,
) (*CliFilter, error) {
	return &CliFilter{
		service:    service,
		processor:  processor,
		logger:     logger,
		out:        out,
		jsonOutput: jsonOutput,
	}, nil
}

// ProcessEmail scans raw input and writes the report to the configured output
func (f *CliFilter) ProcessEmail(ctx context.Context, raw string) (*core.Report, error) {
	text := f.processor.ProcessText(PrepareText([]byte(raw)))
	f.logger.Debug("Processing email", zap.Int("raw_size", len(raw)), zap.Int("text_size", len(text)))

	report, err := f.service.Scan(ctx, text)
	if err != nil {
		f.logger.Debug("Scan rejected", zap.Error(err))
		return nil, err
	}

	if f.jsonOutput {
		err = RenderJSON(f.out, report)
	} else {
		err = RenderText(f.out, report)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
