package factory

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gavinalvarezz/PhishBotAgent/internal/adapters/filter"
	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/ports"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
	"go.uber.org/zap"
)

// FilterFactory creates email filters based on configuration
type FilterFactory struct {
	cfg       *config.Config
	logger    *zap.Logger
	service   *core.ScanService
	processor *utils.TextProcessor
	metrics   http.Handler
	out       io.Writer
}

// NewFilterFactory creates a new filter factory. metrics may be nil.
func NewFilterFactory(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.ScanService,
	processor *utils.TextProcessor,
	metrics http.Handler,
	out io.Writer,
) *FilterFactory {
	return &FilterFactory{
		cfg:       cfg,
		logger:    logger,
		service:   service,
		processor: processor,
		metrics:   metrics,
		out:       out,
	}
}

// CreateEmailFilter creates an email filter based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	server, err := f.cfg.GetServer()
	if err != nil {
		return nil, err
	}

	switch server.FilterType {
	case "http":
		return filter.NewHTTPFilter(
			f.service,
			f.processor,
			f.logger,
			server.ListenAddress,
			server.RateLimit,
			server.RateBurst,
			int64(f.cfg.GetMaxInputBytes()),
			server.ReadTimeout,
			server.WriteTimeout,
			f.metrics,
		), nil
	case "smtp":
		return filter.NewSMTPFilter(f.service, f.processor, f.logger, server), nil
	case "cli":
		return filter.NewCliFilter(
			f.service,
			f.processor,
			f.logger,
			f.out,
			f.cfg.GetBool("cli.json"),
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", server.FilterType)
	}
}
