package di

import (
	"io"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/gavinalvarezz/PhishBotAgent/internal/advisory"
	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/factory"
	"github.com/gavinalvarezz/PhishBotAgent/internal/logging"
	"github.com/gavinalvarezz/PhishBotAgent/internal/ports"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
)

// CLIFlags contains the command line flags shared by the CLI commands
type CLIFlags struct {
	ConfigFile  string
	WordListDir string
	Verbose     bool
	JSONLog     bool
	JSONOutput  bool
	Out         io.Writer
}

// BuildCLIContainer creates and configures a dependency injection container
// for the CLI. It has no cache, metrics or servers.
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg := config.NewFromViper(config.NewEmptyViper())
		if flags.ConfigFile != "" {
			var err error
			cfg, err = config.NewWithFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
		}
		applyFlags(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewScorerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		service *core.ScanService,
		processor *utils.TextProcessor,
		flags *CLIFlags,
	) *factory.FilterFactory {
		return factory.NewFilterFactory(cfg, logger, service, processor, nil, flags.Out)
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register scan service with no cache. A danger list failure leaves the
	// service halted so advice lookups keep working.
	if err := container.Provide(func(f *factory.ScorerFactory, logger *zap.Logger) *core.ScanService {
		advisor := advisory.NewEngine()
		snap, err := f.LoadWordLists()
		if err != nil {
			return core.NewScanService(nil, advisor, nil, nil, logger, false, 0, nil)
		}
		return core.NewScanService(f.CreateScorer(snap), advisor, nil, nil, logger, false, 0, snap.Warnings)
	}); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// applyFlags overrides configuration with command line settings
func applyFlags(cfg *config.Config, flags *CLIFlags) {
	cfg.Set("server.filter_type", "cli")
	cfg.Set("cli.json", flags.JSONOutput)
	if flags.WordListDir != "" {
		cfg.Set("wordlists.dir", flags.WordListDir)
	}
}
